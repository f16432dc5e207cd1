package main

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/pool"
	"github.com/wippyai/slotpool/resource"
)

// maker creates placeholder resources of any kind. Pipelines and passes
// need a shader and an image; those are created on first use and reused.
type maker struct {
	reg    *resource.Registry
	shader resource.ShaderID
	image  resource.ImageID
	seq    int
}

func newMaker(reg *resource.Registry) *maker {
	return &maker{reg: reg}
}

func (m *maker) make(k resource.Kind) (slotpool.Handle, error) {
	m.seq++
	label := fmt.Sprintf("%s-%d", k, m.seq)

	switch k {
	case resource.KindBuffer:
		id, err := m.reg.MakeBuffer(resource.BufferDesc{
			Label: label,
			Size:  256,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		return id.Handle(), err
	case resource.KindImage:
		id, err := m.reg.MakeImage(imageDesc(label))
		return id.Handle(), err
	case resource.KindShader:
		id, err := m.reg.MakeShader(shaderDesc(label))
		return id.Handle(), err
	case resource.KindPipeline:
		shd, err := m.supportShader()
		if err != nil {
			return 0, err
		}
		id, err := m.reg.MakePipeline(resource.PipelineDesc{
			Label:       label,
			Shader:      shd,
			Topology:    gputypes.PrimitiveTopologyTriangleList,
			ColorFormat: gputypes.TextureFormatBGRA8Unorm,
		})
		return id.Handle(), err
	case resource.KindPass:
		img, err := m.supportImage()
		if err != nil {
			return 0, err
		}
		id, err := m.reg.MakePass(resource.PassDesc{
			Label:            label,
			ColorAttachments: []resource.ImageID{img},
			LoadOp:           gputypes.LoadOpClear,
			StoreOp:          gputypes.StoreOpStore,
			ClearValue:       gputypes.Color{A: 1},
		})
		return id.Handle(), err
	case resource.KindContext:
		id, err := m.reg.SetupContext(label)
		return id.Handle(), err
	}
	return 0, fmt.Errorf("unknown resource kind %v", k)
}

func (m *maker) supportShader() (resource.ShaderID, error) {
	if m.reg.ShaderState(m.shader) == pool.StateValid {
		return m.shader, nil
	}
	id, err := m.reg.MakeShader(shaderDesc("support-vs"))
	if err != nil {
		return 0, fmt.Errorf("support shader: %w", err)
	}
	m.shader = id
	return id, nil
}

func (m *maker) supportImage() (resource.ImageID, error) {
	if m.reg.ImageState(m.image) == pool.StateValid {
		return m.image, nil
	}
	id, err := m.reg.MakeImage(imageDesc("support-rt"))
	if err != nil {
		return 0, fmt.Errorf("support image: %w", err)
	}
	m.image = id
	return id, nil
}

func imageDesc(label string) resource.ImageDesc {
	return resource.ImageDesc{
		Label:  label,
		Width:  256,
		Height: 256,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	}
}

func shaderDesc(label string) resource.ShaderDesc {
	return resource.ShaderDesc{
		Label:      label,
		Stage:      resource.StageVertex,
		EntryPoint: "vs_main",
		Source:     []byte("@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }"),
	}
}
