package resource

import (
	"github.com/gogpu/gputypes"
)

// MaxColorAttachments bounds the color targets of a pass.
const MaxColorAttachments = 4

// ShaderStage selects the pipeline stage a shader entry point runs in.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota + 1
	StageFragment
	StageCompute
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "undefined"
	}
}

// Buffer is the pooled record of a GPU buffer.
type Buffer struct {
	Label string
	Size  uint64
	Usage gputypes.BufferUsage
	Owner ContextID
}

// BufferDesc describes a buffer to create.
type BufferDesc struct {
	Label string
	Size  uint64
	Usage gputypes.BufferUsage
}

// Image is the pooled record of a texture or render target.
type Image struct {
	Label       string
	Width       uint32
	Height      uint32
	Depth       uint32
	MipLevels   uint32
	SampleCount uint32
	Format      gputypes.TextureFormat
	Dimension   gputypes.TextureDimension
	Usage       gputypes.TextureUsage
	Owner       ContextID
}

// ImageDesc describes an image to create. Zero Depth, MipLevels and
// SampleCount default to 1.
type ImageDesc struct {
	Label       string
	Width       uint32
	Height      uint32
	Depth       uint32
	MipLevels   uint32
	SampleCount uint32
	Format      gputypes.TextureFormat
	Dimension   gputypes.TextureDimension
	Usage       gputypes.TextureUsage
}

// Shader is the pooled record of a shader entry point.
type Shader struct {
	Label      string
	EntryPoint string
	Source     []byte
	Stage      ShaderStage
	Owner      ContextID
}

// ShaderDesc describes a shader to create. Source is copied.
type ShaderDesc struct {
	Label      string
	EntryPoint string
	Source     []byte
	Stage      ShaderStage
}

// Pipeline is the pooled record of a render or compute pipeline.
type Pipeline struct {
	Label       string
	Shader      ShaderID
	Topology    gputypes.PrimitiveTopology
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
	Owner       ContextID
}

// PipelineDesc describes a pipeline to create.
type PipelineDesc struct {
	Label       string
	Shader      ShaderID
	Topology    gputypes.PrimitiveTopology
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
}

// Pass is the pooled record of a render pass.
type Pass struct {
	Label            string
	ColorAttachments []ImageID
	DepthStencil     ImageID
	LoadOp           gputypes.LoadOp
	StoreOp          gputypes.StoreOp
	ClearValue       gputypes.Color
	Owner            ContextID
}

// PassDesc describes a render pass to create.
type PassDesc struct {
	Label            string
	ColorAttachments []ImageID
	DepthStencil     ImageID
	LoadOp           gputypes.LoadOp
	StoreOp          gputypes.StoreOp
	ClearValue       gputypes.Color
}

// Context is the pooled record of an ownership scope.
type Context struct {
	Label string
	Seq   uint64
}
