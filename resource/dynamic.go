package resource

import (
	"fmt"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

// Handles returns the live handles of kind k in slot order.
func (r *Registry) Handles(k Kind) []slotpool.Handle {
	switch k {
	case KindBuffer:
		return r.buffers.Handles()
	case KindImage:
		return r.images.Handles()
	case KindShader:
		return r.shaders.Handles()
	case KindPipeline:
		return r.pipelines.Handles()
	case KindPass:
		return r.passes.Handles()
	case KindContext:
		return r.contexts.Handles()
	}
	return nil
}

// StateOf returns the slot state of h in the pool for k.
func (r *Registry) StateOf(k Kind, h slotpool.Handle) pool.State {
	switch k {
	case KindBuffer:
		return r.buffers.State(h)
	case KindImage:
		return r.images.State(h)
	case KindShader:
		return r.shaders.State(h)
	case KindPipeline:
		return r.pipelines.State(h)
	case KindPass:
		return r.passes.State(h)
	case KindContext:
		return r.contexts.State(h)
	}
	return pool.StateFree
}

// Destroy releases h from the pool for k. Contexts are discarded together
// with the resources they own.
func (r *Registry) Destroy(k Kind, h slotpool.Handle) error {
	switch k {
	case KindBuffer:
		return r.DestroyBuffer(BufferID(h))
	case KindImage:
		return r.DestroyImage(ImageID(h))
	case KindShader:
		return r.DestroyShader(ShaderID(h))
	case KindPipeline:
		return r.DestroyPipeline(PipelineID(h))
	case KindPass:
		return r.DestroyPass(PassID(h))
	case KindContext:
		return r.DiscardContext(ContextID(h))
	}
	return errors.NotFound(errors.PhaseRelease, "resource kind", k)
}

// Describe returns a one-line summary of a live resource.
func (r *Registry) Describe(k Kind, h slotpool.Handle) (string, bool) {
	switch k {
	case KindBuffer:
		if b, ok := r.Buffer(BufferID(h)); ok {
			return fmt.Sprintf("buffer %q size=%d usage=%#x owner=%v", b.Label, b.Size, uint64(b.Usage), b.Owner), true
		}
	case KindImage:
		if i, ok := r.Image(ImageID(h)); ok {
			return fmt.Sprintf("image %q %dx%dx%d mips=%d samples=%d owner=%v",
				i.Label, i.Width, i.Height, i.Depth, i.MipLevels, i.SampleCount, i.Owner), true
		}
	case KindShader:
		if s, ok := r.Shader(ShaderID(h)); ok {
			return fmt.Sprintf("shader %q %s %s (%d bytes) owner=%v", s.Label, s.Stage, s.EntryPoint, len(s.Source), s.Owner), true
		}
	case KindPipeline:
		if p, ok := r.Pipeline(PipelineID(h)); ok {
			return fmt.Sprintf("pipeline %q shader=%v owner=%v", p.Label, p.Shader, p.Owner), true
		}
	case KindPass:
		if p, ok := r.Pass(PassID(h)); ok {
			return fmt.Sprintf("pass %q colors=%d depth=%v owner=%v", p.Label, len(p.ColorAttachments), p.DepthStencil, p.Owner), true
		}
	case KindContext:
		if c, ok := r.Context(ContextID(h)); ok {
			return fmt.Sprintf("context %q seq=%d", c.Label, c.Seq), true
		}
	}
	return "", false
}
