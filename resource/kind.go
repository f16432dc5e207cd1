package resource

import (
	"fmt"

	"github.com/wippyai/slotpool"
)

// Kind identifies a resource pool.
type Kind uint8

const (
	KindBuffer Kind = iota
	KindImage
	KindShader
	KindPipeline
	KindPass
	KindContext
)

// Kinds lists every resource kind in pool order.
var Kinds = []Kind{KindBuffer, KindImage, KindShader, KindPipeline, KindPass, KindContext}

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindImage:
		return "image"
	case KindShader:
		return "shader"
	case KindPipeline:
		return "pipeline"
	case KindPass:
		return "pass"
	case KindContext:
		return "context"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind resolves a kind name as printed by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// DefaultCapacity returns the default pool size for k.
func (k Kind) DefaultCapacity() int {
	switch k {
	case KindBuffer:
		return slotpool.DefaultBufferPoolSize
	case KindImage:
		return slotpool.DefaultImagePoolSize
	case KindShader:
		return slotpool.DefaultShaderPoolSize
	case KindPipeline:
		return slotpool.DefaultPipelinePoolSize
	case KindPass:
		return slotpool.DefaultPassPoolSize
	case KindContext:
		return slotpool.DefaultContextPoolSize
	default:
		return 0
	}
}

// BufferID references a buffer.
type BufferID slotpool.Handle

// ImageID references an image.
type ImageID slotpool.Handle

// ShaderID references a shader.
type ShaderID slotpool.Handle

// PipelineID references a pipeline.
type PipelineID slotpool.Handle

// PassID references a render pass.
type PassID slotpool.Handle

// ContextID references a context.
type ContextID slotpool.Handle

func (id BufferID) Handle() slotpool.Handle   { return slotpool.Handle(id) }
func (id ImageID) Handle() slotpool.Handle    { return slotpool.Handle(id) }
func (id ShaderID) Handle() slotpool.Handle   { return slotpool.Handle(id) }
func (id PipelineID) Handle() slotpool.Handle { return slotpool.Handle(id) }
func (id PassID) Handle() slotpool.Handle     { return slotpool.Handle(id) }
func (id ContextID) Handle() slotpool.Handle  { return slotpool.Handle(id) }

func (id BufferID) String() string   { return idString(KindBuffer, slotpool.Handle(id)) }
func (id ImageID) String() string    { return idString(KindImage, slotpool.Handle(id)) }
func (id ShaderID) String() string   { return idString(KindShader, slotpool.Handle(id)) }
func (id PipelineID) String() string { return idString(KindPipeline, slotpool.Handle(id)) }
func (id PassID) String() string     { return idString(KindPass, slotpool.Handle(id)) }
func (id ContextID) String() string  { return idString(KindContext, slotpool.Handle(id)) }

func idString(k Kind, h slotpool.Handle) string {
	if h == slotpool.InvalidHandle {
		return k.String() + "(none)"
	}
	return fmt.Sprintf("%s(%d:%d)", k, h.Index(), h.Generation())
}
