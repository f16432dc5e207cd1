// Package resource manages graphics resource handles on top of slot pools.
//
// A Registry owns six independent pools, one per resource kind:
//
//	Buffer     vertex, index, uniform and storage buffers
//	Image      textures and render targets
//	Shader     shader stage entry points and source
//	Pipeline   shader plus fixed-function state
//	Pass       render pass attachments and load/store actions
//	Context    ownership scope for everything above
//
// Each kind has its own ID type, so a BufferID cannot be passed where an
// ImageID is expected. The zero ID of every kind is invalid.
//
// # Two-Phase Creation
//
// Make* reserves a slot, validates the descriptor and then marks the slot
// valid. If validation fails the slot is released again and the error is
// returned, so a half-built resource is never visible as usable:
//
//	shd, err := reg.MakeShader(resource.ShaderDesc{
//	    Stage:      resource.StageVertex,
//	    EntryPoint: "vs_main",
//	    Source:     wgsl,
//	})
//	pip, err := reg.MakePipeline(resource.PipelineDesc{
//	    Shader:      shd,
//	    Topology:    gputypes.PrimitiveTopologyTriangleList,
//	    ColorFormat: gputypes.TextureFormatBGRA8Unorm,
//	})
//
// # Contexts
//
// Resources made while a context is current belong to it.
// DiscardContext destroys every resource the context owns, then the
// context itself:
//
//	ctx, _ := reg.SetupContext("offscreen")
//	img, _ := reg.MakeImage(desc) // owned by ctx
//	reg.DiscardContext(ctx)       // img is gone
//
// # Stale Handles
//
// Destroying a resource bumps nothing visible to the caller, but the next
// resource created in the same slot gets a new generation. Lookups with the
// old ID report not found, and Destroy with the old ID returns
// errors.ErrInvalidHandle.
package resource
