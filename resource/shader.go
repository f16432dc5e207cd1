package resource

import (
	"bytes"

	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

// MakeShader creates a shader owned by the current context.
func (r *Registry) MakeShader(desc ShaderDesc) (ShaderID, error) {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()

	payload := Shader{
		Label:      truncateLabel(desc.Label),
		EntryPoint: desc.EntryPoint,
		Source:     bytes.Clone(desc.Source),
		Stage:      desc.Stage,
		Owner:      r.current,
	}
	h, err := create(r, r.shaders, KindShader, payload, func(s *Shader) error {
		if s.Stage < StageVertex || s.Stage > StageCompute {
			return invalidInput(KindShader, "stage", "shader stage must be vertex, fragment or compute")
		}
		if s.EntryPoint == "" {
			return invalidInput(KindShader, "entry_point", "entry point must be set")
		}
		if len(s.Source) == 0 {
			return invalidInput(KindShader, "source", "shader source must not be empty")
		}
		return nil
	})
	return ShaderID(h), err
}

// DestroyShader releases a shader.
func (r *Registry) DestroyShader(id ShaderID) error {
	return r.shaders.Release(id.Handle())
}

// Shader returns a copy of a live shader record.
func (r *Registry) Shader(id ShaderID) (Shader, bool) {
	return r.shaders.Get(id.Handle())
}

// ShaderState returns the slot state of a shader.
func (r *Registry) ShaderState(id ShaderID) pool.State {
	return r.shaders.State(id.Handle())
}

// MakePipeline creates a pipeline owned by the current context.
// The shader must be valid.
func (r *Registry) MakePipeline(desc PipelineDesc) (PipelineID, error) {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()

	payload := Pipeline{
		Label:       truncateLabel(desc.Label),
		Shader:      desc.Shader,
		Topology:    desc.Topology,
		ColorFormat: desc.ColorFormat,
		DepthFormat: desc.DepthFormat,
		Owner:       r.current,
	}
	h, err := create(r, r.pipelines, KindPipeline, payload, func(p *Pipeline) error {
		if r.shaders.State(p.Shader.Handle()) != pool.StateValid {
			return errors.New(errors.PhaseCreate, errors.KindInvalidHandle).
				Path(KindPipeline.String(), "shader").
				Value(p.Shader).
				Detail("shader %v is not valid", p.Shader).
				Build()
		}
		return nil
	})
	return PipelineID(h), err
}

// DestroyPipeline releases a pipeline.
func (r *Registry) DestroyPipeline(id PipelineID) error {
	return r.pipelines.Release(id.Handle())
}

// Pipeline returns a copy of a live pipeline record.
func (r *Registry) Pipeline(id PipelineID) (Pipeline, bool) {
	return r.pipelines.Get(id.Handle())
}

// PipelineState returns the slot state of a pipeline.
func (r *Registry) PipelineState(id PipelineID) pool.State {
	return r.pipelines.State(id.Handle())
}
