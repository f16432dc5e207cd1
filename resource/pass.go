package resource

import (
	"fmt"
	"slices"

	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

// MakePass creates a render pass owned by the current context.
// Every attachment must be a valid image.
func (r *Registry) MakePass(desc PassDesc) (PassID, error) {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()

	payload := Pass{
		Label:            truncateLabel(desc.Label),
		ColorAttachments: slices.Clone(desc.ColorAttachments),
		DepthStencil:     desc.DepthStencil,
		LoadOp:           desc.LoadOp,
		StoreOp:          desc.StoreOp,
		ClearValue:       desc.ClearValue,
		Owner:            r.current,
	}
	h, err := create(r, r.passes, KindPass, payload, r.validatePass)
	return PassID(h), err
}

func (r *Registry) validatePass(p *Pass) error {
	if len(p.ColorAttachments) == 0 && p.DepthStencil == 0 {
		return invalidInput(KindPass, "attachments", "pass needs at least one attachment")
	}
	if len(p.ColorAttachments) > MaxColorAttachments {
		return invalidInput(KindPass, "color_attachments",
			fmt.Sprintf("%d color attachments exceed limit %d", len(p.ColorAttachments), MaxColorAttachments))
	}
	for i, img := range p.ColorAttachments {
		if r.images.State(img.Handle()) != pool.StateValid {
			return errors.New(errors.PhaseCreate, errors.KindInvalidHandle).
				Path(KindPass.String(), "color_attachments", fmt.Sprint(i)).
				Value(img).
				Detail("image %v is not valid", img).
				Build()
		}
	}
	if p.DepthStencil != 0 && r.images.State(p.DepthStencil.Handle()) != pool.StateValid {
		return errors.New(errors.PhaseCreate, errors.KindInvalidHandle).
			Path(KindPass.String(), "depth_stencil").
			Value(p.DepthStencil).
			Detail("image %v is not valid", p.DepthStencil).
			Build()
	}
	return nil
}

// DestroyPass releases a render pass.
func (r *Registry) DestroyPass(id PassID) error {
	return r.passes.Release(id.Handle())
}

// Pass returns a copy of a live pass record.
func (r *Registry) Pass(id PassID) (Pass, bool) {
	p, ok := r.passes.Get(id.Handle())
	if ok {
		p.ColorAttachments = slices.Clone(p.ColorAttachments)
	}
	return p, ok
}

// PassState returns the slot state of a render pass.
func (r *Registry) PassState(id PassID) pool.State {
	return r.passes.State(id.Handle())
}
