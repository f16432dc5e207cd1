package resource

import (
	"go.uber.org/zap"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

// SetupContext creates a context and makes it current.
func (r *Registry) SetupContext(label string) (ContextID, error) {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()

	r.ctxSeq++
	h, err := create(r, r.contexts, KindContext, Context{
		Label: truncateLabel(label),
		Seq:   r.ctxSeq,
	}, nil)
	if err != nil {
		return 0, err
	}
	r.current = ContextID(h)
	return r.current, nil
}

// ActivateContext makes id current. Resources made afterwards belong to it.
func (r *Registry) ActivateContext(id ContextID) error {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()

	if r.contexts.State(id.Handle()) != pool.StateValid {
		return errors.InvalidHandle(errors.PhaseLookup, KindContext.String(), id)
	}
	r.current = id
	return nil
}

// CurrentContext returns the current context, or the zero ID when none is set.
func (r *Registry) CurrentContext() ContextID {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()
	return r.current
}

// Context returns a copy of a live context record.
func (r *Registry) Context(id ContextID) (Context, bool) {
	return r.contexts.Get(id.Handle())
}

// ContextState returns the slot state of a context.
func (r *Registry) ContextState(id ContextID) pool.State {
	return r.contexts.State(id.Handle())
}

// DiscardContext destroys every resource owned by id, then id itself.
// If id was current, no context is current afterwards. Make calls wait
// until the discard completes, so none can pick up id as owner midway.
func (r *Registry) DiscardContext(id ContextID) error {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()

	if r.contexts.State(id.Handle()) == pool.StateFree {
		return errors.InvalidHandle(errors.PhaseRelease, KindContext.String(), id)
	}

	released := 0
	released += releaseOwned(r.passes, id, func(p *Pass) ContextID { return p.Owner })
	released += releaseOwned(r.pipelines, id, func(p *Pipeline) ContextID { return p.Owner })
	released += releaseOwned(r.shaders, id, func(s *Shader) ContextID { return s.Owner })
	released += releaseOwned(r.images, id, func(i *Image) ContextID { return i.Owner })
	released += releaseOwned(r.buffers, id, func(b *Buffer) ContextID { return b.Owner })

	if err := r.contexts.Release(id.Handle()); err != nil {
		return err
	}
	if r.current == id {
		r.current = 0
	}

	r.log.Debug("context discarded",
		zap.Stringer("context", id),
		zap.Int("released", released))
	return nil
}

func releaseOwned[T any](p *pool.Synced[T], owner ContextID, ownerOf func(*T) ContextID) int {
	var owned []slotpool.Handle
	p.Each(func(h slotpool.Handle, _ pool.State, v *T) bool {
		if ownerOf(v) == owner {
			owned = append(owned, h)
		}
		return true
	})
	n := 0
	for _, h := range owned {
		if p.Release(h) == nil {
			n++
		}
	}
	return n
}
