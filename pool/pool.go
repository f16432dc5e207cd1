package pool

import (
	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/errors"
)

type slot[T any] struct {
	payload    T
	generation uint16
	state      State
}

type subscription struct {
	obs Observer
	id  uint64
}

// Pool is a fixed-capacity generational slot pool. It is not safe for
// concurrent mutation; see Synced.
type Pool[T any] struct {
	slots     []slot[T]
	free      *freeSet
	observers []subscription
	name      string
	nextSubID uint64
	stats     Stats
	closed    bool
}

// New creates a pool with every slot free and slot 0 withheld.
func New[T any](cfg Config) (*Pool[T], error) {
	if cfg.Capacity <= 0 {
		return nil, errors.ConfigError(cfg.Name, cfg.Capacity, "capacity must be positive")
	}
	if cfg.Capacity > slotpool.MaxPoolSize {
		return nil, errors.New(errors.PhaseConfig, errors.KindConfig).
			Path(cfg.Name).
			Value(cfg.Capacity).
			Detail("capacity %d exceeds %d", cfg.Capacity, slotpool.MaxPoolSize).
			Build()
	}

	p := &Pool[T]{
		slots: make([]slot[T], cfg.Capacity),
		free:  newFreeSet(cfg.Capacity),
		name:  cfg.Name,
	}
	for i := 1; i < cfg.Capacity; i++ {
		p.free.push(i)
	}
	return p, nil
}

// Name returns the pool name given at construction.
func (p *Pool[T]) Name() string { return p.name }

// Capacity returns the number of slots, including reserved slot 0.
func (p *Pool[T]) Capacity() int { return len(p.slots) }

// Free returns the number of slots available for allocation.
func (p *Pool[T]) Free() int { return p.free.len() }

// Len returns the number of live (ALLOC or VALID) slots.
func (p *Pool[T]) Len() int {
	if len(p.slots) == 0 {
		return 0
	}
	return len(p.slots) - 1 - p.free.len()
}

// Allocate reserves the lowest free slot, stores payload and returns its handle.
// The slot is left in the ALLOC state.
func (p *Pool[T]) Allocate(payload T) (slotpool.Handle, error) {
	if p.closed {
		return slotpool.InvalidHandle, errors.Closed(errors.PhaseAllocate, p.name)
	}

	idx := p.free.popLowest()
	if idx < 0 {
		p.stats.Exhaustions++
		return slotpool.InvalidHandle, errors.PoolExhausted(p.name, len(p.slots))
	}

	s := &p.slots[idx]
	if s.generation == slotpool.MaxGeneration {
		p.stats.GenerationWraps++
	}
	s.generation = slotpool.NextGeneration(s.generation)
	s.payload = payload
	s.state = StateAlloc
	p.stats.Allocations++

	h := slotpool.Pack(uint16(idx), s.generation)
	p.notify(Event{Pool: p.name, Handle: h, Type: EventAllocated, From: StateFree, To: StateAlloc})
	return h, nil
}

// Activate moves a slot from ALLOC to VALID.
func (p *Pool[T]) Activate(h slotpool.Handle) error {
	if p.closed {
		return errors.Closed(errors.PhaseActivate, p.name)
	}

	s, ok := p.slotFor(h)
	if !ok {
		return errors.InvalidHandle(errors.PhaseActivate, p.name, h)
	}
	if s.state != StateAlloc {
		return errors.InvalidState(errors.PhaseActivate, p.name, h, s.state.String(), StateValid.String())
	}

	s.state = StateValid
	p.notify(Event{Pool: p.name, Handle: h, Type: EventActivated, From: StateAlloc, To: StateValid})
	return nil
}

// Lookup returns a pointer to the payload of a live slot.
// The pointer is valid until the slot is released.
func (p *Pool[T]) Lookup(h slotpool.Handle) (*T, bool) {
	s, ok := p.live(h)
	if !ok {
		return nil, false
	}
	return &s.payload, true
}

// Get returns a copy of the payload of a live slot.
func (p *Pool[T]) Get(h slotpool.Handle) (T, bool) {
	s, ok := p.live(h)
	if !ok {
		var zero T
		return zero, false
	}
	return s.payload, true
}

// State returns the slot state for h, or StateFree when h is not live.
func (p *Pool[T]) State(h slotpool.Handle) State {
	s, ok := p.live(h)
	if !ok {
		return StateFree
	}
	return s.state
}

// Contains reports whether h names a live slot.
func (p *Pool[T]) Contains(h slotpool.Handle) bool {
	_, ok := p.live(h)
	return ok
}

// Release frees a live slot. The generation is kept so the next allocation
// of the slot continues the sequence.
func (p *Pool[T]) Release(h slotpool.Handle) error {
	if p.closed {
		return errors.Closed(errors.PhaseRelease, p.name)
	}

	s, ok := p.live(h)
	if !ok {
		return errors.InvalidHandle(errors.PhaseRelease, p.name, h)
	}

	from := s.state
	p.drop(s)
	p.free.push(int(h.Index()))
	p.stats.Releases++

	p.notify(Event{Pool: p.name, Handle: h, Type: EventReleased, From: from, To: StateFree})
	return nil
}

// Each calls fn for every live slot in index order until fn returns false.
func (p *Pool[T]) Each(fn func(slotpool.Handle, State, *T) bool) {
	for i := 1; i < len(p.slots); i++ {
		s := &p.slots[i]
		if s.state == StateFree {
			continue
		}
		if !fn(slotpool.Pack(uint16(i), s.generation), s.state, &s.payload) {
			return
		}
	}
}

// Handles returns the handles of all live slots in index order.
func (p *Pool[T]) Handles() []slotpool.Handle {
	var out []slotpool.Handle
	p.Each(func(h slotpool.Handle, _ State, _ *T) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Stats returns counters and per-state slot counts.
func (p *Pool[T]) Stats() Stats {
	st := p.stats
	st.Name = p.name
	st.Capacity = len(p.slots)
	st.Free = p.free.len()
	for i := 1; i < len(p.slots); i++ {
		switch p.slots[i].state {
		case StateAlloc:
			st.Alloc++
		case StateValid:
			st.Valid++
		}
	}
	st.Live = st.Alloc + st.Valid
	return st
}

// Subscribe registers an observer and returns a function that removes it.
func (p *Pool[T]) Subscribe(o Observer) (unsubscribe func()) {
	p.nextSubID++
	id := p.nextSubID
	p.observers = append(p.observers, subscription{id: id, obs: o})
	return func() {
		for i, sub := range p.observers {
			if sub.id == id {
				p.observers = append(p.observers[:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Close releases every live payload. Later mutations fail with ErrClosed;
// lookups report not found. Close is idempotent.
func (p *Pool[T]) Close() error {
	if p.closed {
		return nil
	}
	for i := 1; i < len(p.slots); i++ {
		s := &p.slots[i]
		if s.state == StateFree {
			continue
		}
		h := slotpool.Pack(uint16(i), s.generation)
		from := s.state
		p.drop(s)
		p.free.push(i)
		p.stats.Releases++
		p.notify(Event{Pool: p.name, Handle: h, Type: EventReleased, From: from, To: StateFree})
	}
	p.closed = true
	p.observers = nil
	return nil
}

// Closed reports whether Close has been called.
func (p *Pool[T]) Closed() bool { return p.closed }

// slotFor resolves index and generation without checking the state.
func (p *Pool[T]) slotFor(h slotpool.Handle) (*slot[T], bool) {
	idx, gen := slotpool.Unpack(h)
	if idx == 0 || int(idx) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[idx]
	if s.generation != gen || gen == 0 {
		return nil, false
	}
	return s, true
}

func (p *Pool[T]) live(h slotpool.Handle) (*slot[T], bool) {
	s, ok := p.slotFor(h)
	if !ok || s.state == StateFree {
		return nil, false
	}
	return s, true
}

func (p *Pool[T]) drop(s *slot[T]) {
	if d, ok := any(s.payload).(Dropper); ok {
		d.Drop()
	} else if d, ok := any(&s.payload).(Dropper); ok {
		d.Drop()
	}
	var zero T
	s.payload = zero
	s.state = StateFree
}

func (p *Pool[T]) notify(e Event) {
	for _, sub := range p.observers {
		sub.obs.OnPoolEvent(e)
	}
}
