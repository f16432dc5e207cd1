package pool

import (
	"sync"

	"github.com/wippyai/slotpool"
)

// Synced guards a Pool with a single RWMutex. Mutations take the write lock;
// reads share the read lock.
type Synced[T any] struct {
	p  *Pool[T]
	mu sync.RWMutex
}

// NewSynced creates a locked pool.
func NewSynced[T any](cfg Config) (*Synced[T], error) {
	p, err := New[T](cfg)
	if err != nil {
		return nil, err
	}
	return &Synced[T]{p: p}, nil
}

// Allocate reserves a slot for payload.
func (s *Synced[T]) Allocate(payload T) (slotpool.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Allocate(payload)
}

// Activate moves a slot from ALLOC to VALID.
func (s *Synced[T]) Activate(h slotpool.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Activate(h)
}

// Release frees a live slot.
func (s *Synced[T]) Release(h slotpool.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Release(h)
}

// Get returns a copy of a live payload.
func (s *Synced[T]) Get(h slotpool.Handle) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Get(h)
}

// State returns the slot state for h.
func (s *Synced[T]) State(h slotpool.Handle) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.State(h)
}

// View calls fn with the live payload under the read lock.
// fn must not retain the pointer or mutate the payload.
func (s *Synced[T]) View(h slotpool.Handle, fn func(*T)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.p.Lookup(h)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Update calls fn with the live payload under the write lock.
func (s *Synced[T]) Update(h slotpool.Handle, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.p.Lookup(h)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Each iterates live slots under the read lock.
func (s *Synced[T]) Each(fn func(slotpool.Handle, State, *T) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.p.Each(fn)
}

// Handles returns the live handles in index order.
func (s *Synced[T]) Handles() []slotpool.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Handles()
}

// Len returns the number of live slots.
func (s *Synced[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Len()
}

// Capacity returns the fixed slot count.
func (s *Synced[T]) Capacity() int {
	return s.p.Capacity()
}

// Stats returns a snapshot of the pool counters.
func (s *Synced[T]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Stats()
}

// Subscribe registers an observer. Observers run with the write lock held
// and must not call back into the pool.
func (s *Synced[T]) Subscribe(o Observer) func() {
	s.mu.Lock()
	unsub := s.p.Subscribe(o)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		unsub()
	}
}

// Close releases every payload.
func (s *Synced[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Close()
}
