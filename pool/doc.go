// Package pool implements a fixed-capacity, generation-tagged slot pool.
//
// A Pool stores payloads by value in a preallocated slice and hands out
// slotpool.Handle values instead of pointers. Every allocation bumps the
// slot's generation, so a handle that outlives its resource no longer
// resolves once the slot is released or reused.
//
// # Slot Lifecycle
//
//	FREE  -> ALLOC   Allocate reserves a slot
//	ALLOC -> VALID   Activate marks the payload fully initialized
//	ALLOC -> FREE    Release after a failed initialization
//	VALID -> FREE    Release of a live resource
//
// Slot 0 is never handed out, so the zero handle never resolves.
//
// # Usage
//
//	p, err := pool.New[Buffer](pool.Config{Name: "buffer", Capacity: 128})
//	if err != nil {
//	    return err
//	}
//
//	h, err := p.Allocate(Buffer{Size: 256})
//	if err != nil {
//	    return err // errors.ErrPoolExhausted
//	}
//	if err := initBackend(h); err != nil {
//	    p.Release(h)
//	    return err
//	}
//	p.Activate(h)
//
//	if buf, ok := p.Lookup(h); ok {
//	    buf.Size = 512
//	}
//
// # Generation Wrap
//
// Generations are 16 bits. After 65535 reuses of one slot the tag wraps to 1,
// at which point a handle from 65535 cycles ago would match again. The pool
// counts wraps in Stats but does not try to prevent this.
//
// # Concurrency
//
// Pool performs no locking; callers serialize mutating calls. Synced wraps a
// Pool with a sync.RWMutex for shared use.
package pool
