// Package errors provides structured error types for slot pools and the
// resource registry.
//
// Errors are categorized by Phase (which operation failed) and Kind (error
// category). The Error type carries the offending handle or value, a path
// naming the pool or field, and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfig, errors.KindConfig).
//		Path("pools", "buffers").
//		Value(0).
//		Detail("capacity must be in (0, %d]", slotpool.MaxPoolSize).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.PoolExhausted("buffer", 128)
//	err := errors.InvalidHandle(errors.PhaseRelease, "image", h)
//
// Match on the kind with the standard library:
//
//	if errors.Is(err, errors.ErrPoolExhausted) { ... }
package errors
