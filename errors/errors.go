package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation produced the error
type Phase string

const (
	PhaseConfig   Phase = "config"   // pool or registry construction
	PhaseAllocate Phase = "allocate" // slot reservation
	PhaseActivate Phase = "activate" // ALLOC to VALID transition
	PhaseRelease  Phase = "release"  // slot release
	PhaseLookup   Phase = "lookup"   // handle resolution
	PhaseCreate   Phase = "create"   // resource initialization
	PhaseLoad     Phase = "load"     // configuration file loading
)

// Kind categorizes the error
type Kind string

const (
	KindConfig        Kind = "config"
	KindPoolExhausted Kind = "pool_exhausted"
	KindInvalidHandle Kind = "invalid_handle"
	KindInvalidState  Kind = "invalid_state"
	KindClosed        Kind = "closed"
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
)

// Sentinels for errors.Is. They match any phase.
var (
	ErrConfig        = &Error{Kind: KindConfig}
	ErrPoolExhausted = &Error{Kind: KindPoolExhausted}
	ErrInvalidHandle = &Error{Kind: KindInvalidHandle}
	ErrInvalidState  = &Error{Kind: KindInvalidState}
	ErrClosed        = &Error{Kind: KindClosed}
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
	ErrNotFound      = &Error{Kind: KindNotFound}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Phase == "" || t.Phase == e.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the pool or field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ConfigError creates a configuration error for a pool capacity or option
func ConfigError(pool string, value any, detail string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindConfig,
		Path:   pathOf(pool),
		Value:  value,
		Detail: detail,
	}
}

// PoolExhausted creates an exhaustion error for a pool at capacity
func PoolExhausted(pool string, capacity int) *Error {
	return &Error{
		Phase:  PhaseAllocate,
		Kind:   KindPoolExhausted,
		Path:   pathOf(pool),
		Value:  capacity,
		Detail: fmt.Sprintf("no free slot (capacity %d)", capacity),
	}
}

// InvalidHandle creates an error for a stale, freed or malformed handle
func InvalidHandle(phase Phase, pool string, handle any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Path:   pathOf(pool),
		Value:  handle,
		Detail: fmt.Sprintf("handle %v does not name a live slot", handle),
	}
}

// InvalidState creates an error for a disallowed slot state transition
func InvalidState(phase Phase, pool string, handle any, from, to string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Path:   pathOf(pool),
		Value:  handle,
		Detail: fmt.Sprintf("cannot move slot of %v from %s to %s", handle, from, to),
	}
}

// Closed creates an error for an operation on a shut down pool
func Closed(phase Phase, pool string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Path:   pathOf(pool),
		Detail: "pool closed",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Value:  value,
		Detail: fmt.Sprintf("%s %v not found", what, value),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a configuration loading error
func Load(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindConfig,
		Detail: fmt.Sprintf("load %s", path),
		Cause:  cause,
	}
}

func pathOf(pool string) []string {
	if pool == "" {
		return nil
	}
	return []string{pool}
}
