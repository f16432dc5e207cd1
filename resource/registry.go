package resource

import (
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

// Config sets per-kind pool capacities. A zero field selects the kind's
// default; other values must be in (0, slotpool.MaxPoolSize].
type Config struct {
	Buffers   int
	Images    int
	Shaders   int
	Pipelines int
	Passes    int
	Contexts  int
}

// DefaultConfig returns the documented default capacities.
func DefaultConfig() Config {
	return Config{
		Buffers:   slotpool.DefaultBufferPoolSize,
		Images:    slotpool.DefaultImagePoolSize,
		Shaders:   slotpool.DefaultShaderPoolSize,
		Pipelines: slotpool.DefaultPipelinePoolSize,
		Passes:    slotpool.DefaultPassPoolSize,
		Contexts:  slotpool.DefaultContextPoolSize,
	}
}

// Capacity returns the configured capacity for k, applying the default for zero.
func (c Config) Capacity(k Kind) int {
	var v int
	switch k {
	case KindBuffer:
		v = c.Buffers
	case KindImage:
		v = c.Images
	case KindShader:
		v = c.Shaders
	case KindPipeline:
		v = c.Pipelines
	case KindPass:
		v = c.Passes
	case KindContext:
		v = c.Contexts
	}
	if v == 0 {
		return k.DefaultCapacity()
	}
	return v
}

// Registry owns one pool per resource kind. All methods are safe for
// concurrent use; each pool has its own lock.
type Registry struct {
	buffers   *pool.Synced[Buffer]
	images    *pool.Synced[Image]
	shaders   *pool.Synced[Shader]
	pipelines *pool.Synced[Pipeline]
	passes    *pool.Synced[Pass]
	contexts  *pool.Synced[Context]

	log *zap.Logger

	// ctxMu is always taken before any pool lock.
	ctxMu   sync.RWMutex
	current ContextID
	ctxSeq  uint64

	closeMu sync.RWMutex
	closed  bool
}

// NewRegistry creates the six pools.
func NewRegistry(cfg Config) (*Registry, error) {
	r := &Registry{log: Logger()}

	var err error
	if r.buffers, err = newPool[Buffer](cfg, KindBuffer); err != nil {
		return nil, err
	}
	if r.images, err = newPool[Image](cfg, KindImage); err != nil {
		return nil, err
	}
	if r.shaders, err = newPool[Shader](cfg, KindShader); err != nil {
		return nil, err
	}
	if r.pipelines, err = newPool[Pipeline](cfg, KindPipeline); err != nil {
		return nil, err
	}
	if r.passes, err = newPool[Pass](cfg, KindPass); err != nil {
		return nil, err
	}
	if r.contexts, err = newPool[Context](cfg, KindContext); err != nil {
		return nil, err
	}

	obs := &logObserver{log: r.log}
	r.buffers.Subscribe(obs)
	r.images.Subscribe(obs)
	r.shaders.Subscribe(obs)
	r.pipelines.Subscribe(obs)
	r.passes.Subscribe(obs)
	r.contexts.Subscribe(obs)

	r.log.Info("resource registry created",
		zap.Int("buffers", r.buffers.Capacity()),
		zap.Int("images", r.images.Capacity()),
		zap.Int("shaders", r.shaders.Capacity()),
		zap.Int("pipelines", r.pipelines.Capacity()),
		zap.Int("passes", r.passes.Capacity()),
		zap.Int("contexts", r.contexts.Capacity()))

	return r, nil
}

func newPool[T any](cfg Config, k Kind) (*pool.Synced[T], error) {
	return pool.NewSynced[T](pool.Config{Name: k.String(), Capacity: cfg.Capacity(k)})
}

// Stats returns per-kind pool statistics in Kinds order.
func (r *Registry) Stats() []pool.Stats {
	return []pool.Stats{
		r.buffers.Stats(),
		r.images.Stats(),
		r.shaders.Stats(),
		r.pipelines.Stats(),
		r.passes.Stats(),
		r.contexts.Stats(),
	}
}

// Subscribe registers o on every pool and returns a function that removes it.
// Observers run under pool locks and must not call back into the registry.
func (r *Registry) Subscribe(o pool.Observer) func() {
	unsubs := []func(){
		r.buffers.Subscribe(o),
		r.images.Subscribe(o),
		r.shaders.Subscribe(o),
		r.pipelines.Subscribe(o),
		r.passes.Subscribe(o),
		r.contexts.Subscribe(o),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Close releases every resource in dependency order. Further Make calls fail
// with errors.ErrClosed. Close is idempotent.
func (r *Registry) Close() error {
	r.closeMu.Lock()
	if r.closed {
		r.closeMu.Unlock()
		return nil
	}
	r.closed = true
	r.closeMu.Unlock()

	st := r.Stats()
	live := 0
	for _, s := range st {
		live += s.Live
	}

	_ = r.passes.Close()
	_ = r.pipelines.Close()
	_ = r.shaders.Close()
	_ = r.images.Close()
	_ = r.buffers.Close()
	_ = r.contexts.Close()

	r.ctxMu.Lock()
	r.current = 0
	r.ctxMu.Unlock()

	r.log.Info("resource registry closed", zap.Int("released", live))
	return nil
}

func (r *Registry) isClosed() bool {
	r.closeMu.RLock()
	defer r.closeMu.RUnlock()
	return r.closed
}

// logObserver forwards slot events to zap at debug level.
type logObserver struct {
	log *zap.Logger
}

func (o *logObserver) OnPoolEvent(e pool.Event) {
	if ce := o.log.Check(zap.DebugLevel, "slot "+e.Type.String()); ce != nil {
		ce.Write(
			zap.String("pool", e.Pool),
			zap.Stringer("handle", e.Handle),
			zap.Stringer("from", e.From),
			zap.Stringer("to", e.To))
	}
}

// truncateLabel keeps at most slotpool.LabelSize bytes without splitting a rune.
func truncateLabel(s string) string {
	if len(s) <= slotpool.LabelSize {
		return s
	}
	cut := slotpool.LabelSize
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// create runs the reserve, initialize, activate sequence on p.
// On init failure the slot is released and the init error returned.
func create[T any](r *Registry, p *pool.Synced[T], k Kind, payload T, init func(*T) error) (slotpool.Handle, error) {
	if r.isClosed() {
		return slotpool.InvalidHandle, errors.Closed(errors.PhaseCreate, k.String())
	}

	h, err := p.Allocate(payload)
	if err != nil {
		return slotpool.InvalidHandle, err
	}

	if init != nil {
		var initErr error
		p.Update(h, func(v *T) { initErr = init(v) })
		if initErr != nil {
			if relErr := p.Release(h); relErr != nil {
				r.log.Warn("release after failed init",
					zap.String("pool", k.String()),
					zap.Stringer("handle", h),
					zap.Error(relErr))
			}
			r.log.Debug("resource init failed",
				zap.String("pool", k.String()),
				zap.Error(initErr))
			return slotpool.InvalidHandle, initErr
		}
	}

	if err := p.Activate(h); err != nil {
		_ = p.Release(h)
		return slotpool.InvalidHandle, err
	}
	return h, nil
}

func invalidInput(k Kind, field, detail string) error {
	return errors.InvalidInput(errors.PhaseCreate, []string{k.String(), field}, detail)
}
