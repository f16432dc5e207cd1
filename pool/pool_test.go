package pool

import (
	"errors"
	"testing"

	"github.com/wippyai/slotpool"
	sperrors "github.com/wippyai/slotpool/errors"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnPoolEvent(e Event) {
	o.events = append(o.events, e)
}

type dropCounter struct {
	drops *int
}

func (d dropCounter) Drop() { *d.drops++ }

func newTestPool(t *testing.T, capacity int) *Pool[string] {
	t.Helper()
	p, err := New[string](Config{Name: "test", Capacity: capacity})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNew_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{"zero", 0, true},
		{"negative", -1, true},
		{"one", 1, false},
		{"default buffer", slotpool.DefaultBufferPoolSize, false},
		{"max", slotpool.MaxPoolSize, false},
		{"over max", slotpool.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New[int](Config{Name: "buffer", Capacity: tt.capacity})
			if tt.wantErr {
				if !errors.Is(err, sperrors.ErrConfig) {
					t.Fatalf("expected config error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Capacity() != tt.capacity {
				t.Fatalf("Capacity() = %d, want %d", p.Capacity(), tt.capacity)
			}
			if p.Free() != tt.capacity-1 {
				t.Fatalf("Free() = %d, want %d", p.Free(), tt.capacity-1)
			}
		})
	}
}

func TestPool_Basic(t *testing.T) {
	p := newTestPool(t, 8)

	h, err := p.Allocate("vertices")
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if h == slotpool.InvalidHandle {
		t.Fatal("Expected non-zero handle")
	}
	if h.Index() != 1 || h.Generation() != 1 {
		t.Fatalf("expected first handle (1:1), got %v", h)
	}
	if p.State(h) != StateAlloc {
		t.Fatalf("State = %v, want alloc", p.State(h))
	}

	// ALLOC slots already resolve
	v, ok := p.Lookup(h)
	if !ok || *v != "vertices" {
		t.Fatalf("Lookup = %v, %v", v, ok)
	}

	if err := p.Activate(h); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if p.State(h) != StateValid {
		t.Fatalf("State = %v, want valid", p.State(h))
	}

	*v = "indices"
	got, ok := p.Get(h)
	if !ok || got != "indices" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	if err := p.Release(h); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, ok := p.Lookup(h); ok {
		t.Fatal("Expected Lookup to fail after Release")
	}
	if p.Len() != 0 {
		t.Fatalf("Len() = %d after release", p.Len())
	}
}

func TestPool_Uniqueness(t *testing.T) {
	p := newTestPool(t, 256)
	seen := make(map[slotpool.Handle]bool)
	for i := 0; i < 255; i++ {
		h, err := p.Allocate("x")
		if err != nil {
			t.Fatalf("Allocate %d failed: %v", i, err)
		}
		if seen[h] {
			t.Fatalf("duplicate handle %v", h)
		}
		seen[h] = true
	}
}

func TestPool_LowestIndexFirst(t *testing.T) {
	p := newTestPool(t, 8)
	var hs []slotpool.Handle
	for i := 0; i < 5; i++ {
		h, _ := p.Allocate("x")
		hs = append(hs, h)
		if int(h.Index()) != i+1 {
			t.Fatalf("allocation %d got index %d", i, h.Index())
		}
	}

	// Free 4 then 2: the next allocations take 2 then 4.
	if err := p.Release(hs[3]); err != nil {
		t.Fatal(err)
	}
	if err := p.Release(hs[1]); err != nil {
		t.Fatal(err)
	}

	a, _ := p.Allocate("a")
	b, _ := p.Allocate("b")
	c, _ := p.Allocate("c")
	if a.Index() != 2 || b.Index() != 4 || c.Index() != 6 {
		t.Fatalf("got indices %d, %d, %d; want 2, 4, 6", a.Index(), b.Index(), c.Index())
	}
}

func TestPool_StaleHandle(t *testing.T) {
	p := newTestPool(t, 4)

	var hs []slotpool.Handle
	for i := 0; i < 3; i++ {
		h, err := p.Allocate("r")
		if err != nil {
			t.Fatalf("Allocate %d failed: %v", i, err)
		}
		hs = append(hs, h)
	}
	if hs[0].Index() != 1 || hs[1].Index() != 2 || hs[2].Index() != 3 {
		t.Fatalf("unexpected indices: %v", hs)
	}

	if _, err := p.Allocate("r"); !errors.Is(err, sperrors.ErrPoolExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}

	if err := p.Release(hs[0]); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	h2, err := p.Allocate("r2")
	if err != nil {
		t.Fatalf("re-Allocate failed: %v", err)
	}
	if h2.Index() != 1 || h2.Generation() != hs[0].Generation()+1 {
		t.Fatalf("expected (1:%d), got %v", hs[0].Generation()+1, h2)
	}

	if _, ok := p.Lookup(hs[0]); ok {
		t.Fatal("stale handle must not resolve")
	}
	if v, ok := p.Lookup(h2); !ok || *v != "r2" {
		t.Fatal("fresh handle must resolve")
	}
	if err := p.Release(hs[0]); !errors.Is(err, sperrors.ErrInvalidHandle) {
		t.Fatalf("release of stale handle: got %v", err)
	}
	if err := p.Activate(hs[0]); !errors.Is(err, sperrors.ErrInvalidHandle) {
		t.Fatalf("activate of stale handle: got %v", err)
	}
}

func TestPool_Exhaustion(t *testing.T) {
	const capacity = 16
	p := newTestPool(t, capacity)

	var last slotpool.Handle
	for i := 0; i < capacity-1; i++ {
		h, err := p.Allocate("x")
		if err != nil {
			t.Fatalf("Allocate %d failed: %v", i, err)
		}
		last = h
	}

	before := p.Stats()
	_, err := p.Allocate("overflow")
	if !errors.Is(err, sperrors.ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
	after := p.Stats()
	if after.Live != before.Live || after.Free != 0 || after.Exhaustions != 1 {
		t.Fatalf("exhaustion changed pool state: %+v", after)
	}

	if err := p.Release(last); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Allocate("again"); err != nil {
		t.Fatalf("Allocate after release failed: %v", err)
	}
}

func TestPool_CapacityOne(t *testing.T) {
	p := newTestPool(t, 1)
	if _, err := p.Allocate("x"); !errors.Is(err, sperrors.ErrPoolExhausted) {
		t.Fatalf("capacity 1 reserves its only slot; got %v", err)
	}
}

func TestPool_InvalidHandles(t *testing.T) {
	p := newTestPool(t, 4)
	h, _ := p.Allocate("x")

	invalid := []slotpool.Handle{
		slotpool.InvalidHandle,
		slotpool.Pack(0, 1),      // reserved slot
		slotpool.Pack(4, 1),      // index == capacity
		slotpool.Pack(0xFFFF, 1), // far out of range
		slotpool.Pack(2, 1),      // never allocated
		slotpool.Pack(1, 2),      // future generation
		slotpool.Pack(h.Index(), 0),
	}
	for _, bad := range invalid {
		if _, ok := p.Lookup(bad); ok {
			t.Errorf("Lookup(%v) should fail", bad)
		}
		if _, ok := p.Get(bad); ok {
			t.Errorf("Get(%v) should fail", bad)
		}
		if p.State(bad) != StateFree {
			t.Errorf("State(%v) should be free", bad)
		}
		if err := p.Release(bad); !errors.Is(err, sperrors.ErrInvalidHandle) {
			t.Errorf("Release(%v) = %v", bad, err)
		}
	}
	if !p.Contains(h) {
		t.Fatal("valid handle disturbed by invalid calls")
	}
}

func TestPool_StateMachine(t *testing.T) {
	p := newTestPool(t, 4)
	h, _ := p.Allocate("x")

	if err := p.Activate(h); err != nil {
		t.Fatalf("first Activate failed: %v", err)
	}
	if err := p.Activate(h); !errors.Is(err, sperrors.ErrInvalidState) {
		t.Fatalf("second Activate: got %v, want ErrInvalidState", err)
	}

	if err := p.Release(h); err != nil {
		t.Fatalf("first Release failed: %v", err)
	}
	if err := p.Release(h); !errors.Is(err, sperrors.ErrInvalidHandle) {
		t.Fatalf("second Release: got %v, want ErrInvalidHandle", err)
	}

	// Activate on a FREE slot with a matching generation.
	if err := p.Activate(h); !errors.Is(err, sperrors.ErrInvalidState) {
		t.Fatalf("Activate after release: got %v, want ErrInvalidState", err)
	}
}

func TestPool_InitFailureShortCircuit(t *testing.T) {
	p := newTestPool(t, 4)
	obs := &testObserver{}
	p.Subscribe(obs)

	h, _ := p.Allocate("half-built")
	if err := p.Release(h); err != nil {
		t.Fatalf("Release from ALLOC failed: %v", err)
	}
	if len(obs.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(obs.events))
	}
	rel := obs.events[1]
	if rel.Type != EventReleased || rel.From != StateAlloc || rel.To != StateFree {
		t.Fatalf("unexpected release event %+v", rel)
	}
}

func TestPool_GenerationMonotonic(t *testing.T) {
	p := newTestPool(t, 2)

	prev := uint16(0)
	for i := 0; i < slotpool.MaxGeneration+3; i++ {
		h, err := p.Allocate("cycle")
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		want := slotpool.NextGeneration(prev)
		if h.Generation() != want {
			t.Fatalf("cycle %d: generation %d, want %d", i, h.Generation(), want)
		}
		if h.Generation() == 0 {
			t.Fatal("generation 0 must never be issued")
		}
		if err := p.Release(h); err != nil {
			t.Fatalf("cycle %d release: %v", i, err)
		}
		prev = h.Generation()
	}

	if p.Stats().GenerationWraps != 1 {
		t.Fatalf("GenerationWraps = %d, want 1", p.Stats().GenerationWraps)
	}
}

func TestPool_Dropper(t *testing.T) {
	drops := 0
	p, err := New[dropCounter](Config{Name: "drop", Capacity: 8})
	if err != nil {
		t.Fatal(err)
	}

	h1, _ := p.Allocate(dropCounter{drops: &drops})
	_, _ = p.Allocate(dropCounter{drops: &drops})
	_, _ = p.Allocate(dropCounter{drops: &drops})

	if err := p.Release(h1); err != nil {
		t.Fatal(err)
	}
	if drops != 1 {
		t.Fatalf("drops = %d after release, want 1", drops)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if drops != 3 {
		t.Fatalf("drops = %d after close, want 3", drops)
	}
}

func TestPool_Close(t *testing.T) {
	p := newTestPool(t, 4)
	h, _ := p.Allocate("x")

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal("Close should be idempotent")
	}
	if !p.Closed() {
		t.Fatal("Closed() = false")
	}
	if _, ok := p.Lookup(h); ok {
		t.Fatal("Lookup should fail after Close")
	}
	if _, err := p.Allocate("y"); !errors.Is(err, sperrors.ErrClosed) {
		t.Fatalf("Allocate after Close: %v", err)
	}
	if err := p.Activate(h); !errors.Is(err, sperrors.ErrClosed) {
		t.Fatalf("Activate after Close: %v", err)
	}
	if err := p.Release(h); !errors.Is(err, sperrors.ErrClosed) {
		t.Fatalf("Release after Close: %v", err)
	}
}

func TestPool_EachAndStats(t *testing.T) {
	p := newTestPool(t, 8)
	a, _ := p.Allocate("a")
	b, _ := p.Allocate("b")
	_, _ = p.Allocate("c")
	_ = p.Activate(a)
	_ = p.Activate(b)

	var got []string
	p.Each(func(_ slotpool.Handle, _ State, v *string) bool {
		got = append(got, *v)
		return true
	})
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("Each visited %v", got)
	}

	count := 0
	p.Each(func(slotpool.Handle, State, *string) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Each should stop early, visited %d", count)
	}

	st := p.Stats()
	if st.Name != "test" || st.Capacity != 8 || st.Live != 3 || st.Valid != 2 || st.Alloc != 1 || st.Free != 4 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.Allocations != 3 || st.Releases != 0 {
		t.Fatalf("unexpected counters %+v", st)
	}
	if hs := p.Handles(); len(hs) != 3 || hs[0] != a || hs[1] != b {
		t.Fatalf("Handles() = %v", hs)
	}
}

func TestPool_Observer(t *testing.T) {
	p := newTestPool(t, 4)
	obs := &testObserver{}
	unsubscribe := p.Subscribe(obs)

	var fnEvents int
	p.Subscribe(ObserverFunc(func(Event) { fnEvents++ }))

	h, _ := p.Allocate("x")
	_ = p.Activate(h)
	_ = p.Release(h)

	if len(obs.events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(obs.events))
	}
	wantTypes := []EventType{EventAllocated, EventActivated, EventReleased}
	for i, e := range obs.events {
		if e.Type != wantTypes[i] {
			t.Errorf("event %d: %v, want %v", i, e.Type, wantTypes[i])
		}
		if e.Handle != h || e.Pool != "test" {
			t.Errorf("event %d: wrong handle or pool %+v", i, e)
		}
	}
	if fnEvents != 3 {
		t.Fatalf("ObserverFunc saw %d events", fnEvents)
	}

	unsubscribe()
	_, _ = p.Allocate("y")
	if len(obs.events) != 3 {
		t.Fatal("unsubscribed observer still notified")
	}
	if fnEvents != 4 {
		t.Fatal("remaining observer not notified")
	}
}

func TestPool_FailedOpsDoNotNotify(t *testing.T) {
	p := newTestPool(t, 2)
	obs := &testObserver{}
	p.Subscribe(obs)

	h, _ := p.Allocate("x")
	_, _ = p.Allocate("y") // exhausted
	_ = p.Release(slotpool.Pack(1, 9))
	_ = p.Activate(h)
	_ = p.Activate(h)

	if len(obs.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(obs.events))
	}
}

func TestStateAndEventStrings(t *testing.T) {
	if StateFree.String() != "free" || StateAlloc.String() != "alloc" || StateValid.String() != "valid" {
		t.Fatal("state strings")
	}
	if State(9).String() != "unknown" {
		t.Fatal("unknown state string")
	}
	if EventAllocated.String() != "allocated" || EventReleased.String() != "released" {
		t.Fatal("event strings")
	}
}

func BenchmarkPool_AllocateRelease(b *testing.B) {
	p, _ := New[int](Config{Name: "bench", Capacity: 1024})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h, _ := p.Allocate(i)
		_ = p.Release(h)
	}
}

func BenchmarkPool_Lookup(b *testing.B) {
	p, _ := New[int](Config{Name: "bench", Capacity: 1024})
	h, _ := p.Allocate(42)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = p.Lookup(h)
	}
}
