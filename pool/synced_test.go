package pool

import (
	"sync"
	"testing"

	"github.com/wippyai/slotpool"
)

func TestSynced_Basic(t *testing.T) {
	s, err := NewSynced[int](Config{Name: "synced", Capacity: 8})
	if err != nil {
		t.Fatal(err)
	}

	h, err := s.Allocate(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Activate(h); err != nil {
		t.Fatal(err)
	}
	if !s.Update(h, func(v *int) { *v = 10 }) {
		t.Fatal("Update failed")
	}

	var seen int
	if !s.View(h, func(v *int) { seen = *v }) || seen != 10 {
		t.Fatalf("View saw %d", seen)
	}
	if v, ok := s.Get(h); !ok || v != 10 {
		t.Fatalf("Get = %d, %v", v, ok)
	}
	if s.State(h) != StateValid || s.Len() != 1 || s.Capacity() != 8 {
		t.Fatal("unexpected state")
	}
	if err := s.Release(h); err != nil {
		t.Fatal(err)
	}
	if s.View(h, func(*int) {}) || s.Update(h, func(*int) {}) {
		t.Fatal("released handle still resolves")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSynced_InvalidConfig(t *testing.T) {
	if _, err := NewSynced[int](Config{Capacity: 0}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSynced_Concurrent(t *testing.T) {
	s, err := NewSynced[int](Config{Name: "concurrent", Capacity: 1024})
	if err != nil {
		t.Fatal(err)
	}

	var events int
	var mu sync.Mutex
	s.Subscribe(ObserverFunc(func(Event) {
		mu.Lock()
		events++
		mu.Unlock()
	}))

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	handles := make([][]slotpool.Handle, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				h, err := s.Allocate(w*perWorker + i)
				if err != nil {
					t.Errorf("Allocate: %v", err)
					return
				}
				if err := s.Activate(h); err != nil {
					t.Errorf("Activate: %v", err)
					return
				}
				if i%2 == 0 {
					if err := s.Release(h); err != nil {
						t.Errorf("Release: %v", err)
						return
					}
					continue
				}
				handles[w] = append(handles[w], h)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[slotpool.Handle]bool)
	for w, hs := range handles {
		for _, h := range hs {
			if seen[h] {
				t.Fatalf("duplicate live handle %v", h)
			}
			seen[h] = true
			if _, ok := s.Get(h); !ok {
				t.Fatalf("worker %d handle %v lost", w, h)
			}
		}
	}
	if s.Len() != workers*perWorker/2 {
		t.Fatalf("Len() = %d", s.Len())
	}

	mu.Lock()
	defer mu.Unlock()
	want := workers * perWorker * 2 // allocate + activate
	want += workers * perWorker / 2 // releases
	if events != want {
		t.Fatalf("events = %d, want %d", events, want)
	}
}
