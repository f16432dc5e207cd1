package pool

import "math/bits"

// freeSet tracks free slot indices as a two-level bitmap.
// summary bit w is set when words[w] has any bit set, so the lowest free
// index is found with at most len(summary)+1 word scans.
type freeSet struct {
	words   []uint64
	summary []uint64
	count   int
}

func newFreeSet(capacity int) *freeSet {
	nwords := (capacity + 63) / 64
	return &freeSet{
		words:   make([]uint64, nwords),
		summary: make([]uint64, (nwords+63)/64),
	}
}

func (s *freeSet) push(idx int) {
	w, b := idx>>6, uint(idx&63)
	if s.words[w]&(1<<b) != 0 {
		return
	}
	s.words[w] |= 1 << b
	s.summary[w>>6] |= 1 << uint(w&63)
	s.count++
}

// popLowest removes and returns the lowest free index, or -1 when empty.
func (s *freeSet) popLowest() int {
	for si, sw := range s.summary {
		if sw == 0 {
			continue
		}
		w := si<<6 + bits.TrailingZeros64(sw)
		b := bits.TrailingZeros64(s.words[w])
		s.words[w] &^= 1 << uint(b)
		if s.words[w] == 0 {
			s.summary[si] &^= 1 << uint(w&63)
		}
		s.count--
		return w<<6 + b
	}
	return -1
}

func (s *freeSet) len() int { return s.count }
