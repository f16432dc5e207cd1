package slotpool

import "fmt"

// Handle layout and pool sizing.
const (
	SlotShift   = 16
	SlotMask    = (1 << SlotShift) - 1
	MaxPoolSize = 1 << SlotShift

	// MaxGeneration is the largest generation tag; the next allocation wraps to 1.
	MaxGeneration = 0xFFFF

	// LabelSize caps the bytes of debug label kept per resource.
	LabelSize = 16
)

// Default capacities per resource kind.
const (
	DefaultBufferPoolSize   = 128
	DefaultImagePoolSize    = 128
	DefaultShaderPoolSize   = 32
	DefaultPipelinePoolSize = 64
	DefaultPassPoolSize     = 16
	DefaultContextPoolSize  = 16
)

// Handle is an opaque reference to a pool slot.
// Handle 0 is reserved and always invalid.
type Handle uint32

// InvalidHandle is the "no resource" sentinel.
const InvalidHandle Handle = 0

// Pack combines a slot index and generation into a handle.
func Pack(index, generation uint16) Handle {
	return Handle(uint32(generation)<<SlotShift | uint32(index)&SlotMask)
}

// Unpack splits a handle into slot index and generation.
func Unpack(h Handle) (index, generation uint16) {
	return uint16(uint32(h) & SlotMask), uint16((uint32(h) >> SlotShift) & SlotMask)
}

// Index returns the slot index.
func (h Handle) Index() uint16 { return uint16(uint32(h) & SlotMask) }

// Generation returns the generation tag.
func (h Handle) Generation() uint16 { return uint16(uint32(h) >> SlotShift) }

// IsValid reports whether h is not the reserved sentinel.
// It says nothing about whether any pool still holds the slot.
func (h Handle) IsValid() bool { return h != InvalidHandle }

func (h Handle) String() string {
	if h == InvalidHandle {
		return "Handle(none)"
	}
	return fmt.Sprintf("Handle(%d:%d)", h.Index(), h.Generation())
}

// NextGeneration returns the generation that follows g.
// Generation 0 means "never allocated", so the sequence wraps to 1.
func NextGeneration(g uint16) uint16 {
	if g == MaxGeneration {
		return 1
	}
	return g + 1
}
