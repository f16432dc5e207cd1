// Package slotpool provides generation-tagged handles for fixed-capacity
// resource pools.
//
// A handle is an opaque 32-bit value that names a slot in a pool together
// with the generation the slot had when the handle was issued. Freed and
// reused slots get a new generation, so a handle held past the release of its
// resource stops resolving instead of silently aliasing the new occupant.
//
// # Architecture Overview
//
//	slotpool/           Handle layout, Pack/Unpack and pool size constants
//	├── pool/           Generic fixed-capacity slot pool and its locked wrapper
//	├── resource/       Buffer, image, shader, pipeline, pass and context pools
//	├── config/         Pool capacities and logging, loaded from TOML or YAML
//	├── errors/         Structured error types
//	└── cmd/sgpool/     Command line inspector and churn simulator
//
// # Handle Layout
//
//	bit 31 ......... bit 16 | bit 15 ......... bit 0
//	   generation (16)      |    slot index (16)
//
// Handle 0 is reserved and never issued by a pool.
//
// # Quick Start
//
//	reg, err := resource.NewRegistry(resource.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.Close()
//
//	buf, err := reg.MakeBuffer(resource.BufferDesc{
//	    Label: "vertices",
//	    Size:  4096,
//	    Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.DestroyBuffer(buf)
//
// # Thread Safety
//
// pool.Pool is a single-owner structure: callers serialize mutations.
// pool.Synced and resource.Registry guard each pool with its own lock.
package slotpool
