package memory

// SingleTypeAllocator is the contract every single-memory-type allocator
// in this package satisfies (spec §4.2): FreeListAllocator, BuddyAllocator,
// ChainAllocator, and FallbackAllocator all implement it, and compose with
// each other through it rather than through concrete types.
type SingleTypeAllocator interface {
	// Allocate carves a region of request.Size bytes, aligned to
	// request.Alignment, out of memory this allocator owns. Callers must
	// ensure request.AcceptsType(allocator's type index); violating this
	// is a programmer error.
	Allocate(request AllocationRequest) (MemoryBlock, error)

	// Free releases a block previously returned by this allocator's
	// Allocate (possibly routed through a composite). Freeing an address
	// this allocator does not recognise is a programmer error.
	Free(block MemoryBlock)

	// TypeIndex reports the memory type this allocator is bound to.
	TypeIndex() MemoryTypeIndex

	// Stats returns a snapshot of this allocator's current pool usage.
	Stats() PoolStats
}
