package memory

// NaiveAllocator allocates a fresh, request-sized pool for every call and
// frees the whole pool back to the driver when that allocation is freed
// (spec §4.4: "a one-pool-per-request style allocator"). It never runs
// out of memory for any reason the driver itself wouldn't also fail for,
// which is exactly the property a fallback path needs: it trades
// per-allocation driver overhead for always being able to satisfy
// whatever a tighter allocator couldn't.
type NaiveAllocator struct {
	typeIndex MemoryTypeIndex
	pools     map[Address]*MemoryPool
}

// NewNaiveAllocator returns an allocator with no pools yet provisioned.
func NewNaiveAllocator(typeIndex MemoryTypeIndex) *NaiveAllocator {
	return &NaiveAllocator{typeIndex: typeIndex, pools: make(map[Address]*MemoryPool)}
}

// TypeIndex implements SingleTypeAllocator.
func (n *NaiveAllocator) TypeIndex() MemoryTypeIndex { return n.typeIndex }

// Allocate implements SingleTypeAllocator: provisions a pool sized
// exactly to the request. The driver guarantees a fresh block's start
// satisfies every type's maximum alignment requirement (spec §3), so
// offset 0 always satisfies request.Alignment.
func (n *NaiveAllocator) Allocate(request AllocationRequest) (MemoryBlock, error) {
	if !request.AcceptsType(n.typeIndex.Index()) {
		panic("memory: NaiveAllocator.Allocate called with a request that excludes this allocator's type")
	}

	pool, err := AllocatePool(n.typeIndex, request.Size)
	if err != nil {
		return MemoryBlock{}, err
	}

	block := pool.AllocateView(n, 0, request.Size)
	n.pools[block.Address()] = pool
	return block, nil
}

// Free implements SingleTypeAllocator: releases the whole pool backing
// block back to the driver.
func (n *NaiveAllocator) Free(block MemoryBlock) {
	addr := block.Address()
	pool, ok := n.pools[addr]
	if !ok {
		panic("memory: NaiveAllocator.Free: address does not correspond to a live allocation")
	}
	delete(n.pools, addr)
	pool.Release()
}

// Stats implements SingleTypeAllocator: every pool this allocator holds
// is fully consumed by the single request it was sized for, so UsedSize
// always equals TotalSize.
func (n *NaiveAllocator) Stats() PoolStats {
	stats := PoolStats{BlockCount: len(n.pools), AllocationCount: uint64(len(n.pools))}
	for _, pool := range n.pools {
		stats.TotalSize += pool.Size()
	}
	stats.UsedSize = stats.TotalSize
	return stats
}
