package memory

// PoolStats is a read-only snapshot of one allocator's usage of the
// driver-level pool(s) backing it: how many driver blocks it has
// provisioned, how much of that it has handed out, and how many live
// allocations are outstanding. It is never consulted by any allocator's
// own control flow — purely a diagnostic for callers inspecting
// allocator health.
type PoolStats struct {
	BlockCount      int
	TotalSize       uint64
	UsedSize        uint64
	AllocationCount uint64
}

// AllocatorStats aggregates PoolStats across every memory type a
// PolyAllocator has touched.
type AllocatorStats struct {
	TotalAllocated  uint64
	TotalUsed       uint64
	AllocationCount uint64
}

func (s PoolStats) add(other PoolStats) PoolStats {
	return PoolStats{
		BlockCount:      s.BlockCount + other.BlockCount,
		TotalSize:       s.TotalSize + other.TotalSize,
		UsedSize:        s.UsedSize + other.UsedSize,
		AllocationCount: s.AllocationCount + other.AllocationCount,
	}
}
