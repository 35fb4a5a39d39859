package memory

// FallbackAllocator wraps a main single-type allocator with a lazily
// constructed, one-pool-per-request fallback (spec §4.4): when the main
// allocator can't satisfy a request, the fallback is tried instead, sized
// exactly to that request rather than to some fixed chain pool size.
type FallbackAllocator struct {
	main       SingleTypeAllocator
	fallback   *NaiveAllocator
	outstanding *addressSet
}

// NewFallbackAllocator wraps main with a fallback of the same memory type.
func NewFallbackAllocator(main SingleTypeAllocator) *FallbackAllocator {
	return &FallbackAllocator{
		main:        main,
		fallback:    NewNaiveAllocator(main.TypeIndex()),
		outstanding: newAddressSet(4),
	}
}

// TypeIndex implements SingleTypeAllocator.
func (f *FallbackAllocator) TypeIndex() MemoryTypeIndex { return f.main.TypeIndex() }

// Allocate implements SingleTypeAllocator: tries main first; on
// OutOfMemory or InsufficientPoolSize, tries the fallback and records the
// resulting address. Any other error propagates unchanged. Returned blocks
// free back through this allocator.
func (f *FallbackAllocator) Allocate(request AllocationRequest) (MemoryBlock, error) {
	block, err := f.main.Allocate(request)
	if err == nil {
		block.allocator = f
		return block, nil
	}
	if !IsOutOfMemory(err) && !IsInsufficientPoolSize(err) {
		return MemoryBlock{}, err
	}

	block, err = f.fallback.Allocate(request)
	if err != nil {
		return MemoryBlock{}, err
	}
	f.outstanding.add(block.Address())
	block.allocator = f
	return block, nil
}

// Free implements SingleTypeAllocator: routes to the fallback if its
// address is outstanding there, otherwise to main.
func (f *FallbackAllocator) Free(block MemoryBlock) {
	addr := block.Address()
	if f.outstanding.contains(addr) {
		f.outstanding.remove(addr)
		f.fallback.Free(block)
		return
	}
	f.main.Free(block)
}

// Stats implements SingleTypeAllocator: main and fallback combined, since
// callers care about this allocator's total footprint, not which path
// served a given request.
func (f *FallbackAllocator) Stats() PoolStats {
	return f.main.Stats().add(f.fallback.Stats())
}
