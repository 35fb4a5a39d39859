package memory

import "sort"

// FreeListAllocator carves suballocations out of one pool using a sorted
// map of free regions (spec §4.2.1). Regions are kept maximally coalesced:
// after every Free, no two stored regions are address-contiguous.
type FreeListAllocator struct {
	pool    *MemoryPool
	regions map[uint64]uint64 // offset -> size, invariant: no two entries contiguous

	usedSize        uint64
	allocationCount uint64
}

// NewFreeListAllocator wraps pool in a free-list allocator whose initial
// state is a single free region covering the whole pool.
func NewFreeListAllocator(pool *MemoryPool) *FreeListAllocator {
	a := &FreeListAllocator{pool: pool, regions: make(map[uint64]uint64)}
	a.addRegion(0, pool.Size())
	return a
}

// TypeIndex implements SingleTypeAllocator.
func (a *FreeListAllocator) TypeIndex() MemoryTypeIndex { return a.pool.TypeIndex() }

// alignedStart returns the smallest address >= offset that is a multiple
// of alignment, or ok=false if no such address fits before offset+size.
func alignedStart(offset, regionSize, alignment uint64) (aligned uint64, ok bool) {
	var diff uint64
	if m := offset % alignment; m != 0 {
		diff = alignment - m
	}
	if diff >= regionSize {
		return 0, false
	}
	return offset + diff, true
}

// Allocate implements SingleTypeAllocator (spec §4.2.1): scans regions in
// offset order, picks the first whose aligned start leaves enough room,
// and carves up to three parts out of it.
func (a *FreeListAllocator) Allocate(request AllocationRequest) (MemoryBlock, error) {
	if !request.AcceptsType(a.TypeIndex().Index()) {
		panic("memory: FreeListAllocator.Allocate called with a request that excludes this allocator's type")
	}
	if request.Size > a.pool.Size() {
		return MemoryBlock{}, ErrInsufficientPoolSize()
	}

	offsets := a.sortedOffsets()

	for _, offset := range offsets {
		size := a.regions[offset]
		aligned, ok := alignedStart(offset, size, request.Alignment)
		if !ok {
			continue
		}
		if aligned+request.Size > offset+size {
			continue
		}

		delete(a.regions, offset)

		prefix := aligned - offset
		if prefix > 0 {
			a.addRegion(offset, prefix)
		}

		suffix := (offset + size) - (aligned + request.Size)
		if suffix > 0 {
			a.addRegion(aligned+request.Size, suffix)
		}

		a.usedSize += request.Size
		a.allocationCount++
		return a.pool.AllocateView(a, aligned, request.Size), nil
	}

	return MemoryBlock{}, ErrOutOfMemory()
}

// Free implements SingleTypeAllocator: reinserts the block's range as a
// free region, then coalesces it with any contiguous neighbours.
func (a *FreeListAllocator) Free(block MemoryBlock) {
	a.usedSize -= block.Size()
	a.allocationCount--
	a.addRegion(block.Offset(), block.Size())
	a.coalesce(block.Offset())
}

// Stats implements SingleTypeAllocator.
func (a *FreeListAllocator) Stats() PoolStats {
	return PoolStats{
		BlockCount:      1,
		TotalSize:       a.pool.Size(),
		UsedSize:        a.usedSize,
		AllocationCount: a.allocationCount,
	}
}

func (a *FreeListAllocator) addRegion(offset, size uint64) {
	a.regions[offset] = size
}

func (a *FreeListAllocator) sortedOffsets() []uint64 {
	offsets := make([]uint64, 0, len(a.regions))
	for o := range a.regions {
		offsets = append(offsets, o)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	return offsets
}

// coalesce fuses the run of regions address-contiguous with the region at
// offset into one, walking forward then backward from it.
func (a *FreeListAllocator) coalesce(offset uint64) {
	offsets := a.sortedOffsets()
	pos := -1
	for i, o := range offsets {
		if o == offset {
			pos = i
			break
		}
	}
	if pos < 0 {
		panic("memory: coalesce called on an offset with no free region")
	}

	lo, hi := pos, pos
	for hi+1 < len(offsets) && offsets[hi]+a.regions[offsets[hi]] == offsets[hi+1] {
		hi++
	}
	for lo > 0 && offsets[lo-1]+a.regions[offsets[lo-1]] == offsets[lo] {
		lo--
	}
	if lo == hi {
		return
	}

	start := offsets[lo]
	var total uint64
	for i := lo; i <= hi; i++ {
		total += a.regions[offsets[i]]
		delete(a.regions, offsets[i])
	}
	a.addRegion(start, total)
}
