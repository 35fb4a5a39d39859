package memory

// buddyBlock is one node of a buddy allocator's arena-indexed tree (spec
// §3, §4.2.2, §4.7). left/right/parent are arena indices; -1 means
// absent. Nodes are never removed once created; splits are monotonic.
type buddyBlock struct {
	offset, size           uint64
	allocated              bool
	anyDescendantAllocated bool
	left, right            int
	parent                 int
}

// BuddyAllocator carves power-of-two-aligned suballocations out of one
// pool via repeated halving (spec §4.2.2). Accepts internal fragmentation
// in exchange for O(log(pool-size/min-granularity)) allocate/free and
// coalescing that falls out of the tree structure for free.
type BuddyAllocator struct {
	pool            *MemoryPool
	minGranularity  uint64
	blocks          []buddyBlock
	spaceAllocated  uint64
	allocationCount uint64
}

// NewBuddyAllocator wraps pool in a buddy allocator with the given
// minimum granularity. pool.Size() must be a power of two strictly
// greater than 2*minBlockSize, and minGranularity a power of two greater
// than minBlockSize.
func NewBuddyAllocator(pool *MemoryPool, minGranularity uint64) *BuddyAllocator {
	if !isPowerOfTwo(pool.Size()) || pool.Size() <= 2*minBlockSize {
		panic("memory: BuddyAllocator pool size must be a power of two > 2*minBlockSize")
	}
	if !isPowerOfTwo(minGranularity) || minGranularity <= minBlockSize {
		panic("memory: BuddyAllocator minGranularity must be a power of two > minBlockSize")
	}

	return &BuddyAllocator{
		pool:           pool,
		minGranularity: minGranularity,
		blocks:         []buddyBlock{{offset: 0, size: pool.Size(), left: -1, right: -1, parent: -1}},
	}
}

// TypeIndex implements SingleTypeAllocator.
func (a *BuddyAllocator) TypeIndex() MemoryTypeIndex { return a.pool.TypeIndex() }

func (a *BuddyAllocator) hasChildren(i int) bool { return a.blocks[i].left >= 0 }

// split turns a free, childless node into two half-size children.
func (a *BuddyAllocator) split(i int) {
	b := a.blocks[i]
	if b.allocated {
		panic("memory: cannot split an allocated buddy block")
	}
	if a.hasChildren(i) {
		panic("memory: buddy block already split")
	}

	half := b.size / 2
	leftIdx := len(a.blocks)
	a.blocks = append(a.blocks, buddyBlock{offset: b.offset, size: half, left: -1, right: -1, parent: i})
	rightIdx := len(a.blocks)
	a.blocks = append(a.blocks, buddyBlock{offset: b.offset + half, size: half, left: -1, right: -1, parent: i})

	a.blocks[i].left = leftIdx
	a.blocks[i].right = rightIdx
}

// Allocate implements SingleTypeAllocator via the breadth-first-then-depth
// search described in spec §4.2.2: nodes are explored left child first,
// splitting on demand, until one is "small enough" with no allocated
// descendant, or the search is exhausted.
func (a *BuddyAllocator) Allocate(request AllocationRequest) (MemoryBlock, error) {
	if !request.AcceptsType(a.TypeIndex().Index()) {
		panic("memory: BuddyAllocator.Allocate called with a request that excludes this allocator's type")
	}

	chosen := -1
	queue := []int{0}
	for len(queue) > 0 {
		cursor := queue[0]
		queue = queue[1:]
		b := a.blocks[cursor]

		if b.offset%request.Alignment != 0 {
			continue
		}
		if b.allocated || b.size < request.Size {
			continue
		}
		if (b.size < 2*request.Size || b.size == a.minGranularity) && !b.anyDescendantAllocated {
			chosen = cursor
			break
		}
		if b.size > a.minGranularity {
			if !a.hasChildren(cursor) {
				a.split(cursor)
			}
			left, right := a.blocks[cursor].left, a.blocks[cursor].right
			queue = append([]int{left, right}, queue...)
		}
	}

	if chosen < 0 {
		return MemoryBlock{}, ErrOutOfMemory()
	}

	a.blocks[chosen].allocated = true
	a.blocks[chosen].anyDescendantAllocated = true
	a.spaceAllocated += a.blocks[chosen].size
	a.allocationCount++

	for p := a.blocks[chosen].parent; p >= 0; p = a.blocks[p].parent {
		if a.blocks[p].anyDescendantAllocated {
			break
		}
		a.blocks[p].anyDescendantAllocated = true
	}

	picked := a.blocks[chosen]
	return a.pool.AllocateView(a, picked.offset, picked.size), nil
}

// Free implements SingleTypeAllocator: descends from the root following
// whichever child's range contains the block's offset until it finds the
// allocated node, clears its flags, and recomputes any-descendant-allocated
// on every ancestor whose value changes as a result.
func (a *BuddyAllocator) Free(block MemoryBlock) {
	idx := 0
	for {
		b := a.blocks[idx]
		if b.allocated {
			if b.offset != block.Offset() {
				panic("memory: BuddyAllocator.Free: address does not match the live block found")
			}
			break
		}
		if !a.hasChildren(idx) {
			panic("memory: BuddyAllocator.Free: address does not correspond to a live block")
		}
		mid := b.offset + b.size/2
		if block.Offset() >= mid {
			idx = b.right
		} else {
			idx = b.left
		}
	}

	a.blocks[idx].allocated = false
	a.blocks[idx].anyDescendantAllocated = false
	a.spaceAllocated -= a.blocks[idx].size
	a.allocationCount--

	for p := a.blocks[idx].parent; p >= 0; {
		if !a.blocks[p].anyDescendantAllocated {
			break
		}
		left, right := a.blocks[p].left, a.blocks[p].right
		active := (left >= 0 && a.blocks[left].anyDescendantAllocated) || (right >= 0 && a.blocks[right].anyDescendantAllocated)
		a.blocks[p].anyDescendantAllocated = active
		if active {
			break
		}
		p = a.blocks[p].parent
	}
}

// Stats implements SingleTypeAllocator.
func (a *BuddyAllocator) Stats() PoolStats {
	return PoolStats{
		BlockCount:      1,
		TotalSize:       a.pool.Size(),
		UsedSize:        a.spaceAllocated,
		AllocationCount: a.allocationCount,
	}
}
