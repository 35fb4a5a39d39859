package memory

// chainLink is one pool-backed sub-allocator in a ChainAllocator, plus the
// set of addresses it currently has outstanding.
type chainLink struct {
	allocator   SingleTypeAllocator
	outstanding *addressSet
}

// singleTypeFactory builds a fresh SingleTypeAllocator over a newly
// allocated pool of a fixed size. ChainAllocator is parameterised by one
// of these rather than by a concrete allocator type, so it composes with
// either FreeListAllocator or BuddyAllocator (spec §4.3).
type singleTypeFactory func(pool *MemoryPool) SingleTypeAllocator

// NewFreeListFactory returns a factory that wraps each new pool in a
// FreeListAllocator.
func NewFreeListFactory() singleTypeFactory {
	return func(pool *MemoryPool) SingleTypeAllocator { return NewFreeListAllocator(pool) }
}

// NewBuddyFactory returns a factory that wraps each new pool in a
// BuddyAllocator with the given minimum granularity.
func NewBuddyFactory(minGranularity uint64) singleTypeFactory {
	return func(pool *MemoryPool) SingleTypeAllocator { return NewBuddyAllocator(pool, minGranularity) }
}

// ChainAllocator grows an elastic sequence of same-sized, same-type pools
// on demand (spec §4.3). Each link is tried in insertion order; when every
// existing link is exhausted a fresh one is appended.
type ChainAllocator struct {
	typeIndex MemoryTypeIndex
	poolSize  uint64
	factory   singleTypeFactory
	links     []*chainLink
}

// NewChainAllocator constructs the first link immediately and returns a
// ready-to-use chain. Panics if the driver cannot provide that first pool.
func NewChainAllocator(typeIndex MemoryTypeIndex, poolSize uint64, factory singleTypeFactory) *ChainAllocator {
	c := &ChainAllocator{typeIndex: typeIndex, poolSize: poolSize, factory: factory}
	if _, err := c.extend(); err != nil {
		panic("memory: ChainAllocator failed to allocate its first pool: " + err.Error())
	}
	return c
}

// TypeIndex implements SingleTypeAllocator.
func (c *ChainAllocator) TypeIndex() MemoryTypeIndex { return c.typeIndex }

func (c *ChainAllocator) extend() (*chainLink, error) {
	pool, err := AllocatePool(c.typeIndex, c.poolSize)
	if err != nil {
		return nil, err
	}
	Logger().Debug("chain allocator grew", "type", c.typeIndex.Index(), "links", len(c.links)+1)

	link := &chainLink{allocator: c.factory(pool), outstanding: newAddressSet(16)}
	c.links = append(c.links, link)
	return link, nil
}

// Allocate implements SingleTypeAllocator (spec §4.3): walks links in
// insertion order, stopping at the first success or the first
// InsufficientPoolSize (no later link of the same pool size will do any
// better). On falling off the end, appends a fresh link and retries once;
// if the driver cannot provide the fresh pool, its OutOfMemory is
// returned. Returned blocks free back through this chain.
func (c *ChainAllocator) Allocate(request AllocationRequest) (MemoryBlock, error) {
	for _, link := range c.links {
		block, err := link.allocator.Allocate(request)
		if err == nil {
			link.outstanding.add(block.Address())
			block.allocator = c
			return block, nil
		}
		if IsInsufficientPoolSize(err) {
			return MemoryBlock{}, err
		}
	}

	link, err := c.extend()
	if err != nil {
		return MemoryBlock{}, err
	}
	block, err := link.allocator.Allocate(request)
	if err != nil {
		return MemoryBlock{}, err
	}
	link.outstanding.add(block.Address())
	block.allocator = c
	return block, nil
}

// Free implements SingleTypeAllocator: locates the one link whose
// outstanding set contains the block's address and routes Free there,
// returning immediately on the match rather than continuing to scan every
// remaining link.
func (c *ChainAllocator) Free(block MemoryBlock) {
	addr := block.Address()
	for _, link := range c.links {
		if link.outstanding.contains(addr) {
			link.outstanding.remove(addr)
			link.allocator.Free(block)
			return
		}
	}
	panic("memory: ChainAllocator.Free: address not found in any link")
}

// Stats implements SingleTypeAllocator: the sum of every link's own
// Stats, so growing the chain is reflected in BlockCount without this
// allocator needing to track anything its links don't already.
func (c *ChainAllocator) Stats() PoolStats {
	var total PoolStats
	for _, link := range c.links {
		total = total.add(link.allocator.Stats())
	}
	return total
}
