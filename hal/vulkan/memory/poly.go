package memory

// polyLink is one memory type's lazily-constructed sub-allocator, plus
// the set of addresses a PolyAllocator has routed to it.
type polyLink struct {
	allocator   SingleTypeAllocator
	outstanding *addressSet
}

// PolyAllocator dispatches allocation requests across every memory type
// on the device (spec §4.5). Given a MemoryTypeCriteria plus an
// AllocationRequest, it ranks candidate types, picks the best, and
// forwards to a chain-of-buddy-or-free-list sub-allocator it constructs
// on first use for that type.
type PolyAllocator struct {
	device  *PhysicalDevice
	config  AllocatorConfig
	factory singleTypeFactory

	byType map[uint32]*polyLink
}

// NewPolyAllocator returns a PolyAllocator with no per-type sub-allocators
// yet constructed. factory determines what each chain link wraps
// (NewBuddyFactory or NewFreeListFactory).
func NewPolyAllocator(device *PhysicalDevice, config AllocatorConfig, factory singleTypeFactory) *PolyAllocator {
	config.Validate()
	return &PolyAllocator{device: device, config: config, factory: factory, byType: make(map[uint32]*polyLink)}
}

func (p *PolyAllocator) linkFor(t MemoryTypeIndex) *polyLink {
	link, ok := p.byType[t.Index()]
	if ok {
		return link
	}

	poolSize := p.config.PoolSizeFor(t)
	chain := NewChainAllocator(t, poolSize, p.factory)
	link = &polyLink{allocator: chain, outstanding: newAddressSet(16)}
	p.byType[t.Index()] = link
	return link
}

// Allocate implements the resource-facing contract of spec §6: ranks
// candidate memory types for criteria, picks the first, and forwards to
// (lazily constructing) that type's sub-allocator.
func (p *PolyAllocator) Allocate(request AllocationRequest, criteria MemoryTypeCriteria) (MemoryBlock, error) {
	candidates := p.device.SearchMemoryTypes(criteria)
	if len(candidates) == 0 {
		panic("memory: PolyAllocator.Allocate: no memory type satisfies the given criteria")
	}

	selected := candidates[0]
	link := p.linkFor(selected)

	block, err := link.allocator.Allocate(request)
	if err != nil {
		return MemoryBlock{}, err
	}
	link.outstanding.add(block.Address())
	return block, nil
}

// Free implements spec §4.5's free path: scans the per-type bookkeeping
// for the set containing the block's address and delegates there.
// Failure to locate it is a programmer error.
func (p *PolyAllocator) Free(block MemoryBlock) {
	addr := block.Address()
	for _, link := range p.byType {
		if link.outstanding.contains(addr) {
			link.outstanding.remove(addr)
			link.allocator.Free(block)
			return
		}
	}
	panic("memory: PolyAllocator.Free: address not found in any memory type's sub-allocator")
}

// PoolStats returns the usage snapshot for one memory type's
// sub-allocator, or ok=false if that type has never been allocated from
// (and so has no sub-allocator constructed yet).
func (p *PolyAllocator) PoolStats(typeIndex uint32) (stats PoolStats, ok bool) {
	link, ok := p.byType[typeIndex]
	if !ok {
		return PoolStats{}, false
	}
	return link.allocator.Stats(), true
}

// Stats aggregates every memory type's PoolStats into one device-wide
// snapshot.
func (p *PolyAllocator) Stats() AllocatorStats {
	var out AllocatorStats
	for _, link := range p.byType {
		s := link.allocator.Stats()
		out.TotalAllocated += s.TotalSize
		out.TotalUsed += s.UsedSize
		out.AllocationCount += s.AllocationCount
	}
	return out
}
