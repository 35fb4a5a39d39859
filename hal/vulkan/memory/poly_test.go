package memory

import "testing"

func newTestPoly(t *testing.T) (*PolyAllocator, *PhysicalDevice) {
	t.Helper()
	device, _ := newTestDevice()
	cfg := AllocatorConfig{HostVisiblePoolSize: 1024, DeviceLocalPoolSize: 1024, BuddyMinGranularity: 64}
	return NewPolyAllocator(device, cfg, NewFreeListFactory()), device
}

func TestPolyAllocatesFromCriteriaSelectedType(t *testing.T) {
	p, device := newTestPoly(t)

	block, err := p.Allocate(NewAllocationRequest(128, 1), DeviceLocal)
	if err != nil {
		t.Fatalf("Allocate(DeviceLocal): %v", err)
	}

	wantType := device.SearchMemoryTypes(DeviceLocal)[0]
	link, ok := p.byType[wantType.Index()]
	if !ok {
		t.Fatalf("PolyAllocator did not build a sub-allocator for the selected type")
	}
	if !link.outstanding.contains(block.Address()) {
		t.Fatalf("allocated block's address was not recorded against the selected type's link")
	}

	block.Free()
}

func TestPolyLazilyBuildsOnePerType(t *testing.T) {
	p, _ := newTestPoly(t)

	if len(p.byType) != 0 {
		t.Fatalf("PolyAllocator should start with no sub-allocators")
	}

	a := mustAllocate(t, polyAdapter{p, DeviceLocal}, 64, 1)
	if len(p.byType) != 1 {
		t.Fatalf("expected one sub-allocator after the first allocation, got %d", len(p.byType))
	}

	b := mustAllocate(t, polyAdapter{p, HostVisible}, 64, 1)
	if len(p.byType) != 2 {
		t.Fatalf("expected two sub-allocators after allocating from a second type, got %d", len(p.byType))
	}

	c := mustAllocate(t, polyAdapter{p, DeviceLocal}, 64, 1)
	if len(p.byType) != 2 {
		t.Fatalf("allocating again from an already-used type should not build a third sub-allocator, got %d", len(p.byType))
	}

	a.Free()
	b.Free()
	c.Free()
}

func TestPolyFreeRoutesAcrossTypes(t *testing.T) {
	p, _ := newTestPoly(t)

	deviceLocal, err := p.Allocate(NewAllocationRequest(64, 1), DeviceLocal)
	if err != nil {
		t.Fatalf("Allocate(DeviceLocal): %v", err)
	}
	hostVisible, err := p.Allocate(NewAllocationRequest(64, 1), HostVisible)
	if err != nil {
		t.Fatalf("Allocate(HostVisible): %v", err)
	}

	p.Free(hostVisible)
	p.Free(deviceLocal)
}

func TestPolyPanicsWhenNoTypeSatisfiesCriteria(t *testing.T) {
	p, _ := newTestPoly(t)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when no memory type satisfies the given criteria")
		}
	}()

	impossible := MemoryTypeCriteria{Required: FlagDeviceLocal | FlagHostVisible | FlagHostCoherent}
	_, _ = p.Allocate(NewAllocationRequest(64, 1), impossible)
}

// polyAdapter satisfies SingleTypeAllocator so mustAllocate can drive a
// PolyAllocator for a fixed criteria without duplicating its error checks.
type polyAdapter struct {
	p        *PolyAllocator
	criteria MemoryTypeCriteria
}

func (a polyAdapter) Allocate(request AllocationRequest) (MemoryBlock, error) {
	return a.p.Allocate(request, a.criteria)
}

func (a polyAdapter) Free(block MemoryBlock) { a.p.Free(block) }

func (a polyAdapter) TypeIndex() MemoryTypeIndex {
	return a.p.device.SearchMemoryTypes(a.criteria)[0]
}

func (a polyAdapter) Stats() PoolStats {
	stats, _ := a.p.PoolStats(a.TypeIndex().Index())
	return stats
}
