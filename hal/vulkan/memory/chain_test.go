package memory

import "testing"

// Scenario 6 (spec §8): a chain of 1024-byte buddy pools fills link 0,
// then link 1, then grows a third link for the request neither existing
// link can fit.
func TestChainScenario6_GrowsOnDemand(t *testing.T) {
	device, _ := newTestDevice()
	c := NewChainAllocator(device.Type(0), 1024, NewBuddyFactory(64))

	if len(c.links) != 1 {
		t.Fatalf("NewChainAllocator should start with exactly one link, got %d", len(c.links))
	}

	first := mustAllocate(t, c, 1024, 1)
	if len(c.links) != 1 {
		t.Fatalf("first whole-pool allocation should not have grown the chain, got %d links", len(c.links))
	}

	second := mustAllocate(t, c, 1024, 1)
	if len(c.links) != 2 {
		t.Fatalf("second whole-pool allocation should have grown the chain to 2 links, got %d", len(c.links))
	}

	third := mustAllocate(t, c, 1024, 1)
	if len(c.links) != 3 {
		t.Fatalf("third whole-pool allocation should have grown the chain to 3 links, got %d", len(c.links))
	}

	if first.Address() == second.Address() || second.Address() == third.Address() {
		t.Fatalf("distinct chain links handed out the same address")
	}

	third.Free()
	second.Free()
	first.Free()
}

// Free must route to the exact link that produced a block, not merely the
// first link whose allocator happens to accept it back.
func TestChainFreeRoutesToOwningLink(t *testing.T) {
	device, _ := newTestDevice()
	c := NewChainAllocator(device.Type(0), 256, NewFreeListFactory())

	a := mustAllocate(t, c, 256, 1)
	b := mustAllocate(t, c, 256, 1)
	if len(c.links) != 2 {
		t.Fatalf("expected 2 links after two whole-pool allocations, got %d", len(c.links))
	}

	bAddr := b.Address()
	b.Free()
	again := mustAllocate(t, c, 256, 1)
	if again.Address() != bAddr {
		t.Fatalf("freeing b's link should let the next allocation reuse its pool")
	}

	again.Free()
	a.Free()
}

func TestChainInsufficientPoolSizeStopsImmediately(t *testing.T) {
	device, _ := newTestDevice()
	c := NewChainAllocator(device.Type(0), 256, NewFreeListFactory())

	_, err := c.Allocate(NewAllocationRequest(1024, 1))
	if !IsInsufficientPoolSize(err) {
		t.Fatalf("expected InsufficientPoolSize for a request bigger than the chain's pool size, got %v", err)
	}
}
