package memory

import "testing"

func newTestFallback(t *testing.T, mainPoolSize uint64) (*FallbackAllocator, *PhysicalDevice) {
	t.Helper()
	device, _ := newTestDevice()
	pool, err := AllocatePool(device.Type(0), mainPoolSize)
	if err != nil {
		t.Fatalf("AllocatePool: %v", err)
	}
	main := NewFreeListAllocator(pool)
	return NewFallbackAllocator(main), device
}

func TestFallbackServesFromMainWhenItFits(t *testing.T) {
	f, _ := newTestFallback(t, 1024)

	block := mustAllocate(t, f, 256, 1)
	if f.outstanding.len() != 0 {
		t.Fatalf("an allocation the main allocator satisfied should not be recorded as a fallback address")
	}
	block.Free()
}

func TestFallbackRoutesOversizeRequestToFallback(t *testing.T) {
	f, _ := newTestFallback(t, 256)

	block := mustAllocate(t, f, 4096, 1)
	if block.Size() != 4096 {
		t.Fatalf("fallback block size = %d, want 4096", block.Size())
	}
	if !f.outstanding.contains(block.Address()) {
		t.Fatalf("a request routed to the fallback should be recorded in outstanding")
	}

	addr := block.Address()
	block.Free()
	if f.outstanding.contains(addr) {
		t.Fatalf("Free should remove the address from outstanding")
	}
}

func TestFallbackRoutesAfterMainExhausted(t *testing.T) {
	f, _ := newTestFallback(t, 256)

	main := mustAllocate(t, f, 256, 1)
	spill := mustAllocate(t, f, 64, 1)

	if !f.outstanding.contains(spill.Address()) {
		t.Fatalf("an allocation that overflowed the exhausted main allocator should go to the fallback")
	}

	spill.Free()
	main.Free()
}

func TestFallbackFreeRoutesBackToMain(t *testing.T) {
	f, _ := newTestFallback(t, 1024)

	a := mustAllocate(t, f, 128, 1)
	b := mustAllocate(t, f, 4096, 1)

	a.Free()
	b.Free()

	again := mustAllocate(t, f, 128, 1)
	if again.Offset() != 0 {
		t.Fatalf("freeing a's main-allocator region should let it be reused, got offset %d", again.Offset())
	}
	again.Free()
}
