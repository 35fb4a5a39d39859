package memory

import "unsafe"

// fakeDriver is an in-memory stand-in for a real Vulkan device, used by
// every test in this package so the allocator algorithms can be tested
// without a GPU. It backs each allocation with a real Go byte slice, so
// MappedPointer/Overwrite write into real memory, and can be
// told to fail every subsequent allocation to exercise OutOfMemory paths.
type fakeDriver struct {
	next    DriverMemory
	blocks  map[DriverMemory][]byte
	flushes int
	refuse  bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{blocks: make(map[DriverMemory][]byte)}
}

func (f *fakeDriver) AllocateMemory(typeIndex uint32, size uint64) (DriverMemory, error) {
	if f.refuse {
		return 0, ErrDriverOutOfMemory
	}
	f.next++
	f.blocks[f.next] = make([]byte, size)
	return f.next, nil
}

func (f *fakeDriver) FreeMemory(mem DriverMemory) {
	delete(f.blocks, mem)
}

func (f *fakeDriver) MapMemory(mem DriverMemory, size uint64) (uintptr, error) {
	buf, ok := f.blocks[mem]
	if !ok || uint64(len(buf)) < size {
		panic("fakeDriver: MapMemory on unknown or undersized block")
	}
	return uintptr(unsafe.Pointer(&buf[0])), nil
}

func (f *fakeDriver) FlushMappedMemory(mem DriverMemory) {
	f.flushes++
}

func (f *fakeDriver) MemoryProperties() DriverMemoryProperties {
	return DriverMemoryProperties{
		Types: []DriverMemoryType{
			{DeviceLocal: true, HeapIndex: 0},
			{HostVisible: true, HostCoherent: true, HeapIndex: 1},
			{HostVisible: true, HeapIndex: 1},
		},
		HeapSizes: []uint64{1 << 30, 1 << 30},
	}
}

// newTestDevice returns a PhysicalDevice backed by a fresh fakeDriver and
// the driver itself, so tests can flip refuse or count flushes.
func newTestDevice() (*PhysicalDevice, *fakeDriver) {
	d := newFakeDriver()
	return NewPhysicalDevice(d), d
}
