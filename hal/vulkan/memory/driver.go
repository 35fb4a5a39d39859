package memory

// DriverMemory identifies a single driver-level memory allocation (a
// VkDeviceMemory handle, in the real implementation). The allocator never
// interprets its value; it only stores it and hands it back to the Driver
// that issued it.
type DriverMemory uint64

// DriverMemoryType is one entry of the driver's memory-type table: its
// property flags and the heap it is backed by.
type DriverMemoryType struct {
	HostVisible  bool
	HostCoherent bool
	DeviceLocal  bool
	HeapIndex    uint32
}

// DriverMemoryProperties is the driver's full memory-type/heap table
// (spec.md §3), as reported once at startup and held fixed thereafter.
type DriverMemoryProperties struct {
	Types []DriverMemoryType
	HeapSizes []uint64
}

// Driver is the boundary this package consumes from the graphics driver
// (spec: device-memory allocation subsystem, §6). It is the only way the
// allocator touches anything outside this package — device, physical
// device, and memory-type enumeration are the driver's concern, not the
// allocator's. Deliberately free of any Vulkan type so this package
// compiles and tests without a real loader.
//
// hal/vulkan/vk implements Driver against the real Vulkan loader. Tests
// in this package implement it against an in-memory fake.
type Driver interface {
	// AllocateMemory allocates size bytes of the given memory type from
	// the driver. Returns ErrDriverOutOfMemory when the driver reports
	// either of the two out-of-memory statuses; any other failure is a
	// programmer error and the implementation should panic rather than
	// return it, since the caller cannot act on it.
	AllocateMemory(typeIndex uint32, size uint64) (DriverMemory, error)

	// FreeMemory releases a block previously returned by AllocateMemory.
	FreeMemory(memory DriverMemory)

	// MapMemory maps the entire block to a persistent host pointer. Only
	// valid for host-visible memory types; callers must not call this
	// for any other type.
	MapMemory(memory DriverMemory, size uint64) (uintptr, error)

	// FlushMappedMemory flushes the full mapped range of a block.
	FlushMappedMemory(memory DriverMemory)

	// MemoryProperties returns the device's full memory-type table.
	MemoryProperties() DriverMemoryProperties
}

// ErrDriverOutOfMemory is returned by a Driver implementation when the
// underlying allocate call reported VK_ERROR_OUT_OF_HOST_MEMORY or
// VK_ERROR_OUT_OF_DEVICE_MEMORY. It is translated to AllocationError's
// OutOfMemory case by AllocatePool.
var ErrDriverOutOfMemory = driverOutOfMemory{}

type driverOutOfMemory struct{}

func (driverOutOfMemory) Error() string { return "driver: out of host or device memory" }
