// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Handles. Vulkan dispatchable handles are opaque pointer-sized values;
// DeviceMemory is non-dispatchable but still fits in a uintptr on every
// platform this loader targets.
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	DeviceMemory   uint64
)

// DeviceSize mirrors VkDeviceSize: a 64-bit byte count or offset.
type DeviceSize uint64

// Result mirrors VkResult. Only the subset this package's callers check is
// named; any other code still round-trips correctly as its integer value.
type Result int32

const (
	Success                   Result = 0
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorMemoryMapFailed      Result = -5
)

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorMemoryMapFailed:
		return "VK_ERROR_MEMORY_MAP_FAILED"
	default:
		return "VK_ERROR_UNKNOWN"
	}
}

// StructureType mirrors VkStructureType, trimmed to the sTypes this
// package's structs actually need.
type StructureType int32

const (
	StructureTypeMemoryAllocateInfo StructureType = 5
	StructureTypeMappedMemoryRange  StructureType = 6
)

// MemoryPropertyFlags mirrors VkMemoryPropertyFlagBits.
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocal    MemoryPropertyFlags = 1 << 0
	MemoryPropertyHostVisible    MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherent   MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCached     MemoryPropertyFlags = 1 << 3
	MemoryPropertyLazilyAllocated MemoryPropertyFlags = 1 << 4
)

// MemoryHeapFlags mirrors VkMemoryHeapFlagBits.
type MemoryHeapFlags uint32

const (
	MemoryHeapDeviceLocal MemoryHeapFlags = 1 << 0
)

// MemoryMapFlags mirrors VkMemoryMapFlags, reserved and always zero.
type MemoryMapFlags uint32

// AllocationCallbacks mirrors VkAllocationCallbacks. No allocator call in
// this package ever supplies one; it exists only so the wire structs match
// the real ABI layout.
type AllocationCallbacks struct {
	UserData                                 uintptr
	PfnAllocation, PfnReallocation           uintptr
	PfnFree                                  uintptr
	PfnInternalAllocation, PfnInternalFree   uintptr
}

// MemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           uintptr
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

// MappedMemoryRange mirrors VkMappedMemoryRange.
type MappedMemoryRange struct {
	SType  StructureType
	PNext  uintptr
	Memory DeviceMemory
	Offset DeviceSize
	Size   DeviceSize
}

// MemoryType mirrors VkMemoryType, one entry of
// PhysicalDeviceMemoryProperties.MemoryTypes.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap mirrors VkMemoryHeap, one entry of
// PhysicalDeviceMemoryProperties.MemoryHeaps.
type MemoryHeap struct {
	Size  DeviceSize
	Flags MemoryHeapFlags
}

const (
	maxMemoryTypes = 32
	maxMemoryHeaps = 16
)

// PhysicalDeviceMemoryProperties mirrors VkPhysicalDeviceMemoryProperties:
// fixed-size arrays, matching the real struct's ABI layout, with only the
// first MemoryTypeCount/MemoryHeapCount entries populated.
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [maxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [maxMemoryHeaps]MemoryHeap
}

// DeviceMemoryProperties is the populated slice view of
// PhysicalDeviceMemoryProperties, trimmed of its padding so callers don't
// need to know maxMemoryTypes/maxMemoryHeaps. DeviceDriver.MemoryProperties
// converts it into the memory package's DriverMemoryProperties.
type DeviceMemoryProperties struct {
	Types []MemoryType
	Heaps []MemoryHeap
}

// Properties converts the raw, fixed-array driver struct into the trimmed
// slice view DeviceDriver.MemoryProperties reads from.
func (p *PhysicalDeviceMemoryProperties) Properties() DeviceMemoryProperties {
	return DeviceMemoryProperties{
		Types: p.MemoryTypes[:p.MemoryTypeCount],
		Heaps: p.MemoryHeaps[:p.MemoryHeapCount],
	}
}
