// Package memory implements device-memory suballocation for a Vulkan
// backend: carving driver-allocated blocks into the smaller regions
// resource code actually needs, without a driver round trip per
// allocation.
//
// # Layers
//
// MemoryPool owns exactly one driver-allocated block (a DriverMemory
// handle, obtained through the Driver boundary) and hands out byte-range
// views of it. A SingleTypeAllocator (
// FreeListAllocator or BuddyAllocator) carves those views out of one
// pool without overlap. ChainAllocator grows an elastic sequence of
// same-sized pools of one of those on demand. FallbackAllocator pairs a
// tight allocator with a one-pool-per-request escape valve for requests
// it can't size for. PolyAllocator sits on top of all of it, picking a
// memory type from a MemoryTypeCriteria and routing to a lazily built
// chain for that type.
//
// Every fallible operation returns an AllocationError rather than
// panicking; panics are reserved for contract violations a correct
// caller never triggers (freeing an address nothing recognises,
// requesting a type this allocator doesn't serve).
package memory
