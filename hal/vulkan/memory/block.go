package memory

// MemoryBlock is a view over a byte range of a MemoryPool, held
// exclusively by whatever resource code requested it (spec §3). It
// carries plain, non-owning pointers back to its pool and allocator: both
// must outlive every block they issued, a discipline this package leaves
// to its callers rather than enforcing with a generation counter, since
// every allocator in this package is single-threaded and already tracks
// its live blocks by address.
//
// A zero-value MemoryBlock (nil pool) is the "empty" / moved-from state:
// Free on it is a no-op, matching the source's double-free prevention.
type MemoryBlock struct {
	pool      *MemoryPool
	allocator SingleTypeAllocator
	offset    uint64
	size      uint64
}

// IsEmpty reports whether this is the moved-from/zero-value state.
func (b MemoryBlock) IsEmpty() bool { return b.pool == nil }

// Address returns this block's (driver-handle, offset) identity.
func (b MemoryBlock) Address() Address {
	return Address{Memory: b.pool.memory, Offset: b.offset}
}

// DeviceMemory returns the driver handle of the pool backing this block.
func (b MemoryBlock) DeviceMemory() DriverMemory { return b.pool.memory }

// Offset returns the block's byte offset within its pool.
func (b MemoryBlock) Offset() uint64 { return b.offset }

// Size returns the block's size in bytes.
func (b MemoryBlock) Size() uint64 { return b.size }

// Properties returns the backing pool's memory type property bits.
func (b MemoryBlock) Properties() PropertyFlags { return b.pool.Properties() }

// MappedPointer returns a host pointer to the start of this block. Panics
// if the backing pool's type is not host-visible.
func (b MemoryBlock) MappedPointer() uintptr {
	return b.pool.MappedPointer() + uintptr(b.offset)
}

// Flush flushes the block's pool when its type is not host-coherent.
func (b MemoryBlock) Flush() { b.pool.Flush() }

// Overwrite copies bytes into the block's region and flushes if the type
// requires it. len(bytes) must be <= b.Size().
func (b MemoryBlock) Overwrite(bytes []byte) {
	if uint64(len(bytes)) > b.size {
		panic("memory: Overwrite exceeds block size")
	}
	dst := unsafeBytesAt(b.MappedPointer(), len(bytes))
	copy(dst, bytes)
	b.Flush()
}

// Free releases this block back through the allocator that issued it. A
// no-op on an already-empty block.
func (b *MemoryBlock) Free() {
	if b.pool == nil {
		return
	}
	allocator := b.allocator
	released := *b
	*b = MemoryBlock{}
	allocator.Free(released)
}
