package memory

// MemoryPool owns one driver block and hands out suballocation views over
// it (spec §3, §4.1). It does no bookkeeping of its own: the allocator
// that asks for a view guarantees the byte ranges it hands out never
// overlap.
type MemoryPool struct {
	typeIndex MemoryTypeIndex
	memory    DriverMemory
	size      uint64

	mapped   bool
	mappedAt uintptr
	freed    bool
}

// AllocatePool asks the driver for a fresh block of the given memory type
// and size. Maps the driver's two out-of-memory statuses to
// ErrDriverOutOfMemory → ErrOutOfMemory; any other driver failure is a
// programmer error the Driver implementation is responsible for not
// returning here.
func AllocatePool(typeIndex MemoryTypeIndex, size uint64) (*MemoryPool, error) {
	if size == 0 {
		panic("memory: pool size must be > 0")
	}

	driver := typeIndex.Device().Driver()
	mem, err := driver.AllocateMemory(typeIndex.Index(), size)
	if err != nil {
		if err == ErrDriverOutOfMemory {
			return nil, ErrOutOfMemory()
		}
		panic("memory: driver.AllocateMemory returned an unexpected error: " + err.Error())
	}

	Logger().Debug("allocated memory pool", "type", typeIndex.Index(), "size", size)
	return &MemoryPool{typeIndex: typeIndex, memory: mem, size: size}, nil
}

// Release frees the pool's driver block. Callers must not call this while
// any MemoryBlock still references the pool.
func (p *MemoryPool) Release() {
	if p.freed {
		return
	}
	p.freed = true
	p.typeIndex.Device().Driver().FreeMemory(p.memory)
	Logger().Debug("released memory pool", "type", p.typeIndex.Index(), "size", p.size)
}

// Size returns the pool's fixed size in bytes.
func (p *MemoryPool) Size() uint64 { return p.size }

// TypeIndex returns the memory type this pool was allocated from.
func (p *MemoryPool) TypeIndex() MemoryTypeIndex { return p.typeIndex }

// Properties returns the pool's memory type's property bits.
func (p *MemoryPool) Properties() PropertyFlags { return p.typeIndex.Properties() }

// AllocateView constructs a MemoryBlock over [offset, offset+size) of this
// pool. Performs no overlap bookkeeping; the caller's allocator is
// responsible for disjointness.
func (p *MemoryPool) AllocateView(allocator SingleTypeAllocator, offset, size uint64) MemoryBlock {
	if offset+size > p.size {
		panic("memory: AllocateView range exceeds pool size")
	}
	return MemoryBlock{pool: p, allocator: allocator, offset: offset, size: size}
}

// MappedPointer returns a persistent host pointer for the pool, mapping
// the whole pool on first call. Panics if the type is not host-visible.
func (p *MemoryPool) MappedPointer() uintptr {
	if p.Properties()&FlagHostVisible == 0 {
		panic("memory: MappedPointer called on a non-host-visible pool")
	}
	if !p.mapped {
		ptr, err := p.typeIndex.Device().Driver().MapMemory(p.memory, p.size)
		if err != nil {
			panic("memory: driver.MapMemory failed unexpectedly: " + err.Error())
		}
		p.mappedAt = ptr
		p.mapped = true
	}
	return p.mappedAt
}

// Flush flushes the pool's mapped range when its type is not
// host-coherent. A no-op otherwise, so callers can call it
// unconditionally after a write.
func (p *MemoryPool) Flush() {
	if p.Properties()&FlagHostCoherent != 0 {
		return
	}
	p.typeIndex.Device().Driver().FlushMappedMemory(p.memory)
}

// Overwrite copies bytes into the mapped region starting at offset 0 and
// flushes if the type requires it. len(bytes) must be <= pool size.
func (p *MemoryPool) Overwrite(bytes []byte) {
	if uint64(len(bytes)) > p.size {
		panic("memory: Overwrite exceeds pool size")
	}
	dst := unsafeBytesAt(p.MappedPointer(), len(bytes))
	copy(dst, bytes)
	p.Flush()
}
