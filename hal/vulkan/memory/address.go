package memory

// Address identifies a suballocation uniquely across the whole device: a
// driver memory handle plus a byte offset within it (spec §3). Comparable
// and hashable by value, so composite allocators use it directly as a map
// key for outstanding-allocation bookkeeping.
type Address struct {
	Memory DriverMemory
	Offset uint64
}
