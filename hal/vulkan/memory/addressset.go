package memory

import (
	"github.com/flier/goutil/pkg/arena"
	"github.com/flier/goutil/pkg/arena/swiss"
)

// addressSet tracks the set of live Address values a composite allocator
// has routed to one sub-allocator or fallback path (spec §4.3-§4.5). Built
// on an arena-backed Swiss table since Address is exactly the small,
// hashable, high-churn key that map is designed for; a composite
// allocator's outstanding set grows and shrinks on every Allocate/Free.
type addressSet struct {
	arena arena.Arena
	m     *swiss.Map[Address, struct{}]
}

// newAddressSet returns an empty set sized for an initial capacity of sz
// entries; it grows automatically beyond that via the underlying map's
// rehash.
func newAddressSet(sz uint32) *addressSet {
	s := &addressSet{}
	s.m = swiss.NewMap[Address, struct{}](&s.arena, sz)
	return s
}

func (s *addressSet) add(a Address)      { s.m.Put(a, struct{}{}) }
func (s *addressSet) remove(a Address)   { s.m.Delete(a) }
func (s *addressSet) contains(a Address) bool {
	_, ok := s.m.Get(a)
	return ok
}
func (s *addressSet) len() int { return s.m.Count() }
