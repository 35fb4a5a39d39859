package memory

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// TestFreeListCoalescingLaws exercises the free-list's coalescing
// invariant (spec §8: "no two stored free regions satisfy
// a.offset+a.size == b.offset") as a given/when/then sequence of
// operations, which reads more naturally as a spec than a table.
func TestFreeListCoalescingLaws(t *testing.T) {
	Convey("Given a free-list allocator over a 1024-byte pool", t, func() {
		a := newTestFreeListPool(t, 1024)

		Convey("When three equal blocks are allocated back to back", func() {
			blockA := mustAllocate(t, a, 256, 1)
			blockB := mustAllocate(t, a, 256, 1)
			blockC := mustAllocate(t, a, 256, 1)

			Convey("Then only the region after the third block remains free", func() {
				So(len(a.regions), ShouldEqual, 1)
				So(a.regions[768], ShouldEqual, 256)
			})

			Convey("When the middle block is freed", func() {
				blockB.Free()

				Convey("Then its region stands alone, contiguous with neither neighbour", func() {
					So(a.regions[256], ShouldEqual, 256)
				})

				Convey("When the remaining two blocks are also freed", func() {
					blockA.Free()
					blockC.Free()

					Convey("Then every region has merged into exactly one covering the pool", func() {
						So(len(a.regions), ShouldEqual, 1)
						So(a.regions[0], ShouldEqual, uint64(1024))
					})
				})
			})
		})

		Convey("When a sequence of allocations and frees never leaves the pool fully idle", func() {
			blocks := make([]MemoryBlock, 0, 8)
			for i := 0; i < 4; i++ {
				blocks = append(blocks, mustAllocate(t, a, 64, 1))
			}
			blocks[1].Free()
			blocks[3].Free()
			blocks = append(blocks, mustAllocate(t, a, 32, 1))

			Convey("Then no two stored regions are address-contiguous", func() {
				So(noContiguousRegions(a.regions), ShouldBeTrue)
			})
		})
	})
}

func noContiguousRegions(regions map[uint64]uint64) bool {
	for offset, size := range regions {
		if _, ok := regions[offset+size]; ok {
			return false
		}
	}
	return true
}
