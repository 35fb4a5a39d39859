package memory

import "sort"

// PropertyFlags is a bitmask over a driver memory type's properties,
// projected from DriverMemoryType so the search and criteria logic in
// this package never has to know the driver's own flag encoding.
type PropertyFlags uint32

const (
	FlagHostVisible PropertyFlags = 1 << iota
	FlagDeviceLocal
	FlagHostCoherent
)

func flagsOf(t DriverMemoryType) PropertyFlags {
	var f PropertyFlags
	if t.HostVisible {
		f |= FlagHostVisible
	}
	if t.DeviceLocal {
		f |= FlagDeviceLocal
	}
	if t.HostCoherent {
		f |= FlagHostCoherent
	}
	return f
}

// PhysicalDevice wraps the Driver boundary and caches the fixed
// memory-type/heap table a device reports once at startup (spec §3:
// MemoryTypeIndex carries a physical-device-reference).
type PhysicalDevice struct {
	driver Driver
	props  DriverMemoryProperties
}

// NewPhysicalDevice queries the driver's memory properties once and
// fixes them for the lifetime of the returned value.
func NewPhysicalDevice(driver Driver) *PhysicalDevice {
	return &PhysicalDevice{driver: driver, props: driver.MemoryProperties()}
}

// Driver returns the underlying driver boundary.
func (p *PhysicalDevice) Driver() Driver { return p.driver }

// TypeCount reports how many memory types the device exposes.
func (p *PhysicalDevice) TypeCount() int { return len(p.props.Types) }

// Type returns the MemoryTypeIndex for a given raw index. Panics if the
// index is out of range; this is only ever called with indices the
// driver itself reported.
func (p *PhysicalDevice) Type(index uint32) MemoryTypeIndex {
	if int(index) >= len(p.props.Types) {
		panic("memory: memory type index out of range")
	}
	return MemoryTypeIndex{device: p, index: index}
}

// SearchMemoryTypes ranks every type satisfying criteria: required bits
// present, forbidden bits absent; ordered by ascending heap index, then
// ascending type index (spec §9's Open Questions resolve the ambiguous
// "property richness" tie-break this way).
func (p *PhysicalDevice) SearchMemoryTypes(criteria MemoryTypeCriteria) []MemoryTypeIndex {
	var candidates []MemoryTypeIndex
	for i, t := range p.props.Types {
		f := flagsOf(t)
		if f&criteria.Required != criteria.Required {
			continue
		}
		if f&criteria.Forbidden != 0 {
			continue
		}
		candidates = append(candidates, MemoryTypeIndex{device: p, index: uint32(i)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		hi := p.props.Types[candidates[i].index].HeapIndex
		hj := p.props.Types[candidates[j].index].HeapIndex
		if hi != hj {
			return hi < hj
		}
		return candidates[i].index < candidates[j].index
	})
	return candidates
}

// MemoryTypeIndex is an immutable (physical-device, type-index) pair
// (spec §3). Comparable and usable as a map key on the index alone within
// a fixed device.
type MemoryTypeIndex struct {
	device *PhysicalDevice
	index  uint32
}

// Index returns the raw driver type index.
func (t MemoryTypeIndex) Index() uint32 { return t.index }

// Device returns the physical device this index was selected from.
func (t MemoryTypeIndex) Device() *PhysicalDevice { return t.device }

// Properties projects this type's driver-reported property flags.
func (t MemoryTypeIndex) Properties() PropertyFlags {
	return flagsOf(t.device.props.Types[t.index])
}

// HeapSize returns the size of the heap this type is backed by.
func (t MemoryTypeIndex) HeapSize() uint64 {
	heap := t.device.props.Types[t.index].HeapIndex
	return t.device.props.HeapSizes[heap]
}

// MemoryTypeCriteria describes the memory types acceptable for a request
// (spec §3): bits that must be present, and bits that must be absent.
type MemoryTypeCriteria struct {
	Required  PropertyFlags
	Forbidden PropertyFlags
}

// Standard presets named in spec §3. The original source's
// MemoryTypeCriteria translation unit left these to call sites; every
// caller needs at least these three, so they are supplemented here
// rather than hand-assembled repeatedly at each call site.
var (
	HostVisible  = MemoryTypeCriteria{Required: FlagHostVisible}
	DeviceLocal  = MemoryTypeCriteria{Required: FlagDeviceLocal}
	HostCoherent = MemoryTypeCriteria{Required: FlagHostVisible | FlagHostCoherent}
)
