package po2zone

import (
	"math/bits"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Geometry captures the address arithmetic between the physical zone
// layout of a backing device and the power-of-two zone layout that is
// presented to clients. In the logical address space every zone
// occupies ZoneSectorsPo2 sectors, of which only the first ZoneSectors
// are backed by physical storage. The trailing Diff sectors of every
// logical zone read as zeroes and cannot be written.
//
// A Geometry is computed once when a shim attaches to a device and is
// never mutated afterwards, which makes all translation methods safe
// for unsynchronized concurrent use.
type Geometry struct {
	// ZoneSectors is the physical number of sectors per zone of the
	// backing device.
	ZoneSectors uint64
	// ZoneSectorsPo2 is ZoneSectors rounded up to the nearest power
	// of two.
	ZoneSectorsPo2 uint64
	// Shift is log2(ZoneSectorsPo2), so that logical zone indices
	// can be computed by shifting instead of dividing.
	Shift uint
	// Diff is the number of unbacked padding sectors at the end of
	// every logical zone: ZoneSectorsPo2 - ZoneSectors.
	Diff uint64
	// ZoneCount is the number of zones of the backing device. Any
	// trailing sectors that do not form a full zone are excluded.
	ZoneCount uint64
}

// NewGeometry computes the emulation geometry for a backing device with
// the given physical zone size and capacity, both in sectors.
func NewGeometry(zoneSectors, capacitySectors uint64) (Geometry, error) {
	if zoneSectors == 0 {
		return Geometry{}, status.Error(codes.InvalidArgument, "Device reports a zone size of zero sectors")
	}
	if capacitySectors < zoneSectors {
		return Geometry{}, status.Errorf(codes.InvalidArgument, "Device capacity of %d sectors is smaller than a single zone of %d sectors", capacitySectors, zoneSectors)
	}
	shift := uint(bits.Len64(zoneSectors - 1))
	zoneSectorsPo2 := uint64(1) << shift
	return Geometry{
		ZoneSectors:    zoneSectors,
		ZoneSectorsPo2: zoneSectorsPo2,
		Shift:          shift,
		Diff:           zoneSectorsPo2 - zoneSectors,
		ZoneCount:      capacitySectors / zoneSectors,
	}, nil
}

// PhysicalZoneIndex returns the index of the zone containing a physical
// sector.
func (g Geometry) PhysicalZoneIndex(sector uint64) uint64 {
	return sector / g.ZoneSectors
}

// LogicalZoneIndex returns the index of the zone containing a logical
// sector.
func (g Geometry) LogicalZoneIndex(sector uint64) uint64 {
	return sector >> g.Shift
}

// ToPhysical translates a logical sector to the physical sector backing
// it. The logical sector must lie within the capacity region of its
// zone; padding sectors have no physical counterpart.
func (g Geometry) ToPhysical(sector uint64) uint64 {
	return sector - g.LogicalZoneIndex(sector)*g.Diff
}

// ToLogical translates a physical sector to the logical sector at which
// clients observe it. ToLogical is the inverse of ToPhysical.
func (g Geometry) ToLogical(sector uint64) uint64 {
	return sector + g.PhysicalZoneIndex(sector)*g.Diff
}

// IsPassthrough returns whether the physical zone size is already a
// power of two, in which case the geometry does not alter any
// addresses.
func (g Geometry) IsPassthrough() bool {
	return g.Diff == 0
}

// LogicalSectorCount returns the size of the logical address space.
func (g Geometry) LogicalSectorCount() uint64 {
	return g.ZoneCount * g.ZoneSectorsPo2
}

// capacityEnd returns the logical sector just past the capacity region
// of the zone containing the given logical sector.
func (g Geometry) capacityEnd(sector uint64) uint64 {
	return g.LogicalZoneIndex(sector)*g.ZoneSectorsPo2 + g.ZoneSectors
}
