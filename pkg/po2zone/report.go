package po2zone

import (
	"errors"

	"github.com/zonekit/po2zone/pkg/zoned"
)

var errEnumerationDone = errors.New("zone enumeration finished")

// ReportZones enumerates up to count zones starting at the zone
// containing logicalStart, invoking fn once per zone in ascending zone
// order. Every descriptor is rewritten from physical to logical
// geometry before delivery: its start and write pointer are translated
// and its length is forced to the emulated power-of-two zone size, so
// that clients observe uniform zones.
//
// ReportZones returns the logical sector just past the last zone that
// was delivered, which is where a subsequent enumeration should resume.
// Each call establishes a fresh enumeration; an unmutated device yields
// identical output for identical arguments.
func (s *Shim) ReportZones(logicalStart uint64, count int, fn zoned.ZoneConsumer) (uint64, error) {
	g := s.geometry
	physicalStart := g.LogicalZoneIndex(logicalStart) * g.ZoneSectors
	nextSector := logicalStart
	index := 0
	err := s.device.ReportZones(physicalStart, count, func(zone *zoned.Zone, _ int) error {
		if g.PhysicalZoneIndex(zone.Start) >= g.ZoneCount {
			// A trailing runt zone that is excluded from the
			// logical address space.
			return errEnumerationDone
		}
		zone.Start = g.ToLogical(zone.Start)
		zone.WritePointer = g.ToLogical(zone.WritePointer)
		zone.Length = g.ZoneSectorsPo2
		nextSector = zone.Start + zone.Length
		err := fn(zone, index)
		index++
		return err
	})
	if err != nil && !errors.Is(err, errEnumerationDone) {
		return nextSector, err
	}
	return nextSector, nil
}
