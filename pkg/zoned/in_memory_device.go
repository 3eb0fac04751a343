package zoned

import (
	"io"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type inMemoryDevice struct {
	zoneSectors uint64

	lock          sync.Mutex
	data          []byte
	writePointers []uint64
	conditions    []ZoneCondition
}

// NewInMemoryDevice creates a zoned block device that is backed by a
// byte slice. All of its zones are sequential write required, with a
// capacity equal to the zone size. It is intended to be used by tests
// and tooling that need zoned storage semantics without access to real
// zoned hardware.
func NewInMemoryDevice(zoneSectors, zoneCount uint64) ZonedBlockDevice {
	d := &inMemoryDevice{
		zoneSectors:   zoneSectors,
		data:          make([]byte, zoneSectors*zoneCount*SectorSizeBytes),
		writePointers: make([]uint64, zoneCount),
		conditions:    make([]ZoneCondition, zoneCount),
	}
	for i := range d.writePointers {
		d.writePointers[i] = uint64(i) * zoneSectors
		d.conditions[i] = ZoneConditionEmpty
	}
	return d
}

func (d *inMemoryDevice) ZoneSectors() uint64 {
	return d.zoneSectors
}

func (d *inMemoryDevice) SectorCount() uint64 {
	return uint64(len(d.data)) / SectorSizeBytes
}

func checkAlignment(p []byte, off int64) error {
	if off < 0 {
		return status.Errorf(codes.InvalidArgument, "Negative I/O offset: %d", off)
	}
	if off%SectorSizeBytes != 0 || len(p)%SectorSizeBytes != 0 {
		return status.Errorf(codes.InvalidArgument, "I/O with offset %d and length %d is not aligned on sector boundaries", off, len(p))
	}
	return nil
}

func (d *inMemoryDevice) ReadAt(p []byte, off int64) (int, error) {
	if err := checkAlignment(p, off); err != nil {
		return 0, err
	}
	d.lock.Lock()
	defer d.lock.Unlock()

	if off >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n := copy(p, d.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (d *inMemoryDevice) WriteAt(p []byte, off int64) (int, error) {
	if err := checkAlignment(p, off); err != nil {
		return 0, err
	}
	d.lock.Lock()
	defer d.lock.Unlock()

	sector := uint64(off) / SectorSizeBytes
	sectorCount := uint64(len(p)) / SectorSizeBytes
	if sector+sectorCount > d.SectorCount() {
		return 0, status.Errorf(codes.InvalidArgument, "Write at sector %d with length %d exceeds the device capacity of %d sectors", sector, sectorCount, d.SectorCount())
	}
	zone := sector / d.zoneSectors
	if end := (zone + 1) * d.zoneSectors; sector+sectorCount > end {
		return 0, status.Errorf(codes.InvalidArgument, "Write at sector %d with length %d crosses the boundary of zone %d", sector, sectorCount, zone)
	}
	if sector != d.writePointers[zone] {
		return 0, status.Errorf(codes.InvalidArgument, "Unaligned write at sector %d: the write pointer of zone %d is at sector %d", sector, zone, d.writePointers[zone])
	}

	n := copy(d.data[off:], p)
	d.advanceWritePointerLocked(zone, sectorCount)
	return n, nil
}

func (d *inMemoryDevice) advanceWritePointerLocked(zone, sectorCount uint64) {
	d.writePointers[zone] += sectorCount
	if d.writePointers[zone] == (zone+1)*d.zoneSectors {
		d.conditions[zone] = ZoneConditionFull
	} else {
		d.conditions[zone] = ZoneConditionImplicitOpen
	}
}

func (d *inMemoryDevice) Append(zoneStart uint64, p []byte) (uint64, error) {
	if len(p)%SectorSizeBytes != 0 {
		return 0, status.Errorf(codes.InvalidArgument, "Append with length %d is not aligned on a sector boundary", len(p))
	}
	d.lock.Lock()
	defer d.lock.Unlock()

	zone, err := d.zoneForStartLocked(zoneStart)
	if err != nil {
		return 0, err
	}
	sector := d.writePointers[zone]
	sectorCount := uint64(len(p)) / SectorSizeBytes
	if sector+sectorCount > (zone+1)*d.zoneSectors {
		return 0, status.Errorf(codes.InvalidArgument, "Append of %d sectors does not fit in zone %d: the write pointer is at sector %d", sectorCount, zone, sector)
	}

	copy(d.data[sector*SectorSizeBytes:], p)
	d.advanceWritePointerLocked(zone, sectorCount)
	return sector, nil
}

func (d *inMemoryDevice) zoneForStartLocked(zoneStart uint64) (uint64, error) {
	if zoneStart%d.zoneSectors != 0 || zoneStart >= d.SectorCount() {
		return 0, status.Errorf(codes.InvalidArgument, "Sector %d is not the start of a zone", zoneStart)
	}
	return zoneStart / d.zoneSectors, nil
}

func (d *inMemoryDevice) ManageZone(op Operation, zoneStart uint64) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	zone, err := d.zoneForStartLocked(zoneStart)
	if err != nil {
		return err
	}
	switch op {
	case OperationZoneReset:
		d.writePointers[zone] = zoneStart
		d.conditions[zone] = ZoneConditionEmpty
		// Reads below the write pointer of a reset zone must not
		// return stale contents.
		start := zoneStart * SectorSizeBytes
		clear(d.data[start : start+d.zoneSectors*SectorSizeBytes])
	case OperationZoneOpen:
		d.conditions[zone] = ZoneConditionExplicitOpen
	case OperationZoneClose:
		if d.writePointers[zone] == zoneStart {
			d.conditions[zone] = ZoneConditionEmpty
		} else {
			d.conditions[zone] = ZoneConditionClosed
		}
	case OperationZoneFinish:
		d.writePointers[zone] = (zone + 1) * d.zoneSectors
		d.conditions[zone] = ZoneConditionFull
	default:
		return status.Errorf(codes.InvalidArgument, "Operation %#v is not a zone management operation", op.String())
	}
	return nil
}

func (d *inMemoryDevice) ReportZones(startSector uint64, count int, fn ZoneConsumer) error {
	d.lock.Lock()
	zoneCount := uint64(len(d.writePointers))
	zones := make([]Zone, 0, count)
	for zone := startSector / d.zoneSectors; zone < zoneCount && len(zones) < count; zone++ {
		zones = append(zones, Zone{
			Start:        zone * d.zoneSectors,
			Length:       d.zoneSectors,
			Capacity:     d.zoneSectors,
			WritePointer: d.writePointers[zone],
			Type:         ZoneTypeSequentialWriteRequired,
			Condition:    d.conditions[zone],
		})
	}
	d.lock.Unlock()

	for i := range zones {
		if err := fn(&zones[i], i); err != nil {
			return err
		}
	}
	return nil
}

func (d *inMemoryDevice) Sync() error {
	return nil
}

func (d *inMemoryDevice) Close() error {
	return nil
}
