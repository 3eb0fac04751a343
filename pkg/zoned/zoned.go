package zoned

import (
	"github.com/buildbarn/bb-storage/pkg/blockdevice"
)

//go:generate mockgen -package mock -destination ../../internal/mock/zoned.go github.com/zonekit/po2zone/pkg/zoned ZonedBlockDevice

// SectorSizeBytes is the size of a single sector. All sector numbers
// and sector counts in this package refer to units of this size,
// regardless of the logical block size reported by the device.
const SectorSizeBytes = 512

// ZoneType describes the write constraints of a zone. The values match
// the ones used by the Linux kernel's zoned block device UAPI.
type ZoneType uint8

const (
	// ZoneTypeConventional zones can be written at arbitrary offsets.
	ZoneTypeConventional ZoneType = 0x1
	// ZoneTypeSequentialWriteRequired zones must be written
	// sequentially at the write pointer.
	ZoneTypeSequentialWriteRequired ZoneType = 0x2
	// ZoneTypeSequentialWritePreferred zones should, but are not
	// required to be written sequentially.
	ZoneTypeSequentialWritePreferred ZoneType = 0x3
)

// ZoneCondition describes the state a zone is in. The values match the
// ones used by the Linux kernel's zoned block device UAPI.
type ZoneCondition uint8

const (
	ZoneConditionNotWritePointer ZoneCondition = 0x0
	ZoneConditionEmpty           ZoneCondition = 0x1
	ZoneConditionImplicitOpen    ZoneCondition = 0x2
	ZoneConditionExplicitOpen    ZoneCondition = 0x3
	ZoneConditionClosed          ZoneCondition = 0x4
	ZoneConditionReadOnly        ZoneCondition = 0xd
	ZoneConditionFull            ZoneCondition = 0xe
	ZoneConditionOffline         ZoneCondition = 0xf
)

var zoneConditionNames = map[ZoneCondition]string{
	ZoneConditionNotWritePointer: "not_wp",
	ZoneConditionEmpty:           "empty",
	ZoneConditionImplicitOpen:    "open_implicit",
	ZoneConditionExplicitOpen:    "open_explicit",
	ZoneConditionClosed:          "closed",
	ZoneConditionReadOnly:        "read_only",
	ZoneConditionFull:            "full",
	ZoneConditionOffline:         "offline",
}

func (c ZoneCondition) String() string {
	if name, ok := zoneConditionNames[c]; ok {
		return name
	}
	return "unknown"
}

// Zone is the descriptor of a single zone, as reported by a zoned
// block device. All fields are expressed in sectors.
type Zone struct {
	// Start is the sector at which the zone begins.
	Start uint64
	// Length is the nominal size of the zone.
	Length uint64
	// Capacity is the number of usable sectors within the zone,
	// counted from Start. It may be smaller than Length.
	Capacity uint64
	// WritePointer is the sector at which the next sequential write
	// must take place. Only meaningful for sequential zones that
	// are not full.
	WritePointer uint64
	Type         ZoneType
	Condition    ZoneCondition
}

// ZoneConsumer is invoked by ReportZones once per enumerated zone, in
// ascending zone order. The index starts at zero for every enumeration.
// Returning an error stops the enumeration and causes ReportZones to
// return that same error.
type ZoneConsumer func(zone *Zone, index int) error

// ZonedBlockDevice is a block device whose address space is divided
// into zones. In addition to plain reads and writes it supports zone
// enumeration, zone appends and zone management commands.
//
// Reads and writes must be aligned on sector boundaries. Writes to
// sequential zones must take place at the zone's write pointer.
//
// Implementations must be safe for concurrent use.
type ZonedBlockDevice interface {
	blockdevice.BlockDevice

	// ZoneSectors returns the number of sectors per zone. All
	// zones of a device are of equal nominal size.
	ZoneSectors() uint64
	// SectorCount returns the total capacity of the device in
	// sectors.
	SectorCount() uint64
	// ReportZones enumerates up to count zones, starting at the
	// zone containing startSector.
	ReportZones(startSector uint64, count int, fn ZoneConsumer) error
	// Append writes p at the write pointer of the zone starting at
	// zoneStart, returning the sector at which the data was placed.
	Append(zoneStart uint64, p []byte) (uint64, error)
	// ManageZone applies a zone management operation (reset, open,
	// close or finish) to the zone starting at zoneStart.
	ManageZone(op Operation, zoneStart uint64) error
}
