//go:build linux
// +build linux

package zoned

import (
	"sync"
	"unsafe"

	"github.com/buildbarn/bb-storage/pkg/util"

	"golang.org/x/sys/unix"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Zoned block device ioctls from <linux/blkzoned.h>. These are not
// provided by golang.org/x/sys/unix.
const (
	blkReportZone = 0xc0101282
	blkResetZone  = 0x40101283
	blkGetZoneSz  = 0x80041284
	blkOpenZone   = 0x40101286
	blkCloseZone  = 0x40101287
	blkFinishZone = 0x40101288
)

// blkZone mirrors struct blk_zone.
type blkZone struct {
	start    uint64
	len      uint64
	wp       uint64
	zoneType uint8
	cond     uint8
	nonSeq   uint8
	reset    uint8
	resv     [4]uint8
	capacity uint64
	reserved [24]uint8
}

const reportZonesBatchSize = 128

// blkZoneReport mirrors struct blk_zone_report, followed by the array
// of zone entries the kernel fills in.
type blkZoneReport struct {
	sector  uint64
	nrZones uint32
	flags   uint32
	zones   [reportZonesBatchSize]blkZone
}

// blkZoneRange mirrors struct blk_zone_range.
type blkZoneRange struct {
	sector    uint64
	nrSectors uint64
}

type localDevice struct {
	fd          int
	zoneSectors uint64
	sectorCount uint64

	// Serializes emulated zone appends. The kernel does not expose
	// REQ_OP_ZONE_APPEND through a plain syscall interface, so
	// appends are emulated by locating the write pointer and
	// writing there.
	appendLock sync.Mutex
}

// NewLocalDevice opens a host-attached zoned block device (e.g.
// /dev/sdb) for direct sector-level access.
func NewLocalDevice(path string) (ZonedBlockDevice, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.InvalidArgument, "Failed to open device %#v", path)
	}

	var sizeBytes uint64
	if err := ioctl(fd, unix.BLKGETSIZE64, unsafe.Pointer(&sizeBytes)); err != nil {
		unix.Close(fd)
		return nil, util.StatusWrapf(err, "Failed to obtain the capacity of device %#v", path)
	}
	var zoneSectors uint32
	if err := ioctl(fd, blkGetZoneSz, unsafe.Pointer(&zoneSectors)); err != nil {
		unix.Close(fd)
		return nil, util.StatusWrapf(err, "Failed to obtain the zone size of device %#v", path)
	}
	if zoneSectors == 0 {
		unix.Close(fd)
		return nil, status.Errorf(codes.InvalidArgument, "Device %#v is not zoned", path)
	}

	return &localDevice{
		fd:          fd,
		zoneSectors: uint64(zoneSectors),
		sectorCount: sizeBytes / SectorSizeBytes,
	}, nil
}

func ioctl(fd int, request uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), request, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

func (d *localDevice) ZoneSectors() uint64 {
	return d.zoneSectors
}

func (d *localDevice) SectorCount() uint64 {
	return d.sectorCount
}

func (d *localDevice) ReadAt(p []byte, off int64) (int, error) {
	return unix.Pread(d.fd, p, off)
}

func (d *localDevice) WriteAt(p []byte, off int64) (int, error) {
	return unix.Pwrite(d.fd, p, off)
}

func (d *localDevice) Sync() error {
	return unix.Fsync(d.fd)
}

func (d *localDevice) Close() error {
	return unix.Close(d.fd)
}

func (d *localDevice) ReportZones(startSector uint64, count int, fn ZoneConsumer) error {
	report := &blkZoneReport{}
	index := 0
	sector := startSector
	for index < count {
		batch := count - index
		if batch > reportZonesBatchSize {
			batch = reportZonesBatchSize
		}
		report.sector = sector
		report.nrZones = uint32(batch)
		if err := ioctl(d.fd, blkReportZone, unsafe.Pointer(report)); err != nil {
			return util.StatusWrapf(err, "Failed to report zones at sector %d", sector)
		}
		if report.nrZones == 0 {
			// Reached the end of the device.
			return nil
		}
		for i := uint32(0); i < report.nrZones; i++ {
			raw := &report.zones[i]
			zone := Zone{
				Start:        raw.start,
				Length:       raw.len,
				Capacity:     raw.capacity,
				WritePointer: raw.wp,
				Type:         ZoneType(raw.zoneType),
				Condition:    ZoneCondition(raw.cond),
			}
			if err := fn(&zone, index); err != nil {
				return err
			}
			index++
			sector = raw.start + raw.len
		}
	}
	return nil
}

func (d *localDevice) Append(zoneStart uint64, p []byte) (uint64, error) {
	d.appendLock.Lock()
	defer d.appendLock.Unlock()

	var writePointer uint64
	found := false
	if err := d.ReportZones(zoneStart, 1, func(zone *Zone, index int) error {
		writePointer = zone.WritePointer
		found = true
		return nil
	}); err != nil {
		return 0, err
	}
	if !found {
		return 0, status.Errorf(codes.InvalidArgument, "Sector %d does not lie within a zone", zoneStart)
	}
	if _, err := d.WriteAt(p, int64(writePointer)*SectorSizeBytes); err != nil {
		return 0, util.StatusWrapf(err, "Failed to append at sector %d", writePointer)
	}
	return writePointer, nil
}

func (d *localDevice) ManageZone(op Operation, zoneStart uint64) error {
	var request uintptr
	switch op {
	case OperationZoneReset:
		request = blkResetZone
	case OperationZoneOpen:
		request = blkOpenZone
	case OperationZoneClose:
		request = blkCloseZone
	case OperationZoneFinish:
		request = blkFinishZone
	default:
		return status.Errorf(codes.InvalidArgument, "Operation %#v is not a zone management operation", op.String())
	}
	zoneRange := blkZoneRange{
		sector:    zoneStart,
		nrSectors: d.zoneSectors,
	}
	if err := ioctl(d.fd, request, unsafe.Pointer(&zoneRange)); err != nil {
		return util.StatusWrapf(err, "Failed to %s the zone at sector %d", op.String(), zoneStart)
	}
	return nil
}
