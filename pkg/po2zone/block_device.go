package po2zone

import (
	"io"

	"github.com/zonekit/po2zone/pkg/zoned"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type blockDevice struct {
	shim    *Shim
	router  Router
	backing zoned.ZonedBlockDevice
}

// NewBlockDevice composes a shim and its backing device into a logical
// zoned block device with uniform power-of-two sized zones. It takes
// over the duties that a host storage framework performs upstream of
// the shim: it splits incoming I/O on PreferredIOAlignment boundaries
// before routing, executes remapped requests against the backing
// device, resubmits the continuations of split reads, and adjusts the
// completion sectors of zone appends.
//
// The router is usually the shim itself, optionally wrapped by
// NewMetricsRouter.
func NewBlockDevice(shim *Shim, router Router) zoned.ZonedBlockDevice {
	backing, _, _ := shim.BackingExtent()
	return &blockDevice{
		shim:    shim,
		router:  router,
		backing: backing,
	}
}

func (d *blockDevice) ZoneSectors() uint64 {
	return d.shim.Geometry().ZoneSectorsPo2
}

func (d *blockDevice) SectorCount() uint64 {
	return d.shim.Geometry().LogicalSectorCount()
}

func validateAlignment(p []byte, off int64) error {
	if off < 0 {
		return status.Errorf(codes.InvalidArgument, "Negative I/O offset: %d", off)
	}
	if off%zoned.SectorSizeBytes != 0 || len(p)%zoned.SectorSizeBytes != 0 {
		return status.Errorf(codes.InvalidArgument, "I/O with offset %d and length %d is not aligned on sector boundaries", off, len(p))
	}
	return nil
}

// limitToZoneBoundary restricts a buffer so that the I/O it describes
// does not extend past the end of the logical zone containing off. This
// is the split that the attachment's I/O alignment hint demands of the
// layer above the router.
func (d *blockDevice) limitToZoneBoundary(p []byte, off int64) []byte {
	zoneSizeBytes := int64(d.shim.Geometry().ZoneSectorsPo2) * zoned.SectorSizeBytes
	if n := zoneSizeBytes - off%zoneSizeBytes; n < int64(len(p)) {
		return p[:n]
	}
	return p
}

// readChunk reads a single chunk that lies within one logical zone. A
// chunk that crosses from the capacity region into the padding region
// decomposes into a remapped prefix and a zero-filled remainder, which
// the router hands back as a continuation to resubmit.
func (d *blockDevice) readChunk(p []byte, off int64) (int, error) {
	request := &zoned.Request{
		Operation: zoned.OperationRead,
		Sector:    uint64(off) / zoned.SectorSizeBytes,
		Data:      p,
	}
	nTotal := 0
	for {
		outcome, err := d.router.Submit(request)
		if err != nil {
			return nTotal, err
		}
		switch outcome.Kind {
		case OutcomeRemapped:
			n, err := d.backing.ReadAt(request.Data, int64(outcome.PhysicalSector)*zoned.SectorSizeBytes)
			nTotal += n
			if err != nil && err != io.EOF {
				return nTotal, err
			}
			if n != len(request.Data) {
				return nTotal, status.Errorf(codes.Internal, "Read against the backing device returned %d bytes, while %d bytes were expected", n, len(request.Data))
			}
			return nTotal, nil
		case OutcomeSplit:
			prefix := request.Data[:outcome.AcceptedSectors*zoned.SectorSizeBytes]
			n, err := d.backing.ReadAt(prefix, int64(outcome.PhysicalSector)*zoned.SectorSizeBytes)
			nTotal += n
			if err != nil && err != io.EOF {
				return nTotal, err
			}
			if n != len(prefix) {
				return nTotal, status.Errorf(codes.Internal, "Read against the backing device returned %d bytes, while %d bytes were expected", n, len(prefix))
			}
			request = outcome.Continuation
		case OutcomeZeroFilled:
			nTotal += len(request.Data)
			return nTotal, nil
		default:
			return nTotal, status.Errorf(codes.Internal, "Router returned unknown outcome %d", outcome.Kind)
		}
	}
}

func (d *blockDevice) ReadAt(p []byte, off int64) (int, error) {
	if err := validateAlignment(p, off); err != nil {
		return 0, err
	}
	sizeBytes := int64(d.SectorCount()) * zoned.SectorSizeBytes
	if off >= sizeBytes {
		return 0, io.EOF
	}
	var success error
	if off+int64(len(p)) > sizeBytes {
		success = io.EOF
		p = p[:sizeBytes-off]
	}

	nTotal := 0
	for len(p) > 0 {
		chunk := d.limitToZoneBoundary(p, off)
		n, err := d.readChunk(chunk, off)
		nTotal += n
		if err != nil {
			return nTotal, err
		}
		p = p[len(chunk):]
		off += int64(len(chunk))
	}
	return nTotal, success
}

func (d *blockDevice) WriteAt(p []byte, off int64) (int, error) {
	if err := validateAlignment(p, off); err != nil {
		return 0, err
	}

	nTotal := 0
	for len(p) > 0 {
		chunk := d.limitToZoneBoundary(p, off)
		outcome, err := d.router.Submit(&zoned.Request{
			Operation: zoned.OperationWrite,
			Sector:    uint64(off) / zoned.SectorSizeBytes,
			Data:      chunk,
		})
		if err != nil {
			return nTotal, err
		}
		n, err := d.backing.WriteAt(chunk, int64(outcome.PhysicalSector)*zoned.SectorSizeBytes)
		nTotal += n
		if err != nil {
			return nTotal, err
		}
		if n != len(chunk) {
			return nTotal, status.Errorf(codes.Internal, "Write against the backing device returned %d bytes, while %d bytes were expected", n, len(chunk))
		}
		p = p[len(chunk):]
		off += int64(len(chunk))
	}
	return nTotal, nil
}

func (d *blockDevice) Append(zoneStart uint64, p []byte) (uint64, error) {
	outcome, err := d.router.Submit(&zoned.Request{
		Operation: zoned.OperationZoneAppend,
		Sector:    zoneStart,
		Data:      p,
	})
	if err != nil {
		return 0, err
	}
	deviceSector, err := d.backing.Append(outcome.PhysicalSector, p)
	return d.shim.AdjustCompletion(zoned.OperationZoneAppend, deviceSector, err), err
}

func (d *blockDevice) ManageZone(op zoned.Operation, zoneStart uint64) error {
	outcome, err := d.router.Submit(&zoned.Request{
		Operation: op,
		Sector:    zoneStart,
	})
	if err != nil {
		return err
	}
	return d.backing.ManageZone(op, outcome.PhysicalSector)
}

func (d *blockDevice) ReportZones(startSector uint64, count int, fn zoned.ZoneConsumer) error {
	_, err := d.shim.ReportZones(startSector, count, fn)
	return err
}

func (d *blockDevice) Sync() error {
	return d.backing.Sync()
}

func (d *blockDevice) Close() error {
	return d.backing.Close()
}
