package po2zone

import (
	"github.com/zonekit/po2zone/pkg/zoned"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// boundaryClass partitions a request relative to the capacity region of
// the logical zone containing its starting sector.
type boundaryClass int

const (
	// pureCapacity requests lie entirely within the physically
	// backed part of the zone.
	pureCapacity boundaryClass = iota
	// crossing requests start in the capacity region but extend
	// into the padding region.
	crossing
	// purePadding requests lie entirely within the padding region.
	purePadding
)

func (g Geometry) classify(sector, sectorCount uint64) boundaryClass {
	capacityEnd := g.capacityEnd(sector)
	switch {
	case sector+sectorCount <= capacityEnd:
		return pureCapacity
	case sector < capacityEnd:
		return crossing
	default:
		return purePadding
	}
}

// OutcomeKind is the terminal state the router assigned to a request.
type OutcomeKind int

const (
	// OutcomeRemapped: the request must be forwarded to the backing
	// device unmodified, at the outcome's physical sector.
	OutcomeRemapped OutcomeKind = iota
	// OutcomeSplit: only the first AcceptedSectors of the request
	// were accepted and must be forwarded at the outcome's physical
	// sector. The remainder is returned as a continuation request
	// that the caller resubmits independently.
	OutcomeSplit
	// OutcomeZeroFilled: the request was completed by the shim
	// itself with zero-valued data. The backing device must not be
	// contacted.
	OutcomeZeroFilled
)

// RouterOutcome is the routing decision for a single request. The
// decision is computed in full before any I/O takes place; there is no
// partially applied translation state.
type RouterOutcome struct {
	Kind OutcomeKind
	// PhysicalSector is the translated starting sector on the
	// backing device. Valid for OutcomeRemapped and OutcomeSplit.
	PhysicalSector uint64
	// AcceptedSectors is the length of the accepted prefix of a
	// split request. Valid for OutcomeSplit.
	AcceptedSectors uint64
	// Continuation is the not-yet-accepted remainder of a split
	// request. It starts exactly at the end of the zone's capacity
	// region, so resubmitting it always classifies as a request
	// against the padding region. Valid for OutcomeSplit.
	Continuation *zoned.Request
}

// Router decides, per request, whether the request is forwarded to the
// backing device at a translated address, split, completed with
// zeroes, or rejected. Rejections are reported as errors with code
// InvalidArgument; they are local to the request and never affect the
// shim as a whole.
type Router interface {
	Submit(r *zoned.Request) (RouterOutcome, error)
}

var _ Router = (*Shim)(nil)

// Submit routes a single request through the emulation geometry.
//
// Requests must not span more than one logical zone. This holds for
// every caller that splits its I/O on PreferredIOAlignment boundaries
// before submitting, the way NewBlockDevice does.
func (s *Shim) Submit(r *zoned.Request) (RouterOutcome, error) {
	g := s.geometry
	if len(r.Data)%zoned.SectorSizeBytes != 0 {
		return RouterOutcome{}, status.Errorf(codes.InvalidArgument, "Payload of %d bytes is not a whole number of sectors", len(r.Data))
	}

	sectorCount := r.SectorCount()
	if sectorCount == 0 {
		if !r.Operation.IsZoneManagement() {
			// Payloadless requests such as flushes are
			// position independent and pass through
			// unmodified.
			return RouterOutcome{Kind: OutcomeRemapped, PhysicalSector: r.Sector}, nil
		}
		// Zone management commands carry no payload and are
		// remapped on their starting address alone.
		if r.Sector >= g.LogicalSectorCount() {
			return RouterOutcome{}, status.Errorf(codes.InvalidArgument, "Sector %d lies beyond the logical capacity of %d sectors", r.Sector, g.LogicalSectorCount())
		}
		return RouterOutcome{Kind: OutcomeRemapped, PhysicalSector: g.ToPhysical(r.Sector)}, nil
	}

	// Compare through subtraction, so that requests with starting
	// sectors near the top of the address space cannot wrap around
	// the bounds check.
	logicalSectors := g.LogicalSectorCount()
	if r.Sector >= logicalSectors {
		return RouterOutcome{}, status.Errorf(codes.InvalidArgument, "Sector %d lies beyond the logical capacity of %d sectors", r.Sector, logicalSectors)
	}
	end := r.Sector + sectorCount
	if sectorCount > logicalSectors-r.Sector {
		return RouterOutcome{}, status.Errorf(codes.InvalidArgument, "Request at sectors [%d, %d) lies beyond the logical capacity of %d sectors", r.Sector, end, logicalSectors)
	}
	if end > (g.LogicalZoneIndex(r.Sector)+1)*g.ZoneSectorsPo2 {
		return RouterOutcome{}, status.Errorf(codes.FailedPrecondition, "Request at sectors [%d, %d) spans multiple logical zones: callers must split I/O on %d sector boundaries", r.Sector, end, g.ZoneSectorsPo2)
	}

	switch g.classify(r.Sector, sectorCount) {
	case pureCapacity:
		return RouterOutcome{Kind: OutcomeRemapped, PhysicalSector: g.ToPhysical(r.Sector)}, nil
	case crossing:
		if r.Operation != zoned.OperationRead {
			return RouterOutcome{}, status.Errorf(codes.InvalidArgument, "%s at sectors [%d, %d) extends into the unbacked padding region of zone %d", r.Operation, r.Sector, end, g.LogicalZoneIndex(r.Sector))
		}
		accepted := g.capacityEnd(r.Sector) - r.Sector
		return RouterOutcome{
			Kind:            OutcomeSplit,
			PhysicalSector:  g.ToPhysical(r.Sector),
			AcceptedSectors: accepted,
			Continuation: &zoned.Request{
				Operation: r.Operation,
				Sector:    r.Sector + accepted,
				Data:      r.Data[accepted*zoned.SectorSizeBytes:],
			},
		}, nil
	default:
		if r.Operation != zoned.OperationRead {
			return RouterOutcome{}, status.Errorf(codes.InvalidArgument, "%s at sectors [%d, %d) targets the unbacked padding region of zone %d", r.Operation, r.Sector, end, g.LogicalZoneIndex(r.Sector))
		}
		// Reads of the padding region never touch the backing
		// device; they complete with synthesized zeroes.
		clear(r.Data)
		return RouterOutcome{Kind: OutcomeZeroFilled}, nil
	}
}
