package zoned

// Operation identifies the kind of I/O carried by a Request.
type Operation int

const (
	// OperationRead transfers data from the device into the
	// request's payload buffer.
	OperationRead Operation = iota
	// OperationWrite transfers the request's payload buffer to the
	// device at the request's starting sector.
	OperationWrite
	// OperationZoneAppend writes the payload at the write pointer
	// of the zone containing the starting sector. The device, not
	// the caller, picks the final position and reports it on
	// completion.
	OperationZoneAppend
	// OperationFlush carries no payload and forces buffered data to
	// stable storage.
	OperationFlush
	// OperationZoneReset rewinds a zone's write pointer to the
	// start of the zone, discarding its contents.
	OperationZoneReset
	// OperationZoneOpen transitions a zone to the explicitly open
	// condition.
	OperationZoneOpen
	// OperationZoneClose transitions an open zone to the closed
	// condition.
	OperationZoneClose
	// OperationZoneFinish moves a zone's write pointer to the end
	// of the zone, transitioning it to the full condition.
	OperationZoneFinish
)

var operationNames = map[Operation]string{
	OperationRead:       "read",
	OperationWrite:      "write",
	OperationZoneAppend: "zone_append",
	OperationFlush:      "flush",
	OperationZoneReset:  "zone_reset",
	OperationZoneOpen:   "zone_open",
	OperationZoneClose:  "zone_close",
	OperationZoneFinish: "zone_finish",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown"
}

// IsZoneManagement returns whether the operation is a zone management
// command. Zone management commands carry no payload and target a zone
// rather than a sector range.
func (op Operation) IsZoneManagement() bool {
	switch op {
	case OperationZoneReset, OperationZoneOpen, OperationZoneClose, OperationZoneFinish:
		return true
	default:
		return false
	}
}

// Request is a single I/O operation submitted against a zoned block
// device. Sector is the starting sector. Data is the payload buffer,
// which must be a whole number of sectors in size; it is nil for flush
// and zone management operations.
//
// A Request carries no state beyond its own address range, operation
// kind and payload.
type Request struct {
	Operation Operation
	Sector    uint64
	Data      []byte
}

// SectorCount returns the length of the request's payload in sectors.
func (r *Request) SectorCount() uint64 {
	return uint64(len(r.Data)) / SectorSizeBytes
}
