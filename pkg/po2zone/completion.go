package po2zone

import (
	"github.com/zonekit/po2zone/pkg/zoned"
)

// AdjustCompletion rewrites the completion sector that the backing
// device reported for a request, so that the caller observes an
// address that is consistent with the logical geometry.
//
// Only successful zone append completions carry a device-chosen sector
// and are translated. Completions of failed requests and of any other
// operation kind pass through unmodified: their sector was never
// translated on the way in, so translating it here would corrupt it.
func (s *Shim) AdjustCompletion(op zoned.Operation, deviceSector uint64, opErr error) uint64 {
	if opErr == nil && op == zoned.OperationZoneAppend {
		return s.geometry.ToLogical(deviceSector)
	}
	return deviceSector
}
