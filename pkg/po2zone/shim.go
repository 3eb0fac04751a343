package po2zone

import (
	"log"

	"github.com/zonekit/po2zone/pkg/zoned"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Shim sits between a client that requires power-of-two sized zones and
// a backing zoned block device whose real zone size is not a power of
// two. It translates sector addresses, intercepts I/O that would
// straddle the gap between the physical zone capacity and the emulated
// zone size, fabricates zero-filled reads over the unbacked padding
// region and rewrites zone reports, so that clients only ever observe
// uniform power-of-two zones.
//
// A Shim holds no mutable state: after construction it consists of a
// device handle and an immutable Geometry, so all of its methods may be
// called concurrently without locking.
type Shim struct {
	device   zoned.ZonedBlockDevice
	geometry Geometry
}

// NewShim attaches a power-of-two zone emulation shim to a backing
// device. The mapping must cover the entire device: mappingStart must
// be zero and mappingSectors must equal the device's capacity. Partial
// mappings are not supported.
func NewShim(device zoned.ZonedBlockDevice, mappingStart, mappingSectors uint64) (*Shim, error) {
	if device == nil {
		return nil, status.Error(codes.InvalidArgument, "Exactly one backing device must be provided")
	}
	capacitySectors := device.SectorCount()
	if mappingStart != 0 || mappingSectors != capacitySectors {
		return nil, status.Errorf(codes.InvalidArgument, "Mapping [%d, %d) does not cover the whole device of %d sectors: partial mappings are not supported", mappingStart, mappingStart+mappingSectors, capacitySectors)
	}
	geometry, err := NewGeometry(device.ZoneSectors(), capacitySectors)
	if err != nil {
		return nil, err
	}
	if geometry.IsPassthrough() {
		log.Printf("Zone size of %d sectors is already a power of two; the shim degenerates to an identity mapping", geometry.ZoneSectors)
	}
	return &Shim{
		device:   device,
		geometry: geometry,
	}, nil
}

// Geometry returns the immutable emulation geometry computed at attach
// time.
func (s *Shim) Geometry() Geometry {
	return s.geometry
}

// PreferredIOAlignment returns the boundary, in sectors, on which every
// mechanism that splits requests upstream of the shim must align its
// splits. Aligning splits on this boundary guarantees that no request
// reaching Submit spans more than one logical zone, which is what
// allows the router to reason about a single zone at a time.
func (s *Shim) PreferredIOAlignment() uint64 {
	return s.geometry.ZoneSectorsPo2
}

// BackingExtent returns the backing device together with the physical
// sector range the shim occupies on it, for topology and ownership
// queries. The extent always starts at sector zero and spans all full
// zones of the device.
func (s *Shim) BackingExtent() (zoned.ZonedBlockDevice, uint64, uint64) {
	return s.device, 0, s.geometry.ZoneCount * s.geometry.ZoneSectors
}
