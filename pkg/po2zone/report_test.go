package po2zone_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zonekit/po2zone/internal/mock"
	"github.com/zonekit/po2zone/pkg/po2zone"
	"github.com/zonekit/po2zone/pkg/zoned"

	"go.uber.org/mock/gomock"
)

func TestShimReportZones(t *testing.T) {
	ctrl := gomock.NewController(t)

	newShim := func(t *testing.T, capacitySectors uint64) (*po2zone.Shim, *mock.MockZonedBlockDevice) {
		device := mock.NewMockZonedBlockDevice(ctrl)
		device.EXPECT().SectorCount().Return(capacitySectors)
		device.EXPECT().ZoneSectors().Return(uint64(3))
		shim, err := po2zone.NewShim(device, 0, capacitySectors)
		require.NoError(t, err)
		return shim, device
	}

	physicalZones := []zoned.Zone{
		{Start: 0, Length: 3, Capacity: 3, WritePointer: 2, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionImplicitOpen},
		{Start: 3, Length: 3, Capacity: 3, WritePointer: 3, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionEmpty},
		{Start: 6, Length: 3, Capacity: 3, WritePointer: 9, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionFull},
	}
	feedZones := func(zones []zoned.Zone) func(startSector uint64, count int, fn zoned.ZoneConsumer) error {
		return func(startSector uint64, count int, fn zoned.ZoneConsumer) error {
			for i := range zones {
				if i == count {
					break
				}
				zone := zones[i]
				if err := fn(&zone, i); err != nil {
					return err
				}
			}
			return nil
		}
	}

	t.Run("TranslatesDescriptors", func(t *testing.T) {
		shim, device := newShim(t, 12)
		device.EXPECT().ReportZones(uint64(0), 3, gomock.Any()).DoAndReturn(feedZones(physicalZones))

		var observed []zoned.Zone
		var indices []int
		next, err := shim.ReportZones(0, 3, func(zone *zoned.Zone, index int) error {
			observed = append(observed, *zone)
			indices = append(indices, index)
			return nil
		})
		require.NoError(t, err)

		// Starts and write pointers are translated, lengths are
		// forced to the emulated zone size. The physical zone
		// starting at sector 3 with write pointer 3 becomes a
		// logical zone at sector 4 with write pointer 4.
		require.Equal(t, []zoned.Zone{
			{Start: 0, Length: 4, Capacity: 3, WritePointer: 2, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionImplicitOpen},
			{Start: 4, Length: 4, Capacity: 3, WritePointer: 4, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionEmpty},
			{Start: 8, Length: 4, Capacity: 3, WritePointer: 12, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionFull},
		}, observed)
		require.Equal(t, []int{0, 1, 2}, indices)
		require.Equal(t, uint64(12), next)
	})

	t.Run("StartsAtRequestedZone", func(t *testing.T) {
		// An enumeration starting at logical sector 8 (zone 2)
		// must request physical zones starting at sector 6.
		shim, device := newShim(t, 12)
		device.EXPECT().ReportZones(uint64(6), 2, gomock.Any()).DoAndReturn(feedZones(physicalZones[2:]))

		zoneCount := 0
		next, err := shim.ReportZones(8, 2, func(zone *zoned.Zone, index int) error {
			require.Equal(t, uint64(8), zone.Start)
			zoneCount++
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 1, zoneCount)
		require.Equal(t, uint64(12), next)
	})

	t.Run("Idempotent", func(t *testing.T) {
		// Re-running the same enumeration against an unmutated
		// device yields identical translated output.
		shim, device := newShim(t, 12)
		device.EXPECT().ReportZones(uint64(0), 3, gomock.Any()).DoAndReturn(feedZones(physicalZones)).Times(2)

		collect := func() (zones []zoned.Zone) {
			_, err := shim.ReportZones(0, 3, func(zone *zoned.Zone, index int) error {
				zones = append(zones, *zone)
				return nil
			})
			require.NoError(t, err)
			return
		}
		require.Equal(t, collect(), collect())
	})

	t.Run("SkipsTrailingPartialZone", func(t *testing.T) {
		// A device of 14 sectors has four full zones and a runt
		// at sector 12 that is excluded from the logical address
		// space. Its descriptor must never reach the consumer.
		shim, device := newShim(t, 14)
		runtZones := []zoned.Zone{
			{Start: 9, Length: 3, Capacity: 3, WritePointer: 9, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionEmpty},
			{Start: 12, Length: 2, Capacity: 2, WritePointer: 12, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionEmpty},
		}
		device.EXPECT().ReportZones(uint64(9), 2, gomock.Any()).DoAndReturn(feedZones(runtZones))

		var observed []zoned.Zone
		next, err := shim.ReportZones(12, 2, func(zone *zoned.Zone, index int) error {
			observed = append(observed, *zone)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []zoned.Zone{
			{Start: 12, Length: 4, Capacity: 3, WritePointer: 12, Type: zoned.ZoneTypeSequentialWriteRequired, Condition: zoned.ZoneConditionEmpty},
		}, observed)
		require.Equal(t, uint64(16), next)
	})
}
