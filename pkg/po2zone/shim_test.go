package po2zone_test

import (
	"testing"

	"github.com/buildbarn/bb-storage/pkg/testutil"
	"github.com/stretchr/testify/require"
	"github.com/zonekit/po2zone/internal/mock"
	"github.com/zonekit/po2zone/pkg/po2zone"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/mock/gomock"
)

func TestNewShim(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("MissingDevice", func(t *testing.T) {
		_, err := po2zone.NewShim(nil, 0, 0)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Exactly one backing device must be provided"), err)
	})

	t.Run("PartialMapping", func(t *testing.T) {
		device := mock.NewMockZonedBlockDevice(ctrl)
		device.EXPECT().SectorCount().Return(uint64(21))

		_, err := po2zone.NewShim(device, 0, 12)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Mapping [0, 12) does not cover the whole device of 21 sectors: partial mappings are not supported"), err)
	})

	t.Run("OffsetMapping", func(t *testing.T) {
		device := mock.NewMockZonedBlockDevice(ctrl)
		device.EXPECT().SectorCount().Return(uint64(21))

		_, err := po2zone.NewShim(device, 3, 18)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Mapping [3, 21) does not cover the whole device of 21 sectors: partial mappings are not supported"), err)
	})

	t.Run("NonZonedDevice", func(t *testing.T) {
		device := mock.NewMockZonedBlockDevice(ctrl)
		device.EXPECT().SectorCount().Return(uint64(21))
		device.EXPECT().ZoneSectors().Return(uint64(0))

		_, err := po2zone.NewShim(device, 0, 21)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Device reports a zone size of zero sectors"), err)
	})

	t.Run("Success", func(t *testing.T) {
		device := mock.NewMockZonedBlockDevice(ctrl)
		device.EXPECT().SectorCount().Return(uint64(21))
		device.EXPECT().ZoneSectors().Return(uint64(3))

		shim, err := po2zone.NewShim(device, 0, 21)
		require.NoError(t, err)

		geometry := shim.Geometry()
		require.Equal(t, uint64(3), geometry.ZoneSectors)
		require.Equal(t, uint64(4), geometry.ZoneSectorsPo2)
		require.Equal(t, uint64(7), geometry.ZoneCount)
		require.Equal(t, uint64(28), geometry.LogicalSectorCount())

		// Splitting on this boundary is what keeps every
		// request within a single logical zone.
		require.Equal(t, uint64(4), shim.PreferredIOAlignment())

		backing, start, length := shim.BackingExtent()
		require.Equal(t, device, backing)
		require.Equal(t, uint64(0), start)
		require.Equal(t, uint64(21), length)
	})

	t.Run("PowerOfTwoPassthrough", func(t *testing.T) {
		// Attaching to a device whose zone size is already a
		// power of two succeeds, even though the shim then
		// translates nothing.
		device := mock.NewMockZonedBlockDevice(ctrl)
		device.EXPECT().SectorCount().Return(uint64(16))
		device.EXPECT().ZoneSectors().Return(uint64(4))

		shim, err := po2zone.NewShim(device, 0, 16)
		require.NoError(t, err)
		require.True(t, shim.Geometry().IsPassthrough())
		require.Equal(t, uint64(16), shim.Geometry().LogicalSectorCount())
	})
}
