package po2zone_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zonekit/po2zone/pkg/zoned"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/mock/gomock"
)

func TestShimAdjustCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	shim := newTestShim(t, ctrl)

	t.Run("SuccessfulZoneAppend", func(t *testing.T) {
		// The device picked physical sector 3, which clients
		// observe as logical sector 4.
		require.Equal(t, uint64(4), shim.AdjustCompletion(zoned.OperationZoneAppend, 3, nil))
	})

	t.Run("FailedZoneAppend", func(t *testing.T) {
		// Failed completions carry no device-chosen sector, so
		// nothing may be rewritten.
		require.Equal(t, uint64(3), shim.AdjustCompletion(zoned.OperationZoneAppend, 3, status.Error(codes.Internal, "Disk on fire")))
	})

	t.Run("OtherOperations", func(t *testing.T) {
		// Sectors of other operations were translated on the
		// way in, not by the device; translating them again
		// would corrupt them.
		require.Equal(t, uint64(3), shim.AdjustCompletion(zoned.OperationWrite, 3, nil))
		require.Equal(t, uint64(3), shim.AdjustCompletion(zoned.OperationRead, 3, nil))
		require.Equal(t, uint64(3), shim.AdjustCompletion(zoned.OperationZoneReset, 3, nil))
	})
}
