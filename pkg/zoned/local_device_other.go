//go:build !linux
// +build !linux

package zoned

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewLocalDevice opens a host-attached zoned block device. Zoned block
// device access is only implemented for Linux.
func NewLocalDevice(path string) (ZonedBlockDevice, error) {
	return nil, status.Error(codes.Unimplemented, "Zoned block devices are not supported on this platform")
}
