// Package vmfsinfo decodes the fixed-offset volume-level descriptors:
// VolumeInfo, FSInfo, and Heartbeat. Each decoder is a pure function over
// a fixed-size byte buffer: validate length, validate magic (where one
// exists), then field-by-field little-endian extraction.
package vmfsinfo

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

// DecodeVolumeInfo parses a VolInfoSize-byte buffer read from VolInfoBase.
func DecodeVolumeInfo(data []byte, endian binary.ByteOrder) (*types.VolumeInfo, error) {
	if len(data) < types.VolInfoSize {
		return nil, fmt.Errorf("decode volume info: need %d bytes, got %d: %w",
			types.VolInfoSize, len(data), types.ErrShortRead)
	}

	vi := &types.VolumeInfo{
		Magic:   endian.Uint32(data[types.OfsVolInfoMagic:]),
		Version: endian.Uint32(data[types.OfsVolInfoVersion:]),
		Size:    endian.Uint64(data[types.OfsVolInfoSize:]),
		Blocks:  endian.Uint64(data[types.OfsVolInfoBlocks:]),
	}

	if vi.Magic != types.VolInfoMagic {
		return nil, fmt.Errorf("decode volume info: got 0x%08x, want 0x%08x: %w",
			vi.Magic, uint32(types.VolInfoMagic), types.ErrBadMagic)
	}

	name := data[types.OfsVolInfoName : types.OfsVolInfoName+types.VolInfoNameSize]
	vi.Name = trimNUL(name)
	copy(vi.UUID[:], data[types.OfsVolInfoUUID:types.OfsVolInfoUUID+types.UUIDSize])

	return vi, nil
}

// DecodeFSInfo parses an FSInfoSize-byte buffer read from
// vmfs_base+FSInfoOffset.
func DecodeFSInfo(data []byte, endian binary.ByteOrder) (*types.FSInfo, error) {
	if len(data) < types.FSInfoSize {
		return nil, fmt.Errorf("decode fs info: need %d bytes, got %d: %w",
			types.FSInfoSize, len(data), types.ErrShortRead)
	}

	fi := &types.FSInfo{
		Magic:      endian.Uint32(data[types.OfsFSInfoMagic:]),
		VolVersion: endian.Uint32(data[types.OfsFSInfoVolVer:]),
		Version:    data[types.OfsFSInfoVersion],
		BlockSize:  uint64(endian.Uint32(data[types.OfsFSInfoBlockSize:])),
	}

	if fi.Magic != types.FSInfoMagic {
		return nil, fmt.Errorf("decode fs info: got 0x%08x, want 0x%08x: %w",
			fi.Magic, uint32(types.FSInfoMagic), types.ErrBadMagic)
	}

	copy(fi.UUID[:], data[types.OfsFSInfoUUID:types.OfsFSInfoUUID+types.UUIDSize])
	label := data[types.OfsFSInfoLabel : types.OfsFSInfoLabel+types.FSInfoLabelSize]
	fi.Label = trimNUL(label)

	return fi, nil
}

// DecodeHeartbeat parses a HeartbeatSize-byte buffer. Unlike VolumeInfo and
// FSInfo, the heartbeat magic is not validated here: both HBMagicOn and
// HBMagicOff are legal values, and the scanner (not the decoder) decides
// what to do with each.
func DecodeHeartbeat(data []byte, endian binary.ByteOrder) (*types.Heartbeat, error) {
	if len(data) < types.HeartbeatSize {
		return nil, fmt.Errorf("decode heartbeat: need %d bytes, got %d: %w",
			types.HeartbeatSize, len(data), types.ErrShortRead)
	}

	hb := &types.Heartbeat{
		Magic:    endian.Uint32(data[types.OfsHBMagic:]),
		Position: endian.Uint64(data[types.OfsHBPos:]),
		Uptime:   endian.Uint64(data[types.OfsHBUptime:]),
	}
	copy(hb.UUID[:], data[types.OfsHBUUID:types.OfsHBUUID+types.UUIDSize])

	return hb, nil
}

// trimNUL returns the leading, non-NUL-terminated portion of a fixed-size,
// NUL-padded text field.
func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
