// Package fileinfo decodes the per-file meta-info record and the
// per-directory-entry file record.
package fileinfo

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

// DecodeFileInfo parses a FileInfoSize-byte meta-info buffer. It does not
// interpret the inline block-id array at FileInfoBlockArrayOffset;
// binding that array into a block list is the file package's job, since
// pointer-block expansion there needs the volume's PBC meta-file.
func DecodeFileInfo(data []byte, endian binary.ByteOrder) (*types.FileInfo, error) {
	if len(data) < types.FileInfoSize {
		return nil, fmt.Errorf("decode file info: need %d bytes, got %d: %w",
			types.FileInfoSize, len(data), types.ErrShortRead)
	}

	fi := &types.FileInfo{
		GroupID:  endian.Uint32(data[types.OfsFileInfoGroupID:]),
		Position: endian.Uint64(data[types.OfsFileInfoPos:]),
		HBPos:    endian.Uint64(data[types.OfsFileInfoHBPos:]),
		HBLock:   endian.Uint32(data[types.OfsFileInfoHBLock:]),
		ID:       endian.Uint32(data[types.OfsFileInfoID:]),
		ID2:      endian.Uint32(data[types.OfsFileInfoID2:]),
		Type:     endian.Uint32(data[types.OfsFileInfoType:]),
		Size:     endian.Uint64(data[types.OfsFileInfoSize:]),
		TS1:      endian.Uint32(data[types.OfsFileInfoTS1:]),
		TS2:      endian.Uint32(data[types.OfsFileInfoTS2:]),
		TS3:      endian.Uint32(data[types.OfsFileInfoTS3:]),
		UID:      endian.Uint32(data[types.OfsFileInfoUID:]),
		GID:      endian.Uint32(data[types.OfsFileInfoGID:]),
		Mode:     endian.Uint32(data[types.OfsFileInfoMode:]),
	}
	copy(fi.HBUUID[:], data[types.OfsFileInfoHBUUID:types.OfsFileInfoHBUUID+types.UUIDSize])

	return fi, nil
}

// BlockIDAt returns the i-th entry (0-based) of the inline block-id array
// in a meta-info buffer. Callers stop at the first zero entry.
func BlockIDAt(data []byte, endian binary.ByteOrder, i int) uint32 {
	off := types.FileInfoBlockArrayOffset + i*4
	return endian.Uint32(data[off : off+4])
}

// DecodeFileRecord parses a FileRecordSize-byte directory entry.
func DecodeFileRecord(data []byte, endian binary.ByteOrder) (*types.FileRecord, error) {
	if len(data) < types.FileRecordSize {
		return nil, fmt.Errorf("decode file record: need %d bytes, got %d: %w",
			types.FileRecordSize, len(data), types.ErrShortRead)
	}

	rec := &types.FileRecord{
		Type:     endian.Uint32(data[types.OfsFileRecType:]),
		BlockID:  endian.Uint32(data[types.OfsFileRecBlockID:]),
		RecordID: endian.Uint32(data[types.OfsFileRecRecID:]),
	}

	name := data[types.OfsFileRecName : types.OfsFileRecName+types.FileRecordNameSize]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	rec.Name = string(name)

	return rec, nil
}
