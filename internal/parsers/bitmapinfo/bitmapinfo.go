// Package bitmapinfo decodes the per-meta-file bitmap header that drives
// all bitmap-indexed addressing.
package bitmapinfo

import (
	"encoding/binary"
	"fmt"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

// Byte offsets within the BitmapHeaderSize-byte buffer. See
// types.BitmapHeader's doc comment for the area/item layout these
// describe.
const (
	ofsItemsPerBitmapEntry = 0x00
	ofsBmpEntriesPerArea   = 0x04
	ofsHdrSize             = 0x08
	ofsDataSize            = 0x0C
	ofsAreaSize            = 0x10
	ofsTotalItems          = 0x14
	ofsAreaCount           = 0x18
)

// Decode parses a BitmapHeaderSize-byte buffer, read as the first bytes
// of a meta-file, or, for the FDC bitmap header, directly from fdc_base.
func Decode(data []byte, endian binary.ByteOrder) (*types.BitmapHeader, error) {
	if len(data) < types.BitmapHeaderSize {
		return nil, fmt.Errorf("decode bitmap header: need %d bytes, got %d: %w",
			types.BitmapHeaderSize, len(data), types.ErrShortRead)
	}

	return &types.BitmapHeader{
		ItemsPerBitmapEntry: endian.Uint32(data[ofsItemsPerBitmapEntry:]),
		BmpEntriesPerArea:   endian.Uint32(data[ofsBmpEntriesPerArea:]),
		HdrSize:             endian.Uint32(data[ofsHdrSize:]),
		DataSize:            endian.Uint32(data[ofsDataSize:]),
		AreaSize:            endian.Uint32(data[ofsAreaSize:]),
		TotalItems:          endian.Uint32(data[ofsTotalItems:]),
		AreaCount:           endian.Uint32(data[ofsAreaCount:]),
	}, nil
}
