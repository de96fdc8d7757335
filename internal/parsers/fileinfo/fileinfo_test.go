package fileinfo

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

func makeFileInfoBuf(size uint64, blockIDs ...uint32) []byte {
	buf := make([]byte, types.FileInfoSize)
	binary.LittleEndian.PutUint32(buf[types.OfsFileInfoGroupID:], 1)
	binary.LittleEndian.PutUint64(buf[types.OfsFileInfoSize:], size)
	binary.LittleEndian.PutUint32(buf[types.OfsFileInfoMode:], 0o644)

	for i, id := range blockIDs {
		off := types.FileInfoBlockArrayOffset + i*4
		binary.LittleEndian.PutUint32(buf[off:], id)
	}

	return buf
}

func TestDecodeFileInfo(t *testing.T) {
	t.Run("short buffer", func(t *testing.T) {
		_, err := DecodeFileInfo(make([]byte, 4), binary.LittleEndian)
		assert.True(t, errors.Is(err, types.ErrShortRead))
	})

	t.Run("valid", func(t *testing.T) {
		buf := makeFileInfoBuf(4096, 1, 2, 0)
		fi, err := DecodeFileInfo(buf, binary.LittleEndian)
		require.NoError(t, err)
		assert.Equal(t, uint64(4096), fi.Size)
		assert.Equal(t, uint32(0o644), fi.Mode)
	})
}

func TestBlockIDAt(t *testing.T) {
	buf := makeFileInfoBuf(100, 11, 22, 33, 0)
	assert.Equal(t, uint32(11), BlockIDAt(buf, binary.LittleEndian, 0))
	assert.Equal(t, uint32(22), BlockIDAt(buf, binary.LittleEndian, 1))
	assert.Equal(t, uint32(33), BlockIDAt(buf, binary.LittleEndian, 2))
	assert.Equal(t, uint32(0), BlockIDAt(buf, binary.LittleEndian, 3))
}

func makeFileRecordBuf(recType, blockID, recordID uint32, name string) []byte {
	buf := make([]byte, types.FileRecordSize)
	binary.LittleEndian.PutUint32(buf[types.OfsFileRecType:], recType)
	binary.LittleEndian.PutUint32(buf[types.OfsFileRecBlockID:], blockID)
	binary.LittleEndian.PutUint32(buf[types.OfsFileRecRecID:], recordID)
	copy(buf[types.OfsFileRecName:], name)
	return buf
}

func TestDecodeFileRecord(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
		wantRec string
	}{
		{
			name:    "short buffer",
			data:    make([]byte, 2),
			wantErr: types.ErrShortRead,
		},
		{
			name:    "valid",
			data:    makeFileRecordBuf(1, 0x12345678, 7, "Test1.vmx"),
			wantRec: "Test1.vmx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeFileRecord(tt.data, binary.LittleEndian)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRec, rec.Name)
			assert.Equal(t, uint32(0x12345678), rec.BlockID)
			assert.Equal(t, uint32(7), rec.RecordID)
		})
	}
}
