package services

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

// buildSyntheticImage assembles a minimal byte image whose layout OpenVolume
// can bootstrap end to end: VolumeInfo, FSInfo, an FDC bitmap header with a
// trivially flat addressing scheme (one huge area, so BlockAddr(k) is just
// HdrSize+k*DataSize), a root directory naming the five well-known
// meta-files, and minimal meta-info records for each of them.
func buildSyntheticImage(t *testing.T) []byte {
	t.Helper()

	const (
		blockSize = 4096
		fdcBase   = types.FDCBaseOffset // vmfsBase is 0 in this test
		hdrSize   = 0x800
		dataSize  = types.FileInfoSize // 0x800

		rootDirBlock = 10
		fbbDataBlock = 11
		pbcDataBlock = 12
		sbcDataBlock = 13
	)

	buf := make([]byte, fdcBase+0x4000)

	// VolumeInfo.
	putU32 := binary.LittleEndian.PutUint32
	putU64 := binary.LittleEndian.PutUint64

	putU32(buf[types.VolInfoBase+types.OfsVolInfoMagic:], types.VolInfoMagic)
	putU32(buf[types.VolInfoBase+types.OfsVolInfoVersion:], 1)
	copy(buf[types.VolInfoBase+types.OfsVolInfoName:], "datastore1")
	putU64(buf[types.VolInfoBase+types.OfsVolInfoSize:], 1<<40)
	putU64(buf[types.VolInfoBase+types.OfsVolInfoBlocks:], 1000)

	// FSInfo.
	putU32(buf[types.FSInfoOffset+types.OfsFSInfoMagic:], types.FSInfoMagic)
	putU32(buf[types.FSInfoOffset+types.OfsFSInfoVolVer:], 1)
	copy(buf[types.FSInfoOffset+types.OfsFSInfoLabel:], "vmfs-label")
	putU32(buf[types.FSInfoOffset+types.OfsFSInfoBlockSize:], blockSize)

	// FDC bitmap header: one flat area, so BlockAddr(k) = hdrSize + k*dataSize.
	putU32(buf[fdcBase:], 1)        // ItemsPerBitmapEntry
	putU32(buf[fdcBase+4:], 1000000) // BmpEntriesPerArea
	putU32(buf[fdcBase+8:], hdrSize)
	putU32(buf[fdcBase+12:], dataSize)
	putU32(buf[fdcBase+16:], hdrSize+dataSize*1000000)
	putU32(buf[fdcBase+20:], 6)
	putU32(buf[fdcBase+24:], 1)

	fbFull := func(number uint32) uint32 { return (number << 6) | 1 }
	fdRec := func(subgroup, number uint32) uint32 { return (number << 10) | (subgroup << 4) | 4 }
	blockAddr := func(k uint32) int64 { return int64(hdrSize) + int64(k)*int64(dataSize) }

	// Root directory meta-info sits at BlockAddr(0), naming the block
	// holding its five directory entries.
	rootOff := fdcBase + blockAddr(0)
	putU64(buf[rootOff+int64(types.OfsFileInfoSize):], 5*types.FileRecordSize)
	putU32(buf[rootOff+int64(types.FileInfoBlockArrayOffset):], fbFull(rootDirBlock))

	type entry struct {
		name     string
		subgroup uint32
	}
	entries := []entry{
		{types.FDCFileName, 1},
		{types.PBCFileName, 2},
		{types.FBBFileName, 3},
		{types.SBCFileName, 4},
		{types.VHFileName, 5},
	}

	dirBlockOff := int64(types.VolBlockBase) + rootDirBlock*blockSize
	for i, e := range entries {
		recOff := dirBlockOff + int64(i)*types.FileRecordSize
		putU32(buf[recOff+types.OfsFileRecType:], 1)
		putU32(buf[recOff+types.OfsFileRecBlockID:], fdRec(e.subgroup, 0))
		copy(buf[recOff+types.OfsFileRecName:], e.name)
	}

	// Each meta-file's own meta-info, at BlockAddr(subgroup).
	writeMetaInfo := func(subgroup uint32, size uint64, dataBlock uint32) {
		off := fdcBase + blockAddr(subgroup)
		putU64(buf[off+int64(types.OfsFileInfoSize):], size)
		if size > 0 {
			putU32(buf[off+int64(types.FileInfoBlockArrayOffset):], fbFull(dataBlock))
		}
	}

	writeMetaInfo(1, 0, 0)             // FDC: no bitmap read, no data needed
	writeMetaInfo(2, 512, pbcDataBlock) // PBC: bitmap header read from its data block
	writeMetaInfo(3, 512, fbbDataBlock) // FBB
	writeMetaInfo(4, 512, sbcDataBlock) // SBC
	writeMetaInfo(5, 0, 0)              // VH: no bitmap read

	// Bitmap header content for each bitmap-backed meta-file's data block.
	putBitmapHeader := func(blk uint32) {
		off := int64(types.VolBlockBase) + int64(blk)*blockSize
		putU32(buf[off:], 1)        // ItemsPerBitmapEntry
		putU32(buf[off+4:], 1)      // BmpEntriesPerArea
		putU32(buf[off+8:], 0)      // HdrSize
		putU32(buf[off+12:], 64)    // DataSize
		putU32(buf[off+16:], 64)    // AreaSize
		putU32(buf[off+20:], 1)     // TotalItems
		putU32(buf[off+24:], 1)     // AreaCount
	}
	putBitmapHeader(fbbDataBlock)
	putBitmapHeader(pbcDataBlock)
	putBitmapHeader(sbcDataBlock)

	// Heartbeat array lives in full-block 3: one slot held, one not.
	hbBlockOff := int64(types.VolBlockBase) + 3*blockSize
	putU32(buf[hbBlockOff:], types.HBMagicOn)
	putU32(buf[hbBlockOff+types.HeartbeatSize:], types.HBMagicOff)

	return buf
}

func openSyntheticVolume(t *testing.T) *Volume {
	t.Helper()

	data := buildSyntheticImage(t)
	path := filepath.Join(t.TempDir(), "synthetic.vmfs")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	raw, err := OpenImage(path)
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	vol, err := OpenVolume(raw, 0)
	require.NoError(t, err)
	return vol
}

func TestOpenVolumeBootstrapsDescriptorsAndMetaFiles(t *testing.T) {
	vol := openSyntheticVolume(t)

	assert.Equal(t, "datastore1", vol.VolInfo.Name)
	assert.Equal(t, "vmfs-label", vol.FSInfo.Label)
	assert.Equal(t, uint64(4096), vol.FSInfo.BlockSize)

	recs, err := vol.List("")
	require.NoError(t, err)
	require.Len(t, recs, 5)

	names := make(map[string]bool, len(recs))
	for _, r := range recs {
		names[r.Name] = true
	}
	for _, want := range []string{types.FDCFileName, types.PBCFileName, types.FBBFileName, types.SBCFileName, types.VHFileName} {
		assert.True(t, names[want], "expected %q among root directory entries", want)
	}

	if bmh, ok := vol.MetaFileBitmap(types.FBBFileName); ok {
		assert.Equal(t, uint32(1), bmh.ItemsPerBitmapEntry)
	} else {
		t.Fatal("expected FBB bitmap header")
	}
}

func TestScanHeartbeatsReportsActiveSlot(t *testing.T) {
	vol := openSyntheticVolume(t)

	hbs, err := vol.ScanHeartbeats()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(hbs), 2)

	active := 0
	for _, hb := range hbs[:2] {
		if hb.Active() {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestOpenVolumeBadMagicFails(t *testing.T) {
	data := buildSyntheticImage(t)
	binary.LittleEndian.PutUint32(data[types.VolInfoBase+types.OfsVolInfoMagic:], 0)

	path := filepath.Join(t.TempDir(), "bad.vmfs")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	raw, err := OpenImage(path)
	require.NoError(t, err)
	defer raw.Close()

	_, err = OpenVolume(raw, 0)
	assert.Error(t, err)
}
