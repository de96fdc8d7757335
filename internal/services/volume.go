package services

import (
	"encoding/binary"
	"fmt"

	"github.com/vmfs-go/vmfs-reader/internal/blockid"
	"github.com/vmfs-go/vmfs-reader/internal/parsers/bitmapinfo"
	"github.com/vmfs-go/vmfs-reader/internal/parsers/vmfsinfo"
	"github.com/vmfs-go/vmfs-reader/internal/types"
	"github.com/vmfs-go/vmfs-reader/internal/vmfsdir"
	"github.com/vmfs-go/vmfs-reader/internal/vmfsfile"
)

// Volume is an opened VMFS volume: the decoded volume-level descriptors,
// the well-known meta-files bound to Files, and the root directory. It
// implements vmfsfile.VolumeView so every File it owns can read through
// it without either package importing the other.
type Volume struct {
	raw      *ImageReader
	endian   binary.ByteOrder
	vmfsBase int64
	fdcBase  int64

	VolInfo *types.VolumeInfo
	FSInfo  *types.FSInfo

	fbb, fdc, pbc, sbc, vh, rootDir *vmfsfile.File
	fbbBmh, fdcBmh, pbcBmh, sbcBmh  types.BitmapHeader
}

// OpenVolume runs the bootstrap sequence against an already-open image:
// decode VolumeInfo and FSInfo (both magic-checked), compute fdc_base,
// raw-read the FDC bitmap header and the root directory's meta-info, bind
// the root directory, then open the five well-known meta-files by name
// through the root directory, reading a BitmapHeader for the first four.
//
// vmfsBase is the offset that FSInfo, the FDC meta-file and full-block
// addresses are taken relative to; it is VolInfoBase (0x100000) for a
// volume that starts at the beginning of the image. VolumeInfo itself is
// always read at the absolute offset VolInfoBase.
func OpenVolume(raw *ImageReader, vmfsBase int64) (*Volume, error) {
	endian := binary.LittleEndian

	viBuf, err := raw.ReadData(types.VolInfoBase, types.VolInfoSize)
	if err != nil {
		return nil, fmt.Errorf("open volume: read volume info: %w", err)
	}
	volInfo, err := vmfsinfo.DecodeVolumeInfo(viBuf, endian)
	if err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}

	fsiBuf, err := raw.ReadData(vmfsBase+types.FSInfoOffset, types.FSInfoSize)
	if err != nil {
		return nil, fmt.Errorf("open volume: read fs info: %w", err)
	}
	fsInfo, err := vmfsinfo.DecodeFSInfo(fsiBuf, endian)
	if err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}

	v := &Volume{
		raw:      raw,
		endian:   endian,
		vmfsBase: vmfsBase,
		fdcBase:  vmfsBase + types.FDCBaseOffset,
		VolInfo:  volInfo,
		FSInfo:   fsInfo,
	}

	fdcBmhBuf, err := raw.ReadData(v.fdcBase, types.BitmapHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("open volume: read fdc bitmap header: %w", err)
	}
	fdcBmh, err := bitmapinfo.Decode(fdcBmhBuf, endian)
	if err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}
	v.fdcBmh = *fdcBmh

	rootBuf, err := raw.ReadData(v.fdcBase+int64(fdcBmh.AreaDataAddr(0)), types.FileInfoSize)
	if err != nil {
		return nil, fmt.Errorf("open volume: read root directory meta-info: %w", err)
	}
	rootDir, err := vmfsfile.NewBound(v, rootBuf, endian)
	if err != nil {
		return nil, fmt.Errorf("open volume: bind root directory: %w", err)
	}
	v.rootDir = rootDir

	// FDC first (its bitmap header is already known from the raw read
	// above), then PBC: both FBB and SBC's inline block arrays may in
	// principle contain PB entries that need PBC open to resolve.
	if v.fdc, err = v.openMetaFile(types.FDCFileName, nil); err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}
	if v.pbc, err = v.openMetaFile(types.PBCFileName, &v.pbcBmh); err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}
	if v.fbb, err = v.openMetaFile(types.FBBFileName, &v.fbbBmh); err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}
	if v.sbc, err = v.openMetaFile(types.SBCFileName, &v.sbcBmh); err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}
	if v.vh, err = v.openMetaFile(types.VHFileName, nil); err != nil {
		return nil, fmt.Errorf("open volume: %w", err)
	}

	return v, nil
}

// metaInfoOffset computes the byte offset of an FD-typed block id's
// meta-info within the FDC meta-file, using the (subgroup, number) pair
// it encodes against the FDC bitmap header.
func (v *Volume) metaInfoOffset(fdBlockID uint32) (uint64, error) {
	if blockid.TypeOf(fdBlockID) != blockid.FileDescriptor {
		return 0, fmt.Errorf("meta info offset: block 0x%08x has type %s: %w",
			fdBlockID, blockid.TypeOf(fdBlockID), types.ErrUnexpectedBlockType)
	}

	subgroup, number := blockid.FDSubgroupNumber(fdBlockID)
	k := subgroup * v.fdcBmh.ItemsPerBitmapEntry
	addr := v.fdcBmh.BlockAddr(k) + uint64(number)*uint64(v.fdcBmh.DataSize)
	return addr, nil
}

// openMetaFile searches the root directory for name, fetches the record's
// meta-info with a raw read against fdc_base (the FDC meta-file's own
// File-read path is not usable to bootstrap the meta-files themselves:
// the FDC meta-file's contents are exactly the table that
// metaInfoOffset already addresses directly), and binds it. When bmh is
// non-nil, the opened file's first BitmapHeaderSize bytes are also read
// and decoded into *bmh.
func (v *Volume) openMetaFile(name string, bmh *types.BitmapHeader) (*vmfsfile.File, error) {
	rec, err := vmfsdir.SearchDir(v.rootDir, name, v.endian)
	if err != nil {
		return nil, fmt.Errorf("open meta-file %q: %w", name, err)
	}

	off, err := v.metaInfoOffset(rec.BlockID)
	if err != nil {
		return nil, fmt.Errorf("open meta-file %q: %w", name, err)
	}

	buf, err := v.raw.ReadData(v.fdcBase+int64(off), types.FileInfoSize)
	if err != nil {
		return nil, fmt.Errorf("open meta-file %q: %w", name, err)
	}

	f, err := vmfsfile.NewBound(v, buf, v.endian)
	if err != nil {
		return nil, fmt.Errorf("open meta-file %q: bind: %w", name, err)
	}

	if bmh != nil {
		hdr := make([]byte, types.BitmapHeaderSize)
		n, err := f.Read(hdr)
		if err != nil {
			return nil, fmt.Errorf("open meta-file %q: read bitmap header: %w", name, err)
		}
		if n != types.BitmapHeaderSize {
			return nil, fmt.Errorf("open meta-file %q: read bitmap header: %w", name, types.ErrShortRead)
		}

		decoded, err := bitmapinfo.Decode(hdr, v.endian)
		if err != nil {
			return nil, fmt.Errorf("open meta-file %q: %w", name, err)
		}
		*bmh = *decoded
	}

	return f, nil
}

// OpenByRecord opens a regular file (found via directory search or path
// resolution) given its directory record: it fetches the file's
// meta-info through the now-bootstrapped FDC meta-file's own read path
// and binds it.
func (v *Volume) OpenByRecord(rec *types.FileRecord) (*vmfsfile.File, error) {
	if blockid.TypeOf(rec.BlockID) != blockid.FileDescriptor {
		return nil, fmt.Errorf("open by record %q: block 0x%08x has type %s: %w",
			rec.Name, rec.BlockID, blockid.TypeOf(rec.BlockID), types.ErrUnexpectedBlockType)
	}

	off, err := v.metaInfoOffset(rec.BlockID)
	if err != nil {
		return nil, fmt.Errorf("open by record %q: %w", rec.Name, err)
	}

	v.fdc.Seek(int64(off), types.SeekSet)
	buf := make([]byte, v.fdcBmh.DataSize)
	n, err := v.fdc.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("open by record %q: %w", rec.Name, err)
	}
	if uint32(n) != v.fdcBmh.DataSize {
		return nil, fmt.Errorf("open by record %q: %w", rec.Name, types.ErrShortRead)
	}

	f, err := vmfsfile.NewBound(v, buf, v.endian)
	if err != nil {
		return nil, fmt.Errorf("open by record %q: bind: %w", rec.Name, err)
	}
	return f, nil
}

// RootDir returns the bound root directory File.
func (v *Volume) RootDir() *vmfsfile.File { return v.rootDir }

// VHFile returns the bound volume-header meta-file.
func (v *Volume) VHFile() *vmfsfile.File { return v.vh }

// FBBBitmap returns the FBB meta-file's bitmap header.
func (v *Volume) FBBBitmap() types.BitmapHeader { return v.fbbBmh }

// MetaFileBitmap returns the bitmap header for one of the four
// bitmap-backed meta-files by name (FBB, FDC, PBC, SBC); ok is false for
// any other name, including the bitmap-less volume-header file.
func (v *Volume) MetaFileBitmap(name string) (hdr types.BitmapHeader, ok bool) {
	switch name {
	case types.FBBFileName:
		return v.fbbBmh, true
	case types.FDCFileName:
		return v.fdcBmh, true
	case types.PBCFileName:
		return v.pbcBmh, true
	case types.SBCFileName:
		return v.sbcBmh, true
	default:
		return types.BitmapHeader{}, false
	}
}

// Resolve opens the file or directory named by a slash-separated path
// rooted at the volume's root directory, returning its directory record
// and a bound File ready for Seek/Read. An empty path resolves to the
// root directory itself.
func (v *Volume) Resolve(path string) (*types.FileRecord, *vmfsfile.File, error) {
	return vmfsdir.ResolvePath(v.rootDir, path, v.endian, v.OpenByRecord)
}

// List opens the directory named by path and returns its entries.
func (v *Volume) List(path string) ([]types.FileRecord, error) {
	_, dir, err := v.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", path, err)
	}
	return vmfsdir.List(dir, v.endian)
}

// ScanHeartbeats decodes every heartbeat slot in the volume's heartbeat
// array and returns them in on-disk order. The array lives in full-block
// 3, HeartbeatSize bytes per slot, with the slot count derived from the
// volume's own block size rather than a fixed region size.
func (v *Volume) ScanHeartbeats() ([]types.Heartbeat, error) {
	count := int(v.FSInfo.BlockSize) / types.HeartbeatSize

	hbs := make([]types.Heartbeat, 0, count)
	for i := 0; i < count; i++ {
		buf, err := v.raw.ReadBlock(v.vmfsBase, v.FSInfo.BlockSize, 3, int64(i)*types.HeartbeatSize, types.HeartbeatSize)
		if err != nil {
			return nil, fmt.Errorf("scan heartbeats: slot %d: %w", i, err)
		}

		hb, err := vmfsinfo.DecodeHeartbeat(buf, v.endian)
		if err != nil {
			return nil, fmt.Errorf("scan heartbeats: slot %d: %w", i, err)
		}

		hbs = append(hbs, *hb)
	}

	return hbs, nil
}

// Close releases the backing image handle. Meta-files and the root
// directory hold a back-reference to this Volume, not the image, so they
// do not need independent closing.
func (v *Volume) Close() error {
	return v.raw.Close()
}

// --- vmfsfile.VolumeView ---

func (v *Volume) BlockSize() uint64 { return v.FSInfo.BlockSize }
func (v *Volume) VmfsBase() int64  { return v.vmfsBase }

func (v *Volume) ReadFullBlock(blk uint32, offset int64, length int) ([]byte, error) {
	return v.raw.ReadBlock(v.vmfsBase, v.BlockSize(), blk, offset, length)
}

func (v *Volume) SBCFile() *vmfsfile.File { return v.sbc }
func (v *Volume) PBCFile() *vmfsfile.File { return v.pbc }
func (v *Volume) FDCFile() *vmfsfile.File { return v.fdc }

func (v *Volume) SBCBitmap() types.BitmapHeader { return v.sbcBmh }
func (v *Volume) PBCBitmap() types.BitmapHeader { return v.pbcBmh }
func (v *Volume) FDCBitmap() types.BitmapHeader { return v.fdcBmh }
