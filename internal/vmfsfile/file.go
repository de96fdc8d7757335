// Package vmfsfile implements the file abstraction: binding a meta-info
// buffer to a block list (resolving pointer blocks along the way), and
// block-type-aware seek/read. It is the address-translation engine's
// centerpiece: every other structure in the filesystem — the meta-files
// themselves included — is read through the same File type defined here.
//
// File holds a non-owning VolumeView back-reference rather than a
// concrete *services.Volume, so this package does not import services;
// services imports vmfsfile instead and its Volume type implements
// VolumeView. This breaks what would otherwise be an import cycle from
// the on-disk structure's own cyclic ownership: a File's reads can
// recurse into the meta-files that are themselves Files owned by the
// same Volume.
package vmfsfile

import (
	"encoding/binary"
	"fmt"

	"github.com/vmfs-go/vmfs-reader/internal/blockid"
	"github.com/vmfs-go/vmfs-reader/internal/blocklist"
	"github.com/vmfs-go/vmfs-reader/internal/parsers/fileinfo"
	"github.com/vmfs-go/vmfs-reader/internal/types"
)

// VolumeView is everything a File needs from its owning Volume: block
// geometry, raw full-block reads, and the three meta-files that the read
// and bind paths recurse into.
type VolumeView interface {
	BlockSize() uint64
	VmfsBase() int64
	ReadFullBlock(blk uint32, offset int64, length int) ([]byte, error)

	SBCFile() *File
	PBCFile() *File
	FDCFile() *File

	SBCBitmap() types.BitmapHeader
	PBCBitmap() types.BitmapHeader
	FDCBitmap() types.BitmapHeader
}

// File binds a decoded FileInfo to the block list that resolves its
// logical extent, plus a byte cursor.
type File struct {
	vol    VolumeView
	Info   types.FileInfo
	blocks *blocklist.List
	pos    int64
}

// NewBound decodes a FileInfoSize-byte meta-info buffer and binds it: the
// inline block-id array is walked until the first zero entry, appending
// FB/SB ids as-is and expanding PB ids through the PBC meta-file.
func NewBound(vol VolumeView, fmiBuf []byte, endian binary.ByteOrder) (*File, error) {
	info, err := fileinfo.DecodeFileInfo(fmiBuf, endian)
	if err != nil {
		return nil, err
	}

	f := &File{vol: vol, Info: *info, blocks: blocklist.New()}

	for i := 0; i < types.FileInfoBlockCount; i++ {
		id := fileinfo.BlockIDAt(fmiBuf, endian, i)
		if id == 0 {
			break
		}

		switch blockid.TypeOf(id) {
		case blockid.FullBlock, blockid.SubBlock:
			f.blocks.Add(id)
		case blockid.PointerBlock:
			if err := f.resolvePointerBlock(id, endian); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("bind meta info: block 0x%08x has type %s: %w",
				id, blockid.TypeOf(id), types.ErrUnexpectedBlockType)
		}
	}

	return f, nil
}

// resolvePointerBlock expands a PB-typed id into the child block ids it
// points to, reading the PBC item in 4096-byte chunks and appending every
// 4-byte little-endian word, including zero entries: inside a pointer
// block, zero is a sparse hole, not a terminator. Only the top-level
// inline block array uses zero-as-terminator.
func (f *File) resolvePointerBlock(id uint32, endian binary.ByteOrder) error {
	pbc := f.vol.PBCFile()
	if pbc == nil {
		return fmt.Errorf("resolve pointer block 0x%08x: PBC meta-file not open: %w",
			id, types.ErrUnexpectedBlockType)
	}

	bmh := f.vol.PBCBitmap()
	subgroup, number := blockid.PBSubgroupNumber(id)
	k := number*bmh.ItemsPerBitmapEntry + subgroup
	addr := bmh.BlockAddr(k)

	pbc.Seek(int64(addr), types.SeekSet)

	remaining := int(bmh.DataSize)
	chunk := make([]byte, 4096)

	for remaining > 0 {
		want := len(chunk)
		if remaining < want {
			want = remaining
		}

		n, err := pbc.Read(chunk[:want])
		if err != nil {
			return fmt.Errorf("resolve pointer block 0x%08x: %w", id, err)
		}
		if n != want {
			return fmt.Errorf("resolve pointer block 0x%08x: %w", id, types.ErrShortRead)
		}

		for i := 0; i+4 <= n; i += 4 {
			f.blocks.Add(endian.Uint32(chunk[i : i+4]))
		}

		remaining -= n
	}

	return nil
}

// Size returns the file's byte size, as decoded from its meta-info.
func (f *File) Size() uint64 {
	return f.Info.Size
}

// Seek sets the byte cursor. SEEK_END is size-minus-offset rather than
// the conventional size-plus-offset (see DESIGN.md for why this reader
// preserves that sign convention). The cursor is always clamped to
// [0, size] and Seek always succeeds.
func (f *File) Seek(offset int64, whence types.Whence) {
	switch whence {
	case types.SeekSet:
		f.pos = offset
	case types.SeekCur:
		f.pos += offset
	case types.SeekEnd:
		f.pos = int64(f.Info.Size) - offset
	}

	if f.pos < 0 {
		f.pos = 0
	} else if f.pos > int64(f.Info.Size) {
		f.pos = int64(f.Info.Size)
	}
}

// Pos returns the current byte cursor.
func (f *File) Pos() int64 {
	return f.pos
}

// Read fills buf with bytes starting at the current cursor, advancing it
// by the number of bytes actually returned. It dispatches on the block
// type covering the current position: FB reads go straight to the
// backing image, SB reads recurse into the SBC meta-file — itself a
// File, whose own block list resolves to FB reads by construction. Any
// other block type is fatal.
func (f *File) Read(buf []byte) (int, error) {
	blockSize := int64(f.vol.BlockSize())
	size := int64(f.Info.Size)
	rlen := 0

	for len(buf) > 0 {
		if f.pos >= size {
			break
		}

		blkPos := uint32(f.pos / blockSize)
		id, err := f.blocks.Get(blkPos)
		if err != nil {
			break
		}

		var n int
		var want int64

		switch blockid.TypeOf(id) {
		case blockid.FullBlock:
			offset := f.pos % blockSize
			avail := blockSize - offset
			want = min64(avail, int64(len(buf)), size-f.pos)
			if want <= 0 {
				return rlen, nil
			}

			data, rerr := f.vol.ReadFullBlock(blockid.FBNumber(id), offset, int(want))
			n = copy(buf, data)
			if rerr != nil && n == 0 {
				return rlen, fmt.Errorf("read full block 0x%08x: %w", id, rerr)
			}

		case blockid.SubBlock:
			bmh := f.vol.SBCBitmap()
			offset := f.pos % int64(bmh.DataSize)
			avail := int64(bmh.DataSize) - offset
			want = min64(avail, int64(len(buf)), size-f.pos)
			if want <= 0 {
				return rlen, nil
			}

			subgroup, number := blockid.SBSubgroupNumber(id)
			k := number*bmh.ItemsPerBitmapEntry + subgroup
			addr := int64(bmh.BlockAddr(k)) + offset

			sbc := f.vol.SBCFile()
			sbc.Seek(addr, types.SeekSet)
			n, err = sbc.Read(buf[:want])
			if err != nil {
				return rlen, fmt.Errorf("read sub-block 0x%08x: %w", id, err)
			}

		default:
			return rlen, fmt.Errorf("read: block 0x%08x has type %s: %w",
				id, blockid.TypeOf(id), types.ErrUnexpectedBlockType)
		}

		f.pos += int64(n)
		rlen += n
		buf = buf[n:]

		if int64(n) < want {
			break
		}
	}

	return rlen, nil
}

// Close releases the File's bound state. The File's VolumeView reference
// is cleared so a use-after-close surfaces immediately as a nil-pointer
// panic rather than silently reusing the volume.
func (f *File) Close() error {
	f.vol = nil
	f.blocks = nil
	return nil
}

func min64(vs ...int64) int64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
