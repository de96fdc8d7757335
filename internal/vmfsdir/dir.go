// Package vmfsdir implements directory search and path resolution on top
// of the file abstraction: a directory is read exactly like any other
// file, its contents interpreted as a flat array of fixed-size file
// records.
package vmfsdir

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/vmfs-go/vmfs-reader/internal/parsers/fileinfo"
	"github.com/vmfs-go/vmfs-reader/internal/types"
	"github.com/vmfs-go/vmfs-reader/internal/vmfsfile"
)

// SearchDir looks up name among a directory's entries. It reads exactly
// Size/FileRecordSize records — the directory's declared entry count —
// rather than looping until Read returns zero bytes. A loop bounded by
// EOF would, for a directory whose size is not an exact multiple of
// FileRecordSize, either spin past the last valid record into trailing
// padding or stop one record early; bounding by the declared count
// avoids both failure modes and matches the entry count a correctly
// written directory actually carries.
func SearchDir(dir *vmfsfile.File, name string, endian binary.ByteOrder) (*types.FileRecord, error) {
	count := dir.Size() / types.FileRecordSize

	dir.Seek(0, types.SeekSet)
	buf := make([]byte, types.FileRecordSize)

	for i := uint64(0); i < count; i++ {
		n, err := dir.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("search directory for %q: %w", name, err)
		}
		if n != types.FileRecordSize {
			return nil, fmt.Errorf("search directory for %q: %w", name, types.ErrShortRead)
		}

		rec, err := fileinfo.DecodeFileRecord(buf, endian)
		if err != nil {
			return nil, fmt.Errorf("search directory for %q: %w", name, err)
		}

		if rec.Name == name {
			return rec, nil
		}
	}

	return nil, fmt.Errorf("search directory for %q: %w", name, types.ErrNotFound)
}

// List returns every entry in a directory, in on-disk order, reading
// exactly Size/FileRecordSize records for the same reason SearchDir does.
func List(dir *vmfsfile.File, endian binary.ByteOrder) ([]types.FileRecord, error) {
	count := dir.Size() / types.FileRecordSize

	dir.Seek(0, types.SeekSet)
	buf := make([]byte, types.FileRecordSize)

	recs := make([]types.FileRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		n, err := dir.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("list directory: %w", err)
		}
		if n != types.FileRecordSize {
			return nil, fmt.Errorf("list directory: %w", types.ErrShortRead)
		}

		rec, err := fileinfo.DecodeFileRecord(buf, endian)
		if err != nil {
			return nil, fmt.Errorf("list directory: %w", err)
		}

		recs = append(recs, *rec)
	}

	return recs, nil
}

// OpenDirFunc opens a directory's File given the FileRecord that names it.
// Callers of ResolvePath supply this so the resolver does not need to
// know how records become Files (that is the volume's job: FDC lookup
// plus bind).
type OpenDirFunc func(rec *types.FileRecord) (*vmfsfile.File, error)

// ResolvePath walks path component by component starting at root,
// opening each component (including the final one) with openDir, and
// returns the FileRecord and opened File for the final component. Empty
// components (leading, trailing, or repeated slashes) are skipped. A
// path with no non-empty components resolves to root itself.
func ResolvePath(root *vmfsfile.File, path string, endian binary.ByteOrder, openDir OpenDirFunc) (*types.FileRecord, *vmfsfile.File, error) {
	parts := strings.Split(path, "/")

	cur := root
	var rec *types.FileRecord

	for _, part := range parts {
		if part == "" {
			continue
		}

		r, err := SearchDir(cur, part, endian)
		if err != nil {
			return nil, nil, err
		}
		rec = r

		next, err := openDir(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve path %q: %w", path, err)
		}
		cur = next
	}

	return rec, cur, nil
}
