package services

import (
	"fmt"
	"io"
	"os"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

// ImageReader is the raw-range read primitive over the backing image. It
// owns the single file handle a Volume is built on; callers never see an
// *os.File directly. Positioned reads go straight through ReadAt with no
// cache and no lock: the reader is used synchronously by a single Volume
// and caching block contents is out of scope.
type ImageReader struct {
	file *os.File
	path string
}

// OpenImage opens the backing image or block device for reading.
func OpenImage(path string) (*ImageReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	return &ImageReader{file: f, path: path}, nil
}

// ReadData performs an absolute positioned read. A short read is not
// itself an error: it returns the bytes actually read, and it is up to
// the caller (typically a decoder checking a fixed structure size) to
// turn "fewer bytes than expected" into ErrShortRead.
func (r *ImageReader) ReadData(pos int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := r.file.ReadAt(buf, pos)
	if err != nil && err != io.EOF {
		return buf[:n], fmt.Errorf("read image %q at 0x%x: %w", r.path, pos, err)
	}
	return buf[:n], nil
}

// ReadBlock translates (blk, offset) to an absolute offset within the
// volume's full-block address space and delegates to ReadData.
func (r *ImageReader) ReadBlock(vmfsBase int64, blockSize uint64, blk uint32, offset int64, length int) ([]byte, error) {
	pos := vmfsBase + types.VolBlockBase + int64(blk)*int64(blockSize) + offset
	return r.ReadData(pos, length)
}

// Close releases the backing file handle.
func (r *ImageReader) Close() error {
	return r.file.Close()
}
