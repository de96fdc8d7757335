// Package diag renders decoded VMFS structures as human-readable text and
// streams file contents to an io.Writer, the pieces a command-line
// front end needs to show what a volume contains.
package diag

import (
	"fmt"
	"io"

	"github.com/vmfs-go/vmfs-reader/internal/types"
	"github.com/vmfs-go/vmfs-reader/internal/uuidfmt"
	"github.com/vmfs-go/vmfs-reader/internal/vmfsfile"
)

// FormatVolumeInfo renders a VolumeInfo descriptor.
func FormatVolumeInfo(vi *types.VolumeInfo) string {
	return fmt.Sprintf(
		"Volume name       : %s\n"+
			"Volume version    : %d\n"+
			"Volume UUID       : %s\n"+
			"Volume size       : %d bytes\n"+
			"Volume blocks     : %d\n",
		vi.Name, vi.Version, uuidfmt.Format(vi.UUID), vi.Size, vi.Blocks)
}

// FormatFSInfo renders an FSInfo descriptor.
func FormatFSInfo(fi *types.FSInfo) string {
	return fmt.Sprintf(
		"FS label          : %s\n"+
			"FS version        : %d\n"+
			"FS UUID           : %s\n"+
			"Volume version    : %d\n"+
			"Block size        : %d bytes\n",
		fi.Label, fi.Version, uuidfmt.Format(fi.UUID), fi.VolVersion, fi.BlockSize)
}

// FormatBitmapHeader renders a meta-file's bitmap header, labeling it
// with the meta-file name it came from.
func FormatBitmapHeader(name string, bmh types.BitmapHeader) string {
	return fmt.Sprintf(
		"%s bitmap header:\n"+
			"  items/bitmap entry : %d\n"+
			"  bitmap entries/area: %d\n"+
			"  header size        : %d bytes\n"+
			"  item data size     : %d bytes\n"+
			"  area size          : %d bytes\n"+
			"  total items        : %d\n"+
			"  area count         : %d\n",
		name, bmh.ItemsPerBitmapEntry, bmh.BmpEntriesPerArea, bmh.HdrSize,
		bmh.DataSize, bmh.AreaSize, bmh.TotalItems, bmh.AreaCount)
}

// FormatHeartbeat renders one heartbeat slot, marking whether it is
// currently held.
func FormatHeartbeat(i int, hb types.Heartbeat) string {
	state := "off"
	if hb.Active() {
		state = "ON"
	}
	return fmt.Sprintf("slot %3d [%s] position=%d uptime=%d uuid=%s\n",
		i, state, hb.Position, hb.Uptime, uuidfmt.Format(hb.UUID))
}

// DumpFile streams a file's full contents to w, reading in fixed-size
// chunks from the start of the file.
func DumpFile(f *vmfsfile.File, w io.Writer) (int64, error) {
	f.Seek(0, types.SeekSet)

	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, fmt.Errorf("dump file: write: %w", werr)
			}
			total += int64(n)
		}
		if err != nil {
			return total, fmt.Errorf("dump file: %w", err)
		}
		if n == 0 {
			return total, nil
		}
	}
}
