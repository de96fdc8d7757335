package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmfs-go/vmfs-reader/internal/types"
)

func writeTempImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.vmfs")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenImageMissing(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestReadData(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	path := writeTempImage(t, data)

	r, err := OpenImage(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.ReadData(10, 16)
	require.NoError(t, err)
	assert.Equal(t, data[10:26], got)
}

func TestReadDataShortReadIsNotAnError(t *testing.T) {
	data := make([]byte, 32)
	path := writeTempImage(t, data)

	r, err := OpenImage(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.ReadData(16, 64)
	require.NoError(t, err)
	assert.Len(t, got, 16)
}

func TestReadBlock(t *testing.T) {
	data := make([]byte, int(types.VolBlockBase)+4096)
	for i := range data[types.VolBlockBase:] {
		data[int(types.VolBlockBase)+i] = byte(i)
	}
	path := writeTempImage(t, data)

	r, err := OpenImage(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.ReadBlock(0, 1024, 1, 5, 10)
	require.NoError(t, err)
	want := data[int64(types.VolBlockBase)+1024+5 : int64(types.VolBlockBase)+1024+5+10]
	assert.Equal(t, want, got)
}
