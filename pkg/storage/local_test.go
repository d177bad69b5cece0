package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holisticagro/agromart/config"
	"github.com/holisticagro/agromart/pkg/storage"
)

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.NewLocalDisk(t.TempDir(), "http://localhost:4000/files/")
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, "1700000000000report.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf"))

	ok, err := disk.Exists(ctx, "1700000000000report.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := disk.Open(ctx, "1700000000000report.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(data))

	assert.Equal(t, "http://localhost:4000/files/1700000000000report.pdf", disk.URL("1700000000000report.pdf"))

	require.NoError(t, disk.Delete(ctx, "1700000000000report.pdf"))
	ok, err = disk.Exists(ctx, "1700000000000report.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, disk.Delete(ctx, "1700000000000report.pdf"), "deleting a missing blob succeeds")

	_, err = disk.Open(ctx, "1700000000000report.pdf")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestLocalDiskRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.NewLocalDisk(t.TempDir(), "")
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../etc/passwd", "a/b.pdf", `a\b.pdf`} {
		err := disk.Put(ctx, name, strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, storage.ErrInvalidName, name)
	}
}

func TestNewSelectsLocal(t *testing.T) {
	disk, err := storage.New(context.Background(), config.StorageConfig{Disk: "local", LocalRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", disk.Driver())

	_, err = storage.New(context.Background(), config.StorageConfig{Disk: "ftp"})
	assert.Error(t, err)
}
