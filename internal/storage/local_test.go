package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreAndGet(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)
	defer client.Close()

	folder := GenerateRenderFolderPath(time.Date(2022, 1, 5, 10, 30, 0, 0, time.UTC))
	stored, err := client.StoreFile(ctx, folder, "chart.svg", []byte("<svg/>"))
	require.NoError(t, err)
	assert.Equal(t, folder+"/chart.svg", stored)

	exists, err := client.FileExists(ctx, stored)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := client.GetFile(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = os.Stat(filepath.Join(client.BaseDir(), filepath.FromSlash(stored)))
	assert.NoError(t, err)
}

func TestLocalMissingFile(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	_, err = client.GetFile(ctx, "renders/nope/index.html")
	assert.True(t, errors.Is(err, ErrNotFound))

	exists, err := client.FileExists(ctx, "renders/nope/index.html")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalPathsStayInsideBaseDir(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	client, err := NewLocalStorageClient(filepath.Join(base, "store"))
	require.NoError(t, err)

	stored, err := client.StoreFile(ctx, "../../escape", "x.txt", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, "escape/x.txt", stored)
	_, err = os.Stat(filepath.Join(base, "store", "escape", "x.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "escape", "x.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = client.GetFile(ctx, "/")
	assert.Error(t, err)
}

func TestLocalListRenders(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	renders, err := client.ListRenders(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, renders)

	_, err = LatestRender(ctx, client)
	assert.True(t, errors.Is(err, ErrNotFound))

	base := time.Date(2022, 1, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		folder := GenerateRenderFolderPath(base.Add(time.Duration(i) * time.Hour))
		_, err := client.StoreFile(ctx, folder, "index.html", []byte("<html/>"))
		require.NoError(t, err)
		_, err = client.StoreFile(ctx, folder, "chart.svg", []byte("<svg/>"))
		require.NoError(t, err)
	}

	renders, err = client.ListRenders(ctx, 0)
	require.NoError(t, err)
	require.Len(t, renders, 3)
	assert.Equal(t, GenerateRenderFolderPath(base.Add(2*time.Hour))+"/index.html", renders[0])

	limited, err := client.ListRenders(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	latest, err := LatestRender(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, renders[0], latest)
}
