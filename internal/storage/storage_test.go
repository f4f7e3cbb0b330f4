package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indigo-retail/pos-api/internal/config"
	"github.com/indigo-retail/pos-api/internal/storage"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	content := "fake image bytes"
	url, size, err := store.Upload(context.Background(), "product image.png", "image/png", strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), size)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "_product_image.png"), "spaces should be replaced: %s", url)

	// The file exists on disk under the base path
	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, store.Delete(context.Background(), name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.png"))
}

func TestNameFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"local url", "http://localhost:8080/uploads/1712345678901_mouse.png", "1712345678901_mouse.png"},
		{"azure blob url", "https://acct.blob.core.windows.net/images/1712345678901_mouse.png", "1712345678901_mouse.png"},
		{"escaped name", "/uploads/1712345678901_caf%C3%A9.png", "1712345678901_café.png"},
		{"bare path", "/uploads/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.NameFromURL(tt.url))
		})
	}
}

func TestNewStorage_UnsupportedMode(t *testing.T) {
	_, err := storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, nil)
	assert.Error(t, err)
}

func TestNewStorage_AzureRequiresConnectionString(t *testing.T) {
	_, err := storage.NewStorage(&config.StorageConfig{Mode: "azure"}, nil)
	assert.Error(t, err)
}
