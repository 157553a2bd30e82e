package imageloader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDefaultLoaderPNG(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "sample.png", 40, 30)

	registry := NewImageLoaderRegistry()
	assert.True(t, registry.CanLoadFile(path))

	img, err := registry.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestRegistryRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	registry := NewImageLoaderRegistry()
	assert.False(t, registry.CanLoadFile(path))

	_, err := registry.LoadImage(path)
	assert.Error(t, err)
}

func TestCanLoadRequiresExistingFile(t *testing.T) {
	registry := NewImageLoaderRegistry()
	assert.False(t, registry.CanLoadFile("/nonexistent/photo.jpg"))

	raw := NewRawImageLoader()
	assert.False(t, raw.CanLoad("/nonexistent/photo.nef"))
	assert.False(t, raw.CanLoad("photo.jpg"))
}

func TestIsRawFormat(t *testing.T) {
	assert.True(t, IsRawFormat("dir/IMG_0001.NEF"))
	assert.True(t, IsRawFormat("a.cr3"))
	assert.False(t, IsRawFormat("a.jpeg"))
	assert.False(t, IsRawFormat("a"))
}

func TestRegisterLoader(t *testing.T) {
	registry := NewImageLoaderRegistry()
	before := len(registry.loaders)
	registry.RegisterLoader(&DefaultImageLoader{})
	assert.Len(t, registry.loaders, before+1)
}
