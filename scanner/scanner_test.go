package scanner

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testPattern(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			if x < w/4 && y < h/4 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func testNoise(w, h int, seed int64) *image.Gray {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

// A rotated copy of an image must land in the same duplicate group via its
// canonical hash, while an unrelated image stays out.
func TestScanFolderGroupsRotatedCopy(t *testing.T) {
	dir := t.TempDir()

	base := testPattern(80, 60)
	savePNG(t, filepath.Join(dir, "original.png"), base)
	savePNG(t, filepath.Join(dir, "rotated.png"), imaging.Rotate90(base))
	savePNG(t, filepath.Join(dir, "unrelated.png"), testNoise(80, 60, 3))

	// A text file in the tree must simply be skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))

	options := ScanOptions{
		FolderPath:  dir,
		MaxDistance: 5,
		MaxWorkers:  2,
	}

	infos, err := ScanFolder(options)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	for _, fi := range infos {
		assert.Equal(t, "png", fi.Format)
		assert.NotZero(t, fi.Size)
		assert.False(t, fi.IsRawFormat)
	}

	groups := GroupDuplicates(infos, options.MaxDistance)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Files, 2)

	// The rotated pair matches exactly in the canonical domain.
	assert.Equal(t, 0, groups[0].MaxDist)

	paths := []string{groups[0].Files[0].Path, groups[0].Files[1].Path}
	assert.Contains(t, paths, filepath.Join(dir, "original.png"))
	assert.Contains(t, paths, filepath.Join(dir, "rotated.png"))
}

func TestScanFolderEmptyDir(t *testing.T) {
	infos, err := ScanFolder(ScanOptions{
		FolderPath:  t.TempDir(),
		MaxDistance: 5,
		MaxWorkers:  1,
	})
	require.NoError(t, err)
	assert.Empty(t, infos)
}
