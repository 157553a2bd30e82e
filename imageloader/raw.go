package imageloader

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strings"

	"github.com/barasher/go-exiftool"

	"github.com/Safari77/rupphash/logging"
)

// rawExtensions covers the common RAW camera formats.
var rawExtensions = map[string]bool{
	".dng": true,
	".raf": true,
	".arw": true,
	".nef": true,
	".cr2": true,
	".cr3": true,
	".nrw": true,
	".srf": true,
	".orf": true,
	".rw2": true,
}

// RawImageLoader hashes RAW camera files through their embedded JPEG
// preview. The preview matches the camera's own rendering far better than a
// demosaic of the sensor data would, so a RAW frame and its out-of-camera
// JPEG hash close to each other.
type RawImageLoader struct{}

// NewRawImageLoader creates a loader for RAW camera formats.
func NewRawImageLoader() *RawImageLoader {
	return &RawImageLoader{}
}

func (l *RawImageLoader) CanLoad(path string) bool {
	if !IsRawFormat(path) {
		return false
	}
	return fileExists(path)
}

// previewTags are tried in order of decreasing preview size. CR3 files in
// particular carry several previews under different tag names.
var previewTags = []string{
	"JpgFromRaw",
	"PreviewImage",
	"OtherImage",
	"ThumbnailImage",
}

func (l *RawImageLoader) LoadImage(path string) (image.Image, error) {
	// Probe the metadata first so a corrupt or unreadable file fails with
	// a real error instead of an empty preview.
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize exiftool for %s: %v", path, err)
	}
	defer et.Close()

	infos := et.ExtractMetadata(path)
	if len(infos) == 0 {
		return nil, fmt.Errorf("no metadata extracted from %s", path)
	}
	if infos[0].Err != nil {
		return nil, fmt.Errorf("cannot read RAW file %s: %v", path, infos[0].Err)
	}

	// go-exiftool does not expose binary tag extraction, so the previews
	// themselves come from the exiftool binary directly.
	for _, tag := range previewTags {
		data, err := extractBinaryTag(path, tag)
		if err != nil || len(data) == 0 {
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			logging.LogWarning("Preview %s of %s did not decode: %v", tag, path, err)
			continue
		}

		logging.DebugLog("Loaded RAW image %s via %s preview", path, tag)
		return img, nil
	}

	return nil, fmt.Errorf("failed to extract any preview image from %s", path)
}

// extractBinaryTag runs `exiftool -b -TAG path` and returns the raw bytes.
func extractBinaryTag(path, tag string) ([]byte, error) {
	cmd := exec.Command("exiftool", "-b", "-"+tag, path)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("exiftool -%s failed for %s: %v, stderr: %s",
			tag, path, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

// Orientation returns the EXIF orientation of the file (1-8), or 1 when the
// tag is missing or unreadable. Useful for display; the canonical hash
// already absorbs any cardinal-rotation difference, so hashing itself never
// needs an orientation fixup.
func Orientation(path string) int {
	et, err := exiftool.NewExiftool(exiftool.NoPrintConversion())
	if err != nil {
		return 1
	}
	defer et.Close()

	infos := et.ExtractMetadata(path)
	if len(infos) == 0 || infos[0].Err != nil {
		return 1
	}

	v, err := infos[0].GetInt("Orientation")
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return int(v)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
