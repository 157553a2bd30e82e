// Package imageloader decodes image files into image.Image values for
// hashing. Loaders are tried through a registry: each loader declares which
// paths it can handle, and the first match wins. Decoding lives entirely
// outside the hashing core, which only ever sees decoded pixels.
package imageloader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader loads one family of image formats.
type ImageLoader interface {
	CanLoad(path string) bool
	LoadImage(path string) (image.Image, error)
}

// standardExtensions are the formats handled by the stdlib and x/image
// decoders registered above.
var standardExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// DefaultImageLoader handles the standard raster formats.
type DefaultImageLoader struct{}

func (l *DefaultImageLoader) CanLoad(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !standardExtensions[ext] {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (l *DefaultImageLoader) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open image %s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode image %s: %v", path, err)
	}
	return img, nil
}

// ImageLoaderRegistry manages the available image loaders.
type ImageLoaderRegistry struct {
	loaders []ImageLoader
}

// NewImageLoaderRegistry creates a registry with the default loaders: the
// standard formats first, then RAW camera files via embedded previews.
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	return &ImageLoaderRegistry{
		loaders: []ImageLoader{
			&DefaultImageLoader{},
			NewRawImageLoader(),
		},
	}
}

// RegisterLoader adds a custom loader to the registry.
func (r *ImageLoaderRegistry) RegisterLoader(loader ImageLoader) {
	r.loaders = append(r.loaders, loader)
}

// CanLoadFile reports whether any registered loader can handle the file.
func (r *ImageLoaderRegistry) CanLoadFile(path string) bool {
	for _, loader := range r.loaders {
		if loader.CanLoad(path) {
			return true
		}
	}
	return false
}

// LoadImage decodes the file using the first loader that accepts it.
func (r *ImageLoaderRegistry) LoadImage(path string) (image.Image, error) {
	for _, loader := range r.loaders {
		if loader.CanLoad(path) {
			return loader.LoadImage(path)
		}
	}
	return nil, fmt.Errorf("no suitable loader found for image: %s", path)
}

// LoadImage decodes an image file using a default registry.
func LoadImage(path string) (image.Image, error) {
	return NewImageLoaderRegistry().LoadImage(path)
}

// IsRawFormat reports whether the path has a RAW camera file extension.
func IsRawFormat(path string) bool {
	return rawExtensions[strings.ToLower(filepath.Ext(path))]
}
