package phash

import (
	"image"

	"github.com/disintegration/imaging"
)

// normalize turns an arbitrary decoded image into the fixed 32x32 grayscale
// intensity matrix the transform operates on.
//
// The rotation is applied first, on the full-resolution pixels. Cardinal
// rotations swap the canvas exactly, so no background fill is ever
// introduced and no resampling noise enters before the resize.
func normalize(img image.Image, angle Rotation) (*[dctSize][dctSize]float64, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	switch angle {
	case Rotate0:
	case Rotate90:
		img = imaging.Rotate90(img)
	case Rotate180:
		img = imaging.Rotate180(img)
	case Rotate270:
		img = imaging.Rotate270(img)
	default:
		return nil, ErrInvalidRotation
	}

	// Triangle (bilinear) resize to exactly 32x32, then Rec. 601
	// grayscale. Hashes are filter-dependent, so the filter choice here is
	// part of the compatibility surface and must never change.
	small := imaging.Grayscale(imaging.Resize(img, dctSize, dctSize, imaging.Linear))

	var m [dctSize][dctSize]float64
	for y := 0; y < dctSize; y++ {
		for x := 0; x < dctSize; x++ {
			// Grayscale output has R == G == B.
			m[y][x] = float64(small.NRGBAAt(x, y).R)
		}
	}
	return &m, nil
}
