// Package phash computes DCT-based perceptual hashes for still images.
//
// The pipeline is the classic pHash construction: resize the image to 32x32
// with a triangle (bilinear) filter, reduce it to grayscale, push it through
// an orthonormal 2-D DCT-II, take the top-left 8x8 block of coefficients and
// threshold it against its median into a 64-bit hash. Visually similar images
// produce hashes within a few bits of each other; unrelated images differ in
// roughly half the bits.
//
// Hashes are only comparable between producers that agree on every parameter
// of the pipeline. This package pins them as constants:
//
//   - DCT input size: 32x32
//   - hash block: 8x8 (64 bits)
//   - resize filter: triangle (bilinear)
//   - grayscale reduction: Rec. 601 luminance
//   - rotation: cardinal angles only, exact canvas swap, no fill pixels
//   - median: computed over the 63 non-DC coefficients; the DC bit itself
//     still participates in the hash
//   - thresholding: a bit is set only when its coefficient is strictly
//     greater than the median, so ties resolve to 0
//   - bit order: row-major, most significant bit first; bit 63 is
//     coefficient (0,0), bit 0 is coefficient (7,7)
//
// ComputeCanonical additionally produces a hash that is identical for all
// four 90-degree-multiple rotations of the same image, by hashing each
// rotation independently and keeping the numerically smallest result.
package phash

import (
	"errors"
	"image"
	"sort"
	"sync"
)

const (
	// dctSize is the side length of the normalized grayscale matrix fed
	// into the transform.
	dctSize = 32

	// blockSize is the side length of the low-frequency coefficient block
	// the hash is built from. blockSize*blockSize must equal the bit width
	// of Hash.
	blockSize = 8
)

// tieEpsilon absorbs floating-point noise around the median: coefficients
// this close to it count as ties and resolve to 0. Real coefficients of
// natural images are orders of magnitude larger.
const tieEpsilon = 1e-8

// Rotation selects the cardinal pre-rotation applied to the image before
// hashing. Angles are counter-clockwise degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

var (
	// ErrEmptyImage is returned when the input image is nil or has no
	// pixels.
	ErrEmptyImage = errors.New("phash: empty or zero-sized image")

	// ErrInvalidRotation is returned for angles outside {0, 90, 180, 270}.
	ErrInvalidRotation = errors.New("phash: rotation must be 0, 90, 180 or 270 degrees")
)

// Compute returns the perceptual hash of img with no pre-rotation.
func Compute(img image.Image) (Hash, error) {
	return ComputeRotated(img, Rotate0)
}

// ComputeRotated hashes img after rotating it counter-clockwise by the given
// cardinal angle. The rotation happens on the full-resolution pixels, before
// the resize, so it is exactly equivalent to hashing a pre-rotated file.
func ComputeRotated(img image.Image, angle Rotation) (Hash, error) {
	m, err := normalize(img, angle)
	if err != nil {
		return 0, err
	}
	return encode(dct2D(m)), nil
}

// ComputeCanonical returns the native (unrotated) hash of img together with
// its rotation-invariant canonical hash: the numerically smallest hash among
// the four cardinal rotations. Any image differing from img only by a
// 90-degree-multiple rotation yields the same canonical hash.
func ComputeCanonical(img image.Image) (native, canonical Hash, err error) {
	angles := [...]Rotation{Rotate0, Rotate90, Rotate180, Rotate270}

	var (
		hashes [len(angles)]Hash
		errs   [len(angles)]error
		wg     sync.WaitGroup
	)

	// The four per-angle pipelines are independent pure computations over
	// a read-only input, so they fork here and join below.
	for i, angle := range angles {
		wg.Add(1)
		go func(i int, angle Rotation) {
			defer wg.Done()
			hashes[i], errs[i] = ComputeRotated(img, angle)
		}(i, angle)
	}
	wg.Wait()

	// A failure for any angle aborts the whole canonicalization; errors are
	// checked in fixed angle order so the reported error is deterministic.
	for _, e := range errs {
		if e != nil {
			return 0, 0, e
		}
	}

	native = hashes[0]
	canonical = hashes[0]
	for _, h := range hashes[1:] {
		if h < canonical {
			canonical = h
		}
	}
	return native, canonical, nil
}

// encode flattens the top-left blockSize x blockSize coefficients in
// row-major order and thresholds them against the median into a Hash.
func encode(coeffs *[dctSize][dctSize]float64) Hash {
	var block [blockSize * blockSize]float64
	for y := 0; y < blockSize; y++ {
		for x := 0; x < blockSize; x++ {
			block[blockSize*y+x] = coeffs[y][x]
		}
	}

	// The DC coefficient only carries overall brightness, so it is left
	// out of the median. Its bit still participates in the hash.
	med := median(block[1:])

	var h Hash
	for i, v := range block {
		if v > med+tieEpsilon {
			h |= 1 << (63 - i)
		}
	}
	return h
}

// median returns the upper median (sorted[n/2]) of values, leaving the
// input untouched.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
