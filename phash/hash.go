package phash

import (
	"fmt"
	"math/bits"
)

// Hash is a 64-bit perceptual hash. Bit 63 corresponds to DCT coefficient
// (0,0) and bit 0 to coefficient (7,7), row-major.
type Hash uint64

// DefaultMaxDistance is the Hamming distance at or below which two 64-bit
// hashes are normally treated as near-duplicates (about 23% of the bits).
const DefaultMaxDistance = 15

// Distance returns the Hamming distance between h and other: the number of
// bit positions in which they differ, in [0, 64]. It is symmetric and zero
// exactly when the hashes are identical.
func (h Hash) Distance(other Hash) int {
	return bits.OnesCount64(uint64(h ^ other))
}

// String formats the hash as 16 lowercase hex digits.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Binary formats the hash as 64 binary digits, bit 63 first.
func (h Hash) Binary() string {
	return fmt.Sprintf("%064b", uint64(h))
}

// The operations below transform a hash the way rotating or flipping the
// source image would, without touching pixels. Rotating an image transposes
// its DCT coefficient matrix and changes the sign of the coefficients at odd
// frequencies; with a median near zero, a sign change flips the bit. The
// results track a true re-hash of the rotated pixels to within a couple of
// bits of resampling noise.

// Rotate90 returns the hash of the image rotated 90 degrees: transpose plus
// a bit flip on odd horizontal frequencies.
func (h Hash) Rotate90() Hash {
	var out Hash
	for y := 0; y < blockSize; y++ {
		for x := 0; x < blockSize; x++ {
			src := blockSize*y + x
			dst := blockSize*x + y // transposed position (row x, col y)

			bit := (h >> (63 - src)) & 1
			if y%2 != 0 { // destination column is y
				bit ^= 1
			}
			out |= bit << (63 - dst)
		}
	}
	return out
}

// Rotate180 returns the hash of the image rotated 180 degrees: no transpose,
// bit flip where the frequency indices sum to an odd number.
func (h Hash) Rotate180() Hash {
	var out Hash
	for i := 0; i < blockSize*blockSize; i++ {
		x := i % blockSize
		y := i / blockSize

		bit := (h >> (63 - i)) & 1
		if (x+y)%2 != 0 {
			bit ^= 1
		}
		out |= bit << (63 - i)
	}
	return out
}

// Rotate270 returns the hash of the image rotated 270 degrees: transpose
// plus a bit flip on odd vertical frequencies.
func (h Hash) Rotate270() Hash {
	var out Hash
	for y := 0; y < blockSize; y++ {
		for x := 0; x < blockSize; x++ {
			src := blockSize*y + x
			dst := blockSize*x + y

			bit := (h >> (63 - src)) & 1
			if x%2 != 0 { // destination row is x
				bit ^= 1
			}
			out |= bit << (63 - dst)
		}
	}
	return out
}

// FlipH returns the hash of the horizontally mirrored image: bit flip on odd
// horizontal frequencies.
func (h Hash) FlipH() Hash {
	var out Hash
	for i := 0; i < blockSize*blockSize; i++ {
		bit := (h >> (63 - i)) & 1
		if (i%blockSize)%2 != 0 {
			bit ^= 1
		}
		out |= bit << (63 - i)
	}
	return out
}

// MinRotation returns the smallest hash among h and its three hash-domain
// rotations. It approximates ComputeCanonical without re-running the pixel
// pipeline, useful when only the native hash is at hand.
func (h Hash) MinRotation() Hash {
	min := h
	for _, v := range [...]Hash{h.Rotate90(), h.Rotate180(), h.Rotate270()} {
		if v < min {
			min = v
		}
	}
	return min
}

// Variants returns all 8 dihedral variants of h in fixed order: the hash
// itself, its three rotations, and the horizontal flip with its three
// rotations. Storing one hash and querying all 8 variants gives matching
// that is robust to both rotation and mirroring.
func (h Hash) Variants() [8]Hash {
	f := h.FlipH()
	return [8]Hash{
		h, h.Rotate90(), h.Rotate180(), h.Rotate270(),
		f, f.Rotate90(), f.Rotate180(), f.Rotate270(),
	}
}
