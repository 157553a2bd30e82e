package phash

import "math"

// The 1-D orthonormal DCT-II:
//
//	X[k] = scale(k) * sum_{i=0}^{N-1} x[i] * cos(pi * k * (2i+1) / (2N))
//	scale(0) = sqrt(1/N), scale(k>0) = sqrt(2/N)
//
// The 2-D transform is separable: rows first, then columns. Coefficient
// (0,0) is the DC term; higher indices mean higher spatial frequency.

// cosTable[k][i] = cos(pi * k * (2i+1) / (2*dctSize)), precomputed once.
var cosTable = func() (t [dctSize][dctSize]float64) {
	for k := 0; k < dctSize; k++ {
		for i := 0; i < dctSize; i++ {
			t[k][i] = math.Cos(math.Pi * float64(k) * float64(2*i+1) / (2 * dctSize))
		}
	}
	return t
}()

// dctScale[k] is the orthonormal scale factor for output index k.
var dctScale = func() (s [dctSize]float64) {
	s[0] = math.Sqrt(1.0 / dctSize)
	for k := 1; k < dctSize; k++ {
		s[k] = math.Sqrt(2.0 / dctSize)
	}
	return s
}()

// dct2D applies the 2-D orthonormal DCT-II to a 32x32 intensity matrix.
// Pure and deterministic: identical input always yields identical output.
// The fixed array type makes a size mismatch impossible.
func dct2D(m *[dctSize][dctSize]float64) *[dctSize][dctSize]float64 {
	var tmp, out [dctSize][dctSize]float64

	// Rows.
	for y := 0; y < dctSize; y++ {
		for k := 0; k < dctSize; k++ {
			sum := 0.0
			for i := 0; i < dctSize; i++ {
				sum += m[y][i] * cosTable[k][i]
			}
			tmp[y][k] = dctScale[k] * sum
		}
	}

	// Columns of the row-transformed result.
	for x := 0; x < dctSize; x++ {
		for k := 0; k < dctSize; k++ {
			sum := 0.0
			for i := 0; i < dctSize; i++ {
				sum += tmp[i][x] * cosTable[k][i]
			}
			out[k][x] = dctScale[k] * sum
		}
	}

	return &out
}
