package phash

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A constant input has only a DC component: coefficient (0,0) carries
// N * mean, everything else is zero.
func TestDCTFlatInput(t *testing.T) {
	var m [dctSize][dctSize]float64
	for y := range m {
		for x := range m {
			m[y][x] = 128
		}
	}

	out := dct2D(&m)

	assert.InDelta(t, dctSize*128.0, out[0][0], 1e-6)
	for y := range out {
		for x := range out {
			if y == 0 && x == 0 {
				continue
			}
			assert.InDelta(t, 0.0, out[y][x], 1e-9)
		}
	}
}

// A pure horizontal cosine of frequency 3 lands entirely in coefficient
// (0,3). Row transform: sum of cos^2 over a period is N/2, so the row
// coefficient is sqrt(2/N)*N/2 = 4; the columns are then constant, giving
// sqrt(1/N)*N*4 in the DC row.
func TestDCTSingleFrequency(t *testing.T) {
	var m [dctSize][dctSize]float64
	for y := 0; y < dctSize; y++ {
		for x := 0; x < dctSize; x++ {
			m[y][x] = math.Cos(math.Pi * 3 * float64(2*x+1) / (2 * dctSize))
		}
	}

	out := dct2D(&m)

	expected := math.Sqrt(1.0/dctSize) * dctSize * math.Sqrt(dctSize/2.0)
	assert.InDelta(t, expected, out[0][3], 1e-9)

	for y := range out {
		for x := range out {
			if y == 0 && x == 3 {
				continue
			}
			assert.InDelta(t, 0.0, out[y][x], 1e-9)
		}
	}
}

// The transform is orthonormal, so it preserves total energy (Parseval).
func TestDCTPreservesEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var m [dctSize][dctSize]float64
	inEnergy := 0.0
	for y := range m {
		for x := range m {
			m[y][x] = rng.Float64()*255 - 128
			inEnergy += m[y][x] * m[y][x]
		}
	}

	out := dct2D(&m)

	outEnergy := 0.0
	for y := range out {
		for x := range out {
			outEnergy += out[y][x] * out[y][x]
		}
	}

	assert.InDelta(t, inEnergy, outEnergy, inEnergy*1e-9)
}

func TestDCTDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	var m [dctSize][dctSize]float64
	for y := range m {
		for x := range m {
			m[y][x] = float64(rng.Intn(256))
		}
	}

	a := dct2D(&m)
	b := dct2D(&m)
	assert.Equal(t, *a, *b)
}
