// Package analysis extracts frequency content from trajectory series.
package analysis

import (
	"math"
	"math/cmplx"
)

// fft is an in-place iterative radix-2 transform. The input length
// must be a power of two.
func fft(buf []complex128) {
	n := len(buf)

	// bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < size/2; k++ {
				a := buf[start+k]
				b := buf[start+k+size/2] * w
				buf[start+k] = a + b
				buf[start+k+size/2] = a - b
				w *= step
			}
		}
	}
}

// PowerSpectrum returns the magnitude of the one-sided spectrum. The
// series is mean-subtracted and zero-padded to a power of two, so the
// DC bin carries no signal.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := 1
	for n < len(data) {
		n <<= 1
	}

	buf := make([]complex128, n)
	for i, v := range data {
		buf[i] = complex(v-mean, 0)
	}
	fft(buf)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(buf[i])
	}
	return ps
}

// DominantFrequency picks the strongest non-DC bin and converts it to
// hertz given the sample spacing dt. Returns 0 for flat or too-short
// series.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxPower == 0 {
		return 0
	}

	// len(ps) bins cover half the sampling rate
	return float64(maxIdx) / (2 * float64(len(ps)) * dt)
}
