package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns the magnitude of the real FFT of data, one bin per
// frequency from DC to Nyquist.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	fft := fourier.NewFFT(len(data))
	coeff := fft.Coefficients(nil, data)

	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in Hz of data
// sampled at rate samples per second, or 0 when there is none.
func DominantFrequency(data []float64, rate float64) float64 {
	if len(data) < 2 || rate <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)

	best, bestIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bestIdx = ps[i], i
		}
	}
	return float64(bestIdx) * rate / float64(len(data))
}

// Speeds returns the Euclidean norm of each velocity row.
func Speeds(velocities [][]float64) []float64 {
	out := make([]float64, len(velocities))
	for i, v := range velocities {
		out[i] = floats.Norm(v, 2)
	}
	return out
}
