package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"
)

const minSamples = 8

// Spectrum is the one-sided power spectrum of a uniformly sampled series.
// Freqs are in cycles per unit time.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum removes the mean, applies a Hann window and transforms.
func PowerSpectrum(values []float64, dt float64) (Spectrum, error) {
	n := len(values)
	if n < minSamples {
		return Spectrum{}, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, n, minSamples)
	}
	if !(dt > 0) {
		return Spectrum{}, fmt.Errorf("sample spacing must be positive, got %g", dt)
	}

	mean := stat.Mean(values, nil)
	seq := make([]float64, n)
	for i, v := range values {
		seq[i] = v - mean
	}
	window.Hann(seq)

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, seq)

	s := Spectrum{
		Freqs: make([]float64, len(coeff)),
		Power: make([]float64, len(coeff)),
	}
	for i, c := range coeff {
		s.Freqs[i] = fft.Freq(i) / dt
		s.Power[i] = real(c)*real(c) + imag(c)*imag(c)
	}
	return s, nil
}

// Peak returns the index of the strongest non-DC bin, or -1 for a flat
// spectrum.
func (s Spectrum) Peak() int {
	best, bestPow := -1, 0.0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > bestPow {
			best, bestPow = i, s.Power[i]
		}
	}
	return best
}

// DominantPeriod is the period of the spectral peak. The peak is refined by
// a parabola through the log power of its neighbours.
func DominantPeriod(values []float64, dt float64) (float64, error) {
	s, err := PowerSpectrum(values, dt)
	if err != nil {
		return 0, err
	}
	k := s.Peak()
	if k < 0 {
		return 0, ErrNoOscillation
	}

	bin := float64(k)
	if k+1 < len(s.Power) && s.Power[k-1] > 0 && s.Power[k+1] > 0 {
		a, b, c := math.Log(s.Power[k-1]), math.Log(s.Power[k]), math.Log(s.Power[k+1])
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	if bin <= 0 {
		return 0, ErrNoOscillation
	}
	return float64(len(values)) * dt / bin, nil
}

// CrossingPeriod averages the spacing of upward crossings of the mean,
// locating each crossing by linear interpolation.
func CrossingPeriod(times, values []float64) (float64, error) {
	if len(times) != len(values) {
		return 0, fmt.Errorf("%d times for %d values", len(times), len(values))
	}
	if len(values) < minSamples {
		return 0, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, len(values), minSamples)
	}

	mean := stat.Mean(values, nil)
	var crossings []float64
	for i := 1; i < len(values); i++ {
		a, b := values[i-1]-mean, values[i]-mean
		if a < 0 && b >= 0 {
			crossings = append(crossings, times[i-1]+(times[i]-times[i-1])*(-a)/(b-a))
		}
	}
	if len(crossings) < 2 {
		return 0, fmt.Errorf("%w: %d mean crossings", ErrNoOscillation, len(crossings))
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}
