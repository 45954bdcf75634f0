package spectrum

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates an empty measurement buffer.
var ErrEmptyInput = errors.New("spectrum: empty input")

const (
	coarseStepHz = 2.0
	fineStepHz   = 0.05
)

// DominantFrequency scans [minFreq, maxFreq] with Goertzel analyzers and
// returns the frequency with the highest power. A coarse 2 Hz sweep locates
// the peak, then a 0.05 Hz sweep around it refines the estimate.
//
// The scan is O(len(buf) * bins) and intended for measurement and
// verification, not per-frame tracking.
func DominantFrequency(buf []float64, sampleRate, minFreq, maxFreq float64) (float64, error) {
	if len(buf) == 0 {
		return 0, ErrEmptyInput
	}

	if sampleRate <= 0 {
		return 0, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	if minFreq <= 0 || maxFreq <= minFreq || maxFreq > sampleRate/2 {
		return 0, fmt.Errorf("spectrum: invalid scan range [%v, %v] at rate %v", minFreq, maxFreq, sampleRate)
	}

	coarse, err := peakScan(buf, sampleRate, minFreq, maxFreq, coarseStepHz)
	if err != nil {
		return 0, err
	}

	lo := coarse - coarseStepHz
	if lo < minFreq {
		lo = minFreq
	}

	hi := coarse + coarseStepHz
	if hi > maxFreq {
		hi = maxFreq
	}

	return peakScan(buf, sampleRate, lo, hi, fineStepHz)
}

func peakScan(buf []float64, sampleRate, lo, hi, step float64) (float64, error) {
	bestFreq := lo
	bestPower := -1.0

	for f := lo; f <= hi; f += step {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return 0, err
		}

		g.ProcessBlock(buf)

		if p := g.Power(); p > bestPower {
			bestPower = p
			bestFreq = f
		}
	}

	return bestFreq, nil
}
