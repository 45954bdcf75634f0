package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-autotune/dsp/filter/biquad"
)

// magnitudeAt evaluates the cascade magnitude response at freq (Hz).
func magnitudeAt(sections []biquad.Coefficients, freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	h := complex(1, 0)
	for _, c := range sections {
		num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
		den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
		h *= num / den
	}

	return cmplx.Abs(h)
}

func TestLowpassResponse(t *testing.T) {
	c := Lowpass(1000, defaultQ, 44100)

	sections := []biquad.Coefficients{c}

	if got := magnitudeAt(sections, 10, 44100); math.Abs(got-1) > 0.01 {
		t.Fatalf("passband gain = %v, want ~1", got)
	}

	// Butterworth Q gives -3 dB at the cutoff.
	if got := magnitudeAt(sections, 1000, 44100); math.Abs(got-1/math.Sqrt2) > 0.01 {
		t.Fatalf("cutoff gain = %v, want ~0.707", got)
	}

	if got := magnitudeAt(sections, 10000, 44100); got > 0.02 {
		t.Fatalf("stopband gain = %v, want < 0.02", got)
	}
}

func TestLowpassInvalidParams(t *testing.T) {
	zero := biquad.Coefficients{}

	tests := []struct {
		name       string
		freq       float64
		sampleRate float64
	}{
		{name: "zero freq", freq: 0, sampleRate: 44100},
		{name: "negative freq", freq: -100, sampleRate: 44100},
		{name: "at nyquist", freq: 22050, sampleRate: 44100},
		{name: "zero rate", freq: 1000, sampleRate: 0},
		{name: "nan freq", freq: math.NaN(), sampleRate: 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lowpass(tt.freq, defaultQ, tt.sampleRate); got != zero {
				t.Fatalf("Lowpass = %+v, want zero coefficients", got)
			}
		})
	}
}

func TestButterworthLPOrder4(t *testing.T) {
	sections := ButterworthLP(8000, 4, 44100)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}

	if got := magnitudeAt(sections, 440, 44100); math.Abs(got-1) > 0.01 {
		t.Fatalf("passband gain = %v, want ~1", got)
	}
	if got := magnitudeAt(sections, 8000, 44100); math.Abs(got-1/math.Sqrt2) > 0.02 {
		t.Fatalf("cutoff gain = %v, want ~0.707", got)
	}
	// 4th order rolls off at 24 dB/octave; one octave above the cutoff the
	// response should be at least 20 dB down.
	if got := magnitudeAt(sections, 16000, 44100); got > 0.1 {
		t.Fatalf("octave-above gain = %v, want < 0.1", got)
	}
}

func TestButterworthLPOddOrder(t *testing.T) {
	sections := ButterworthLP(4000, 5, 44100)
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(sections))
	}

	last := sections[len(sections)-1]
	if last.B2 != 0 || last.A2 != 0 {
		t.Fatalf("final section = %+v, want first-order (B2=A2=0)", last)
	}
}

func TestButterworthLPInvalidOrder(t *testing.T) {
	if got := ButterworthLP(8000, 0, 44100); got != nil {
		t.Fatalf("ButterworthLP order 0 = %v, want nil", got)
	}
	if got := ButterworthLP(8000, -2, 44100); got != nil {
		t.Fatalf("ButterworthLP negative order = %v, want nil", got)
	}
}

func TestButterworthChainFiltersSignal(t *testing.T) {
	// A high-frequency tone through the cascade is attenuated; the filtered
	// output should have a much smaller peak than the input.
	const sr = 44100.0
	sections := ButterworthLP(2000, 4, sr)
	chain := biquad.NewChain(sections)

	buf := make([]float64, 4096)
	step := 2 * math.Pi * 15000 / sr
	for i := range buf {
		buf[i] = math.Sin(step * float64(i))
	}

	chain.ProcessBlock(buf)

	peak := 0.0
	for _, v := range buf[1000:] {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak > 0.01 {
		t.Fatalf("filtered peak = %v, want < 0.01", peak)
	}
}
