package window

import (
	"math"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, n := range []int{1, 2, 16, 2048} {
		w := Generate(TypeHann, n)
		if len(w) != n {
			t.Fatalf("len = %d, want %d", len(w), n)
		}
	}

	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for zero length")
	}
	if Generate(TypeHann, -4) != nil {
		t.Fatal("expected nil for negative length")
	}
}

func TestHannSymmetric(t *testing.T) {
	w, err := Hann(64)
	if err != nil {
		t.Fatalf("Hann: %v", err)
	}

	// Endpoints are zero, peak is at the center.
	if math.Abs(w[0]) > 1e-12 || math.Abs(w[63]) > 1e-12 {
		t.Fatalf("endpoints = %v, %v, want 0", w[0], w[63])
	}
	for i := 0; i < 32; i++ {
		if math.Abs(w[i]-w[63-i]) > 1e-12 {
			t.Fatalf("asymmetry at %d: %v vs %v", i, w[i], w[63-i])
		}
	}
}

func TestHannPeriodicOverlapAdd(t *testing.T) {
	// Periodic Hann windows at 50% overlap sum to a constant.
	const n = 64
	w := Generate(TypeHann, n, WithPeriodic())

	for i := 0; i < n/2; i++ {
		sum := w[i] + w[i+n/2]
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("window sum at %d = %v, want 1", i, sum)
		}
	}
}

func TestWindowRanges(t *testing.T) {
	types := []struct {
		name string
		typ  Type
	}{
		{"rectangular", TypeRectangular},
		{"hann", TypeHann},
		{"hamming", TypeHamming},
		{"blackman", TypeBlackman},
		{"kaiser", TypeKaiser},
	}

	for _, tt := range types {
		t.Run(tt.name, func(t *testing.T) {
			w := Generate(tt.typ, 128, WithAlpha(8))
			for i, v := range w {
				if v < -1e-6 || v > 1+1e-12 {
					t.Fatalf("w[%d] = %v out of range", i, v)
				}
			}
		})
	}
}

func TestKaiserValidation(t *testing.T) {
	if _, err := Kaiser(0, 5); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Kaiser(16, -1); err == nil {
		t.Fatal("expected error for negative beta")
	}

	w, err := Kaiser(17, 8)
	if err != nil {
		t.Fatalf("Kaiser: %v", err)
	}
	if math.Abs(w[8]-1) > 1e-12 {
		t.Fatalf("center = %v, want 1", w[8])
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 1, 1, 1}
	coeffs := []float64{0, 0.5, 0.5, 0}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatalf("ApplyCoefficients: %v", err)
	}
	for i := range out {
		if out[i] != coeffs[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], coeffs[i])
		}
	}

	if _, err := ApplyCoefficients(samples, coeffs[:2]); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{1, 1, 1, 1}
	Apply(TypeHann, buf)

	if math.Abs(buf[0]) > 1e-12 {
		t.Fatalf("buf[0] = %v, want 0", buf[0])
	}
}

func TestBesselI0(t *testing.T) {
	// I0(0) = 1; I0 grows monotonically.
	if got := BesselI0(0); math.Abs(got-1) > 1e-15 {
		t.Fatalf("BesselI0(0) = %v, want 1", got)
	}

	prev := 1.0
	for _, x := range []float64{0.5, 1, 2, 5, 10} {
		v := BesselI0(x)
		if v <= prev {
			t.Fatalf("BesselI0 not increasing at %v: %v <= %v", x, v, prev)
		}
		prev = v
	}
}
