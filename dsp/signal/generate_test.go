package signal

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s, err := Sine(1000, 1.0, 48000, 48)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	if _, err := Sine(1000, 1.0, 48000, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := Sine(1000, 1.0, 0, 48); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestWhiteNoise(t *testing.T) {
	a, err := WhiteNoise(1, 0.5, 64)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	b, _ := WhiteNoise(1, 0.5, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at %d", i)
		}
		if a[i] < -0.5 || a[i] > 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}

	if _, err := WhiteNoise(1, -1, 64); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.1, -0.2, 0.05}, 1.0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Fatalf("peak = %v, want 1", peak)
	}

	// Silence stays silent.
	out, err = Normalize([]float64{0, 0, 0}, 1.0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}

	if _, err := Normalize(nil, 1.0); err == nil {
		t.Fatal("expected error for empty input")
	}
}
