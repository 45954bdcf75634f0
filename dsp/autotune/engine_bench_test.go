package autotune

import (
	"testing"

	"github.com/cwbudde/algo-autotune/internal/testutil"
)

func BenchmarkProcessOneSecond(b *testing.B) {
	engine, err := New(testSampleRate, WithStrength(1))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	input := testutil.DeterministicSine(450, testSampleRate, 0.5, 44100)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, _, err := engine.Process(input); err != nil {
			b.Fatalf("Process() error = %v", err)
		}
	}
}

func BenchmarkProcessSerial(b *testing.B) {
	engine, err := New(testSampleRate, WithStrength(1), WithWorkers(1))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	input := testutil.DeterministicSine(450, testSampleRate, 0.5, 44100)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, _, err := engine.Process(input); err != nil {
			b.Fatalf("Process() error = %v", err)
		}
	}
}
