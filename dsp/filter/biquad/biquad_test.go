package biquad

import (
	"math"
	"testing"
)

// identity is a pass-through section.
var identity = Coefficients{B0: 1}

func TestSectionIdentity(t *testing.T) {
	s := NewSection(identity)

	for _, x := range []float64{1, -0.5, 0.25, 0} {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("ProcessSample(%v) = %v, want %v", x, y, x)
		}
	}
}

func TestSectionBlockMatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.05}

	a := NewSection(c)
	b := NewSection(c)

	input := []float64{1, 0, -1, 0.5, 0.25, -0.75, 0, 0.1}
	block := make([]float64, len(input))
	copy(block, input)
	b.ProcessBlock(block)

	for i, x := range input {
		want := a.ProcessSample(x)
		if math.Abs(block[i]-want) > 1e-15 {
			t.Fatalf("index %d: block %v, sample %v", i, block[i], want)
		}
	}
}

func TestSectionReset(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.5, A1: -0.3}
	s := NewSection(c)

	first := s.ProcessSample(1)
	s.ProcessSample(0.5)
	s.Reset()

	if got := s.ProcessSample(1); got != first {
		t.Fatalf("after reset = %v, want %v", got, first)
	}
}

func TestChainCascade(t *testing.T) {
	c := Coefficients{B0: 0.5}
	chain := NewChain([]Coefficients{c, c})

	// Two 0.5 gain sections in series give 0.25.
	if y := chain.ProcessSample(1); y != 0.25 {
		t.Fatalf("ProcessSample = %v, want 0.25", y)
	}

	if chain.Order() != 4 {
		t.Fatalf("Order = %d, want 4", chain.Order())
	}
	if chain.NumSections() != 2 {
		t.Fatalf("NumSections = %d, want 2", chain.NumSections())
	}
}

func TestChainBlockMatchesSample(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.3, B1: 0.2, A1: -0.1},
		{B0: 0.8, B2: 0.1, A2: 0.02},
	}

	a := NewChain(coeffs)
	b := NewChain(coeffs)

	input := []float64{0.5, -0.25, 1, 0, 0, -1, 0.75}
	block := make([]float64, len(input))
	copy(block, input)
	b.ProcessBlock(block)

	for i, x := range input {
		want := a.ProcessSample(x)
		if math.Abs(block[i]-want) > 1e-15 {
			t.Fatalf("index %d: block %v, sample %v", i, block[i], want)
		}
	}
}
