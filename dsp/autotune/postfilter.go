package autotune

import (
	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/filter/biquad"
	"github.com/cwbudde/algo-autotune/dsp/filter/design"
)

const (
	postFilterCutoffHz = 8000.0
	postFilterOrder    = 4

	// Fraction of Nyquist the cutoff may not exceed at low sample rates.
	postFilterNyquistScale = 0.8
)

// postFilter smooths resampling artifacts with a zero-phase Butterworth
// low-pass: the cascade runs forward, then backward over the reversed buffer,
// cancelling the phase shift and doubling the attenuation slope.
type postFilter struct {
	chain *biquad.Chain
}

func newPostFilter(sampleRate float64) *postFilter {
	cutoff := postFilterCutoffHz
	if limit := postFilterNyquistScale * sampleRate / 2; limit < cutoff {
		cutoff = limit
	}

	return &postFilter{
		chain: biquad.NewChain(design.ButterworthLP(cutoff, postFilterOrder, sampleRate)),
	}
}

func (p *postFilter) apply(buf []float64) {
	p.chain.Reset()
	p.chain.ProcessBlock(buf)

	core.Reverse(buf)
	p.chain.Reset()
	p.chain.ProcessBlock(buf)
	core.Reverse(buf)
}
