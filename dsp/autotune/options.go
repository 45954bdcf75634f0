package autotune

import (
	"runtime"

	"github.com/cwbudde/algo-autotune/dsp/frame"
	"github.com/cwbudde/algo-autotune/dsp/pitch"
	"github.com/cwbudde/algo-autotune/dsp/resample"
	"github.com/cwbudde/algo-autotune/dsp/scale"
)

type config struct {
	strength float64
	kind     scale.Kind
	root     int

	frameLen int
	hop      int

	minFreq float64
	maxFreq float64

	workers int
	quality resample.Quality
}

func defaultConfig() config {
	return config{
		strength: 1.0,
		kind:     scale.KindMajor,
		root:     0,
		frameLen: frame.DefaultLength,
		hop:      frame.DefaultHop,
		minFreq:  pitch.DefaultMinFrequency,
		maxFreq:  pitch.DefaultMaxFrequency,
		workers:  runtime.NumCPU(),
		quality:  resample.QualityBalanced,
	}
}

// Option configures an Engine.
type Option func(*config)

// WithStrength sets the correction strength in [0, 1]. 0 leaves detected
// pitches untouched, 1 snaps fully onto the scale. Out-of-range values are
// rejected by New.
func WithStrength(s float64) Option {
	return func(c *config) { c.strength = s }
}

// WithScale selects the target scale kind and root note (semitone offset
// from C).
func WithScale(kind scale.Kind, root int) Option {
	return func(c *config) {
		c.kind = kind
		c.root = root
	}
}

// WithFrameLength sets the analysis frame length in samples.
func WithFrameLength(n int) Option {
	return func(c *config) { c.frameLen = n }
}

// WithHopLength sets the hop between consecutive frames in samples.
func WithHopLength(n int) Option {
	return func(c *config) { c.hop = n }
}

// WithFrequencyRange sets the plausible pitch band passed to detection.
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(c *config) {
		c.minFreq = minHz
		c.maxFreq = maxHz
	}
}

// WithWorkers bounds the analysis worker pool. Values below 1 fall back to
// runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.workers = n
		} else {
			c.workers = runtime.NumCPU()
		}
	}
}

// WithResampleQuality selects the resampler quality profile used for pitch
// shifting.
func WithResampleQuality(q resample.Quality) Option {
	return func(c *config) { c.quality = q }
}
