package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-autotune/dsp/window"
)

// Default detection parameters for vocal and instrumental material.
const (
	DefaultMinFrequency = 50.0
	DefaultMaxFrequency = 1500.0

	defaultPeakThreshold = 0.1
	minFrameLength       = 64

	silenceFloor = 1e-12

	// Lags whose window autocorrelation has decayed below this fraction of
	// its lag-0 value are left biased rather than amplified.
	windowACFloor = 1e-3

	// Peaks within this fraction of the band maximum are treated as
	// equivalent; the smallest such lag wins, which resolves the subharmonic
	// ambiguity of near-periodic material toward the true fundamental.
	subharmonicGuard = 0.9
)

// Estimate is the detection result for one frame. Frequency is 0 and Voiced
// is false when no pitch cleared the peak threshold.
type Estimate struct {
	Frequency  float64
	Confidence float64
	Voiced     bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithFrequencyRange sets the plausible pitch band in Hz.
// Invalid ranges are rejected by New.
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(d *Detector) {
		d.minFreq = minHz
		d.maxFreq = maxHz
	}
}

// WithPeakThreshold sets the peak height threshold relative to the
// autocorrelation maximum. Values outside (0, 1) are ignored.
func WithPeakThreshold(rel float64) Option {
	return func(d *Detector) {
		if rel > 0 && rel < 1 {
			d.threshold = rel
		}
	}
}

// WithWindow sets the analysis window type applied before autocorrelation.
func WithWindow(t window.Type) Option {
	return func(d *Detector) {
		d.windowType = t
	}
}

// Detector estimates per-frame fundamental frequency via autocorrelation.
// It owns an FFT plan and scratch buffers sized for one frame length, so a
// Detector must not be shared across goroutines; create one per worker.
type Detector struct {
	sampleRate float64
	frameLen   int
	minFreq    float64
	maxFreq    float64
	threshold  float64
	windowType window.Type

	fftSize int
	plan    *algofft.Plan[complex128]
	coeffs  []float64

	timeBuf []complex128
	freqBuf []complex128
	ac      []float64
	winAC   []float64
}

// New creates a Detector for the given sample rate and frame length.
func New(sampleRate float64, frameLen int, opts ...Option) (*Detector, error) {
	d := &Detector{
		sampleRate: sampleRate,
		frameLen:   frameLen,
		minFreq:    DefaultMinFrequency,
		maxFreq:    DefaultMaxFrequency,
		threshold:  defaultPeakThreshold,
		windowType: window.TypeHann,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pitch: sample rate must be positive and finite: %f", sampleRate)
	}

	if frameLen < minFrameLength {
		return nil, fmt.Errorf("pitch: frame length must be >= %d: %d", minFrameLength, frameLen)
	}

	if d.minFreq <= 0 || d.maxFreq <= d.minFreq {
		return nil, fmt.Errorf("pitch: invalid frequency range [%f, %f]", d.minFreq, d.maxFreq)
	}

	if d.maxFreq > sampleRate/2 {
		return nil, fmt.Errorf("pitch: max frequency %f above nyquist %f", d.maxFreq, sampleRate/2)
	}

	// Zero-pad to twice the frame length so the circular correlation of the
	// padded block equals the linear autocorrelation of the frame.
	d.fftSize = nextPowerOf2(2 * frameLen)

	plan, err := algofft.NewPlan64(d.fftSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: failed to create FFT plan: %w", err)
	}

	d.plan = plan
	d.coeffs = window.Generate(d.windowType, frameLen)
	d.timeBuf = make([]complex128, d.fftSize)
	d.freqBuf = make([]complex128, d.fftSize)
	d.ac = make([]float64, frameLen)

	// The windowed autocorrelation carries the window's own lag-dependent
	// taper, which skews peaks toward smaller lags. Precompute the window's
	// autocorrelation so Detect can divide the taper back out.
	ones := make([]float64, frameLen)
	for i := range ones {
		ones[i] = 1
	}

	if err := d.autocorrelate(ones); err != nil {
		return nil, fmt.Errorf("pitch: failed to compute window autocorrelation: %w", err)
	}

	d.winAC = make([]float64, frameLen)
	copy(d.winAC, d.ac)

	return d, nil
}

// SampleRate returns the configured sample rate in Hz.
func (d *Detector) SampleRate() float64 { return d.sampleRate }

// FrameLength returns the expected frame length in samples.
func (d *Detector) FrameLength() int { return d.frameLen }

// FrequencyRange returns the plausible pitch band in Hz.
func (d *Detector) FrequencyRange() (minHz, maxHz float64) {
	return d.minFreq, d.maxFreq
}

// Detect estimates the fundamental frequency of one frame.
// The frame must have exactly FrameLength samples; shorter or longer frames
// return an unvoiced estimate.
func (d *Detector) Detect(samples []float64) Estimate {
	if len(samples) != d.frameLen {
		return Estimate{}
	}

	if err := d.autocorrelate(samples); err != nil {
		return Estimate{}
	}

	ref := d.ac[0]
	if ref <= silenceFloor {
		return Estimate{}
	}

	minLag := int(math.Floor(d.sampleRate / d.maxFreq))
	if minLag < 1 {
		minLag = 1
	}

	maxLag := int(math.Ceil(d.sampleRate / d.minFreq))
	if maxLag > d.frameLen-2 {
		maxLag = d.frameLen - 2
	}

	if minLag >= maxLag {
		return Estimate{}
	}

	// Divide out the window taper across the searched band (plus the
	// neighbors the parabolic fit reads) so peak heights compare fairly
	// across lags.
	for lag := minLag - 1; lag <= maxLag+1; lag++ {
		if w := d.winAC[lag]; w > d.winAC[0]*windowACFloor {
			d.ac[lag] *= d.winAC[0] / w
		}
	}

	height := d.threshold * ref

	bandMax := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		if d.ac[lag] > bandMax {
			bandMax = d.ac[lag]
		}
	}

	if bandMax <= height {
		return Estimate{}
	}

	// Unbiased peaks at period multiples come out nearly equal; picking the
	// smallest lag within the guard keeps the fundamental rather than a
	// subharmonic.
	guard := subharmonicGuard * bandMax

	bestLag := 0
	bestVal := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		v := d.ac[lag]
		if v < guard || v <= d.ac[lag-1] || v < d.ac[lag+1] {
			continue
		}

		bestLag = lag
		bestVal = v

		break
	}

	if bestLag == 0 {
		return Estimate{}
	}

	refined := refineLag(d.ac, bestLag)

	freq := d.sampleRate / refined
	if freq < d.minFreq || freq > d.maxFreq {
		return Estimate{}
	}

	conf := bestVal / ref
	if conf > 1 {
		conf = 1
	}

	return Estimate{Frequency: freq, Confidence: conf, Voiced: true}
}

// autocorrelate fills d.ac with the non-negative lags of the frame's
// autocorrelation using the power-spectrum method.
func (d *Detector) autocorrelate(samples []float64) error {
	for i := range d.timeBuf {
		d.timeBuf[i] = 0
	}

	for i, x := range samples {
		d.timeBuf[i] = complex(x*d.coeffs[i], 0)
	}

	if err := d.plan.Forward(d.freqBuf, d.timeBuf); err != nil {
		return err
	}

	for i, c := range d.freqBuf {
		re := real(c)
		im := imag(c)
		d.freqBuf[i] = complex(re*re+im*im, 0)
	}

	if err := d.plan.Inverse(d.timeBuf, d.freqBuf); err != nil {
		return err
	}

	for i := range d.ac {
		d.ac[i] = real(d.timeBuf[i])
	}

	return nil
}

// refineLag fits a parabola through the peak and its neighbors, returning a
// fractional lag. Falls back to the integer lag for degenerate fits.
func refineLag(ac []float64, lag int) float64 {
	if lag < 1 || lag+1 >= len(ac) {
		return float64(lag)
	}

	y0 := ac[lag-1]
	y1 := ac[lag]
	y2 := ac[lag+1]

	den := y0 - 2*y1 + y2
	if den == 0 {
		return float64(lag)
	}

	delta := 0.5 * (y0 - y2) / den
	if delta < -0.5 {
		delta = -0.5
	}

	if delta > 0.5 {
		delta = 0.5
	}

	return float64(lag) + delta
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
