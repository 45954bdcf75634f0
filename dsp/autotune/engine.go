package autotune

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-autotune/dsp/buffer"
	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/frame"
	"github.com/cwbudde/algo-autotune/dsp/pitch"
	"github.com/cwbudde/algo-autotune/dsp/resample"
	"github.com/cwbudde/algo-autotune/dsp/scale"
	"github.com/cwbudde/algo-autotune/dsp/window"
)

// Input and configuration errors.
var (
	ErrEmptyInput        = errors.New("autotune: empty input")
	ErrInvalidSampleRate = errors.New("autotune: sample rate must be positive and finite")
	ErrInvalidStrength   = errors.New("autotune: strength must be in [0, 1]")
)

// Shifts below this many semitones pass the frame through untouched; the
// pitch estimate is not reliable to finer resolution than this.
const minShiftSemitones = 0.1

// Guard below which the overlap-add window sum is treated as silence.
const windowSumFloor = 1e-8

// Result echoes the effective processing parameters of one Process call
// together with its diagnostics.
type Result struct {
	Strength    float64
	Scale       scale.Kind
	Root        int
	FrameLength int
	HopLength   int

	Diagnostics Diagnostics
}

// Diagnostics counts per-frame outcomes of one Process call.
type Diagnostics struct {
	Frames    int
	Voiced    int
	Unvoiced  int
	Fallbacks int
}

// Engine applies pitch correction to mono buffers at a fixed sample rate.
// An Engine is safe for sequential reuse across buffers; Process itself
// fans analysis out over a worker pool.
type Engine struct {
	cfg        config
	sampleRate float64

	seg    *frame.Segmenter
	table  *scale.Table
	coeffs []float64
	post   *postFilter
	pool   *buffer.Pool
}

// New creates an Engine for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.strength < 0 || cfg.strength > 1 || math.IsNaN(cfg.strength) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidStrength, cfg.strength)
	}

	seg, err := frame.New(cfg.frameLen, cfg.hop)
	if err != nil {
		return nil, err
	}

	table, err := scale.DefaultTable(cfg.kind, cfg.root)
	if err != nil {
		return nil, err
	}

	// Pitch detection below validates the frequency range and frame length
	// against the sample rate; build one throwaway detector so configuration
	// errors surface here instead of inside the worker pool.
	if _, err := newDetector(sampleRate, cfg); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		sampleRate: sampleRate,
		seg:        seg,
		table:      table,
		coeffs:     window.Generate(window.TypeHann, cfg.frameLen, window.WithPeriodic()),
		post:       newPostFilter(sampleRate),
		pool:       buffer.NewPool(),
	}

	return e, nil
}

// SampleRate returns the engine's sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Process corrects the pitch of input and returns a fresh output slice of the
// same length.
func (e *Engine) Process(input []float64) ([]float64, Result, error) {
	res := Result{
		Strength:    e.cfg.strength,
		Scale:       e.cfg.kind,
		Root:        e.cfg.root,
		FrameLength: e.cfg.frameLen,
		HopLength:   e.cfg.hop,
	}

	if len(input) == 0 {
		return nil, res, ErrEmptyInput
	}

	analyses, err := e.analyzeFrames(input)
	if err != nil {
		return nil, res, err
	}

	shifted, fallbacks := e.synthesize(input, analyses)

	diag := Diagnostics{Frames: len(analyses), Fallbacks: fallbacks}
	for _, a := range analyses {
		if a.voiced {
			diag.Voiced++
		} else {
			diag.Unvoiced++
		}
	}

	res.Diagnostics = diag

	output := e.overlapAdd(input, shifted)
	e.post.apply(output)
	limitPeak(output)

	return output, res, nil
}

// ProcessBuffer is Process for buffer.Buffer values.
func (e *Engine) ProcessBuffer(in *buffer.Buffer) (*buffer.Buffer, Result, error) {
	out, res, err := e.Process(in.Samples())
	if err != nil {
		return nil, res, err
	}

	return buffer.FromSlice(out), res, nil
}

// frameAnalysis is the detection and quantization outcome for one frame.
// Ratio is the resampling step applied during synthesis; 1 when the frame
// passes through.
type frameAnalysis struct {
	voiced bool
	shift  bool
	ratio  float64
	period float64
}

// shiftedFrame is one frame after pitch correction. Samples may alias the
// input buffer when the frame passed through unmodified.
type shiftedFrame struct {
	offset  int
	samples []float64
}

// analyzeFrames detects and quantizes every frame in parallel, returning the
// per-frame analyses in frame order.
func (e *Engine) analyzeFrames(input []float64) ([]frameAnalysis, error) {
	count := e.seg.Count(len(input))
	analyses := make([]frameAnalysis, count)

	workers := e.cfg.workers
	if workers > count {
		workers = count
	}

	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		initErr  error
		initOnce sync.Once
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			det, err := newDetector(e.sampleRate, e.cfg)
			if err != nil {
				initOnce.Do(func() { initErr = err })

				for range jobs {
				}

				return
			}

			for idx := range jobs {
				f := e.seg.Frame(input, idx)
				analyses[idx] = e.analyzeFrame(det, f.Samples)
			}
		}()
	}

	for idx := range count {
		jobs <- idx
	}

	close(jobs)
	wg.Wait()

	if initErr != nil {
		return nil, initErr
	}

	return analyses, nil
}

// analyzeFrame decides what, if anything, to do with one frame. Frames that
// are unvoiced or already within the minimum shift of their target pass
// through with ratio 1.
func (e *Engine) analyzeFrame(det *pitch.Detector, samples []float64) frameAnalysis {
	a := frameAnalysis{ratio: 1}

	est := det.Detect(samples)
	if !est.Voiced {
		return a
	}

	a.voiced = true
	a.period = e.sampleRate / est.Frequency

	target, err := scale.Quantize(e.table, est.Frequency, e.cfg.strength)
	if err != nil || target <= 0 {
		return a
	}

	ratio := target / est.Frequency
	if math.Abs(core.RatioToSemitones(ratio)) < minShiftSemitones {
		return a
	}

	a.ratio = ratio
	a.shift = true

	return a
}

// synthesize renders one grain per frame, sequentially. Shifted grains read
// the input through a continuous fractional position accumulator: each grain
// starts where the previous frame's read mapping lands after one hop, so
// overlapping grains stay phase-coherent at the shifted frequency instead of
// reconstructing the input pitch. The accumulator is re-anchored toward the
// frame's own offset in whole detected periods to bound read drift.
func (e *Engine) synthesize(input []float64, analyses []frameAnalysis) ([]shiftedFrame, int) {
	shifted := make([]shiftedFrame, len(analyses))
	fallbacks := 0

	nextStart := 0.0

	for k, a := range analyses {
		f := e.seg.Frame(input, k)
		sf := shiftedFrame{offset: f.Offset, samples: f.Samples}

		if !a.shift {
			shifted[k] = sf
			nextStart = float64(f.Offset + e.cfg.hop)

			continue
		}

		start := nextStart

		if a.period > 0 {
			if n := math.Round((float64(f.Offset) - start) / a.period); n != 0 {
				start += n * a.period
			}
		}

		grain, err := resample.Grain(input, start, a.ratio, e.cfg.frameLen,
			resample.WithQuality(e.cfg.quality))
		if err != nil {
			fallbacks++

			shifted[k] = sf
			nextStart = float64(f.Offset + e.cfg.hop)

			continue
		}

		sf.samples = grain
		shifted[k] = sf
		nextStart = start + float64(e.cfg.hop)*a.ratio
	}

	return shifted, fallbacks
}

// overlapAdd recombines shifted frames with Hann weighting and window-sum
// normalization. The result has exactly len(input) samples.
func (e *Engine) overlapAdd(input []float64, shifted []shiftedFrame) []float64 {
	output := make([]float64, len(input))

	wsumBuf := e.pool.Get(len(input))
	defer e.pool.Put(wsumBuf)

	wsum := wsumBuf.Samples()

	for _, sf := range shifted {
		for j, v := range sf.samples {
			idx := sf.offset + j
			if idx >= len(output) {
				break
			}

			output[idx] += v * e.coeffs[j]
			wsum[idx] += e.coeffs[j]
		}
	}

	for i := range output {
		if wsum[i] > windowSumFloor {
			output[i] /= wsum[i]
		} else {
			output[i] = 0
		}
	}

	return output
}

// limitPeak scales the buffer down to unit peak. Quieter signals are left
// untouched.
func limitPeak(buf []float64) {
	peak := core.MaxAbs(buf)
	if peak <= 1 {
		return
	}

	g := 1 / peak
	for i := range buf {
		buf[i] *= g
	}
}

func newDetector(sampleRate float64, cfg config) (*pitch.Detector, error) {
	return pitch.New(sampleRate, cfg.frameLen,
		pitch.WithFrequencyRange(cfg.minFreq, cfg.maxFreq))
}

// Process is a convenience wrapper that builds a one-shot Engine.
func Process(input []float64, sampleRate float64, opts ...Option) ([]float64, Result, error) {
	engine, err := New(sampleRate, opts...)
	if err != nil {
		return nil, Result{}, err
	}

	return engine.Process(input)
}
