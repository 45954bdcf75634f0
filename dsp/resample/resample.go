package resample

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-autotune/dsp/window"
)

var (
	// ErrEmptyInput indicates an empty input buffer.
	ErrEmptyInput = errors.New("resample: empty input")
	// ErrInvalidLength indicates a non-positive target length.
	ErrInvalidLength = errors.New("resample: invalid target length")
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// Profile exposes default kernel parameters for each quality mode.
type Profile struct {
	ZeroCrossings     int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{ZeroCrossings: 8, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{ZeroCrossings: 32, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{ZeroCrossings: 16, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality       Quality
	zeroCrossings int
	cutoffScale   float64
	kaiserBeta    float64
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithZeroCrossings overrides sinc zero crossings per kernel side.
func WithZeroCrossings(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.zeroCrossings = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 equals the theoretical anti-aliasing cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

func defaultConfig() config {
	return config{quality: QualityBalanced, kaiserBeta: -1}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	if c.zeroCrossings <= 0 {
		c.zeroCrossings = p.ZeroCrossings
	}

	if c.cutoffScale <= 0 || c.cutoffScale > 1 {
		c.cutoffScale = p.CutoffScale
	}

	if c.kaiserBeta < 0 {
		c.kaiserBeta = p.KaiserBeta
	}

	return c
}

// ToLength converts input to exactly outLen samples.
//
// The conversion evaluates a Kaiser-windowed sinc kernel at fractional input
// positions. When shortening (decimation) the kernel cutoff is lowered to the
// output Nyquist so aliasing stays below the profile's nominal stopband.
// Samples beyond the input edges are treated as zero.
func ToLength(input []float64, outLen int, opts ...Option) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	if outLen <= 0 {
		return nil, ErrInvalidLength
	}

	if outLen == len(input) {
		out := make([]float64, outLen)
		copy(out, input)

		return out, nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	step := float64(len(input)) / float64(outLen)

	return renderGrain(input, (0.5*step)-0.5, step, outLen, cfg), nil
}

// Grain renders outLen samples by evaluating input at the fractional
// positions start + m*step through the same Kaiser-windowed sinc kernel as
// ToLength. Positions outside the input read as zero, so a grain may begin
// before the buffer or run past its end. Step above 1 lowers the kernel
// cutoff to the effective output Nyquist.
//
// Grains are the building block of resampling-based pitch shifting: a caller
// that keeps start continuous across consecutive grains gets phase-coherent
// output at the shifted frequency.
func Grain(input []float64, start, step float64, outLen int, opts ...Option) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	if outLen <= 0 {
		return nil, ErrInvalidLength
	}

	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) ||
		math.IsNaN(start) || math.IsInf(start, 0) {
		return nil, ErrInvalidRatio
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return renderGrain(input, start, step, outLen, cfg.finalized()), nil
}

func renderGrain(input []float64, start, step float64, outLen int, cfg config) []float64 {
	// Normalized cutoff relative to the input rate. Shrinks when the output
	// advances faster than one input sample per output sample (pitch up),
	// which is the decimation case.
	scale := 1.0
	if step > 1 {
		scale = 1 / step
	}

	fc := 0.5 * cfg.cutoffScale * scale
	radius := float64(cfg.zeroCrossings) / (2 * fc)

	out := make([]float64, outLen)

	for m := range out {
		pos := start + float64(m)*step

		lo := int(math.Ceil(pos - radius))
		hi := int(math.Floor(pos + radius))

		if lo < 0 {
			lo = 0
		}

		if hi > len(input)-1 {
			hi = len(input) - 1
		}

		var acc, norm float64

		for k := lo; k <= hi; k++ {
			t := pos - float64(k)
			h := 2 * fc * sinc(2*fc*t) * kaiserTap(t/radius, cfg.kaiserBeta)
			acc += h * input[k]
			norm += h
		}

		// Normalizing by the kernel sum keeps unity gain at DC and removes
		// edge droop where the kernel is truncated.
		if norm != 0 {
			out[m] = acc / norm
		}
	}

	return out
}

// Resample converts input by the rational ratio up/down as a one-shot helper.
// The output has round(len(input)*up/down) samples.
func Resample(input []float64, up, down int, opts ...Option) ([]float64, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	outLen := int(math.Round(float64(len(input)) * float64(up) / float64(down)))

	return ToLength(input, outLen, opts...)
}

// ByRatio converts input so its duration scales by 1/ratio, the form used for
// resampling-based pitch shifting: ratio 2 halves the length (one octave up).
func ByRatio(input []float64, ratio float64, opts ...Option) ([]float64, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, ErrInvalidRatio
	}

	outLen := int(math.Round(float64(len(input)) / ratio))

	return ToLength(input, outLen, opts...)
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

// kaiserTap evaluates a Kaiser window at normalized position t in [-1, 1].
func kaiserTap(t, beta float64) float64 {
	if t < -1 || t > 1 {
		return 0
	}

	if beta <= 0 {
		return 1
	}

	a := math.Sqrt(math.Max(0, 1-t*t))

	return window.BesselI0(beta*a) / window.BesselI0(beta)
}
