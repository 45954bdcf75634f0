// Command autotune applies scale-based pitch correction to a mono WAV file.
//
// Usage:
//
//	autotune -in voice.wav -out tuned.wav
//	autotune -in voice.wav -out tuned.wav -scale minor -root A -strength 0.8
//	autotune -in voice.wav -out tuned.wav -frame 4096 -hop 1024 -workers 4
//
// Stereo input is downmixed to mono. Output is written as 16-bit mono WAV at
// the input's sample rate.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-autotune/dsp/autotune"
	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/scale"
	"github.com/cwbudde/algo-autotune/dsp/signal"
)

const outputBitDepth = 16

func main() {
	var (
		inPath    = flag.String("in", "", "input WAV file (required)")
		outPath   = flag.String("out", "", "output WAV file (required)")
		strength  = flag.Float64("strength", 1.0, "correction strength, clamped to [0, 1]")
		scaleName = flag.String("scale", "major", "scale kind: major, minor, pentatonic, blues, chromatic")
		rootName  = flag.String("root", "C", "root note, e.g. C, F#, Bb")
		frameLen  = flag.Int("frame", 2048, "analysis frame length in samples")
		hopLen    = flag.Int("hop", 512, "hop between frames in samples")
		workers   = flag.Int("workers", 0, "analysis workers (0 = all CPUs)")
		normalize = flag.Bool("normalize", false, "peak-normalize the output to full scale")
		verbose   = flag.Bool("v", false, "debug logging")
	)

	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := runOptions{
		strength:  *strength,
		scaleName: *scaleName,
		rootName:  *rootName,
		frameLen:  *frameLen,
		hopLen:    *hopLen,
		workers:   *workers,
		normalize: *normalize,
	}

	if err := run(log, *inPath, *outPath, opts); err != nil {
		log.WithError(err).Fatal("processing failed")
	}
}

type runOptions struct {
	strength  float64
	scaleName string
	rootName  string
	frameLen  int
	hopLen    int
	workers   int
	normalize bool
}

func run(log *logrus.Logger, inPath, outPath string, opts runOptions) error {
	kind, err := scale.ParseKind(opts.scaleName)
	if err != nil {
		return err
	}

	root, err := scale.ParseRoot(opts.rootName)
	if err != nil {
		return err
	}

	// The engine rejects out-of-range strength; at the CLI boundary a clamp
	// is friendlier than an error.
	strength := core.Clamp(opts.strength, 0, 1)

	samples, sampleRate, err := readMonoWAV(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	log.WithFields(logrus.Fields{
		"file":        inPath,
		"samples":     len(samples),
		"sample_rate": sampleRate,
		"scale":       kind,
		"root":        opts.rootName,
		"strength":    strength,
	}).Info("processing")

	engine, err := autotune.New(float64(sampleRate),
		autotune.WithStrength(strength),
		autotune.WithScale(kind, root),
		autotune.WithFrameLength(opts.frameLen),
		autotune.WithHopLength(opts.hopLen),
		autotune.WithWorkers(opts.workers),
	)
	if err != nil {
		return err
	}

	start := time.Now()

	output, res, err := engine.Process(samples)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"duration":  time.Since(start).Round(time.Millisecond),
		"frames":    res.Diagnostics.Frames,
		"voiced":    res.Diagnostics.Voiced,
		"unvoiced":  res.Diagnostics.Unvoiced,
		"fallbacks": res.Diagnostics.Fallbacks,
	}).Info("done")

	if opts.normalize {
		output, err = signal.Normalize(output, 0.99)
		if err != nil {
			return err
		}
	}

	if err := writeMonoWAV(outPath, output, sampleRate); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	log.WithField("file", outPath).Info("written")

	return nil
}

// readMonoWAV decodes a WAV file into float64 samples in [-1, 1], downmixing
// multi-channel input by averaging.
func readMonoWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, fmt.Errorf("no channels")
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}

	norm := 1.0 / float64(int64(1)<<(bitDepth-1))
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)

	for i := range frames {
		sum := 0.0
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch])
		}

		samples[i] = sum / float64(channels) * norm
	}

	return samples, buf.Format.SampleRate, nil
}

// writeMonoWAV encodes float64 samples in [-1, 1] as 16-bit mono WAV.
func writeMonoWAV(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, outputBitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: outputBitDepth,
		Data:           make([]int, len(samples)),
	}

	const fullScale = 1<<(outputBitDepth-1) - 1

	for i, v := range samples {
		buf.Data[i] = int(math.Round(core.Clamp(v, -1, 1) * fullScale))
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
