// Package frame splits mono sample buffers into fixed-length overlapping
// analysis frames.
package frame

import (
	"errors"
	"fmt"
	"iter"
)

// Configuration errors returned by New.
var (
	ErrInvalidFrameLength = errors.New("frame: frame length must be > 0")
	ErrInvalidHopLength   = errors.New("frame: hop must be > 0 and smaller than frame length")
)

// Default analysis geometry for pitch work at common audio rates.
const (
	DefaultLength = 2048
	DefaultHop    = 512
)

// Frame is one analysis window of a buffer. For frames fully inside the
// buffer, Samples aliases the source; the trailing frame is zero-padded into
// a fresh slice. Callers must treat Samples as read-only.
type Frame struct {
	Index   int
	Offset  int
	Samples []float64
}

// Segmenter produces overlapping frames of a fixed length and hop.
// The zero value is not usable; construct with New.
type Segmenter struct {
	length int
	hop    int
}

// New creates a Segmenter with the given frame length and hop.
// The hop must be positive and strictly smaller than the frame length.
func New(length, hop int) (*Segmenter, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameLength, length)
	}
	if hop <= 0 || hop >= length {
		return nil, fmt.Errorf("%w: hop=%d length=%d", ErrInvalidHopLength, hop, length)
	}

	return &Segmenter{length: length, hop: hop}, nil
}

// Length returns the frame length in samples.
func (s *Segmenter) Length() int { return s.length }

// Hop returns the hop between consecutive frames in samples.
func (s *Segmenter) Hop() int { return s.hop }

// Count returns the number of frames covering a buffer of n samples.
// Every sample index belongs to at least one frame.
func (s *Segmenter) Count(n int) int {
	if n <= 0 {
		return 0
	}

	return (n-1)/s.hop + 1
}

// Frame returns frame index of buf. The final frames are zero-padded past the
// buffer end so every frame has exactly Length samples.
func (s *Segmenter) Frame(buf []float64, index int) Frame {
	offset := index * s.hop

	if offset+s.length <= len(buf) {
		return Frame{
			Index:   index,
			Offset:  offset,
			Samples: buf[offset : offset+s.length],
		}
	}

	padded := make([]float64, s.length)
	if offset < len(buf) {
		copy(padded, buf[offset:])
	}

	return Frame{Index: index, Offset: offset, Samples: padded}
}

// Frames returns a lazy, restartable sequence of all frames of buf.
func (s *Segmenter) Frames(buf []float64) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		n := s.Count(len(buf))
		for i := range n {
			if !yield(s.Frame(buf, i)) {
				return
			}
		}
	}
}
