package scale

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Equal temperament reference and table span.
const (
	referenceC4 = 261.63

	lowestOctave  = 2
	highestOctave = 7

	semitonesPerOctave = 12
)

// Sentinel errors returned by table construction and quantization.
var (
	ErrUnknownKind     = errors.New("scale: unknown scale kind")
	ErrUnknownRoot     = errors.New("scale: unknown root note")
	ErrInvalidStrength = errors.New("scale: strength must be in [0, 1]")
)

// Kind identifies a scale interval pattern.
type Kind int

const (
	KindMajor Kind = iota
	KindMinor
	KindPentatonic
	KindBlues
	KindChromatic
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMajor:
		return "major"
	case KindMinor:
		return "minor"
	case KindPentatonic:
		return "pentatonic"
	case KindBlues:
		return "blues"
	case KindChromatic:
		return "chromatic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a scale name to its Kind. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major":
		return KindMajor, nil
	case "minor":
		return KindMinor, nil
	case "pentatonic":
		return KindPentatonic, nil
	case "blues":
		return KindBlues, nil
	case "chromatic":
		return KindChromatic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// intervals returns the semitone offsets of the kind within one octave.
func (k Kind) intervals() []int {
	switch k {
	case KindMajor:
		return []int{0, 2, 4, 5, 7, 9, 11}
	case KindMinor:
		return []int{0, 2, 3, 5, 7, 8, 10}
	case KindPentatonic:
		return []int{0, 2, 4, 7, 9}
	case KindBlues:
		return []int{0, 3, 5, 6, 7, 10}
	case KindChromatic:
		return []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	default:
		return nil
	}
}

// rootOffsets maps note names to their semitone distance from C.
// Sharps and flats share entries; matching is case-insensitive.
var rootOffsets = map[string]int{
	"c": 0, "c#": 1, "db": 1,
	"d": 2, "d#": 3, "eb": 3,
	"e": 4,
	"f": 5, "f#": 6, "gb": 6,
	"g": 7, "g#": 8, "ab": 8,
	"a": 9, "a#": 10, "bb": 10,
	"b": 11,
}

// ParseRoot converts a note name such as "C", "F#" or "Bb" to its semitone
// offset from C.
func ParseRoot(name string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	offset, ok := rootOffsets[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRoot, name)
	}

	return offset, nil
}

// Table is an ascending ladder of scale frequencies in Hz.
type Table struct {
	kind Kind
	root int

	freqs []float64
}

// NewTable builds the frequency ladder for the kind rooted at the given
// semitone offset from C. Offsets outside [0, 11] are folded into range.
func NewTable(kind Kind, root int) (*Table, error) {
	intervals := kind.intervals()
	if intervals == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	root = ((root % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave

	freqs := make([]float64, 0, (highestOctave-lowestOctave+1)*len(intervals))

	for octave := lowestOctave; octave <= highestOctave; octave++ {
		base := semitonesPerOctave * (octave - 4)
		for _, iv := range intervals {
			semis := float64(base + root + iv)
			freqs = append(freqs, referenceC4*math.Pow(2, semis/semitonesPerOctave))
		}
	}

	return &Table{kind: kind, root: root, freqs: freqs}, nil
}

// Kind returns the interval pattern the table was built from.
func (t *Table) Kind() Kind { return t.kind }

// Root returns the semitone offset of the root from C.
func (t *Table) Root() int { return t.root }

// Len returns the number of entries in the ladder.
func (t *Table) Len() int { return len(t.freqs) }

// Frequencies returns a copy of the ascending frequency ladder.
func (t *Table) Frequencies() []float64 {
	out := make([]float64, len(t.freqs))
	copy(out, t.freqs)

	return out
}

// Nearest returns the table frequency closest to freq. Ties between two
// bracketing entries resolve toward the lower one. Frequencies beyond either
// end of the ladder clamp to the boundary entry.
func (t *Table) Nearest(freq float64) float64 {
	freqs := t.freqs

	lo, hi := 0, len(freqs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if freqs[mid] < freq {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	switch {
	case lo == 0:
		return freqs[0]
	case lo == len(freqs):
		return freqs[len(freqs)-1]
	}

	lower := freqs[lo-1]
	upper := freqs[lo]

	if freq-lower <= upper-freq {
		return lower
	}

	return upper
}
