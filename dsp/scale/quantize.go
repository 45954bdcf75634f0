package scale

import (
	"fmt"
	"math"
)

// Quantize snaps freq toward the nearest entry of the table, blended by
// strength. Strength 0 returns freq unchanged, strength 1 returns the table
// entry, and intermediate values interpolate linearly between the two.
// Non-positive or non-finite frequencies pass through untouched.
func Quantize(t *Table, freq, strength float64) (float64, error) {
	if strength < 0 || strength > 1 || math.IsNaN(strength) {
		return 0, fmt.Errorf("%w: %f", ErrInvalidStrength, strength)
	}

	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return freq, nil
	}

	target := t.Nearest(freq)

	return freq + (target-freq)*strength, nil
}

// QuantizeDefault snaps freq using a table from the process-wide cache.
func QuantizeDefault(kind Kind, root int, freq, strength float64) (float64, error) {
	table, err := DefaultTable(kind, root)
	if err != nil {
		return 0, err
	}

	return Quantize(table, freq, strength)
}
