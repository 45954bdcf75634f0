package autotune_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-autotune/dsp/autotune"
	"github.com/cwbudde/algo-autotune/dsp/scale"
)

func Example() {
	const sampleRate = 44100.0

	// One second of a slightly sharp A4.
	input := make([]float64, 44100)
	for i := range input {
		input[i] = 0.5 * math.Sin(2*math.Pi*450*float64(i)/sampleRate)
	}

	output, res, err := autotune.Process(input, sampleRate,
		autotune.WithStrength(1),
		autotune.WithScale(scale.KindMajor, 0),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("length preserved:", len(output) == len(input))
	fmt.Printf("scale: %s, strength: %.1f\n", res.Scale, res.Strength)
	// Output:
	// length preserved: true
	// scale: major, strength: 1.0
}
