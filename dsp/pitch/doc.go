// Package pitch estimates the fundamental frequency of short monophonic
// audio frames.
//
// Detection uses FFT-accelerated autocorrelation with peak picking in the
// plausible pitch-period range and parabolic refinement of the winning lag.
// Autocorrelation trades polyphonic accuracy for throughput, which fits
// frame-rate pitch tracking of monophonic material.
package pitch
