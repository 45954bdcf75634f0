// Package autotune corrects the pitch of monophonic audio toward a musical
// scale.
//
// The engine splits the input into overlapping frames, estimates each frame's
// fundamental frequency, and snaps it toward the nearest scale entry. Shifted
// frames are rendered as resampled grains read through a continuous input
// position accumulator, which keeps overlapping grains phase-coherent at the
// corrected pitch, then recombined with Hann-windowed overlap-add, low-pass
// filtered with zero phase, and peak limited. Frame analysis runs across a
// bounded worker pool; grain synthesis and reconstruction are sequential and
// deterministic.
//
// Processing is batch oriented: the whole buffer is in memory and the output
// always has the input's length.
package autotune
