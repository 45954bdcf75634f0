// Package spectrum provides narrow-band frequency measurement: a Goertzel
// single-bin analyzer and a dominant-frequency scan built on top of it.
// The scan is the measurement side of pitch correction, used to verify that
// corrected material lands on its target frequency.
package spectrum
