// Package design computes biquad coefficients for lowpass filters used by
// the post-processing stage, including Butterworth cascades for higher-order
// responses. The processing runtime lives in dsp/filter/biquad.
package design
