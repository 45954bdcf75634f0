// Package biquad provides a Direct Form II Transposed second-order filter
// section and a cascade chain for higher-order filters.
//
// This package is the processing runtime only. Coefficient design lives in
// dsp/filter/design.
package biquad
