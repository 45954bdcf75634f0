// Package resample provides band-limited sample-rate conversion using
// Kaiser-windowed sinc interpolation with anti-aliasing defaults.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            zero crossings/side   nominal stopband
//	QualityFast     8                     ~55 dB
//	QualityBalanced 16                    ~75 dB
//	QualityBest     32                    ~90 dB
//
// Common workflows:
//   - ToLength(input, outLen, opts...) for exact output lengths
//   - Resample(input, up, down, opts...) for rational ratios
package resample
