// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum], [DominantFrequency]: spectral content of a signal,
//     typically the speed of the smoothed curve
//   - [Path]: the smoothed path in the plane of two components, overlaid
//     with the raw input samples, rendered as ASCII
//
// # Example
//
//	p := analysis.NewPath(frames, events, 0, 1)
//	fmt.Print(p.ASCII(70, 20))
package analysis
