// Package metrics provides [playback.Metric] implementations that score a
// rendered curve: how fast it moves, how smooth it is and how much history
// the series had to keep.
package metrics
