// Package playback drives a [signal.Source] into a [series.Series] and
// renders it at a fixed frame rate, the way a game or UI render loop would.
//
// For frame i the runner sets the wall time w = i/FrameRate, ingests every
// event that has arrived by w, evaluates the curve at the display time
// w - Delay and finally flushes history older than the display time minus
// FlushLag. A positive Delay keeps most queries inside the interpolated
// region instead of on the extrapolated tail.
//
// # Example
//
//	r := playback.New(logger)
//	r.AddMetric(metrics.NewPeakSpeed())
//	result, err := r.Run(ctx, src, playback.DefaultConfig())
package playback
