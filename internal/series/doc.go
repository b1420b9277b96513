// Package series provides a bounded-memory history of 1 to 4 component
// state vectors that can be evaluated at arbitrary times.
//
// Each [Sample] carries a timestamp, a value and a velocity. Between two
// samples the curve is a cubic Hermite spline through both values with the
// stored velocities as tangents; past the newest sample it extrapolates
// linearly along the newest velocity.
//
//   - [Series.Push]: absolute position, velocity inferred from the jump
//   - [Series.Set]: absolute position with zero velocity (teleport)
//   - [Series.Move]: relative displacement spread over the time gap
//   - [Series.Idle]: extend the timeline without new input
//   - [Series.Flush]: drop history that can no longer be queried
//
// # Example
//
//	s, _ := series.New(series.WithDimension(2))
//	s.Push(0.016, 10, 4)
//	s.Push(0.033, 12, 5)
//	pos := s.Curve(0.025)
//	s.Flush(0.025)
//
// Appends whose timestamp does not advance past [Series.LastT] are ignored
// without error and counted by [Series.Dropped].
//
// # Result Buffers
//
// [Series.Curve] and [Series.DCurve] return slices backed by a buffer owned
// by the series, one per query kind. The slice is overwritten by the next
// call of the same query; copy it, or use [Series.AppendCurve] /
// [Series.CurveVec], to keep a result.
//
// # Thread Safety
//
// Series instances are NOT thread-safe. Appends and Flush mutate the sample
// storage that queries read, so all access must be serialized by the caller.
package series
