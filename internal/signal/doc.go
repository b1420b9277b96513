// Package signal produces irregularly sampled control input for a
// [series.Series].
//
// A [Source] yields [Event]s in time order. Each event names the append it
// maps to (push, set, move or idle), so a source models a particular kind
// of input device:
//
//   - [Circle]: absolute positions along a Lissajous path (pointer, tracker)
//   - [Teleport]: sparse absolute jumps with zero velocity (camera cuts)
//   - [Drag]: relative displacements (mouse deltas, joystick)
//   - [Spring]: a damped body chasing a moving target, integrated with RK4
//   - [Replay]: a recorded event log, see [ReadEvents]
//
// Sample spacing is driven by [Timing] and a seeded random source so runs
// are reproducible.
package signal
