// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spiking

// spiking.Time contains the timing state for running a network.
// Unlike cycle counters in rate-coded models it is never reset:
// spike times recorded by neurons refer to this clock.
type Time struct {

	// accumulated amount of simulation time the network has been running,
	// in the same units as the dt passed to Step.  Only increases.
	Time float32

	// total step count since the network was built.
	Cycle int

	// dt of the most recent step.
	LastDt float32
}

// CycleInc advances the clock by one step of size dt, which must be > 0
// (Network.Step ignores other values).
func (tm *Time) CycleInc(dt float32) {
	tm.Cycle++
	tm.Time += dt
	tm.LastDt = dt
}
