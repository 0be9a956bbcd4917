// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif provides the Leaky Integrate-and-Fire (LIF) point neuron.

The membrane potential Vm integrates input current and leaks back toward
zero with time constant Tau, using a forward-Euler step of
dVm/dt = -Vm/Tau + I.  When Vm reaches the threshold Thr the neuron emits
a discrete spike, Vm is reset to VmR, and the neuron is held at VmR for
the Refract refractory window, during which input is ignored entirely.
*/
package lif

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidParams is returned (wrapped) by Validate for parameter values
// that would make integration numerically undefined.
var ErrInvalidParams = errors.New("lif: invalid params")

// Params are the LIF neuron parameters.  They can be shared by all neurons
// in a network or set individually per neuron.
type Params struct {
	Thr     float32 `def:"1" desc:"spiking threshold: Vm at or above this value triggers a spike"`
	VmR     float32 `def:"0" desc:"post-spiking membrane potential to reset to, also held during the refractory window"`
	Tau     float32 `def:"20" min:"0" desc:"membrane time constant in the same units as dt -- must be > 0"`
	Refract float32 `def:"5" min:"0" desc:"refractory period after a spike, during which Vm is clamped to VmR and no integration occurs"`

	Dt float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / Tau"`
}

func (lp *Params) Defaults() {
	lp.Thr = 1
	lp.VmR = 0
	lp.Tau = 20
	lp.Refract = 5
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *Params) Update() {
	if lp.Tau > 0 {
		lp.Dt = 1 / lp.Tau
	} else {
		lp.Dt = 0
	}
}

// Validate returns an error if the params cannot be integrated:
// Tau must be strictly positive and nothing may be NaN.
func (lp *Params) Validate() error {
	switch {
	case math32.IsNaN(lp.Thr) || math32.IsNaN(lp.VmR) || math32.IsNaN(lp.Tau) || math32.IsNaN(lp.Refract):
		return fmt.Errorf("%w: NaN value in %+v", ErrInvalidParams, *lp)
	case lp.Tau <= 0:
		return fmt.Errorf("%w: Tau must be > 0, got %v", ErrInvalidParams, lp.Tau)
	case lp.Refract < 0:
		return fmt.Errorf("%w: Refract must be >= 0, got %v", ErrInvalidParams, lp.Refract)
	}
	return nil
}

// InitActs initializes the neuron to its resting, never-spiked state.
// ISI starts at Refract so that a fresh neuron is not refractory.
func (lp *Params) InitActs(nrn *Neuron) {
	nrn.Vm = 0
	nrn.ISI = lp.Refract
	nrn.LastSpike = -1
	nrn.Spiked = false
}

// Integrate advances the neuron by one time step of size dt, with net input
// current inet, where ctime is the simulation time after this step.
// A neuron inside its refractory window is held at VmR and never spikes.
func (lp *Params) Integrate(nrn *Neuron, inet, dt, ctime float32) {
	nrn.ISI += dt
	if nrn.ISI < lp.Refract {
		nrn.Vm = lp.VmR
		nrn.Spiked = false
		return
	}
	nrn.Vm += dt * (-nrn.Vm*lp.Dt + inet)
	if nrn.Vm >= lp.Thr {
		nrn.Vm = lp.VmR
		nrn.ISI = 0
		nrn.LastSpike = ctime
		nrn.Spiked = true
		return
	}
	nrn.Spiked = false
}

// IsRefract returns true if the neuron would still be refractory on a step of size dt.
func (lp *Params) IsRefract(nrn *Neuron, dt float32) bool {
	return nrn.ISI+dt < lp.Refract
}
