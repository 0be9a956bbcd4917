// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp provides the pair-based Spike-Timing-Dependent Plasticity rule.

The weight change for a synapse depends only on the interval between the most
recent post-synaptic and pre-synaptic spike times, dt = tPost - tPre.
Causal pairings (dt > 0) potentiate with APlus * exp(-dt / TauPlus), and
acausal or simultaneous pairings (dt <= 0) depress with
AMinus * exp(dt / TauMinus).  The resulting weight is clamped to WtRange.
*/
package stdp

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/goki/mat32"
)

// ErrInvalidParams is returned (wrapped) by Validate.
var ErrInvalidParams = errors.New("stdp: invalid params")

// Params are the STDP learning parameters.
type Params struct {
	APlus    float32    `def:"0.01" min:"0" desc:"potentiation amplitude for post-after-pre (causal) pairings"`
	AMinus   float32    `def:"-0.012" max:"0" desc:"depression amplitude for pre-after-post (acausal) or simultaneous pairings -- negative"`
	TauPlus  float32    `def:"20" min:"0" desc:"time constant of the potentiation window"`
	TauMinus float32    `def:"20" min:"0" desc:"time constant of the depression window"`
	Lrate    float32    `def:"0.001" desc:"learning rate multiplier on every weight change"`
	WtRange  minmax.F32 `view:"inline" desc:"weights are clamped to this range after every update -- [-1, 1] by default"`

	PlusDt  float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / TauPlus"`
	MinusDt float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / TauMinus"`
}

func (sp *Params) Defaults() {
	sp.APlus = 0.01
	sp.AMinus = -0.012
	sp.TauPlus = 20
	sp.TauMinus = 20
	sp.Lrate = 0.001
	sp.WtRange.Min = -1
	sp.WtRange.Max = 1
	sp.Update()
}

// Update must be called after any changes to parameters
func (sp *Params) Update() {
	if sp.TauPlus > 0 {
		sp.PlusDt = 1 / sp.TauPlus
	}
	if sp.TauMinus > 0 {
		sp.MinusDt = 1 / sp.TauMinus
	}
}

// Validate returns an error for parameters that break the sign conventions
// or the exponential windows.
func (sp *Params) Validate() error {
	var errs []error
	if !(sp.TauPlus > 0) {
		errs = append(errs, fmt.Errorf("%w: TauPlus must be > 0, got %v", ErrInvalidParams, sp.TauPlus))
	}
	if !(sp.TauMinus > 0) {
		errs = append(errs, fmt.Errorf("%w: TauMinus must be > 0, got %v", ErrInvalidParams, sp.TauMinus))
	}
	if sp.APlus < 0 || math32.IsNaN(sp.APlus) {
		errs = append(errs, fmt.Errorf("%w: APlus must be >= 0, got %v", ErrInvalidParams, sp.APlus))
	}
	if sp.AMinus > 0 || math32.IsNaN(sp.AMinus) {
		errs = append(errs, fmt.Errorf("%w: AMinus must be <= 0, got %v", ErrInvalidParams, sp.AMinus))
	}
	if !(sp.WtRange.Min <= sp.WtRange.Max) {
		errs = append(errs, fmt.Errorf("%w: WtRange.Min %v > WtRange.Max %v", ErrInvalidParams, sp.WtRange.Min, sp.WtRange.Max))
	}
	return errors.Join(errs...)
}

// DWt returns the raw weight change (before Lrate) for a spike interval
// dt = tPost - tPre.
func (sp *Params) DWt(dt float32) float32 {
	if dt > 0 {
		return sp.APlus * math32.Exp(-dt*sp.PlusDt)
	}
	return sp.AMinus * math32.Exp(dt*sp.MinusDt)
}

// PairDWt returns the raw weight change for the given post and pre last
// spike times, and false if either neuron has never spiked (time < 0).
func (sp *Params) PairDWt(tPost, tPre float32) (float32, bool) {
	if tPost < 0 || tPre < 0 {
		return 0, false
	}
	return sp.DWt(tPost - tPre), true
}

// WtFmDWt applies the learning-rate scaled change to wt, clamped to WtRange.
func (sp *Params) WtFmDWt(wt *float32, dwt float32) {
	*wt = sp.ClampWt(*wt + sp.Lrate*dwt)
}

// ClampWt returns wt clamped to WtRange.
func (sp *Params) ClampWt(wt float32) float32 {
	return mat32.Clamp(wt, sp.WtRange.Min, sp.WtRange.Max)
}
