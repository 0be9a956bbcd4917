// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spiking

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/emer/snn/lif"
	"github.com/emer/snn/stdp"
)

// ErrInvalidParams is returned (wrapped) when a network cannot be built
// or configured from the given parameters.
var ErrInvalidParams = errors.New("spiking: invalid params")

// NetParams has all the parameters needed to build a spiking Network.
type NetParams struct {
	Neuron lif.Params   `view:"inline" desc:"default LIF parameters applied to every neuron at construction -- individual neurons can be changed with SetNeuronParams"`
	STDP   stdp.Params  `view:"inline" desc:"spike-timing-dependent plasticity applied to all synapses on every step"`
	WtInit WtInitParams `view:"inline" desc:"initial weight distribution"`
	Inject InjectParams `view:"inline" desc:"how externally injected spike events are converted to input current"`
}

func (np *NetParams) Defaults() {
	np.Neuron.Defaults()
	np.STDP.Defaults()
	np.WtInit.Defaults()
	np.Inject.Defaults()
}

// Update must be called after any changes to parameters
func (np *NetParams) Update() {
	np.Neuron.Update()
	np.STDP.Update()
}

// Validate checks all parameters, returning every problem found
// wrapped in ErrInvalidParams.
func (np *NetParams) Validate() error {
	err := errors.Join(np.Neuron.Validate(), np.STDP.Validate(), np.WtInit.Validate(), np.Inject.Validate())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  WtInitParams

// WtInitParams are weight initialization parameters: the random distribution
// parameters plus the seed used when no explicit random source is given.
type WtInitParams struct {
	erand.RndParams
	Seed int64 `desc:"seed for the random source used by NewNetwork when none is passed in -- same seed gives identical weights"`
}

func (wp *WtInitParams) Defaults() {
	wp.Dist = erand.Uniform
	wp.Mean = 0
	wp.Var = 0.1
	wp.Par = 0
	wp.Seed = 1
}

func (wp *WtInitParams) Validate() error {
	if wp.Var < 0 {
		return fmt.Errorf("WtInit.Var must be >= 0, got %v", wp.Var)
	}
	return nil
}

// Gen draws one initial weight value from the distribution using rnd.
func (wp *WtInitParams) Gen(rnd erand.Rand) float32 {
	return float32(wp.RndParams.Gen(-1, rnd))
}

//////////////////////////////////////////////////////////////////////////////////////
//  InjectParams

// InjectParams control how the Emulator turns spike events into current.
type InjectParams struct {
	Current float32 `def:"1" desc:"input current added to the target neuron for each injected spike event -- repeated events accumulate additively"`
}

func (ip *InjectParams) Defaults() {
	ip.Current = 1
}

// Validate requires a positive current, so every delivered event has an effect.
func (ip *InjectParams) Validate() error {
	if math32.IsNaN(ip.Current) || ip.Current <= 0 {
		return fmt.Errorf("Inject.Current must be > 0, got %v", ip.Current)
	}
	return nil
}
