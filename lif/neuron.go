// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"

	"github.com/chewxy/math32"
)

// lif.Neuron holds the dynamic state of one LIF neuron.
// Parameters live separately in Params so they can be shared.
type Neuron struct {

	// membrane potential -- integrates input current and leaks toward 0
	Vm float32

	// inter-spike interval: time since the last spike, incremented by dt on every step
	ISI float32

	// simulation time of the most recent spike, -1 if the neuron has never spiked
	LastSpike float32

	// whether the neuron spiked on the most recently completed step.  Overwritten every step.
	Spiked bool
}

var NeuronVars = []string{"Vm", "ISI", "LastSpike", "Spike"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list).
// Spike is reported as 1 or 0.
func (nrn *Neuron) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return nrn.Vm
	case 1:
		return nrn.ISI
	case 2:
		return nrn.LastSpike
	case 3:
		if nrn.Spiked {
			return 1
		}
		return 0
	}
	return math32.NaN()
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

// HasSpiked returns true if the neuron has spiked at least once since init.
func (nrn *Neuron) HasSpiked() bool {
	return nrn.LastSpike >= 0
}
