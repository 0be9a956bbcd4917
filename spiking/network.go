// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spiking

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/erand"
	"github.com/emer/snn/lif"
	"github.com/emer/snn/stdp"
)

// spiking.Network is a fully-connected recurrent network of LIF neurons
// with STDP learning on every synapse.  Spikes are transmitted with a
// one-step delay: a spike emitted on step t contributes current only on step t+1.
type Network struct {

	// name of the network, used in reports
	Nm string

	// per-neuron LIF parameters, parallel to Neurons
	NeurPars []lif.Params

	// neuron state -- fixed count for the lifetime of the network
	Neurons []lif.Neuron

	// synaptic weights, N x N, indexed [post*N + pre]
	Wts []float32

	// plasticity parameters applied to all synapses
	STDP stdp.Params

	// simulation clock -- never reset
	Time Time

	prvSpk []bool
	curSpk []bool
	inet   []float32
}

// NewNetwork builds a network of nNeurons neurons using given params
// (nil = defaults) and random source for the initial weights.  If rnd is nil
// a source seeded with pars.WtInit.Seed is used, so construction is deterministic.
// Invalid params are rejected before anything is allocated.
func NewNetwork(nNeurons int, pars *NetParams, rnd erand.Rand) (*Network, error) {
	if nNeurons <= 0 {
		return nil, fmt.Errorf("%w: number of neurons must be > 0, got %d", ErrInvalidParams, nNeurons)
	}
	if pars == nil {
		pars = &NetParams{}
		pars.Defaults()
	} else {
		pars.Update()
	}
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = erand.NewSysRand(pars.WtInit.Seed)
	}
	nt := &Network{Nm: "SNN"}
	nt.STDP = pars.STDP
	nt.NeurPars = make([]lif.Params, nNeurons)
	nt.Neurons = make([]lif.Neuron, nNeurons)
	nt.Wts = make([]float32, nNeurons*nNeurons)
	nt.prvSpk = make([]bool, nNeurons)
	nt.curSpk = make([]bool, nNeurons)
	nt.inet = make([]float32, nNeurons)
	for i := range nt.NeurPars {
		nt.NeurPars[i] = pars.Neuron
	}
	nt.InitActs()
	nt.InitWts(&pars.WtInit, rnd)
	return nt, nil
}

// NNeurons returns the number of neurons
func (nt *Network) NNeurons() int {
	return len(nt.Neurons)
}

// InitWts draws all weights from the given distribution, clamped to STDP.WtRange.
// Weights are drawn in [post][pre] order.
func (nt *Network) InitWts(wp *WtInitParams, rnd erand.Rand) {
	for i := range nt.Wts {
		nt.Wts[i] = nt.STDP.ClampWt(wp.Gen(rnd))
	}
}

// InitActs resets all neuron state to the never-spiked resting state
// and clears spike history.  The simulation clock is not reset.
func (nt *Network) InitActs() {
	for i := range nt.Neurons {
		nt.NeurPars[i].InitActs(&nt.Neurons[i])
		nt.prvSpk[i] = false
		nt.curSpk[i] = false
	}
}

// SetNeuronParams sets the LIF parameters for one neuron.  Invalid params
// or index return an error and leave the network unchanged.
func (nt *Network) SetNeuronParams(idx int, lp lif.Params) error {
	if idx < 0 || idx >= len(nt.Neurons) {
		return fmt.Errorf("%w: neuron index %d out of range [0, %d)", ErrInvalidParams, idx, len(nt.Neurons))
	}
	lp.Update()
	if err := lp.Validate(); err != nil {
		return fmt.Errorf("%w: neuron %d: %w", ErrInvalidParams, idx, err)
	}
	nt.NeurPars[idx] = lp
	nrn := &nt.Neurons[idx]
	if !nrn.HasSpiked() && nrn.ISI < lp.Refract {
		nrn.ISI = lp.Refract
	}
	return nil
}

// Wt returns the weight from pre-synaptic neuron pre to post-synaptic neuron post.
func (nt *Network) Wt(post, pre int) float32 {
	return nt.Wts[post*len(nt.Neurons)+pre]
}

// SetWt sets the weight from pre to post, clamped to STDP.WtRange.
func (nt *Network) SetWt(post, pre int, wt float32) {
	nt.Wts[post*len(nt.Neurons)+pre] = nt.STDP.ClampWt(wt)
}

// Step advances the whole network by one time step of size dt,
// driving each neuron with the corresponding external input current.
// Missing inputs are treated as 0 and excess inputs are ignored.
// Returns a new slice reporting which neurons spiked on this step.
// A dt that is not > 0 (including NaN) is ignored: nothing changes
// and the spikes of the previous step are returned.
func (nt *Network) Step(inputs []float32, dt float32) []bool {
	if !(dt > 0) {
		return nt.Spikes()
	}
	nt.Time.CycleInc(dt)
	nt.GFmSpikes(inputs)
	nt.Integrate(dt)
	nt.ApplySTDP()
	spks := make([]bool, len(nt.curSpk))
	copy(spks, nt.curSpk)
	nt.prvSpk, nt.curSpk = nt.curSpk, nt.prvSpk
	return spks
}

// GFmSpikes computes the net input current for every neuron from the external
// inputs plus the recurrent weights of neurons that spiked on the previous step.
func (nt *Network) GFmSpikes(inputs []float32) {
	n := len(nt.Neurons)
	for i := range nt.inet {
		nt.inet[i] = 0
	}
	copy(nt.inet, inputs)
	for pre, spk := range nt.prvSpk {
		if !spk {
			continue
		}
		for post := 0; post < n; post++ {
			nt.inet[post] += nt.Wts[post*n+pre]
		}
	}
}

// Integrate integrates every neuron with its net input at the current time.
func (nt *Network) Integrate(dt float32) {
	ctime := nt.Time.Time
	for i := range nt.Neurons {
		nrn := &nt.Neurons[i]
		nt.NeurPars[i].Integrate(nrn, nt.inet[i], dt, ctime)
		nt.curSpk[i] = nrn.Spiked
	}
}

// ApplySTDP updates every synapse whose post and pre neurons both have spike
// history, including self-connections.  This is applied on every step to all
// such pairs, not just those that spiked on this step, so old pairings keep
// contributing an exponentially small change.
func (nt *Network) ApplySTDP() {
	n := len(nt.Neurons)
	for post := range nt.Neurons {
		tPost := nt.Neurons[post].LastSpike
		if tPost < 0 {
			continue
		}
		for pre := range nt.Neurons {
			dw, ok := nt.STDP.PairDWt(tPost, nt.Neurons[pre].LastSpike)
			if !ok {
				continue
			}
			nt.STDP.WtFmDWt(&nt.Wts[post*n+pre], dw)
		}
	}
}

// Spikes returns a copy of the spike flags from the most recent step.
func (nt *Network) Spikes() []bool {
	spks := make([]bool, len(nt.prvSpk))
	copy(spks, nt.prvSpk)
	return spks
}

// SpikeCount returns the number of neurons that spiked on the most recent step.
func (nt *Network) SpikeCount() int {
	cnt := 0
	for _, spk := range nt.prvSpk {
		if spk {
			cnt++
		}
	}
	return cnt
}

//////////////////////////////////////////////////////////////////////////////////////
//  Variable access

var SynapseVars = []string{"Wt"}

// NeuronValues returns the values of the named neuron variable
// (see lif.NeuronVars) for all neurons, or error.
func (nt *Network) NeuronValues(varNm string) ([]float32, error) {
	vidx, err := lif.NeuronVarIndexByName(varNm)
	if err != nil {
		return nil, err
	}
	vals := make([]float32, len(nt.Neurons))
	for i := range nt.Neurons {
		vals[i] = nt.Neurons[i].VarByIndex(vidx)
	}
	return vals, nil
}

// SynValue returns the named synapse variable from pre to post, or error.
func (nt *Network) SynValue(varNm string, post, pre int) (float32, error) {
	if varNm != "Wt" {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	n := len(nt.Neurons)
	if post < 0 || post >= n || pre < 0 || pre >= n {
		return 0, fmt.Errorf("Synapse index post: %d, pre: %d out of range [0, %d)", post, pre, n)
	}
	return nt.Wt(post, pre), nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Misc Reports

// SizeReport returns a string reporting the number of neurons and synapses
// in the network, and their memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nn := len(nt.Neurons)
	ns := len(nt.Wts)
	neurMem := nn*int(unsafe.Sizeof(lif.Neuron{})+unsafe.Sizeof(lif.Params{})) + 2*nn + 4*len(nt.inet)
	synMem := ns * 4
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", nt.Nm, nn, (datasize.ByteSize)(neurMem).HumanReadable(), ns, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}
