// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ffnn provides a small fully-connected feed-forward rate-code network,
trainable either by error backpropagation or by a plain Hebbian rule.

It shares no state with the spiking network and is intended as a simple
reference model alongside it.  Layers are dense gonum matrices, with
weights indexed [recv][send].
*/
package ffnn

import (
	"fmt"

	"github.com/emer/emergent/erand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ffnn.Layer holds the weights and the activation state from the most
// recent forward pass for one layer of receiving units.
type Layer struct {

	// weights, nRecv x nSend
	Wts *mat.Dense

	// bias weight per receiving unit
	Bias *mat.VecDense

	// net input from the most recent forward pass
	Net *mat.VecDense

	// activation from the most recent forward pass
	Act *mat.VecDense

	// error gradient from the most recent Backprop
	Delta *mat.VecDense

	// back-propagated error from the layer above
	Err *mat.VecDense
}

func newLayer(nRecv, nSend int) *Layer {
	return &Layer{
		Wts:   mat.NewDense(nRecv, nSend, nil),
		Bias:  mat.NewVecDense(nRecv, nil),
		Net:   mat.NewVecDense(nRecv, nil),
		Act:   mat.NewVecDense(nRecv, nil),
		Delta: mat.NewVecDense(nRecv, nil),
		Err:   mat.NewVecDense(nRecv, nil),
	}
}

// ffnn.Network is a feed-forward network with one Layer per entry in
// Sizes after the first, which is the input width.
type Network struct {

	// activation function for all layers
	ActFun ActFuns

	// initial weight and bias distribution -- Uniform over [-1, 1) by default
	WtInit erand.RndParams

	// number of units per layer, including input
	Sizes []int

	// layers, excluding input
	Layers []*Layer

	in *mat.VecDense
}

// NewNetwork returns a network with given layer sizes (input first), with
// weights and biases drawn from rnd.  If rnd is nil a fixed-seed source is used.
func NewNetwork(sizes []int, rnd erand.Rand) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("ffnn: need at least input and output sizes, got %v", sizes)
	}
	for i, sz := range sizes {
		if sz <= 0 {
			return nil, fmt.Errorf("ffnn: layer %d size must be > 0, got %d", i, sz)
		}
	}
	nt := &Network{}
	nt.Defaults()
	nt.Sizes = append([]int(nil), sizes...)
	nt.in = mat.NewVecDense(sizes[0], nil)
	nt.Layers = make([]*Layer, len(sizes)-1)
	for li := range nt.Layers {
		nt.Layers[li] = newLayer(sizes[li+1], sizes[li])
	}
	if rnd == nil {
		rnd = erand.NewSysRand(1)
	}
	nt.InitWts(rnd)
	return nt, nil
}

func (nt *Network) Defaults() {
	nt.ActFun = Sigmoid
	nt.WtInit.Dist = erand.Uniform
	nt.WtInit.Mean = 0
	nt.WtInit.Var = 1
}

// InitWts draws all weights and biases, unit by unit: the unit's
// weights in sending order, then its bias.
func (nt *Network) InitWts(rnd erand.Rand) {
	for _, ly := range nt.Layers {
		nr, ns := ly.Wts.Dims()
		for ri := 0; ri < nr; ri++ {
			for si := 0; si < ns; si++ {
				ly.Wts.Set(ri, si, nt.WtInit.Gen(-1, rnd))
			}
			ly.Bias.SetVec(ri, nt.WtInit.Gen(-1, rnd))
		}
	}
}

// NOutputs returns the number of units in the output layer
func (nt *Network) NOutputs() int {
	return nt.Sizes[len(nt.Sizes)-1]
}

// setInput copies inputs into the input vector: missing values are 0
// and values beyond the input width are ignored.
func (nt *Network) setInput(inputs []float64) {
	for i := 0; i < nt.in.Len(); i++ {
		v := 0.0
		if i < len(inputs) {
			v = inputs[i]
		}
		nt.in.SetVec(i, v)
	}
}

func (nt *Network) forward(inputs []float64) {
	nt.setInput(inputs)
	var prv mat.Vector = nt.in
	for _, ly := range nt.Layers {
		ly.Net.MulVec(ly.Wts, prv)
		ly.Net.AddVec(ly.Net, ly.Bias)
		for i := 0; i < ly.Net.Len(); i++ {
			ly.Act.SetVec(i, nt.ActFun.Act(ly.Net.AtVec(i)))
		}
		prv = ly.Act
	}
}

// Forward computes activations for all layers and returns a copy of
// the output layer activations.
func (nt *Network) Forward(inputs []float64) []float64 {
	nt.forward(inputs)
	out := nt.Layers[len(nt.Layers)-1].Act
	res := make([]float64, out.Len())
	for i := range res {
		res[i] = out.AtVec(i)
	}
	return res
}

// Backprop runs a forward pass on inputs and then updates all weights and
// biases by gradient descent on the squared error relative to targets.
// All deltas are computed from the pre-update weights.
func (nt *Network) Backprop(inputs, targets []float64, lrate float64) error {
	nl := len(nt.Layers)
	out := nt.Layers[nl-1]
	if len(targets) != out.Act.Len() {
		return fmt.Errorf("ffnn: Backprop: %d targets for %d outputs", len(targets), out.Act.Len())
	}
	nt.forward(inputs)
	for i := range targets {
		o := out.Act.AtVec(i)
		out.Delta.SetVec(i, (targets[i]-o)*nt.ActFun.Deriv(o))
	}
	for li := nl - 2; li >= 0; li-- {
		ly := nt.Layers[li]
		nxt := nt.Layers[li+1]
		ly.Err.MulVec(nxt.Wts.T(), nxt.Delta)
		for i := 0; i < ly.Err.Len(); i++ {
			ly.Delta.SetVec(i, ly.Err.AtVec(i)*nt.ActFun.Deriv(ly.Act.AtVec(i)))
		}
	}
	var prv mat.Vector = nt.in
	for _, ly := range nt.Layers {
		ly.Wts.RankOne(ly.Wts, lrate, ly.Delta, prv)
		ly.Bias.AddScaledVec(ly.Bias, lrate, ly.Delta)
		prv = ly.Act
	}
	return nil
}

// TrainHebbian runs a forward pass on inputs and then strengthens each
// weight in proportion to the product of receiving and sending activation,
// and each bias in proportion to the receiving activation.  There is no
// normalization, so repeated training grows weights without bound.
func (nt *Network) TrainHebbian(inputs []float64, lrate float64) {
	nt.forward(inputs)
	var prv mat.Vector = nt.in
	for _, ly := range nt.Layers {
		ly.Wts.RankOne(ly.Wts, lrate, ly.Act, prv)
		ly.Bias.AddScaledVec(ly.Bias, lrate, ly.Act)
		prv = ly.Act
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Neuron

// ffnn.Neuron is a single stand-alone sigmoid unit.
type Neuron struct {
	Wts  []float64
	Bias float64
	Act  float64
}

// NewNeuron returns a neuron with nIn weights and a bias drawn uniformly from [-1, 1).
func NewNeuron(nIn int, rnd erand.Rand) *Neuron {
	if rnd == nil {
		rnd = erand.NewSysRand(1)
	}
	nr := &Neuron{Wts: make([]float64, nIn)}
	for i := range nr.Wts {
		nr.Wts[i] = erand.UniformMeanRange(0, 1, -1, rnd)
	}
	nr.Bias = erand.UniformMeanRange(0, 1, -1, rnd)
	return nr
}

// Activate computes the sigmoid of the weighted input sum plus bias.
// Extra inputs or weights beyond the shorter of the two are ignored.
func (nr *Neuron) Activate(inputs []float64) float64 {
	n := min(len(inputs), len(nr.Wts))
	nr.Act = Sigmoid.Act(floats.Dot(inputs[:n], nr.Wts[:n]) + nr.Bias)
	return nr.Act
}
