// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn is the overall repository for small biologically-inspired neural
models implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* lif: the Leaky Integrate-and-Fire point neuron, with a hard refractory
period and discrete spikes.

* stdp: pair-based spike-timing-dependent plasticity, with exponential
potentiation and depression windows and clamped weights.

* spiking: the core discrete-time simulation: a fully-connected recurrent
network of lif neurons with one-step synaptic delay and stdp applied on every
step, plus an Emulator that converts injected spike events into input current.

* ffnn: a small feed-forward rate-code network trainable by backpropagation
or Hebbian learning, independent of the spiking network.

* examples: these compile into runnable programs and provide the starting
point for your own simulations.
*/
package snn
