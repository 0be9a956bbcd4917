// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spiking

import (
	"fmt"
	"log/slog"

	"github.com/emer/emergent/erand"
)

// SpikeEvent is one externally injected spike awaiting delivery.
// Time is recorded as given by the caller and is not checked against
// the network clock or used for scheduling.
type SpikeEvent struct {
	Idx  int
	Time float32
}

// Emulator drives a Network from discrete spike events instead of
// continuous input currents.  Events injected between steps are all
// delivered on the next StepEvent.
type Emulator struct {

	// how events are converted to input current
	Inject InjectParams

	// logger for dropped events, defaults to slog.Default() -- nil disables logging
	Log *slog.Logger

	net     *Network
	pending []SpikeEvent
	inputs  []float32
}

// NewEmulator returns an emulator that takes exclusive ownership of net.
func NewEmulator(net *Network) (*Emulator, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: Emulator needs a Network, got nil", ErrInvalidParams)
	}
	em := &Emulator{net: net, Log: slog.Default()}
	em.Inject.Defaults()
	em.inputs = make([]float32, net.NNeurons())
	return em, nil
}

// NewEmulatorNet builds a new Network with NewNetwork and wraps it,
// using pars.Inject for the injection current.
func NewEmulatorNet(nNeurons int, pars *NetParams, rnd erand.Rand) (*Emulator, error) {
	net, err := NewNetwork(nNeurons, pars, rnd)
	if err != nil {
		return nil, err
	}
	em, err := NewEmulator(net)
	if err != nil {
		return nil, err
	}
	if pars != nil {
		em.Inject = pars.Inject
	}
	return em, nil
}

// Network returns the network driven by this emulator.
func (em *Emulator) Network() *Network {
	return em.net
}

// InjectSpike queues a spike event for neuron idx.  Neither idx nor time
// is validated here: out-of-range events are dropped by StepEvent.
func (em *Emulator) InjectSpike(idx int, time float32) {
	em.pending = append(em.pending, SpikeEvent{Idx: idx, Time: time})
}

// Pending returns the number of queued events.
func (em *Emulator) Pending() int {
	return len(em.pending)
}

// StepEvent converts all pending events into input current, drains the
// queue, and advances the network by dt.  Returns the network's spikes.
// If dt is not > 0 the step is skipped and events stay queued.
func (em *Emulator) StepEvent(dt float32) []bool {
	if !(dt > 0) {
		return em.net.Spikes()
	}
	n := len(em.inputs)
	for i := range em.inputs {
		em.inputs[i] = 0
	}
	for _, ev := range em.pending {
		if ev.Idx < 0 || ev.Idx >= n {
			if em.Log != nil {
				em.Log.Debug("dropping out-of-range spike event", "idx", ev.Idx, "time", ev.Time, "neurons", n)
			}
			continue
		}
		em.inputs[ev.Idx] += em.Inject.Current
	}
	em.pending = em.pending[:0]
	return em.net.Step(em.inputs, dt)
}
