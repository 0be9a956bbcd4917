// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spiking

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
)

// makeTestPair returns an emulator and a bare network built identically
func makeTestPair(t *testing.T, n int) (*Emulator, *Network) {
	t.Helper()
	em, err := NewEmulatorNet(n, nil, erand.NewSysRand(3))
	if err != nil {
		t.Fatal(err)
	}
	net, err := NewNetwork(n, nil, erand.NewSysRand(3))
	if err != nil {
		t.Fatal(err)
	}
	return em, net
}

func cmprNets(a, b *Network, msg string, t *testing.T) {
	t.Helper()
	CmprSpikes(a.Spikes(), b.Spikes(), msg+" spikes", t)
	CmprFloats(a.Wts, b.Wts, msg+" Wts", t)
	avm, _ := a.NeuronValues("Vm")
	bvm, _ := b.NeuronValues("Vm")
	CmprFloats(avm, bvm, msg+" Vm", t)
	if a.Time != b.Time {
		t.Errorf("%v time: %+v != %+v", msg, a.Time, b.Time)
	}
}

func TestStepEventEmpty(t *testing.T) {
	em, net := makeTestPair(t, 4)
	zeros := make([]float32, 4)
	for cyc := 0; cyc < 5; cyc++ {
		es := em.StepEvent(1)
		ns := net.Step(zeros, 1)
		CmprSpikes(es, ns, "empty queue", t)
	}
	cmprNets(em.Network(), net, "empty queue", t)
}

func TestInjectSpike(t *testing.T) {
	em, net := makeTestPair(t, 3)
	em.InjectSpike(0, 0.5)
	if em.Pending() != 1 {
		t.Errorf("Pending: %v", em.Pending())
	}
	es := em.StepEvent(1)
	ns := net.Step([]float32{1, 0, 0}, 1)
	CmprSpikes(es, ns, "inject vs direct", t)
	CmprSpikes(es, []bool{true, false, false}, "inject", t)
	cmprNets(em.Network(), net, "inject vs direct", t)
	if em.Pending() != 0 {
		t.Errorf("queue not drained: %v", em.Pending())
	}
}

func TestNoReplay(t *testing.T) {
	em, net := makeTestPair(t, 3)
	em.InjectSpike(1, 0)
	for cyc, in := range [][]float32{{0, 1, 0}, {0, 0, 0}, {0, 0, 0}} {
		es := em.StepEvent(1)
		ns := net.Step(in, 1)
		CmprSpikes(es, ns, "no replay", t)
		if cyc > 0 && es[1] {
			t.Errorf("stale event replayed on step %d", cyc)
		}
	}
	cmprNets(em.Network(), net, "no replay", t)
}

func TestOutOfRangeDropped(t *testing.T) {
	em, net := makeTestPair(t, 3)
	em.InjectSpike(-1, 0)
	em.InjectSpike(3, 0)
	em.InjectSpike(1000, 2)
	es := em.StepEvent(1)
	ns := net.Step(nil, 1)
	CmprSpikes(es, ns, "out of range", t)
	if em.Pending() != 0 {
		t.Errorf("out of range events must still be drained: %v", em.Pending())
	}
	cmprNets(em.Network(), net, "out of range", t)
}

func TestInjectAccumulates(t *testing.T) {
	em, _ := makeTestPair(t, 2)
	lp := em.Network().NeurPars[0]
	lp.Thr = 1.5
	for i := 0; i < 2; i++ {
		if err := em.Network().SetNeuronParams(i, lp); err != nil {
			t.Fatal(err)
		}
	}
	for i := range em.Network().Wts {
		em.Network().Wts[i] = 0
	}
	em.InjectSpike(0, 0)
	em.InjectSpike(0, 0)
	em.InjectSpike(1, 0)
	spks := em.StepEvent(1)
	CmprSpikes(spks, []bool{true, false}, "accumulated injection", t)
	vm, _ := em.Network().NeuronValues("Vm")
	CmprFloats(vm, []float32{lp.VmR, 1}, "accumulated Vm", t)
}

func TestLateEventsDelivered(t *testing.T) {
	em, net := makeTestPair(t, 2)
	em.StepEvent(1)
	net.Step(nil, 1)
	em.InjectSpike(0, -5) // in the past relative to the clock
	em.InjectSpike(0, 50) // in the future
	es := em.StepEvent(1)
	ns := net.Step([]float32{2, 0}, 1)
	CmprSpikes(es, ns, "event time ignored", t)
	cmprNets(em.Network(), net, "event time ignored", t)
}

func TestNewEmulatorNil(t *testing.T) {
	em, err := NewEmulator(nil)
	if em != nil || !errors.Is(err, ErrInvalidParams) {
		t.Errorf("nil network should be rejected: %v, %v", em, err)
	}
}

func TestInjectCurrentValidated(t *testing.T) {
	pars := &NetParams{}
	pars.Neuron.Defaults()
	pars.STDP.Defaults()
	pars.WtInit.Defaults()
	if _, err := NewEmulatorNet(2, pars, nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("zero Inject.Current should be rejected: %v", err)
	}
	for _, cur := range []float32{-1, math32.NaN()} {
		pars.Inject.Current = cur
		if err := pars.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("Inject.Current %v should be rejected: %v", cur, err)
		}
	}
	pars.Inject.Defaults()
	if _, err := NewEmulatorNet(2, pars, nil); err != nil {
		t.Errorf("default Inject should be valid: %v", err)
	}
}

func TestStepEventBadDt(t *testing.T) {
	em, _ := makeTestPair(t, 2)
	em.InjectSpike(0, 0)
	spks := em.StepEvent(0)
	CmprSpikes(spks, []bool{false, false}, "dt = 0", t)
	if em.Pending() != 1 || em.Network().Time.Cycle != 0 {
		t.Errorf("dt = 0 must not step or drain: pending %d, cycle %d", em.Pending(), em.Network().Time.Cycle)
	}
	spks = em.StepEvent(1)
	CmprSpikes(spks, []bool{true, false}, "delivered after skip", t)
	if em.Pending() != 0 {
		t.Errorf("queue not drained: %v", em.Pending())
	}
}
