// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestIntegrateLeak(t *testing.T) {
	lp := Params{}
	lp.Defaults()
	nrn := &Neuron{}
	lp.InitActs(nrn)

	// constant sub-threshold drive: Vm += dt * (-Vm/20 + 0.02)
	corvm := []float32{0.02, 0.039, 0.05705, 0.07419750, 0.09048763}
	for i := range corvm {
		lp.Integrate(nrn, 0.02, 1, float32(i+1))
		dif := math32.Abs(nrn.Vm - corvm[i])
		if dif > difTol {
			t.Errorf("Vm err: idx: %v, vm: %v, corvm: %v, dif: %v\n", i, nrn.Vm, corvm[i], dif)
		}
		if nrn.Spiked {
			t.Errorf("unexpected spike at idx: %v", i)
		}
	}
	if nrn.LastSpike != -1 {
		t.Errorf("LastSpike should remain -1, got: %v", nrn.LastSpike)
	}
}

func TestIntegrateSpike(t *testing.T) {
	lp := Params{}
	lp.Defaults()
	nrn := &Neuron{}
	lp.InitActs(nrn)

	lp.Integrate(nrn, 1.2, 1, 1)
	if !nrn.Spiked {
		t.Fatalf("expected spike with Vm 0 + 1.2 >= 1")
	}
	if nrn.Vm != lp.VmR || nrn.ISI != 0 || nrn.LastSpike != 1 {
		t.Errorf("post-spike state wrong: %+v", *nrn)
	}
}

func TestRefractory(t *testing.T) {
	lp := Params{}
	lp.Defaults()
	lp.VmR = -0.25
	nrn := &Neuron{}
	lp.InitActs(nrn)

	lp.Integrate(nrn, 5, 1, 1)
	if !nrn.Spiked {
		t.Fatalf("expected initial spike")
	}
	// ISI goes 1, 2, 3, 4 < Refract = 5: clamped regardless of drive
	for i, inet := range []float32{100, -100, 1e6, 3} {
		lp.Integrate(nrn, inet, 1, float32(i+2))
		if nrn.Spiked {
			t.Errorf("refractory neuron spiked at step: %v", i)
		}
		if nrn.Vm != lp.VmR {
			t.Errorf("refractory Vm: %v != VmR: %v", nrn.Vm, lp.VmR)
		}
	}
	// ISI = 5: integration resumes from VmR
	lp.Integrate(nrn, 5, 1, 6)
	if !nrn.Spiked || nrn.LastSpike != 6 {
		t.Errorf("expected spike after refractory window, got: %+v", *nrn)
	}
}

func TestEventuallySpikes(t *testing.T) {
	lp := Params{}
	lp.Defaults()
	nrn := &Neuron{}
	lp.InitActs(nrn)

	// steady state Vm = Tau * I = 2 > Thr, so threshold is crossed well within Tau steps
	const inet = 0.1
	n := 0
	for ; n < int(lp.Tau); n++ {
		lp.Integrate(nrn, inet, 1, float32(n+1))
		if nrn.Spiked {
			break
		}
	}
	if !nrn.Spiked {
		t.Errorf("neuron with steady-state %v did not spike within %v steps", lp.Tau*inet, lp.Tau)
	}
}

func TestValidate(t *testing.T) {
	lp := Params{}
	lp.Defaults()
	if err := lp.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	for _, tau := range []float32{0, -1, math32.NaN()} {
		bad := lp
		bad.Tau = tau
		bad.Update()
		err := bad.Validate()
		if !errors.Is(err, ErrInvalidParams) {
			t.Errorf("Tau %v should be rejected with ErrInvalidParams, got: %v", tau, err)
		}
	}
	bad := lp
	bad.Refract = -1
	if err := bad.Validate(); err == nil {
		t.Errorf("negative Refract should be rejected")
	}
}

func TestNeuronVars(t *testing.T) {
	lp := Params{}
	lp.Defaults()
	nrn := &Neuron{}
	lp.InitActs(nrn)
	lp.Integrate(nrn, 2, 1, 3)

	for i, want := range []float32{0, 0, 3, 1} {
		got, err := nrn.VarByName(NeuronVars[i])
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("var %v: got %v, want %v", NeuronVars[i], got, want)
		}
	}
	if _, err := nrn.VarByName("Ge"); err == nil {
		t.Errorf("expected error for unknown variable")
	}
}
