// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ffnn

import (
	"math"

	"github.com/goki/ki/kit"
)

// ActFuns are the rate-code activation functions available to a Network
type ActFuns int32

//go:generate stringer -type=ActFuns

var KiT_ActFuns = kit.Enums.AddEnum(ActFunsN, kit.NotBitFlag, nil)

func (ev ActFuns) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ActFuns) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The activation functions
const (
	// Sigmoid is the logistic function 1 / (1 + exp(-x)), range (0, 1)
	Sigmoid ActFuns = iota

	// Tanh is the hyperbolic tangent, range (-1, 1)
	Tanh

	ActFunsN
)

// Act computes the activation for net input x
func (af ActFuns) Act(x float64) float64 {
	switch af {
	case Tanh:
		return math.Tanh(x)
	default:
		return 1 / (1 + math.Exp(-x))
	}
}

// Deriv returns the derivative of the activation function
// expressed in terms of its output y = Act(x)
func (af ActFuns) Deriv(y float64) float64 {
	switch af {
	case Tanh:
		return 1 - y*y
	default:
		return y * (1 - y)
	}
}
