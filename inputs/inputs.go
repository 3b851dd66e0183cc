// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package inputs provides the input current generators that drive the AdEx
integrator: deterministic sinusoidal and sawtooth currents, an
Ornstein-Uhlenbeck conductance noise process, and a double-exponential
(exp2syn) synaptic waveform kicked at the stimulus frequency.

All generators expose the same Source capability: an instantaneous
current-at-time function plus a per-step state advance (a no-op for the
deterministic variants).  Conductance-based variants need the current
membrane potential for the reversal-potential driving force, so Current
takes vm as well as t.
*/
package inputs

import (
	"github.com/goki/ki/kit"
)

// Source is the polymorphic input current capability consumed by the
// integrator.  Current returns the instantaneous input current in pA at time
// t (ms) given membrane potential vm (mV); it must not mutate state.
// Advance updates any internal stochastic state from t to t+dt, called once
// per integration step after Current.
type Source interface {

	// Init (re)initializes internal state for a fresh trial.
	Init()

	// Current returns the instantaneous current in pA at time t in ms,
	// given the membrane potential vm in mV.
	Current(t, vm float32) float32

	// Advance updates internal state from t to t + dt (ms).
	Advance(t, dt float32)
}

// InputType is the type of input generator driving a run.
type InputType int

//go:generate stringer -type=InputType

var KiT_InputType = kit.Enums.AddEnum(InputTypeN, kit.NotBitFlag, nil)

func (ev InputType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *InputType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// SineInput is the deterministic sinusoidal current.
	SineInput InputType = iota

	// SawInput is the deterministic sawtooth current.
	SawInput

	// OUInput is the Ornstein-Uhlenbeck conductance noise process.
	OUInput

	// Exp2SynInput is the double-exponential synaptic waveform kicked at
	// the stimulus frequency.
	Exp2SynInput

	InputTypeN
)
