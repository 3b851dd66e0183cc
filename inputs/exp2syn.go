// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inputs

import (
	"github.com/goki/mat32"
)

// Exp2Syn is the double-exponential (biexponential) synaptic waveform input,
// with separate rise and decay time constants and the standard normalization
// factor so the waveform peaks at the X kick amplitude:
//
//	dG/dt = (TauFact * X - G) / RiseTau
//	dX/dt = -X / DecayTau
//	TauFact = (DecayTau / RiseTau) ^ (RiseTau / (DecayTau - RiseTau))
//
// X is kicked by 1 every stimulus period 1/F starting at Onset.  In current
// mode I(t) = DC + A * G; in conductance mode the waveform gates an
// excitatory conductance scaled down by the stimulus frequency,
// I(t) = DC - (A/F) * G * (Vm - Ee), as in the reference conductance
// stimulus.
type Exp2Syn struct {
	DC float32 `desc:"DC offset current in pA"`
	A  float32 `desc:"waveform amplitude: pA in current mode, nS in conductance mode"`
	F  float32 `desc:"stimulus kick frequency in Hz"`

	RiseTau  float32 `def:"0.5" min:"0" desc:"rise time constant in ms -- must differ from DecayTau"`
	DecayTau float32 `def:"5" min:"0" desc:"decay time constant in ms -- must differ from RiseTau"`
	Onset    float32 `def:"10" desc:"time of first kick in ms"`

	Conduct bool    `desc:"conductance mode: waveform gates an excitatory conductance instead of injecting current directly"`
	Ee      float32 `def:"0" desc:"excitatory reversal potential in mV, used in conductance mode"`

	TauFact float32 `view:"-" json:"-" xml:"-" desc:"peak normalization factor, computed from the taus"`

	G        float32 `inactive:"+" desc:"current waveform value"`
	X        float32 `inactive:"+" desc:"rise driving variable"`
	NextKick float32 `inactive:"+" desc:"time of next kick in ms"`
}

func (sy *Exp2Syn) Defaults() {
	sy.RiseTau = 0.5
	sy.DecayTau = 5
	sy.Onset = 10
	sy.Ee = 0
	sy.Update()
}

func (sy *Exp2Syn) Update() {
	sy.TauFact = mat32.Pow(sy.DecayTau/sy.RiseTau, sy.RiseTau/(sy.DecayTau-sy.RiseTau))
}

func (sy *Exp2Syn) Init() {
	sy.Update()
	sy.G = 0
	sy.X = 0
	sy.NextKick = sy.Onset
}

func (sy *Exp2Syn) Current(t, vm float32) float32 {
	if sy.Conduct {
		if sy.F <= 0 {
			return sy.DC
		}
		return sy.DC - (sy.A/sy.F)*sy.G*(vm-sy.Ee)
	}
	return sy.DC + sy.A*sy.G
}

// Advance integrates the waveform one step and applies any kick whose time
// falls within (t, t+dt].
func (sy *Exp2Syn) Advance(t, dt float32) {
	if sy.F > 0 && t+dt >= sy.NextKick {
		sy.X += 1
		sy.NextKick += 1000 / sy.F
	}
	dG := (sy.TauFact*sy.X - sy.G) / sy.RiseTau
	dX := -sy.X / sy.DecayTau
	sy.G += dt * dG
	sy.X += dt * dX
}
