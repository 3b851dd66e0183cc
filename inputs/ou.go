// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inputs

import (
	"github.com/emer/emergent/v2/erand"
	"github.com/goki/mat32"
)

// OUConductance is the stochastic synaptic input: independent
// Ornstein-Uhlenbeck excitatory and inhibitory conductance processes
//
//	dg = (Mu - g) / Tau * dt + Sigma * sqrt(2/Tau) * sqrt(dt) * xi
//
// each rectified at 0, driving current through the reversal potentials:
//
//	I(t) = DC - ge*(Vm - Ee) - gi*(Vm - Ei)
//
// The generator draws from its own injected Rnd stream; the ensemble runner
// hands it the same per-trial stream as the integrator, with a fixed
// per-step draw order, so trials are reproducible from their seeds.
type OUConductance struct {
	DC float32 `desc:"DC offset current in pA"`
	Ee float32 `def:"0" desc:"excitatory reversal potential in mV"`
	Ei float32 `def:"-75" desc:"inhibitory reversal potential in mV"`

	MuE    float32 `desc:"mean excitatory conductance in nS"`
	SigmaE float32 `desc:"excitatory conductance fluctuation in nS"`
	TauE   float32 `def:"2.7" min:"0" desc:"excitatory conductance time constant in ms"`

	MuI    float32 `desc:"mean inhibitory conductance in nS"`
	SigmaI float32 `desc:"inhibitory conductance fluctuation in nS"`
	TauI   float32 `def:"10.5" min:"0" desc:"inhibitory conductance time constant in ms"`

	GE float32 `inactive:"+" desc:"current excitatory conductance state in nS (unrectified)"`
	GI float32 `inactive:"+" desc:"current inhibitory conductance state in nS (unrectified)"`

	Rnd erand.Rand `view:"-" json:"-" xml:"-" desc:"injected random stream for the per-step noise draws"`
}

func (ou *OUConductance) Defaults() {
	ou.Ee = 0
	ou.Ei = -75
	ou.MuE = 1.2
	ou.SigmaE = 0.6
	ou.TauE = 2.7
	ou.MuI = 2.4
	ou.SigmaI = 1.2
	ou.TauI = 10.5
}

// Init resets both conductances to their means.
func (ou *OUConductance) Init() {
	ou.GE = ou.MuE
	ou.GI = ou.MuI
}

// Current returns the conductance-driven current; negative conductance
// excursions contribute nothing (rectification, as in the reference model).
func (ou *OUConductance) Current(t, vm float32) float32 {
	ge := mat32.Max(ou.GE, 0)
	gi := mat32.Max(ou.GI, 0)
	return ou.DC - ge*(vm-ou.Ee) - gi*(vm-ou.Ei)
}

// Advance updates both OU processes by one step of size dt, drawing one
// standard normal per process from the injected stream (excitatory first).
func (ou *OUConductance) Advance(t, dt float32) {
	sqrtDt := mat32.Sqrt(dt)
	if ou.TauE > 0 {
		xi := float32(ou.Rnd.NormFloat64(-1))
		ou.GE += dt*(ou.MuE-ou.GE)/ou.TauE + ou.SigmaE*mat32.Sqrt(2/ou.TauE)*sqrtDt*xi
	}
	if ou.TauI > 0 {
		xi := float32(ou.Rnd.NormFloat64(-1))
		ou.GI += dt*(ou.MuI-ou.GI)/ou.TauI + ou.SigmaI*mat32.Sqrt(2/ou.TauI)*sqrtDt*xi
	}
}
