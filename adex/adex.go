// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package adex implements the adaptive exponential (AdEx) integrate-and-fire
neuron model under stochastic fixed-step (Euler-Maruyama) integration:

	dVm/dt = (-GL*(Vm-EL) + GL*DeltaT*exp((Vm-VT)/DeltaT) + I(t) - w) / C
	dw/dt  = (A*(Vm-EL) - w) / TauW

with an additive sqrt(Dt)*Sigma*xi voltage noise term per step, spike
detection at Thresh, reset to Reset, spike-triggered adaptation increment B,
and an absolute refractory hold.  Two optional currents extend I(t): the
M-type adaptation current -GAdapt*z*(Vm-EK) with its sigmoidally gated slow
activation z, and a mean-zero Ornstein-Uhlenbeck flux noise current.  The
adaptation variables and the flux current keep integrating during the
refractory hold, matching the reference Brian implementation where only Vm
is clamped.

The random generator is injected (erand.Rand), never global, so trials are
deterministic given their seed and safe to run in parallel.
*/
package adex

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/cnslab/adex/inputs"
	"github.com/cnslab/adex/spikes"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// IExp returns the exponential spike-initiation current in pA at the given
// membrane potential.  DeltaT = 0 disables the term (plain LIF dynamics).
func (p *Params) IExp(vm float32) float32 {
	if p.Mem.DeltaT == 0 {
		return 0
	}
	return p.Mem.GL * p.Mem.DeltaT * math32.Exp((vm-p.Mem.VT)/p.Mem.DeltaT)
}

// DVmDt returns the deterministic membrane potential derivative in mV/ms
// for the given state and input current.
func (p *Params) DVmDt(vm, w, iin float32) float32 {
	return (-p.Mem.GL*(vm-p.Mem.EL) + p.IExp(vm) + iin - w) / p.Mem.C
}

// DWDt returns the adaptation current derivative in pA/ms.
func (p *Params) DWDt(vm, w float32) float32 {
	return (p.Adapt.A*(vm-p.Mem.EL) - w) / p.Adapt.TauW
}

// ZInf returns the steady-state M-current gate activation at the given
// membrane potential: a sigmoid with half-activation at BetaZ and slope
// GammaZ.
func (p *Params) ZInf(vm float32) float32 {
	return 1 / (1 + math32.Exp((p.M.BetaZ-vm)/p.M.GammaZ))
}

// DZDt returns the M-current gate derivative in 1/ms.
func (p *Params) DZDt(vm, z float32) float32 {
	return (p.ZInf(vm) - z) / p.M.TauZ
}

// IM returns the M-type adaptation current in pA: an outward potassium
// current gated by z, 0 when GAdapt is 0.
func (p *Params) IM(vm, z float32) float32 {
	if p.M.GAdapt == 0 {
		return 0
	}
	return -p.M.GAdapt * z * (vm - p.M.EK)
}

// stepFlux advances the Ornstein-Uhlenbeck flux noise current one step,
// drawing one standard normal when SigmaFlux > 0.  The mean-zero decay runs
// regardless, so a disabled flux current relaxes back to 0.
func (p *Params) stepFlux(nrn *Neuron, rnd erand.Rand) {
	dt := p.Time.Dt
	nrn.IFlux -= dt * nrn.IFlux / p.Noise.TauFlux
	if p.Noise.SigmaFlux > 0 {
		xi := float32(rnd.NormFloat64(-1))
		nrn.IFlux += p.Noise.SigmaFlux * math32.Sqrt(2/p.Noise.TauFlux) * p.Time.SqrtDt * xi
	}
}

// Step advances the neuron by one Euler-Maruyama step of size Time.Dt under
// input current iin (pA), drawing any noise terms from rnd in a fixed order
// (membrane voltage noise, then flux current noise).  Returns true if a spike
// was detected this step.  During the refractory hold Vm stays clamped at
// Reset, no voltage noise is added, and spike detection is suppressed, but
// w, z, and the flux current keep integrating.
func (p *Params) Step(nrn *Neuron, iin float32, rnd erand.Rand) bool {
	dt := p.Time.Dt
	nrn.Iin = iin
	nrn.Spike = 0
	if nrn.RefracLeft > 0 {
		nrn.RefracLeft -= dt
		nrn.Vm = p.Mem.Reset
		nrn.Inet = 0
		nrn.W += dt * p.DWDt(nrn.Vm, nrn.W)
		nrn.Z += dt * p.DZDt(nrn.Vm, nrn.Z)
		p.stepFlux(nrn, rnd)
		return false
	}
	nrn.Inet = -p.Mem.GL*(nrn.Vm-p.Mem.EL) + p.IExp(nrn.Vm) + p.IM(nrn.Vm, nrn.Z) + iin + nrn.IFlux - nrn.W
	nwVm := nrn.Vm + dt*nrn.Inet/p.Mem.C
	if p.Noise.Sigma > 0 {
		nwVm += p.Time.SqrtDt * p.Noise.Sigma * float32(p.Noise.Gen(-1, rnd))
	}
	nrn.W += dt * p.DWDt(nrn.Vm, nrn.W)
	nrn.Z += dt * p.DZDt(nrn.Vm, nrn.Z)
	p.stepFlux(nrn, rnd)
	nrn.Vm = nwVm
	if nrn.Vm >= p.Mem.Thresh {
		nrn.Spike = 1
		nrn.Vm = p.Mem.Reset
		nrn.W += p.Adapt.B
		nrn.RefracLeft = p.Mem.Refrac
		return true
	}
	return false
}

// CheckState verifies the state is numerically sane after a step, returning
// ErrNumericDegeneracy identifying the step and time otherwise.
func (p *Params) CheckState(nrn *Neuron, step int) error {
	t := float64(step) * float64(p.Time.Dt)
	if math32.IsNaN(nrn.Vm) || math32.IsInf(nrn.Vm, 0) || math32.IsNaN(nrn.W) || math32.IsInf(nrn.W, 0) {
		return fmt.Errorf("%w: NaN/Inf state at step %d (t = %g ms): Vm = %g mV, W = %g pA",
			ErrNumericDegeneracy, step, t, nrn.Vm, nrn.W)
	}
	if nrn.Vm < p.VmRange.Min || nrn.Vm > p.VmRange.Max {
		return fmt.Errorf("%w: runaway potential at step %d (t = %g ms): Vm = %g mV outside [%g, %g]",
			ErrNumericDegeneracy, step, t, nrn.Vm, p.VmRange.Min, p.VmRange.Max)
	}
	return nil
}

// ConfigTraceTable configures dt with the simulation trace schema:
// Time (ms), Vm (mV), W (pA), I (pA), one row per integration step.
func ConfigTraceTable(dt *etable.Table) {
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Vm", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "W", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "I", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, 0)
}

// Run integrates one full trial: validates params, initializes the neuron and
// input source, steps through the fixed time grid in strictly increasing
// order, and returns the resulting spike train (times in ms).  The integrator
// and the input source draw from the same injected rnd stream in a fixed
// per-step order (the integrator's noise draws in Step, then the source's
// draws in Advance), so an ensemble is reproducible from its per-trial seeds.
// If trace is non-nil it is
// configured and filled with the per-step state for diagnostic inspection.
func Run(p *Params, src inputs.Source, rnd erand.Rand, trace *etable.Table) (spikes.Train, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	nsteps := p.Time.NSteps()
	nrn := &Neuron{}
	nrn.Init(p)
	src.Init()
	if trace != nil {
		ConfigTraceTable(trace)
		trace.SetNumRows(nsteps)
	}
	var train spikes.Train
	dt := float64(p.Time.Dt)
	for step := 0; step < nsteps; step++ {
		t := float64(step) * dt
		iin := src.Current(float32(t), nrn.Vm)
		spiked := p.Step(nrn, iin, rnd)
		src.Advance(float32(t), p.Time.Dt)
		if trace != nil {
			trace.SetCellFloat("Time", step, t)
			trace.SetCellFloat("Vm", step, float64(nrn.Vm))
			trace.SetCellFloat("W", step, float64(nrn.W))
			trace.SetCellFloat("I", step, float64(nrn.Iin))
		}
		if spiked {
			train = append(train, float64(step+1)*dt)
		}
		if err := p.CheckState(nrn, step); err != nil {
			return nil, err
		}
	}
	if err := train.Validate(float64(p.Mem.Refrac)); err != nil {
		return nil, err
	}
	return train, nil
}
