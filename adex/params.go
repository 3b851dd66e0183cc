// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adex

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/minmax"
)

// Units are mV, ms, pA, nS, pF throughout, which are mutually consistent:
// nS * mV = pA, and pA / pF = mV / ms.

var (
	// ErrInvalidParameter indicates a malformed or physically nonsensical
	// model / configuration value, detected eagerly by Validate before a run.
	ErrInvalidParameter = errors.New("adex: invalid parameter")

	// ErrNumericDegeneracy indicates NaN / Inf or runaway state produced
	// during integration -- the run is aborted at the offending step.
	ErrNumericDegeneracy = errors.New("adex: numeric degeneracy")
)

// MemParams are the membrane and spike-mechanism parameters for the AdEx model.
// Defaults are the standard Brette & Gerstner (2005) regular-spiking values.
type MemParams struct {
	C      float32 `def:"281" min:"0" desc:"membrane capacitance in pF"`
	GL     float32 `def:"30" min:"0" desc:"leak conductance in nS"`
	EL     float32 `def:"-70.6" desc:"leak reversal (resting) potential in mV"`
	VT     float32 `def:"-50.4" desc:"exponential spike-initiation threshold in mV -- where the exponential term takes off"`
	DeltaT float32 `def:"2" min:"0" desc:"slope factor of the exponential spike-initiation term in mV -- 0 disables the term, reducing the model to leaky integrate-and-fire"`
	Thresh float32 `def:"-50" desc:"spike detection threshold in mV -- crossing this records a spike and triggers reset"`
	Reset  float32 `def:"-70" desc:"post-spike reset potential in mV -- must be below Thresh"`
	Refrac float32 `def:"2" min:"0" desc:"absolute refractory period in ms -- Vm is held at Reset and spike detection is suppressed"`
}

func (mp *MemParams) Defaults() {
	mp.C = 281
	mp.GL = 30
	mp.EL = -70.6
	mp.VT = -50.4
	mp.DeltaT = 2
	mp.Thresh = -50
	mp.Reset = -70
	mp.Refrac = 2
}

func (mp *MemParams) Update() {
}

// AdaptParams are the adaptation-current (w) parameters.
type AdaptParams struct {
	A    float32 `def:"4" desc:"subthreshold adaptation coupling in nS -- drives w toward A * (Vm - EL)"`
	B    float32 `def:"80.5" desc:"spike-triggered adaptation increment in pA -- added to w at each spike"`
	TauW float32 `def:"144" min:"0" desc:"adaptation time constant in ms"`
}

func (ap *AdaptParams) Defaults() {
	ap.A = 4
	ap.B = 80.5
	ap.TauW = 144
}

func (ap *AdaptParams) Update() {
}

// MParams are the M-type (muscarinic potassium) adaptation current parameters:
// an outward current -GAdapt * z * (Vm - EK) gated by the slow sigmoidal
// activation variable z, integrated alongside w.  GAdapt = 0 (the default)
// disables the current entirely.
type MParams struct {
	GAdapt float32 `def:"0" min:"0" desc:"M-current maximal conductance in nS -- 0 disables"`
	EK     float32 `def:"-90" desc:"potassium reversal potential in mV"`
	BetaZ  float32 `def:"-45" desc:"half-activation potential of the z gate in mV"`
	GammaZ float32 `def:"5" min:"0" desc:"activation slope of the z gate in mV"`
	TauZ   float32 `def:"100" min:"0" desc:"z gate time constant in ms"`
}

func (mp *MParams) Defaults() {
	mp.GAdapt = 0
	mp.EK = -90
	mp.BetaZ = -45
	mp.GammaZ = 5
	mp.TauZ = 100
}

func (mp *MParams) Update() {
}

// NoiseParams control the per-step stochastic term of the Euler-Maruyama
// update: Vm += sqrt(Dt) * Sigma * xi with xi drawn fresh each step from the
// embedded distribution (standard Gaussian by default).  The generator itself
// is injected into the run, never global, so trials are reproducible and
// independent given their seeds.
type NoiseParams struct {
	erand.RndParams
	Sigma float32 `min:"0" desc:"voltage noise intensity in mV / sqrt(ms) -- 0 disables the stochastic term"`

	SigmaFlux float32 `def:"0" min:"0" desc:"Ornstein-Uhlenbeck current noise intensity in pA -- 0 disables the flux current"`
	TauFlux   float32 `def:"10" min:"0" desc:"flux current time constant in ms"`
}

func (np *NoiseParams) Defaults() {
	np.Sigma = 0
	np.SigmaFlux = 0
	np.TauFlux = 10
	np.Dist = erand.Gaussian
	np.Mean = 0
	np.Var = 1
}

func (np *NoiseParams) Update() {
}

// TimeParams fix the integration grid.
type TimeParams struct {
	Dt  float32 `def:"0.01" min:"0" desc:"integration step size in ms -- 0.01 ms = 10 microseconds"`
	Dur float32 `def:"1000" min:"0" desc:"total simulation duration in ms"`

	SqrtDt float32 `view:"-" json:"-" xml:"-" desc:"sqrt(Dt) scaling for the noise term"`
}

func (tp *TimeParams) Defaults() {
	tp.Dt = 0.01
	tp.Dur = 1000
	tp.Update()
}

func (tp *TimeParams) Update() {
	tp.SqrtDt = math32.Sqrt(tp.Dt)
}

// NSteps returns the number of integration steps in Dur.
func (tp *TimeParams) NSteps() int {
	return int(math32.Round(tp.Dur / tp.Dt))
}

// Params aggregates all AdEx model parameters for one simulation run.
// Immutable during a run: call Defaults, adjust, then Update and Validate
// before running.
type Params struct {
	Mem     MemParams   `view:"inline" desc:"membrane and spike mechanism parameters"`
	Adapt   AdaptParams `view:"inline" desc:"adaptation current parameters"`
	M       MParams     `view:"inline" desc:"M-type adaptation current parameters"`
	Noise   NoiseParams `view:"inline" desc:"stochastic integration noise"`
	Time    TimeParams  `view:"inline" desc:"integration step and duration"`
	VmRange minmax.F32  `view:"inline" desc:"sanity bounds on Vm in mV -- leaving this range aborts the run as numeric degeneracy (runaway potential)"`
}

func (p *Params) Defaults() {
	p.Mem.Defaults()
	p.Adapt.Defaults()
	p.M.Defaults()
	p.Noise.Defaults()
	p.Time.Defaults()
	p.VmRange.Set(-150, 50)
	p.Update()
}

// Update must be called after any changes to parameters.
func (p *Params) Update() {
	p.Mem.Update()
	p.Adapt.Update()
	p.M.Update()
	p.Noise.Update()
	p.Time.Update()
}

// Validate checks for malformed or physically nonsensical values.
// All failures are detected here, eagerly, never mid-run.
func (p *Params) Validate() error {
	if p.Mem.C <= 0 {
		return fmt.Errorf("%w: membrane capacitance C = %g pF, must be > 0", ErrInvalidParameter, p.Mem.C)
	}
	if p.Mem.GL <= 0 {
		return fmt.Errorf("%w: leak conductance GL = %g nS, must be > 0", ErrInvalidParameter, p.Mem.GL)
	}
	if p.Mem.DeltaT < 0 {
		return fmt.Errorf("%w: slope factor DeltaT = %g mV, must be >= 0", ErrInvalidParameter, p.Mem.DeltaT)
	}
	if p.Mem.Thresh <= p.Mem.Reset {
		return fmt.Errorf("%w: spike threshold %g mV <= reset %g mV", ErrInvalidParameter, p.Mem.Thresh, p.Mem.Reset)
	}
	if p.Mem.Refrac < 0 {
		return fmt.Errorf("%w: refractory period = %g ms, must be >= 0", ErrInvalidParameter, p.Mem.Refrac)
	}
	if p.Adapt.TauW <= 0 {
		return fmt.Errorf("%w: adaptation time constant TauW = %g ms, must be > 0", ErrInvalidParameter, p.Adapt.TauW)
	}
	if p.M.GAdapt < 0 {
		return fmt.Errorf("%w: M-current conductance GAdapt = %g nS, must be >= 0", ErrInvalidParameter, p.M.GAdapt)
	}
	if p.M.GammaZ <= 0 {
		return fmt.Errorf("%w: z gate slope GammaZ = %g mV, must be > 0", ErrInvalidParameter, p.M.GammaZ)
	}
	if p.M.TauZ <= 0 {
		return fmt.Errorf("%w: z gate time constant TauZ = %g ms, must be > 0", ErrInvalidParameter, p.M.TauZ)
	}
	if p.Noise.Sigma < 0 {
		return fmt.Errorf("%w: noise intensity Sigma = %g, must be >= 0", ErrInvalidParameter, p.Noise.Sigma)
	}
	if p.Noise.SigmaFlux < 0 {
		return fmt.Errorf("%w: flux noise intensity SigmaFlux = %g pA, must be >= 0", ErrInvalidParameter, p.Noise.SigmaFlux)
	}
	if p.Noise.TauFlux <= 0 {
		return fmt.Errorf("%w: flux time constant TauFlux = %g ms, must be > 0", ErrInvalidParameter, p.Noise.TauFlux)
	}
	if p.Time.Dt <= 0 {
		return fmt.Errorf("%w: time step Dt = %g ms, must be > 0", ErrInvalidParameter, p.Time.Dt)
	}
	if p.Time.Dur < 0 {
		return fmt.Errorf("%w: duration Dur = %g ms, must be >= 0", ErrInvalidParameter, p.Time.Dur)
	}
	if p.VmRange.Min >= p.VmRange.Max {
		return fmt.Errorf("%w: VmRange [%g, %g] is empty", ErrInvalidParameter, p.VmRange.Min, p.VmRange.Max)
	}
	return nil
}
