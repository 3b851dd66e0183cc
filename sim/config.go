// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim sequences the pipeline: it builds input sources from a Config,
runs trials and ensembles through the integrator with per-trial seeded random
streams, persists the per-trial spike datasets, and drives the amplitude /
frequency discrimination sweeps.
*/
package sim

import (
	"github.com/cnslab/adex/adex"
	"github.com/cnslab/adex/inputs"
	"github.com/cnslab/adex/spikes"
	"github.com/emer/emergent/v2/erand"
)

// Config holds everything needed to run one ensemble: the model parameters,
// the input generator selection and its condition parameters, trial count and
// seeding, and analysis / persistence options.
type Config struct {
	Name string `desc:"ensemble name, used for dataset directory naming"`

	// model parameters for the integrator
	Model adex.Params `view:"no-inline"`

	Input inputs.InputType `desc:"which input generator drives the run"`
	DC    float32          `desc:"DC offset current in pA"`
	Amp   float32          `desc:"stimulus amplitude in pA (or nS for conductance inputs)"`
	Freq  float32          `desc:"stimulus frequency in Hz"`

	// prototype parameters for the stochastic input variants -- DC / Amp /
	// Freq above override the corresponding fields at source construction
	OU  inputs.OUConductance `view:"no-inline" desc:"Ornstein-Uhlenbeck conductance input parameters"`
	Syn inputs.Exp2Syn       `view:"no-inline" desc:"exp2syn waveform input parameters"`

	NTrials int   `def:"10" desc:"number of trials in the ensemble"`
	Seed    int64 `def:"1" desc:"base random seed -- trial i runs on an independent stream seeded Seed + i"`

	BinWidth float64 `def:"5" desc:"firing-rate histogram bin width in ms"`
	SaveDir  string  `desc:"if non-empty, per-trial datasets are written under SaveDir/Name"`
}

func (cfg *Config) Defaults() {
	cfg.Name = "adex"
	cfg.Model.Defaults()
	cfg.Input = inputs.SineInput
	cfg.DC = 65
	cfg.Amp = 0
	cfg.Freq = 10
	cfg.OU.Defaults()
	cfg.Syn.Defaults()
	cfg.NTrials = 10
	cfg.Seed = 1
	cfg.BinWidth = 5
}

// Condition returns the persisted experimental condition for this config.
func (cfg *Config) Condition() spikes.Condition {
	return spikes.Condition{
		DC:    cfg.DC,
		Amp:   cfg.Amp,
		Freq:  cfg.Freq,
		Sigma: cfg.Model.Noise.Sigma,
		Seed:  cfg.Seed,
		Dur:   float64(cfg.Model.Time.Dur),
	}
}

// NewSource constructs the configured input generator, copying the relevant
// prototype so concurrent trials never share mutable input state.  The
// stochastic variants draw from the given stream.
func (cfg *Config) NewSource(rnd erand.Rand) inputs.Source {
	switch cfg.Input {
	case inputs.SawInput:
		return &inputs.Saw{DC: cfg.DC, A: cfg.Amp, F: cfg.Freq}
	case inputs.OUInput:
		ou := cfg.OU
		ou.DC = cfg.DC
		ou.Rnd = rnd
		return &ou
	case inputs.Exp2SynInput:
		sy := cfg.Syn
		sy.DC = cfg.DC
		sy.A = cfg.Amp
		sy.F = cfg.Freq
		return &sy
	default:
		return &inputs.Sine{DC: cfg.DC, A: cfg.Amp, F: cfg.Freq}
	}
}
