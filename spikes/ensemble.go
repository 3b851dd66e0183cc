// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikes

// Condition identifies the experimental condition shared by all trials of an
// ensemble, and is persisted alongside each per-trial dataset.
type Condition struct {
	DC    float32 `desc:"DC offset current in pA"`
	Amp   float32 `desc:"stimulus amplitude in pA (or nS for conductance inputs)"`
	Freq  float32 `desc:"stimulus frequency in Hz"`
	Sigma float32 `desc:"integrator voltage noise intensity in mV/sqrt(ms)"`
	Seed  int64   `desc:"base random seed -- trial i runs with Seed + i"`
	Dur   float64 `desc:"simulation duration in ms"`
}

// Ensemble is a named collection of spike trains sharing a Condition --
// the unit consumed by the analysis components.
type Ensemble struct {
	Name   string    `desc:"ensemble name, used for dataset file naming"`
	Cond   Condition `desc:"experimental condition shared by all trials"`
	Trains []Train   `desc:"per-trial spike trains"`
}

// NTrials returns the number of trials.
func (en *Ensemble) NTrials() int {
	return len(en.Trains)
}

// TotalSpikes returns the total spike count across all trials.
func (en *Ensemble) TotalSpikes() int {
	n := 0
	for _, tr := range en.Trains {
		n += len(tr)
	}
	return n
}

// MeanRates returns the per-trial mean firing rates in spikes/s over the
// condition duration -- the default decision statistic for detection
// analysis.
func (en *Ensemble) MeanRates() []float64 {
	rates := make([]float64, len(en.Trains))
	for i, tr := range en.Trains {
		rates[i] = tr.MeanRate(en.Cond.Dur)
	}
	return rates
}

// Validate asserts the train invariant on every trial against the given
// refractory period in ms.
func (en *Ensemble) Validate(refrac float64) error {
	for _, tr := range en.Trains {
		if err := tr.Validate(refrac); err != nil {
			return err
		}
	}
	return nil
}
