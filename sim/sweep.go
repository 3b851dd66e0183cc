// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cnslab/adex/analysis"
	"github.com/cnslab/adex/spikes"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/minmax"
)

// ParamRange returns the swept parameter levels x0, x0+res, ..., up to and
// including x1 (within half a step).
func ParamRange(x0, x1, res float64) []float64 {
	var ps []float64
	for x := x0; x <= x1+res/2; x += res {
		ps = append(ps, x)
	}
	return ps
}

// Sweep is the result of a discrimination sweep: for each swept parameter
// level, the spike trains of its ensemble and the per-trial inferred
// measures fed into the discrimination analysis.
type Sweep struct {
	Levels   []float64                  `desc:"swept parameter values"`
	Trains   map[float64][]spikes.Train `desc:"per-level spike trains"`
	Measures map[float64][]float64      `desc:"per-level per-trial inferred measures"`
}

// Grid returns the all-pairs discriminability (AUC) matrix of the sweep.
func (sw *Sweep) Grid() *analysis.GridResult {
	return &analysis.GridResult{Levels: sw.Levels, AUC: analysis.DiscriminationGrid(sw.Levels, sw.Measures)}
}

// sweep runs one ensemble per level, with the level applied by set and the
// per-trial measure computed by measure.  Each trial runs on its own stream
// seeded from the base seed, level index, and trial index, so the whole
// sweep is reproducible and levels are independent.
func sweep(cfg *Config, levels []float64, set func(c *Config, rnd erand.Rand, level float64),
	measure func(tr spikes.Train) float64) (*Sweep, error) {
	sw := &Sweep{
		Levels:   levels,
		Trains:   make(map[float64][]spikes.Train, len(levels)),
		Measures: make(map[float64][]float64, len(levels)),
	}
	for li, level := range levels {
		for i := 0; i < cfg.NTrials; i++ {
			rnd := erand.NewSysRand(cfg.Seed + int64(li*cfg.NTrials+i))
			c := *cfg
			set(&c, rnd, level)
			tr, err := runTrial(&c, rnd, nil)
			if err != nil {
				return nil, err
			}
			sw.Trains[level] = append(sw.Trains[level], tr)
			sw.Measures[level] = append(sw.Measures[level], measure(tr))
		}
	}
	return sw, nil
}

// uniform draws from [r.Min, r.Max) on the given stream.
func uniform(rnd erand.Rand, r minmax.F32) float32 {
	return r.Min + float32(rnd.Float64(-1))*(r.Max-r.Min)
}

// SweepFreq runs the frequency discrimination sweep: for each frequency
// level, NTrials trials with the stimulus amplitude drawn uniformly from
// ampRange per trial, measured by gaussian-superposition frequency
// inference.
func SweepFreq(cfg *Config, f0, f1, res float64, ampRange minmax.F32, o *analysis.InferOpts) (*Sweep, error) {
	return sweep(cfg, ParamRange(f0, f1, res),
		func(c *Config, rnd erand.Rand, level float64) {
			c.Freq = float32(level)
			c.Amp = uniform(rnd, ampRange)
		},
		func(tr spikes.Train) float64 {
			return analysis.InferFrequency(tr, o)
		})
}

// SweepAmp runs the amplitude discrimination sweep: for each amplitude
// level, NTrials trials with the stimulus frequency drawn uniformly from
// freqRange per trial, measured by the spike-count amplitude proxy.
func SweepAmp(cfg *Config, a0, a1, res float64, freqRange minmax.F32) (*Sweep, error) {
	return sweep(cfg, ParamRange(a0, a1, res),
		func(c *Config, rnd erand.Rand, level float64) {
			c.Amp = float32(level)
			c.Freq = uniform(rnd, freqRange)
		},
		analysis.InferAmplitude)
}
