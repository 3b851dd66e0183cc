// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"path/filepath"

	"github.com/cnslab/adex/adex"
	"github.com/cnslab/adex/spikes"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etable"
)

// runTrial integrates one trial on an already-seeded stream.
func runTrial(cfg *Config, rnd erand.Rand, trace *etable.Table) (spikes.Train, error) {
	src := cfg.NewSource(rnd)
	return adex.Run(&cfg.Model, src, rnd, trace)
}

// RunTrial runs trial index trial on its own stream seeded Seed + trial,
// so any single trial is reproducible in isolation.  trace may be nil.
func RunTrial(cfg *Config, trial int, trace *etable.Table) (spikes.Train, error) {
	rnd := erand.NewSysRand(cfg.Seed + int64(trial))
	return runTrial(cfg, rnd, trace)
}

// RunEnsemble runs all NTrials trials sequentially (trials are independent,
// so any scheduling would do -- within a trial, steps are strictly ordered)
// and returns the ensemble.  If SaveDir is set, each trial is persisted as
// SaveDir/Name/data<i>.tsv at trial completion.
func RunEnsemble(cfg *Config) (*spikes.Ensemble, error) {
	en := &spikes.Ensemble{Name: cfg.Name, Cond: cfg.Condition()}
	dir := ""
	if cfg.SaveDir != "" {
		dir = filepath.Join(cfg.SaveDir, cfg.Name)
	}
	for i := 0; i < cfg.NTrials; i++ {
		tr, err := RunTrial(cfg, i, nil)
		if err != nil {
			return nil, err
		}
		en.Trains = append(en.Trains, tr)
		if dir != "" {
			if err := spikes.SaveTrial(dir, tr, i, en.Cond); err != nil {
				return nil, err
			}
		}
	}
	return en, nil
}
