// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikes holds the durable data model of the pipeline: spike trains
(ordered spike timestamps for one neuron / trial), ensembles of trains
sharing an experimental condition, and the per-trial dataset persistence
consumed by the analysis code.
*/
package spikes

import (
	"fmt"
)

// Train is an ordered sequence of spike timestamps in ms for one neuron /
// trial.  Invariant: strictly increasing, with consecutive timestamps
// separated by at least the refractory period.  The integrator emits trains
// directly; Validate is the post-condition layer asserting the invariant.
type Train []float64

// isiTol is the tolerance allowed on the minimum inter-spike interval,
// covering float32 refractory accounting in the integrator.
const isiTol = 1e-6

// Validate asserts that the train is strictly increasing and that every
// consecutive gap is at least the given refractory period in ms.
func (tr Train) Validate(refrac float64) error {
	for i := 1; i < len(tr); i++ {
		isi := tr[i] - tr[i-1]
		if isi <= 0 {
			return fmt.Errorf("spikes: non-increasing timestamps at index %d: %g ms after %g ms", i, tr[i], tr[i-1])
		}
		if isi+isiTol < refrac {
			return fmt.Errorf("spikes: inter-spike interval %g ms at index %d below refractory period %g ms", isi, i, refrac)
		}
	}
	return nil
}

// ISIs returns the inter-spike intervals in ms (length len(tr)-1).
func (tr Train) ISIs() []float64 {
	if len(tr) < 2 {
		return nil
	}
	isis := make([]float64, len(tr)-1)
	for i := 1; i < len(tr); i++ {
		isis[i-1] = tr[i] - tr[i-1]
	}
	return isis
}

// MeanRate returns the mean firing rate in spikes/s over a duration of
// dur ms, 0 for a non-positive duration.
func (tr Train) MeanRate(dur float64) float64 {
	if dur <= 0 {
		return 0
	}
	return float64(len(tr)) / (dur / 1000)
}

// Clone returns a copy, so analysis results can never alias a mutated train.
func (tr Train) Clone() Train {
	ct := make(Train, len(tr))
	copy(ct, tr)
	return ct
}
