// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package analysis post-processes spike train ensembles into rasters,
firing-rate histograms, power spectra, SNR metrics, inferred stimulus
measures, and ROC detection curves.  All operations are pure: inputs are
never mutated, and degenerate inputs (no trials, no spikes) yield
well-defined zero or NaN sentinel results rather than errors.
*/
package analysis

import (
	"math"

	"github.com/cnslab/adex/spikes"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// NBins returns the number of fixed-width bins covering dur ms at binw ms
// per bin (0 for non-positive arguments).
func NBins(dur, binw float64) int {
	if dur <= 0 || binw <= 0 {
		return 0
	}
	return int(math.Ceil(dur / binw))
}

// BinCenters returns the bin center times in ms.
func BinCenters(dur, binw float64) []float64 {
	n := NBins(dur, binw)
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = (float64(i) + 0.5) * binw
	}
	return ts
}

// binOf maps a spike time onto its bin, clamping the dur edge into the last
// bin; returns -1 for times outside [0, dur].
func binOf(tm, dur, binw float64, nbins int) int {
	if tm < 0 || tm > dur {
		return -1
	}
	bin := int(tm / binw)
	if bin >= nbins {
		bin = nbins - 1
	}
	return bin
}

// Counts bins all spikes across the ensemble into fixed-width time bins,
// returning the per-bin spike counts summed over trials.
func Counts(en *spikes.Ensemble, binw, dur float64) []float64 {
	nbins := NBins(dur, binw)
	counts := make([]float64, nbins)
	for _, tr := range en.Trains {
		for _, tm := range tr {
			if bin := binOf(tm, dur, binw, nbins); bin >= 0 {
				counts[bin]++
			}
		}
	}
	return counts
}

// RateHist computes the ensemble firing-rate histogram: bin center times in
// ms and rate estimates in spikes/s per bin, counts / (ntrials * binw).
// An ensemble with zero trials or zero spikes yields all-zero rates.
// Accounting identity: sum(rates) * (binw/1000) * ntrials equals the total
// in-range spike count.
func RateHist(en *spikes.Ensemble, binw, dur float64) (times, rates []float64) {
	times = BinCenters(dur, binw)
	rates = Counts(en, binw, dur)
	ntr := float64(en.NTrials())
	if ntr == 0 {
		return times, rates
	}
	norm := 1 / (ntr * binw / 1000)
	for i := range rates {
		rates[i] *= norm
	}
	return times, rates
}

// Raster maps the ensemble to its raster representation: a (Trial, Time)
// table with one row per spike, ordered by trial then time.
func Raster(en *spikes.Ensemble) *etable.Table {
	dt := &etable.Table{}
	sch := etable.Schema{
		{Name: "Trial", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, en.TotalSpikes())
	row := 0
	for i, tr := range en.Trains {
		for _, tm := range tr {
			dt.SetCellFloat("Trial", row, float64(i))
			dt.SetCellFloat("Time", row, tm)
			row++
		}
	}
	return dt
}

// RasterMatrix returns the binned trial x bin spike-count matrix, the dense
// raster form used for image-style display.
func RasterMatrix(en *spikes.Ensemble, binw, dur float64) *etensor.Float64 {
	nbins := NBins(dur, binw)
	ntr := en.NTrials()
	mat := etensor.NewFloat64([]int{ntr, nbins}, nil, []string{"Trial", "Bin"})
	for i, tr := range en.Trains {
		for _, tm := range tr {
			if bin := binOf(tm, dur, binw, nbins); bin >= 0 {
				mat.Set([]int{i, bin}, mat.Value([]int{i, bin})+1)
			}
		}
	}
	return mat
}
