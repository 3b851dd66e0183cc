// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"

	"github.com/cnslab/adex/spikes"
)

// Stimulus inference from a single spike train, via the gaussian
// superposition method: the ISI histogram is built as a sum of gaussians
// centered on each observed ISI, its peaks are located, and the spacing
// between peaks (which recurs at the stimulus period even when cycles are
// skipped) is itself histogrammed the same way; the dominant spacing gives
// the period.  Anything degenerate along the way yields NaN.

// Gaussian returns the normal density at x for center mu and width sig.
func Gaussian(x, mu, sig float64) float64 {
	d := (x - mu) / sig
	return 1 / (math.Sqrt(2*math.Pi) * sig) * math.Exp(-d*d/2)
}

// InferOpts are the tuning parameters of the frequency inference.
type InferOpts struct {
	T1        float64 `def:"0.6" desc:"width of the per-ISI gaussian in ms"`
	T2        float64 `def:"0.3" desc:"width of the per-peak-spacing gaussian in ms"`
	Res       float64 `def:"0.1" desc:"ISI histogram bin width in ms"`
	Prom      float64 `def:"0.5" desc:"minimum peak prominence on the normalized ISI histogram"`
	TimeStep  float64 `def:"0.01" desc:"peak-spacing histogram bin width in ms"`
	MaxISI    float64 `def:"350" desc:"upper edge of the ISI histogram in ms"`
	MaxPeriod float64 `def:"15" desc:"upper edge of the peak-spacing histogram in ms"`
}

func (o *InferOpts) Defaults() {
	o.T1 = 0.6
	o.T2 = 0.3
	o.Res = 0.1
	o.Prom = 0.5
	o.TimeStep = 0.01
	o.MaxISI = 350
	o.MaxPeriod = 15
}

// gaussHist sums gaussians of width sig centered at each value in vals over
// a regular grid [0, max) with the given step.
func gaussHist(vals []float64, max, step, sig float64) []float64 {
	n := int(max / step)
	hist := make([]float64, n)
	for i := range hist {
		x := float64(i) * step
		for _, v := range vals {
			hist[i] += Gaussian(x, v, sig)
		}
	}
	return hist
}

// findPeaks returns the indices of local maxima of y whose prominence (height
// above the higher of the two flanking minima, walking out to the nearest
// higher point or the edge) is at least prom, in increasing index order.
func findPeaks(y []float64, prom float64) []int {
	var pks []int
	for i := 1; i < len(y)-1; i++ {
		if !(y[i] > y[i-1] && y[i] >= y[i+1]) {
			continue
		}
		lmin := y[i]
		for j := i - 1; j >= 0 && y[j] <= y[i]; j-- {
			if y[j] < lmin {
				lmin = y[j]
			}
		}
		rmin := y[i]
		for j := i + 1; j < len(y) && y[j] <= y[i]; j++ {
			if y[j] < rmin {
				rmin = y[j]
			}
		}
		if y[i]-math.Max(lmin, rmin) >= prom {
			pks = append(pks, i)
		}
	}
	return pks
}

// InferFrequency infers the stimulus frequency in Hz from a spike train via
// the gaussian superposition method, NaN when inference is not possible
// (too few ISIs, no repeated peak spacing, zero dominant period).
func InferFrequency(tr spikes.Train, o *InferOpts) float64 {
	isis := tr.ISIs()
	if len(isis) == 0 {
		return math.NaN()
	}
	hist := gaussHist(isis, o.MaxISI, o.Res, o.T1)
	total := 0.0
	for _, h := range hist {
		total += h
	}
	if total <= 0 {
		return math.NaN()
	}
	for i := range hist {
		hist[i] /= total
	}
	pks := findPeaks(hist, o.Prom)
	if len(pks) < 2 {
		return math.NaN()
	}
	spacings := make([]float64, len(pks)-1)
	for i := 1; i < len(pks); i++ {
		spacings[i-1] = float64(pks[i]-pks[i-1]) * o.Res
	}
	ph := gaussHist(spacings, o.MaxPeriod, o.TimeStep, o.T2)
	best := 0
	for i, h := range ph {
		if h > ph[best] {
			best = i
		}
	}
	period := float64(best) * o.TimeStep
	if period <= 0 {
		return math.NaN()
	}
	return 1000 / period
}

// InferAmplitude returns the amplitude proxy measure for a spike train:
// the total spike count.
func InferAmplitude(tr spikes.Train) float64 {
	return float64(len(tr))
}
