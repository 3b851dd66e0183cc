// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ROCCurve computes the receiver operating characteristic for separating a
// "signal present" condition from a "signal absent" condition given a
// decision statistic sample per trial for each (the default statistic is the
// per-trial mean rate, spikes.Ensemble.MeanRates).  The threshold sweeps the
// full observed range including both extremes, so the returned curve is
// anchored at (0,0) and (1,1) with FPR non-decreasing.
func ROCCurve(absent, present []float64) (fpr, tpr []float64) {
	n := len(absent) + len(present)
	if n == 0 {
		return nil, nil
	}
	y := make([]float64, 0, n)
	classes := make([]bool, 0, n)
	y = append(y, absent...)
	for range absent {
		classes = append(classes, false)
	}
	y = append(y, present...)
	for range present {
		classes = append(classes, true)
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ = stat.ROC(nil, y, classes, nil)
	if len(fpr) > 1 && fpr[0] > fpr[len(fpr)-1] {
		reverse(fpr)
		reverse(tpr)
	}
	return fpr, tpr
}

func reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// AUC returns the area under an ROC curve by trapezoidal integration.
func AUC(fpr, tpr []float64) float64 {
	if len(fpr) < 2 {
		return math.NaN()
	}
	return integrate.Trapezoidal(fpr, tpr)
}

// Discriminate computes the discriminability (ROC AUC) between two sets of
// inferred measures, with v1 and v2 the true parameter values behind each
// set: the orientation is fixed so that a perfectly separable pair always
// yields AUC near 1 regardless of argument order.  Non-finite measures are
// zeroed (a failed inference counts as chance-level evidence, as in the
// reference analysis).  NaN when either set is empty.
func Discriminate(d1, d2 []float64, v1, v2 float64) float64 {
	if len(d1) == 0 || len(d2) == 0 {
		return math.NaN()
	}
	if v1 > v2 {
		d1, d2 = d2, d1
	}
	clean := func(d []float64) []float64 {
		cd := make([]float64, len(d))
		for i, v := range d {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				v = 0
			}
			cd[i] = v
		}
		return cd
	}
	fpr, tpr := ROCCurve(clean(d1), clean(d2))
	return AUC(fpr, tpr)
}

// DiscriminationGrid computes the all-pairs discriminability matrix over a
// set of parameter levels: cell (i, j) is the AUC separating the measures at
// level j from those at level i.  The diagonal is chance (0.5) by
// construction.
func DiscriminationGrid(levels []float64, measures map[float64][]float64) *etensor.Float64 {
	n := len(levels)
	zz := etensor.NewFloat64([]int{n, n}, nil, []string{"Y", "X"})
	for i, vy := range levels {
		for j, vx := range levels {
			zz.Set([]int{i, j}, Discriminate(measures[vx], measures[vy], vx, vy))
		}
	}
	return zz
}

// GridResult pairs a discriminability matrix with its parameter levels.
type GridResult struct {
	Levels []float64        `desc:"swept parameter values, one per row / column"`
	AUC    *etensor.Float64 `desc:"all-pairs discriminability matrix"`
}

// ToTable flattens the grid to a long-form (X, Y, AUC) table for persistence
// or plotting.
func (gr *GridResult) ToTable() *etable.Table {
	n := len(gr.Levels)
	dt := &etable.Table{}
	sch := etable.Schema{
		{Name: "X", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Y", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "AUC", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, n*n)
	for i, vy := range gr.Levels {
		for j, vx := range gr.Levels {
			row := i*n + j
			dt.SetCellFloat("X", row, vx)
			dt.SetCellFloat("Y", row, vy)
			dt.SetCellFloat("AUC", row, gr.AUC.Value([]int{i, j}))
		}
	}
	return dt
}
