// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"
	"testing"

	"github.com/cnslab/adex/spikes"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-8

func TestRateHistAccounting(t *testing.T) {
	en := &spikes.Ensemble{
		Cond: spikes.Condition{Dur: 100},
		Trains: []spikes.Train{
			{1, 7, 33, 99.9},
			{2.5, 50},
			{},
		},
	}
	binw, dur := 5.0, 100.0
	times, rates := RateHist(en, binw, dur)
	if len(times) != 20 || len(rates) != 20 {
		t.Fatalf("expected 20 bins, got %d times, %d rates", len(times), len(rates))
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	got := sum * (binw / 1000) * float64(en.NTrials())
	if math.Abs(got-float64(en.TotalSpikes())) > difTol {
		t.Errorf("accounting identity: recovered %g spikes, expected %d", got, en.TotalSpikes())
	}
	if times[0] != 2.5 || times[19] != 97.5 {
		t.Errorf("bin centers: got first %g last %g, expected 2.5 and 97.5", times[0], times[19])
	}
}

func TestRateHistEmpty(t *testing.T) {
	en := &spikes.Ensemble{Trains: []spikes.Train{{}, {}}}
	_, rates := RateHist(en, 5, 100)
	for i, r := range rates {
		if r != 0 {
			t.Fatalf("spike-free ensemble: rate %g at bin %d", r, i)
		}
	}
	// no trials at all: still all zero, no division blowup
	_, rates = RateHist(&spikes.Ensemble{}, 5, 100)
	for i, r := range rates {
		if r != 0 {
			t.Fatalf("zero-trial ensemble: rate %g at bin %d", r, i)
		}
	}
}

func TestRaster(t *testing.T) {
	en := &spikes.Ensemble{Trains: []spikes.Train{{1, 2}, {3}}}
	dt := Raster(en)
	if dt.Rows != 3 {
		t.Fatalf("raster rows: got %d, expected 3", dt.Rows)
	}
	if dt.CellFloat("Trial", 2) != 1 || dt.CellFloat("Time", 2) != 3 {
		t.Errorf("raster row 2: got (%g, %g), expected (1, 3)",
			dt.CellFloat("Trial", 2), dt.CellFloat("Time", 2))
	}
	mat := RasterMatrix(en, 5, 10)
	if mat.Value([]int{0, 0}) != 2 {
		t.Errorf("raster matrix (0,0): got %g, expected 2", mat.Value([]int{0, 0}))
	}
}

func TestSpectrumSNR(t *testing.T) {
	// pure 25 Hz sinusoid rate trace: 256 bins at 5 ms, cycle k = 32
	n := 256
	binw := 5.0
	rates := make([]float64, n)
	for i := range rates {
		rates[i] = 10 + 5*math.Sin(2*math.Pi*32*float64(i)/float64(n))
	}
	freqs, power := Spectrum(rates, binw)
	if len(freqs) != n/2+1 {
		t.Fatalf("one-sided spectrum length: got %d, expected %d", len(freqs), n/2+1)
	}
	if math.Abs(freqs[32]-25) > difTol {
		t.Errorf("bin 32 frequency: got %g Hz, expected 25", freqs[32])
	}
	snr := SNR(freqs, power, 25, 5)
	if !(snr > 1e6 || math.IsInf(snr, 1)) {
		t.Errorf("pure tone SNR: got %g, expected near-infinite", snr)
	}
	if db := SNRdB(100); math.Abs(db-20) > difTol {
		t.Errorf("SNRdB(100): got %g, expected 20", db)
	}
}

func TestSNRSentinels(t *testing.T) {
	if snr := SNR(nil, nil, 10, 5); !math.IsNaN(snr) {
		t.Errorf("empty spectrum: got %g, expected NaN", snr)
	}
	freqs := []float64{0, 10, 20, 30}
	zero := []float64{0, 0, 0, 0}
	if snr := SNR(freqs, zero, 10, 1); !math.IsNaN(snr) {
		t.Errorf("all-zero spectrum: got %g, expected NaN", snr)
	}
	spike := []float64{0, 4, 0, 0}
	if snr := SNR(freqs, spike, 10, 1); !math.IsInf(snr, 1) {
		t.Errorf("zero floor with signal: got %g, expected +Inf", snr)
	}
}

func TestROCCurve(t *testing.T) {
	absent := []float64{1, 2, 3, 4}
	present := []float64{10, 11, 12, 13}
	fpr, tpr := ROCCurve(absent, present)
	if len(fpr) < 2 {
		t.Fatalf("degenerate curve: %v", fpr)
	}
	if fpr[0] != 0 || tpr[0] != 0 {
		t.Errorf("curve start: got (%g, %g), expected (0, 0)", fpr[0], tpr[0])
	}
	last := len(fpr) - 1
	if fpr[last] != 1 || tpr[last] != 1 {
		t.Errorf("curve end: got (%g, %g), expected (1, 1)", fpr[last], tpr[last])
	}
	for i := 1; i < len(fpr); i++ {
		if fpr[i] < fpr[i-1] {
			t.Fatalf("FPR decreasing at %d: %g after %g", i, fpr[i], fpr[i-1])
		}
	}
	if auc := AUC(fpr, tpr); math.Abs(auc-1) > difTol {
		t.Errorf("fully separated AUC: got %g, expected 1", auc)
	}
}

func TestROCEmpty(t *testing.T) {
	fpr, tpr := ROCCurve(nil, nil)
	if fpr != nil || tpr != nil {
		t.Errorf("empty inputs: got %v %v, expected nil", fpr, tpr)
	}
	if auc := AUC(nil, nil); !math.IsNaN(auc) {
		t.Errorf("AUC of empty curve: got %g, expected NaN", auc)
	}
}

func TestDiscriminate(t *testing.T) {
	lo := []float64{1, 2, 3}
	hi := []float64{10, 11, 12}
	a := Discriminate(lo, hi, 1, 2)
	b := Discriminate(hi, lo, 2, 1)
	if math.Abs(a-1) > difTol {
		t.Errorf("separated discriminability: got %g, expected 1", a)
	}
	if math.Abs(a-b) > difTol {
		t.Errorf("orientation symmetry: %g vs %g", a, b)
	}
	if d := Discriminate(nil, hi, 1, 2); !math.IsNaN(d) {
		t.Errorf("empty set: got %g, expected NaN", d)
	}
	// non-finite measures count as chance-level evidence
	c := Discriminate([]float64{math.NaN(), math.Inf(1)}, hi, 1, 2)
	if math.IsNaN(c) || c < 0.5 {
		t.Errorf("non-finite measures: got %g, expected valid AUC >= 0.5", c)
	}
}

func TestDiscriminationGrid(t *testing.T) {
	levels := []float64{1, 2}
	measures := map[float64][]float64{
		1: {1, 2, 3},
		2: {10, 11, 12},
	}
	zz := DiscriminationGrid(levels, measures)
	if math.Abs(zz.Value([]int{0, 1})-1) > difTol {
		t.Errorf("off-diagonal AUC: got %g, expected 1", zz.Value([]int{0, 1}))
	}
	if d := zz.Value([]int{0, 0}); math.Abs(d-0.5) > 1e-6 {
		t.Errorf("diagonal AUC: got %g, expected 0.5", d)
	}
	gr := &GridResult{Levels: levels, AUC: zz}
	dt := gr.ToTable()
	if dt.Rows != 4 {
		t.Fatalf("grid table rows: got %d, expected 4", dt.Rows)
	}
	if dt.CellFloat("X", 1) != 2 || dt.CellFloat("Y", 1) != 1 {
		t.Errorf("grid table row 1: got (X %g, Y %g), expected (2, 1)",
			dt.CellFloat("X", 1), dt.CellFloat("Y", 1))
	}
}

func TestInferFrequency(t *testing.T) {
	o := &InferOpts{}
	o.Defaults()
	o.Prom = 0.01
	// 100 Hz drive with skipped cycles: ISIs at 10, 10, 20, 20 ms
	tr := spikes.Train{0, 10, 20, 40, 60}
	f := InferFrequency(tr, o)
	if math.Abs(f-100) > 1 {
		t.Errorf("inferred frequency: got %g Hz, expected 100", f)
	}
	if f := InferFrequency(spikes.Train{5}, o); !math.IsNaN(f) {
		t.Errorf("single spike: got %g, expected NaN", f)
	}
	// one ISI gives a single histogram peak: not inferable
	if f := InferFrequency(spikes.Train{0, 10}, o); !math.IsNaN(f) {
		t.Errorf("single ISI: got %g, expected NaN", f)
	}
}

func TestInferAmplitude(t *testing.T) {
	tr := spikes.Train{1, 2, 3, 4, 5}
	if a := InferAmplitude(tr); a != 5 {
		t.Errorf("amplitude proxy: got %g, expected 5", a)
	}
}

func TestFindPeaks(t *testing.T) {
	y := []float64{0, 1, 0, 0.2, 0, 2, 0}
	pks := findPeaks(y, 0.5)
	want := []int{1, 5}
	if len(pks) != len(want) || pks[0] != want[0] || pks[1] != want[1] {
		t.Errorf("peaks: got %v, expected %v", pks, want)
	}
	// low-prominence bump excluded
	pks = findPeaks(y, 0.1)
	if len(pks) != 3 {
		t.Errorf("peaks at prom 0.1: got %v, expected 3 peaks", pks)
	}
}
