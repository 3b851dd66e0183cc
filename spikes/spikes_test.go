// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikes

import (
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	tr := Train{1, 3.5, 6, 10}
	if err := tr.Validate(2); err != nil {
		t.Errorf("valid train rejected: %v", err)
	}
	bad := Train{1, 3, 2}
	if err := bad.Validate(0); err == nil {
		t.Error("non-increasing train accepted")
	}
	dup := Train{1, 1}
	if err := dup.Validate(0); err == nil {
		t.Error("duplicate timestamps accepted")
	}
	short := Train{1, 2.5}
	if err := short.Validate(2); err == nil {
		t.Error("sub-refractory interval accepted")
	}
	// float32 refractory accounting can land a hair under: tolerated
	close := Train{1, 2.9999999}
	if err := close.Validate(2); err != nil {
		t.Errorf("interval within tolerance rejected: %v", err)
	}
}

func TestISIs(t *testing.T) {
	tr := Train{1, 3, 6, 10}
	want := []float64{2, 3, 4}
	if got := tr.ISIs(); !reflect.DeepEqual(got, want) {
		t.Errorf("ISIs: got %v, expected %v", got, want)
	}
	if got := (Train{5}).ISIs(); got != nil {
		t.Errorf("single-spike ISIs: got %v, expected nil", got)
	}
}

func TestMeanRate(t *testing.T) {
	tr := Train{10, 20, 30, 40, 50}
	if r := tr.MeanRate(1000); r != 5 {
		t.Errorf("5 spikes over 1 s: got %v spikes/s, expected 5", r)
	}
	if r := tr.MeanRate(500); r != 10 {
		t.Errorf("5 spikes over 0.5 s: got %v spikes/s, expected 10", r)
	}
	if r := tr.MeanRate(0); r != 0 {
		t.Errorf("zero duration: got %v, expected 0", r)
	}
}

func TestClone(t *testing.T) {
	tr := Train{1, 2, 3}
	ct := tr.Clone()
	ct[0] = 99
	if tr[0] != 1 {
		t.Error("clone aliases the original")
	}
}

func TestEnsemble(t *testing.T) {
	en := &Ensemble{
		Name: "test",
		Cond: Condition{DC: 65, Dur: 1000},
		Trains: []Train{
			{10, 20, 30},
			{},
			{5, 500},
		},
	}
	if en.NTrials() != 3 {
		t.Errorf("NTrials: got %d, expected 3", en.NTrials())
	}
	if en.TotalSpikes() != 5 {
		t.Errorf("TotalSpikes: got %d, expected 5", en.TotalSpikes())
	}
	rates := en.MeanRates()
	want := []float64{3, 0, 2}
	if !reflect.DeepEqual(rates, want) {
		t.Errorf("MeanRates: got %v, expected %v", rates, want)
	}
	if err := en.Validate(2); err != nil {
		t.Errorf("valid ensemble rejected: %v", err)
	}
}

func TestTrialRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cond := Condition{DC: 65, Amp: 300, Freq: 10, Sigma: 0.5, Seed: 42, Dur: 1000}
	tr := Train{10.25, 20.5, 333.75}
	if err := SaveTrial(dir, tr, 3, cond); err != nil {
		t.Fatal(err)
	}
	got, gcond, err := LoadTrial(dir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, tr) {
		t.Errorf("train round trip: got %v, expected %v", got, tr)
	}
	if gcond != cond {
		t.Errorf("condition round trip: got %+v, expected %+v", gcond, cond)
	}
}

func TestEmptyTrainRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cond := Condition{DC: 10, Seed: 7, Dur: 500}
	if err := SaveTrial(dir, Train{}, 0, cond); err != nil {
		t.Fatal(err)
	}
	got, gcond, err := LoadTrial(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty train round trip: got %v", got)
	}
	if gcond != cond {
		t.Errorf("condition round trip: got %+v, expected %+v", gcond, cond)
	}
}

func TestEnsembleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	en := &Ensemble{
		Name: "rt",
		Cond: Condition{DC: 65, Amp: 100, Freq: 10, Seed: 1, Dur: 1000},
		Trains: []Train{
			{1, 5, 9},
			{},
			{2.5},
		},
	}
	if err := en.Save(dir); err != nil {
		t.Fatal(err)
	}
	got, err := Load(dir, -1)
	if err != nil {
		t.Fatal(err)
	}
	if got.NTrials() != en.NTrials() {
		t.Fatalf("trial count: got %d, expected %d", got.NTrials(), en.NTrials())
	}
	if got.Cond != en.Cond {
		t.Errorf("condition: got %+v, expected %+v", got.Cond, en.Cond)
	}
	for i := range en.Trains {
		if len(en.Trains[i]) == 0 {
			if len(got.Trains[i]) != 0 {
				t.Errorf("trial %d: got %v, expected empty", i, got.Trains[i])
			}
			continue
		}
		if !reflect.DeepEqual(got.Trains[i], en.Trains[i]) {
			t.Errorf("trial %d: got %v, expected %v", i, got.Trains[i], en.Trains[i])
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir(), -1); err == nil {
		t.Error("expected error loading from empty directory")
	}
}
