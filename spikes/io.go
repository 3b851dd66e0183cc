// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikes

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// Per-trial dataset format: a tab-separated etable with one row per spike,
// carrying the trial index and condition parameters on every row so each
// file is self-describing.  An empty train is persisted as a single row with
// a NaN Time, so the condition still round-trips.

// TrainSchema is the etable schema of one per-trial spike dataset.
var TrainSchema = etable.Schema{
	{Name: "Trial", Type: etensor.INT64, CellShape: nil, DimNames: nil},
	{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	{Name: "DC", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	{Name: "Amp", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	{Name: "Freq", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	{Name: "Sigma", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	{Name: "Seed", Type: etensor.INT64, CellShape: nil, DimNames: nil},
	{Name: "Dur", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
}

// TrainTable builds the per-trial dataset table for one train.
func TrainTable(tr Train, trial int, cond Condition) *etable.Table {
	dt := &etable.Table{}
	rows := len(tr)
	if rows == 0 {
		rows = 1
	}
	dt.SetFromSchema(TrainSchema, rows)
	for row := 0; row < rows; row++ {
		tm := math.NaN()
		if row < len(tr) {
			tm = tr[row]
		}
		dt.SetCellFloat("Trial", row, float64(trial))
		dt.SetCellFloat("Time", row, tm)
		dt.SetCellFloat("DC", row, float64(cond.DC))
		dt.SetCellFloat("Amp", row, float64(cond.Amp))
		dt.SetCellFloat("Freq", row, float64(cond.Freq))
		dt.SetCellFloat("Sigma", row, float64(cond.Sigma))
		dt.SetCellFloat("Seed", row, float64(cond.Seed))
		dt.SetCellFloat("Dur", row, cond.Dur)
	}
	return dt
}

// TrainFromTable reconstructs a train, its trial index, and its condition
// from a per-trial dataset table.
func TrainFromTable(dt *etable.Table) (Train, int, Condition, error) {
	if dt.Rows == 0 {
		return nil, 0, Condition{}, fmt.Errorf("spikes: empty dataset table")
	}
	cond := Condition{
		DC:    float32(dt.CellFloat("DC", 0)),
		Amp:   float32(dt.CellFloat("Amp", 0)),
		Freq:  float32(dt.CellFloat("Freq", 0)),
		Sigma: float32(dt.CellFloat("Sigma", 0)),
		Seed:  int64(dt.CellFloat("Seed", 0)),
		Dur:   dt.CellFloat("Dur", 0),
	}
	trial := int(dt.CellFloat("Trial", 0))
	var tr Train
	for row := 0; row < dt.Rows; row++ {
		tm := dt.CellFloat("Time", row)
		if math.IsNaN(tm) {
			continue
		}
		tr = append(tr, tm)
	}
	return tr, trial, cond, nil
}

// TrialFile returns the dataset file name for the given trial index,
// following the reference data0..dataN-1 naming.
func TrialFile(dir string, trial int) string {
	return filepath.Join(dir, fmt.Sprintf("data%d.tsv", trial))
}

// SaveTrial writes one per-trial dataset file.
func SaveTrial(dir string, tr Train, trial int, cond Condition) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(TrialFile(dir, trial))
	if err != nil {
		return err
	}
	defer f.Close()
	dt := TrainTable(tr, trial, cond)
	return dt.WriteCSV(f, etable.Tab, etable.Headers)
}

// LoadTrial reads one per-trial dataset file back.
func LoadTrial(dir string, trial int) (Train, Condition, error) {
	f, err := os.Open(TrialFile(dir, trial))
	if err != nil {
		return nil, Condition{}, err
	}
	defer f.Close()
	dt := &etable.Table{}
	if err := dt.ReadCSV(f, etable.Tab); err != nil {
		return nil, Condition{}, err
	}
	tr, _, cond, err := TrainFromTable(dt)
	return tr, cond, err
}

// Save writes the ensemble as one dataset file per trial under dir.
func (en *Ensemble) Save(dir string) error {
	for i, tr := range en.Trains {
		if err := SaveTrial(dir, tr, i, en.Cond); err != nil {
			return err
		}
	}
	return nil
}

// Load reads trials data0..dataN-1 from dir until a file is missing, or
// exactly n trials if n >= 0.
func Load(dir string, n int) (*Ensemble, error) {
	en := &Ensemble{Name: filepath.Base(dir)}
	for i := 0; n < 0 || i < n; i++ {
		if n < 0 {
			if _, err := os.Stat(TrialFile(dir, i)); err != nil {
				break
			}
		}
		tr, cond, err := LoadTrial(dir, i)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			en.Cond = cond
		}
		en.Trains = append(en.Trains, tr)
	}
	if len(en.Trains) == 0 {
		return nil, fmt.Errorf("spikes: no trial datasets found in %s", dir)
	}
	return en, nil
}
