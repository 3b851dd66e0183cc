// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inputs

import (
	"github.com/goki/mat32"
)

// Sine is the deterministic sinusoidal current:
// I(t) = DC + A * sin(2 pi F t).  No internal state.
type Sine struct {
	DC float32 `desc:"DC offset current in pA"`
	A  float32 `desc:"oscillation amplitude in pA"`
	F  float32 `desc:"oscillation frequency in Hz"`

	Omega float32 `view:"-" json:"-" xml:"-" desc:"angular frequency in rad/ms = 2 pi F / 1000"`
}

func (s *Sine) Defaults() {
	s.DC = 65
	s.A = 0
	s.F = 10
	s.Update()
}

func (s *Sine) Update() {
	s.Omega = 2 * mat32.Pi * s.F / 1000
}

func (s *Sine) Init() {
	s.Update()
}

func (s *Sine) Current(t, vm float32) float32 {
	return s.DC + s.A*mat32.Sin(s.Omega*t)
}

func (s *Sine) Advance(t, dt float32) {
}

// Saw is the deterministic sawtooth current:
// I(t) = DC + A - A * ((F t) mod 1), ramping down from DC + A to DC over
// each stimulus period.
type Saw struct {
	DC float32 `desc:"DC offset current in pA"`
	A  float32 `desc:"sawtooth amplitude in pA"`
	F  float32 `desc:"sawtooth frequency in Hz"`
}

func (s *Saw) Defaults() {
	s.DC = 65
	s.A = 0
	s.F = 10
}

func (s *Saw) Init() {
}

func (s *Saw) Current(t, vm float32) float32 {
	return s.DC + s.A - s.A*mat32.Mod(s.F*t/1000, 1)
}

func (s *Saw) Advance(t, dt float32) {
}
