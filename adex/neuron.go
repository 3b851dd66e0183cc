// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adex

// adex.Neuron holds the state variables for one AdEx neuron instance.
// All variables are float32 and updated in place by the integrator.
type Neuron struct {

	// membrane potential in mV
	Vm float32

	// adaptation current w in pA
	W float32

	// M-current activation gate (0..1)
	Z float32

	// Ornstein-Uhlenbeck flux noise current in pA
	IFlux float32

	// input current applied this step in pA (for trace inspection)
	Iin float32

	// net deterministic current in pA: leak + exponential + M-current +
	// input + flux - w
	Inet float32

	// whether a spike was detected this step (1 = spiked, 0 = not)
	Spike float32

	// remaining refractory hold time in ms -- Vm is clamped to Reset and
	// spike detection is suppressed while > 0
	RefracLeft float32
}

// Init sets the neuron to its resting state: Vm at the leak reversal
// potential, no adaptation, not refractory.
func (nrn *Neuron) Init(p *Params) {
	nrn.Vm = p.Mem.EL
	nrn.W = 0
	nrn.Z = 0
	nrn.IFlux = 0
	nrn.Iin = 0
	nrn.Inet = 0
	nrn.Spike = 0
	nrn.RefracLeft = 0
}
