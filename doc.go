// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package adex is the overall repository for the adaptive exponential (AdEx)
integrate-and-fire neuron simulation and spike-train analysis code used to
generate the frequency / amplitude discrimination figures.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* adex: the core model -- parameters, neuron state, and the fixed-step
Euler-Maruyama integrator with spike detection, reset, and refractory hold.

* inputs: input current generators driving the model: deterministic sinusoidal
and sawtooth currents, Ornstein-Uhlenbeck conductance noise, and a
double-exponential (exp2syn) synaptic waveform.

* spikes: spike train and ensemble data structures, refractory validation,
and per-trial dataset persistence.

* analysis: raster, firing-rate histogram, power spectrum, SNR, ISI-based
frequency inference, and ROC / AUC discrimination analysis.

* sim: trial and ensemble runners plus the amplitude / frequency sweep
drivers that produce the discrimination datasets.

* examples: these compile into runnable programs.  examples/sine runs the
basic sinusoidally-driven ensemble and writes per-trial spike datasets;
examples/discrim runs the discrimination sweeps and AUC grids.
*/
package adex
