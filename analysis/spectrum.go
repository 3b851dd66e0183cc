// Copyright (c) 2025, The CNSLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum computes the power spectral density of a firing-rate histogram
// signal sampled at binw ms: the rate trace is mean-subtracted and Fourier
// transformed, with power[k] = |c_k|^2 / n at frequency k / (n * binw) Hz.
// Returns the one-sided spectrum (DC through Nyquist).  Empty input yields
// nil slices.
func Spectrum(rates []float64, binw float64) (freqs, power []float64) {
	n := len(rates)
	if n == 0 || binw <= 0 {
		return nil, nil
	}
	mean := 0.0
	for _, r := range rates {
		mean += r
	}
	mean /= float64(n)
	data := make([]float64, n)
	for i, r := range rates {
		data[i] = r - mean
	}
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, data)
	df := 1 / (float64(n) * binw / 1000) // Hz per bin
	freqs = make([]float64, len(coeff))
	power = make([]float64, len(coeff))
	for k, c := range coeff {
		freqs[k] = float64(k) * df
		a := cmplx.Abs(c)
		power[k] = a * a / float64(n)
	}
	return freqs, power
}

// SNR computes the linear signal-to-noise ratio of a spectrum at the known
// stimulus frequency f0: the power of the nearest frequency bin divided by
// the mean power of the nNbr neighboring bins on each side, excluding the
// signal bin itself and the DC bin.  Returns NaN when the spectrum or the
// noise-floor window is empty, +Inf when the floor is zero but the signal
// power is positive, and NaN when both are zero.
func SNR(freqs, power []float64, f0 float64, nNbr int) float64 {
	if len(power) < 2 || nNbr <= 0 {
		return math.NaN()
	}
	k0 := 1
	best := math.Abs(freqs[1] - f0)
	for k := 2; k < len(freqs); k++ {
		if d := math.Abs(freqs[k] - f0); d < best {
			best = d
			k0 = k
		}
	}
	floor := 0.0
	nf := 0
	for k := k0 - nNbr; k <= k0+nNbr; k++ {
		if k <= 0 || k >= len(power) || k == k0 {
			continue
		}
		floor += power[k]
		nf++
	}
	if nf == 0 {
		return math.NaN()
	}
	floor /= float64(nf)
	sig := power[k0]
	if floor == 0 {
		if sig > 0 {
			return math.Inf(1)
		}
		return math.NaN()
	}
	return sig / floor
}

// SNRdB converts a linear SNR to decibels (10 log10).
func SNRdB(snr float64) float64 {
	return 10 * math.Log10(snr)
}
