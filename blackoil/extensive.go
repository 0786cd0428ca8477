// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

// avgDensity computes the phase density at a face. The average is weighted by
// the saturations, smoothed over the bandwidth so that a phase absent on one
// side does not contribute its (meaningless) density there; when the phase is
// absent on both sides the plain average is used, the value being irrelevant.
func avgDensity(bandwidth, sIn, sEx, rhoIn, rhoEx float64) float64 {
	fIn := clamp(sIn/bandwidth, 0.0, 0.5)
	fEx := clamp(sEx/bandwidth, 0.0, 0.5)
	if fIn+fEx == 0 {
		fIn, fEx = 0.5, 0.5
	}
	return (fIn*rhoIn + fEx*rhoEx) / (fIn + fEx)
}

// phasePressureDiff returns the gravity- and threshold-corrected pressure
// difference of a phase across a face and whether the interior cell is the
// upwind cell. distZg is (depthIn - depthEx) times the gravity acceleration.
// The sign convention: a negative difference means the interior potential is
// higher, so flow goes from interior to exterior. Swapping the two sides
// negates the result.
func phasePressureDiff(cfg *Config, phase int, iqIn, iqEx *IntQuants, distZg, thpres float64) (pdiff float64, upIsIn bool) {
	rho := avgDensity(cfg.SatSmoothBandwidth,
		iqIn.Fs.S[phase], iqEx.Fs.S[phase],
		iqIn.Fs.Dens[phase], iqEx.Fs.Dens[phase])
	pdiff = iqEx.Fs.P[phase] - iqIn.Fs.P[phase] + rho*distZg

	// threshold pressure: no flow until the potential difference exceeds it
	if thpres > 0 {
		if pdiff > -thpres && pdiff < thpres {
			pdiff = 0
		} else if pdiff > 0 {
			pdiff -= thpres
		} else {
			pdiff += thpres
		}
	}
	upIsIn = pdiff < 0
	return
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
