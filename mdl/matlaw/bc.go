// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matlaw

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// BrooksCorey implements Brooks and Corey's capillary pressure curves for the
// oil-water and gas-oil pairs together with Corey power-law relative
// permeabilities. Effective saturations use the residual saturations swr, sor
// and sgr.
type BrooksCorey struct {

	// parameters
	λ          float64 // pore-size distribution index
	pceWO      float64 // oil-water entry pressure
	pceGO      float64 // gas-oil entry pressure
	swr        float64 // residual water saturation
	sor        float64 // residual oil saturation
	sgr        float64 // residual gas saturation
	nw, no, ng float64 // Corey exponents
}

// add model to factory
func init() {
	allocators["bc"] = func() Model { return new(BrooksCorey) }
}

// Init initialises model
func (o *BrooksCorey) Init(prms dbf.Params) (err error) {
	o.λ = 2.0
	o.nw, o.no, o.ng = 2.0, 2.0, 2.0
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "lam":
			o.λ = p.V
		case "pcewo":
			o.pceWO = p.V
		case "pcego":
			o.pceGO = p.V
		case "swr":
			o.swr = p.V
		case "sor":
			o.sor = p.V
		case "sgr":
			o.sgr = p.V
		case "nw":
			o.nw = p.V
		case "no":
			o.no = p.V
		case "ng":
			o.ng = p.V
		default:
			return chk.Err("bc: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.λ < 1e-13 {
		return chk.Err("bc: pore-size distribution index lam = %g is invalid", o.λ)
	}
	if o.swr+o.sor+o.sgr >= 1.0 {
		return chk.Err("bc: residual saturations sum to %g ≥ 1", o.swr+o.sor+o.sgr)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o BrooksCorey) GetPrms(example bool) dbf.Params {
	return dbf.Params{
		&dbf.P{N: "lam", V: 2.0},
		&dbf.P{N: "pcewo", V: 0.2},
		&dbf.P{N: "pcego", V: 0.1},
		&dbf.P{N: "swr", V: 0.1},
		&dbf.P{N: "sor", V: 0.05},
		&dbf.P{N: "sgr", V: 0.0},
		&dbf.P{N: "nw", V: 2.0},
		&dbf.P{N: "no", V: 2.0},
		&dbf.P{N: "ng", V: 2.0},
	}
}

// Pc computes the capillary pressure offsets with oil as the datum
func (o BrooksCorey) Pc(sw, so, sg float64) (pc [3]float64) {
	sew := o.seff(sw, o.swr)
	seg := o.seff(1.0-sg, o.sgr)
	pc[0] = -o.pceWO * math.Pow(sew, -1.0/o.λ)
	pc[2] = o.pceGO * math.Pow(seg, -1.0/o.λ)
	return
}

// Kr computes the relative permeabilities
func (o BrooksCorey) Kr(sw, so, sg float64) (kr [3]float64) {
	kr[0] = math.Pow(o.seff(sw, o.swr), o.nw)
	kr[1] = math.Pow(o.seff(so, o.sor), o.no)
	kr[2] = math.Pow(o.seff(sg, o.sgr), o.ng)
	return
}

// seff computes the effective saturation, kept away from zero so that the
// capillary pressure stays finite near the residual saturation
func (o BrooksCorey) seff(s, sr float64) float64 {
	se := (s - sr) / (1.0 - o.swr - o.sor - o.sgr)
	if se < 1e-6 {
		return 1e-6
	}
	if se > 1.0 {
		return 1.0
	}
	return se
}
