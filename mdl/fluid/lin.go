// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Lin implements an analytic PVT model with linear-in-pressure behaviour:
//   invB(p) = b0・(1 + c・(p - p0))
//   Rs(p)   = rs0 + rs1・(p - p0)     (clipped at zero)
// and similarly for Rv, Rvw and Rsw. Salt reduces the water-related factors
// by the factor 1/(1 + ksalt・cs). Viscosities are constant.
type Lin struct {

	// parameters
	p0           float64            // reference pressure
	b0           [NumPhases]float64 // invB at reference pressure, per phase
	c            [NumPhases]float64 // invB pressure slope, per phase
	μ            [NumPhases]float64 // dynamic viscosities
	rs0, rs1     float64            // saturated Rs: value at p0 and slope
	rv0, rv1     float64            // saturated Rv: value at p0 and slope
	rvw0, rvw1   float64            // saturated Rvw: value at p0 and slope
	rsw0, rsw1   float64            // saturated Rsw: value at p0 and slope
	ksalt, csmax float64            // salt sensitivity and solubility limit
}

// add model to factory
func init() {
	allocators["lin"] = func() Pvt { return new(Lin) }
}

// Init initialises model
func (o *Lin) Init(prms dbf.Params) (err error) {
	o.p0 = 1.0
	for i := 0; i < NumPhases; i++ {
		o.b0[i] = 1.0
		o.μ[i] = 1.0
	}
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "p0":
			o.p0 = p.V
		case "bw0":
			o.b0[Water] = p.V
		case "bo0":
			o.b0[Oil] = p.V
		case "bg0":
			o.b0[Gas] = p.V
		case "cw":
			o.c[Water] = p.V
		case "co":
			o.c[Oil] = p.V
		case "cg":
			o.c[Gas] = p.V
		case "muw":
			o.μ[Water] = p.V
		case "muo":
			o.μ[Oil] = p.V
		case "mug":
			o.μ[Gas] = p.V
		case "rs0":
			o.rs0 = p.V
		case "rs1":
			o.rs1 = p.V
		case "rv0":
			o.rv0 = p.V
		case "rv1":
			o.rv1 = p.V
		case "rvw0":
			o.rvw0 = p.V
		case "rvw1":
			o.rvw1 = p.V
		case "rsw0":
			o.rsw0 = p.V
		case "rsw1":
			o.rsw1 = p.V
		case "ksalt":
			o.ksalt = p.V
		case "csmax":
			o.csmax = p.V
		default:
			return chk.Err("lin: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.p0 < 1e-13 {
		return chk.Err("lin: reference pressure p0 = %g is invalid", o.p0)
	}
	for i := 0; i < NumPhases; i++ {
		if o.μ[i] < 1e-13 {
			return chk.Err("lin: viscosity of %s phase = %g is invalid", PhaseName(i), o.μ[i])
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Lin) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "p0", V: 100.0},    // [bar]
			&dbf.P{N: "bw0", V: 1.0},     // [-]
			&dbf.P{N: "bo0", V: 0.9},     // [-]
			&dbf.P{N: "bg0", V: 90.0},    // [-]
			&dbf.P{N: "cw", V: 4.5e-5},   // [1/bar]
			&dbf.P{N: "co", V: 1.0e-4},   // [1/bar]
			&dbf.P{N: "cg", V: 8.0e-3},   // [1/bar]
			&dbf.P{N: "muw", V: 0.5e-3},  // [Pa・s]
			&dbf.P{N: "muo", V: 1.0e-3},  // [Pa・s]
			&dbf.P{N: "mug", V: 2.0e-5},  // [Pa・s]
			&dbf.P{N: "rs0", V: 80.0},    // [-]
			&dbf.P{N: "rs1", V: 0.5},     // [1/bar]
			&dbf.P{N: "rv0", V: 1e-3},    // [-]
			&dbf.P{N: "rv1", V: 1e-5},    // [1/bar]
			&dbf.P{N: "rvw0", V: 1e-4},   // [-]
			&dbf.P{N: "rvw1", V: 1e-6},   // [1/bar]
			&dbf.P{N: "rsw0", V: 1.0},    // [-]
			&dbf.P{N: "rsw1", V: 1e-2},   // [1/bar]
			&dbf.P{N: "ksalt", V: 0.1},   // [m³/kg]
			&dbf.P{N: "csmax", V: 300.0}, // [kg/m³]
		}
	}
	return dbf.Params{
		&dbf.P{N: "p0", V: o.p0},
		&dbf.P{N: "bw0", V: o.b0[Water]},
		&dbf.P{N: "bo0", V: o.b0[Oil]},
		&dbf.P{N: "bg0", V: o.b0[Gas]},
	}
}

// InvB returns the inverse formation volume factor
func (o Lin) InvB(phase int, T, p float64) float64 {
	return o.b0[phase] * (1.0 + o.c[phase]*(p-o.p0))
}

// Visc returns the dynamic viscosity
func (o Lin) Visc(phase int, T, p float64) float64 {
	return o.μ[phase]
}

// RsSat returns the saturated gas dissolution factor in oil
func (o Lin) RsSat(T, p, so, soMax float64) float64 {
	return nonneg(o.rs0 + o.rs1*(p-o.p0))
}

// RvSat returns the saturated oil vaporization factor in gas
func (o Lin) RvSat(T, p, so, soMax float64) float64 {
	return nonneg(o.rv0 + o.rv1*(p-o.p0))
}

// RvwSat returns the saturated water vaporization factor in gas
func (o Lin) RvwSat(T, p, cs float64) float64 {
	return nonneg(o.rvw0+o.rvw1*(p-o.p0)) / (1.0 + o.ksalt*cs)
}

// RswSat returns the saturated gas dissolution factor in water
func (o Lin) RswSat(T, p, cs float64) float64 {
	return nonneg(o.rsw0+o.rsw1*(p-o.p0)) / (1.0 + o.ksalt*cs)
}

// SaltSol returns the salt solubility limit
func (o Lin) SaltSol() float64 {
	return o.csmax
}

func nonneg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
