// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Region holds the PVT model and reference (surface) densities of one region
type Region struct {
	Pvt     Pvt                // PVT model
	RefDens [NumPhases]float64 // surface densities of water, oil and gas
}

// System gathers the fluid description shared by all cells: which phases
// exist, which species transfers are enabled, the reservoir temperature and
// the per-region PVT data. A System is read-only after Check and may be
// shared by concurrent cell evaluations.
type System struct {

	// flags
	Active             [NumPhases]bool // water, oil, gas present
	DissolvedGas       bool            // gas dissolves in oil (Rs)
	VaporizedOil       bool            // oil vaporizes in gas (Rv)
	VaporizedWater     bool            // water vaporizes in gas (Rvw)
	DissolvedGasInWater bool            // gas dissolves in water (Rsw)

	// data
	TRes    float64   // reservoir temperature (isothermal runs)
	regions []*Region // per-region PVT data
}

// NewSystem returns a fluid system with the given active phases
func NewSystem(water, oil, gas bool, tres float64) *System {
	return &System{Active: [NumPhases]bool{water, oil, gas}, TRes: tres}
}

// AddRegion allocates, initialises and appends one PVT region
func (o *System) AddRegion(pvtname string, prms dbf.Params, refDens [NumPhases]float64) (err error) {
	pvt, err := New(pvtname)
	if err != nil {
		return
	}
	err = pvt.Init(prms)
	if err != nil {
		return
	}
	o.regions = append(o.regions, &Region{Pvt: pvt, RefDens: refDens})
	return
}

// Check verifies that the flags and regions are consistent
func (o *System) Check() (err error) {
	if len(o.regions) < 1 {
		return chk.Err("fluid system needs at least one PVT region")
	}
	if o.NumActivePhases() < 1 {
		return chk.Err("fluid system needs at least one active phase")
	}
	if o.DissolvedGas && !(o.Active[Oil] && o.Active[Gas]) {
		return chk.Err("dissolved gas (Rs) requires both oil and gas phases")
	}
	if o.VaporizedOil && !(o.Active[Oil] && o.Active[Gas]) {
		return chk.Err("vaporized oil (Rv) requires both oil and gas phases")
	}
	if o.VaporizedWater && !(o.Active[Water] && o.Active[Gas]) {
		return chk.Err("vaporized water (Rvw) requires both water and gas phases")
	}
	if o.DissolvedGasInWater && !(o.Active[Water] && o.Active[Gas]) {
		return chk.Err("dissolved gas in water (Rsw) requires both water and gas phases")
	}
	for i, reg := range o.regions {
		for phase := 0; phase < NumPhases; phase++ {
			if o.Active[phase] && reg.RefDens[phase] < 1e-13 {
				return chk.Err("region %d: reference density of %s phase = %g is invalid", i, PhaseName(phase), reg.RefDens[phase])
			}
		}
	}
	return
}

// PhaseIsActive tells whether a phase is present in the model
func (o *System) PhaseIsActive(phase int) bool {
	return o.Active[phase]
}

// NumActivePhases returns the number of active phases
func (o *System) NumActivePhases() (n int) {
	for _, a := range o.Active {
		if a {
			n++
		}
	}
	return
}

// NumRegions returns the number of PVT regions
func (o *System) NumRegions() int {
	return len(o.regions)
}

// RefDens returns the surface density of a phase's main component
func (o *System) RefDens(phase, reg int) float64 {
	return o.regions[reg].RefDens[phase]
}

// InvB returns the inverse formation volume factor
func (o *System) InvB(phase, reg int, T, p float64) float64 {
	return o.regions[reg].Pvt.InvB(phase, T, p)
}

// Visc returns the dynamic viscosity
func (o *System) Visc(phase, reg int, T, p float64) float64 {
	return o.regions[reg].Pvt.Visc(phase, T, p)
}

// RsSat returns the saturated gas dissolution factor in oil
func (o *System) RsSat(reg int, T, p, so, soMax float64) float64 {
	if !o.DissolvedGas {
		return 0
	}
	return o.regions[reg].Pvt.RsSat(T, p, so, soMax)
}

// RvSat returns the saturated oil vaporization factor in gas
func (o *System) RvSat(reg int, T, p, so, soMax float64) float64 {
	if !o.VaporizedOil {
		return 0
	}
	return o.regions[reg].Pvt.RvSat(T, p, so, soMax)
}

// RvwSat returns the saturated water vaporization factor in gas
func (o *System) RvwSat(reg int, T, p, cs float64) float64 {
	if !o.VaporizedWater {
		return 0
	}
	return o.regions[reg].Pvt.RvwSat(T, p, cs)
}

// RswSat returns the saturated gas dissolution factor in water
func (o *System) RswSat(reg int, T, p, cs float64) float64 {
	if !o.DissolvedGasInWater {
		return 0
	}
	return o.regions[reg].Pvt.RswSat(T, p, cs)
}

// SaltSol returns the salt solubility limit
func (o *System) SaltSol(reg int) float64 {
	return o.regions[reg].Pvt.SaltSol()
}
