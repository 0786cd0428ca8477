// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gores/mdl/fluid"
	"github.com/cpmech/gores/mdl/matlaw"
)

// IntQuants holds the per-cell derived quantities consumed by the residual
// assembler. They are computed once per cell per Newton iteration from the
// primary variables and treated as read-only afterwards.
type IntQuants struct {
	Fs                FluidState               // thermodynamic state
	Porosity          float64                  // porosity
	Mobility          [fluid.NumPhases]float64 // kr/mu per phase
	RockCompTransMult float64                  // rock-compaction transmissibility multiplier
	Region            int                      // PVT region index

	// optional extensions
	SolventSat     float64    // solvent saturation
	SolventInvB    float64    // solvent inverse formation volume factor
	ZFrac          float64    // extended black-oil z fraction
	PolymerConc    float64    // polymer concentration
	FoamConc       float64    // foam concentration
	RockIntEnergy  float64    // volumetric internal energy of the rock
	PhaseIntEnergy [fluid.NumPhases]float64
	Micp           [5]float64 // microbes, oxygen, urea, biofilm, calcite
}

// DecodeFluidState reconstructs the thermodynamic state implied by a primary
// variable vector under its current meanings. It is the inverse of
// AssignNaive: phase pressures follow from the switching pressure plus
// capillary offsets, saturations from the switching slots with oil as the
// remainder, and the dissolution/vaporization factors are either the stored
// fractions (fraction meanings) or the saturated values (both phases present).
func DecodeFluidState(vars *PrimaryVars, mat matlaw.Model) (fs *FluidState, err error) {
	sys, lay, cfg := vars.sys, vars.lay, vars.cfg
	reg := vars.Region
	fs = new(FluidState)
	fs.T = vars.Temperature()

	// saturations
	sw, sg := 0.0, 0.0
	switch vars.MeanW {
	case Sw:
		sw = vars.Values[lay.Water]
	case Rvw, WaterDisabled:
		// water absent or the only unknown is the pressure
	case Rsw:
		sw = 1.0 // gas disappeared into the water phase
	default:
		chk.Panic("invalid water meaning %v", vars.MeanW)
	}
	ssol := vars.solventSat()
	switch vars.MeanG {
	case Sg:
		sg = vars.Values[lay.Gas]
	case Rs:
		sg = 0.0
	case Rv:
		sg = 1.0 - sw - ssol // oil disappeared
	case GasDisabled:
		if sys.PhaseIsActive(fluid.Gas) {
			sg = 1.0 - sw - ssol // water + gas case
		}
	default:
		chk.Panic("invalid gas meaning %v", vars.MeanG)
	}
	so := 0.0
	if sys.PhaseIsActive(fluid.Oil) {
		so = 1.0 - sw - sg - ssol
	}
	if vars.MeanW == Rsw {
		sw = 1.0 - so - ssol
	}
	fs.S[fluid.Water], fs.S[fluid.Oil], fs.S[fluid.Gas] = sw, so, sg

	// salt
	if cfg.Brine {
		switch vars.MeanB {
		case Cs:
			fs.SaltConc = vars.Values[lay.Salt]
		case Sp:
			fs.SaltSat = vars.Values[lay.Salt]
			fs.SaltConc = sys.SaltSol(reg)
		default:
			chk.Panic("invalid brine meaning %v", vars.MeanB)
		}
	}

	// phase pressures: switching pressure plus capillary offsets (oil datum)
	pc := mat.Pc(sw, so, sg)
	p := vars.Values[lay.Pressure]
	var po float64
	switch vars.MeanP {
	case Po:
		po = p
	case Pg:
		po = p - pc[fluid.Gas]
	case Pw:
		po = p - pc[fluid.Water]
	default:
		chk.Panic("invalid pressure meaning %v", vars.MeanP)
	}
	for phase := 0; phase < fluid.NumPhases; phase++ {
		fs.P[phase] = po + pc[phase]
	}

	// dissolution and vaporization factors
	soMax := so
	if sys.DissolvedGas {
		if vars.MeanG == Rs {
			fs.Rs = vars.Values[lay.Gas]
		} else if sg > 0 && so > 0 {
			fs.Rs = sys.RsSat(reg, fs.T, fs.P[fluid.Oil], so, soMax)
		}
	}
	if sys.VaporizedOil {
		if vars.MeanG == Rv {
			fs.Rv = vars.Values[lay.Gas]
		} else if sg > 0 && so > 0 {
			fs.Rv = sys.RvSat(reg, fs.T, fs.P[fluid.Gas], so, soMax)
		}
	}
	if sys.VaporizedWater {
		if vars.MeanW == Rvw {
			fs.Rvw = vars.Values[lay.Water]
		} else if sg > 0 && sw > 0 {
			fs.Rvw = sys.RvwSat(reg, fs.T, fs.P[fluid.Gas], fs.SaltConc)
		}
	}
	if sys.DissolvedGasInWater {
		if vars.MeanW == Rsw {
			fs.Rsw = vars.Values[lay.Water]
		} else if sg > 0 && sw > 0 {
			fs.Rsw = sys.RswSat(reg, fs.T, fs.P[fluid.Water], fs.SaltConc)
		}
	}

	// inverse formation volume factors and densities
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if !sys.PhaseIsActive(phase) {
			continue
		}
		fs.InvB[phase] = sys.InvB(phase, reg, fs.T, fs.P[phase])
	}
	if sys.PhaseIsActive(fluid.Water) {
		fs.Dens[fluid.Water] = fs.InvB[fluid.Water] * (sys.RefDens(fluid.Water, reg) + fs.Rsw*sys.RefDens(fluid.Gas, reg))
	}
	if sys.PhaseIsActive(fluid.Oil) {
		fs.Dens[fluid.Oil] = fs.InvB[fluid.Oil] * (sys.RefDens(fluid.Oil, reg) + fs.Rs*sys.RefDens(fluid.Gas, reg))
	}
	if sys.PhaseIsActive(fluid.Gas) {
		fs.Dens[fluid.Gas] = fs.InvB[fluid.Gas] * (sys.RefDens(fluid.Gas, reg) + fs.Rv*sys.RefDens(fluid.Oil, reg) + fs.Rvw*sys.RefDens(fluid.Water, reg))
	}
	return
}

// Update recomputes the intensive quantities from a primary variable vector.
// Mobilities use the material law's relative permeabilities and the PVT
// viscosities at the decoded phase pressures.
func (o *IntQuants) Update(vars *PrimaryVars, mat matlaw.Model, porosity float64) (err error) {
	fs, err := DecodeFluidState(vars, mat)
	if err != nil {
		return
	}
	o.Fs = *fs
	o.Porosity = porosity
	o.Region = vars.Region
	if o.RockCompTransMult == 0 {
		o.RockCompTransMult = 1.0
	}
	sys := vars.sys
	kr := mat.Kr(fs.S[fluid.Water], fs.S[fluid.Oil], fs.S[fluid.Gas])
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if !sys.PhaseIsActive(phase) {
			o.Mobility[phase] = 0
			continue
		}
		o.Mobility[phase] = kr[phase] / sys.Visc(phase, vars.Region, fs.T, fs.P[phase])
	}
	lay, cfg := vars.lay, vars.cfg
	if cfg.Solvent {
		o.SolventSat = vars.Values[lay.Solvent]
		if o.SolventInvB == 0 {
			o.SolventInvB = 1.0
		}
	}
	if cfg.Extbo {
		o.ZFrac = vars.Values[lay.Zfrac]
	}
	if cfg.Polymer {
		o.PolymerConc = vars.Values[lay.Polymer]
	}
	if cfg.Foam {
		o.FoamConc = vars.Values[lay.Foam]
	}
	if cfg.MICP {
		for i := 0; i < 5; i++ {
			o.Micp[i] = vars.Values[lay.Micp0+i]
		}
	}
	return
}
