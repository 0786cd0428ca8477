// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gores/mdl/fluid"
	"github.com/cpmech/gores/mdl/matlaw"
)

// PressureMeaning tells which phase pressure the switching pressure slot holds
type PressureMeaning int

// WaterMeaning tells how the switching water slot is interpreted
type WaterMeaning int

// GasMeaning tells how the switching gas slot is interpreted
type GasMeaning int

// BrineMeaning tells how the salt slot is interpreted
type BrineMeaning int

// meanings. exactly one interpretation is active per switchable slot at any
// time; a raw value is only meaningful under its current tag
const (
	Po PressureMeaning = iota // oil pressure
	Pg                        // gas pressure
	Pw                        // water pressure
)

const (
	Sw            WaterMeaning = iota // water saturation
	Rvw                               // water vaporized in gas
	Rsw                               // gas dissolved in water
	WaterDisabled                     // no switching water variable
)

const (
	Sg          GasMeaning = iota // gas saturation
	Rs                            // gas dissolved in oil
	Rv                            // oil vaporized in gas
	GasDisabled                   // no switching gas variable
)

const (
	Cs            BrineMeaning = iota // salt concentration
	Sp                                // precipitated-salt saturation
	BrineDisabled                     // no brine variable
)

func (m PressureMeaning) String() string {
	switch m {
	case Po:
		return "Po"
	case Pg:
		return "Pg"
	case Pw:
		return "Pw"
	}
	return "??"
}

func (m WaterMeaning) String() string {
	switch m {
	case Sw:
		return "Sw"
	case Rvw:
		return "Rvw"
	case Rsw:
		return "Rsw"
	case WaterDisabled:
		return "Disabled"
	}
	return "??"
}

func (m GasMeaning) String() string {
	switch m {
	case Sg:
		return "Sg"
	case Rs:
		return "Rs"
	case Rv:
		return "Rv"
	case GasDisabled:
		return "Disabled"
	}
	return "??"
}

func (m BrineMeaning) String() string {
	switch m {
	case Cs:
		return "Cs"
	case Sp:
		return "Sp"
	case BrineDisabled:
		return "Disabled"
	}
	return "??"
}

// PrimaryVars is the vector of unknowns of one cell together with the
// interpretation tags of its switchable slots and the PVT region index.
// The exported fields round-trip through gob/json checkpoints; Bind must be
// called after decoding to reattach the configuration references.
type PrimaryVars struct {
	Values []float64       // raw unknowns, layout-slot indexed
	MeanW  WaterMeaning    // water slot interpretation
	MeanP  PressureMeaning // pressure slot interpretation
	MeanG  GasMeaning      // gas slot interpretation
	MeanB  BrineMeaning    // salt slot interpretation
	Region int             // PVT region index

	// attached configuration (not serialized)
	cfg *Config
	sys *fluid.System
	lay *Layout
}

// NewPrimaryVars allocates a primary variable vector for one cell
func NewPrimaryVars(cfg *Config, sys *fluid.System, lay *Layout, region int) *PrimaryVars {
	o := &PrimaryVars{
		Values: make([]float64, lay.NumEq),
		MeanW:  WaterDisabled,
		MeanG:  GasDisabled,
		MeanB:  BrineDisabled,
		Region: region,
	}
	o.Bind(cfg, sys, lay)
	return o
}

// NewPrimaryVarsExample returns a vector with non-default meanings and
// arbitrary slot values, handy for exercising checkpoint round trips
func NewPrimaryVarsExample(cfg *Config, sys *fluid.System, lay *Layout) *PrimaryVars {
	o := NewPrimaryVars(cfg, sys, lay, 1)
	o.MeanW = Rsw
	o.MeanP = Pg
	o.MeanG = Rv
	if cfg.SaltPrecipitation {
		o.MeanB = Sp
	} else if cfg.Brine {
		o.MeanB = Cs
	}
	for i := range o.Values {
		o.Values[i] = 1.0 + 0.1*float64(i)
	}
	return o
}

// Bind attaches the configuration references. Must be called on vectors
// restored from a checkpoint before any other operation.
func (o *PrimaryVars) Bind(cfg *Config, sys *fluid.System, lay *Layout) {
	o.cfg = cfg
	o.sys = sys
	o.lay = lay
}

// Temperature returns the cell temperature: the energy slot for thermal runs,
// the reservoir temperature otherwise
func (o *PrimaryVars) Temperature() float64 {
	if o.cfg.Energy {
		return o.Values[o.lay.Temp]
	}
	return o.sys.TRes
}

func (o *PrimaryVars) solventSat() float64 {
	if o.cfg.Solvent {
		return o.Values[o.lay.Solvent]
	}
	return 0
}

func (o *PrimaryVars) zFrac() float64 {
	if o.cfg.Extbo {
		return o.Values[o.lay.Zfrac]
	}
	return 0
}

// Equal compares two vectors field by field, including the meaning tags and
// the region index
func (o *PrimaryVars) Equal(other *PrimaryVars) bool {
	if len(o.Values) != len(other.Values) {
		return false
	}
	for i, v := range o.Values {
		if v != other.Values[i] {
			return false
		}
	}
	return o.MeanW == other.MeanW && o.MeanP == other.MeanP &&
		o.MeanG == other.MeanG && o.MeanB == other.MeanB && o.Region == other.Region
}

// AssignNaive derives the primary variables and their meanings directly from
// a consistent fluid state. "Present" means saturation strictly positive.
func (o *PrimaryVars) AssignNaive(fs *FluidState) {
	sys, lay, cfg := o.sys, o.lay, o.cfg
	gasPresent := sys.PhaseIsActive(fluid.Gas) && fs.S[fluid.Gas] > 0
	oilPresent := sys.PhaseIsActive(fluid.Oil) && fs.S[fluid.Oil] > 0
	waterPresent := sys.PhaseIsActive(fluid.Water) && fs.S[fluid.Water] > 0
	precipitatedSaltPresent := cfg.SaltPrecipitation && fs.SaltSat > 0
	onePhase := sys.NumActivePhases() == 1

	if cfg.Energy {
		o.Values[lay.Temp] = fs.T
	}

	// pressure meaning: oil pressure if oil exists, gas pressure if no oil,
	// water pressure if only water
	switch {
	case gasPresent && sys.VaporizedOil && !oilPresent:
		o.MeanP = Pg
	case sys.PhaseIsActive(fluid.Oil):
		o.MeanP = Po
	case waterPresent && sys.DissolvedGasInWater && !gasPresent:
		o.MeanP = Pw
	case sys.PhaseIsActive(fluid.Gas):
		o.MeanP = Pg
	default:
		o.MeanP = Pw
	}

	// water meaning: saturation, or vaporized water in gas; disabled for
	// gas-oil and one-phase configurations
	switch {
	case waterPresent && gasPresent:
		o.MeanW = Sw
	case gasPresent && sys.VaporizedWater:
		o.MeanW = Rvw
	case waterPresent && sys.DissolvedGasInWater:
		o.MeanW = Rsw
	case sys.PhaseIsActive(fluid.Water) && !onePhase:
		o.MeanW = Sw
	default:
		o.MeanW = WaterDisabled
	}

	// gas meaning: saturation, dissolved gas in oil (Rs) or vaporized oil in
	// gas (Rv); disabled for water-oil, water-gas and one-phase configurations
	switch {
	case gasPresent && oilPresent:
		o.MeanG = Sg
	case oilPresent && sys.DissolvedGas:
		o.MeanG = Rs
	case gasPresent && sys.VaporizedOil:
		o.MeanG = Rv
	case sys.PhaseIsActive(fluid.Gas) && sys.PhaseIsActive(fluid.Oil):
		o.MeanG = Sg
	default:
		o.MeanG = GasDisabled
	}

	// brine meaning
	switch {
	case cfg.SaltPrecipitation && precipitatedSaltPresent:
		o.MeanB = Sp
	case cfg.Brine:
		o.MeanB = Cs
	default:
		o.MeanB = BrineDisabled
	}

	// assign the actual values
	switch o.MeanP {
	case Po:
		o.Values[lay.Pressure] = fs.P[fluid.Oil]
	case Pg:
		o.Values[lay.Pressure] = fs.P[fluid.Gas]
	case Pw:
		o.Values[lay.Pressure] = fs.P[fluid.Water]
	}
	switch o.MeanW {
	case Sw:
		o.Values[lay.Water] = fs.S[fluid.Water]
	case Rvw:
		o.Values[lay.Water] = fs.Rvw
	case Rsw:
		o.Values[lay.Water] = fs.Rsw
	}
	switch o.MeanG {
	case Sg:
		o.Values[lay.Gas] = fs.S[fluid.Gas]
	case Rs:
		o.Values[lay.Gas] = fs.Rs
	case Rv:
		o.Values[lay.Gas] = fs.Rv
	}
	switch o.MeanB {
	case Cs:
		o.Values[lay.Salt] = fs.SaltConc
	case Sp:
		o.Values[lay.Salt] = fs.SaltSat
	}
}

// AssignMassConservative derives primary variables from a fluid state that
// may be out of thermodynamic equilibrium. The per-component surface-volume
// totals of the input are preserved; a bounded fixed-point iteration
// redistributes them between free phases and dissolved/vaporized species at
// the saturated limits, and the converged state is assigned naively.
func (o *PrimaryVars) AssignMassConservative(fs *FluidState, mat matlaw.Model, isInEquilibrium bool) (err error) {
	if isInEquilibrium {
		o.AssignNaive(fs)
		return
	}
	sys := o.sys
	reg := o.Region
	T := fs.T

	// surface-volume totals per unit pore volume
	totW := fs.S[fluid.Water]*fs.InvB[fluid.Water] + fs.S[fluid.Gas]*fs.InvB[fluid.Gas]*fs.Rvw
	totO := fs.S[fluid.Oil]*fs.InvB[fluid.Oil] + fs.S[fluid.Gas]*fs.InvB[fluid.Gas]*fs.Rv
	totG := fs.S[fluid.Gas]*fs.InvB[fluid.Gas] + fs.S[fluid.Oil]*fs.InvB[fluid.Oil]*fs.Rs +
		fs.S[fluid.Water]*fs.InvB[fluid.Water]*fs.Rsw

	// fixed-point loop: distribute the totals at the saturated limits, then
	// update pressures from the new saturations and repeat
	eq := fs.GetCopy()
	NmaxIt, Itol := 20, 1e-10
	converged := false
	for it := 0; it < NmaxIt; it++ {

		rsSat := sys.RsSat(reg, T, eq.P[fluid.Oil], eq.S[fluid.Oil], eq.S[fluid.Oil])
		rvSat := sys.RvSat(reg, T, eq.P[fluid.Gas], eq.S[fluid.Oil], eq.S[fluid.Oil])
		rswSat := sys.RswSat(reg, T, eq.P[fluid.Water], eq.SaltConc)

		bw := sys.InvB(fluid.Water, reg, T, eq.P[fluid.Water])
		bo := sys.InvB(fluid.Oil, reg, T, eq.P[fluid.Oil])
		bg := sys.InvB(fluid.Gas, reg, T, eq.P[fluid.Gas])

		// hydrocarbons: assume both phases present and saturated; drop to the
		// undersaturated single-phase answer if a saturation goes negative
		eq.Rs, eq.Rv, eq.Rsw, eq.Rvw = rsSat, rvSat, 0, 0
		totGhc := totG
		sw := 0.0
		if sys.PhaseIsActive(fluid.Water) {
			// vaporized water is neglected during redistribution
			sw = totW / bw
			if sys.DissolvedGasInWater {
				eq.Rsw = rswSat
				totGhc -= totW * rswSat
			}
		}
		den := 1.0 - rsSat*rvSat
		xo := (totO - rvSat*totGhc) / den // So*invBo
		xg := (totGhc - rsSat*totO) / den // Sg*invBg
		if xg < 0 {
			// all gas dissolves: undersaturated oil
			xg, xo = 0, totO
			eq.Rs, eq.Rv = 0, 0
			if totO > 0 {
				eq.Rs = math.Min(totGhc/totO, rsSat)
			}
		} else if xo < 0 {
			// all oil vaporizes: undersaturated gas
			xo, xg = 0, totGhc
			eq.Rs, eq.Rv = 0, 0
			if totGhc > 0 {
				eq.Rv = math.Min(totO/totGhc, rvSat)
			}
		}

		// saturations from the per-phase surface volumes, normalized
		so, sg := xo/bo, xg/bg
		st := sw + so + sg
		if st < 1e-13 {
			return chk.Err("mass-conservative assignment: vanishing total saturation %g", st)
		}
		sw, so, sg = sw/st, so/st, sg/st

		// update phase pressures with the new capillary offsets (oil datum)
		pc := mat.Pc(sw, so, sg)
		po := eq.P[fluid.Oil]
		maxΔ := 0.0
		for phase := 0; phase < fluid.NumPhases; phase++ {
			pnew := po + pc[phase]
			maxΔ = math.Max(maxΔ, math.Abs(pnew-eq.P[phase]))
			eq.P[phase] = pnew
		}
		maxΔ = math.Max(maxΔ, math.Abs(sw-eq.S[fluid.Water]))
		maxΔ = math.Max(maxΔ, math.Abs(so-eq.S[fluid.Oil]))
		maxΔ = math.Max(maxΔ, math.Abs(sg-eq.S[fluid.Gas]))
		eq.S[fluid.Water], eq.S[fluid.Oil], eq.S[fluid.Gas] = sw, so, sg
		eq.InvB[fluid.Water], eq.InvB[fluid.Oil], eq.InvB[fluid.Gas] = bw, bo, bg

		if maxΔ < Itol {
			converged = true
			break
		}
	}
	if !converged {
		return chk.Err("mass-conservative assignment did not converge after %d iterations", NmaxIt)
	}
	o.AssignNaive(eq)
	return
}

// AdaptPrimaryVariables checks, after a trial Newton update, whether the
// implied phase configuration is still physically meaningful and switches the
// slot interpretations when it is not. eps tightens the switching conditions
// to dampen oscillation; the (1+eps) factor applies on the reappearance side
// only. Returns whether any interpretation changed.
func (o *PrimaryVars) AdaptPrimaryVariables(prob Problem, cell int, eps float64) bool {
	sys, lay, cfg := o.sys, o.lay, o.cfg
	thresholdWaterFilledCell := 1.0 - eps

	// one-phase case: no switching possible
	if o.MeanW == WaterDisabled && o.MeanG == GasDisabled {
		return false
	}

	// read the current trial saturations
	sw, sg := 0.0, 0.0
	saltConcentration := 0.0
	T := o.Temperature()
	if o.MeanW == Sw {
		sw = o.Values[lay.Water]
	}
	if o.MeanG == Sg {
		sg = o.Values[lay.Gas]
	}
	if o.MeanG == GasDisabled && sys.PhaseIsActive(fluid.Gas) {
		sg = 1.0 - sw // water + gas case
	}

	changed := false

	// solid salt: Sp <-> Cs at the solubility limit
	if cfg.SaltPrecipitation {
		saltSolubility := sys.SaltSol(o.Region)
		if o.MeanB == Sp {
			saltConcentration = saltSolubility
			saltSat := o.Values[lay.Salt]
			if saltSat < -eps { // precipitated salt disappears
				o.MeanB = Cs
				o.Values[lay.Salt] = saltSolubility
				changed = true
			}
		} else if o.MeanB == Cs {
			saltConcentration = o.Values[lay.Salt]
			if saltConcentration > saltSolubility+eps { // solid salt appears
				o.MeanB = Sp
				o.Values[lay.Salt] = 0.0
				changed = true
			}
		}
	} else if cfg.Brine {
		saltConcentration = o.Values[lay.Salt]
	}

	// special case: cells with almost only water. short-circuits the cascades
	// below and avoids oscillation; with dissolved gas in water the regular
	// Rsw switch handles this instead
	if sw >= thresholdWaterFilledCell && !sys.DissolvedGasInWater {
		if lay.WaterSwitch {
			o.Values[lay.Water] = 1.0
		}
		if lay.GasSwitch {
			o.Values[lay.Gas] = 0.0
		}
		gasChanged := lay.GasSwitch && o.MeanG != Sg
		if gasChanged {
			o.MeanG = Sg
		}
		return changed || gasChanged
	}

	switch o.MeanW {
	case Sw:
		// water phase disappears: Sw -> Rvw
		if sw < -eps && sg > eps && sys.VaporizedWater {
			p := o.Values[lay.Pressure]
			if o.MeanP == Po {
				mat := prob.MatParams(cell)
				so := 1.0 - sg - o.solventSat()
				pc := mat.Pc(0.0, so, sg+o.solventSat())
				p += pc[fluid.Gas] - pc[fluid.Oil]
			}
			rvwSat := sys.RvwSat(o.Region, T, p, saltConcentration)
			o.MeanW = Rvw
			o.Values[lay.Water] = rvwSat
			changed = true
			break
		}
		// gas phase disappears: Sw -> Rsw and Pg -> Pw
		if sg < -eps && sw > eps && sys.DissolvedGasInWater {
			pg := o.Values[lay.Pressure]
			mat := prob.MatParams(cell)
			so := 1.0 - sw - o.solventSat()
			pc := mat.Pc(sw, so, 0.0)
			pw := pg + (pc[fluid.Water] - pc[fluid.Gas])
			rswSat := sys.RswSat(o.Region, T, pw, saltConcentration)
			o.MeanW = Rsw
			o.Values[lay.Water] = rswSat
			o.MeanP = Pw
			o.Values[lay.Pressure] = pw
			changed = true
		}
	case Rvw:
		// water phase reappears: Rvw -> Sw
		rvw := o.Values[lay.Water]
		p := o.Values[lay.Pressure]
		if o.MeanP == Po {
			mat := prob.MatParams(cell)
			so := 1.0 - sg - o.solventSat()
			pc := mat.Pc(0.0, so, sg+o.solventSat())
			p += pc[fluid.Gas] - pc[fluid.Oil]
		}
		rvwSat := sys.RvwSat(o.Region, T, p, saltConcentration)
		if rvw > rvwSat*(1.0+eps) {
			o.MeanW = Sw
			o.Values[lay.Water] = 0.0
			changed = true
		}
	case Rsw:
		// gas phase reappears as soon as the water holds more gas than
		// saturated water can: Rsw -> Sw and Pw -> Pg
		pw := o.Values[lay.Pressure]
		rswSat := sys.RswSat(o.Region, T, pw, saltConcentration)
		rsw := o.Values[lay.Water]
		if rsw > rswSat {
			o.MeanW = Sw
			o.Values[lay.Water] = 1.0
			o.MeanP = Pg
			mat := prob.MatParams(cell)
			pc := mat.Pc(1.0, 0.0, 0.0)
			pg := pw + (pc[fluid.Gas] - pc[fluid.Water])
			o.Values[lay.Pressure] = pg
			changed = true
		}
	case WaterDisabled:
	default:
		chk.Panic("invalid water meaning %v", o.MeanW)
	}

	switch o.MeanG {
	case Sg:
		// gas phase disappears: Sg -> Rs
		s := 1.0 - sw - o.solventSat()
		if sg < -eps && s > 0.0 && sys.DissolvedGas {
			po := o.Values[lay.Pressure]
			soMax := math.Max(s, prob.MaxOilSaturation(cell))
			rsMax := prob.MaxGasDissolutionFactor(cell)
			rsSat := sys.RsSat(o.Region, T, po, s, soMax)
			o.MeanG = Rs
			o.Values[lay.Gas] = math.Min(rsMax, rsSat)
			changed = true
		}
		// oil phase disappears: Sg -> Rv and Po -> Pg
		so := 1.0 - sw - o.solventSat() - sg
		if so < -eps && sg > 0.0 && sys.VaporizedOil {
			po := o.Values[lay.Pressure]
			mat := prob.MatParams(cell)
			pc := mat.Pc(sw, 0.0, sg+o.solventSat())
			pg := po + (pc[fluid.Gas] - pc[fluid.Oil])
			o.MeanP = Pg
			o.Values[lay.Pressure] = pg
			soMax := prob.MaxOilSaturation(cell)
			rvMax := prob.MaxOilVaporizationFactor(cell)
			rvSat := sys.RvSat(o.Region, T, pg, 0.0, soMax)
			o.MeanG = Rv
			o.Values[lay.Gas] = math.Min(rvMax, rvSat)
			changed = true
		}
	case Rs:
		// gas phase reappears as soon as the oil holds more gas than
		// saturated oil can: Rs -> Sg
		po := o.Values[lay.Pressure]
		so := 1.0 - sw - o.solventSat()
		soMax := math.Max(so, prob.MaxOilSaturation(cell))
		rsMax := prob.MaxGasDissolutionFactor(cell)
		rsSat := sys.RsSat(o.Region, T, po, so, soMax)
		rs := o.Values[lay.Gas]
		if rs > math.Min(rsMax, rsSat*(1.0+eps)) {
			o.MeanG = Sg
			o.Values[lay.Gas] = 0.0
			changed = true
		}
	case Rv:
		// oil phase reappears as soon as the gas holds more oil than
		// saturated gas can: Rv -> Sg and Pg -> Po
		pg := o.Values[lay.Pressure]
		soMax := prob.MaxOilSaturation(cell)
		rvMax := prob.MaxOilVaporizationFactor(cell)
		rvSat := sys.RvSat(o.Region, T, pg, 0.0, soMax)
		rv := o.Values[lay.Gas]
		if rv > math.Min(rvMax, rvSat*(1.0+eps)) {
			sg2 := 1.0 - sw - o.solventSat()
			mat := prob.MatParams(cell)
			pc := mat.Pc(sw, 0.0, sg2+o.solventSat())
			po := pg + (pc[fluid.Oil] - pc[fluid.Gas])
			o.MeanG = Sg
			o.MeanP = Po
			o.Values[lay.Pressure] = po
			o.Values[lay.Gas] = sg2
			changed = true
		}
	case GasDisabled:
	default:
		chk.Panic("invalid gas meaning %v", o.MeanG)
	}
	return changed
}

// ChopAndNormalizeSaturations clamps the saturation-meaning slots to [0,1],
// recomputes the oil saturation as the remainder and rescales everything so
// the saturations sum to one. Returns whether any rescaling was necessary.
func (o *PrimaryVars) ChopAndNormalizeSaturations() bool {
	lay, cfg := o.lay, o.cfg
	if o.MeanW == WaterDisabled && o.MeanG == GasDisabled {
		return false
	}
	sw := 0.0
	if o.MeanW == Sw {
		sw = o.Values[lay.Water]
	}
	sg := 0.0
	if o.MeanG == Sg {
		sg = o.Values[lay.Gas]
	}
	ssol := 0.0
	if cfg.Solvent {
		ssol = o.Values[lay.Solvent]
	}
	so := 1.0 - sw - sg - ssol
	sw = math.Min(math.Max(sw, 0.0), 1.0)
	so = math.Min(math.Max(so, 0.0), 1.0)
	sg = math.Min(math.Max(sg, 0.0), 1.0)
	ssol = math.Min(math.Max(ssol, 0.0), 1.0)
	st := sw + so + sg + ssol
	sw, sg, ssol = sw/st, sg/st, ssol/st
	if o.MeanW == Sw {
		o.Values[lay.Water] = sw
	}
	if o.MeanG == Sg {
		o.Values[lay.Gas] = sg
	}
	if cfg.Solvent {
		o.Values[lay.Solvent] = ssol
	}
	return st != 1.0
}
