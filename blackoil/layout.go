// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"github.com/cpmech/gores/mdl/fluid"
)

// Layout maps equations and primary variables to slots in the per-cell
// vectors. Slots are assigned once at construction time from the active
// phases and enabled extensions; a disabled quantity gets slot -1 and no
// zero-filled column. Continuity equations of active phases come first,
// then the optional slots in fixed order: solvent, zFraction, polymer,
// energy, foam, brine, MICP.
type Layout struct {

	// totals
	NumEq int // number of equations = number of primary variables

	// equation slots: continuity of each pseudo-component (-1 if inactive)
	Comp [fluid.NumPhases]int

	// primary variable slots (-1 if disabled)
	Water    int // switching water variable (Sw/Rvw/Rsw)
	Pressure int // switching pressure variable (Po/Pg/Pw)
	Gas      int // switching gas variable (Sg/Rs/Rv)

	// optional slots, equation and primary variable alike (-1 if disabled)
	Solvent int // solvent saturation
	Zfrac   int // extended black-oil z fraction
	Polymer int // polymer concentration
	Temp    int // temperature
	Foam    int // foam concentration
	Salt    int // salt concentration or precipitated-salt saturation
	Micp0   int // first of five MICP concentration slots

	// switching capabilities
	WaterSwitch bool // the water slot exists and can switch meaning
	GasSwitch   bool // the gas slot exists and can switch meaning
}

// NewLayout computes the slot assignment for a configuration
func NewLayout(cfg *Config, sys *fluid.System) (o *Layout) {
	o = &Layout{
		Water: -1, Pressure: -1, Gas: -1,
		Solvent: -1, Zfrac: -1, Polymer: -1, Temp: -1, Foam: -1, Salt: -1, Micp0: -1,
	}
	for i := range o.Comp {
		o.Comp[i] = -1
	}

	// the water slot exists whenever water is active alongside another phase
	n := 0
	o.WaterSwitch = sys.PhaseIsActive(fluid.Water) && sys.NumActivePhases() > 1
	if o.WaterSwitch {
		o.Water = n
		n++
	}
	o.Pressure = n
	n++
	o.GasSwitch = sys.PhaseIsActive(fluid.Gas) && sys.PhaseIsActive(fluid.Oil)
	if o.GasSwitch {
		o.Gas = n
		n++
	}

	// optional slots in fixed order
	if cfg.Solvent {
		o.Solvent = n
		n++
	}
	if cfg.Extbo {
		o.Zfrac = n
		n++
	}
	if cfg.Polymer {
		o.Polymer = n
		n++
	}
	if cfg.Energy {
		o.Temp = n
		n++
	}
	if cfg.Foam {
		o.Foam = n
		n++
	}
	if cfg.Brine {
		o.Salt = n
		n++
	}
	if cfg.MICP {
		o.Micp0 = n
		n += 5
	}
	o.NumEq = n

	// continuity equation slots: reuse the primary-variable numbering so that
	// the water equation pairs with the water slot, etc.
	ieq := 0
	if sys.PhaseIsActive(fluid.Water) {
		o.Comp[fluid.Water] = ieq
		ieq++
	}
	if sys.PhaseIsActive(fluid.Oil) {
		o.Comp[fluid.Oil] = ieq
		ieq++
	}
	if sys.PhaseIsActive(fluid.Gas) {
		o.Comp[fluid.Gas] = ieq
		ieq++
	}
	return
}

// NumMassEq returns the number of pseudo-component continuity equations
func (o *Layout) NumMassEq() (n int) {
	for _, i := range o.Comp {
		if i >= 0 {
			n++
		}
	}
	return
}
