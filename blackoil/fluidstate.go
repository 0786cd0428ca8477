// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"github.com/cpmech/gores/mdl/fluid"
)

// FluidState holds the thermodynamic state of the fluids in one cell
type FluidState struct {
	T        float64                  // temperature
	P        [fluid.NumPhases]float64 // phase pressures
	S        [fluid.NumPhases]float64 // phase saturations
	InvB     [fluid.NumPhases]float64 // inverse formation volume factors
	Dens     [fluid.NumPhases]float64 // phase densities
	Rs       float64                  // gas dissolved in oil
	Rv       float64                  // oil vaporized in gas
	Rsw      float64                  // gas dissolved in water
	Rvw      float64                  // water vaporized in gas
	SaltConc float64                  // salt concentration in water
	SaltSat  float64                  // precipitated (solid) salt saturation
}

// GetCopy returns a copy of this state
func (o *FluidState) GetCopy() *FluidState {
	s := *o
	return &s
}

// Set copies another state into this one
func (o *FluidState) Set(other *FluidState) {
	*o = *other
}
