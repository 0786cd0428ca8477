// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements the black-oil fluid system: pseudo-component
// PVT (pressure-volume-temperature) models and the phase/region database
// consumed by the residual assembler and the primary-variable switching logic
package fluid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// phase indices. the black-oil model uses three phases and three
// pseudo-components (one "main" component per phase)
const (
	Water     = 0
	Oil       = 1
	Gas       = 2
	NumPhases = 3
)

// PhaseName returns the name of a phase
func PhaseName(phase int) string {
	switch phase {
	case Water:
		return "water"
	case Oil:
		return "oil"
	case Gas:
		return "gas"
	}
	return "unknown"
}

// Pvt implements pressure-volume-temperature relations of the three
// pseudo-components within one PVT region.
//  Definitions:
//    InvB   -- inverse formation volume factor: reservoir volume ÷ surface volume
//    Visc   -- dynamic viscosity of phase
//    RsSat  -- saturated gas dissolution factor in oil (Rs at bubble point)
//    RvSat  -- saturated oil vaporization factor in gas (Rv at dew point)
//    RvwSat -- saturated water vaporization factor in gas
//    RswSat -- saturated gas dissolution factor in water
//  All functions are pure; tabulation caches (if any) must be read-only so
//  that one Pvt instance can be shared by concurrent cell evaluations.
type Pvt interface {
	Init(prms dbf.Params) error            // initialises model
	GetPrms(example bool) dbf.Params       // gets (an example of) parameters
	InvB(phase int, T, p float64) float64  // inverse formation volume factor
	Visc(phase int, T, p float64) float64  // dynamic viscosity
	RsSat(T, p, so, soMax float64) float64 // saturated Rs
	RvSat(T, p, so, soMax float64) float64 // saturated Rv
	RvwSat(T, p, cs float64) float64       // saturated Rvw; cs is salt concentration
	RswSat(T, p, cs float64) float64       // saturated Rsw; cs is salt concentration
	SaltSol() float64                      // salt solubility limit
}

// New returns a new PVT model
func New(name string) (Pvt, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("PVT model %q is not available in 'fluid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available PVT models
var allocators = map[string]func() Pvt{}
