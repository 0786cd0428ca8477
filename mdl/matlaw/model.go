// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package matlaw implements material laws for three-phase flow: capillary
// pressures and relative permeabilities as functions of the saturations
package matlaw

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines capillary pressure and relative permeability relations.
//  Pc returns per-phase capillary pressure offsets with oil as the datum:
//    p_water = p_oil + pc[0]   (pc[0] = -pcow ≤ 0)
//    p_oil   = p_oil + pc[1]   (pc[1] = 0)
//    p_gas   = p_oil + pc[2]   (pc[2] = pcgo ≥ 0)
//  Kr returns the per-phase relative permeabilities.
type Model interface {
	Init(prms dbf.Params) error        // initialises model
	GetPrms(example bool) dbf.Params   // gets (an example of) parameters
	Pc(sw, so, sg float64) [3]float64  // capillary pressure offsets
	Kr(sw, so, sg float64) [3]float64  // relative permeabilities
}

// New returns a new material law model
func New(name string) (Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("material law model %q is not available in 'matlaw' database", name)
	}
	return allocator(), nil
}

// allocators holds all available material law models
var allocators = map[string]func() Model{}
