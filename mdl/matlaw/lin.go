// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matlaw

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Lin implements linear capillary pressures and linear relative
// permeabilities:
//   pcow = pcow0・(1 - sw)    pcgo = pcgo0・sg    kr_i = s_i (clipped to [0,1])
type Lin struct {

	// parameters
	pcow0 float64 // oil-water capillary pressure at sw = 0
	pcgo0 float64 // gas-oil capillary pressure at sg = 1
}

// add model to factory
func init() {
	allocators["lin"] = func() Model { return new(Lin) }
}

// Init initialises model
func (o *Lin) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "pcow0":
			o.pcow0 = p.V
		case "pcgo0":
			o.pcgo0 = p.V
		default:
			return chk.Err("lin: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Lin) GetPrms(example bool) dbf.Params {
	return dbf.Params{
		&dbf.P{N: "pcow0", V: 0.2},
		&dbf.P{N: "pcgo0", V: 0.1},
	}
}

// Pc computes the capillary pressure offsets with oil as the datum
func (o Lin) Pc(sw, so, sg float64) (pc [3]float64) {
	pc[0] = -o.pcow0 * (1.0 - sw)
	pc[2] = o.pcgo0 * sg
	return
}

// Kr computes the relative permeabilities
func (o Lin) Kr(sw, so, sg float64) (kr [3]float64) {
	kr[0] = clip01(sw)
	kr[1] = clip01(so)
	kr[2] = clip01(sg)
	return
}

func clip01(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
