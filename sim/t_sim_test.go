// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gores/inp"
	"github.com/cpmech/gores/mdl/fluid"
)

func Test_dom01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dom01. uniform column at rest has zero residual")

	sd := inp.Example()
	sd.Grid.Ncells = 4
	dom, err := NewDomain(sd)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	chk.Int(tst, "NumDofs", dom.NumDofs(), 4*dom.Lay.NumEq)

	// a flat column with a uniform state: no storage change, no flux
	u := dom.DofVector()
	r := la.NewVector(dom.NumDofs())
	dom.BeginStep()
	err = dom.residual(1.0, u, r)
	if err != nil {
		tst.Errorf("residual failed:\n%v", err)
		return
	}
	for i, v := range r {
		chk.Float64(tst, "residual entry", 1e-12, v, 0.0)
		_ = i
	}
}

func Test_dom02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dom02. wells and state queries")

	sd := inp.Example()
	sd.Grid.Ncells = 2
	dom, err := NewDomain(sd)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	lay := dom.Lay
	rates := make([]float64, lay.NumEq)
	rates[lay.Comp[fluid.Oil]] = -0.001
	dom.SetWell(0, rates)

	src := make([]float64, lay.NumEq)
	err = dom.Source(src, 0)
	if err != nil {
		tst.Errorf("Source failed:\n%v", err)
		return
	}
	chk.Float64(tst, "well rate", 1e-17, src[lay.Comp[fluid.Oil]], -0.001)
	err = dom.Source(src, 1)
	if err != nil {
		tst.Errorf("Source failed:\n%v", err)
		return
	}
	chk.Float64(tst, "no well", 1e-17, src[lay.Comp[fluid.Oil]], 0.0)

	chk.Float64(tst, "depth", 1e-15, dom.CellDepth(1), sd.Grid.Depth0)
	chk.Float64(tst, "soMax", 1e-15, dom.MaxOilSaturation(0), 0.5)
}

func Test_run01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run01. depletion of a two-cell column")

	sd := inp.Example()
	sd.Grid.Ncells = 2
	sd.Grid.Gravity = 0
	sd.Solver.Tf = 2.0
	dom, err := NewDomain(sd)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	// produce oil from the first cell
	rates := make([]float64, dom.Lay.NumEq)
	rates[dom.Lay.Comp[fluid.Oil]] = -0.001
	dom.SetWell(0, rates)

	p0 := dom.Iqs[0].Fs.P[fluid.Oil]
	err = Run(dom, false)
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Float64(tst, "final time", 1e-14, dom.T, 2.0)
	if dom.Iqs[0].Fs.P[fluid.Oil] >= p0 {
		tst.Errorf("production should deplete the pressure: %g >= %g", dom.Iqs[0].Fs.P[fluid.Oil], p0)
	}
	if dom.Iqs[1].Fs.P[fluid.Oil] >= p0 {
		tst.Errorf("the neighbour cell should deplete through the face: %g >= %g", dom.Iqs[1].Fs.P[fluid.Oil], p0)
	}

	// saturations stay physical
	for i, iq := range dom.Iqs {
		st := 0.0
		for phase := 0; phase < fluid.NumPhases; phase++ {
			if iq.Fs.S[phase] < -1e-10 || iq.Fs.S[phase] > 1+1e-10 {
				tst.Errorf("cell %d: saturation out of bounds: %v", i, iq.Fs.S)
			}
			st += iq.Fs.S[phase]
		}
		chk.Float64(tst, "saturations sum to one", 1e-8, st, 1.0)
	}
}

func Test_fileio01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fileio01. save and restore a checkpoint")

	sd := inp.Example()
	sd.Grid.Ncells = 3
	sd.Data.DirOut = tst.TempDir()
	dom, err := NewDomain(sd)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	dom.T = 1.5

	err = dom.SaveState(7)
	if err != nil {
		tst.Errorf("SaveState failed:\n%v", err)
		return
	}

	// a second domain restores the state
	other, err := NewDomain(sd)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	other.T = 0
	err = other.ReadState(sd.Data.DirOut, 7)
	if err != nil {
		tst.Errorf("ReadState failed:\n%v", err)
		return
	}
	chk.Float64(tst, "restored time", 1e-15, other.T, 1.5)
	for i := range dom.Vars {
		if !dom.Vars[i].Equal(other.Vars[i]) {
			tst.Errorf("cell %d: restored state differs", i)
		}
	}

	// missing checkpoint
	if err := other.ReadState(sd.Data.DirOut, 99); err == nil {
		tst.Errorf("missing checkpoint should have been caught")
	}
}
