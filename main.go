// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gores/inp"
	"github.com/cpmech/gores/mdl/fluid"
	"github.com/cpmech/gores/sim"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", false)
	verbose := io.ArgToBool(1, true)
	saveState := io.ArgToBool(2, false)
	hasfile := fnamepath != ".sim" && fnamepath != ""

	// message
	if verbose {
		io.PfWhite("\nGores -- Go Black-Oil Reservoir Simulator\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"save final state", "saveState", saveState,
		))
	}

	// simulation data: from file, or the built-in depletion example
	var sd *inp.Simulation
	var err error
	if hasfile {
		sd, err = inp.ReadSim(fnamepath)
		if err != nil {
			chk.Panic("cannot read simulation file:\n%v", err)
		}
	} else {
		sd = inp.Example()
	}

	// domain: the example produces oil from the first cell
	dom, err := sim.NewDomain(sd)
	if err != nil {
		chk.Panic("cannot build domain:\n%v", err)
	}
	if !hasfile {
		rates := make([]float64, dom.Lay.NumEq)
		rates[dom.Lay.Comp[fluid.Oil]] = -0.001
		dom.SetWell(0, rates)
	}

	// run simulation
	err = sim.Run(dom, verbose)
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}

	// report
	if verbose {
		io.Pf("\n%10s%14s%14s%14s%14s\n", "cell", "p_oil", "sw", "so", "sg")
		for i, iq := range dom.Iqs {
			io.Pf("%10d%14.6f%14.6f%14.6f%14.6f\n", i,
				iq.Fs.P[fluid.Oil], iq.Fs.S[fluid.Water], iq.Fs.S[fluid.Oil], iq.Fs.S[fluid.Gas])
		}
	}

	// save final state
	if saveState {
		err = dom.SaveState(0)
		if err != nil {
			chk.Panic("cannot save state:\n%v", err)
		}
		if verbose {
			io.Pf("\nstate written to %s\n", sd.Data.DirOut)
		}
	}
}
