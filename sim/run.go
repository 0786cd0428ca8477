// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gores/sol"
)

// Run advances the domain to the final time with adaptive time increments.
// Failed steps are retried with smaller increments by the Newton driver;
// quickly converging steps grow the increment.
func Run(dom *Domain, verbose bool) (err error) {

	// solver
	sd := &dom.Sim.Solver
	nwt, err := sol.NewNewton(dom, sd.Type, sd.Tol)
	if err != nil {
		return
	}
	nwt.NmaxIt = sd.NmaxIt
	nwt.GoodIt = sd.GoodIt
	nwt.DtMin = sd.DtMin
	nwt.ShowR = sd.ShowR

	// time loop
	u := dom.DofVector()
	dt := sd.DtIni
	for dom.T < sd.Tf {
		if dom.T+dt > sd.Tf {
			dt = sd.Tf - dom.T
		}
		dtUsed, dtNext, serr := nwt.Step(u, dt)
		if serr != nil {
			return serr
		}
		err = dom.Accept(u, dtUsed)
		if err != nil {
			return
		}
		if verbose {
			io.Pf("t = %-14g dt = %-14g\n", dom.T, dtUsed)
		}
		dt = dtNext
	}
	return
}
