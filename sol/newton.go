// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sol

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// System defines the nonlinear system solved by Newton: the residual and its
// Jacobian for one time increment, plus the hook adapting the primary
// variables after each update (e.g. variable switching).
type System interface {

	// NumDofs returns the total number of degrees of freedom
	NumDofs() int

	// BeginStep saves the converged state so that a failed step can be
	// retried with a smaller increment
	BeginStep()

	// Assemble computes the residual r and the Jacobian K at u for a time
	// increment dt, measured from the state saved by BeginStep
	Assemble(dt float64, u, r la.Vector, K *la.Matrix) error

	// Adapt post-processes u after a Newton update and returns whether any
	// variable changed its interpretation
	Adapt(u la.Vector) (changed bool, err error)
}

// Newton solves one time step of a nonlinear system with the Newton-Raphson
// method. A step failing to converge is retried with the time increment
// halved; a step converging quickly suggests the increment be doubled.
type Newton struct {

	// configuration
	NmaxIt int       // maximum number of iterations
	GoodIt int       // iteration count under which the time step may grow
	DtMin  float64   // smallest allowed time increment
	ShowR  bool      // print residuals during iterations
	Crit   Criterion // convergence criterion

	// system
	sys System

	// scratchpad
	r  la.Vector
	δ  la.Vector
	u0 la.Vector
	K  *la.Matrix
}

// NewNewton returns a Newton solver for the given system. critname selects
// the convergence criterion (see NewCriterion).
func NewNewton(sys System, critname string, tol float64) (o *Newton, err error) {
	o = new(Newton)
	o.NmaxIt = 12
	o.GoodIt = 5
	o.DtMin = 1e-5
	o.sys = sys
	o.Crit, err = NewCriterion(critname)
	if err != nil {
		return nil, err
	}
	o.Crit.SetTolerance(tol)
	n := sys.NumDofs()
	o.r = la.NewVector(n)
	o.δ = la.NewVector(n)
	o.u0 = la.NewVector(n)
	o.K = la.NewMatrix(n, n)
	return
}

// Step advances the system by one time step, solving the nonlinear problem
// with at most NmaxIt iterations. On convergence failure the increment is
// halved and the step retried from the saved state; below DtMin the step is
// abandoned with an error. Returns the increment actually used and the
// suggestion for the next one.
func (o *Newton) Step(u la.Vector, dt float64) (dtUsed, dtNext float64, err error) {

	o.sys.BeginStep()
	copy(o.u0, u)
	divided := false

	for dt >= o.DtMin {

		it, converged, failed := o.iterate(u, dt)
		if failed != nil {
			return 0, 0, failed
		}
		if converged {
			dtUsed, dtNext = dt, dt
			if !divided && it < o.GoodIt {
				dtNext = 2.0 * dt
			}
			return
		}

		// restore and retry with half the increment
		if o.ShowR {
			io.Pfred(". . . %d iterations without convergence: dt = %g → %g . . .\n", o.NmaxIt, dt, dt/2.0)
		}
		copy(u, o.u0)
		dt /= 2.0
		divided = true
	}
	return 0, 0, chk.Err("time increment fell below minimum: %g < %g", dt, o.DtMin)
}

// iterate runs the Newton loop for a fixed increment
func (o *Newton) iterate(u la.Vector, dt float64) (it int, converged bool, err error) {

	if o.ShowR {
		io.Pf("%6s%23s\n", "it", "accuracy")
	}

	for it = 0; it < o.NmaxIt; it++ {

		err = o.sys.Assemble(dt, u, o.r, o.K)
		if err != nil {
			return
		}
		if it == 0 {
			o.Crit.SetInitial(u, o.r)
		} else {
			o.Crit.Update(u, o.r)
			if o.ShowR {
				io.Pf("%6d%23.15e\n", it, o.Crit.Accuracy())
			}
			if o.Crit.Converged() {
				converged = true
				return
			}
		}

		// solve K δ = r and update u -= δ
		la.DenSolve(o.δ, o.K, o.r, true)
		for i := range u {
			u[i] -= o.δ[i]
		}

		// a switched variable changes the meaning of the unknowns, so the
		// residual must be rebuilt at least once more
		changed, aerr := o.sys.Adapt(u)
		if aerr != nil {
			err = aerr
			return
		}
		if changed {
			o.Crit.SetInitial(u, o.r)
		}
	}
	return
}
