// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sol implements the nonlinear (Newton) driver with time-step control
// and pluggable convergence criteria
package sol

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Criterion defines the interface deciding whether the nonlinear iterations
// have converged. Implementations are fed the current solution and residual
// once per iteration.
type Criterion interface {
	SetTolerance(tol float64)  // sets the tolerance
	SetWeights(w la.Vector)    // sets the per-equation weights (nil means all ones)
	SetInitial(u, r la.Vector) // observes the pre-iteration solution and residual
	Update(u, r la.Vector)     // observes the solution and residual of one iteration
	Converged() bool           // tells whether the criterion is met
	Accuracy() float64         // current error measure, for reporting
}

// NewCriterion returns a new convergence criterion
//  Available: "wres"     -- weighted residual reduction
//             "fixpoint" -- weighted solution-increment maximum
func NewCriterion(name string) (Criterion, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find convergence criterion named %q", name)
	}
	return allocator(), nil
}

// allocators holds all available criteria
var allocators = make(map[string]func() Criterion)

// WRes implements the weighted residual reduction criterion: the error of an
// iterate is e = max_i |w_i r_i| and the iterations have converged when the
// error has been reduced to e/e0 ≤ tol with respect to the initial error e0.
type WRes struct {
	tol     float64
	weights la.Vector
	err     float64
	err0    float64
}

func init() {
	allocators["wres"] = func() Criterion {
		return &WRes{tol: 1e-8}
	}
	allocators["fixpoint"] = func() Criterion {
		return &FixPoint{tol: 1e-8}
	}
}

// SetTolerance sets the required residual reduction
func (o *WRes) SetTolerance(tol float64) { o.tol = tol }

// SetWeights sets the per-equation weights
func (o *WRes) SetWeights(w la.Vector) { o.weights = w }

// SetInitial observes the initial residual. A vanishing initial error is
// clipped to avoid dividing by zero.
func (o *WRes) SetInitial(u, r la.Vector) {
	o.err = math.Max(o.maxWeighted(r), 1e-20)
	o.err0 = o.err
}

// Update observes the residual of one iteration
func (o *WRes) Update(u, r la.Vector) {
	o.err = o.maxWeighted(r)
}

// Converged tells whether the residual has been reduced enough
func (o *WRes) Converged() bool { return o.Accuracy() <= o.tol }

// Accuracy returns the current residual reduction e/e0
func (o *WRes) Accuracy() float64 { return o.err / o.err0 }

func (o *WRes) maxWeighted(r la.Vector) (e float64) {
	for i, v := range r {
		w := 1.0
		if o.weights != nil {
			w = o.weights[i]
		}
		e = math.Max(e, w*math.Abs(v))
	}
	return
}

// FixPoint implements the weighted solution-increment criterion: the error of
// an iterate is e = max_i |w_i (u_i - uPrev_i)| and the iterations have
// converged when e ≤ tol.
type FixPoint struct {
	tol     float64
	weights la.Vector
	err     float64
	last    la.Vector
}

// SetTolerance sets the largest allowed weighted solution increment
func (o *FixPoint) SetTolerance(tol float64) { o.tol = tol }

// SetWeights sets the per-dof weights
func (o *FixPoint) SetWeights(w la.Vector) { o.weights = w }

// SetInitial stores the pre-iteration solution
func (o *FixPoint) SetInitial(u, r la.Vector) {
	if len(o.last) != len(u) {
		o.last = la.NewVector(len(u))
	}
	copy(o.last, u)
	o.err = math.MaxFloat64
}

// Update measures the increment with respect to the previous iterate
func (o *FixPoint) Update(u, r la.Vector) {
	o.err = 0
	for i, v := range u {
		w := 1.0
		if o.weights != nil {
			w = o.weights[i]
		}
		o.err = math.Max(o.err, w*math.Abs(v-o.last[i]))
	}
	copy(o.last, u)
}

// Converged tells whether the last increment was small enough
func (o *FixPoint) Converged() bool { return o.err <= o.tol }

// Accuracy returns the weighted maximum of the last solution increment
func (o *FixPoint) Accuracy() float64 { return o.err }
