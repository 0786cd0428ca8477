// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements a one-dimensional cell-centred finite-volume domain
// driving the black-oil assembler through the nonlinear solver
package sim

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gores/blackoil"
	"github.com/cpmech/gores/inp"
	"github.com/cpmech/gores/mdl/fluid"
	"github.com/cpmech/gores/mdl/matlaw"
)

// Domain holds a column of cells with two-point flux approximation between
// neighbours. It provides the grid-dependent data to the black-oil assembler
// and the residual/Jacobian to the Newton solver, with the Jacobian obtained
// by numerical differencing of the residual.
type Domain struct {

	// input and models
	Sim *inp.Simulation
	Cfg *blackoil.Config
	Sys *fluid.System
	Lay *blackoil.Layout
	Res *blackoil.Residual
	Mat matlaw.Model

	// grid
	Ncells int
	Depth  []float64 // [ncells] depth of cell centres
	Vol    float64   // cell volume
	Area   float64   // face area between neighbours
	Trans  float64   // transmissibility between neighbours

	// state
	T     float64                 // current time
	Vars  []*blackoil.PrimaryVars // [ncells] primary variables
	Iqs   []*blackoil.IntQuants   // [ncells] intensive quantities
	SoMax []float64               // [ncells] largest oil saturation seen

	// wells and boundary conditions
	Wells   map[int][]float64           // cell id → prescribed surface-volume rates
	BcLeft  *blackoil.BoundaryCondition // outer face of the first cell
	BcRight *blackoil.BoundaryCondition // outer face of the last cell

	// scratchpad
	storage0 [][]float64 // [ncells][neq] storage at the beginning of the step
	stg      []float64
	src      []float64
	srcd     []float64
	flx      []float64
	dar      []float64
	bfl      []float64
	rtmp     la.Vector
}

// NewDomain builds the domain from the input data, with a uniform initial
// state assigned from the saturated fluid description
func NewDomain(sd *inp.Simulation) (o *Domain, err error) {

	// models
	o = new(Domain)
	o.Sim = sd
	o.Cfg = sd.Blackoil.GetConfig()
	o.Sys, err = sd.Fluid.GetSystem()
	if err != nil {
		return nil, err
	}
	o.Mat, err = sd.MatLaw.GetModel()
	if err != nil {
		return nil, err
	}
	o.Lay = blackoil.NewLayout(o.Cfg, o.Sys)
	o.Res, err = blackoil.NewResidual(o.Cfg, o.Sys, o.Lay)
	if err != nil {
		return nil, err
	}

	// grid
	g := &sd.Grid
	o.Ncells = g.Ncells
	o.Depth = make([]float64, g.Ncells)
	for i := 0; i < g.Ncells; i++ {
		o.Depth[i] = g.Depth0 + float64(i)*g.Dip
	}
	o.Vol = g.Dx * g.Area
	o.Area = g.Area
	o.Trans = g.Perm * g.Area / g.Dx

	// initial state
	fs, err := o.initialState()
	if err != nil {
		return nil, err
	}
	neq := o.Lay.NumEq
	o.Vars = make([]*blackoil.PrimaryVars, g.Ncells)
	o.Iqs = make([]*blackoil.IntQuants, g.Ncells)
	o.SoMax = make([]float64, g.Ncells)
	o.storage0 = make([][]float64, g.Ncells)
	for i := 0; i < g.Ncells; i++ {
		o.Vars[i] = blackoil.NewPrimaryVars(o.Cfg, o.Sys, o.Lay, 0)
		err = o.Vars[i].AssignMassConservative(fs, o.Mat, true)
		if err != nil {
			return nil, err
		}
		o.Iqs[i] = new(blackoil.IntQuants)
		err = o.Iqs[i].Update(o.Vars[i], o.Mat, g.Porosity)
		if err != nil {
			return nil, err
		}
		o.SoMax[i] = fs.S[fluid.Oil]
		o.storage0[i] = make([]float64, neq)
	}

	// wells and scratchpad
	o.Wells = make(map[int][]float64)
	o.stg = make([]float64, neq)
	o.src = make([]float64, neq)
	o.srcd = make([]float64, neq)
	o.flx = make([]float64, neq)
	o.dar = make([]float64, neq)
	o.bfl = make([]float64, neq)
	o.rtmp = la.NewVector(g.Ncells * neq)
	return
}

// initialState builds the uniform initial fluid state with saturated
// dissolution/vaporization factors
func (o *Domain) initialState() (fs *blackoil.FluidState, err error) {
	ini := &o.Sim.Ini
	sw, sg := ini.Sw, ini.Sg
	so := 1.0 - sw - sg
	if so < 0 {
		return nil, chk.Err("initial saturations exceed one: sw = %g, sg = %g", sw, sg)
	}
	T := o.Sys.TRes
	pc := o.Mat.Pc(sw, so, sg)
	fs = new(blackoil.FluidState)
	fs.T = T
	fs.S = [fluid.NumPhases]float64{sw, so, sg}
	for phase := 0; phase < fluid.NumPhases; phase++ {
		fs.P[phase] = ini.P + pc[phase]
	}
	fs.Rs = o.Sys.RsSat(0, T, fs.P[fluid.Oil], so, 1.0)
	fs.Rv = o.Sys.RvSat(0, T, fs.P[fluid.Gas], so, 1.0)
	fs.Rsw = o.Sys.RswSat(0, T, fs.P[fluid.Water], 0)
	fs.Rvw = o.Sys.RvwSat(0, T, fs.P[fluid.Gas], 0)
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if !o.Sys.PhaseIsActive(phase) {
			continue
		}
		fs.InvB[phase] = o.Sys.InvB(phase, 0, T, fs.P[phase])
	}
	ρw, ρo, ρg := o.Sys.RefDens(fluid.Water, 0), o.Sys.RefDens(fluid.Oil, 0), o.Sys.RefDens(fluid.Gas, 0)
	fs.Dens[fluid.Water] = fs.InvB[fluid.Water] * (ρw + fs.Rsw*ρg)
	fs.Dens[fluid.Oil] = fs.InvB[fluid.Oil] * (ρo + fs.Rs*ρg)
	fs.Dens[fluid.Gas] = fs.InvB[fluid.Gas] * (ρg + fs.Rv*ρo + fs.Rvw*ρw)
	return
}

// SetWell prescribes surface-volume rates (equation-slot indexed, positive
// for injection) at one cell
func (o *Domain) SetWell(cell int, rates []float64) {
	o.Wells[cell] = rates
}

// DofVector collects the primary variables of all cells into one vector
func (o *Domain) DofVector() (u la.Vector) {
	neq := o.Lay.NumEq
	u = la.NewVector(o.Ncells * neq)
	for i, v := range o.Vars {
		copy(u[i*neq:(i+1)*neq], v.Values)
	}
	return
}

// Accept finalizes a converged step: the state is synchronized with u, the
// oil-saturation history is updated and the time advanced
func (o *Domain) Accept(u la.Vector, dt float64) (err error) {
	err = o.sync(u)
	if err != nil {
		return
	}
	err = o.updateIqs()
	if err != nil {
		return
	}
	for i, iq := range o.Iqs {
		o.SoMax[i] = math.Max(o.SoMax[i], iq.Fs.S[fluid.Oil])
	}
	o.T += dt
	return
}

// sync copies the dof vector into the per-cell primary variables
func (o *Domain) sync(u la.Vector) (err error) {
	neq := o.Lay.NumEq
	if len(u) != o.Ncells*neq {
		return chk.Err("dof vector has %d entries but the domain needs %d", len(u), o.Ncells*neq)
	}
	for i, v := range o.Vars {
		copy(v.Values, u[i*neq:(i+1)*neq])
	}
	return
}

// updateIqs recomputes the intensive quantities of all cells
func (o *Domain) updateIqs() (err error) {
	for i, iq := range o.Iqs {
		err = iq.Update(o.Vars[i], o.Mat, o.Sim.Grid.Porosity)
		if err != nil {
			return
		}
	}
	return
}

// residual computes the discretized conservation-law residual at u:
// storage change plus the divergence of the face fluxes minus sources
func (o *Domain) residual(dt float64, u, r la.Vector) (err error) {
	err = o.sync(u)
	if err != nil {
		return
	}
	err = o.updateIqs()
	if err != nil {
		return
	}
	neq := o.Lay.NumEq

	// accumulation and sources
	for i := 0; i < o.Ncells; i++ {
		err = o.Res.ComputeStorage(o.stg, o.Iqs[i])
		if err != nil {
			return
		}
		err = o.Res.ComputeSource(o.src, o, i)
		if err != nil {
			return
		}
		err = o.Res.ComputeSourceDense(o.srcd, o, i)
		if err != nil {
			return
		}
		for k := 0; k < neq; k++ {
			r[i*neq+k] = o.Vol*(o.stg[k]-o.storage0[i][k])/dt - o.src[k] - o.srcd[k]*o.Vol
		}
	}

	// interior faces
	for f := 0; f < o.Ncells-1; f++ {
		err = o.Res.ComputeFlux(o.flx, o.dar, o, f, f+1, o.Iqs[f], o.Iqs[f+1], o.Trans, o.Area)
		if err != nil {
			return
		}
		for k := 0; k < neq; k++ {
			r[f*neq+k] += o.flx[k] * o.Area
			r[(f+1)*neq+k] -= o.flx[k] * o.Area
		}
	}

	// boundary faces
	if o.BcLeft != nil {
		err = o.addBoundary(r, o.BcLeft, 0)
		if err != nil {
			return
		}
	}
	if o.BcRight != nil {
		err = o.addBoundary(r, o.BcRight, o.Ncells-1)
		if err != nil {
			return
		}
	}
	return
}

func (o *Domain) addBoundary(r la.Vector, bc *blackoil.BoundaryCondition, cell int) (err error) {
	err = o.Res.ComputeBoundaryFlux(o.bfl, bc, o.Iqs[cell])
	if err != nil {
		return
	}
	neq := o.Lay.NumEq
	for k := 0; k < neq; k++ {
		r[cell*neq+k] += o.bfl[k] * bc.FaceArea
	}
	return
}

// blackoil.Problem //////////////////////////////////////////////////////////////////////////////

// MatParams returns the saturation-function model of a cell
func (o *Domain) MatParams(cell int) matlaw.Model { return o.Mat }

// MaxOilSaturation returns the largest oil saturation seen at a cell
func (o *Domain) MaxOilSaturation(cell int) float64 { return o.SoMax[cell] }

// MaxGasDissolutionFactor returns the largest admissible Rs at a cell
func (o *Domain) MaxGasDissolutionFactor(cell int) float64 { return 1e30 }

// MaxOilVaporizationFactor returns the largest admissible Rv at a cell
func (o *Domain) MaxOilVaporizationFactor(cell int) float64 { return 1e30 }

// Source fills the well rates of a cell
func (o *Domain) Source(src []float64, cell int) error {
	for i := range src {
		src[i] = 0
	}
	if rates, ok := o.Wells[cell]; ok {
		copy(src, rates)
	}
	return nil
}

// SourceDense adds distributed sources; none in this domain
func (o *Domain) SourceDense(src []float64, cell int) error { return nil }

// Gravity returns the gravity acceleration
func (o *Domain) Gravity() float64 { return o.Sim.Grid.Gravity }

// CellDepth returns the depth of a cell centre
func (o *Domain) CellDepth(cell int) float64 { return o.Depth[cell] }

// ThresholdPressure returns the threshold pressure between two cells
func (o *Domain) ThresholdPressure(in, ex int) float64 { return o.Sim.Grid.Thpres }

// sol.System ////////////////////////////////////////////////////////////////////////////////////

// NumDofs returns the total number of degrees of freedom
func (o *Domain) NumDofs() int { return o.Ncells * o.Lay.NumEq }

// BeginStep freezes the storage terms of the converged state
func (o *Domain) BeginStep() {
	for i, iq := range o.Iqs {
		o.Res.ComputeStorage(o.storage0[i], iq)
	}
}

// Assemble computes the residual and its Jacobian by numerical differencing
func (o *Domain) Assemble(dt float64, u, r la.Vector, K *la.Matrix) (err error) {
	err = o.residual(dt, u, r)
	if err != nil {
		return
	}
	n := len(u)
	for j := 0; j < n; j++ {
		h := 1e-8 * (1.0 + math.Abs(u[j]))
		saved := u[j]
		u[j] += h
		err = o.residual(dt, u, o.rtmp)
		u[j] = saved
		if err != nil {
			return
		}
		for i := 0; i < n; i++ {
			K.Set(i, j, (o.rtmp[i]-r[i])/h)
		}
	}

	// leave the state consistent with the unperturbed u
	err = o.sync(u)
	if err != nil {
		return
	}
	return o.updateIqs()
}

// Adapt chops the saturations and switches the primary variables where phases
// appeared or disappeared, writing the result back into u
func (o *Domain) Adapt(u la.Vector) (changed bool, err error) {
	err = o.sync(u)
	if err != nil {
		return
	}
	err = o.updateIqs()
	if err != nil {
		return
	}
	neq := o.Lay.NumEq
	for i, v := range o.Vars {
		if v.ChopAndNormalizeSaturations() {
			changed = true
		}
		if v.AdaptPrimaryVariables(o, i, o.Sim.Solver.Eps) {
			changed = true
		}
		copy(u[i*neq:(i+1)*neq], v.Values)
	}
	if changed {
		err = o.updateIqs()
	}
	return
}
