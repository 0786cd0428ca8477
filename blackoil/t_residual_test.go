// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gores/mdl/fluid"
)

// iqFromVars builds the intensive quantities of one cell
func iqFromVars(tst *testing.T, vars *PrimaryVars, prob *testProblem, porosity float64) *IntQuants {
	iq := new(IntQuants)
	err := iq.Update(vars, prob.mat, porosity)
	if err != nil {
		tst.Fatalf("IntQuants.Update failed: %v", err)
	}
	return iq
}

func Test_storage01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage01. three-phase storage with cross terms")

	cfg := NewConfig()
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, err := NewResidual(cfg, sys, lay)
	if err != nil {
		tst.Errorf("NewResidual failed: %v", err)
		return
	}
	prob := &testProblem{mat: mat}

	vars := NewPrimaryVars(cfg, sys, lay, 0)
	vars.MeanW, vars.MeanP, vars.MeanG = Sw, Po, Sg
	vars.Values[lay.Water] = 0.3
	vars.Values[lay.Pressure] = 100.0
	vars.Values[lay.Gas] = 0.2
	iq := iqFromVars(tst, vars, prob, 0.25)

	storage := make([]float64, lay.NumEq)
	err = res.ComputeStorage(storage, iq)
	if err != nil {
		tst.Errorf("ComputeStorage failed: %v", err)
		return
	}

	fs := &iq.Fs
	φ := iq.Porosity
	expW := fs.S[fluid.Water] * fs.InvB[fluid.Water] * φ
	expO := fs.S[fluid.Oil]*fs.InvB[fluid.Oil]*φ + fs.Rv*fs.S[fluid.Gas]*fs.InvB[fluid.Gas]*φ
	expG := fs.S[fluid.Gas]*fs.InvB[fluid.Gas]*φ + fs.Rs*fs.S[fluid.Oil]*fs.InvB[fluid.Oil]*φ
	chk.Float64(tst, "water slot", 1e-14, storage[lay.Comp[fluid.Water]], expW)
	chk.Float64(tst, "oil slot", 1e-14, storage[lay.Comp[fluid.Oil]], expO)
	chk.Float64(tst, "gas slot", 1e-14, storage[lay.Comp[fluid.Gas]], expG)
}

func Test_storage02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage02. mass conservation mode scales by surface densities")

	cfg := NewConfig()
	cfg.ConserveSurfaceVolume = false
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, err := NewResidual(cfg, sys, lay)
	if err != nil {
		tst.Errorf("NewResidual failed: %v", err)
		return
	}
	prob := &testProblem{mat: mat}

	vars := NewPrimaryVars(cfg, sys, lay, 0)
	vars.MeanW, vars.MeanP, vars.MeanG = Sw, Po, Sg
	vars.Values[lay.Water] = 0.3
	vars.Values[lay.Pressure] = 100.0
	vars.Values[lay.Gas] = 0.2
	iq := iqFromVars(tst, vars, prob, 0.25)

	storage := make([]float64, lay.NumEq)
	res.ComputeStorage(storage, iq)

	// compare against the surface-volume run scaled by the densities
	cfgSV := NewConfig()
	resSV, _ := NewResidual(cfgSV, sys, NewLayout(cfgSV, sys))
	storageSV := make([]float64, lay.NumEq)
	resSV.ComputeStorage(storageSV, iq)
	for phase := 0; phase < fluid.NumPhases; phase++ {
		chk.Float64(tst, fluid.PhaseName(phase), 1e-13,
			storage[lay.Comp[phase]], storageSV[lay.Comp[phase]]*sys.RefDens(phase, 0))
	}
}

func Test_flux01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flux01. conservation antisymmetry with gravity")

	cfg := NewConfig()
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, err := NewResidual(cfg, sys, lay)
	if err != nil {
		tst.Errorf("NewResidual failed: %v", err)
		return
	}
	prob := &testProblem{mat: mat, depths: []float64{1000.0, 1001.5}, grav: 9.81, thpres: 0.0}

	mk := func(sw, p, sg float64) *IntQuants {
		vars := NewPrimaryVars(cfg, sys, lay, 0)
		vars.MeanW, vars.MeanP, vars.MeanG = Sw, Po, Sg
		vars.Values[lay.Water] = sw
		vars.Values[lay.Pressure] = p
		vars.Values[lay.Gas] = sg
		return iqFromVars(tst, vars, prob, 0.25)
	}
	iqA := mk(0.3, 101.0, 0.2)
	iqB := mk(0.4, 100.0, 0.1)

	trans, faceArea := 2.5, 1.2
	fluxAB := make([]float64, lay.NumEq)
	darcyAB := make([]float64, lay.NumEq)
	err = res.ComputeFlux(fluxAB, darcyAB, prob, 0, 1, iqA, iqB, trans, faceArea)
	if err != nil {
		tst.Errorf("ComputeFlux failed: %v", err)
		return
	}
	fluxBA := make([]float64, lay.NumEq)
	darcyBA := make([]float64, lay.NumEq)
	err = res.ComputeFlux(fluxBA, darcyBA, prob, 1, 0, iqB, iqA, trans, faceArea)
	if err != nil {
		tst.Errorf("ComputeFlux failed: %v", err)
		return
	}
	for i := 0; i < lay.NumEq; i++ {
		chk.Float64(tst, "flux slot", 1e-13, fluxAB[i], -fluxBA[i])
		chk.Float64(tst, "darcy slot", 1e-13, darcyAB[i], -darcyBA[i])
	}
	nonzero := false
	for _, v := range fluxAB {
		if v != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		tst.Errorf("the flux should not vanish for distinct states")
	}
}

func Test_flux02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flux02. zero pressure difference short-circuits")

	cfg := NewConfig()
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, _ := NewResidual(cfg, sys, lay)
	prob := &testProblem{mat: mat, depths: []float64{1000.0, 1000.0}, grav: 0.0}

	vars := NewPrimaryVars(cfg, sys, lay, 0)
	vars.MeanW, vars.MeanP, vars.MeanG = Sw, Po, Sg
	vars.Values[lay.Water] = 0.3
	vars.Values[lay.Pressure] = 100.0
	vars.Values[lay.Gas] = 0.2
	iq := iqFromVars(tst, vars, prob, 0.25)

	flux := make([]float64, lay.NumEq)
	darcy := make([]float64, lay.NumEq)
	err := res.ComputeFlux(flux, darcy, prob, 0, 1, iq, iq, 2.5, 1.2)
	if err != nil {
		tst.Errorf("ComputeFlux failed: %v", err)
		return
	}
	for i := 0; i < lay.NumEq; i++ {
		chk.Float64(tst, "flux slot", 1e-15, flux[i], 0.0)
		chk.Float64(tst, "darcy slot", 1e-15, darcy[i], 0.0)
	}
}

func Test_flux03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flux03. threshold pressure blocks small differences")

	cfg := NewConfig()
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, _ := NewResidual(cfg, sys, lay)
	prob := &testProblem{mat: mat, depths: []float64{0, 0}, grav: 0.0, thpres: 10.0}

	mk := func(p float64) *IntQuants {
		vars := NewPrimaryVars(cfg, sys, lay, 0)
		vars.MeanW, vars.MeanP, vars.MeanG = Sw, Po, Sg
		vars.Values[lay.Water] = 0.3
		vars.Values[lay.Pressure] = p
		vars.Values[lay.Gas] = 0.2
		return iqFromVars(tst, vars, prob, 0.25)
	}
	iqA := mk(100.5)
	iqB := mk(100.0)

	flux := make([]float64, lay.NumEq)
	darcy := make([]float64, lay.NumEq)
	res.ComputeFlux(flux, darcy, prob, 0, 1, iqA, iqB, 2.5, 1.2)
	for i := 0; i < lay.NumEq; i++ {
		chk.Float64(tst, "blocked flux", 1e-15, flux[i], 0.0)
	}
}

func Test_bflux01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bflux01. boundary conditions")

	cfg := NewConfig()
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, _ := NewResidual(cfg, sys, lay)
	prob := &testProblem{mat: mat}

	vars := NewPrimaryVars(cfg, sys, lay, 0)
	vars.MeanW, vars.MeanP, vars.MeanG = Sw, Po, Sg
	vars.Values[lay.Water] = 0.3
	vars.Values[lay.Pressure] = 100.0
	vars.Values[lay.Gas] = 0.2
	iq := iqFromVars(tst, vars, prob, 0.25)

	// RATE: the prescribed rates pass through unchanged
	rate := []float64{1.5, -0.5, 2.0}
	bflux := make([]float64, lay.NumEq)
	err := res.ComputeBoundaryFlux(bflux, &BoundaryCondition{Type: RATE, MassRate: rate}, iq)
	if err != nil {
		tst.Errorf("ComputeBoundaryFlux failed: %v", err)
		return
	}
	chk.Array(tst, "rate", 1e-15, bflux, rate)

	// FREE with higher boundary pressure: influx on every phase
	bfs := iq.Fs.GetCopy()
	for phase := 0; phase < fluid.NumPhases; phase++ {
		bfs.P[phase] += 5.0
	}
	bc := &BoundaryCondition{Type: FREE, Fs: bfs, Trans: 2.5, FaceArea: 1.2}
	err = res.ComputeBoundaryFlux(bflux, bc, iq)
	if err != nil {
		tst.Errorf("ComputeBoundaryFlux failed: %v", err)
		return
	}
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if bflux[lay.Comp[phase]] >= 0 {
			tst.Errorf("influx should be negative on the %s slot: %g", fluid.PhaseName(phase), bflux[lay.Comp[phase]])
		}
	}

	// equal pressures give no flux
	bc = &BoundaryCondition{Type: FREE, Fs: iq.Fs.GetCopy(), Trans: 2.5, FaceArea: 1.2}
	res.ComputeBoundaryFlux(bflux, bc, iq)
	for i := 0; i < lay.NumEq; i++ {
		chk.Float64(tst, "no flux", 1e-15, bflux[i], 0.0)
	}

	// unknown type is a configuration error
	err = res.ComputeBoundaryFlux(bflux, &BoundaryCondition{Type: BCType(99)}, iq)
	if err == nil {
		tst.Errorf("an unknown boundary condition type should fail")
	}
}

func Test_guard01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("guard01. extensions without face transport are rejected")

	sys := fluid.NewSystem(true, true, true, 300.0)
	pvt, _ := fluid.New("lin")
	sys.AddRegion("lin", pvt.GetPrms(true), [fluid.NumPhases]float64{1000.0, 800.0, 1.2})

	cfg := NewConfig()
	cfg.Solvent = true
	lay := NewLayout(cfg, sys)
	_, err := NewResidual(cfg, sys, lay)
	if err == nil {
		tst.Errorf("NewResidual should reject the solvent extension")
		return
	}

	cfg = NewConfig()
	cfg.Brine = true
	cfg.SaltPrecipitation = true
	lay = NewLayout(cfg, sys)
	_, err = NewResidual(cfg, sys, lay)
	if err == nil {
		tst.Errorf("NewResidual should reject the brine extension")
	}
}

func Test_source01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("source01. source pass-through and dense variant")

	cfg := NewConfig()
	sys, lay, mat := threePhase(tst, cfg, true, true, false, false)
	res, _ := NewResidual(cfg, sys, lay)
	prob := &testProblem{mat: mat, src: []float64{1.0, 2.0, 3.0}}

	src := make([]float64, lay.NumEq)
	err := res.ComputeSource(src, prob, 0)
	if err != nil {
		tst.Errorf("ComputeSource failed: %v", err)
		return
	}
	chk.Array(tst, "src", 1e-15, src, []float64{1.0, 2.0, 3.0})

	// the dense variant zero-initialises before adding
	src[0], src[1], src[2] = 9.0, 9.0, 9.0
	err = res.ComputeSourceDense(src, prob, 0)
	if err != nil {
		tst.Errorf("ComputeSourceDense failed: %v", err)
		return
	}
	chk.Array(tst, "dense src", 1e-15, src, []float64{1.0, 2.0, 3.0})
}
