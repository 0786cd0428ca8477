// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gores/mdl/fluid"
)

// BCType is the boundary condition type
type BCType int

const (
	RATE      BCType = iota // prescribed mass rate
	FREE                    // flow against an external fluid state
	DIRICHLET               // fixed external fluid state (treated like FREE)
)

// BoundaryCondition describes one boundary face
type BoundaryCondition struct {
	Type     BCType
	MassRate []float64   // RATE: prescribed rates, equation-slot indexed
	Fs       *FluidState // FREE/DIRICHLET: external fluid state
	Trans    float64     // boundary face transmissibility
	FaceArea float64     // boundary face area
	DistZg   float64     // (cell depth - face depth) times gravity
}

// Residual assembles the contributions to the discretized conservation-law
// residual: per-cell storage and source, per-face flux and boundary flux.
// All entry points are pure computations over their inputs; the outer driver
// owns parallel decomposition and the reduction into a global system.
type Residual struct {
	cfg     *Config
	sys     *fluid.System
	lay     *Layout
	modules []Module
}

// NewResidual builds the assembler. Optional extensions without per-face
// transport cannot be enabled: silently dropping their fluxes would produce
// wrong physics, so the configuration is rejected here.
func NewResidual(cfg *Config, sys *fluid.System, lay *Layout) (o *Residual, err error) {
	err = cfg.Validate(sys)
	if err != nil {
		return
	}
	o = &Residual{cfg: cfg, sys: sys, lay: lay, modules: newModules(cfg, sys, lay)}
	var missing []string
	for _, m := range o.modules {
		if m.Enabled() && !m.FluxImplemented() {
			missing = append(missing, m.Name())
		}
	}
	if len(missing) > 0 {
		return nil, chk.Err("per-face transport is not implemented for enabled extensions: %s", strings.Join(missing, ", "))
	}
	return
}

// Layout returns the slot layout used by this assembler
func (o *Residual) Layout() *Layout {
	return o.lay
}

// evalPhaseFluxes distributes one phase's surface-volume flux (or volume, for
// storage) into the equation slots: the phase's main component plus the
// dissolved/vaporized cross terms. Storage and flux share this helper so that
// both use identical species accounting, which the finite-volume divergence
// theorem requires for conservation.
func (o *Residual) evalPhaseFluxes(dest []float64, phase, reg int, surfaceVolume float64, fs *FluidState) {
	lay, sys := o.lay, o.sys
	dest[lay.Comp[phase]] += surfaceVolume
	switch phase {
	case fluid.Oil:
		if sys.DissolvedGas {
			dest[lay.Comp[fluid.Gas]] += fs.Rs * surfaceVolume
		}
	case fluid.Water:
		if sys.DissolvedGasInWater {
			dest[lay.Comp[fluid.Gas]] += fs.Rsw * surfaceVolume
		}
	case fluid.Gas:
		if sys.VaporizedOil {
			dest[lay.Comp[fluid.Oil]] += fs.Rv * surfaceVolume
		}
		if sys.VaporizedWater {
			dest[lay.Comp[fluid.Water]] += fs.Rvw * surfaceVolume
		}
	}
}

// adaptMassConservation converts the surface-volume entries of the component
// slots to mass when the model conserves mass. A disabled phase's species
// contributes nothing by construction, so only active slots are touched.
// Every entry point applies this exactly once.
func (o *Residual) adaptMassConservation(dest []float64, reg int) {
	if o.cfg.ConserveSurfaceVolume {
		return
	}
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if o.lay.Comp[phase] < 0 {
			continue
		}
		dest[o.lay.Comp[phase]] *= o.sys.RefDens(phase, reg)
	}
}

// ComputeStorage computes the accumulation term of one cell: per active phase
// the surface volume per unit pore volume, with the dissolved/vaporized cross
// terms, plus the enabled extensions' storage
func (o *Residual) ComputeStorage(storage []float64, iq *IntQuants) (err error) {
	if len(storage) != o.lay.NumEq {
		return chk.Err("storage vector has %d slots but the layout needs %d", len(storage), o.lay.NumEq)
	}
	for i := range storage {
		storage[i] = 0
	}
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if !o.sys.PhaseIsActive(phase) {
			continue
		}
		surfaceVolume := iq.Fs.S[phase] * iq.Fs.InvB[phase] * iq.Porosity
		o.evalPhaseFluxes(storage, phase, iq.Region, surfaceVolume, &iq.Fs)
	}
	o.adaptMassConservation(storage, iq.Region)
	for _, m := range o.modules {
		m.AddStorage(storage, iq)
	}
	return
}

// ComputeFlux computes the advective flux across an interior face. flux gets
// the surface-volume (or mass) rates per equation slot; darcy gets the raw
// per-phase Darcy rates for reporting. The flux is antisymmetric: swapping
// the interior and exterior sides negates every slot.
func (o *Residual) ComputeFlux(flux, darcy []float64, prob Problem, in, ex int, iqIn, iqEx *IntQuants, trans, faceArea float64) (err error) {
	if len(flux) != o.lay.NumEq {
		return chk.Err("flux vector has %d slots but the layout needs %d", len(flux), o.lay.NumEq)
	}
	for i := range flux {
		flux[i] = 0
	}
	for i := range darcy {
		darcy[i] = 0
	}
	distZg := (prob.CellDepth(in) - prob.CellDepth(ex)) * prob.Gravity()
	thpres := prob.ThresholdPressure(in, ex)

	for phase := 0; phase < fluid.NumPhases; phase++ {
		if !o.sys.PhaseIsActive(phase) {
			continue
		}
		pdiff, upIsIn := phasePressureDiff(o.cfg, phase, iqIn, iqEx, distZg, thpres)
		up := iqEx
		if upIsIn {
			up = iqIn
		}
		darcyFlux := 0.0
		if pdiff != 0 {
			darcyFlux = pdiff * up.Mobility[phase] * up.RockCompTransMult * (-trans / faceArea)
		}
		darcy[o.lay.Comp[phase]] = darcyFlux * faceArea
		surfaceVolumeFlux := up.Fs.InvB[phase] * darcyFlux
		o.evalPhaseFluxes(flux, phase, up.Region, surfaceVolumeFlux, &up.Fs)
	}
	o.adaptMassConservation(flux, iqIn.Region)
	for _, m := range o.modules {
		m.AddFlux(flux, iqIn, iqEx)
	}
	return
}

// ComputeBoundaryFlux computes the flux across a boundary face. RATE passes
// the prescribed rates through unchanged. FREE and DIRICHLET flow against the
// external fluid state: per phase, if the boundary pressure is below the
// inside pressure mass leaves using the inside state's invB, if above mass
// enters using the boundary state's invB, and equal pressures give no flux.
func (o *Residual) ComputeBoundaryFlux(bflux []float64, bc *BoundaryCondition, iqIn *IntQuants) (err error) {
	if len(bflux) != o.lay.NumEq {
		return chk.Err("boundary flux vector has %d slots but the layout needs %d", len(bflux), o.lay.NumEq)
	}
	switch bc.Type {
	case RATE:
		copy(bflux, bc.MassRate)
		return
	case FREE, DIRICHLET:
		for i := range bflux {
			bflux[i] = 0
		}
		for phase := 0; phase < fluid.NumPhases; phase++ {
			if !o.sys.PhaseIsActive(phase) {
				continue
			}
			pB := bc.Fs.P[phase]
			pIn := iqIn.Fs.P[phase]
			rho := avgDensity(o.cfg.SatSmoothBandwidth,
				iqIn.Fs.S[phase], bc.Fs.S[phase],
				iqIn.Fs.Dens[phase], bc.Fs.Dens[phase])
			pdiff := pB - pIn + rho*bc.DistZg
			if pdiff == 0 {
				continue
			}
			volumeFlux := pdiff * iqIn.Mobility[phase] * iqIn.RockCompTransMult * (-bc.Trans / bc.FaceArea)
			if pB < pIn {
				// outflux: the inside cell's fluid leaves the domain
				surfaceVolumeFlux := iqIn.Fs.InvB[phase] * volumeFlux
				o.evalPhaseFluxes(bflux, phase, iqIn.Region, surfaceVolumeFlux, &iqIn.Fs)
			} else {
				// influx: the boundary fluid enters
				surfaceVolumeFlux := bc.Fs.InvB[phase] * volumeFlux
				o.evalPhaseFluxes(bflux, phase, iqIn.Region, surfaceVolumeFlux, bc.Fs)
			}
		}
		o.adaptMassConservation(bflux, iqIn.Region)
		return
	}
	return chk.Err("unknown boundary condition type %d", bc.Type)
}

// ComputeSource retrieves the problem's source terms and rescales the energy
// slot by the conditioning factor
func (o *Residual) ComputeSource(src []float64, prob Problem, cell int) (err error) {
	if len(src) != o.lay.NumEq {
		return chk.Err("source vector has %d slots but the layout needs %d", len(src), o.lay.NumEq)
	}
	err = prob.Source(src, cell)
	if err != nil {
		return
	}
	for _, m := range o.modules {
		m.AddSource(src, cell)
	}
	if o.cfg.Energy {
		src[o.lay.Temp] *= o.cfg.EnergyScaling
	}
	return
}

// ComputeSourceDense zero-initialises the vector, then adds the problem's
// distributed sources and applies the energy rescaling
func (o *Residual) ComputeSourceDense(src []float64, prob Problem, cell int) (err error) {
	if len(src) != o.lay.NumEq {
		return chk.Err("source vector has %d slots but the layout needs %d", len(src), o.lay.NumEq)
	}
	for i := range src {
		src[i] = 0
	}
	err = prob.SourceDense(src, cell)
	if err != nil {
		return
	}
	for _, m := range o.modules {
		m.AddSource(src, cell)
	}
	if o.cfg.Energy {
		src[o.lay.Temp] *= o.cfg.EnergyScaling
	}
	return
}
