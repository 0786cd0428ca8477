// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"github.com/cpmech/gores/mdl/fluid"
)

// Module is the uniform contract of the optional physics extensions. A
// disabled extension is a no-op implementation, not an absent code path.
// Per-face transport is not implemented by any of the extensions yet;
// FluxImplemented reports this so that NewResidual can reject configurations
// that would silently drop physics.
type Module interface {
	Name() string                               // extension name
	Enabled() bool                              // whether the extension is active
	FluxImplemented() bool                      // whether AddFlux does anything meaningful
	AddStorage(storage []float64, iq *IntQuants) // adds storage terms
	AddFlux(flux []float64, iqIn, iqEx *IntQuants) // adds per-face transport terms
	AddSource(src []float64, cell int)          // adds source terms
}

// newModules builds the extension list in fixed order
func newModules(cfg *Config, sys *fluid.System, lay *Layout) []Module {
	return []Module{
		&solventModule{cfg: cfg, lay: lay},
		&extboModule{cfg: cfg, lay: lay},
		&polymerModule{cfg: cfg, lay: lay},
		&energyModule{cfg: cfg, lay: lay, sys: sys},
		&foamModule{cfg: cfg, lay: lay},
		&brineModule{cfg: cfg, lay: lay},
		&micpModule{cfg: cfg, lay: lay},
	}
}

// noFlux is embedded by extensions without per-face transport
type noFlux struct{}

func (noFlux) FluxImplemented() bool                    { return false }
func (noFlux) AddFlux(flux []float64, iqIn, iqEx *IntQuants) {}

// solventModule tracks the surface volume of a fourth, solvent "phase"
// carried inside the hydrocarbon gas
type solventModule struct {
	noFlux
	cfg *Config
	lay *Layout
}

func (o *solventModule) Name() string  { return "solvent" }
func (o *solventModule) Enabled() bool { return o.cfg.Solvent }

func (o *solventModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.Solvent {
		return
	}
	storage[o.lay.Solvent] += iq.SolventSat * iq.SolventInvB * iq.Porosity
}

func (o *solventModule) AddSource(src []float64, cell int) {}

// extboModule tracks the fraction of the injected component in the gas phase
// (extended black-oil)
type extboModule struct {
	noFlux
	cfg *Config
	lay *Layout
}

func (o *extboModule) Name() string  { return "extbo" }
func (o *extboModule) Enabled() bool { return o.cfg.Extbo }

func (o *extboModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.Extbo {
		return
	}
	storage[o.lay.Zfrac] += iq.ZFrac * iq.Fs.S[fluid.Gas] * iq.Fs.InvB[fluid.Gas] * iq.Porosity
}

func (o *extboModule) AddSource(src []float64, cell int) {}

// polymerModule tracks polymer dissolved in the water phase
type polymerModule struct {
	noFlux
	cfg *Config
	lay *Layout
}

func (o *polymerModule) Name() string  { return "polymer" }
func (o *polymerModule) Enabled() bool { return o.cfg.Polymer }

func (o *polymerModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.Polymer {
		return
	}
	storage[o.lay.Polymer] += iq.PolymerConc * iq.Fs.S[fluid.Water] * iq.Fs.InvB[fluid.Water] * iq.Porosity
}

func (o *polymerModule) AddSource(src []float64, cell int) {}

// energyModule tracks internal energy of the fluids and the rock. The energy
// slot is rescaled by the conditioning factor so that its residual has a
// magnitude comparable with the mass slots.
type energyModule struct {
	noFlux
	cfg *Config
	lay *Layout
	sys *fluid.System
}

func (o *energyModule) Name() string  { return "energy" }
func (o *energyModule) Enabled() bool { return o.cfg.Energy }

func (o *energyModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.Energy {
		return
	}
	u := 0.0
	for phase := 0; phase < fluid.NumPhases; phase++ {
		if !o.sys.PhaseIsActive(phase) {
			continue
		}
		u += iq.Fs.S[phase] * iq.Fs.Dens[phase] * iq.PhaseIntEnergy[phase] * iq.Porosity
	}
	u += (1.0 - iq.Porosity) * iq.RockIntEnergy
	storage[o.lay.Temp] += u * o.cfg.EnergyScaling
}

func (o *energyModule) AddSource(src []float64, cell int) {}

// foamModule tracks the foam agent carried in the gas phase
type foamModule struct {
	noFlux
	cfg *Config
	lay *Layout
}

func (o *foamModule) Name() string  { return "foam" }
func (o *foamModule) Enabled() bool { return o.cfg.Foam }

func (o *foamModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.Foam {
		return
	}
	storage[o.lay.Foam] += iq.FoamConc * iq.Fs.S[fluid.Gas] * iq.Fs.InvB[fluid.Gas] * iq.Porosity
}

func (o *foamModule) AddSource(src []float64, cell int) {}

// brineModule tracks salt dissolved in the water phase and, with
// precipitation enabled, solid salt occupying pore space
type brineModule struct {
	noFlux
	cfg *Config
	lay *Layout
}

func (o *brineModule) Name() string  { return "brine" }
func (o *brineModule) Enabled() bool { return o.cfg.Brine }

func (o *brineModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.Brine {
		return
	}
	storage[o.lay.Salt] += iq.Fs.SaltConc * iq.Fs.S[fluid.Water] * iq.Fs.InvB[fluid.Water] * iq.Porosity
	if o.cfg.SaltPrecipitation {
		storage[o.lay.Salt] += iq.Fs.SaltSat * iq.Porosity
	}
}

func (o *brineModule) AddSource(src []float64, cell int) {}

// micpModule tracks the five quantities of microbially induced calcite
// precipitation: suspended microbes, oxygen and urea in the water phase,
// plus immobile biofilm and calcite
type micpModule struct {
	noFlux
	cfg *Config
	lay *Layout
}

func (o *micpModule) Name() string  { return "micp" }
func (o *micpModule) Enabled() bool { return o.cfg.MICP }

func (o *micpModule) AddStorage(storage []float64, iq *IntQuants) {
	if !o.cfg.MICP {
		return
	}
	waterVol := iq.Fs.S[fluid.Water] * iq.Fs.InvB[fluid.Water] * iq.Porosity
	for i := 0; i < 3; i++ { // microbes, oxygen, urea are suspended in water
		storage[o.lay.Micp0+i] += iq.Micp[i] * waterVol
	}
	for i := 3; i < 5; i++ { // biofilm and calcite are immobile
		storage[o.lay.Micp0+i] += iq.Micp[i] * iq.Porosity
	}
}

func (o *micpModule) AddSource(src []float64, cell int) {}
