// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package blackoil implements the cell-centered finite-volume core of a
// black-oil reservoir model: the conservation-law residual assembler
// (storage, Darcy flux, boundary flux, source) and the primary-variable
// meaning state machine that reinterprets unknowns as phases appear and
// disappear during nonlinear iteration
package blackoil

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gores/mdl/fluid"
)

// Config gathers the feature toggles and numerical tunables of the model.
// The flags are resolved once at construction time; every disabled extension
// becomes a no-op strategy object rather than a conditional in the hot path.
type Config struct {

	// optional physics
	Solvent           bool // solvent extension
	Extbo             bool // extended black-oil (zFraction) extension
	Polymer           bool // polymer flooding extension
	Energy            bool // energy conservation (thermal runs)
	Foam              bool // foam extension
	Brine             bool // brine (salt transport) extension
	SaltPrecipitation bool // precipitated-salt modeling (needs Brine)
	MICP              bool // microbially induced calcite precipitation

	// conservation mode
	ConserveSurfaceVolume bool // conserve surface volume instead of mass

	// numerical tunables. EnergyScaling balances the magnitude of the energy
	// residual against the mass residuals; SatSmoothBandwidth is the
	// saturation range over which the gravity-correction density average is
	// smoothed. Both are conditioning constants, not physics.
	EnergyScaling      float64
	SatSmoothBandwidth float64
}

// NewConfig returns a configuration with all extensions disabled and the
// default tunables
func NewConfig() *Config {
	return &Config{
		ConserveSurfaceVolume: true,
		EnergyScaling:         1e-3,
		SatSmoothBandwidth:    1e-5,
	}
}

// Validate checks the flags against the fluid system
func (o *Config) Validate(sys *fluid.System) (err error) {
	err = sys.Check()
	if err != nil {
		return
	}
	if o.SaltPrecipitation && !o.Brine {
		return chk.Err("salt precipitation requires the brine extension")
	}
	if o.Brine && !sys.PhaseIsActive(fluid.Water) {
		return chk.Err("brine extension requires an active water phase")
	}
	if o.Solvent && !sys.PhaseIsActive(fluid.Gas) {
		return chk.Err("solvent extension requires an active gas phase")
	}
	if o.EnergyScaling <= 0 {
		return chk.Err("energy scaling = %g is invalid", o.EnergyScaling)
	}
	if o.SatSmoothBandwidth <= 0 {
		return chk.Err("saturation smoothing bandwidth = %g is invalid", o.SatSmoothBandwidth)
	}
	return
}
