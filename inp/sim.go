// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gores/blackoil"
	"github.com/cpmech/gores/mdl/fluid"
	"github.com/cpmech/gores/mdl/matlaw"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gores
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.DirOut = "/tmp/gores"
	o.Encoder = "gob"
}

// SolverData holds nonlinear solver data
type SolverData struct {
	Type   string  `json:"type"`   // convergence criterion: "wres" or "fixpoint"
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	GoodIt int     `json:"goodit"` // iteration count under which the time step may grow
	Tol    float64 `json:"tol"`    // convergence tolerance
	DtMin  float64 `json:"dtmin"`  // minimum value of Dt
	DtIni  float64 `json:"dtini"`  // initial value of Dt
	Tf     float64 `json:"tf"`     // final time
	Eps    float64 `json:"eps"`    // tolerance used when switching primary variables
	ShowR  bool    `json:"showr"`  // show residual
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Type = "wres"
	o.NmaxIt = 12
	o.GoodIt = 5
	o.Tol = 1e-8
	o.DtMin = 1e-5
	o.DtIni = 1.0
	o.Tf = 10.0
	o.Eps = 1e-6
}

// FluidRegion holds the PVT description of one fluid (PVT) region
type FluidRegion struct {
	Model   string     `json:"model"`   // PVT model name; e.g. "lin"
	Prms    dbf.Params `json:"prms"`    // model parameters
	RefDens [3]float64 `json:"refdens"` // reference densities at surface conditions {water, oil, gas}
}

// FluidData holds the description of the fluid system
type FluidData struct {
	Water   bool           `json:"water"`   // water phase is active
	Oil     bool           `json:"oil"`     // oil phase is active
	Gas     bool           `json:"gas"`     // gas phase is active
	DisGas  bool           `json:"disgas"`  // gas may dissolve in oil
	VapOil  bool           `json:"vapoil"`  // oil may vaporize in gas
	VapWat  bool           `json:"vapwat"`  // water may vaporize in gas
	DisWat  bool           `json:"diswat"`  // gas may dissolve in water
	TRes    float64        `json:"tres"`    // reservoir temperature
	Regions []*FluidRegion `json:"regions"` // PVT regions
}

// GetSystem builds the fluid system from the input data
func (o *FluidData) GetSystem() (sys *fluid.System, err error) {
	sys = fluid.NewSystem(o.Water, o.Oil, o.Gas, o.TRes)
	sys.DissolvedGas = o.DisGas
	sys.VaporizedOil = o.VapOil
	sys.VaporizedWater = o.VapWat
	sys.DissolvedGasInWater = o.DisWat
	for _, reg := range o.Regions {
		err = sys.AddRegion(reg.Model, reg.Prms, reg.RefDens)
		if err != nil {
			return nil, chk.Err("cannot add fluid region with model %q:\n%v", reg.Model, err)
		}
	}
	err = sys.Check()
	if err != nil {
		return nil, err
	}
	return
}

// MatLawData holds the rock-fluid (saturation function) description
type MatLawData struct {
	Model string     `json:"model"` // model name; e.g. "lin" or "bc"
	Prms  dbf.Params `json:"prms"`  // model parameters
}

// GetModel builds the saturation-function model from the input data
func (o *MatLawData) GetModel() (mdl matlaw.Model, err error) {
	mdl, err = matlaw.New(o.Model)
	if err != nil {
		return
	}
	err = mdl.Init(o.Prms)
	if err != nil {
		return nil, chk.Err("cannot initialise saturation-function model %q:\n%v", o.Model, err)
	}
	return
}

// BlackoilData holds the black-oil configuration flags and tunables
type BlackoilData struct {
	Solvent     bool    `json:"solvent"`     // solvent extension
	Extbo       bool    `json:"extbo"`       // extended black-oil extension
	Polymer     bool    `json:"polymer"`     // polymer extension
	Energy      bool    `json:"energy"`      // energy extension
	Foam        bool    `json:"foam"`        // foam extension
	Brine       bool    `json:"brine"`       // brine extension
	SaltPrecip  bool    `json:"saltprecip"`  // salt precipitation (needs brine)
	MICP        bool    `json:"micp"`        // microbially induced calcite precipitation
	MassConserv bool    `json:"massconserv"` // conserve mass instead of surface volume
	EnergyScl   float64 `json:"energyscl"`   // rescaling factor of the energy equation
	SatSmooth   float64 `json:"satsmooth"`   // saturation bandwidth smoothing face densities
}

// GetConfig builds the black-oil configuration from the input data
func (o *BlackoilData) GetConfig() (cfg *blackoil.Config) {
	cfg = blackoil.NewConfig()
	cfg.Solvent = o.Solvent
	cfg.Extbo = o.Extbo
	cfg.Polymer = o.Polymer
	cfg.Energy = o.Energy
	cfg.Foam = o.Foam
	cfg.Brine = o.Brine
	cfg.SaltPrecipitation = o.SaltPrecip
	cfg.MICP = o.MICP
	cfg.ConserveSurfaceVolume = !o.MassConserv
	if o.EnergyScl > 0 {
		cfg.EnergyScaling = o.EnergyScl
	}
	if o.SatSmooth > 0 {
		cfg.SatSmoothBandwidth = o.SatSmooth
	}
	return
}

// GridData holds the description of the one-dimensional grid
type GridData struct {
	Ncells   int     `json:"ncells"` // number of cells
	Dx       float64 `json:"dx"`     // cell size
	Area     float64 `json:"area"`   // cross-sectional area of the column
	Depth0   float64 `json:"depth"`  // depth of the centre of the first cell
	Dip      float64 `json:"dip"`    // depth increase per cell
	Porosity float64 `json:"phi"`    // porosity
	Perm     float64 `json:"perm"`   // intrinsic permeability
	Gravity  float64 `json:"grav"`   // gravity acceleration
	Thpres   float64 `json:"thpres"` // threshold pressure between adjacent cells
}

// SetDefault sets default values
func (o *GridData) SetDefault() {
	o.Ncells = 10
	o.Dx = 1.0
	o.Area = 1.0
	o.Porosity = 0.3
	o.Perm = 1e-12
}

// IniData holds the initial state, uniform over the grid
type IniData struct {
	P  float64 `json:"p"`  // oil pressure
	Sw float64 `json:"sw"` // water saturation
	Sg float64 `json:"sg"` // gas saturation
}

// Simulation holds all simulation data
type Simulation struct {
	Data     Data         `json:"data"`
	Solver   SolverData   `json:"solver"`
	Fluid    FluidData    `json:"fluid"`
	MatLaw   MatLawData   `json:"matlaw"`
	Blackoil BlackoilData `json:"blackoil"`
	Grid     GridData     `json:"grid"`
	Ini      IniData      `json:"ini"`
}

// Check verifies the consistency of the input data
func (o *Simulation) Check() (err error) {
	if o.Grid.Ncells < 1 {
		return chk.Err("grid must have at least one cell. Ncells = %d is invalid", o.Grid.Ncells)
	}
	if o.Grid.Dx <= 0 || o.Grid.Area <= 0 {
		return chk.Err("cell size and area must be positive. Dx = %g, Area = %g", o.Grid.Dx, o.Grid.Area)
	}
	if o.Grid.Porosity <= 0 || o.Grid.Porosity > 1 {
		return chk.Err("porosity must be within (0, 1]. phi = %g is invalid", o.Grid.Porosity)
	}
	if o.Grid.Perm <= 0 {
		return chk.Err("permeability must be positive. perm = %g is invalid", o.Grid.Perm)
	}
	if o.Solver.NmaxIt < 1 || o.Solver.Tol <= 0 || o.Solver.DtMin <= 0 || o.Solver.DtIni <= 0 {
		return chk.Err("solver data is invalid: nmaxit = %d, tol = %g, dtmin = %g, dtini = %g",
			o.Solver.NmaxIt, o.Solver.Tol, o.Solver.DtMin, o.Solver.DtIni)
	}
	if len(o.Fluid.Regions) < 1 {
		return chk.Err("at least one fluid (PVT) region must be given")
	}
	return
}

// ReadSim reads a simulation from a (.sim) JSON file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file. io.ReadFile panics on missing files, hence the stat first
	if _, serr := os.Stat(simfilepath); serr != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, serr)
	}
	b := io.ReadFile(simfilepath)

	// decode, with defaults set first so that absent groups keep them
	o = new(Simulation)
	o.Data.SetDefault()
	o.Solver.SetDefault()
	o.Grid.SetDefault()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// check
	err = o.Check()
	if err != nil {
		return nil, err
	}
	return
}

// Example returns an in-memory simulation of a short depletion run on a
// ten-cell column with the linear three-phase PVT description
func Example() (o *Simulation) {
	o = new(Simulation)
	o.Data.SetDefault()
	o.Solver.SetDefault()
	o.Grid.SetDefault()
	o.Data.Desc = "depletion of a 1D three-phase column"
	o.Solver.Tf = 5.0
	pvt, _ := fluid.New("lin")
	o.Fluid = FluidData{
		Water: true, Oil: true, Gas: true,
		DisGas: true, VapOil: true,
		TRes: 300.0,
		Regions: []*FluidRegion{{
			Model:   "lin",
			Prms:    pvt.GetPrms(true),
			RefDens: [3]float64{1000.0, 800.0, 1.2},
		}},
	}
	mat, _ := matlaw.New("lin")
	o.MatLaw = MatLawData{Model: "lin", Prms: mat.GetPrms(true)}
	o.Grid.Depth0 = 1000.0
	o.Grid.Gravity = 9.81
	o.Ini = IniData{P: 110.0, Sw: 0.3, Sg: 0.2}
	return
}
