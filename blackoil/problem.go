// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blackoil

import (
	"github.com/cpmech/gores/mdl/matlaw"
)

// Problem supplies the cell-indexed data owned by the outer driver: material
// law parameters, historical maxima used as bounds during phase-appearance
// transitions, source terms and face data for the flux computation.
type Problem interface {

	// MatParams returns the material law of a cell
	MatParams(cell int) matlaw.Model

	// historical maxima, used as physically motivated bounds when a phase
	// reappears
	MaxOilSaturation(cell int) float64
	MaxGasDissolutionFactor(cell int) float64
	MaxOilVaporizationFactor(cell int) float64

	// Source sets the source terms of a cell in src (equation-slot indexed);
	// SourceDense adds the distributed (per-volume) sources instead
	Source(src []float64, cell int) error
	SourceDense(src []float64, cell int) error

	// geometry and face data
	Gravity() float64
	CellDepth(cell int) float64
	ThresholdPressure(in, ex int) float64
}
