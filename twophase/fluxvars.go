// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package twophase implements vertex-centred finite-volume flux variables for
// generic (immiscible) two-phase flow in porous media
package twophase

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// phase indices
const (
	Wet       = 0 // wetting phase
	Non       = 1 // non-wetting phase
	NumPhases = 2
)

// VolVars holds the volume variables of one sub-control volume (one vertex)
// that the flux computation needs: phase pressures, saturations, densities
// and mobilities (kr/μ), plus the extrusion factor of lower-dimensional grids.
type VolVars struct {
	P         [NumPhases]float64 // [nphases] phase pressures
	S         [NumPhases]float64 // [nphases] saturations
	Rho       [NumPhases]float64 // [nphases] phase densities
	Mob       [NumPhases]float64 // [nphases] mobilities == kr / μ
	Extrusion float64            // extrusion factor (1 for full-dimensional grids)
}

// FaceGeom holds the geometry of one sub-control volume face: the local
// indices of the volumes on either side, the area-weighted normal, and the
// shape-function gradients of all element vertices at the integration point.
type FaceGeom struct {
	In     int         // local index of the "inside" sub-control volume
	Ex     int         // local index of the "outside" sub-control volume
	Normal la.Vector   // [ndim] area-weighted normal, pointing from In to Ex
	Grad   []la.Vector // [nverts][ndim] shape-function gradients at the ip
}

// FluxVars is the scratchpad holding the quantities required to assemble the
// advective fluxes of both fluid phases over one sub-control volume face:
// pressure potential gradients, filter velocities and their normal
// projections, with upstream mobility weighting already applied.
type FluxVars struct {

	// configuration
	SatSmooth float64 // saturation bandwidth smoothing the face density average

	// face data. set by Update
	In        int                  // copy of FaceGeom.In
	Ex        int                  // copy of FaceGeom.Ex
	Extrusion float64              // average extrusion factor of the two volumes
	PotGrad   [NumPhases]la.Vector // [nphases][ndim] pressure potential gradients
	Vel       [NumPhases]la.Vector // [nphases][ndim] filter velocities == -mob K ∇p
	VelNormal [NumPhases]float64   // [nphases] filter velocity times face normal

	// scratchpad
	ndim int
	tmp  la.Vector
}

// NewFluxVars allocates a flux-variables scratchpad for ndim space dimensions
func NewFluxVars(ndim int) (o *FluxVars) {
	o = new(FluxVars)
	o.SatSmooth = 1e-5
	o.ndim = ndim
	for i := 0; i < NumPhases; i++ {
		o.PotGrad[i] = la.NewVector(ndim)
		o.Vel[i] = la.NewVector(ndim)
	}
	o.tmp = la.NewVector(ndim)
	return
}

// Update computes all face quantities. vv holds the volume variables of every
// vertex of the element, kap is the (averaged) intrinsic permeability tensor
// at the face, and grav is the gravity acceleration vector (may be nil to
// switch the gravity correction off).
func (o *FluxVars) Update(face *FaceGeom, vv []*VolVars, kap *la.Matrix, grav la.Vector) (err error) {

	// check dimensions
	if len(face.Normal) != o.ndim {
		return chk.Err("face normal has wrong dimension: %d != %d", len(face.Normal), o.ndim)
	}
	if len(face.Grad) != len(vv) {
		return chk.Err("number of gradients (%d) must equal number of volume variables (%d)", len(face.Grad), len(vv))
	}

	// face data
	o.In = face.In
	o.Ex = face.Ex
	vin, vex := vv[o.In], vv[o.Ex]
	o.Extrusion = (vin.Extrusion + vex.Extrusion) / 2.0

	// potential gradients: ∇p_α = Σ_m G_m p_α^m
	for α := 0; α < NumPhases; α++ {
		o.PotGrad[α].Fill(0)
		for m, v := range vv {
			for i := 0; i < o.ndim; i++ {
				o.PotGrad[α][i] += face.Grad[m][i] * v.P[α]
			}
		}
	}

	// gravity correction: ∇p_α -= ρ_α g, with the face density averaged with
	// saturation weights so that a phase absent on one side does not
	// contribute its (meaningless) density there
	if grav != nil {
		if len(grav) != o.ndim {
			return chk.Err("gravity vector has wrong dimension: %d != %d", len(grav), o.ndim)
		}
		for α := 0; α < NumPhases; α++ {
			fin := clamp(vin.S[α]/o.SatSmooth, 0.0, 0.5)
			fex := clamp(vex.S[α]/o.SatSmooth, 0.0, 0.5)
			if fin+fex == 0 {
				fin, fex = 0.5, 0.5
			}
			ρ := (fin*vin.Rho[α] + fex*vex.Rho[α]) / (fin + fex)
			for i := 0; i < o.ndim; i++ {
				o.PotGrad[α][i] -= ρ * grav[i]
			}
		}
	}

	// normal fluxes: v_α = -K ∇p_α, projected onto the face normal and
	// weighted with the mobility of the upstream volume (full upwinding)
	for α := 0; α < NumPhases; α++ {
		la.MatVecMul(o.tmp, 1, kap, o.PotGrad[α])
		o.VelNormal[α] = 0
		for i := 0; i < o.ndim; i++ {
			o.Vel[α][i] = -o.tmp[i]
			o.VelNormal[α] += o.Vel[α][i] * face.Normal[i]
		}
		mob := vv[o.UpstreamIdx(α)].Mob[α]
		o.VelNormal[α] *= mob
		for i := 0; i < o.ndim; i++ {
			o.Vel[α][i] *= mob
		}
	}
	return
}

// UpstreamIdx returns the local index of the upstream volume of a phase.
// A positive normal flux goes from the inside to the outside volume.
func (o *FluxVars) UpstreamIdx(phase int) int {
	if o.VelNormal[phase] > 0 {
		return o.In
	}
	return o.Ex
}

// DownstreamIdx returns the local index of the downstream volume of a phase
func (o *FluxVars) DownstreamIdx(phase int) int {
	if o.VelNormal[phase] > 0 {
		return o.Ex
	}
	return o.In
}

// UpstreamWeight returns the weight of the upstream volume (full upwinding)
func (o *FluxVars) UpstreamWeight(phase int) float64 { return 1.0 }

// DownstreamWeight returns the weight of the downstream volume
func (o *FluxVars) DownstreamWeight(phase int) float64 { return 0.0 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
