// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matlaw

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

func Test_lin01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin01. linear pc and kr")

	mdl, err := New("lin")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	err = mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}

	// oil is the datum
	pc := mdl.Pc(0.3, 0.5, 0.2)
	chk.Float64(tst, "pc[oil]", 1e-15, pc[1], 0.0)
	chk.Float64(tst, "pc[water]", 1e-15, pc[0], -0.2*0.7)
	chk.Float64(tst, "pc[gas]", 1e-15, pc[2], 0.1*0.2)

	// water-filled medium has zero oil-water capillary pressure
	pc = mdl.Pc(1.0, 0.0, 0.0)
	chk.Float64(tst, "pc[water] @ sw=1", 1e-15, pc[0], 0.0)
	chk.Float64(tst, "pc[gas] @ sg=0", 1e-15, pc[2], 0.0)

	kr := mdl.Kr(0.3, 0.5, 0.2)
	chk.Array(tst, "kr", 1e-15, kr[:], []float64{0.3, 0.5, 0.2})

	// clipping outside [0,1]
	kr = mdl.Kr(-0.1, 1.2, 0.0)
	chk.Array(tst, "kr clipped", 1e-15, kr[:], []float64{0.0, 1.0, 0.0})
}

func Test_bc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc01. Brooks-Corey pc and kr")

	mdl, err := New("bc")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	err = mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}

	// fully water-saturated: pcow at entry pressure, krw at maximum
	pc := mdl.Pc(0.95, 0.05, 0.0)
	if pc[0] > -0.2 {
		tst.Errorf("pcow offset %g should be at or below -pce = -0.2", pc[0])
	}
	chk.Float64(tst, "pc[oil]", 1e-15, pc[1], 0.0)

	// monotonicity: pcow magnitude grows as sw decreases
	a := mdl.Pc(0.8, 0.2, 0.0)
	b := mdl.Pc(0.3, 0.7, 0.0)
	if !(b[0] < a[0]) {
		tst.Errorf("pcow should become more negative as sw decreases: %g vs %g", a[0], b[0])
	}

	// kr at residual saturations is (nearly) zero; monotone in s
	kr := mdl.Kr(0.1, 0.05, 0.0)
	if kr[0] > 1e-10 || kr[1] > 1e-10 {
		tst.Errorf("kr at residual saturations should vanish: %v", kr)
	}
	kra := mdl.Kr(0.4, 0.5, 0.1)
	krb := mdl.Kr(0.6, 0.3, 0.1)
	if !(krb[0] > kra[0] && krb[1] < kra[1]) {
		tst.Errorf("kr should be monotone in saturation: %v vs %v", kra, krb)
	}
}

func Test_bc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc03. Brooks-Corey: sweep over water saturations")

	mdl, _ := New("bc")
	err := mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}

	Sw := utl.LinSpace(0.0, 1.0, 21)
	krwPrev, pcPrev := -1.0, -1e300
	for _, sw := range Sw {
		kr := mdl.Kr(sw, 1.0-sw, 0.0)
		pc := mdl.Pc(sw, 1.0-sw, 0.0)
		if kr[0] < krwPrev {
			tst.Errorf("krw should not decrease with sw: krw(%g) = %g < %g", sw, kr[0], krwPrev)
			return
		}
		if pc[0] < pcPrev-1e-15 {
			tst.Errorf("pcow offset should not decrease with sw: pc(%g) = %g < %g", sw, pc[0], pcPrev)
			return
		}
		krwPrev, pcPrev = kr[0], pc[0]
	}
}

func Test_bc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc02. Brooks-Corey: invalid parameters")

	mdl, _ := New("bc")
	err := mdl.Init(dbf.Params{&dbf.P{N: "lam", V: 0.0}})
	if err == nil {
		tst.Errorf("Init should have failed with zero lam")
		return
	}
	err = mdl.Init(dbf.Params{
		&dbf.P{N: "swr", V: 0.5},
		&dbf.P{N: "sor", V: 0.5},
	})
	if err == nil {
		tst.Errorf("Init should have failed with residual saturations summing to 1")
	}
}
