// aviation/separation_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "testing"

func TestSameRunwaySeparation(t *testing.T) {
	for _, test := range []struct {
		lead, trail SRSCategory
		feet        int
	}{
		{SRSCategory1, SRSCategory1, 3000},
		{SRSCategory1, SRSCategory2, 4500},
		{SRSCategory1, SRSCategory3, 6000},
		{SRSCategory2, SRSCategory1, 4500},
		{SRSCategory2, SRSCategory2, 6000},
		{SRSCategory2, SRSCategory3, 6000},
		{SRSCategory3, SRSCategory1, 6000},
		{SRSCategory3, SRSCategory2, 6000},
		{SRSCategory3, SRSCategory3, 6000},
		// Unknown trailers are treated as category 3.
		{SRSCategory1, SRSUnknown, 6000},
		{SRSCategory2, SRSUnknown, 6000},
		// Unknown leaders always get the maximum.
		{SRSUnknown, SRSCategory1, 6000},
		{SRSUnknown, SRSUnknown, 6000},
	} {
		lead := makeType(t, "LEAD", WeightClassLarge, test.lead)
		trail := makeType(t, "TRL", WeightClassLarge, test.trail)

		if got := trail.SameRunwaySeparation(lead); got != test.feet {
			t.Errorf("lead %s trail %s: expected %d, got %d", test.lead, test.trail, test.feet, got)
		}
	}
}

func TestSameRunwaySeparationBounds(t *testing.T) {
	cats := []SRSCategory{SRSUnknown, SRSCategory1, SRSCategory2, SRSCategory3}
	for _, l := range cats {
		for _, tr := range cats {
			lead := makeType(t, "LEAD", WeightClassLarge, l)
			trail := makeType(t, "TRL", WeightClassLarge, tr)
			d := trail.SameRunwaySeparation(lead)
			if d < MinSameRunwaySeparationFeet || d > MaxSameRunwaySeparationFeet {
				t.Errorf("lead %s trail %s: %d out of range", l, tr, d)
			}
			// Swapping roles never decreases the separation behind a
			// heavier leader.
			if l.Known() && tr.Known() && l > tr {
				if r := lead.SameRunwaySeparation(trail); r > d {
					t.Errorf("lead %s trail %s: %d, but reversed gives %d", l, tr, d, r)
				}
			}
		}
	}
}

func TestSameRunwaySeparationZeroType(t *testing.T) {
	var unknown AircraftType
	known := makeType(t, "C172", WeightClassSmall, SRSCategory1)

	if d := known.SameRunwaySeparation(unknown); d != MaxSameRunwaySeparationFeet {
		t.Errorf("behind zero type: expected %d, got %d", MaxSameRunwaySeparationFeet, d)
	}
	if d := unknown.SameRunwaySeparation(known); d != 6000 {
		t.Errorf("zero type behind category 1: expected 6000, got %d", d)
	}
}
