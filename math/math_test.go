// math/math_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	for _, test := range []struct{ in, out float32 }{
		{0, 0},
		{90, 90},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-370, 350},
	} {
		if h := NormalizeHeading(test.in); Abs(h-test.out) > 1e-4 {
			t.Errorf("NormalizeHeading(%f): expected %f, got %f", test.in, test.out, h)
		}
	}
}

func TestClampLerp(t *testing.T) {
	if Clamp(7000, 3000, 6000) != 6000 || Clamp(1000, 3000, 6000) != 3000 || Clamp(4500, 3000, 6000) != 4500 {
		t.Errorf("Clamp returned unexpected values")
	}
	if Lerp(0, 10, 20) != 10 || Lerp(1, 10, 20) != 20 || Lerp(.5, 10, 20) != 15 {
		t.Errorf("Lerp returned unexpected values")
	}
}

func TestHeading2LL(t *testing.T) {
	origin := Point2LL{-73.78, 40.64}
	nmPerLong := NMPerLongitudeAt(origin)

	for _, test := range []struct {
		to  Point2LL
		hdg float32
	}{
		{Point2LL{-73.78, 41.64}, 0},
		{Point2LL{-72.78, 40.64}, 90},
		{Point2LL{-73.78, 39.64}, 180},
		{Point2LL{-74.78, 40.64}, 270},
	} {
		h := Heading2LL(origin, test.to, nmPerLong, 0)
		if d := Abs(h - test.hdg); d > 0.5 && d < 359.5 {
			t.Errorf("heading to %v: expected %f, got %f", test.to, test.hdg, h)
		}
	}

	if h := Heading2LL(origin, Point2LL{-73.78, 41.64}, nmPerLong, 13); Abs(h-13) > 0.5 {
		t.Errorf("magnetic correction not applied: %f", h)
	}
}

func TestNMDistance2LL(t *testing.T) {
	// One degree of latitude is 60nm.
	d := NMDistance2LL(Point2LL{-73.78, 40}, Point2LL{-73.78, 41})
	if Abs(d-60) > 0.5 {
		t.Errorf("expected ~60nm, got %f", d)
	}
	if d := NMDistance2LL(Point2LL{10, 10}, Point2LL{10, 10}); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestPoint2LL(t *testing.T) {
	p := Point2LL{-73.5, 40.25}
	if p.Longitude() != -73.5 || p.Latitude() != 40.25 {
		t.Errorf("unexpected components %v", p)
	}
	if p.IsZero() || !(Point2LL{}).IsZero() {
		t.Errorf("IsZero returned unexpected results")
	}
	if s := p.DDString(); s != "40.250000,-73.500000" {
		t.Errorf("unexpected DDString %q", s)
	}
}
