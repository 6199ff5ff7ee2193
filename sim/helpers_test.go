// sim/helpers_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"
	"time"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/math"
	"github.com/mmp/tracongen/nav"

	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

var testFixes = map[string]math.Point2LL{
	"KJFK":  {-73.7789, 40.6398},
	"CAMRN": {-73.8618, 40.0179},
	"HAROB": {-73.4707, 40.6850},
	"MERIT": {-73.1009, 41.3816},
	"BETTE": {-72.8881, 40.8751},
	"LENDY": {-74.1473, 40.9147},
	"ROBER": {-73.9556, 40.4562},
}

func testLocator() *nav.FixDB {
	return nav.MakeFixDB(testFixes)
}

func arrivalSpec() SpawnPatternSpec {
	return SpawnPatternSpec{
		Category:    SpawnArrival,
		Destination: "KJFK",
		Route:       "CAMRN..HAROB",
		Rate:        30,
		Speed:       250,
		Altitude:    []int{10000},
		Types:       []SpawnTypeWeight{{ICAO: "B738", Weight: 3}, {ICAO: "A320", Weight: 1}},
	}
}

func departureSpec() SpawnPatternSpec {
	return SpawnPatternSpec{
		Category: SpawnDeparture,
		Origin:   "KJFK",
		Runway:   "31L",
		Route:    "ROBER",
		Rate:     20,
		Types:    []SpawnTypeWeight{{ICAO: "B738"}, {ICAO: "C172"}},
	}
}

func overflightSpec() SpawnPatternSpec {
	return SpawnPatternSpec{
		Category:  SpawnOverflight,
		Route:     "BETTE MERIT",
		Method:    SpawnCyclic,
		Rate:      10,
		Variation: 5,
		Period:    60,
		Speed:     420,
		Altitude:  []int{23000, 33000},
		Types:     []SpawnTypeWeight{{ICAO: "A320"}},
	}
}

func testAirportConfig() *AirportConfig {
	return &AirportConfig{
		ICAO:          "KJFK",
		Fixes:         testFixes,
		SpawnPatterns: []SpawnPatternSpec{arrivalSpec(), departureSpec(), overflightSpec()},
	}
}

func testCatalog(t *testing.T) *av.AircraftCatalog {
	t.Helper()

	mk := func(icao string, wc av.WeightClass, srs av.SRSCategory, accel float32) av.AircraftTypeRecord {
		var rec av.AircraftTypeRecord
		rec.ICAO = icao
		rec.WeightClass = wc
		rec.Category.SRS = srs
		rec.Capability.RNAV = true
		rec.Capability.RVSM = true
		rec.Rate.Accelerate = accel
		return rec
	}

	cat, err := av.NewAircraftCatalog([]av.AircraftTypeRecord{
		mk("B738", av.WeightClassLarge, av.SRSCategory3, 6),
		mk("A320", av.WeightClassLarge, av.SRSCategory3, 0),
		mk("C172", av.WeightClassSmall, av.SRSCategory1, 0),
	})
	require.NoError(t, err)
	return cat
}

func mustPattern(t *testing.T, spec SpawnPatternSpec) *SpawnPattern {
	t.Helper()
	p, err := NewSpawnPattern(spec, testLocator())
	require.NoError(t, err)
	return p
}
