// aviation/separation.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/mmp/tracongen/math"
)

const (
	MinSameRunwaySeparationFeet = 3000
	MaxSameRunwaySeparationFeet = 6000
)

// sameRunwaySeparationFeet gives the minimum distance between two aircraft
// using the same runway, indexed [leading][trailing] by SRS category - 1.
// The behind-category-1 row is 1500*(leading+trailing); the
// behind-category-2 row follows the same structure, capped at 6000'.
var sameRunwaySeparationFeet = [3][3]int{
	{3000, 4500, 6000}, // Behind 1
	{4500, 6000, 6000}, // Behind 2
	{6000, 6000, 6000}, // Behind 3
}

// SameRunwaySeparation returns the minimum distance in feet that t must
// trail the leading aircraft by when both are using the same runway. A
// leader that is category 3 or has no known category always requires the
// maximum; a trailer with no known category is treated as category 3.
func (t AircraftType) SameRunwaySeparation(leading AircraftType) int {
	lead, trail := leading.SRS(), t.SRS()
	if !lead.Known() || lead == SRSCategory3 {
		return MaxSameRunwaySeparationFeet
	}
	if !trail.Known() {
		trail = SRSCategory3
	}

	sep := sameRunwaySeparationFeet[lead-1][trail-1]
	return math.Clamp(sep, MinSameRunwaySeparationFeet, MaxSameRunwaySeparationFeet)
}
