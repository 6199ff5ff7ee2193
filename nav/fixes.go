// nav/fixes.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"maps"
	"slices"
	"strings"

	"github.com/mmp/tracongen/math"
	"github.com/mmp/tracongen/util"
)

// FixDB is a static table of named fixes. It implements
// aviation.Locator.
type FixDB struct {
	fixes map[string]math.Point2LL
}

// MakeFixDB returns a FixDB holding the given fixes; names are
// case-insensitive.
func MakeFixDB(fixes map[string]math.Point2LL) *FixDB {
	db := &FixDB{fixes: make(map[string]math.Point2LL, len(fixes))}
	for name, p := range fixes {
		db.fixes[strings.ToUpper(name)] = p
	}
	return db
}

func (db *FixDB) Locate(fix string) (math.Point2LL, bool) {
	if db == nil {
		return math.Point2LL{}, false
	}
	p, ok := db.fixes[strings.ToUpper(fix)]
	return p, ok
}

// Similar returns the known fixes that are one edit away from fix or, if
// there are none, those that are two edits away.
func (db *FixDB) Similar(fix string) []string {
	if db == nil {
		return nil
	}
	d1, d2 := util.SelectInTwoEdits(strings.ToUpper(fix), maps.Keys(db.fixes), nil, nil)
	s := util.Select(len(d1) > 0, d1, d2)
	// Map iteration order is random; keep error messages stable.
	slices.Sort(s)
	return s
}

func (db *FixDB) Len() int {
	if db == nil {
		return 0
	}
	return len(db.fixes)
}
