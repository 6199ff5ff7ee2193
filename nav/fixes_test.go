// nav/fixes_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"errors"
	"slices"
	"strings"
	"testing"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/math"
)

func testFixDB() *FixDB {
	return MakeFixDB(map[string]math.Point2LL{
		"merit": {-73.1, 41.38},
		"MERIT": {-73.1, 41.38},
		"HAROB": {-73.47, 40.68},
		"BETTE": {-72.89, 40.87},
		"KJFK":  {-73.78, 40.64},
	})
}

func TestFixDBLocate(t *testing.T) {
	db := testFixDB()
	if db.Len() != 4 {
		t.Errorf("expected 4 fixes, got %d", db.Len())
	}

	if p, ok := db.Locate("merit"); !ok || p != (math.Point2LL{-73.1, 41.38}) {
		t.Errorf("merit: got %v %v", p, ok)
	}
	if _, ok := db.Locate("NOPE"); ok {
		t.Errorf("located unknown fix")
	}

	var nilDB *FixDB
	if _, ok := nilDB.Locate("MERIT"); ok || nilDB.Len() != 0 || nilDB.Similar("MERIT") != nil {
		t.Errorf("nil FixDB should know nothing")
	}
	if !av.EmptyLocator(nilDB) || !av.EmptyLocator(MakeFixDB(nil)) || av.EmptyLocator(db) {
		t.Errorf("EmptyLocator returned unexpected results")
	}
}

func TestFixDBSimilar(t *testing.T) {
	db := testFixDB()

	if s := db.Similar("MERT"); !slices.Equal(s, []string{"MERIT"}) {
		t.Errorf("MERT: got %v", s)
	}
	if s := db.Similar("BETTY"); !slices.Equal(s, []string{"BETTE"}) {
		t.Errorf("BETTY: got %v", s)
	}
	if s := db.Similar("ZZZZZZZZ"); len(s) != 0 {
		t.Errorf("expected no suggestions, got %v", s)
	}

	_, err := av.ResolveFix(db, "harbo")
	if !errors.Is(err, av.ErrNoMatchingFix) {
		t.Fatalf("expected ErrNoMatchingFix, got %v", err)
	}
	if !strings.Contains(err.Error(), "Did you mean: HAROB?") {
		t.Errorf("expected suggestion in %q", err)
	}

	rf, err := av.ResolveFix(db, "bette")
	if err != nil || rf.Fix != "BETTE" || rf.Location != (math.Point2LL{-72.89, 40.87}) {
		t.Errorf("unexpected resolution %+v %v", rf, err)
	}
}

type countingLocator struct {
	*FixDB
	calls int
}

func (c *countingLocator) Locate(fix string) (math.Point2LL, bool) {
	c.calls++
	return c.FixDB.Locate(fix)
}

func TestCachedLocator(t *testing.T) {
	under := &countingLocator{FixDB: testFixDB()}
	loc, err := NewCachedLocator(under, 2)
	if err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if _, ok := loc.Locate("MERIT"); !ok {
			t.Fatalf("MERIT not found")
		}
		if _, ok := loc.Locate("nope"); ok {
			t.Fatalf("found nonexistent fix")
		}
	}
	if under.calls != 2 {
		t.Errorf("expected 2 underlying lookups, got %d", under.calls)
	}
	if loc.CachedFixes() != 2 {
		t.Errorf("expected 2 cached fixes, got %d", loc.CachedFixes())
	}

	// Evicts the least-recently used entry.
	loc.Locate("HAROB")
	loc.Locate("MERIT")
	if under.calls != 4 {
		t.Errorf("expected 4 underlying lookups, got %d", under.calls)
	}

	if loc.Len() != 4 {
		t.Errorf("expected Len 4, got %d", loc.Len())
	}
	if s := loc.Similar("HARO"); !slices.Equal(s, []string{"HAROB"}) {
		t.Errorf("Similar: got %v", s)
	}

	if _, err := NewCachedLocator(under, 0); err == nil {
		t.Errorf("expected error for zero-sized cache")
	}
}

type sizelessLocator struct{}

func (sizelessLocator) Locate(string) (math.Point2LL, bool) { return math.Point2LL{}, false }
func (sizelessLocator) Similar(string) []string             { return nil }

func TestCachedLocatorLen(t *testing.T) {
	loc, err := NewCachedLocator(sizelessLocator{}, 8)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Len() != -1 || av.EmptyLocator(loc) {
		t.Errorf("sizeless locator should be assumed non-empty, got Len %d", loc.Len())
	}

	empty, _ := NewCachedLocator(MakeFixDB(nil), 8)
	if !av.EmptyLocator(empty) {
		t.Errorf("expected cached empty FixDB to be empty")
	}
}
