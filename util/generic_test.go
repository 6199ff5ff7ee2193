// util/generic_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestSingleOrArray(t *testing.T) {
	for _, test := range []struct {
		json   string
		expect []int
		err    bool
	}{
		{"5000", []int{5000}, false},
		{"[3000, 7000]", []int{3000, 7000}, false},
		{"[]", []int{}, false},
		{"null", nil, false},
		{`"high"`, nil, true},
		{`[1, "x"]`, nil, true},
	} {
		var s SingleOrArray[int]
		err := json.Unmarshal([]byte(test.json), &s)
		if (err != nil) != test.err {
			t.Errorf("%s: error %v, expected error %v", test.json, err, test.err)
			continue
		}
		if !test.err && !slices.Equal(s, test.expect) {
			t.Errorf("%s: expected %v, got %v", test.json, test.expect, s)
		}
	}
}

func TestSingleOrArrayInStruct(t *testing.T) {
	var v struct {
		Alt SingleOrArray[int] `json:"alt"`
	}
	if err := json.Unmarshal([]byte(`{"alt": [1, 2]}`), &v); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(v.Alt, []int{1, 2}) {
		t.Errorf("unexpected %v", v.Alt)
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"KSFO": 1, "KJFK": 2, "KBOS": 3}
	if k := SortedMapKeys(m); !slices.Equal(k, []string{"KBOS", "KJFK", "KSFO"}) {
		t.Errorf("unexpected keys %v", k)
	}
	if k := SortedMapKeys(map[int]bool{}); len(k) != 0 {
		t.Errorf("expected no keys, got %v", k)
	}
}

func TestDuplicateSlice(t *testing.T) {
	if DuplicateSlice[int](nil) != nil {
		t.Errorf("expected nil")
	}

	s := []int{1, 2, 3}
	d := DuplicateSlice(s)
	d[0] = 10
	if s[0] != 1 {
		t.Errorf("DuplicateSlice aliases its argument")
	}
}

func TestSelect(t *testing.T) {
	if Select(true, "a", "b") != "a" || Select(false, 1, 2) != 2 {
		t.Errorf("Select returned the wrong value")
	}
}
