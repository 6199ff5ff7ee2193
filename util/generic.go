// util/generic.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"slices"

	"golang.org/x/exp/constraints"
)

///////////////////////////////////////////////////////////////////////////
// SingleOrArray

// SingleOrArray makes it possible to have an object in a JSON file that
// may be initialized with either a single value or an array of values.  In
// either case, the object's value is represented by a slice of the
// underlying type.
type SingleOrArray[V any] []V

func (s *SingleOrArray[V]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = nil
		return nil
	}

	if n := len(b); n >= 2 && b[0] == '[' && b[n-1] == ']' {
		var v []V
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = v
		return nil
	}

	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = []V{v}
	return nil
}

// CheckJSON accepts a single scalar or an array of scalars.
func (s SingleOrArray[V]) CheckJSON(v any) bool {
	scalar := func(v any) bool {
		switch v.(type) {
		case float64, string, bool:
			return true
		default:
			return false
		}
	}
	if arr, ok := v.([]any); ok {
		return !slices.ContainsFunc(arr, func(v any) bool { return !scalar(v) })
	}
	return scalar(v)
}

///////////////////////////////////////////////////////////////////////////

func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// SortedMapKeys returns the keys of the given map, sorted from low to high.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DuplicateSlice returns a newly-allocated slice that is a copy of the
// provided one.
func DuplicateSlice[V any](s []V) []V {
	if s == nil {
		return nil
	}
	return append(make([]V, 0, len(s)), s...)
}
