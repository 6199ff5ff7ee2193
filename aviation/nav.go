// aviation/nav.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strings"

	"github.com/mmp/tracongen/math"
)

// Locator is the navigation collaborator that resolves fix names.
type Locator interface {
	// Locate returns the lat-long coordinates of the named point if they
	// are available; the bool indicates whether the point was known.
	Locate(fix string) (math.Point2LL, bool)

	// If Locate fails, Similar can be called to get alternatives that are
	// similarly-spelled to be offered in error messages.
	Similar(fix string) []string
}

// EmptyLocator reports whether loc is nil or knows no fixes at all.
// Locators that can't report their size are assumed non-empty.
func EmptyLocator(loc Locator) bool {
	if loc == nil {
		return true
	}
	if sz, ok := loc.(interface{ Len() int }); ok {
		return sz.Len() == 0
	}
	return false
}

// ResolvedFix is a fix name along with its location.
type ResolvedFix struct {
	Fix      string
	Location math.Point2LL
}

// ResolveFix looks up the given fix; if it isn't known, the returned error
// wraps ErrNoMatchingFix and lists similarly-named fixes, if any.
func ResolveFix(loc Locator, fix string) (ResolvedFix, error) {
	fix = strings.ToUpper(fix)
	if p, ok := loc.Locate(fix); ok {
		return ResolvedFix{Fix: fix, Location: p}, nil
	}
	if sim := loc.Similar(fix); len(sim) > 0 {
		return ResolvedFix{}, fmt.Errorf("%s: %w. Did you mean: %s?", fix, ErrNoMatchingFix,
			strings.Join(sim, ", "))
	}
	return ResolvedFix{}, fmt.Errorf("%s: %w", fix, ErrNoMatchingFix)
}
