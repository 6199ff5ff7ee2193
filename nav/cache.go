// nav/cache.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"strings"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/math"

	lru "github.com/hashicorp/golang-lru/v2"
)

type locateResult struct {
	p  math.Point2LL
	ok bool
}

// CachedLocator memoizes fix lookups (including misses) in front of
// another Locator. It is safe for concurrent use if the underlying
// Locator is.
type CachedLocator struct {
	loc   av.Locator
	cache *lru.Cache[string, locateResult]
}

func NewCachedLocator(loc av.Locator, size int) (*CachedLocator, error) {
	c, err := lru.New[string, locateResult](size)
	if err != nil {
		return nil, err
	}
	return &CachedLocator{loc: loc, cache: c}, nil
}

func (c *CachedLocator) Locate(fix string) (math.Point2LL, bool) {
	fix = strings.ToUpper(fix)
	if r, ok := c.cache.Get(fix); ok {
		return r.p, r.ok
	}
	p, ok := c.loc.Locate(fix)
	c.cache.Add(fix, locateResult{p: p, ok: ok})
	return p, ok
}

func (c *CachedLocator) Similar(fix string) []string {
	return c.loc.Similar(fix)
}

// Len returns the size of the underlying Locator's fix table, or -1 if it
// doesn't say.
func (c *CachedLocator) Len() int {
	if av.EmptyLocator(c.loc) {
		return 0
	}
	if sz, ok := c.loc.(interface{ Len() int }); ok {
		return sz.Len()
	}
	return -1
}

// CachedFixes returns the number of lookups currently memoized.
func (c *CachedLocator) CachedFixes() int {
	return c.cache.Len()
}
