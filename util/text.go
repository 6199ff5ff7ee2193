// util/text.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"iter"
	"strings"
)

// SelectInTwoEdits returns the strings from seq that are respectively one
// and two edits (https://en.wikipedia.org/wiki/Levenshtein_distance) away
// from str, appended to dist1 and dist2.
func SelectInTwoEdits(str string, seq iter.Seq[string], dist1, dist2 []string) ([]string, []string) {
	var prev, cur []int
	for cand := range seq {
		if cand == str {
			continue
		}
		if d := len(cand) - len(str); d > 2 || d < -2 {
			continue
		}

		if n := len(cand) + 1; len(prev) < n {
			prev, cur = make([]int, n), make([]int, n)
		}
		for x := range len(cand) + 1 {
			prev[x] = x
		}

		tooFar := false
		for y := 1; y <= len(str); y++ {
			cur[0] = y
			best := y
			for x := 1; x <= len(cand); x++ {
				cost := Select(str[y-1] == cand[x-1], 0, 1)
				cur[x] = min(prev[x-1]+cost, prev[x]+1, cur[x-1]+1)
				best = min(best, cur[x])
			}
			if best > 2 {
				tooFar = true
				break
			}
			prev, cur = cur, prev
		}
		if tooFar {
			continue
		}

		switch prev[len(cand)] {
		case 1:
			dist1 = append(dist1, cand)
		case 2:
			dist2 = append(dist2, cand)
		}
	}
	return dist1, dist2
}

// IsAllLetters reports whether s is non-empty and contains only ASCII
// letters.
func IsAllLetters(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z')
	}) == -1
}

// IsAllLettersOrNumbers reports whether s is non-empty and contains only
// ASCII letters and digits.
func IsAllLettersOrNumbers(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9')
	}) == -1
}
