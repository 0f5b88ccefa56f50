// Tsukiyomi Core
// Copyright (c) 2026 The Tsukiyomi Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Tsukiyomi Core.
//
// Tsukiyomi Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tsukiyomi Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tsukiyomi Core.  If not, see <http://www.gnu.org/licenses/>.

package matcher

import (
	"math"
	"unicode"
)

// Skim-style scoring constants. Consecutive matches earn the same bonus as a
// word boundary, so no text can outscore the pattern matched against itself.
const (
	scoreMatch               = 16
	scoreGapStart            = -3
	scoreGapExtension        = -1
	bonusBoundary            = 8
	bonusConsecutive         = bonusBoundary
	bonusFirstCharMultiplier = 2
)

const unreachable = math.MinInt32 / 2

func reachable(v int) bool {
	return v > unreachable/2
}

// Score returns the Skim fuzzy score of pattern against text and whether
// pattern occurs in text as a subsequence at all. Matching is
// case-sensitive; callers compare normalized strings.
//
// Each matched rune earns scoreMatch plus a bonus for starting a word or
// continuing a run. Unmatched runes between two matches cost a gap penalty.
// The score is the best alignment found by dynamic programming, floored at 0.
//
// Example:
//
//	Score("frieren", "sousou no frieren") → 176, true
//	Score("frieren", "frieren")           → 176, true
//	Score("xyz", "frieren")               → 0, false
func Score(pattern, text string) (int, bool) {
	p := []rune(pattern)
	t := []rune(text)
	if len(p) == 0 || len(p) > len(t) {
		return 0, false
	}

	// prev[j] is the best score with p[:i] matched and p[i-1] at t[j].
	prev := make([]int, len(t))
	cur := make([]int, len(t))
	for j := range t {
		prev[j] = unreachable
		if t[j] == p[0] {
			prev[j] = scoreMatch + bonusAt(t, j)*bonusFirstCharMultiplier
		}
	}

	for i := 1; i < len(p); i++ {
		// carry is the best prev[k] for k <= j-2 less the gap penalty for
		// skipping t[k+1:j].
		carry := unreachable
		for j := range t {
			if j >= 2 {
				carry = max(carry+scoreGapExtension, prev[j-2]+scoreGapStart)
			}
			cur[j] = unreachable
			if j == 0 || t[j] != p[i] {
				continue
			}
			best := unreachable
			if reachable(prev[j-1]) {
				best = prev[j-1] + scoreMatch + bonusConsecutive
			}
			if reachable(carry) {
				best = max(best, carry+scoreMatch+bonusAt(t, j))
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}

	best := unreachable
	for _, v := range prev {
		best = max(best, v)
	}
	if !reachable(best) {
		return 0, false
	}
	return max(best, 0), true
}

func bonusAt(t []rune, j int) int {
	if j == 0 || !isWordRune(t[j-1]) {
		return bonusBoundary
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
