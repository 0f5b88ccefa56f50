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

// Package episodes extracts episode numbers, seasons and resolutions from
// release name fragments.
//
// Extraction is done by ordered cascades of independent strategies. Each
// strategy has the same signature and the first one that succeeds wins, so
// more specific forms (S01E05) are always tried before looser ones (a bare
// number).
package episodes

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxEpisode bounds every extracted episode number. Larger values are
	// almost always years, IDs or resolutions.
	MaxEpisode = 1999

	yearLikeMin = 1950
	yearLikeMax = 2050
)

var versionSuffixRe = regexp.MustCompile(`(?i)^(.+?)v(\d{1,2})$`)

// Number is a parsed episode token.
type Number struct {
	// Raw is the token text as it appeared in the filename.
	Raw string
	// Value is the episode number.
	Value int
	// Version is the release version from a vN suffix, zero when absent.
	Version int
}

// ParseNumber parses a single episode token such as "05", "12v2", "12.5" or
// "01-03". Fractional episodes truncate, ranges yield their first number.
// Four digit values starting with 19 or 20 are rejected as years, as is
// anything above MaxEpisode.
func ParseNumber(s string) (Number, bool) {
	n := Number{Raw: s}
	text := strings.TrimSpace(s)

	if m := versionSuffixRe.FindStringSubmatch(text); m != nil {
		text = m[1]
		n.Version, _ = strconv.Atoi(m[2])
	}

	if before, _, found := strings.Cut(text, "-"); found {
		text = before
	}

	if before, _, found := strings.Cut(text, "."); found {
		text = before
	}

	if !isDigits(text) {
		return Number{}, false
	}

	if len(text) == 4 && (strings.HasPrefix(text, "19") || strings.HasPrefix(text, "20")) {
		return Number{}, false
	}

	value, err := strconv.Atoi(text)
	if err != nil || value > MaxEpisode {
		return Number{}, false
	}

	n.Value = value
	return n, true
}

// IsVersioned reports whether s is a bare number with a vN release suffix,
// as in "12v2".
func IsVersioned(s string) bool {
	m := versionSuffixRe.FindStringSubmatch(s)
	return m != nil && isDigits(m[1])
}

// validEpisode applies the bounds shared by every cascade strategy.
func validEpisode(digits string) (int, bool) {
	value, err := strconv.Atoi(digits)
	if err != nil || value > MaxEpisode {
		return 0, false
	}
	if len(digits) == 4 && value >= yearLikeMin && value <= yearLikeMax {
		return 0, false
	}
	return value, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
