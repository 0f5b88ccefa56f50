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

package episodes

import (
	"regexp"
	"strings"
)

var (
	dimensionsRe = regexp.MustCompile(`^(\d{3,4})[xX×](\d{3,4})$`)
	scanlinesRe  = regexp.MustCompile(`^(\d{3,4})([pPiI])$`)
)

// ParseResolution accepts WIDTHxHEIGHT, rewritten as "{height}p", or a
// numeric value already suffixed with p or i.
func ParseResolution(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := dimensionsRe.FindStringSubmatch(s); m != nil {
		return m[2] + "p", true
	}
	if m := scanlinesRe.FindStringSubmatch(s); m != nil {
		return m[1] + strings.ToLower(m[2]), true
	}
	return "", false
}

// IsDimensions reports whether s is a WIDTHxHEIGHT value.
func IsDimensions(s string) bool {
	return dimensionsRe.MatchString(strings.TrimSpace(s))
}
