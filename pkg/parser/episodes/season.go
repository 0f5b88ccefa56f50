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
	"strconv"
	"strings"
)

var (
	seasonShortRe = regexp.MustCompile(`(?i)\bS(\d{1,2})(?:E\d{1,4})?\b`)
	seasonWordRe  = regexp.MustCompile(`(?i)\b(?:season|saison)[\s._-]*(\d{1,2})\b`)
	seasonRomanRe = regexp.MustCompile(`(?i)\b(?:season|saison)[\s._-]*([IVXL]{1,7})\b`)
	seasonOrdRe   = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)[\s._-]*season\b`)
	seasonWordOrd = regexp.MustCompile(
		`(?i)\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)[\s._-]*season\b`,
	)
	//nolint:gosmopolitan // Japanese season counters
	seasonJapanRe = regexp.MustCompile(`第?\s*(\d{1,2})\s*[期季]`)
)

var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50}

// SeasonStrategies is the season cascade in specificity order.
var SeasonStrategies = []Strategy[int]{
	{Name: StrategySeasonShort, Match: MatchSeasonShort},
	{Name: StrategySeasonWord, Match: matchSeasonWord},
	{Name: StrategySeasonRoman, Match: matchSeasonRoman},
	{Name: StrategySeasonOrdinal, Match: matchSeasonOrdinal},
	{Name: StrategySeasonJapan, Match: matchSeasonJapanese},
}

// ExtractSeason runs the season cascade over text.
func ExtractSeason(text string) (season int, strategy string, ok bool) {
	return Run(SeasonStrategies, text)
}

// MatchSeasonShort matches S2 and S01, including the season half of S01E05.
func MatchSeasonShort(text string) (int, bool) {
	return firstSeason(seasonShortRe, text)
}

func matchSeasonWord(text string) (int, bool) {
	return firstSeason(seasonWordRe, text)
}

func matchSeasonRoman(text string) (int, bool) {
	for _, m := range seasonRomanRe.FindAllStringSubmatch(text, -1) {
		if v := DecodeRoman(m[1]); v > 0 {
			return v, true
		}
	}
	return 0, false
}

func matchSeasonOrdinal(text string) (int, bool) {
	if v, ok := firstSeason(seasonOrdRe, text); ok {
		return v, true
	}
	if m := seasonWordOrd.FindStringSubmatch(text); m != nil {
		return ordinalWords[strings.ToLower(m[1])], true
	}
	return 0, false
}

func matchSeasonJapanese(text string) (int, bool) {
	return firstSeason(seasonJapanRe, text)
}

func firstSeason(re *regexp.Regexp, text string) (int, bool) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v, err := strconv.Atoi(m[1])
		if err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

// DecodeRoman converts a roman numeral made of I, V, X and L using simple
// subtractive decoding. It returns 0 for anything else.
func DecodeRoman(s string) int {
	s = strings.ToUpper(s)
	total := 0
	for i := range len(s) {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) && v < romanValues[s[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

var (
	seasonTokenShortRe = regexp.MustCompile(`(?i)^S(\d{1,2})$`)
	//nolint:gosmopolitan // Japanese season counters
	seasonTokenJapanRe = regexp.MustCompile(`^第?(\d{1,2})[期季]$`)
)

// ParseSeasonToken parses a token that is a season marker on its own, such
// as "S2" or "第2期". Unlike ExtractSeason the whole token must match.
func ParseSeasonToken(text string) (int, bool) {
	for _, re := range []*regexp.Regexp{seasonTokenShortRe, seasonTokenJapanRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
				return v, true
			}
		}
	}
	return 0, false
}
