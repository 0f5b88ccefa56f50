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

// Package normalize canonicalizes anime titles for comparison.
//
// Pipeline:
//
//	Stage 1: Width and compatibility folding - "ＳＰＹ×ＦＡＭＩＬＹ" → "spy×family"
//	Stage 2: Case folding - "Straße" → "strasse"
//	Stage 3: Transliteration - kana to romaji, Cyrillic to Latin
//	Stage 4: Mark removal - "Pokémon" → "pokemon"
//	Stage 5: Punctuation erasure - "Re:Zero" → "re zero", "Don't" → "dont"
//	Stage 6: Roman numerals - "Overlord IV" → "overlord 4"
//	Stage 7: Ordinals - "2nd" → "2", "Third" → "3"
//	Stage 8: Season keywords - "Season 2" → "2", "S2" → "2"
//	Stage 9: Stop words - "The", "A", "An", "Of", "And" dropped
//
// Words are joined with single spaces. Normalize is deterministic and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var (
	ordinalSuffixRe = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)$`)
	seasonShortRe   = regexp.MustCompile(`^s(\d{1,2})$`)
)

// X and I are left alone: "Hunter x Hunter" and the pronoun are far more
// common in titles than the numerals.
var romanNumerals = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5", "vi": "6", "vii": "7", "viii": "8",
	"ix": "9", "xi": "11", "xii": "12", "xiii": "13", "xiv": "14", "xv": "15",
	"xvi": "16", "xvii": "17", "xviii": "18", "xix": "19",
}

var ordinalWords = map[string]string{
	"first": "1", "second": "2", "third": "3", "fourth": "4", "fifth": "5",
	"sixth": "6", "seventh": "7", "eighth": "8", "ninth": "9", "tenth": "10",
}

var seasonWords = map[string]struct{}{
	"season": {}, "seasons": {}, "saison": {},
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {},
}

var folder = cases.Fold()

// Normalize returns the canonical form of s. It never fails; input with no
// letters or digits left after folding yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = FoldWidth(s)
	s = norm.NFKC.String(s)
	// Fold maps lowercase Cherokee to uppercase and back again; lowering
	// afterwards pins those letters to one form.
	s = strings.ToLower(folder.String(s))
	s = norm.NFKC.String(s)

	// transliterate on both sides of mark removal so a base letter exposed
	// by stripping a mark is converted too
	s = Transliterate(s)
	s = StripMarks(s)
	s = Transliterate(s)

	words := Words(s)
	out := words[:0]
	for _, w := range words {
		if w, keep := normalizeWord(w); keep {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// FoldWidth maps fullwidth ASCII to halfwidth and halfwidth kana to
// fullwidth.
func FoldWidth(s string) string {
	if folded, _, err := transform.String(width.Fold, s); err == nil {
		return folded
	}
	return s
}

// StripMarks removes nonspacing combining marks.
func StripMarks(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if stripped, _, err := transform.String(t, s); err == nil {
		return stripped
	}
	return s
}

// Words splits s into runs of letters and digits. Apostrophes are dropped
// rather than splitting, so contractions stay one word.
func Words(s string) []string {
	s = strings.Map(func(r rune) rune {
		if r == '\'' || r == '’' || r == '`' {
			return -1
		}
		return r
	}, s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// normalizeWord applies the word stages to one folded word. It reports false
// when the word should be dropped.
func normalizeWord(w string) (string, bool) {
	if n, ok := romanNumerals[w]; ok {
		return n, true
	}

	if n, ok := ordinalWords[w]; ok {
		return n, true
	}
	if m := ordinalSuffixRe.FindStringSubmatch(w); m != nil {
		return m[1], true
	}

	if _, ok := seasonWords[w]; ok {
		return "", false
	}
	if m := seasonShortRe.FindStringSubmatch(w); m != nil {
		n, _ := strconv.Atoi(m[1])
		return strconv.Itoa(n), true
	}

	if _, ok := stopWords[w]; ok {
		return "", false
	}
	return w, true
}
