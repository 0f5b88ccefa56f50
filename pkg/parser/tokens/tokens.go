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

// Package tokens splits release filenames into bracketed, free text and
// delimiter tokens.
//
// Bracket pairs are not nested: an opening '[' is closed by the first ']'
// that follows it, even if a '(' was opened in between. An unterminated
// bracket runs to the end of the input.
package tokens

import (
	"strings"
)

// Kind classifies a Token.
type Kind int

const (
	// Bracketed is the inner text of a [..] or (..) pair.
	Bracketed Kind = iota
	// FreeText is a run of characters between delimiters and brackets.
	FreeText
	// Delimiter is a collapsed run of spaces, underscores and dots.
	Delimiter
)

func (k Kind) String() string {
	switch k {
	case Bracketed:
		return "bracketed"
	case FreeText:
		return "free_text"
	case Delimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// Token is one classified substring of a filename.
type Token struct {
	// Text is the token content. Bracketed tokens hold the inner text only,
	// Delimiter tokens hold the original delimiter run.
	Text string
	Kind Kind
	// Opener is the opening bracket of a Bracketed token, zero otherwise.
	Opener rune
}

// videoExtensions are stripped from the end of a filename before scanning.
var videoExtensions = map[string]struct{}{
	"mkv":  {},
	"mp4":  {},
	"avi":  {},
	"ogm":  {},
	"wmv":  {},
	"mpg":  {},
	"mpeg": {},
	"flv":  {},
	"webm": {},
	"m4v":  {},
}

var closers = map[rune]rune{
	'[': ']',
	'(': ')',
}

func isDelimiter(r rune) bool {
	return r == ' ' || r == '_' || r == '.'
}

// StripExtension removes a known video file extension from s. It returns the
// remaining name and the extension as written (without the dot), or s and ""
// when no known extension is present.
func StripExtension(s string) (name, ext string) {
	dot := strings.LastIndexByte(s, '.')
	if dot < 0 || dot == len(s)-1 {
		return s, ""
	}
	candidate := s[dot+1:]
	if _, ok := videoExtensions[strings.ToLower(candidate)]; !ok {
		return s, ""
	}
	return s[:dot], candidate
}

// Tokenize strips a known video extension from s and splits the rest into
// tokens, left to right.
func Tokenize(s string) []Token {
	name, _ := StripExtension(s)
	return Scan(name)
}

// Scan splits s into tokens without touching any extension.
func Scan(s string) []Token {
	runes := []rune(s)
	toks := make([]Token, 0, len(runes)/3+1)

	emit := func(t Token) {
		if t.Kind == Delimiter && len(toks) > 0 && toks[len(toks)-1].Kind == Delimiter {
			// an empty bracket pair between two delimiter runs must not
			// produce two delimiter tokens in a row
			toks[len(toks)-1].Text += t.Text
			return
		}
		toks = append(toks, t)
	}

	i := 0
	for i < len(runes) {
		r := runes[i]

		if closer, ok := closers[r]; ok {
			start := i + 1
			end := start
			for end < len(runes) && runes[end] != closer {
				end++
			}
			if end > start {
				emit(Token{Kind: Bracketed, Text: string(runes[start:end]), Opener: r})
			}
			i = end + 1
			continue
		}

		if isDelimiter(r) {
			start := i
			for i < len(runes) && isDelimiter(runes[i]) {
				i++
			}
			emit(Token{Kind: Delimiter, Text: string(runes[start:i])})
			continue
		}

		start := i
		for i < len(runes) {
			if _, ok := closers[runes[i]]; ok || isDelimiter(runes[i]) {
				break
			}
			i++
		}
		emit(Token{Kind: FreeText, Text: string(runes[start:i])})
	}

	return toks
}

// Render joins tokens back into a string. Delimiters are rendered as a single
// space and bracketed tokens are wrapped in their original bracket pair.
func Render(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case Delimiter:
			sb.WriteByte(' ')
		case Bracketed:
			opener := t.Opener
			if opener == 0 {
				opener = '['
			}
			sb.WriteRune(opener)
			sb.WriteString(t.Text)
			sb.WriteRune(closers[opener])
		case FreeText:
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
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
