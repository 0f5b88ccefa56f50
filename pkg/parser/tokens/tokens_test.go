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

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestStripExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantExt  string
	}{
		{name: "mkv", input: "Show - 01.mkv", wantName: "Show - 01", wantExt: "mkv"},
		{name: "uppercase", input: "Show - 01.MP4", wantName: "Show - 01", wantExt: "MP4"},
		{name: "mpeg", input: "clip.mpeg", wantName: "clip", wantExt: "mpeg"},
		{name: "unknown extension kept", input: "Show - 01.txt", wantName: "Show - 01.txt"},
		{name: "no extension", input: "Show - 01", wantName: "Show - 01"},
		{name: "trailing dot", input: "Show.", wantName: "Show."},
		{name: "only last extension", input: "a.mkv.mp4", wantName: "a.mkv", wantExt: "mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			name, ext := StripExtension(tt.input)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "typical release",
			input: "[SubsPlease] Sousou no Frieren - 05 (1080p) [ABCD1234].mkv",
			want: []Token{
				{Kind: Bracketed, Text: "SubsPlease", Opener: '['},
				{Kind: Delimiter, Text: " "},
				{Kind: FreeText, Text: "Sousou"},
				{Kind: Delimiter, Text: " "},
				{Kind: FreeText, Text: "no"},
				{Kind: Delimiter, Text: " "},
				{Kind: FreeText, Text: "Frieren"},
				{Kind: Delimiter, Text: " "},
				{Kind: FreeText, Text: "-"},
				{Kind: Delimiter, Text: " "},
				{Kind: FreeText, Text: "05"},
				{Kind: Delimiter, Text: " "},
				{Kind: Bracketed, Text: "1080p", Opener: '('},
				{Kind: Delimiter, Text: " "},
				{Kind: Bracketed, Text: "ABCD1234", Opener: '['},
			},
		},
		{
			name:  "delimiter runs collapse",
			input: "a._ b",
			want: []Token{
				{Kind: FreeText, Text: "a"},
				{Kind: Delimiter, Text: "._ "},
				{Kind: FreeText, Text: "b"},
			},
		},
		{
			name:  "no nesting across pairs",
			input: "[a (b] c)",
			want: []Token{
				{Kind: Bracketed, Text: "a (b", Opener: '['},
				{Kind: Delimiter, Text: " "},
				{Kind: FreeText, Text: "c)"},
			},
		},
		{
			name:  "unterminated bracket consumes rest",
			input: "Title [1080p HEVC",
			want: []Token{
				{Kind: FreeText, Text: "Title"},
				{Kind: Delimiter, Text: " "},
				{Kind: Bracketed, Text: "1080p HEVC", Opener: '['},
			},
		},
		{
			name:  "empty brackets skipped",
			input: "a [] b",
			want: []Token{
				{Kind: FreeText, Text: "a"},
				{Kind: Delimiter, Text: "  "},
				{Kind: FreeText, Text: "b"},
			},
		},
		{
			name:  "brackets adjacent to text",
			input: "[Group]Title(2020)",
			want: []Token{
				{Kind: Bracketed, Text: "Group", Opener: '['},
				{Kind: FreeText, Text: "Title"},
				{Kind: Bracketed, Text: "2020", Opener: '('},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	toks := Tokenize("[Group]_Title..Name_(720p).mkv")
	assert.Equal(t, "[Group] Title Name (720p)", Render(toks))
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNumeric("05"))
	assert.True(t, IsNumeric("1999"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("5a"))
	assert.False(t, IsNumeric("-5"))
}

func filenameGen() *rapid.Generator[string] {
	//nolint:gosmopolitan // Intentional multi-script input
	chars := []rune("abcXYZ0123456789 _.-[]()vpE第話期フリーレン")
	return rapid.StringOfN(rapid.SampledFrom(chars), 0, 60, -1)
}

// TestPropertyTokenizeStable verifies that rendering tokens and tokenizing
// the result yields the same tokens again.
func TestPropertyTokenizeStable(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		input := filenameGen().Draw(t, "input")

		first := Tokenize(input)
		second := Tokenize(Render(first))

		if len(first) != len(second) {
			t.Fatalf("token count changed: %d -> %d (%q)", len(first), len(second), input)
		}
		for i := range first {
			if first[i].Kind != second[i].Kind {
				t.Fatalf("kind changed at %d for %q", i, input)
			}
			if first[i].Kind != Delimiter && first[i].Text != second[i].Text {
				t.Fatalf("text changed at %d: %q -> %q", i, first[i].Text, second[i].Text)
			}
		}
	})
}

// TestPropertyNoConsecutiveDelimiters verifies delimiter runs always collapse.
func TestPropertyNoConsecutiveDelimiters(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		toks := Tokenize(filenameGen().Draw(t, "input"))
		for i := 1; i < len(toks); i++ {
			if toks[i].Kind == Delimiter && toks[i-1].Kind == Delimiter {
				t.Fatalf("consecutive delimiters at %d", i)
			}
			if toks[i].Text == "" {
				t.Fatalf("empty token at %d", i)
			}
		}
	})
}

func FuzzTokenize(f *testing.F) {
	f.Add("[SubsPlease] Sousou no Frieren - 05 (1080p) [ABCD1234].mkv")
	f.Add("[unterminated (bracket")
	f.Add("...___   ")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		toks := Tokenize(input)
		for i := 1; i < len(toks); i++ {
			if toks[i].Kind == Delimiter && toks[i-1].Kind == Delimiter {
				t.Fatalf("consecutive delimiters for %q", input)
			}
		}
	})
}
