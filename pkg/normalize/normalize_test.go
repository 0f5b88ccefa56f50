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

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "!?-:", want: ""},
		{name: "case and spacing", input: "  Sousou   no  FRIEREN ", want: "sousou no frieren"},
		{name: "punctuation erased", input: "Re:Zero kara Hajimeru", want: "re zero kara hajimeru"},
		{name: "apostrophe joins", input: "JoJo's Bizarre Adventure", want: "jojos bizarre adventure"},
		{name: "diacritics", input: "Pokémon", want: "pokemon"},
		{name: "fullwidth", input: "ＳＰＹ×ＦＡＭＩＬＹ", want: "spy family"},
		{name: "roman numeral", input: "Overlord IV", want: "overlord 4"},
		{name: "x kept", input: "Hunter x Hunter", want: "hunter x hunter"},
		{name: "ordinal suffix", input: "Mob Psycho 100 2nd Season", want: "mob psycho 100 2"},
		{name: "ordinal word", input: "Kaguya-sama Third Season", want: "kaguya sama 3"},
		{name: "season word", input: "Attack on Titan Season 3", want: "attack on titan 3"},
		{name: "season roman", input: "Attack on Titan Season III", want: "attack on titan 3"},
		{name: "short season", input: "Vinland Saga S02", want: "vinland saga 2"},
		{name: "stop words", input: "The Tale of the Princess and a Knight", want: "tale princess knight"},
		{name: "katakana", input: "フリーレン", want: "furiiren"},
		{name: "mixed kana and kanji", input: "葬送のフリーレン", want: "葬送nofuriiren"},
		{name: "sokuon and yoon", input: "きゃっと", want: "kyatto"},
		{name: "halfwidth katakana", input: "ﾜﾝﾋﾟｰｽ", want: "wanpiisu"},
		{name: "cyrillic", input: "Атака Титанов", want: "ataka titanov"},
		{name: "german sharp s", input: "Straße", want: "strasse"},
		{name: "roman numeral character", input: "Danmachi Ⅱ", want: "danmachi 2"},
		{name: "cherokee lowercase", input: "ꭰ", want: "ꭰ"},
		{name: "cherokee uppercase", input: "Ꭰ", want: "ꭰ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestTransliterate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "しょうねん", want: "shounen"},
		{input: "ちゃ", want: "cha"},
		{input: "ジョジョ", want: "jojo"},
		{input: "ファン", want: "fan"},
		{input: "まっちゃ", want: "matcha"},
		{input: "ー", want: ""},
		{input: "ゃ", want: "ya"},
		{input: "latin", want: "latin"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Transliterate(tt.input))
		})
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"dont", "stop"}, Words("don't-stop"))
	assert.Empty(t, Words("..."))
}

var titleRunes = []rune(
	"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		" -:!?'.,_()[]" +
		"éèüöñçßÉÅ" +
		"ＡＢＣ１２３" +
		"あいうかきしちっゃゅょーアイウカキシチッャュョヴンｱｶﾞ" +
		"葬送剣" +
		"АБВабвёйщъ" +
		"ⅡⅣ" +
		"ᎠᏣꭰꮳ",
)

// TestPropertyIdempotent checks normalize(normalize(x)) == normalize(x).
func TestPropertyIdempotent(t *testing.T) {
	t.Parallel()

	gen := rapid.StringOf(rapid.SampledFrom(titleRunes))
	rapid.Check(t, func(t *rapid.T) {
		s := gen.Draw(t, "title")
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

// TestPropertyIdempotentAnyString repeats the idempotence check over
// arbitrary Unicode.
func TestPropertyIdempotentAnyString(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "input")
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

// TestPropertyWordsAndSpaces checks the output never has empty words or
// padding.
func TestPropertyWordsAndSpaces(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "input")
		out := Normalize(s)
		if out == "" {
			return
		}
		if out[0] == ' ' || out[len(out)-1] == ' ' {
			t.Fatalf("padded output %q", out)
		}
		for i := 1; i < len(out); i++ {
			if out[i] == ' ' && out[i-1] == ' ' {
				t.Fatalf("double space in %q", out)
			}
		}
	})
}
