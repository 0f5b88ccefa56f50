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
	"strings"
	"unicode/utf8"
)

const (
	katakanaFirst  = 'ァ'
	katakanaLast   = 'ヶ'
	kanaOffset     = 0x60
	sokuon         = 'っ'
	prolongedSound = 'ー'
)

//nolint:gosmopolitan // kana romanization table
var hiragana = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "wi", 'ゑ': "we", 'を': "wo", 'ん': "n",
	'ゔ': "vu", 'ゕ': "ka", 'ゖ': "ke", 'ゎ': "wa",
	// katakana-only voiced forms outside the shifted block
	'ヷ': "va", 'ヸ': "vi", 'ヹ': "ve", 'ヺ': "vo",
}

//nolint:gosmopolitan // small kana
var (
	smallYa = map[rune]string{'ゃ': "a", 'ゅ': "u", 'ょ': "o"}
	smallV  = map[rune]string{'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o"}
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g",
}

// toHiragana shifts katakana into the hiragana block.
func toHiragana(r rune) rune {
	if r >= katakanaFirst && r <= katakanaLast {
		return r - kanaOffset
	}
	return r
}

// Transliterate converts kana to Hepburn-style romaji and lowercase Cyrillic
// to Latin. Other runes pass through unchanged.
//
// Examples:
//   - "フリーレン" → "furiiren"
//   - "きゃっと" → "kyatto"
//   - "ワンピース" → "wanpiisu"
//   - "атака" → "ataka"
func Transliterate(s string) string {
	if !needsTransliteration(s) {
		return s
	}

	rs := []rune(s)
	for i, r := range rs {
		rs[i] = toHiragana(r)
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		r := rs[i]

		if roma, ok := hiragana[r]; ok {
			if i+1 < len(rs) {
				if v, ok := smallYa[rs[i+1]]; ok && len(roma) > 1 && strings.HasSuffix(roma, "i") {
					_, _ = b.WriteString(yoon(roma, v))
					i++
					continue
				}
				if v, ok := smallV[rs[i+1]]; ok && len(roma) > 1 {
					_, _ = b.WriteString(roma[:len(roma)-1] + v)
					i++
					continue
				}
			}
			_, _ = b.WriteString(roma)
			continue
		}

		switch {
		case r == sokuon:
			if i+1 < len(rs) {
				if next, ok := hiragana[rs[i+1]]; ok && next != "" && !isVowel(next[0]) {
					if strings.HasPrefix(next, "ch") {
						_ = b.WriteByte('t')
					} else {
						_ = b.WriteByte(next[0])
					}
				}
			}
		case r == prolongedSound:
			out := b.String()
			if out != "" && isVowel(out[len(out)-1]) {
				_ = b.WriteByte(out[len(out)-1])
			}
		default:
			if v, ok := smallYa[r]; ok {
				_, _ = b.WriteString("y" + v)
			} else if v, ok := smallV[r]; ok {
				_, _ = b.WriteString(v)
			} else if latin, ok := cyrillic[r]; ok {
				_, _ = b.WriteString(latin)
			} else {
				_, _ = b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// yoon combines an i-row kana with a small ya, yu or yo.
func yoon(roma, vowel string) string {
	stem := roma[:len(roma)-1]
	switch stem {
	case "sh", "ch", "j":
		return stem + vowel
	default:
		return stem + "y" + vowel
	}
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

func needsTransliteration(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r >= 'ぁ' && r <= 'ヺ') || r == prolongedSound || (r >= 'Ѐ' && r <= 'ӿ') {
			return true
		}
		i += size
	}
	return false
}
