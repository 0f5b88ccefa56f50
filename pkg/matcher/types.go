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

import "fmt"

// UnknownTitle is what Preferred returns for a title set with no names.
const UnknownTitle = "(unknown title)"

// TitleSet holds the names an anime is known by. Any field may be empty.
type TitleSet struct {
	Romaji   string   `json:"romaji,omitempty"`
	English  string   `json:"english,omitempty"`
	Native   string   `json:"native,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Preferred returns the romaji title, else english, else native.
func (t TitleSet) Preferred() string {
	switch {
	case t.Romaji != "":
		return t.Romaji
	case t.English != "":
		return t.English
	case t.Native != "":
		return t.Native
	default:
		return UnknownTitle
	}
}

// Variants returns every non-empty name in comparison order: romaji,
// english, native, then synonyms.
func (t TitleSet) Variants() []string {
	out := make([]string, 0, 3+len(t.Synonyms))
	for _, v := range []string{t.Romaji, t.English, t.Native} {
		if v != "" {
			out = append(out, v)
		}
	}
	for _, v := range t.Synonyms {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Anime is a catalog entry. Service IDs are zero when unknown.
type Anime struct {
	Titles    TitleSet `json:"titles"`
	ID        int      `json:"id"`
	MALID     uint32   `json:"mal_id,omitempty"`
	KitsuID   uint32   `json:"kitsu_id,omitempty"`
	AniListID uint32   `json:"anilist_id,omitempty"`
	Episodes  int      `json:"episodes,omitempty"`
}

func (a Anime) String() string {
	return fmt.Sprintf("%s (#%d)", a.Titles.Preferred(), a.ID)
}

// Kind tags a Result. Exact and Normalized are both a definite match and
// differ only in which pass found it.
type Kind int

const (
	NoMatch Kind = iota
	Exact
	Normalized
	Fuzzy
)

func (k Kind) String() string {
	switch k {
	case NoMatch:
		return "no_match"
	case Exact:
		return "exact"
	case Normalized:
		return "normalized"
	case Fuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is the outcome of MatchTitle. Anime is only meaningful when Kind is
// not NoMatch. Confidence is 1 for definite matches.
type Result struct {
	Anime      Anime   `json:"anime"`
	Kind       Kind    `json:"kind"`
	Confidence float64 `json:"confidence"`
}

// Matched reports whether the result is a definite match from the exact or
// normalized pass.
func (r Result) Matched() bool {
	return r.Kind == Exact || r.Kind == Normalized
}

// Found reports whether the result carries an anime.
func (r Result) Found() bool {
	return r.Kind != NoMatch
}
