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

package parser

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/episodes"
	"pgregory.net/rapid"
)

var (
	groupGen = rapid.SampledFrom([]string{"SubsPlease", "Erai-raws", "Judas", "HorribleSubs", "ASW"})
	wordGen  = rapid.SampledFrom([]string{
		"Sousou", "no", "Frieren", "Kimetsu", "Yaiba", "Spy", "Family", "Oshi", "Ko",
		"Bocchi", "the", "Rock", "Dungeon", "Meshi", "Kusuriya", "Hitorigoto",
	})
	resGen = rapid.SampledFrom([]string{"480p", "720p", "1080p", "2160p"})
)

// TestPropertyReleaseRoundTrip builds names in the common fansub layout and
// checks every component comes back out.
func TestPropertyReleaseRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		group := groupGen.Draw(t, "group")
		words := rapid.SliceOfN(wordGen, 1, 4).Draw(t, "words")
		ep := rapid.IntRange(1, 999).Draw(t, "episode")
		res := resGen.Draw(t, "resolution")

		title := words[0]
		for _, w := range words[1:] {
			title += " " + w
		}
		name := fmt.Sprintf("[%s] %s - %02d [%s].mkv", group, title, ep, res)

		el := Parse(name)
		if el.Title != title {
			t.Fatalf("title: got %q want %q (%s)", el.Title, title, name)
		}
		if el.EpisodeNumber == nil || *el.EpisodeNumber != ep {
			t.Fatalf("episode: got %v want %d (%s)", el.EpisodeNumber, ep, name)
		}
		if el.ReleaseGroup != group {
			t.Fatalf("group: got %q want %q", el.ReleaseGroup, group)
		}
		if el.Resolution != res {
			t.Fatalf("resolution: got %q want %q", el.Resolution, res)
		}
	})
}

// TestPropertyParseInvariants checks bounds that hold for any input.
func TestPropertyParseInvariants(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")

		first := Parse(name)
		second := Parse(name)
		if first.Title != second.Title || first.ReleaseGroup != second.ReleaseGroup {
			t.Fatalf("parse not deterministic for %q", name)
		}

		if first.EpisodeNumber != nil {
			if *first.EpisodeNumber < 0 || *first.EpisodeNumber > episodes.MaxEpisode {
				t.Fatalf("episode out of range: %d", *first.EpisodeNumber)
			}
		}
		if first.VideoTerms == nil || first.Languages == nil || first.Subtitles == nil {
			t.Fatal("collections must never be nil")
		}
	})
}

func FuzzParse(f *testing.F) {
	f.Add("[SubsPlease] Sousou no Frieren - 05 (1080p) [ABCD1234].mkv")
	f.Add("Title.S01E05.1080p.WEB-DL.x264.mkv")
	f.Add("[Group] 葬送のフリーレン 第05話 [1080p]")
	f.Add("[Group] Title [01v2][720p].mkv")
	f.Add("[[[(((")
	f.Add("- - -")
	f.Add("")

	f.Fuzz(func(t *testing.T, name string) {
		el := Parse(name)
		if el.EpisodeNumber != nil && *el.EpisodeNumber > episodes.MaxEpisode {
			t.Errorf("episode out of range: %d", *el.EpisodeNumber)
		}
		if utf8.ValidString(name) && !utf8.ValidString(el.Title) {
			t.Errorf("title is not valid UTF-8: %q", el.Title)
		}
	})
}
