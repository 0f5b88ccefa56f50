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
	"strings"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/episodes"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/tokens"
)

// season claims season markers before episode extraction runs, so that the
// number in "Season 2" is never taken for an episode.
func (s *state) season() {
	for i := range s.slots {
		if !s.unclaimedFreeText(i) {
			continue
		}
		text := s.slots[i].Text

		if m, ok := episodes.MatchCombined(text); ok && isCombinedToken(text) {
			if s.el.Season == nil {
				season := m.Season
				s.el.Season = &season
			}
			s.setEpisode(m.Number, text, m.Version)
			s.slots[i].Claim = ClaimEpisode
			continue
		}

		if s.el.Season != nil {
			continue
		}

		if season, ok := episodes.ParseSeasonToken(text); ok {
			s.el.Season = &season
			s.slots[i].Claim = ClaimSeason
			continue
		}

		j := s.next(i)
		if !s.unclaimedFreeText(j) {
			continue
		}
		other := s.slots[j].Text
		if !isSeasonWord(text) && !(isSeasonWord(other) && ordinalRe.MatchString(text)) {
			continue
		}
		if season, _, ok := episodes.ExtractSeason(text + " " + other); ok {
			s.el.Season = &season
			s.slots[i].Claim = ClaimSeason
			s.slots[j].Claim = ClaimSeason
		}
	}
}

func isSeasonWord(text string) bool {
	return strings.EqualFold(text, "season") || strings.EqualFold(text, "saison")
}

// isCombinedToken keeps MatchCombined from claiming a token that merely
// contains an S01E05 form inside a longer word.
func isCombinedToken(text string) bool {
	lower := strings.ToLower(text)
	if lower == "" {
		return false
	}
	if lower[0] == 's' {
		return true
	}
	return lower[0] >= '0' && lower[0] <= '9' && strings.ContainsAny(lower, "x")
}

type episodeStrategy func(s *state) bool

// episodeStrategies run in order until one claims an episode.
var episodeStrategies = []episodeStrategy{
	(*state).episodeAfterDash,
	(*state).episodeStandaloneNumber,
	(*state).episodeBracketed,
	(*state).episodeMarker,
}

func (s *state) episode() {
	if s.el.EpisodeNumber != nil {
		return
	}
	for _, strategy := range episodeStrategies {
		if strategy(s) {
			return
		}
	}
}

// episodeAfterDash handles "Title - 05".
func (s *state) episodeAfterDash() bool {
	for i := range s.slots {
		if !s.unclaimedFreeText(i) || s.slots[i].Text != "-" {
			continue
		}
		j := s.next(i)
		if j < 0 || s.slots[j].Claim != Unclaimed || s.slots[j].Kind == tokens.Delimiter {
			continue
		}
		n, ok := episodes.ParseNumber(s.slots[j].Text)
		if !ok {
			continue
		}
		s.setEpisode(n.Value, n.Raw, n.Version)
		s.slots[i].Claim = ClaimSeparator
		s.slots[j].Claim = ClaimEpisode
		return true
	}
	return false
}

// episodeStandaloneNumber takes the first bare number, optionally
// versioned, that follows other free text, so a title that starts with a
// number keeps it.
func (s *state) episodeStandaloneNumber() bool {
	seenText := false
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Kind != tokens.FreeText || slot.Text == "-" {
			continue
		}
		if seenText && slot.Claim == Unclaimed &&
			(tokens.IsNumeric(slot.Text) || episodes.IsVersioned(slot.Text)) {
			if n, ok := episodes.ParseNumber(slot.Text); ok {
				s.setEpisode(n.Value, n.Raw, n.Version)
				slot.Claim = ClaimEpisode
				if p := s.prev(i); s.unclaimedFreeText(p) && isEpisodeWord(s.slots[p].Text) {
					s.slots[p].Claim = ClaimSeparator
				}
				return true
			}
		}
		seenText = true
	}
	return false
}

// episodeBracketed handles inline tags like "[01]" or "(12v2)".
func (s *state) episodeBracketed() bool {
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Kind != tokens.Bracketed || slot.Claim != Unclaimed {
			continue
		}
		if n, ok := episodes.ParseNumber(slot.Text); ok {
			s.setEpisode(n.Value, n.Raw, n.Version)
			slot.Claim = ClaimEpisode
			return true
		}
	}
	return false
}

// episodeMarker handles EP05, #05, 第05話 and the pair "Episode 12".
func (s *state) episodeMarker() bool {
	for i := range s.slots {
		if !s.unclaimedFreeText(i) {
			continue
		}
		text := s.slots[i].Text

		if m, ok := episodes.ParseEpisodeToken(text); ok {
			s.setEpisode(m.Number, text, m.Version)
			s.slots[i].Claim = ClaimEpisode
			return true
		}

		if !isEpisodeWord(text) {
			continue
		}
		j := s.next(i)
		if !s.unclaimedFreeText(j) {
			continue
		}
		if n, ok := episodes.ParseNumber(s.slots[j].Text); ok {
			s.setEpisode(n.Value, n.Raw, n.Version)
			s.slots[i].Claim = ClaimSeparator
			s.slots[j].Claim = ClaimEpisode
			return true
		}
	}
	return false
}

func isEpisodeWord(text string) bool {
	return strings.EqualFold(text, "episode") || strings.EqualFold(text, "ep")
}

// title collects the first run of unclaimed free text. Delimiters inside the
// run become single spaces and a leading "-" is skipped.
func (s *state) title() {
	var parts []string
	var used []int
	started := false

	for i := range s.slots {
		slot := &s.slots[i]

		if !started {
			if slot.Kind == tokens.FreeText && slot.Claim == Unclaimed && slot.Text != "-" {
				started = true
				parts = append(parts, slot.Text)
				used = append(used, i)
			}
			continue
		}

		if slot.Kind == tokens.Delimiter {
			continue
		}
		if slot.Kind != tokens.FreeText || slot.Claim != Unclaimed {
			break
		}
		parts = append(parts, slot.Text)
		used = append(used, i)
	}

	for len(parts) > 0 && parts[len(parts)-1] == "-" {
		parts = parts[:len(parts)-1]
		used = used[:len(used)-1]
	}
	if len(parts) == 0 {
		return
	}

	s.el.Title = strings.Join(parts, " ")
	for _, i := range used {
		s.slots[i].Claim = ClaimTitle
	}
}
