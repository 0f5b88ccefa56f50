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

	"github.com/rs/zerolog/log"
)

// Strategy names reported by Extract and ExtractSeason.
const (
	StrategyCombined      = "combined"
	StrategyKeyword       = "keyword"
	StrategyVersioned     = "versioned"
	StrategyFractional    = "fractional"
	StrategyRange         = "range"
	StrategyJapanese      = "japanese_counter"
	StrategyPartial       = "partial"
	StrategyVolume        = "volume"
	StrategyPlain         = "plain"
	StrategySeasonShort   = "season_short"
	StrategySeasonWord    = "season_word"
	StrategySeasonRoman   = "season_roman"
	StrategySeasonOrdinal = "season_ordinal"
	StrategySeasonJapan   = "season_japanese"
)

// Strategy is one step of a cascade. Match reports false when the strategy
// does not apply to the text.
type Strategy[T any] struct {
	Match func(text string) (T, bool)
	Name  string
}

// Run tries strategies in order and returns the first success along with
// the name of the strategy that produced it.
func Run[T any](strategies []Strategy[T], text string) (result T, name string, ok bool) {
	for _, s := range strategies {
		if result, ok = s.Match(text); ok {
			log.Trace().Str("strategy", s.Name).Str("text", text).Msg("cascade strategy matched")
			return result, s.Name, true
		}
	}
	return result, "", false
}

// Match is the result of the episode cascade.
type Match struct {
	// Part is the letter of a partial episode like "4a", lowercased.
	Part string
	// Number is the episode number, or the first episode of a range.
	Number int
	// End is the last episode of a range, zero otherwise.
	End int
	// Season is set by the combined S01E05 form, zero otherwise.
	Season int
	// Version is the release version, zero when absent.
	Version  int
	Volume   int
	Fraction bool
}

var (
	combinedSxERe = regexp.MustCompile(`(?i)\bS(\d{1,2})[\s._-]*E(\d{1,4})(?:v(\d{1,2}))?\b`)
	combinedXRe   = regexp.MustCompile(`\b(\d{1,2})[xX](\d{1,4})\b`)
	keywordRe     = regexp.MustCompile(
		`(?i)(?:\bvol(?:ume)?[\s._]*(\d{1,3})[\s._-]*)?(?:\bepisode|\bep|\be)[\s._]*(\d{1,4})(?:v(\d{1,2}))?\b`,
	)
	hashRe       = regexp.MustCompile(`#(\d{1,4})\b`)
	versionedRe  = regexp.MustCompile(`(?i)\b(\d{1,4})v(\d{1,2})\b`)
	fractionalRe = regexp.MustCompile(`\b(\d{1,4})\.5\b`)
	rangeRe      = regexp.MustCompile(`\b(\d{1,4})[\s]*[-~][\s]*(\d{1,4})\b`)
	//nolint:gosmopolitan // Japanese episode counters
	japaneseRe = regexp.MustCompile(`第?\s*(\d{1,4})\s*[話话集]`)
	partialRe  = regexp.MustCompile(`\b(\d{1,4})([a-cA-C])\b`)
	volumeRe   = regexp.MustCompile(`(?i)\bvol(?:ume)?[\s._]*(\d{1,3})[\s._-]+(\d{1,4})\b`)
	plainRe    = regexp.MustCompile(`\b(\d{1,4})\b`)
)

// EpisodeStrategies is the episode cascade in specificity order.
var EpisodeStrategies = []Strategy[Match]{
	{Name: StrategyCombined, Match: MatchCombined},
	{Name: StrategyKeyword, Match: MatchKeyword},
	{Name: StrategyVersioned, Match: matchVersioned},
	{Name: StrategyFractional, Match: matchFractional},
	{Name: StrategyRange, Match: matchRange},
	{Name: StrategyJapanese, Match: MatchJapanese},
	{Name: StrategyPartial, Match: matchPartial},
	{Name: StrategyVolume, Match: matchVolume},
	{Name: StrategyPlain, Match: matchPlain},
}

// Extract runs the full episode cascade over text.
func Extract(text string) (Match, string, bool) {
	return Run(EpisodeStrategies, text)
}

// MatchCombined matches S01E05 and 01x05.
func MatchCombined(text string) (Match, bool) {
	for _, m := range combinedSxERe.FindAllStringSubmatch(text, -1) {
		ep, ok := validEpisode(m[2])
		if !ok {
			continue
		}
		season, _ := strconv.Atoi(m[1])
		version := atoiOrZero(m[3])
		return Match{Number: ep, Season: season, Version: version}, true
	}
	for _, m := range combinedXRe.FindAllStringSubmatch(text, -1) {
		ep, ok := validEpisode(m[2])
		if !ok {
			continue
		}
		season, _ := strconv.Atoi(m[1])
		return Match{Number: ep, Season: season}, true
	}
	return Match{}, false
}

// MatchKeyword matches EP05, E05, #05 and Episode 12, including an optional
// leading volume (Vol.3 EP05).
func MatchKeyword(text string) (Match, bool) {
	for _, m := range keywordRe.FindAllStringSubmatch(text, -1) {
		ep, ok := validEpisode(m[2])
		if !ok {
			continue
		}
		return Match{Number: ep, Volume: atoiOrZero(m[1]), Version: atoiOrZero(m[3])}, true
	}
	for _, m := range hashRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep}, true
		}
	}
	return Match{}, false
}

func matchVersioned(text string) (Match, bool) {
	for _, m := range versionedRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep, Version: atoiOrZero(m[2])}, true
		}
	}
	return Match{}, false
}

func matchFractional(text string) (Match, bool) {
	for _, m := range fractionalRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep, Fraction: true}, true
		}
	}
	return Match{}, false
}

func matchRange(text string) (Match, bool) {
	for _, m := range rangeRe.FindAllStringSubmatch(text, -1) {
		start, ok := validEpisode(m[1])
		if !ok {
			continue
		}
		end, ok := validEpisode(m[2])
		if !ok || end <= start {
			continue
		}
		return Match{Number: start, End: end}, true
	}
	return Match{}, false
}

// MatchJapanese matches 第05話, 第05集 and 05話.
func MatchJapanese(text string) (Match, bool) {
	for _, m := range japaneseRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep}, true
		}
	}
	return Match{}, false
}

func matchPartial(text string) (Match, bool) {
	for _, m := range partialRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep, Part: strings.ToLower(m[2])}, true
		}
	}
	return Match{}, false
}

func matchVolume(text string) (Match, bool) {
	for _, m := range volumeRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[2]); ok {
			return Match{Number: ep, Volume: atoiOrZero(m[1])}, true
		}
	}
	return Match{}, false
}

func matchPlain(text string) (Match, bool) {
	for _, m := range plainRe.FindAllStringSubmatch(text, -1) {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep}, true
		}
	}
	return Match{}, false
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

var (
	episodeTokenKeywordRe = regexp.MustCompile(`(?i)^(?:episode|ep|e|#)[._]?(\d{1,4})(?:v(\d{1,2}))?$`)
	//nolint:gosmopolitan // Japanese episode counters
	episodeTokenJapanRe = regexp.MustCompile(`^第?(\d{1,4})[話话集]$`)
)

// ParseEpisodeToken parses a token that is an episode marker on its own,
// such as "EP05", "E05", "#05" or "第05話". The whole token must match.
func ParseEpisodeToken(text string) (Match, bool) {
	if m := episodeTokenKeywordRe.FindStringSubmatch(text); m != nil {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep, Version: atoiOrZero(m[2])}, true
		}
	}
	if m := episodeTokenJapanRe.FindStringSubmatch(text); m != nil {
		if ep, ok := validEpisode(m[1]); ok {
			return Match{Number: ep}, true
		}
	}
	return Match{}, false
}
