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

// Package relations maps episode numbers between anime entries across the
// MyAnimeList, Kitsu and AniList ID namespaces.
//
// Rules come from a line based text format:
//
//	::rules
//	# Shingeki no Kyojin: The Final Season
//	- 41380|43367|116242:13-24 -> 44881|43883|127366:1-12
//
// Each side is MAL|Kitsu|AniList:episodes. An ID slot is a number, "?" for
// unknown, or "~" on the destination side for "same as source". Episodes are
// N, N-M, N-? or ? (open ended). A trailing "!" also maps the destination
// range onto itself.
package relations

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// OpenEnd is the end of an open ended episode range.
	OpenEnd = math.MaxInt32

	sectionPrefix = "::"
	rulesSection  = "::rules"
	rulePrefix    = "- "
	arrow         = "->"
	bidirectional = "!"
	unknownSlot   = "?"
	sameSlot      = "~"
)

// metadataPrefixes mark lines that carry file metadata rather than rules.
var metadataPrefixes = []string{"- version:", "- last_modified:"}

// IDs identifies one anime in each namespace. Zero means unknown.
type IDs struct {
	MAL     uint32 `json:"mal,omitempty"`
	Kitsu   uint32 `json:"kitsu,omitempty"`
	AniList uint32 `json:"anilist,omitempty"`
}

// Range is an inclusive episode range. End is OpenEnd when unbounded.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether episode is inside r.
func (r Range) Contains(episode int) bool {
	return episode >= r.Start && episode <= r.End
}

func (r Range) String() string {
	switch {
	case r.End == OpenEnd:
		return fmt.Sprintf("%d-?", r.Start)
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	default:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
}

// Rule maps a source episode range onto a destination range. Line is the
// 1-based line the rule was read from.
type Rule struct {
	Source         IDs   `json:"source"`
	Destination    IDs   `json:"destination"`
	SourceEpisodes Range `json:"source_episodes"`
	DestEpisodes   Range `json:"destination_episodes"`
	Line           int   `json:"line"`
}

// parseLines walks text and calls onRule for every rule line inside a
// ::rules section. A line that fails to parse is passed to onErr; parsing
// stops when onErr returns false.
func parseLines(text string, onRule func(Rule), onErr func(*LineError) bool) {
	inRules := false
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, sectionPrefix) {
			inRules = line == rulesSection
			continue
		}
		if !inRules || line == "" || strings.HasPrefix(line, "#") || isMetadata(line) {
			continue
		}

		rules, err := parseRule(line)
		if err != nil {
			if !onErr(&LineError{Line: i + 1, Text: line, Err: err}) {
				return
			}
			continue
		}
		for _, r := range rules {
			r.Line = i + 1
			onRule(r)
		}
	}
}

func isMetadata(line string) bool {
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// parseRule parses one "- src -> dst[!]" line into one rule, or two for a
// bidirectional rule.
func parseRule(line string) ([]Rule, error) {
	body, ok := strings.CutPrefix(line, rulePrefix)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrMalformedSeparator, rulePrefix)
	}
	body = strings.TrimSpace(body)
	body, both := strings.CutSuffix(body, bidirectional)

	src, dst, ok := strings.Cut(body, arrow)
	if !ok || strings.Contains(dst, arrow) {
		return nil, fmt.Errorf("%w: expected one %q", ErrMalformedSeparator, arrow)
	}

	srcIDs, srcEps, err := parseSide(src, nil)
	if err != nil {
		return nil, err
	}
	dstIDs, dstEps, err := parseSide(dst, &srcIDs)
	if err != nil {
		return nil, err
	}

	rules := []Rule{{
		Source:         srcIDs,
		SourceEpisodes: srcEps,
		Destination:    dstIDs,
		DestEpisodes:   dstEps,
	}}
	if both {
		rules = append(rules, Rule{
			Source:         dstIDs,
			SourceEpisodes: dstEps,
			Destination:    dstIDs,
			DestEpisodes:   dstEps,
		})
	}
	return rules, nil
}

// parseSide parses "MAL|Kitsu|AniList:episodes". source is nil for the
// source side; on the destination side "~" copies the matching source slot.
func parseSide(side string, source *IDs) (IDs, Range, error) {
	idPart, epPart, ok := strings.Cut(strings.TrimSpace(side), ":")
	if !ok || strings.Contains(epPart, ":") {
		return IDs{}, Range{}, fmt.Errorf("%w: expected ids:episodes in %q", ErrMalformedSeparator, side)
	}

	slots := strings.Split(idPart, "|")
	if len(slots) != 3 {
		return IDs{}, Range{}, fmt.Errorf("%w: got %d in %q", ErrIDSlotCount, len(slots), idPart)
	}

	var values [3]uint32
	for i, slot := range slots {
		v, err := parseID(strings.TrimSpace(slot), source, i)
		if err != nil {
			return IDs{}, Range{}, err
		}
		values[i] = v
	}

	eps, err := parseEpisodes(strings.TrimSpace(epPart))
	if err != nil {
		return IDs{}, Range{}, err
	}
	return IDs{MAL: values[0], Kitsu: values[1], AniList: values[2]}, eps, nil
}

func parseID(slot string, source *IDs, index int) (uint32, error) {
	switch slot {
	case unknownSlot:
		return 0, nil
	case sameSlot:
		if source == nil {
			return 0, fmt.Errorf("%w: %q is only allowed on the destination side", ErrInvalidValue, sameSlot)
		}
		return [3]uint32{source.MAL, source.Kitsu, source.AniList}[index], nil
	}
	v, err := strconv.ParseUint(slot, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidValue, slot)
	}
	return uint32(v), nil
}

func parseEpisodes(spec string) (Range, error) {
	if spec == unknownSlot {
		return Range{Start: 1, End: OpenEnd}, nil
	}

	startText, endText, isRange := strings.Cut(spec, "-")
	start, err := parseEpisode(startText)
	if err != nil {
		return Range{}, err
	}
	if !isRange {
		return Range{Start: start, End: start}, nil
	}
	if endText == unknownSlot {
		return Range{Start: start, End: OpenEnd}, nil
	}
	end, err := parseEpisode(endText)
	if err != nil {
		return Range{}, err
	}
	if end < start {
		return Range{}, fmt.Errorf("%w: %q ends before it starts", ErrMalformedEpisodes, spec)
	}
	return Range{Start: start, End: end}, nil
}

func parseEpisode(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v >= OpenEnd {
		return 0, fmt.Errorf("%w: episode %q", ErrMalformedEpisodes, s)
	}
	return v, nil
}
