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

// Package parser extracts structured metadata from anime release filenames
// and torrent titles.
//
// Parsing runs a fixed sequence of passes over the token stream. Every token
// carries a Claim recording which pass took it; later passes only look at
// unclaimed tokens and never overwrite a field an earlier pass has set.
//
//  1. bracketed keywords (plus WIDTHxHEIGHT resolutions and years)
//  2. release group: first unclaimed bracket before any free text
//  3. checksum: first unclaimed 8 digit hex bracket
//  4. free text keywords
//  5. season markers (S2, Season 2, 2nd Season, 第2期, S01E05)
//  6. episode: "- 05", a standalone number after other text, a bracketed
//     number, then marker tokens like EP05 or 第05話
//  7. title: first contiguous run of unclaimed free text
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/episodes"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/keywords"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/tokens"
	"github.com/rs/zerolog/log"
)

var (
	checksumRe = regexp.MustCompile(`^[0-9A-Fa-f]{8}$`)
	yearRe     = regexp.MustCompile(`^(19[5-9]\d|20[0-4]\d|2050)$`)
	ordinalRe  = regexp.MustCompile(`(?i)^(\d{1,2}(?:st|nd|rd|th)|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)$`)
)

// Elements is the metadata extracted from one filename. Singular fields are
// empty or nil when absent; collections are never nil.
type Elements struct {
	EpisodeNumber  *int     `json:"episode_number,omitempty"`
	Season         *int     `json:"season,omitempty"`
	Year           *int     `json:"year,omitempty"`
	Title          string   `json:"title,omitempty"`
	EpisodeRaw     string   `json:"episode_number_raw,omitempty"`
	ReleaseVersion string   `json:"release_version,omitempty"`
	ReleaseGroup   string   `json:"release_group,omitempty"`
	Resolution     string   `json:"resolution,omitempty"`
	VideoCodec     string   `json:"video_codec,omitempty"`
	AudioCodec     string   `json:"audio_codec,omitempty"`
	Source         string   `json:"source,omitempty"`
	Checksum       string   `json:"checksum,omitempty"`
	FileExtension  string   `json:"file_extension,omitempty"`
	VideoTerms     []string `json:"video_terms"`
	AudioTerms     []string `json:"audio_terms"`
	Languages      []string `json:"languages"`
	Subtitles      []string `json:"subtitles"`
	ReleaseInfo    []string `json:"release_info"`
	DeviceCompat   []string `json:"device_compat"`
}

func newElements() Elements {
	return Elements{
		VideoTerms:   []string{},
		AudioTerms:   []string{},
		Languages:    []string{},
		Subtitles:    []string{},
		ReleaseInfo:  []string{},
		DeviceCompat: []string{},
	}
}

// Parser parses filenames. The zero value uses the built-in keyword table.
type Parser struct {
	classifier *keywords.Classifier
}

// New returns a Parser that classifies keywords with c. A nil c uses the
// built-in table only.
func New(c *keywords.Classifier) *Parser {
	return &Parser{classifier: c}
}

// Parse parses name with the built-in keyword table.
func Parse(name string) Elements {
	var p Parser
	return p.Parse(name)
}

// Parse extracts Elements from name. It never fails: a name with nothing
// recognisable yields empty Elements.
func (p *Parser) Parse(name string) Elements {
	el, _ := p.run(name)
	return el
}

// Explain parses name and returns the token arena with the claim each pass
// left on every token.
func (p *Parser) Explain(name string) []Slot {
	_, slots := p.run(name)
	return slots
}

func (p *Parser) run(name string) (Elements, []Slot) {
	el := newElements()

	stripped, ext := tokens.StripExtension(name)
	el.FileExtension = strings.ToLower(ext)

	toks := tokens.Scan(stripped)
	s := &state{
		el:         &el,
		slots:      make([]Slot, len(toks)),
		classifier: p.classifier,
	}
	for i, t := range toks {
		s.slots[i] = Slot{Token: t}
	}

	s.bracketedKeywords()
	s.releaseGroup()
	s.checksum()
	s.freeTextKeywords()
	s.season()
	s.episode()
	s.title()

	log.Trace().
		Str("name", name).
		Str("title", el.Title).
		Str("group", el.ReleaseGroup).
		Msg("parsed filename")

	return el, s.slots
}

type state struct {
	el         *Elements
	classifier *keywords.Classifier
	slots      []Slot
}

func (s *state) classify(word string) (keywords.Category, bool) {
	return s.classifier.Classify(word)
}

// applyKeyword records a classified word. Singular fields keep the first
// value seen, collections accumulate.
func (s *state) applyKeyword(category keywords.Category, word string) {
	el := s.el
	switch category {
	case keywords.Resolution:
		if el.Resolution == "" {
			if res, ok := episodes.ParseResolution(word); ok {
				el.Resolution = res
			} else {
				el.Resolution = word
			}
		}
	case keywords.VideoCodec:
		setOnce(&el.VideoCodec, word)
	case keywords.AudioCodec:
		setOnce(&el.AudioCodec, word)
	case keywords.Source:
		setOnce(&el.Source, word)
	case keywords.FileExtension:
		setOnce(&el.FileExtension, strings.ToLower(word))
	case keywords.VideoTerm:
		el.VideoTerms = append(el.VideoTerms, word)
	case keywords.AudioTerm:
		el.AudioTerms = append(el.AudioTerms, word)
	case keywords.Language:
		el.Languages = append(el.Languages, word)
	case keywords.Subtitles:
		el.Subtitles = append(el.Subtitles, word)
	case keywords.ReleaseInfo:
		el.ReleaseInfo = append(el.ReleaseInfo, word)
	case keywords.DeviceCompat:
		el.DeviceCompat = append(el.DeviceCompat, word)
	case keywords.Unknown:
	}
}

// classifyWord applies word if it is a keyword or a WIDTHxHEIGHT value and
// returns the claim to record.
func (s *state) classifyWord(word string) (Claim, bool) {
	if category, ok := s.classify(word); ok {
		s.applyKeyword(category, word)
		if category == keywords.Resolution {
			return ClaimResolution, true
		}
		return ClaimKeyword, true
	}
	if episodes.IsDimensions(word) {
		if s.el.Resolution == "" {
			s.el.Resolution, _ = episodes.ParseResolution(word)
		}
		return ClaimResolution, true
	}
	return Unclaimed, false
}

func (s *state) bracketedKeywords() {
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Claim != Unclaimed || slot.Kind != tokens.Bracketed {
			continue
		}

		if claim, ok := s.classifyWord(slot.Text); ok {
			slot.Claim = claim
			continue
		}

		if words := splitBracketWords(slot.Text); len(words) > 1 && s.allKeywords(words) {
			for _, w := range words {
				s.classifyWord(w)
			}
			slot.Claim = ClaimKeyword
			continue
		}

		if yearRe.MatchString(slot.Text) {
			if s.el.Year == nil {
				year, _ := strconv.Atoi(slot.Text)
				s.el.Year = &year
			}
			slot.Claim = ClaimYear
		}
	}
}

func (s *state) allKeywords(words []string) bool {
	for _, w := range words {
		if _, ok := s.classify(w); ok {
			continue
		}
		if episodes.IsDimensions(w) {
			continue
		}
		return false
	}
	return true
}

func splitBracketWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '_' || r == ',' || r == '+'
	})
}

func (s *state) releaseGroup() {
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Kind == tokens.FreeText {
			return
		}
		if slot.Kind != tokens.Bracketed || slot.Claim != Unclaimed {
			continue
		}
		if _, ok := s.classify(slot.Text); ok {
			continue
		}
		if checksumRe.MatchString(slot.Text) {
			continue
		}
		s.el.ReleaseGroup = slot.Text
		slot.Claim = ClaimReleaseGroup
		return
	}
}

func (s *state) checksum() {
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Kind != tokens.Bracketed || slot.Claim != Unclaimed {
			continue
		}
		if checksumRe.MatchString(slot.Text) {
			s.el.Checksum = slot.Text
			slot.Claim = ClaimChecksum
			return
		}
	}
}

func (s *state) freeTextKeywords() {
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Kind != tokens.FreeText || slot.Claim != Unclaimed {
			continue
		}
		if claim, ok := s.classifyWord(slot.Text); ok {
			slot.Claim = claim
		}
	}
}

// next returns the index of the first non-delimiter slot after i, or -1.
func (s *state) next(i int) int {
	for j := i + 1; j < len(s.slots); j++ {
		if s.slots[j].Kind != tokens.Delimiter {
			return j
		}
	}
	return -1
}

// prev returns the index of the last non-delimiter slot before i, or -1.
func (s *state) prev(i int) int {
	for j := i - 1; j >= 0; j-- {
		if s.slots[j].Kind != tokens.Delimiter {
			return j
		}
	}
	return -1
}

func (s *state) unclaimedFreeText(i int) bool {
	return i >= 0 && s.slots[i].Kind == tokens.FreeText && s.slots[i].Claim == Unclaimed
}

func (s *state) setEpisode(value int, raw string, version int) {
	if s.el.EpisodeNumber != nil {
		return
	}
	s.el.EpisodeNumber = &value
	s.el.EpisodeRaw = raw
	if version > 0 && s.el.ReleaseVersion == "" {
		s.el.ReleaseVersion = strconv.Itoa(version)
	}
}

func setOnce(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
