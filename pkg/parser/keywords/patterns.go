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

package keywords

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/helpers"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// PatternDef is a user supplied keyword pattern as stored in a patterns file.
//
//	patterns:
//	  - name: bilibili
//	    category: source
//	    pattern: '(?i)^b-?global$'
type PatternDef struct {
	Name     string `yaml:"name" validate:"required,max=64"`
	Category string `yaml:"category" validate:"required"`
	Pattern  string `yaml:"pattern" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type patternFile struct {
	Patterns []PatternDef `yaml:"patterns"`
}

type rule struct {
	re       *regexp.Regexp
	name     string
	category Category
}

// Classifier extends the built-in keyword table with user patterns. The
// built-in table always wins; patterns are tried in file order after it.
// A nil Classifier classifies with the built-in table only.
type Classifier struct {
	rules    []rule
	disabled []string
}

// NewClassifier compiles defs through cache. Patterns with a missing field,
// an unknown category or an invalid expression are disabled and logged,
// never fatal.
func NewClassifier(defs []PatternDef, cache *helpers.RegexCache) *Classifier {
	if cache == nil {
		cache = helpers.GlobalRegexCache
	}

	c := &Classifier{}
	for _, def := range defs {
		if err := validate.Struct(def); err != nil {
			log.Warn().Err(err).Str("name", def.Name).Msg("disabling incomplete keyword pattern")
			c.disabled = append(c.disabled, def.Name)
			continue
		}

		category, ok := ParseCategory(def.Category)
		if !ok {
			log.Warn().
				Str("name", def.Name).
				Str("category", def.Category).
				Msg("disabling keyword pattern with unknown category")
			c.disabled = append(c.disabled, def.Name)
			continue
		}

		re, err := cache.Compile(def.Pattern)
		if err != nil {
			log.Warn().Err(err).Str("name", def.Name).Msg("disabling keyword pattern")
			c.disabled = append(c.disabled, def.Name)
			continue
		}

		c.rules = append(c.rules, rule{name: def.Name, category: category, re: re})
	}

	log.Debug().
		Int("enabled", len(c.rules)).
		Int("disabled", len(c.disabled)).
		Msg("keyword patterns loaded")

	return c
}

// Classify returns the category of word.
func (c *Classifier) Classify(word string) (Category, bool) {
	if category, ok := Lookup(word); ok {
		return category, true
	}
	if c == nil {
		return Unknown, false
	}
	for _, r := range c.rules {
		if r.re.MatchString(word) {
			return r.category, true
		}
	}
	return Unknown, false
}

// Disabled returns the names of patterns that could not be enabled.
func (c *Classifier) Disabled() []string {
	if c == nil {
		return nil
	}
	return c.disabled
}

// Enabled returns the number of active user patterns.
func (c *Classifier) Enabled() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// LoadPatterns reads a YAML patterns file.
func LoadPatterns(fs afero.Fs, path string) ([]PatternDef, error) {
	if path == "" {
		return nil, errors.New("patterns file path not set")
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}

	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal patterns file %s: %w", path, err)
	}

	return pf.Patterns, nil
}
