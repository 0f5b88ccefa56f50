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

// Package helpers provides filesystem fixtures for tests.
package helpers

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/config"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/keywords"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// WriteFile writes content to path, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FileExists checks if a file exists in the filesystem
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	return err == nil && exists
}

// CreateConfigFile writes vals as tsukiyomi.toml in configDir.
//
//nolint:gocritic // config struct copied for immutability
func (h *FSHelper) CreateConfigFile(configDir string, vals config.Values) error {
	vals.ConfigSchema = config.SchemaVersion
	data, err := toml.Marshal(&vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config to TOML: %w", err)
	}
	return h.WriteFile(filepath.Join(configDir, config.CfgFile), data)
}

// CreateRelationsFile writes relation rule text to path. The ::rules header
// is added when missing.
func (h *FSHelper) CreateRelationsFile(path, rules string) error {
	if !strings.HasPrefix(rules, "::") {
		rules = "::rules\n" + rules
	}
	return h.WriteFile(path, []byte(rules))
}

// CreateCatalogFile writes anime as a catalog CSV.
func (h *FSHelper) CreateCatalogFile(path string, anime []matcher.Anime) error {
	var buf bytes.Buffer
	if err := catalog.WriteCSV(&buf, anime); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return h.WriteFile(path, buf.Bytes())
}

// CreatePatternsFile writes a keyword patterns YAML file.
func (h *FSHelper) CreatePatternsFile(path string, defs []keywords.PatternDef) error {
	data, err := yaml.Marshal(map[string]any{"patterns": defs})
	if err != nil {
		return fmt.Errorf("failed to marshal patterns to YAML: %w", err)
	}
	return h.WriteFile(path, data)
}

// SampleCatalog returns a small catalog covering exact, normalized and fuzzy
// matches, with IDs that the embedded relation rules know about.
func SampleCatalog() []matcher.Anime {
	return []matcher.Anime{
		{
			ID:        1,
			MALID:     52991,
			KitsuID:   46474,
			AniListID: 154587,
			Episodes:  28,
			Titles: matcher.TitleSet{
				Romaji:   "Sousou no Frieren",
				English:  "Frieren: Beyond Journey's End",
				Native:   "葬送のフリーレン",
				Synonyms: []string{"Frieren"},
			},
		},
		{
			ID:        2,
			MALID:     41380,
			KitsuID:   43367,
			AniListID: 116242,
			Episodes:  24,
			Titles: matcher.TitleSet{
				Romaji:  "Shingeki no Kyojin: The Final Season Part 2",
				English: "Attack on Titan: The Final Season Part 2",
			},
		},
		{
			ID:        3,
			MALID:     44881,
			KitsuID:   43883,
			AniListID: 127366,
			Episodes:  12,
			Titles: matcher.TitleSet{
				Romaji:  "Shingeki no Kyojin: The Final Season Kanketsu-hen",
				English: "Attack on Titan: The Final Season The Final Chapters",
			},
		},
	}
}
