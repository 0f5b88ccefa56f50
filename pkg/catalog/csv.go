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

package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// SynonymSeparator joins synonyms inside the single synonyms column.
const SynonymSeparator = "|"

// Entry is one row of a catalog CSV file.
type Entry struct {
	Romaji    string `csv:"romaji"`
	English   string `csv:"english"`
	Native    string `csv:"native"`
	Synonyms  string `csv:"synonyms"`
	ID        int    `csv:"id"`
	MALID     uint32 `csv:"mal_id"`
	KitsuID   uint32 `csv:"kitsu_id"`
	AniListID uint32 `csv:"anilist_id"`
	Episodes  int    `csv:"episodes"`
}

func (e Entry) anime() matcher.Anime {
	var synonyms []string
	for _, s := range strings.Split(e.Synonyms, SynonymSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			synonyms = append(synonyms, s)
		}
	}
	return matcher.Anime{
		ID:        e.ID,
		MALID:     e.MALID,
		KitsuID:   e.KitsuID,
		AniListID: e.AniListID,
		Episodes:  e.Episodes,
		Titles: matcher.TitleSet{
			Romaji:   e.Romaji,
			English:  e.English,
			Native:   e.Native,
			Synonyms: synonyms,
		},
	}
}

func entryFor(a matcher.Anime) Entry {
	return Entry{
		ID:        a.ID,
		MALID:     a.MALID,
		KitsuID:   a.KitsuID,
		AniListID: a.AniListID,
		Episodes:  a.Episodes,
		Romaji:    a.Titles.Romaji,
		English:   a.Titles.English,
		Native:    a.Titles.Native,
		Synonyms:  strings.Join(a.Titles.Synonyms, SynonymSeparator),
	}
}

// CSV reads the catalog from a CSV file with a header row. The file is read
// again on every call so edits are picked up.
type CSV struct {
	fs   afero.Fs
	path string
}

// NewCSV returns a provider reading path from fs.
func NewCSV(fs afero.Fs, path string) *CSV {
	return &CSV{fs: fs, path: path}
}

// Anime reads and decodes the catalog file.
func (c *CSV) Anime(ctx context.Context) ([]matcher.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context errors are returned as is
	}

	file, err := c.fs.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadCSV(file)
}

// ReadCSV decodes catalog rows from r.
func ReadCSV(r io.Reader) ([]matcher.Anime, error) {
	entries := make([]Entry, 0)
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog CSV: %w", err)
	}

	anime := make([]matcher.Anime, len(entries))
	for i, e := range entries {
		anime[i] = e.anime()
	}
	return anime, nil
}

// WriteCSV encodes anime as catalog rows with a header.
func WriteCSV(w io.Writer, anime []matcher.Anime) error {
	entries := make([]Entry, len(anime))
	for i, a := range anime {
		entries[i] = entryFor(a)
	}
	if err := gocsv.Marshal(entries, w); err != nil {
		return fmt.Errorf("failed to marshal catalog CSV: %w", err)
	}
	return nil
}
