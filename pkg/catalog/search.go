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
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/normalize"
	"github.com/sahilm/fuzzy"
)

// SearchResult is one ranked hit from Search.
type SearchResult struct {
	Title string        `json:"title"`
	Anime matcher.Anime `json:"anime"`
	Score int           `json:"score"`
}

type titleEntry struct {
	title      string
	normalized string
	index      int
}

// titleSource exposes every title variant of a catalog to fuzzy.FindFrom.
type titleSource []titleEntry

func (s titleSource) String(i int) string { return s[i].normalized }

func (s titleSource) Len() int { return len(s) }

// Search ranks anime whose titles fuzzily contain query. Each anime appears
// once, under its best scoring title. A limit of 0 or less returns every hit.
func Search(query string, anime []matcher.Anime, limit int) []SearchResult {
	nq := normalize.Normalize(query)
	if nq == "" {
		return nil
	}

	var src titleSource
	for i, a := range anime {
		for _, v := range a.Titles.Variants() {
			src = append(src, titleEntry{index: i, title: v, normalized: normalize.Normalize(v)})
		}
	}

	seen := make(map[int]struct{})
	var results []SearchResult
	for _, m := range fuzzy.FindFrom(nq, src) {
		entry := src[m.Index]
		if _, ok := seen[entry.index]; ok {
			continue
		}
		seen[entry.index] = struct{}{}
		results = append(results, SearchResult{
			Anime: anime[entry.index],
			Title: entry.title,
			Score: m.Score,
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results
}
