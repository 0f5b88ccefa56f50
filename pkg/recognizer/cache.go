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

// Package recognizer memoizes title matching with a fixed-size LRU cache and
// keeps hit and miss statistics.
//
// Cache is not safe for concurrent use. Give it a single owner, or wrap it in
// Shared which serializes every call behind one mutex.
package recognizer

import (
	"context"
	"fmt"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/rs/zerolog/log"
)

// DefaultCapacity is the cache size used when none is configured.
const DefaultCapacity = 1000

// Stats counts cache activity. EntriesIndexed is the catalog size seen on
// the most recent miss.
type Stats struct {
	EntriesIndexed int    `json:"entries_indexed"`
	LRUSize        int    `json:"lru_size"`
	HitsExact      uint64 `json:"hits_exact"`
	HitsNormalized uint64 `json:"hits_normalized"`
	HitsFuzzy      uint64 `json:"hits_fuzzy"`
	HitsLRU        uint64 `json:"hits_lru"`
	Misses         uint64 `json:"misses"`
}

// Cache wraps matcher.MatchTitle with an LRU keyed by the raw title.
type Cache struct {
	lru   *simplelru.LRU[string, matcher.Result]
	stats Stats
}

// New returns a cache holding up to capacity results.
func New(capacity int) (*Cache, error) {
	lru, err := simplelru.NewLRU[string, matcher.Result](capacity, func(title string, _ matcher.Result) {
		log.Debug().Str("title", title).Msg("evicted recognition result")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recognition cache: %w", err)
	}
	return &Cache{lru: lru}, nil
}

// Recognize returns the match for title. A cached result is returned as is;
// otherwise the full catalog is fetched from p and matched. Catalog errors
// are returned and nothing is cached.
func (c *Cache) Recognize(ctx context.Context, title string, p catalog.Provider) (matcher.Result, error) {
	if res, ok := c.lru.Get(title); ok {
		c.stats.HitsLRU++
		return res, nil
	}

	anime, err := p.Anime(ctx)
	if err != nil {
		return matcher.Result{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	res := matcher.MatchTitle(title, anime)
	switch res.Kind {
	case matcher.Exact:
		c.stats.HitsExact++
	case matcher.Normalized:
		c.stats.HitsNormalized++
	case matcher.Fuzzy:
		c.stats.HitsFuzzy++
	case matcher.NoMatch:
		c.stats.Misses++
	}

	c.lru.Add(title, res)
	c.stats.EntriesIndexed = len(anime)

	log.Debug().
		Str("title", title).
		Stringer("kind", res.Kind).
		Float64("confidence", res.Confidence).
		Msg("recognized title")

	return res, nil
}

// Peek returns a cached result without touching recency or statistics.
func (c *Cache) Peek(title string) (matcher.Result, bool) {
	return c.lru.Peek(title)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.LRUSize = c.lru.Len()
	return s
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every cached result. Counters are kept. Call it after the
// catalog changes so stale misses are not served.
func (c *Cache) Purge() {
	c.lru.Purge()
}
