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

package recognizer

import (
	"context"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/helpers/syncutil"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
)

// Shared owns a Cache and serializes access to it so it can be used from
// many goroutines. The lock is held across the catalog fetch on a miss.
type Shared struct {
	cache *Cache
	mu    syncutil.Mutex
}

// NewShared takes ownership of c. The caller must not use c directly
// afterwards.
func NewShared(c *Cache) *Shared {
	return &Shared{cache: c}
}

func (s *Shared) Recognize(ctx context.Context, title string, p catalog.Provider) (matcher.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Recognize(ctx, title, p)
}

func (s *Shared) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}

func (s *Shared) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
