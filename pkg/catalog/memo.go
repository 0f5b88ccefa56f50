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

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/helpers/syncutil"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
)

// Memo loads its underlying provider once and serves the result from memory
// afterwards. Failed loads are not remembered.
type Memo struct {
	p     Provider
	anime []matcher.Anime
	mu    syncutil.Mutex
	done  bool
}

func NewMemo(p Provider) *Memo {
	return &Memo{p: p}
}

func (m *Memo) Anime(ctx context.Context) ([]matcher.Anime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return m.anime, nil
	}
	anime, err := m.p.Anime(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck // provider errors are already wrapped
	}
	m.anime = anime
	m.done = true
	return anime, nil
}
