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

// Package catalog supplies the list of known anime that titles are
// recognized against.
package catalog

import (
	"context"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
)

// Provider returns the full catalog. Implementations may read from disk or a
// remote service on every call; callers that need memoization wrap it.
type Provider interface {
	Anime(ctx context.Context) ([]matcher.Anime, error)
}

// Static is an in-memory catalog.
type Static []matcher.Anime

// Anime returns the catalog entries.
func (s Static) Anime(ctx context.Context) ([]matcher.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context errors are returned as is
	}
	return s, nil
}
