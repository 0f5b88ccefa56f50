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

package config

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"pgregory.net/rapid"
)

// TestPropertyCacheCapacityAlwaysPositive verifies any configured capacity
// loads as a usable cache size.
func TestPropertyCacheCapacityAlwaysPositive(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "capacity")

		fs := afero.NewMemMapFs()
		data := fmt.Sprintf("config_schema = 1\n[recognition]\ncache_capacity = %d\n", capacity)
		if err := afero.WriteFile(fs, "/cfg/tsukiyomi.toml", []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := NewConfig(fs, "/cfg", BaseDefaults)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		got := cfg.CacheCapacity()
		if got <= 0 {
			t.Fatalf("capacity %d loaded as %d", capacity, got)
		}
		if capacity > 0 && got != capacity {
			t.Fatalf("positive capacity %d changed to %d", capacity, got)
		}
	})
}

// TestPropertyRelativePathsResolveUnderConfigDir verifies relative file
// settings land next to the config file and absolute ones are untouched.
func TestPropertyRelativePathsResolveUnderConfigDir(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,10}\.csv`).Draw(t, "name")
		absolute := rapid.Bool().Draw(t, "absolute")

		cfg, err := NewConfig(afero.NewMemMapFs(), "/cfg", BaseDefaults)
		if err != nil {
			t.Fatal(err)
		}

		path := name
		want := filepath.Join("/cfg", name)
		if absolute {
			path = "/data/" + name
			want = path
		}
		cfg.SetCatalogFile(path)

		if got := cfg.CatalogFile(); got != want {
			t.Fatalf("CatalogFile() = %q, want %q", got, want)
		}
	})
}
