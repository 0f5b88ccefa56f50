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
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWritesDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewConfig(fs, "/etc/tsukiyomi", BaseDefaults)
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/etc/tsukiyomi/tsukiyomi.toml")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, DefaultCacheCapacity, cfg.CacheCapacity())
	assert.Equal(t, filepath.Join("/etc/tsukiyomi", DefaultRelationsFile), cfg.RelationsFile())
	assert.Equal(t, filepath.Join("/etc/tsukiyomi", DefaultKeywordPatterns), cfg.KeywordPatternsFile())
	assert.Empty(t, cfg.CatalogFile())
	assert.False(t, cfg.WatchRelations())
	assert.False(t, cfg.DebugLogging())
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/tsukiyomi.toml", []byte(`
config_schema = 1
debug_logging = true

[recognition]
cache_capacity = 50

[relations]
watch = true

[catalog]
file = "/data/catalog.csv"
`), 0o600))

	cfg, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, 50, cfg.CacheCapacity())
	assert.True(t, cfg.WatchRelations())
	assert.Equal(t, "/data/catalog.csv", cfg.CatalogFile())
	// not in the file, so the default remains
	assert.Equal(t, filepath.Join("/cfg", DefaultRelationsFile), cfg.RelationsFile())
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/tsukiyomi.toml", []byte("config_schema = 99\n"), 0o600))

	_, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version mismatch")
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/tsukiyomi.toml", []byte("config_schema = [\n"), 0o600))

	_, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestLoadFixesCacheCapacity(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/tsukiyomi.toml",
		[]byte("config_schema = 1\n[recognition]\ncache_capacity = -5\n"), 0o600))

	cfg, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheCapacity, cfg.CacheCapacity())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)

	cfg.SetCatalogFile("anime.csv")
	require.NoError(t, cfg.Save())

	again, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "anime.csv"), again.CatalogFile())
}

func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv(CfgEnv, "/custom/place.toml")

	fs := afero.NewMemMapFs()
	cfg, err := NewConfig(fs, "/ignored", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, "/custom/place.toml", cfg.Path())

	exists, err := afero.Exists(fs, "/custom/place.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSetDebugLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	cfg, err := NewConfig(afero.NewMemMapFs(), "/cfg", BaseDefaults)
	require.NoError(t, err)

	cfg.SetDebugLogging(true)
	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	cfg.SetDebugLogging(false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
