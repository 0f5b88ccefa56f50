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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	AppName                = "tsukiyomi"
	AppEnv                 = "TSUKIYOMI_APP"
	UserDir                = "user"
	LogsDir                = "logs"
	SchemaVersion          = 1
	CfgEnv                 = "TSUKIYOMI_CFG"
	CfgFile                = "tsukiyomi.toml"
	DefaultCacheCapacity   = 1000
	DefaultRelationsFile   = "anime-relations.txt"
	DefaultKeywordPatterns = "keywords.yaml"
)

type Values struct {
	Catalog      Catalog     `toml:"catalog,omitempty"`
	Keywords     Keywords    `toml:"keywords,omitempty"`
	Relations    Relations   `toml:"relations"`
	Recognition  Recognition `toml:"recognition"`
	ConfigSchema int         `toml:"config_schema"`
	DebugLogging bool        `toml:"debug_logging"`
}

type Recognition struct {
	CacheCapacity int `toml:"cache_capacity"`
}

type Relations struct {
	UserFile string `toml:"user_file,omitempty"`
	Watch    bool   `toml:"watch"`
}

type Keywords struct {
	PatternsFile string `toml:"patterns_file,omitempty"`
}

type Catalog struct {
	File string `toml:"file,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Recognition: Recognition{
		CacheCapacity: DefaultCacheCapacity,
	},
	Relations: Relations{
		UserFile: DefaultRelationsFile,
	},
	Keywords: Keywords{
		PatternsFile: DefaultKeywordPatterns,
	},
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or from the path in the
// TSUKIYOMI_CFG environment variable, writing the defaults first if no file
// exists yet.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if newVals.Recognition.CacheCapacity <= 0 {
		log.Warn().Msgf("invalid cache capacity %d, using %d",
			newVals.Recognition.CacheCapacity, DefaultCacheCapacity)
		newVals.Recognition.CacheCapacity = DefaultCacheCapacity
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	// set current schema version
	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the config file location.
func (c *Instance) Path() string {
	return c.cfgPath
}

// resolve makes a relative path relative to the config file directory. An
// empty path stays empty.
func (c *Instance) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(c.cfgPath), path)
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (c *Instance) CacheCapacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Recognition.CacheCapacity
}

// RelationsFile returns the resolved path of the user relation rules.
func (c *Instance) RelationsFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolve(c.vals.Relations.UserFile)
}

func (c *Instance) WatchRelations() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Relations.Watch
}

// KeywordPatternsFile returns the resolved path of the user keyword
// pattern table.
func (c *Instance) KeywordPatternsFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolve(c.vals.Keywords.PatternsFile)
}

// CatalogFile returns the resolved path of the catalog CSV, or "" if none is
// configured.
func (c *Instance) CatalogFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolve(c.vals.Catalog.File)
}

func (c *Instance) SetCatalogFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Catalog.File = path
}
