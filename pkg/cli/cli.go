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

// Package cli implements the tsukiyomi command line: filename parsing, title
// recognition, catalog search and episode redirection.
package cli

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/config"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/helpers"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/keywords"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/relations"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errNoCatalog = errors.New("no catalog file set, use --catalog or [catalog] file in the config")

// Options configures NewRootCommand. A nil Fs uses the OS filesystem and an
// empty ConfigDir uses helpers.ConfigDir.
type Options struct {
	Fs        afero.Fs
	ConfigDir string
}

type commandContext struct {
	fs        afero.Fs
	configDir string
	logDir    string
	debug     bool

	configOnce sync.Once
	config     *config.Instance
	configErr  error

	parserOnce sync.Once
	parser     *parser.Parser
	parserErr  error

	relationsOnce sync.Once
	relations     *relations.Store
	relationsErr  error
}

func (c *commandContext) ensureConfig() (*config.Instance, error) {
	c.configOnce.Do(func() {
		cfg, err := config.NewConfig(c.fs, strings.TrimSpace(c.configDir), config.BaseDefaults)
		if err != nil {
			c.configErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureParser builds a parser with the user keyword patterns, if the
// configured patterns file exists.
func (c *commandContext) ensureParser() (*parser.Parser, error) {
	c.parserOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.parserErr = err
			return
		}

		path := cfg.KeywordPatternsFile()
		exists, err := afero.Exists(c.fs, path)
		if err != nil {
			c.parserErr = fmt.Errorf("failed to check patterns file: %w", err)
			return
		}
		if !exists {
			c.parser = parser.New(nil)
			return
		}

		defs, err := keywords.LoadPatterns(c.fs, path)
		if err != nil {
			c.parserErr = err
			return
		}
		classifier := keywords.NewClassifier(defs, nil)
		log.Debug().
			Int("enabled", classifier.Enabled()).
			Strs("disabled", classifier.Disabled()).
			Msg("loaded keyword patterns")
		c.parser = parser.New(classifier)
	})
	return c.parser, c.parserErr
}

func (c *commandContext) ensureRelations() (*relations.Store, error) {
	c.relationsOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.relationsErr = err
			return
		}
		c.relations, c.relationsErr = relations.NewStore(c.fs, cfg.RelationsFile())
	})
	return c.relations, c.relationsErr
}

// catalogProvider returns a CSV catalog from the flag value, falling back to
// the configured file.
func (c *commandContext) catalogProvider(flag string) (*catalog.CSV, error) {
	path := strings.TrimSpace(flag)
	if path == "" {
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.CatalogFile()
	}
	if path == "" {
		return nil, errNoCatalog
	}
	return catalog.NewCSV(c.fs, path), nil
}

func (c *commandContext) setupLogging(cmd *cobra.Command, cfg *config.Instance) error {
	debug := c.debug || cfg.DebugLogging()
	if c.logDir == "" {
		helpers.SetLogLevel(debug)
		return nil
	}
	console := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	if err := helpers.InitLogging(c.logDir, debug, console); err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}
	return nil
}

// NewRootCommand builds the tsukiyomi command tree.
func NewRootCommand(opts Options) *cobra.Command {
	ctx := &commandContext{
		fs:        opts.Fs,
		configDir: opts.ConfigDir,
	}
	if ctx.fs == nil {
		ctx.fs = afero.NewOsFs()
	}
	if ctx.configDir == "" {
		ctx.configDir = helpers.ConfigDir()
	}

	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Anime release filename parser and title recognizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.setupLogging(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configDir, "config-dir", "c", ctx.configDir, "Directory holding "+config.CfgFile)
	flags.StringVar(&ctx.logDir, "log-dir", "", "Write a rotating log file to this directory")
	flags.BoolVar(&ctx.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newParseCommand(ctx))
	rootCmd.AddCommand(newRecognizeCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newRedirectCommand(ctx))
	rootCmd.AddCommand(newRulesCommand(ctx))

	return rootCmd
}
