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

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/recognizer"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/relations"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type recognizeOutput struct {
	Elements *parser.Elements    `json:"elements,omitempty"`
	Redirect *relations.Redirect `json:"redirect,omitempty"`
	Input    string              `json:"input"`
	Title    string              `json:"title"`
	Result   matcher.Result      `json:"result"`
}

type recognizeReport struct {
	Results []recognizeOutput `json:"results"`
	Stats   recognizer.Stats  `json:"stats"`
}

// recognizeSession ties the parser, the shared recognition cache and the
// relation rules together for one command run.
type recognizeSession struct {
	parser    *parser.Parser
	cache     *recognizer.Shared
	catalog   catalog.Provider
	relations *relations.Store
	raw       bool
}

func (s *recognizeSession) recognize(ctx context.Context, input string) (recognizeOutput, error) {
	out := recognizeOutput{Input: input, Title: input}
	if !s.raw {
		el := s.parser.Parse(input)
		out.Elements = &el
		out.Title = el.Title
	}

	res, err := s.cache.Recognize(ctx, out.Title, s.catalog)
	if err != nil {
		return out, fmt.Errorf("failed to recognize %q: %w", input, err)
	}
	out.Result = res

	if res.Found() && out.Elements != nil && out.Elements.EpisodeNumber != nil {
		if r, ok := s.redirect(res.Anime, *out.Elements.EpisodeNumber); ok {
			out.Redirect = &r
		}
	}
	return out, nil
}

// redirect tries the anime's IDs in MAL, Kitsu, AniList order.
func (s *recognizeSession) redirect(a matcher.Anime, episode int) (relations.Redirect, bool) {
	if a.MALID != 0 {
		if r, ok := s.relations.RedirectMAL(a.MALID, episode); ok {
			return r, true
		}
	}
	if a.KitsuID != 0 {
		if r, ok := s.relations.RedirectKitsu(a.KitsuID, episode); ok {
			return r, true
		}
	}
	if a.AniListID != 0 {
		if r, ok := s.relations.RedirectAniList(a.AniListID, episode); ok {
			return r, true
		}
	}
	return relations.Redirect{}, false
}

func newRecognizeCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string
	var raw bool
	var stdin bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "recognize [filename]...",
		Short: "Match filenames or titles against the anime catalog",
		Long: `Parse each filename, match its title against the catalog and apply
episode relation rules to the matched anime.

With --stdin, names are read one per line and results are written as JSON
lines as they are recognized. If relations.watch is set in the config, the
user relation file is reloaded whenever it changes.

Examples:
  tsukiyomi recognize --catalog anime.csv "[SubsPlease] Sousou no Frieren - 05 (1080p).mkv"
  tsukiyomi recognize --raw "Attack on Titan"
  ls /media/anime | tsukiyomi recognize --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !stdin {
				return errors.New("requires at least 1 arg or --stdin")
			}

			session, err := newRecognizeSession(ctx, catalogFlag, raw)
			if err != nil {
				return err
			}

			if stdin {
				return recognizeStream(cmd, ctx, session)
			}

			results, err := recognizeAll(cmd.Context(), session, args, jobs)
			if err != nil {
				return err
			}
			return writeJSON(cmd, recognizeReport{
				Results: results,
				Stats:   session.cache.Stats(),
			})
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog CSV file (defaults to [catalog] file in the config)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Treat arguments as titles and skip filename parsing")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read names from standard input, one per line")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of names recognized concurrently")
	return cmd
}

func newRecognizeSession(ctx *commandContext, catalogFlag string, raw bool) (*recognizeSession, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	p, err := ctx.ensureParser()
	if err != nil {
		return nil, err
	}
	store, err := ctx.ensureRelations()
	if err != nil {
		return nil, err
	}
	provider, err := ctx.catalogProvider(catalogFlag)
	if err != nil {
		return nil, err
	}
	cache, err := recognizer.New(cfg.CacheCapacity())
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by recognizer
	}

	return &recognizeSession{
		parser:    p,
		cache:     recognizer.NewShared(cache),
		catalog:   catalog.NewMemo(provider),
		relations: store,
		raw:       raw,
	}, nil
}

// recognizeAll recognizes names concurrently through the shared cache,
// keeping the output in input order.
func recognizeAll(
	ctx context.Context,
	session *recognizeSession,
	names []string,
	jobs int,
) ([]recognizeOutput, error) {
	out := make([]recognizeOutput, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, name := range names {
		g.Go(func() error {
			res, err := session.recognize(gctx, name)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // recognize errors carry the name
	}
	return out, nil
}

func recognizeStream(cmd *cobra.Command, ctx *commandContext, session *recognizeSession) error {
	runCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if cfg.WatchRelations() {
		go func() {
			if err := session.relations.Watch(runCtx); err != nil {
				log.Error().Err(err).Msg("relations watcher stopped")
			}
		}()
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		res, err := session.recognize(runCtx, name)
		if err != nil {
			return err
		}
		if err := writeJSONLine(cmd, res); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read names: %w", err)
	}

	stats := session.cache.Stats()
	log.Debug().
		Uint64("hits_lru", stats.HitsLRU).
		Uint64("misses", stats.Misses).
		Int("lru_size", stats.LRUSize).
		Msg("recognition finished")
	return nil
}
