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
	"errors"
	"fmt"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/relations"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type redirectOutput struct {
	Redirect *relations.Redirect `json:"redirect,omitempty"`
	Found    bool                `json:"found"`
}

func newRedirectCommand(ctx *commandContext) *cobra.Command {
	var malID, kitsuID, aniListID uint32
	var episode int

	cmd := &cobra.Command{
		Use:   "redirect",
		Short: "Map an episode to the entry it belongs to",
		Long: `Apply the relation rules to an anime ID and episode number. Exactly one
of --mal, --kitsu or --anilist must be given.

Example:
  tsukiyomi redirect --mal 41380 --episode 13`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if episode < 1 {
				return fmt.Errorf("invalid episode %d", episode)
			}
			store, err := ctx.ensureRelations()
			if err != nil {
				return err
			}

			var r relations.Redirect
			var ok bool
			switch {
			case malID != 0:
				r, ok = store.RedirectMAL(malID, episode)
			case kitsuID != 0:
				r, ok = store.RedirectKitsu(kitsuID, episode)
			case aniListID != 0:
				r, ok = store.RedirectAniList(aniListID, episode)
			default:
				return errors.New("an id of 0 is never redirected")
			}

			out := redirectOutput{Found: ok}
			if ok {
				out.Redirect = &r
			}
			return writeJSON(cmd, out)
		},
	}

	cmd.Flags().Uint32Var(&malID, "mal", 0, "MyAnimeList ID")
	cmd.Flags().Uint32Var(&kitsuID, "kitsu", 0, "Kitsu ID")
	cmd.Flags().Uint32Var(&aniListID, "anilist", 0, "AniList ID")
	cmd.Flags().IntVarP(&episode, "episode", "e", 0, "Episode number")
	cmd.MarkFlagsOneRequired("mal", "kitsu", "anilist")
	cmd.MarkFlagsMutuallyExclusive("mal", "kitsu", "anilist")
	_ = cmd.MarkFlagRequired("episode")
	return cmd
}

type rulesCheckOutput struct {
	Path    string   `json:"path"`
	Errors  []string `json:"errors"`
	Rules   int      `json:"rules"`
	Skipped int      `json:"skipped"`
}

func newRulesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect relation rule files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [file]",
		Short: "Validate a relation rule file, the configured user file by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				path = cfg.RelationsFile()
			}

			exists, err := afero.Exists(ctx.fs, path)
			if err != nil {
				return fmt.Errorf("failed to check relations file: %w", err)
			}
			if !exists {
				return fmt.Errorf("relations file not found: %s", path)
			}

			db, skipped, err := relations.LoadFile(ctx.fs, path)
			if err != nil {
				return err
			}

			out := rulesCheckOutput{
				Path:    path,
				Rules:   db.Len(),
				Skipped: len(skipped),
				Errors:  make([]string, 0, len(skipped)),
			}
			for _, e := range skipped {
				out.Errors = append(out.Errors, e.Error())
			}
			if err := writeJSON(cmd, out); err != nil {
				return err
			}
			if len(skipped) > 0 {
				return fmt.Errorf("%d malformed rule lines in %s", len(skipped), path)
			}
			return nil
		},
	})

	return cmd
}
