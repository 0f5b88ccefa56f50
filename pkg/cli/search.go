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
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search the catalog by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.catalogProvider(catalogFlag)
			if err != nil {
				return err
			}
			anime, err := provider.Anime(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // already wrapped by catalog
			}
			results := catalog.Search(args[0], anime, limit)
			if results == nil {
				results = []catalog.SearchResult{}
			}
			return writeJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog CSV file (defaults to [catalog] file in the config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results, 0 for all")
	return cmd
}
