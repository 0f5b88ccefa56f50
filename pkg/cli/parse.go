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
	"context"
	"fmt"
	"runtime"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type explainedToken struct {
	Text  string `json:"text"`
	Kind  string `json:"kind"`
	Claim string `json:"claim"`
}

type parseOutput struct {
	Name     string           `json:"name"`
	Tokens   []explainedToken `json:"tokens,omitempty"`
	Elements parser.Elements  `json:"elements"`
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	var explain bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "parse <filename>...",
		Short: "Extract metadata from release filenames",
		Long: `Parse one or more anime release filenames and print the extracted
elements as JSON, in argument order.

Examples:
  tsukiyomi parse "[SubsPlease] Sousou no Frieren - 05 (1080p) [ABCD1234].mkv"
  tsukiyomi parse --explain "[Judas] Golden Kamuy S3 - 01.mkv"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensureParser()
			if err != nil {
				return err
			}
			out, err := parseAll(cmd.Context(), p, args, jobs, explain)
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "Include the token claims left by each pass")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of filenames parsed concurrently")
	return cmd
}

// parseAll parses names concurrently, keeping the output in input order.
func parseAll(
	ctx context.Context,
	p *parser.Parser,
	names []string,
	jobs int,
	explain bool,
) ([]parseOutput, error) {
	out := make([]parseOutput, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // wrapped below
			}
			res := parseOutput{Name: name, Elements: p.Parse(name)}
			if explain {
				for _, slot := range p.Explain(name) {
					res.Tokens = append(res.Tokens, explainedToken{
						Text:  slot.Text,
						Kind:  slot.Kind.String(),
						Claim: slot.Claim.String(),
					})
				}
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse interrupted: %w", err)
	}
	return out, nil
}
