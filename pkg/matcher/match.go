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

// Package matcher resolves a title against a list of candidate anime.
//
// Matching runs three passes and stops at the first that succeeds:
//
//  1. exact: the raw query equals a title variant or synonym
//  2. normalized: the same comparison after normalize.Normalize on both sides
//  3. fuzzy: Skim scoring of the normalized query against every normalized
//     variant, accepted when the confidence reaches MinConfidence
package matcher

import (
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/normalize"
	"github.com/hbollon/go-edlib"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"
)

// MinConfidence is the lowest fuzzy confidence MatchTitle accepts.
const MinConfidence = 0.6

// MatchTitle matches query against candidates. Candidate order decides
// between equal exact or normalized hits.
func MatchTitle(query string, candidates []Anime) Result {
	if query == "" || len(candidates) == 0 {
		return Result{}
	}

	for _, c := range candidates {
		for _, v := range c.Titles.Variants() {
			if v == query {
				return Result{Anime: c, Kind: Exact, Confidence: 1}
			}
		}
	}

	nq := normalize.Normalize(query)
	if nq == "" {
		return Result{}
	}

	normalized := make([][]string, len(candidates))
	for i, c := range candidates {
		variants := c.Titles.Variants()
		normalized[i] = make([]string, len(variants))
		for j, v := range variants {
			normalized[i][j] = normalize.Normalize(v)
			if normalized[i][j] == nq {
				return Result{Anime: c, Kind: Normalized, Confidence: 1}
			}
		}
	}

	return matchFuzzy(nq, candidates, normalized)
}

type fuzzyHit struct {
	variant  string
	index    int
	score    int
	distance int
	rank     int
}

// better orders hits by score, then by Damerau-Levenshtein distance to the
// query so a transposition-close title wins a tie, then by subsequence rank.
// Equal hits keep candidate order.
func (h fuzzyHit) better(other fuzzyHit) bool {
	if h.score != other.score {
		return h.score > other.score
	}
	if h.distance != other.distance {
		return h.distance < other.distance
	}
	return h.rank < other.rank
}

func matchFuzzy(nq string, candidates []Anime, normalized [][]string) Result {
	self, _ := Score(nq, nq)
	self = max(self, 1)

	best := fuzzyHit{index: -1}
	for i, variants := range normalized {
		for _, v := range variants {
			// fast rejection of non-subsequences; Score rejects them too
			rank := fuzzy.RankMatch(nq, v)
			if rank < 0 {
				continue
			}
			score, ok := Score(nq, v)
			if !ok {
				continue
			}
			hit := fuzzyHit{
				index:    i,
				variant:  v,
				score:    score,
				distance: edlib.DamerauLevenshteinDistance(nq, v),
				rank:     rank,
			}
			if best.index < 0 || hit.better(best) {
				best = hit
			}
		}
	}

	if best.index < 0 {
		return Result{}
	}

	confidence := float64(best.score) / float64(self)
	log.Debug().
		Str("query", nq).
		Str("candidate", best.variant).
		Int("score", best.score).
		Float64("confidence", confidence).
		Msg("fuzzy match candidate evaluation")

	if confidence < MinConfidence {
		return Result{}
	}
	return Result{Anime: candidates[best.index], Kind: Fuzzy, Confidence: confidence}
}

// FuzzyConfidence scores candidate against query the way the fuzzy pass
// does: both are normalized and the Skim score is divided by the query's
// self score. It returns 0 when the query does not occur in the candidate.
func FuzzyConfidence(query, candidate string) float64 {
	nq := normalize.Normalize(query)
	nc := normalize.Normalize(candidate)
	self, _ := Score(nq, nq)
	score, ok := Score(nq, nc)
	if !ok {
		return 0
	}
	return float64(score) / float64(max(self, 1))
}
