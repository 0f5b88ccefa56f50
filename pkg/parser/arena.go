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

package parser

import "github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/tokens"

// Claim records which pass took a token.
type Claim int

const (
	Unclaimed Claim = iota
	ClaimKeyword
	ClaimResolution
	ClaimReleaseGroup
	ClaimChecksum
	ClaimYear
	ClaimSeason
	ClaimEpisode
	ClaimSeparator
	ClaimTitle
)

func (c Claim) String() string {
	switch c {
	case Unclaimed:
		return "unclaimed"
	case ClaimKeyword:
		return "keyword"
	case ClaimResolution:
		return "resolution"
	case ClaimReleaseGroup:
		return "release_group"
	case ClaimChecksum:
		return "checksum"
	case ClaimYear:
		return "year"
	case ClaimSeason:
		return "season"
	case ClaimEpisode:
		return "episode"
	case ClaimSeparator:
		return "separator"
	case ClaimTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Slot is a token in the parse arena together with its claim.
type Slot struct {
	tokens.Token
	Claim Claim
}
