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

package relations

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSeparator is returned for a rule line missing its "- "
	// prefix, its "->" arrow or the ":" between IDs and episodes.
	ErrMalformedSeparator = errors.New("malformed separator")
	// ErrIDSlotCount is returned when a side does not have exactly three
	// "|" separated ID slots.
	ErrIDSlotCount = errors.New("wrong number of id slots")
	// ErrInvalidValue is returned for an ID slot that is not a number, "?"
	// or a destination "~".
	ErrInvalidValue = errors.New("invalid value")
	// ErrMalformedEpisodes is returned for an episode spec that is not N,
	// N-M, N-? or ?.
	ErrMalformedEpisodes = errors.New("malformed episode range")
)

// LineError reports a rule line that could not be parsed.
type LineError struct {
	Err  error
	Text string
	Line int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("relations line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
