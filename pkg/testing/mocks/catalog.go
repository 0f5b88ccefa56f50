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

package mocks

import (
	"context"
	"fmt"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/matcher"
	"github.com/stretchr/testify/mock"
)

// MockCatalog is a mock implementation of catalog.Provider using testify/mock
type MockCatalog struct {
	mock.Mock
}

// Anime returns the configured catalog
func (m *MockCatalog) Anime(ctx context.Context) ([]matcher.Anime, error) {
	args := m.Called(ctx)
	if err := args.Error(1); err != nil {
		return nil, fmt.Errorf("mock operation failed: %w", err)
	}
	if anime, ok := args.Get(0).([]matcher.Anime); ok {
		return anime, nil
	}
	return nil, nil
}
