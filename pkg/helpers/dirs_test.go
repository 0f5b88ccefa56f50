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

package helpers

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/config"
	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestDirs(t *testing.T) {
	t.Parallel()

	if dir, ok := HasUserDir(); ok {
		assert.Equal(t, dir, ConfigDir())
		assert.Equal(t, dir, DataDir())
		return
	}

	assert.Equal(t, filepath.Join(xdg.ConfigHome, config.AppName), ConfigDir())
	assert.Equal(t, filepath.Join(xdg.DataHome, config.AppName), DataDir())
	assert.True(t, strings.HasPrefix(LogDir(), DataDir()))
	assert.Equal(t, config.LogsDir, filepath.Base(LogDir()))
}
