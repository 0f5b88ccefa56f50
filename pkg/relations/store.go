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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/helpers/syncutil"
	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// LoadFile reads a user rule file leniently. A missing file is not an error
// and yields an empty database. Skipped lines are returned alongside.
func LoadFile(fs afero.Fs, path string) (*Database, []error, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return newDatabase(nil), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read relations file: %w", err)
	}
	db, skipped := ParseLenient(string(data))
	return db, skipped, nil
}

// Store serves redirects from the embedded rules plus an optional user rule
// file. User rules are consulted first. The current database is swapped
// atomically on Reload so readers never block.
type Store struct {
	fs       afero.Fs
	clock    clockwork.Clock
	loadedAt time.Time
	current  atomic.Pointer[Database]
	userPath string
	mu       syncutil.Mutex
}

// reloadDebounce collapses the burst of events an editor save produces into
// a single reload.
const reloadDebounce = 100 * time.Millisecond

// NewStore loads the embedded rules and, when userPath is set, the user file.
func NewStore(fs afero.Fs, userPath string) (*Store, error) {
	s := &Store{fs: fs, userPath: userPath, clock: clockwork.NewRealClock()}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rereads the user rule file and replaces the current database. On a
// read error the previous database is kept.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userPath == "" {
		s.current.Store(Embedded())
		s.loadedAt = s.clock.Now()
		return nil
	}

	user, skipped, err := LoadFile(s.fs, s.userPath)
	if err != nil {
		return err
	}
	db := Merge(user, Embedded())
	s.current.Store(db)
	s.loadedAt = s.clock.Now()

	log.Info().
		Str("path", s.userPath).
		Int("user_rules", user.Len()).
		Int("skipped", len(skipped)).
		Int("total_rules", db.Len()).
		Msg("loaded relation rules")
	return nil
}

// SetClock replaces the clock used for load timestamps and reload debouncing.
func (s *Store) SetClock(clock clockwork.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// LoadedAt returns when the current database was loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// Current returns the database in use.
func (s *Store) Current() *Database {
	return s.current.Load()
}

func (s *Store) RedirectMAL(malID uint32, episode int) (Redirect, bool) {
	return s.Current().RedirectMAL(malID, episode)
}

func (s *Store) RedirectKitsu(kitsuID uint32, episode int) (Redirect, bool) {
	return s.Current().RedirectKitsu(kitsuID, episode)
}

func (s *Store) RedirectAniList(aniListID uint32, episode int) (Redirect, bool) {
	return s.Current().RedirectAniList(aniListID, episode)
}

// Watch reloads the store shortly after the user rule file changes, until
// ctx is done. The parent directory is watched so editors that replace the file are
// followed. It requires an OS backed filesystem.
func (s *Store) Watch(ctx context.Context) error {
	if s.userPath == "" {
		return errors.New("no user relations file configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing relations file watcher")
		}
	}()

	dir := filepath.Dir(s.userPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch relations directory (%s): %w", dir, err)
	}
	log.Debug().Str("path", s.userPath).Msg("watching relations file")

	s.mu.Lock()
	clock := s.clock
	s.mu.Unlock()

	var pending clockwork.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	target := filepath.Clean(s.userPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = clock.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					log.Error().Err(err).Msg("error reloading relations file")
				}
			})
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(watchErr).Msg("error in relations file watcher")
		}
	}
}
