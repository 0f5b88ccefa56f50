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
	_ "embed"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed data/anime-relations.txt
var embeddedRules string

// Redirect is where an episode lands after applying a rule.
type Redirect struct {
	IDs
	Episode int `json:"episode"`
}

// Database holds parsed rules indexed by source ID in each namespace. It is
// immutable after construction and safe for concurrent reads.
type Database struct {
	byMAL     map[uint32][]int
	byKitsu   map[uint32][]int
	byAniList map[uint32][]int
	rules     []Rule
}

func newDatabase(rules []Rule) *Database {
	db := &Database{
		rules:     rules,
		byMAL:     make(map[uint32][]int),
		byKitsu:   make(map[uint32][]int),
		byAniList: make(map[uint32][]int),
	}
	for i, r := range rules {
		if r.Source.MAL != 0 {
			db.byMAL[r.Source.MAL] = append(db.byMAL[r.Source.MAL], i)
		}
		if r.Source.Kitsu != 0 {
			db.byKitsu[r.Source.Kitsu] = append(db.byKitsu[r.Source.Kitsu], i)
		}
		if r.Source.AniList != 0 {
			db.byAniList[r.Source.AniList] = append(db.byAniList[r.Source.AniList], i)
		}
	}
	return db
}

// Parse parses rule text strictly: the first malformed line fails the whole
// parse with a *LineError.
func Parse(text string) (*Database, error) {
	var rules []Rule
	var first error
	parseLines(text, func(r Rule) {
		rules = append(rules, r)
	}, func(err *LineError) bool {
		first = err
		return false
	})
	if first != nil {
		return nil, first
	}
	return newDatabase(rules), nil
}

// ParseLenient parses rule text, skipping malformed lines. Every skipped
// line is returned as a *LineError and logged.
func ParseLenient(text string) (*Database, []error) {
	var rules []Rule
	var errs []error
	parseLines(text, func(r Rule) {
		rules = append(rules, r)
	}, func(err *LineError) bool {
		log.Warn().Err(err).Msg("skipping relation rule")
		errs = append(errs, err)
		return true
	})
	return newDatabase(rules), errs
}

// MustParse is like Parse but panics on error. It is meant for rule text
// compiled into the binary.
func MustParse(text string) *Database {
	db, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return db
}

var embedded = sync.OnceValue(func() *Database {
	return MustParse(embeddedRules)
})

// Embedded returns the rules compiled into the binary.
func Embedded() *Database {
	return embedded()
}

// Merge returns a database holding the rules of each database in order.
// Earlier databases win when rules overlap.
func Merge(dbs ...*Database) *Database {
	var rules []Rule
	for _, db := range dbs {
		if db != nil {
			rules = append(rules, db.rules...)
		}
	}
	return newDatabase(rules)
}

// Len returns the number of stored rules. A bidirectional line counts twice.
func (db *Database) Len() int {
	return len(db.rules)
}

// Rules returns a copy of the stored rules in file order.
func (db *Database) Rules() []Rule {
	return append([]Rule(nil), db.rules...)
}

// RedirectMAL applies the first rule for malID, in file order, whose source
// range contains episode.
func (db *Database) RedirectMAL(malID uint32, episode int) (Redirect, bool) {
	return db.redirect(db.byMAL[malID], episode)
}

// RedirectKitsu is RedirectMAL for Kitsu IDs.
func (db *Database) RedirectKitsu(kitsuID uint32, episode int) (Redirect, bool) {
	return db.redirect(db.byKitsu[kitsuID], episode)
}

// RedirectAniList is RedirectMAL for AniList IDs.
func (db *Database) RedirectAniList(aniListID uint32, episode int) (Redirect, bool) {
	return db.redirect(db.byAniList[aniListID], episode)
}

func (db *Database) redirect(indexes []int, episode int) (Redirect, bool) {
	for _, i := range indexes {
		r := db.rules[i]
		if !r.SourceEpisodes.Contains(episode) {
			continue
		}
		return Redirect{
			IDs:     r.Destination,
			Episode: r.DestEpisodes.Start + (episode - r.SourceEpisodes.Start),
		}, true
	}
	return Redirect{}, false
}
