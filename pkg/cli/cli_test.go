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
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/catalog"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/config"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/parser/keywords"
	"github.com/TsukiyomiProject/tsukiyomi-core/pkg/relations"
	testhelpers "github.com/TsukiyomiProject/tsukiyomi-core/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testConfigDir = "/cfg"
	testCatalog   = "/data/anime.csv"
	frierenFile   = "[SubsPlease] Sousou no Frieren - 05 (1080p) [ABCD1234].mkv"
)

// recognized mirrors recognizeOutput with the result kind kept as text.
type recognized struct {
	Redirect *relations.Redirect `json:"redirect"`
	Input    string              `json:"input"`
	Title    string              `json:"title"`
	Result   struct {
		Kind       string  `json:"kind"`
		Confidence float64 `json:"confidence"`
		Anime      struct {
			ID int `json:"id"`
		} `json:"anime"`
	} `json:"result"`
}

type recognizedReport struct {
	Results []recognized `json:"results"`
	Stats   struct {
		EntriesIndexed int    `json:"entries_indexed"`
		LRUSize        int    `json:"lru_size"`
		HitsExact      uint64 `json:"hits_exact"`
		HitsLRU        uint64 `json:"hits_lru"`
		Misses         uint64 `json:"misses"`
	} `json:"stats"`
}

func newTestFS(t *testing.T) *testhelpers.FSHelper {
	t.Helper()
	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.CreateCatalogFile(testCatalog, testhelpers.SampleCatalog()))
	return h
}

func runCLI(t *testing.T, fs afero.Fs, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(Options{Fs: fs, ConfigDir: testConfigDir})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)
	out, err := runCLI(t, h.Fs, "", "parse", "-j", "2", frierenFile, "86 Eighty Six 03.mkv")
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)

	assert.Equal(t, frierenFile, got[0].Name)
	assert.Equal(t, "Sousou no Frieren", got[0].Elements.Title)
	require.NotNil(t, got[0].Elements.EpisodeNumber)
	assert.Equal(t, 5, *got[0].Elements.EpisodeNumber)
	assert.Empty(t, got[0].Tokens)

	assert.Equal(t, "86 Eighty Six", got[1].Elements.Title)

	assert.True(t, h.FileExists("/cfg/tsukiyomi.toml"), "config is created on first run")
}

func TestParseCommandExplain(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, afero.NewMemMapFs(), "", "parse", "--explain", frierenFile)
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)

	claims := make(map[string]string)
	for _, tok := range got[0].Tokens {
		claims[tok.Text] = tok.Claim
	}
	assert.Equal(t, "release_group", claims["SubsPlease"])
	assert.Equal(t, "episode", claims["05"])
	assert.Equal(t, "checksum", claims["ABCD1234"])
}

func TestParseCommandRequiresArgs(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, afero.NewMemMapFs(), "", "parse")
	require.Error(t, err)
}

func TestParseCommandUsesKeywordPatterns(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.CreatePatternsFile("/cfg/keywords.yaml", []keywords.PatternDef{
		{Name: "bglobal", Category: "source", Pattern: `(?i)^b-?global$`},
	}))

	out, err := runCLI(t, h.Fs, "", "parse", "[Group] Title - 03 [B-Global][1080p].mkv")
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "B-Global", got[0].Elements.Source)
}

func TestRecognizeCommand(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)
	out, err := runCLI(t, h.Fs, "",
		"recognize", "--catalog", testCatalog, "-j", "1",
		frierenFile,
		"[SubsPlease] SOUSOU NO FRIEREN - 06 (1080p).mkv",
		frierenFile,
	)
	require.NoError(t, err)

	var got recognizedReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 3)

	assert.Equal(t, "Sousou no Frieren", got.Results[0].Title)
	assert.Equal(t, "exact", got.Results[0].Result.Kind)
	assert.Equal(t, 1, got.Results[0].Result.Anime.ID)
	assert.InDelta(t, 1.0, got.Results[0].Result.Confidence, 0.0001)
	assert.Nil(t, got.Results[0].Redirect)

	assert.Equal(t, "normalized", got.Results[1].Result.Kind)
	assert.Equal(t, 1, got.Results[1].Result.Anime.ID)

	assert.Equal(t, uint64(1), got.Stats.HitsExact)
	assert.Equal(t, uint64(1), got.Stats.HitsLRU)
	assert.Zero(t, got.Stats.Misses)
	assert.Equal(t, 2, got.Stats.LRUSize)
	assert.Equal(t, 3, got.Stats.EntriesIndexed)
}

func TestRecognizeCommandAppliesRelations(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)
	require.NoError(t, h.CreateRelationsFile("/cfg/anime-relations.txt",
		"- 52991|?|?:29-? -> 99999|?|?:1-?\n"))

	out, err := runCLI(t, h.Fs, "", "recognize", "--catalog", testCatalog,
		"[SubsPlease] Sousou no Frieren - 30 (1080p).mkv")
	require.NoError(t, err)

	var got recognizedReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 1)
	require.NotNil(t, got.Results[0].Redirect)
	assert.Equal(t, uint32(99999), got.Results[0].Redirect.MAL)
	assert.Equal(t, 2, got.Results[0].Redirect.Episode)
}

func TestRecognizeCommandRawNoMatch(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)
	out, err := runCLI(t, h.Fs, "", "recognize", "--catalog", testCatalog, "--raw", "zzzz qqqq")
	require.NoError(t, err)

	var got recognizedReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "zzzz qqqq", got.Results[0].Title)
	assert.Equal(t, "no_match", got.Results[0].Result.Kind)
	assert.Equal(t, uint64(1), got.Stats.Misses)
}

func TestRecognizeCommandStdin(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)
	out, err := runCLI(t, h.Fs, frierenFile+"\n\n   \nSousou no Frieren 07 [720p].mp4\n",
		"recognize", "--catalog", testCatalog, "--stdin")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var got recognized
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, "exact", got.Result.Kind)
		assert.Equal(t, 1, got.Result.Anime.ID)
	}
}

func TestRecognizeCommandCatalogFromConfig(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)

	_, err := runCLI(t, h.Fs, "", "recognize", frierenFile)
	require.ErrorIs(t, err, errNoCatalog)

	vals := config.BaseDefaults
	vals.Catalog.File = testCatalog
	require.NoError(t, h.CreateConfigFile(testConfigDir, vals))
	_, err = runCLI(t, h.Fs, "", "recognize", frierenFile)
	require.NoError(t, err)

	_, err = runCLI(t, h.Fs, "", "recognize")
	require.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	h := newTestFS(t)
	out, err := runCLI(t, h.Fs, "", "search", "--catalog", testCatalog, "kyojin")
	require.NoError(t, err)

	var got []catalog.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	ids := []int{got[0].Anime.ID, got[1].Anime.ID}
	assert.ElementsMatch(t, []int{2, 3}, ids)

	out, err = runCLI(t, h.Fs, "", "search", "--catalog", testCatalog, "-n", "1", "kyojin")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)

	out, err = runCLI(t, h.Fs, "", "search", "--catalog", testCatalog, "zzzz")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestRedirectCommand(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	out, err := runCLI(t, fs, "", "redirect", "--mal", "41380", "--episode", "13")
	require.NoError(t, err)

	var got redirectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.True(t, got.Found)
	assert.Equal(t, uint32(44881), got.Redirect.MAL)
	assert.Equal(t, 1, got.Redirect.Episode)

	out, err = runCLI(t, fs, "", "redirect", "--anilist", "116242", "-e", "24")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.True(t, got.Found)
	assert.Equal(t, 12, got.Redirect.Episode)

	out, err = runCLI(t, fs, "", "redirect", "--mal", "41380", "--episode", "2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"found": false}`, out)
}

func TestRedirectCommandFlagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no id", args: []string{"redirect", "--episode", "1"}},
		{name: "two ids", args: []string{"redirect", "--mal", "1", "--kitsu", "2", "--episode", "1"}},
		{name: "no episode", args: []string{"redirect", "--mal", "41380"}},
		{name: "zero episode", args: []string{"redirect", "--mal", "41380", "--episode", "0"}},
		{name: "zero id", args: []string{"redirect", "--mal", "0", "--episode", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := runCLI(t, afero.NewMemMapFs(), "", tt.args...)
			require.Error(t, err)
		})
	}
}

func TestRulesCheckCommand(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.CreateRelationsFile("/cfg/anime-relations.txt",
		"- 1|2|3:1-12 -> 4|5|6:1-12!\n"))
	require.NoError(t, h.CreateRelationsFile("/rules/broken.txt",
		"- 1|2|3:1 -> 4|5|6:1\n- 1|2:1 -> 4|5|6:1\n"))

	out, err := runCLI(t, h.Fs, "", "rules", "check")
	require.NoError(t, err)
	var got rulesCheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Rules)
	assert.Zero(t, got.Skipped)

	out, err = runCLI(t, h.Fs, "", "rules", "check", "/rules/broken.txt")
	require.Error(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Rules)
	assert.Equal(t, 1, got.Skipped)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "line 3")

	_, err = runCLI(t, h.Fs, "", "rules", "check", "/rules/missing.txt")
	require.Error(t, err)
}

func TestRootCommandRejectsBadConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/tsukiyomi.toml", []byte("config_schema = 42\n"), 0o600))

	_, err := runCLI(t, fs, "", "parse", frierenFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
