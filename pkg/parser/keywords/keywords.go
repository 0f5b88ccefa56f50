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

// Package keywords classifies release filename words such as codecs,
// resolutions and sources.
//
// The built-in table is compiled once at start-up and never mutated. Lookups
// are case-insensitive: keys are stored uppercased.
package keywords

import (
	"strings"
)

// Category is the kind of metadata a keyword describes.
type Category int

const (
	Unknown Category = iota
	VideoCodec
	AudioCodec
	Resolution
	Source
	VideoTerm
	AudioTerm
	Language
	Subtitles
	ReleaseInfo
	DeviceCompat
	FileExtension
)

var categoryNames = map[Category]string{
	Unknown:       "unknown",
	VideoCodec:    "video_codec",
	AudioCodec:    "audio_codec",
	Resolution:    "resolution",
	Source:        "source",
	VideoTerm:     "video_term",
	AudioTerm:     "audio_term",
	Language:      "language",
	Subtitles:     "subtitles",
	ReleaseInfo:   "release_info",
	DeviceCompat:  "device_compat",
	FileExtension: "file_extension",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCategory returns the Category for a name as produced by String.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if c != Unknown && n == name {
			return c, true
		}
	}
	return Unknown, false
}

// categoryKeywords lists keywords per category. A keyword listed under more
// than one category keeps the first category in this order.
var categoryKeywords = []struct {
	words    []string
	category Category
}{
	{category: Resolution, words: []string{
		"480P", "540P", "576P", "720P", "1080P", "1080I", "1440P", "2160P", "4K",
	}},
	{category: VideoCodec, words: []string{
		"8BIT", "8-BIT", "10BIT", "10BITS", "10-BIT", "10-BITS", "HI10", "HI10P", "HI444", "HI444P",
		"HI444PP", "H264", "H265", "H.264", "H.265", "X264", "X265", "X.264", "AVC", "HEVC", "HEVC2",
		"DIVX", "DIVX5", "DIVX6", "XVID", "AV1", "VP9",
	}},
	{category: AudioCodec, words: []string{
		"AAC", "AACX2", "AACX3", "AACX4", "AC3", "EAC3", "E-AC-3", "FLAC", "FLACX2", "FLACX3",
		"FLACX4", "LOSSLESS", "MP3", "OGG", "VORBIS", "OPUS", "DTS", "DTS-ES", "DTS-HD", "TRUEHD",
		"DDP", "DD5.1", "DDP5.1",
	}},
	{category: Source, words: []string{
		"BD", "BDRIP", "BLURAY", "BLU-RAY", "DVD", "DVD5", "DVD9", "DVD-R2J", "DVDRIP", "DVD-RIP",
		"R2DVD", "R2J", "R2JDVD", "R2JDVDRIP", "HDTV", "HDTVRIP", "TVRIP", "TV-RIP", "WEBCAST",
		"WEBRIP", "WEB-DL", "WEBDL", "WEB",
	}},
	{category: VideoTerm, words: []string{
		"VFR", "CFR", "HDR", "HDR10", "SDR", "24FPS", "30FPS", "60FPS", "120FPS", "23.976FPS",
		"29.97FPS",
	}},
	{category: AudioTerm, words: []string{
		"2.0CH", "2CH", "5.1", "5.1CH", "7.1", "7.1CH", "DUALAUDIO", "DUAL-AUDIO", "DUAL AUDIO",
		"MULTIAUDIO", "MULTI-AUDIO",
	}},
	{category: Language, words: []string{
		"ENG", "ENGLISH", "ESPANOL", "JAP", "JPN", "JAPANESE", "PT-BR", "SPANISH", "VOSTFR", "ITA",
		"GER", "FRE", "CHS", "CHT", "BIG5", "GB",
	}},
	{category: Subtitles, words: []string{
		"ASS", "SRT", "SUB", "SUBS", "SUBBED", "SOFTSUB", "SOFTSUBS", "HARDSUB", "HARDSUBS",
		"HARDSUBBED", "MULTISUB", "MULTI-SUB", "MULTISUBS", "ENGSUB", "ENG-SUB", "RAW", "RAWS",
	}},
	{category: ReleaseInfo, words: []string{
		"BATCH", "COMPLETE", "PATCH", "REMUX", "PROPER", "REPACK", "UNCENSORED", "UNCUT",
	}},
	{category: DeviceCompat, words: []string{
		"ANDROID", "IPAD3", "IPHONE5", "IPOD", "PS3", "XBOX", "XBOX360",
	}},
	{category: FileExtension, words: []string{
		"3GP", "AVI", "FLV", "M2TS", "MKV", "MOV", "MP4", "MPG", "OGM", "RM", "RMVB", "TS", "WEBM",
		"WMV", "M4V",
	}},
}

var table = buildTable()

func buildTable() map[string]Category {
	t := make(map[string]Category, 256)
	for _, group := range categoryKeywords {
		for _, w := range group.words {
			key := strings.ToUpper(w)
			if _, exists := t[key]; !exists {
				t[key] = group.category
			}
		}
	}
	return t
}

// Lookup classifies word using the built-in table.
func Lookup(word string) (Category, bool) {
	c, ok := table[strings.ToUpper(word)]
	return c, ok
}

// Len returns the number of built-in keywords.
func Len() int {
	return len(table)
}
