// Copyright 2025 Farmer Super App Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package extract turns semi-structured tagged model output into discrete
// advisory fields, defaulting anything the model failed to tag.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// taggedSection is one located tag in the generated text.
type taggedSection struct {
	tag          string
	start        int // index of the tag itself
	contentStart int // index just past "TAG:"
}

// parseTagged scans text for "TAG:" markers from the given set and captures
// each tag's content up to the next recognized tag or end of string, trimmed.
// Matching is case-insensitive and order-independent; generative backends do
// not guarantee tag order. Only the first occurrence of each tag counts.
func parseTagged(text string, tags []string) map[string]string {
	lower := strings.ToLower(text)

	var sections []taggedSection
	for _, tag := range tags {
		marker := strings.ToLower(tag) + ":"
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		sections = append(sections, taggedSection{
			tag:          tag,
			start:        idx,
			contentStart: idx + len(marker),
		})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].start < sections[j].start })

	fields := make(map[string]string, len(sections))
	for i, sec := range sections {
		end := len(text)
		if i+1 < len(sections) {
			end = sections[i+1].start
		}
		fields[sec.tag] = strings.TrimSpace(text[sec.contentStart:end])
	}
	return fields
}

var numberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// parseLeadingFloat extracts the first number from a captured tag value.
func parseLeadingFloat(value string) (float64, bool) {
	match := numberPattern.FindString(value)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
