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

package market

import (
	"testing"
	"time"
)

func TestTrendAnchorsOnSuppliedPrice(t *testing.T) {
	client := NewClient("", "", nil)
	client.now = func() time.Time { return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) }

	points := client.Trend("Wheat", 2200)

	if len(points) != trendDays {
		t.Fatalf("Trend() returned %d points, want %d", len(points), trendDays)
	}
	if points[len(points)-1].Price != 2200 {
		t.Errorf("final price = %d, want anchor 2200 exactly", points[len(points)-1].Price)
	}
	if points[len(points)-1].Date != "29 Aug" {
		t.Errorf("final date = %q, want today", points[len(points)-1].Date)
	}
	if points[0].Date != "23 Aug" {
		t.Errorf("first date = %q, want six days back", points[0].Date)
	}
}

func TestTrendChronologicalAndBounded(t *testing.T) {
	client := NewClient("", "", nil)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return base }

	points := client.Trend("Rice", 3000)

	for i := 1; i < len(points); i++ {
		step := points[i].Price - points[i-1].Price
		if step > trendStep || step < -trendStep {
			t.Errorf("day %d: step %d exceeds +-%d", i, step, trendStep)
		}
	}
	// Dates must be strictly chronological.
	for i := 1; i < len(points); i++ {
		prev, _ := time.Parse("02 Jan", points[i-1].Date)
		curr, _ := time.Parse("02 Jan", points[i].Date)
		if !curr.After(prev) {
			t.Errorf("dates not chronological: %q then %q", points[i-1].Date, points[i].Date)
		}
	}
}

func TestTrendWithoutAnchorMatchesMandiBase(t *testing.T) {
	client := NewClient("", "", nil)

	for _, commodity := range []string{"Wheat", "Onion", "Sugarcane"} {
		points := client.Trend(commodity, 0)
		want := BasePrice(commodity)
		if got := points[len(points)-1].Price; got != want {
			t.Errorf("Trend(%q) final price = %d, want name-seeded base %d", commodity, got, want)
		}
	}
}
