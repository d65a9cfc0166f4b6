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
	"math/rand"
)

const (
	// trendDays is the length of the simulated price series.
	trendDays = 7
	// trendStep bounds the per-day random walk in rupees.
	trendStep = 150
)

// Trend produces a 7-day price series ending today. The series is built as a
// backward random walk from the anchor so the final point always equals the
// supplied price exactly; pass basePrice <= 0 to anchor on the name-seeded
// base, keeping trend and mandi simulations consistent for the same
// commodity.
func (c *Client) Trend(commodity string, basePrice int) []TrendPoint {
	anchor := basePrice
	if anchor <= 0 {
		anchor = BasePrice(commodity)
	}

	rng := rand.New(rand.NewSource(c.now().UnixNano())) // #nosec G404 - display variation only

	prices := make([]int, trendDays)
	prices[trendDays-1] = anchor
	for i := trendDays - 2; i >= 0; i-- {
		prices[i] = prices[i+1] + rng.Intn(2*trendStep+1) - trendStep
	}

	today := c.now()
	points := make([]TrendPoint, trendDays)
	for i := range points {
		day := today.AddDate(0, 0, i-(trendDays-1))
		points[i] = TrendPoint{Date: day.Format("02 Jan"), Price: prices[i]}
	}
	return points
}
