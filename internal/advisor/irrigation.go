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

package advisor

import "strings"

// Per-acre daily water baselines in litres.
var cropWaterBase = map[string]float64{
	"rice":   15000,
	"wheat":  4500,
	"maize":  4000,
	"potato": 3500,
	"cotton": 6000,
}

const defaultWaterBase = 5000

// IrrigationPlan is a daily water budget with a soil-dependent frequency hint.
type IrrigationPlan struct {
	WaterLitres float64 `json:"water_litres"`
	Frequency   string  `json:"frequency"`
}

// PlanIrrigation computes litres per day for the whole plot. Sandy soil
// drains fast so it needs more frequent, heavier watering; clayey retains.
func PlanIrrigation(crop, soilType string, areaAcres float64) IrrigationPlan {
	base, ok := cropWaterBase[strings.ToLower(strings.TrimSpace(crop))]
	if !ok {
		base = defaultWaterBase
	}

	factor := 1.0
	frequency := "Standard schedule (every 10-12 days)."
	switch strings.ToLower(strings.TrimSpace(soilType)) {
	case "sandy":
		factor = 1.2
		frequency = "Sandy soil drains fast. Irrigate frequently (every 5-7 days)."
	case "clayey":
		factor = 0.8
		frequency = "Clay retains water. Irrigate less frequently (every 12-15 days)."
	case "loamy":
		factor = 1.0
		frequency = "Loamy soil is balanced. Irrigate every 8-10 days."
	}

	return IrrigationPlan{
		WaterLitres: base * areaAcres * factor,
		Frequency:   frequency,
	}
}
