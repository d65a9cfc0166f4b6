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

// Premium splits an insured sum between the farmer and the government
// subsidy under a named scheme.
type Premium struct {
	Scheme       string  `json:"scheme"`
	FarmerShare  float64 `json:"farmer_share"`
	GovtShare    float64 `json:"govt_share"`
	TotalPremium float64 `json:"total_premium"`
	FarmerRate   float64 `json:"farmer_rate"`
}

// pmfbyRate maps season category to the farmer's premium rate under PMFBY
// (Pradhan Mantri Fasal Bima Yojana).
func pmfbyRate(season string) float64 {
	switch strings.ToLower(strings.TrimSpace(season)) {
	case "kharif":
		return 0.02
	case "rabi":
		return 0.015
	default: // commercial and horticultural crops
		return 0.05
	}
}

// PMFBYPremium computes the farmer and government shares for an insured sum
// per unit area across the given cultivated area. The actuarial rate is
// assumed at 12%; the government covers the gap above the farmer's capped
// rate, floored at zero. A non-positive area is treated as one unit.
func PMFBYPremium(season string, sumInsured, area float64) Premium {
	if area <= 0 {
		area = 1
	}
	rate := pmfbyRate(season)
	govtRate := 0.12 - rate
	if govtRate < 0 {
		govtRate = 0
	}
	farmer := sumInsured * area * rate
	govt := sumInsured * area * govtRate
	return Premium{
		Scheme:       "PMFBY",
		FarmerShare:  farmer,
		GovtShare:    govt,
		TotalPremium: farmer + govt,
		FarmerRate:   rate,
	}
}

// wbcisRate maps the covered peril to the farmer's rate under WBCIS
// (Weather Based Crop Insurance Scheme).
func wbcisRate(peril string) float64 {
	switch strings.ToLower(strings.TrimSpace(peril)) {
	case "drought":
		return 0.08
	case "excess rainfall":
		return 0.09
	default: // unseasonal rainfall and other weather perils
		return 0.10
	}
}

// WBCISPremium computes weather-index cover shares for an insured sum per
// unit area across the given cultivated area. The government subsidy is a
// fixed 5% regardless of peril. A non-positive area is treated as one unit.
func WBCISPremium(peril string, sumInsured, area float64) Premium {
	if area <= 0 {
		area = 1
	}
	rate := wbcisRate(peril)
	farmer := sumInsured * area * rate
	govt := sumInsured * area * 0.05
	return Premium{
		Scheme:       "WBCIS",
		FarmerShare:  farmer,
		GovtShare:    govt,
		TotalPremium: farmer + govt,
		FarmerRate:   rate,
	}
}
