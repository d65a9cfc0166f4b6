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

import (
	"context"
	"math"
	"testing"

	"github.com/your-org/farmer-super-app/internal/genai"
)

func TestRecommendCropRules(t *testing.T) {
	tests := []struct {
		name       string
		in         CropInput
		want       string
		wantReason string
	}{
		{
			name:       "high nitrogen picks cotton",
			in:         CropInput{N: 120, P: 60, Rainfall: 300},
			want:       "Cotton",
			wantReason: "High Nitrogen detected, good for cash crops.",
		},
		{
			name:       "high phosphorus with heavy rain picks rice",
			in:         CropInput{N: 80, P: 60, Rainfall: 250},
			want:       "Rice",
			wantReason: "High rainfall and phosphorus levels suitable for paddy.",
		},
		{
			name:       "dry climate picks millets",
			in:         CropInput{N: 40, P: 30, Rainfall: 30, Temperature: 32},
			want:       "Millets",
			wantReason: "Low rainfall condition detected. Drought-resistent crop.",
		},
		{
			name:       "cool climate picks wheat",
			in:         CropInput{N: 40, P: 30, Rainfall: 100, Temperature: 15},
			want:       "Wheat",
			wantReason: "Cooler temperature suitable for Rabi crops.",
		},
		{
			name:       "default picks maize",
			in:         CropInput{N: 40, P: 30, Rainfall: 100, Temperature: 28},
			want:       "Maize",
			wantReason: "Balanced conditions suitable for versatile crops.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := RecommendCrop(tt.in)
			if got != tt.want {
				t.Errorf("RecommendCrop() = %q, want %q", got, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("RecommendCrop() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

type fakeGenerator struct {
	result   genai.Result
	requests []genai.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req genai.Request) genai.Result {
	f.requests = append(f.requests, req)
	return f.result
}

func TestRecommendCropWithExplanation(t *testing.T) {
	gen := &fakeGenerator{result: genai.Result{Text: "Cotton thrives in nitrogen-rich soil."}}
	svc := NewService(gen, nil)

	rec := svc.RecommendCrop(context.Background(), CropInput{N: 120, Language: "Hindi"})
	if rec.Crop != "Cotton" {
		t.Fatalf("expected Cotton, got %q", rec.Crop)
	}
	if rec.Reason != "High Nitrogen detected, good for cash crops." {
		t.Errorf("unexpected reason %q", rec.Reason)
	}
	if rec.Explanation != "Cotton thrives in nitrogen-rich soil." {
		t.Errorf("unexpected explanation %q", rec.Explanation)
	}
	if len(gen.requests) != 1 || gen.requests[0].Language != "Hindi" {
		t.Errorf("expected one request with Hindi language, got %+v", gen.requests)
	}
}

func TestRecommendCropExplanationFallbackOmitted(t *testing.T) {
	gen := &fakeGenerator{result: genai.Result{Text: "busy", Fallback: true}}
	svc := NewService(gen, nil)

	rec := svc.RecommendCrop(context.Background(), CropInput{N: 120})
	if rec.Crop != "Cotton" {
		t.Fatalf("expected Cotton, got %q", rec.Crop)
	}
	if rec.Explanation != "" {
		t.Errorf("expected no explanation when generation falls back, got %q", rec.Explanation)
	}
}

func TestRecommendCropNilGateway(t *testing.T) {
	svc := NewService(nil, nil)

	rec := svc.RecommendCrop(context.Background(), CropInput{Rainfall: 20})
	if rec.Crop != "Millets" || rec.Explanation != "" {
		t.Errorf("unexpected recommendation %+v", rec)
	}
	if rec.Reason == "" {
		t.Error("expected a rule reason even without a gateway")
	}
}

func TestPlanIrrigation(t *testing.T) {
	tests := []struct {
		name       string
		crop       string
		soil       string
		area       float64
		wantLitres float64
	}{
		{"rice on sandy soil", "Rice", "Sandy", 2, 15000 * 2 * 1.2},
		{"wheat on clayey soil", "wheat", "Clayey", 1, 4500 * 0.8},
		{"maize on loamy soil", "Maize", "Loamy", 3, 4000 * 3},
		{"unknown crop default base", "Sugarcane", "Loamy", 1, 5000},
		{"unknown soil neutral factor", "Cotton", "Laterite", 1, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanIrrigation(tt.crop, tt.soil, tt.area)
			if math.Abs(plan.WaterLitres-tt.wantLitres) > 1e-9 {
				t.Errorf("WaterLitres = %v, want %v", plan.WaterLitres, tt.wantLitres)
			}
			if plan.Frequency == "" {
				t.Error("expected a frequency hint")
			}
		})
	}
}

func TestPlanIrrigationFrequencyBySoil(t *testing.T) {
	tests := []struct {
		soil string
		want string
	}{
		{"Sandy", "Sandy soil drains fast. Irrigate frequently (every 5-7 days)."},
		{"Clayey", "Clay retains water. Irrigate less frequently (every 12-15 days)."},
		{"Loamy", "Loamy soil is balanced. Irrigate every 8-10 days."},
		{"Laterite", "Standard schedule (every 10-12 days)."},
	}
	for _, tt := range tests {
		t.Run(tt.soil, func(t *testing.T) {
			plan := PlanIrrigation("Rice", tt.soil, 1)
			if plan.Frequency != tt.want {
				t.Errorf("Frequency = %q, want %q", plan.Frequency, tt.want)
			}
		})
	}
}

func TestPMFBYPremium(t *testing.T) {
	tests := []struct {
		name       string
		season     string
		sum        float64
		area       float64
		wantFarmer float64
		wantGovt   float64
	}{
		{"kharif at 2 percent", "Kharif", 100000, 1, 2000, 10000},
		{"rabi at 1.5 percent", "rabi", 100000, 1, 1500, 10500},
		{"commercial at 5 percent", "Commercial", 100000, 1, 5000, 7000},
		{"area scales both shares", "Kharif", 100000, 2.5, 5000, 25000},
		{"zero area treated as one unit", "Kharif", 100000, 0, 2000, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PMFBYPremium(tt.season, tt.sum, tt.area)
			if math.Abs(p.FarmerShare-tt.wantFarmer) > 1e-9 {
				t.Errorf("FarmerShare = %v, want %v", p.FarmerShare, tt.wantFarmer)
			}
			if math.Abs(p.GovtShare-tt.wantGovt) > 1e-9 {
				t.Errorf("GovtShare = %v, want %v", p.GovtShare, tt.wantGovt)
			}
			if math.Abs(p.TotalPremium-(tt.wantFarmer+tt.wantGovt)) > 1e-9 {
				t.Errorf("TotalPremium = %v, want %v", p.TotalPremium, tt.wantFarmer+tt.wantGovt)
			}
			if p.Scheme != "PMFBY" {
				t.Errorf("Scheme = %q", p.Scheme)
			}
		})
	}
}

func TestWBCISPremium(t *testing.T) {
	tests := []struct {
		name       string
		peril      string
		sum        float64
		area       float64
		wantFarmer float64
		wantGovt   float64
	}{
		{"drought", "Drought", 50000, 1, 4000, 2500},
		{"excess rainfall", "Excess Rainfall", 50000, 1, 4500, 2500},
		{"unseasonal rainfall", "Unseasonal Rainfall", 50000, 1, 5000, 2500},
		{"area scales both shares", "Drought", 50000, 2, 8000, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := WBCISPremium(tt.peril, tt.sum, tt.area)
			if math.Abs(p.FarmerShare-tt.wantFarmer) > 1e-9 {
				t.Errorf("FarmerShare = %v, want %v", p.FarmerShare, tt.wantFarmer)
			}
			if math.Abs(p.GovtShare-tt.wantGovt) > 1e-9 {
				t.Errorf("GovtShare = %v, want %v", p.GovtShare, tt.wantGovt)
			}
			if p.Scheme != "WBCIS" {
				t.Errorf("Scheme = %q", p.Scheme)
			}
		})
	}
}
