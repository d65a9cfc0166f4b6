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

// Package advisor holds the deterministic agronomy rules: crop selection from
// soil and climate readings, irrigation water budgets, and crop insurance
// premiums. The rules run without any AI call; the AI only adds an optional
// explanation on top.
package advisor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/your-org/farmer-super-app/internal/genai"
)

// CropInput carries the soil test and climate readings for a recommendation.
type CropInput struct {
	N           int     `json:"n"`
	P           int     `json:"p"`
	K           int     `json:"k"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
	Language    string  `json:"language"`
}

// CropRecommendation is a rule-based pick with its one-line reason plus an
// optional AI explanation.
type CropRecommendation struct {
	Crop        string `json:"crop"`
	Reason      string `json:"reason"`
	Explanation string `json:"explanation,omitempty"`
}

// Generator produces free-form advisory text. *genai.Gateway satisfies it.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) genai.Result
}

// Service evaluates the agronomy rules and optionally asks a Generator for a
// farmer-readable explanation.
type Service struct {
	gateway Generator
	logger  *zap.Logger
}

// NewService creates an advisor. gateway may be nil, in which case
// recommendations carry no explanation.
func NewService(gateway Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, logger: logger}
}

// RecommendCrop applies the rule ladder in order and returns the crop with
// the matching rule's reason. The first matching rule wins; Maize is the
// catch-all.
func RecommendCrop(in CropInput) (string, string) {
	switch {
	case in.N > 100:
		return "Cotton", "High Nitrogen detected, good for cash crops."
	case in.P > 50 && in.Rainfall > 200:
		return "Rice", "High rainfall and phosphorus levels suitable for paddy."
	case in.Rainfall < 50:
		return "Millets", "Low rainfall condition detected. Drought-resistent crop."
	case in.Temperature < 20:
		return "Wheat", "Cooler temperature suitable for Rabi crops."
	default:
		return "Maize", "Balanced conditions suitable for versatile crops."
	}
}

// RecommendCrop returns the rule-based crop and reason and, when a gateway is
// wired, a short localized explanation of why it suits the readings.
// Explanation failures are silent; the crop pick never depends on the AI.
func (s *Service) RecommendCrop(ctx context.Context, in CropInput) CropRecommendation {
	crop, reason := RecommendCrop(in)
	rec := CropRecommendation{Crop: crop, Reason: reason}

	if s.gateway == nil {
		return rec
	}

	prompt := fmt.Sprintf(
		"A soil test shows N=%d, P=%d, K=%d, pH=%.1f with average temperature %.1f C, humidity %.0f%% and annual rainfall %.0f mm. "+
			"The recommended crop is %s. In 2-3 simple sentences, explain to a farmer why %s suits these conditions.",
		in.N, in.P, in.K, in.PH, in.Temperature, in.Humidity, in.Rainfall, crop, crop)

	result := s.gateway.Generate(ctx, genai.Request{
		Content:  genai.Text(prompt),
		Language: in.Language,
	})
	if result.Fallback {
		s.logger.Debug("Crop explanation unavailable, returning rule result only",
			zap.String("crop", crop))
		return rec
	}
	rec.Explanation = result.Text
	return rec
}
