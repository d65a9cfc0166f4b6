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

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/farmer-super-app/internal/genai"
	"go.uber.org/zap"
)

// Fertilizer output tags the prompt instructs the model to use.
const (
	tagFert  = "FERT"
	tagSched = "SCHED"
	tagTip   = "TIP"
	tagPest  = "PEST"
)

// Per-field defaults applied when a tag is missing from otherwise tagged output.
const (
	defaultFertilizer  = "See AI Advice below"
	defaultSchedule    = "Apply as needed."
	defaultPestControl = "Monitor field regularly."
	looseFertilizer    = "Custom Recommendation"
)

// FertilizerAdvice is the parsed recommendation. Every field is free text and
// independently defaulted, so the caller always has something to render.
type FertilizerAdvice struct {
	Fertilizer  string `json:"fertilizer"`
	Schedule    string `json:"schedule"`
	Tip         string `json:"tip"`
	PestControl string `json:"pest_control"`
}

// FertilizerInput carries the farm context embedded into the prompt.
type FertilizerInput struct {
	N, P, K   int
	Crop      string
	Stage     string
	PestIssue string
	Language  string
	Image     *genai.Part
}

// Generator is the slice of the gateway this package needs.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) genai.Result
}

// Service performs structured extraction through the generation gateway.
type Service struct {
	gateway Generator
	logger  *zap.Logger
}

// NewService creates an extraction service.
func NewService(gateway Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, logger: logger}
}

// FertilizerAdvice generates and parses fertilizer guidance. It never fails:
// when generation degrades to the gateway fallback, a deterministic NPK rule
// table takes over so the recommendation stays non-fatal.
func (s *Service) FertilizerAdvice(ctx context.Context, in FertilizerInput) FertilizerAdvice {
	result := s.gateway.Generate(ctx, genai.Request{
		Content:  fertilizerPrompt(in),
		Language: in.Language,
	})
	if result.Fallback {
		s.logger.Warn("Fertilizer generation unavailable, using rule table",
			zap.String("crop", in.Crop))
		return ruleBasedFertilizerAdvice(in)
	}
	return parseFertilizerAdvice(result.Text)
}

// parseFertilizerAdvice maps tagged text onto advice fields. If neither the
// fertilizer nor the tip tag is present, the whole response is reinterpreted
// as the tip; this loose parse takes precedence over per-field defaulting.
func parseFertilizerAdvice(text string) FertilizerAdvice {
	fields := parseTagged(text, []string{tagFert, tagSched, tagTip, tagPest})

	_, hasFert := fields[tagFert]
	_, hasTip := fields[tagTip]
	if !hasFert && !hasTip {
		return FertilizerAdvice{
			Fertilizer:  looseFertilizer,
			Schedule:    fieldOr(fields, tagSched, defaultSchedule),
			Tip:         strings.TrimSpace(text),
			PestControl: fieldOr(fields, tagPest, defaultPestControl),
		}
	}

	tip := fields[tagTip]
	if !hasTip {
		tip = truncate(strings.TrimSpace(text), 200)
	}
	return FertilizerAdvice{
		Fertilizer:  fieldOr(fields, tagFert, defaultFertilizer),
		Schedule:    fieldOr(fields, tagSched, defaultSchedule),
		Tip:         tip,
		PestControl: fieldOr(fields, tagPest, defaultPestControl),
	}
}

// ruleBasedFertilizerAdvice is the deterministic fallback keyed on soil
// nitrogen, then phosphorus.
func ruleBasedFertilizerAdvice(in FertilizerInput) FertilizerAdvice {
	fert := "General NPK 19:19:19 (Standard Dose)"
	switch {
	case in.N < 50:
		fert = "Urea (45 kg/acre)"
	case in.P < 50:
		fert = "DAP (50 kg/acre)"
	}
	return FertilizerAdvice{
		Fertilizer:  fert,
		Schedule:    "Apply in 2 splits (Basal + 30 DAS).",
		Tip:         "Nutrient levels are adequate. Maintain with standard dosage.",
		PestControl: "Use Neem Oil for prevention.",
	}
}

func fertilizerPrompt(in FertilizerInput) genai.PromptContent {
	pest := in.PestIssue
	if pest == "" {
		pest = "None reported"
	}
	stage := in.Stage
	if stage == "" {
		stage = "Unknown"
	}

	if in.Image != nil {
		prompt := fmt.Sprintf(`Act as an expert Agronomist.
Analyze this image. It is likely a photo of a crop, plant, or tree (or a Soil Health Card).

1. VISUAL DIAGNOSIS: Look at the condition of the leaves, stem, and fruit.
   - Check for yellowing (deficiency), wilting, stunted growth, or pest damage.
   - If it is a Soil Card, just extract values.

Target Crop: %s
Current Stage: %s
Observed Pest/Disease: %s

1. Recommend fertilizer for THIS specific stage.
2. Suggest a full schedule (how many times to fertilize and when).
3. Address pest issues if any.

Format the output strictly like this:
FERT: <Recommendation for current stage>
SCHED: <Frequency/Schedule advice (e.g. Split doses)>
TIP: <One Sentence Advice>
PEST: <Pest Control Suggestion>`, in.Crop, stage, pest)
		return genai.Multipart(*in.Image, genai.TextPart(prompt))
	}

	prompt := fmt.Sprintf(`Act as an expert Agronomist.
Farm Details:
- Soil N-P-K: %d-%d-%d
- Crop: %s
- Current Stage: %s
- Observed Pest/Disease: %s

1. Recommend fertilizer for THIS specific stage.
2. Suggest a full schedule (how many times to fertilize and when).
3. Address pest issues if any.

Format the output strictly like this:
FERT: <Fertilizer Name & Dose for current stage>
SCHED: <Frequency/Schedule advice (e.g. Split doses)>
TIP: <One Sentence Advice>
PEST: <Pest Control Suggestion>`, in.N, in.P, in.K, in.Crop, stage, pest)
	return genai.Text(prompt)
}

func fieldOr(fields map[string]string, tag, fallback string) string {
	if value, ok := fields[tag]; ok && value != "" {
		return value
	}
	return fallback
}

// truncate caps text at max characters without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
