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
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/farmer-super-app/internal/genai"
	"go.uber.org/zap"
)

// Yield output tags.
const (
	tagYield      = "YIELD"
	tagProduction = "PRODUCTION"
	tagReason     = "REASON"
)

const defaultExplanation = "AI analysis complete."

// maxLooseExplanation bounds how long an untagged response may be before it
// stops being usable as the explanation.
const maxLooseExplanation = 300

// ErrYieldUnavailable is returned when generation degrades to the fallback
// path. Unlike fertilizer advice there is no sensible synthetic number to
// present as truth, so the caller must handle this explicitly.
var ErrYieldUnavailable = errors.New("yield analysis unavailable")

// YieldEstimate is the parsed prediction. Yield is tonnes per acre and
// Production total tonnes for the supplied area.
type YieldEstimate struct {
	Yield       float64 `json:"yield"`
	Production  float64 `json:"production"`
	Explanation string  `json:"explanation"`
}

// YieldInput carries the agronomic context embedded into the prompt.
type YieldInput struct {
	State       string
	Crop        string
	Season      string
	Area        float64
	Soil        string
	Weather     string
	City        string
	Village     string
	SowingDate  string
	Variety     string
	Irrigation  string
	Fertilizer  string
	PestControl string
	PestName    string
	Language    string
	Image       *genai.Part
}

// YieldEstimate generates and parses a scientific yield prediction. Unlike
// FertilizerAdvice, a failed generation is surfaced as an explicit error.
func (s *Service) YieldEstimate(ctx context.Context, in YieldInput) (YieldEstimate, error) {
	result := s.gateway.Generate(ctx, genai.Request{
		Content:  yieldPrompt(in),
		Language: in.Language,
	})
	if result.Fallback {
		s.logger.Warn("Yield generation unavailable",
			zap.String("crop", in.Crop),
			zap.String("state", in.State))
		return YieldEstimate{}, ErrYieldUnavailable
	}
	return parseYieldEstimate(result.Text, in.Area), nil
}

// parseYieldEstimate extracts the numeric fields. A missing or malformed
// production is derived as yield x area; a missing reason falls back to the
// whole response if it is short and clearly prose, else a fixed placeholder.
func parseYieldEstimate(text string, area float64) YieldEstimate {
	fields := parseTagged(text, []string{tagYield, tagProduction, tagReason})

	estYield := 0.0
	if value, ok := fields[tagYield]; ok {
		if n, ok := parseLeadingFloat(value); ok {
			estYield = n
		}
	}

	estProd := estYield * area
	if value, ok := fields[tagProduction]; ok {
		if n, ok := parseLeadingFloat(value); ok {
			estProd = n
		}
	}

	explanation := defaultExplanation
	if value, ok := fields[tagReason]; ok && value != "" {
		explanation = strings.ReplaceAll(value, "*", "")
	} else {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) < maxLooseExplanation && !strings.Contains(strings.ToUpper(trimmed), tagYield) {
			explanation = trimmed
		}
	}

	return YieldEstimate{Yield: estYield, Production: estProd, Explanation: explanation}
}

func yieldPrompt(in YieldInput) genai.PromptContent {
	farmContext := fmt.Sprintf(`Context:
- Crop: %s (Variety: %s)
- Location: %s, %s, %s, India
- Sowing Date: %s
- Season: %s
- Area: %.2f Acres
- Soil: %s
- Irrigation: %s
- Fertilizer/Inputs: %s
- Pest Control: Used '%s' (%s)
- Weather Outlook: %s`,
		in.Crop, in.Variety, in.Village, in.City, in.State, in.SowingDate, in.Season,
		in.Area, in.Soil, in.Irrigation, in.Fertilizer, in.PestName, in.PestControl, in.Weather)

	if in.Image != nil {
		prompt := fmt.Sprintf(`Act as a Senior Agronomist.
Perform a Scientific Yield Assessment based on this field image and agronomic data.

%s

Task:
1. Analyze crop vigor, canopy cover, and signs of nutrient deficiency or disease from the image.
2. Correlate the sowing date with the growth stage seen in the image.
3. Evaluate efficacy of the pest control on crop health.
4. Calculate the yield gap (potential vs actual) considering variety and irrigation.
5. Provide a precision yield estimate (Tonnes/Acre).

Output Format exactly:
YIELD: <Number only>
PRODUCTION: <Number only>
REASON: <Scientific explanation>`, farmContext)
		return genai.Multipart(*in.Image, genai.TextPart(prompt))
	}

	prompt := fmt.Sprintf(`Act as a Senior Agronomist.
Perform a Scientific Yield Calculation based on provided agronomic parameters.

%s

Task:
1. Determine the genetic yield potential of the variety: %s.
2. Apply reduction factors for late/early sowing, water stress, nutrient management,
   and pest/disease pressure versus control.
3. Estimate the final harvestable yield (Tonnes/Acre).

Output Format exactly:
YIELD: <Number only, e.g. 2.5>
PRODUCTION: <Number only, e.g. 12.5>
REASON: <Scientific explanation>`, farmContext, in.Variety)
	return genai.Text(prompt)
}
