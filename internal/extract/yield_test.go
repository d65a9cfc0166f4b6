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
	"strings"
	"testing"

	"github.com/your-org/farmer-super-app/internal/genai"
)

func TestYieldEstimateEndToEnd(t *testing.T) {
	gateway := &fakeGateway{result: genai.Result{Text: "YIELD: 3.0\nPRODUCTION: 15.0\nREASON: Good rainfall."}}
	svc := NewService(gateway, nil)

	estimate, err := svc.YieldEstimate(context.Background(), YieldInput{Crop: "Rice", Area: 5.0})
	if err != nil {
		t.Fatalf("YieldEstimate() error = %v", err)
	}
	if estimate.Yield != 3.0 || estimate.Production != 15.0 {
		t.Errorf("estimate = %+v, want yield 3.0 production 15.0", estimate)
	}
	if estimate.Explanation != "Good rainfall." {
		t.Errorf("Explanation = %q, want %q", estimate.Explanation, "Good rainfall.")
	}
}

func TestYieldEstimateDerivesProduction(t *testing.T) {
	gateway := &fakeGateway{result: genai.Result{Text: "YIELD: 2.5\nREASON: Average season."}}
	svc := NewService(gateway, nil)

	estimate, err := svc.YieldEstimate(context.Background(), YieldInput{Crop: "Wheat", Area: 5})
	if err != nil {
		t.Fatalf("YieldEstimate() error = %v", err)
	}
	if estimate.Production != 12.5 {
		t.Errorf("Production = %v, want 12.5 (yield 2.5 x area 5)", estimate.Production)
	}
}

func TestYieldEstimateMalformedProductionDerives(t *testing.T) {
	gateway := &fakeGateway{result: genai.Result{Text: "YIELD: 2.0\nPRODUCTION: unknown\nREASON: ok"}}
	svc := NewService(gateway, nil)

	estimate, _ := svc.YieldEstimate(context.Background(), YieldInput{Area: 4})
	if estimate.Production != 8.0 {
		t.Errorf("Production = %v, want derived 8.0", estimate.Production)
	}
}

func TestYieldEstimateLooseExplanation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short untagged response becomes explanation",
			text: "The crop should do well given the irrigation schedule.",
			want: "The crop should do well given the irrigation schedule.",
		},
		{
			name: "response mentioning YIELD keeps placeholder",
			text: "YIELD estimates are not possible right now.",
			want: defaultExplanation,
		},
		{
			name: "long response keeps placeholder",
			text: strings.Repeat("verbose analysis ", 30),
			want: defaultExplanation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseYieldEstimate(tt.text, 1)
			if strings.TrimSpace(got.Explanation) != strings.TrimSpace(tt.want) {
				t.Errorf("Explanation = %q, want %q", got.Explanation, tt.want)
			}
		})
	}
}

func TestYieldEstimateStripsMarkdownEmphasis(t *testing.T) {
	gateway := &fakeGateway{result: genai.Result{Text: "YIELD: 1.5\nREASON: **Strong** variety choice."}}
	svc := NewService(gateway, nil)

	estimate, _ := svc.YieldEstimate(context.Background(), YieldInput{Area: 1})
	if estimate.Explanation != "Strong variety choice." {
		t.Errorf("Explanation = %q, want asterisks removed", estimate.Explanation)
	}
}

func TestYieldEstimateFailurePropagates(t *testing.T) {
	gateway := &fakeGateway{result: genai.Result{Text: genai.FallbackMessage("English"), Fallback: true}}
	svc := NewService(gateway, nil)

	_, err := svc.YieldEstimate(context.Background(), YieldInput{Crop: "Rice", Area: 5})
	if !errors.Is(err, ErrYieldUnavailable) {
		t.Errorf("YieldEstimate() error = %v, want ErrYieldUnavailable", err)
	}
}
