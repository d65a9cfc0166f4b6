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
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPricesWithoutKeySimulates(t *testing.T) {
	client := NewClient("", "", nil)

	quotes, live := client.Prices(context.Background(), "Maharashtra", "Nagpur", "Wheat")

	if live {
		t.Error("Prices() reported live data without an API key")
	}
	if len(quotes) == 0 {
		t.Fatal("Prices() returned an empty list; simulation must always yield quotes")
	}

	wantMarkets := map[string]bool{
		"Nagpur APMC":         false,
		"Nagpur Mandi":        false,
		"Nagpur Rural Market": false,
		"Near Nagpur":         false,
	}
	for _, q := range quotes {
		if _, ok := wantMarkets[q.Market]; !ok {
			t.Errorf("unexpected market name %q", q.Market)
		}
		wantMarkets[q.Market] = true
	}
	for name, seen := range wantMarkets {
		if !seen {
			t.Errorf("missing simulated market %q", name)
		}
	}
}

func TestPricesPerKgInvariant(t *testing.T) {
	client := NewClient("", "", nil)

	quotes, _ := client.Prices(context.Background(), "Punjab", "Ludhiana", "Rice")
	for _, q := range quotes {
		if q.PerKg != float64(q.ModalPrice)/100 {
			t.Errorf("market %s: PerKg = %v, want modal/100 = %v", q.Market, q.PerKg, float64(q.ModalPrice)/100)
		}
		if q.MinPrice > q.ModalPrice || q.ModalPrice > q.MaxPrice {
			t.Errorf("market %s: prices not ordered: min %d modal %d max %d",
				q.Market, q.MinPrice, q.ModalPrice, q.MaxPrice)
		}
	}
}

func TestSimulatedModalWithinBand(t *testing.T) {
	client := NewClient("", "", nil)
	base := BasePrice("Cotton")

	quotes, _ := client.Prices(context.Background(), "Gujarat", "Rajkot", "Cotton")
	for _, q := range quotes {
		deviation := math.Abs(float64(q.ModalPrice)-float64(base)) / float64(base)
		if deviation > 0.06 {
			t.Errorf("market %s: modal %d deviates %.2f%% from base %d, want within ~5%%",
				q.Market, q.ModalPrice, deviation*100, base)
		}
	}
}

func TestBasePriceDeterministic(t *testing.T) {
	commodities := []string{"Wheat", "Rice", "Cotton", "Soyabean", "Onion", "काही"}
	for _, commodity := range commodities {
		t.Run(commodity, func(t *testing.T) {
			first := BasePrice(commodity)
			for i := 0; i < 5; i++ {
				if got := BasePrice(commodity); got != first {
					t.Fatalf("BasePrice(%q) unstable: %d then %d", commodity, first, got)
				}
			}
			if first < simBaseMin || first > simBaseMax {
				t.Errorf("BasePrice(%q) = %d, want within [%d, %d]", commodity, first, simBaseMin, simBaseMax)
			}
		})
	}
}

func TestPricesLiveRecordsMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filters[commodity]"); got != "Wheat" {
			t.Errorf("commodity filter = %q, want Wheat", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[
			{"market":"Nagpur APMC","min_price":"2100","max_price":"2350","modal_price":"2200","arrival_date":"28/08/2026"},
			{"market":"","min_price":"bad","max_price":"2400","modal_price":"2250","arrival_date":""}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, nil)
	quotes, live := client.Prices(context.Background(), "Maharashtra", "Nagpur", "Wheat")

	if !live {
		t.Fatal("Prices() did not report live data for a successful query")
	}
	if len(quotes) != 2 {
		t.Fatalf("Prices() returned %d quotes, want 2", len(quotes))
	}
	first := quotes[0]
	if first.Market != "Nagpur APMC" || first.ModalPrice != 2200 || first.PerKg != 22.0 {
		t.Errorf("first quote = %+v", first)
	}
	second := quotes[1]
	if second.Market != "Unknown" || second.MinPrice != 0 || second.Date != "Today" {
		t.Errorf("second quote defaults not applied: %+v", second)
	}
}

func TestPricesLiveEmptyFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, nil)
	quotes, live := client.Prices(context.Background(), "Maharashtra", "Pune", "Onion")

	if live {
		t.Error("Prices() reported live data for an empty record set")
	}
	if len(quotes) == 0 {
		t.Error("Prices() must simulate when the live API returns no records")
	}
}

func TestPricesServerErrorFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, nil)
	quotes, live := client.Prices(context.Background(), "Maharashtra", "Pune", "Onion")

	if live || len(quotes) == 0 {
		t.Errorf("Prices() = %d quotes, live=%v; want simulated fallback", len(quotes), live)
	}
}
