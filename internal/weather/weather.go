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

// Package weather wraps the OpenWeatherMap current-conditions endpoint. Any
// failure synthesizes a plausible snapshot flagged as mock, so a page always
// has something to render; only a missing API key returns no data at all.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the OpenWeatherMap current weather endpoint.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	// DefaultTimeout keeps page loads from hanging on a dead endpoint.
	DefaultTimeout = 5 * time.Second
)

// Snapshot is the weather view a page renders. Mock marks synthesized data.
type Snapshot struct {
	City        string  `json:"city"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Mock        bool    `json:"mock"`
}

// Client queries live weather with a synthesized fallback.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a weather client. An empty apiKey short-circuits every
// call to a "not configured" advisory.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// liveResponse mirrors the OpenWeatherMap JSON shape.
type liveResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// Current returns the weather for a city plus an optional advisory message.
// Missing key: (nil, advisory). Live success: (snapshot, ""). Any failure,
// non-200 or transport-level, synthesizes a mock snapshot with an advisory so
// behavior is consistent across failure modes.
func (c *Client) Current(ctx context.Context, city, langCode string) (*Snapshot, string) {
	if c.apiKey == "" {
		return nil, "Weather API key not configured."
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	if langCode != "" {
		params.Set("lang", langCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("Failed to build weather request", zap.Error(err))
		return c.mock(city), fmt.Sprintf("Weather service unreachable. Using simulated data for %s.", city)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Weather request failed, simulating",
			zap.String("city", city),
			zap.Error(err))
		return c.mock(city), fmt.Sprintf("Weather service unreachable. Using simulated data for %s.", city)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Weather API returned non-200, simulating",
			zap.String("city", city),
			zap.Int("status", resp.StatusCode))
		return c.mock(city), fmt.Sprintf("Weather API error (%d). Using simulated data for %s.", resp.StatusCode, city)
	}

	var payload liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("Failed to decode weather response, simulating", zap.Error(err))
		return c.mock(city), fmt.Sprintf("Weather data malformed. Using simulated data for %s.", city)
	}

	snapshot := &Snapshot{
		City:      payload.Name,
		Temp:      payload.Main.Temp,
		FeelsLike: payload.Main.FeelsLike,
		Humidity:  payload.Main.Humidity,
		WindSpeed: payload.Wind.Speed,
	}
	if snapshot.City == "" {
		snapshot.City = city
	}
	if len(payload.Weather) > 0 {
		snapshot.Description = payload.Weather[0].Description
		snapshot.Icon = payload.Weather[0].Icon
	}
	return snapshot, ""
}

// mock is the fixed synthesized snapshot used on any live-API failure.
func (c *Client) mock(city string) *Snapshot {
	return &Snapshot{
		City:        city,
		Temp:        28.5,
		FeelsLike:   30.0,
		Humidity:    65,
		WindSpeed:   3.5,
		Description: "Partly Cloudy",
		Icon:        "02d",
		Mock:        true,
	}
}
