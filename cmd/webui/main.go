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

// Package main runs the Farmer Super App web service: AI advisory, mandi
// prices, weather, and the farmer account flows behind a single HTTP API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/your-org/farmer-super-app/internal/advisor"
	"github.com/your-org/farmer-super-app/internal/chat"
	"github.com/your-org/farmer-super-app/internal/config"
	"github.com/your-org/farmer-super-app/internal/extract"
	"github.com/your-org/farmer-super-app/internal/genai"
	"github.com/your-org/farmer-super-app/internal/market"
	"github.com/your-org/farmer-super-app/internal/userstore"
	"github.com/your-org/farmer-super-app/internal/weather"
)

func main() {
	var (
		configPath string
		port       int
	)

	rootCmd := &cobra.Command{
		Use:   "webui",
		Short: "Farmer Super App web service",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath, port)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVar(&port, "port", 0, "Override the configured HTTP port")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, portOverride int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	backend, err := genai.NewOpenAIBackend(cfg.OpenAI.APIKey, logger,
		genai.WithMaxTokens(cfg.OpenAI.MaxTokens),
		genai.WithTemperature(float32(cfg.OpenAI.Temperature)))
	if err != nil {
		return fmt.Errorf("failed to create generation backend: %w", err)
	}

	policy := genai.DefaultRetryPolicy(cfg.OpenAI.Models)
	policy.BaseDelay = time.Duration(cfg.Generation.BaseDelaySeconds) * time.Second
	policy.StepDelay = time.Duration(cfg.Generation.StepDelaySeconds) * time.Second
	policy.RateLimitDelay = time.Duration(cfg.Generation.RateLimitWaitSecs) * time.Second
	policy.MaxJitter = time.Duration(cfg.Generation.MaxJitterSeconds) * time.Second

	gateway := genai.New(backend, policy, logger, genai.WithCache(cfg.Generation.CacheTTL))

	users, err := userstore.New(userstore.Config{
		StorageType: cfg.UserDB.StorageType,
		FilePath:    cfg.UserDB.FilePath,
		DBPath:      cfg.UserDB.DBPath,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	defer func() { _ = users.Close() }()

	server := &Server{
		cfg:     cfg,
		logger:  logger,
		gateway: gateway,
		extract: extract.NewService(gateway, logger),
		advisor: advisor.NewService(gateway, logger),
		market:  market.NewClient(cfg.Market.APIKey, cfg.Market.BaseURL, logger),
		weather: weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, logger),
		users:   users,
		history: chat.NewHistory(cfg.Chat.MaxConversations, cfg.Chat.TTL),
	}

	port := cfg.Server.Port
	if portOverride > 0 {
		port = portOverride
	}

	logger.Info("Starting Farmer Super App web service",
		zap.Int("port", port),
		zap.Strings("models", cfg.OpenAI.Models),
		zap.Bool("live_weather", cfg.Weather.APIKey != ""),
		zap.Bool("live_market", cfg.Market.APIKey != ""))

	return server.Run(fmt.Sprintf(":%d", port))
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "text" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}
