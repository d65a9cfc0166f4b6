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

package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	// DefaultMaxTokens bounds completion length for advisory answers.
	DefaultMaxTokens = 1024
	// DefaultTemperature keeps agronomic answers mostly deterministic.
	DefaultTemperature = 0.3
)

// OpenAIBackend adapts the chat completion API to the Backend interface.
// Vision-style prompts are sent as multi-content user messages with inline
// base64 image parts.
type OpenAIBackend struct {
	client      *openai.Client
	logger      *zap.Logger
	maxTokens   int
	temperature float32
}

// BackendOption configures an OpenAIBackend.
type BackendOption func(*OpenAIBackend)

// WithMaxTokens overrides the completion token limit. Non-positive values
// keep the default.
func WithMaxTokens(maxTokens int) BackendOption {
	return func(b *OpenAIBackend) {
		if maxTokens > 0 {
			b.maxTokens = maxTokens
		}
	}
}

// WithTemperature overrides the sampling temperature. Negative values keep
// the default.
func WithTemperature(temperature float32) BackendOption {
	return func(b *OpenAIBackend) {
		if temperature >= 0 {
			b.temperature = temperature
		}
	}
}

// NewOpenAIBackend creates a backend for the given API key.
func NewOpenAIBackend(apiKey string, logger *zap.Logger, opts ...BackendOption) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	backend := &OpenAIBackend{
		client:      openai.NewClient(apiKey),
		logger:      logger,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(backend)
	}
	return backend, nil
}

// Generate requests a full completion from the named model.
func (b *OpenAIBackend) Generate(ctx context.Context, model string, content PromptContent) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    b.messages(content),
		MaxTokens:   b.maxTokens,
		Temperature: b.temperature,
	}

	b.logger.Debug("Sending completion request",
		zap.String("model", model),
		zap.Bool("multimodal", !content.IsText()))

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream forwards completion deltas to out as they arrive and reports how
// many fragments were sent before returning.
func (b *OpenAIBackend) Stream(ctx context.Context, model string, content PromptContent, out chan<- string) (int, error) {
	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    b.messages(content),
		MaxTokens:   b.maxTokens,
		Temperature: b.temperature,
		Stream:      true,
	}

	stream, err := b.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("chat completion stream failed: %w", err)
	}
	defer stream.Close()

	sent := 0
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			if sent == 0 {
				return 0, errors.New("stream produced no fragments")
			}
			return sent, nil
		}
		if err != nil {
			return sent, fmt.Errorf("stream receive failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		case out <- delta:
			sent++
		}
	}
}

func (b *OpenAIBackend) messages(content PromptContent) []openai.ChatCompletionMessage {
	if text, ok := content.PlainText(); ok {
		return []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		}
	}

	var multi []openai.ChatMessagePart
	for _, part := range content.Parts() {
		if part.IsImage() {
			encoded := base64.StdEncoding.EncodeToString(part.ImageData)
			multi = append(multi, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", part.ImageMIME, encoded),
				},
			})
			continue
		}
		multi = append(multi, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: part.Text,
		})
	}
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, MultiContent: multi},
	}
}
