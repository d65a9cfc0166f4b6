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

// Package genai provides the generation gateway: a failure-absorbing front
// over a ranked list of generative model backends with backoff, cross-model
// fallback, an optional response cache, and a token-streaming mode.
package genai

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Backend is a single generative model provider addressed by model name.
type Backend interface {
	// Generate returns the full completion text for the prompt. Empty text
	// must be reported as an error.
	Generate(ctx context.Context, model string, content PromptContent) (string, error)
	// Stream forwards completion fragments to out as they arrive. It must not
	// close out. An error before the first fragment means the candidate never
	// worked; an error after that is a truncated stream.
	Stream(ctx context.Context, model string, content PromptContent, out chan<- string) (int, error)
}

// RetryPolicy is an ordered candidate list plus the backoff schedule applied
// between candidates. The delays are deliberate rate-limit avoidance, not a
// correctness requirement.
type RetryPolicy struct {
	Models         []string
	BaseDelay      time.Duration
	StepDelay      time.Duration
	MaxJitter      time.Duration
	RateLimitDelay time.Duration
}

// DefaultRetryPolicy mirrors the production candidate ranking.
func DefaultRetryPolicy(models []string) RetryPolicy {
	if len(models) == 0 {
		models = []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"}
	}
	return RetryPolicy{
		Models:         models,
		BaseDelay:      time.Second,
		StepDelay:      2 * time.Second,
		MaxJitter:      time.Second,
		RateLimitDelay: 5 * time.Second,
	}
}

// delay returns the sleep applied before trying candidate at position
// attempt. The first candidate is tried immediately.
func (p RetryPolicy) delay(attempt int, jitter time.Duration) time.Duration {
	if attempt == 0 {
		return 0
	}
	return p.BaseDelay + time.Duration(attempt)*p.StepDelay + jitter
}

// fallbackMessages carries the static localized advice shown when every
// candidate fails. The dependent pages stay responsive instead of surfacing a
// transport error to the farmer.
var fallbackMessages = map[string]string{
	"English": "The AI service is experiencing high traffic. Please try again in a minute.\n\n" +
		"General advice: check soil moisture, ensure proper drainage, and apply a balanced fertilizer dose.",
	"Hindi": "एआई सेवा पर अभी अधिक लोड है। कृपया एक मिनट बाद पुनः प्रयास करें।\n\n" +
		"सामान्य सलाह: मिट्टी की नमी जांचें, उचित जल निकासी सुनिश्चित करें और संतुलित उर्वरक डालें।",
	"Marathi": "एआय सेवेवर सध्या जास्त लोड आहे. कृपया एका मिनिटाने पुन्हा प्रयत्न करा.\n\n" +
		"सामान्य सल्ला: जमिनीतील ओलावा तपासा, पाण्याचा योग्य निचरा होईल याची खात्री करा आणि संतुलित खत द्या.",
}

// FallbackMessage returns the fixed localized fallback text for a language.
// Unknown languages fall back to English.
func FallbackMessage(language string) string {
	if msg, ok := fallbackMessages[language]; ok {
		return msg
	}
	return fallbackMessages["English"]
}

// Gateway tries ranked model candidates in order until one returns text.
// Calls are synchronous; the only shared mutable state is the optional cache.
type Gateway struct {
	backend Backend
	policy  RetryPolicy
	cache   *responseCache
	logger  *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	// sleep is swappable so tests can observe delays instead of waiting.
	sleep func(ctx context.Context, d time.Duration)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache enables the single-layer response cache with the given TTL.
func WithCache(ttl time.Duration) Option {
	return func(g *Gateway) { g.cache = newResponseCache(ttl) }
}

// New creates a gateway over the backend with the given retry policy.
func New(backend Backend, policy RetryPolicy, logger *zap.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		backend: backend,
		policy:  policy,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 - jitter only
		sleep: func(ctx context.Context, d time.Duration) {
			if d <= 0 {
				return
			}
			select {
			case <-ctx.Done():
			case <-time.After(d):
			}
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate obtains a response for the request. It never returns an error:
// total failure degrades to the localized fallback message.
func (g *Gateway) Generate(ctx context.Context, req Request) Result {
	key, cacheable := g.requestCacheKey(req)
	if cacheable {
		if text, ok := g.cache.get(key); ok {
			g.logger.Debug("Generation cache hit", zap.String("model", g.policy.Models[0]))
			return Result{Text: text, Model: g.policy.Models[0]}
		}
	}

	content := req.Content.withInstruction(languageInstruction(req.Language))

	var lastErr error
	for attempt, model := range g.policy.Models {
		g.sleep(ctx, g.policy.delay(attempt, g.jitter()))

		text, err := g.backend.Generate(ctx, model, content)
		if err == nil && strings.TrimSpace(text) != "" {
			if attempt > 0 {
				g.logger.Info("Generation succeeded after fallback",
					zap.String("model", model),
					zap.Int("attempt", attempt+1))
			}
			if cacheable {
				g.cache.put(key, text)
			}
			return Result{Text: text, Model: model}
		}
		if err == nil {
			err = errors.New("backend returned empty text")
		}
		lastErr = err
		g.logger.Warn("Generation candidate failed",
			zap.String("model", model),
			zap.Error(err))
		if isRateLimited(err) {
			g.logger.Warn("Rate limit signalled, extending backoff",
				zap.String("model", model),
				zap.Duration("extra_delay", g.policy.RateLimitDelay))
			g.sleep(ctx, g.policy.RateLimitDelay)
		}
	}

	g.logger.Error("All generation candidates exhausted", zap.Error(lastErr))
	return Result{Text: FallbackMessage(req.Language), Fallback: true}
}

// GenerateStream returns a channel of text fragments for the request. The
// channel is always closed, and the concatenated fragments equal what a
// non-streaming call would have produced. If no candidate streams, the
// fallback message is yielded word-by-word to keep the interface uniform.
func (g *Gateway) GenerateStream(ctx context.Context, req Request) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		content := req.Content.withInstruction(languageInstruction(req.Language))
		for attempt, model := range g.policy.Models {
			g.sleep(ctx, g.policy.delay(attempt, g.jitter()))

			sent, err := g.backend.Stream(ctx, model, content, out)
			if err == nil {
				return
			}
			if sent > 0 {
				// Fragments already reached the caller; a retry would repeat them.
				g.logger.Warn("Stream truncated mid-response",
					zap.String("model", model),
					zap.Int("fragments_sent", sent),
					zap.Error(err))
				return
			}
			g.logger.Warn("Streaming candidate failed",
				zap.String("model", model),
				zap.Error(err))
			if isRateLimited(err) {
				g.sleep(ctx, g.policy.RateLimitDelay)
			}
		}

		for _, word := range strings.SplitAfter(FallbackMessage(req.Language), " ") {
			select {
			case <-ctx.Done():
				return
			case out <- word:
			}
		}
	}()
	return out
}

func (g *Gateway) requestCacheKey(req Request) (string, bool) {
	if g.cache == nil || len(g.policy.Models) == 0 {
		return "", false
	}
	prompt, ok := req.Content.PlainText()
	if !ok {
		return "", false
	}
	return cacheKey(g.policy.Models[0], prompt), true
}

func (g *Gateway) jitter() time.Duration {
	if g.policy.MaxJitter <= 0 {
		return 0
	}
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return time.Duration(g.rng.Int63n(int64(g.policy.MaxJitter)))
}

// isRateLimited checks for a quota signal. The structured API error status is
// authoritative; substring matching is kept only as a last resort for opaque
// transport errors.
func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate limit")
}
