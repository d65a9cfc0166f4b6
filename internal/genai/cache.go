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
	"crypto/md5" // #nosec G501 - MD5 used only for cache key generation, not security
	"encoding/hex"
	"sync"
	"time"
)

const (
	// DefaultCacheTTL is how long a cached response stays valid.
	DefaultCacheTTL = time.Hour
	// MaxCacheEntries caps the cache size before stale entries are pruned.
	MaxCacheEntries = 500
)

type cacheEntry struct {
	text      string
	expiresAt time.Time
}

// responseCache is a time-bounded key->response map with lazy expiry on read.
// Concurrent insertion is last-writer-wins, which is acceptable because the
// cached value is idempotent for a given key.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey derives the cache key from the top-ranked model and the prompt
// text. Only single plain-text prompts are cacheable.
func cacheKey(model, prompt string) string {
	sum := md5.Sum([]byte(model + "|" + prompt)) // #nosec G401
	return hex.EncodeToString(sum[:])
}

func (c *responseCache) get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have refreshed it.
		if current, still := c.entries[key]; still && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false
	}
	return entry.text, true
}

func (c *responseCache) put(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= MaxCacheEntries {
		now := c.now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		// Nothing expired within the TTL window; evict the entry closest
		// to expiry so the cache stays bounded.
		if len(c.entries) >= MaxCacheEntries {
			c.evictSoonest()
		}
	}
	c.entries[key] = cacheEntry{text: text, expiresAt: c.now().Add(c.ttl)}
}

// evictSoonest removes the live entry with the earliest expiry. Caller holds
// the write lock.
func (c *responseCache) evictSoonest() {
	var victim string
	var earliest time.Time
	for k, e := range c.entries {
		if victim == "" || e.expiresAt.Before(earliest) {
			victim = k
			earliest = e.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}
