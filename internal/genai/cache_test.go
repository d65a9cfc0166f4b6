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
	"sync"
	"testing"
	"time"
)

func TestCacheExpiryIsLazy(t *testing.T) {
	cache := newResponseCache(time.Hour)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	key := cacheKey("model-a", "prompt")
	cache.put(key, "answer")

	if text, ok := cache.get(key); !ok || text != "answer" {
		t.Fatalf("get() = %q, %v; want fresh hit", text, ok)
	}

	current = current.Add(61 * time.Minute)
	if _, ok := cache.get(key); ok {
		t.Error("get() returned an expired entry")
	}
	// The expired entry must have been dropped on read.
	cache.mu.RLock()
	_, still := cache.entries[key]
	cache.mu.RUnlock()
	if still {
		t.Error("expired entry was not removed on read")
	}
}

func TestCacheKeyDistinguishesModelAndPrompt(t *testing.T) {
	a := cacheKey("model-a", "prompt")
	if a != cacheKey("model-a", "prompt") {
		t.Error("cacheKey is not stable for identical inputs")
	}
	if a == cacheKey("model-b", "prompt") {
		t.Error("cacheKey ignores the model id")
	}
	if a == cacheKey("model-a", "other prompt") {
		t.Error("cacheKey ignores the prompt text")
	}
}

func TestCachePruneDropsExpiredAtCapacity(t *testing.T) {
	cache := newResponseCache(time.Hour)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	for i := 0; i < MaxCacheEntries; i++ {
		cache.put(cacheKey("model-a", string(rune('a'+i%26))+time.Duration(i).String()), "answer")
	}
	current = current.Add(61 * time.Minute)
	cache.put(cacheKey("model-a", "fresh"), "answer")

	cache.mu.RLock()
	size := len(cache.entries)
	cache.mu.RUnlock()
	if size != 1 {
		t.Errorf("cache holds %d entries after prune, want 1", size)
	}
}

func TestCacheStaysBoundedWhenNothingExpired(t *testing.T) {
	cache := newResponseCache(time.Hour)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	for i := 0; i < MaxCacheEntries+50; i++ {
		// Advance a second per insert so every entry is live but the
		// eviction order is deterministic.
		current = current.Add(time.Second)
		cache.put(cacheKey("model-a", time.Duration(i).String()), "answer")
	}

	cache.mu.RLock()
	size := len(cache.entries)
	cache.mu.RUnlock()
	if size > MaxCacheEntries {
		t.Errorf("cache grew to %d entries, want at most %d", size, MaxCacheEntries)
	}

	// The latest insert must survive; the earliest must be gone.
	if _, ok := cache.get(cacheKey("model-a", time.Duration(MaxCacheEntries+49).String())); !ok {
		t.Error("most recent entry was evicted")
	}
	if _, ok := cache.get(cacheKey("model-a", time.Duration(0).String())); ok {
		t.Error("oldest entry survived eviction")
	}
}

func TestCacheConcurrentInsertIsSafe(t *testing.T) {
	cache := newResponseCache(time.Hour)
	key := cacheKey("model-a", "prompt")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.put(key, "answer")
			cache.get(key)
		}()
	}
	wg.Wait()

	if text, ok := cache.get(key); !ok || text != "answer" {
		t.Errorf("get() after concurrent writes = %q, %v", text, ok)
	}
}
