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

// Package chat keeps per-farmer conversation history for the AI expert page.
// History lives in memory with TTL expiry and LRU eviction; losing it on
// restart is acceptable.
package chat

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an idle conversation survives.
	DefaultTTL = 24 * time.Hour
	// DefaultMaxConversations caps memory across all farmers.
	DefaultMaxConversations = 1000
	// maxMessagesPerConversation bounds a single chat thread.
	maxMessagesPerConversation = 100
)

// Role identifies who wrote a message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a farmer's chat thread, keyed by phone number.
type Conversation struct {
	Phone     string    `json:"phone"`
	Messages  []Message `json:"messages"`
	ExpiresAt time.Time `json:"expires_at"`
}

// History stores conversations in memory with LRU eviction.
type History struct {
	conversations map[string]*Conversation
	accessTime    map[string]time.Time
	maxEntries    int
	ttl           time.Duration
	mu            sync.RWMutex
	now           func() time.Time
}

// NewHistory creates an in-memory history. Zero values pick the defaults.
func NewHistory(maxEntries int, ttl time.Duration) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxConversations
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &History{
		conversations: make(map[string]*Conversation),
		accessTime:    make(map[string]time.Time),
		maxEntries:    maxEntries,
		ttl:           ttl,
		now:           time.Now,
	}
}

// Append adds a message to a farmer's conversation, creating the thread if
// needed. Old messages are dropped from the front once the thread is full.
func (h *History) Append(phone, role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conv, exists := h.conversations[phone]
	if !exists {
		if len(h.conversations) >= h.maxEntries {
			h.evictOldest()
		}
		conv = &Conversation{Phone: phone}
		h.conversations[phone] = conv
	}

	conv.Messages = append(conv.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: h.now(),
	})
	if len(conv.Messages) > maxMessagesPerConversation {
		conv.Messages = conv.Messages[len(conv.Messages)-maxMessagesPerConversation:]
	}
	conv.ExpiresAt = h.now().Add(h.ttl)
	h.accessTime[phone] = h.now()
}

// Get returns a copy of a farmer's conversation. Expired threads read as
// missing and are removed.
func (h *History) Get(phone string) (*Conversation, error) {
	h.mu.RLock()
	conv, exists := h.conversations[phone]
	if exists && conv.ExpiresAt.After(h.now()) {
		convCopy := *conv
		convCopy.Messages = make([]Message, len(conv.Messages))
		copy(convCopy.Messages, conv.Messages)
		h.mu.RUnlock()
		return &convCopy, nil
	}
	h.mu.RUnlock()

	if exists {
		h.mu.Lock()
		if conv, ok := h.conversations[phone]; ok && !conv.ExpiresAt.After(h.now()) {
			delete(h.conversations, phone)
			delete(h.accessTime, phone)
		}
		h.mu.Unlock()
	}
	return nil, fmt.Errorf("no conversation for %s", phone)
}

// Clear removes a farmer's conversation.
func (h *History) Clear(phone string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conversations, phone)
	delete(h.accessTime, phone)
}

// Cleanup removes expired conversations and returns how many were dropped.
func (h *History) Cleanup() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	removed := 0
	for phone, conv := range h.conversations {
		if !conv.ExpiresAt.After(now) {
			delete(h.conversations, phone)
			delete(h.accessTime, phone)
			removed++
		}
	}
	return removed
}

// Len reports how many conversations are held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conversations)
}

// evictOldest drops the least recently touched conversation. Caller holds
// the write lock.
func (h *History) evictOldest() {
	var oldestPhone string
	var oldestTime time.Time
	for phone, at := range h.accessTime {
		if oldestPhone == "" || at.Before(oldestTime) {
			oldestPhone = phone
			oldestTime = at
		}
	}
	if oldestPhone != "" {
		delete(h.conversations, oldestPhone)
		delete(h.accessTime, oldestPhone)
	}
}
