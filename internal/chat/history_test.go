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

package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndGet(t *testing.T) {
	h := NewHistory(10, time.Hour)
	h.Append("9876543210", RoleUser, "My cotton leaves are yellowing.")
	h.Append("9876543210", RoleAssistant, "Check for whitefly under the leaves.")

	conv, err := h.Get("9876543210")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, RoleUser, conv.Messages[0].Role)
	assert.Equal(t, RoleAssistant, conv.Messages[1].Role)
}

func TestGetReturnsCopy(t *testing.T) {
	h := NewHistory(10, time.Hour)
	h.Append("9876543210", RoleUser, "original")

	conv, err := h.Get("9876543210")
	require.NoError(t, err)
	conv.Messages[0].Content = "mutated"

	again, err := h.Get("9876543210")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Messages[0].Content,
		"Get should return a copy, stored message must not change")
}

func TestGetUnknownPhone(t *testing.T) {
	h := NewHistory(10, time.Hour)
	_, err := h.Get("0000000000")
	assert.Error(t, err)
}

func TestExpiredConversationReadsAsMissing(t *testing.T) {
	h := NewHistory(10, time.Minute)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return base }

	h.Append("9876543210", RoleUser, "hello")

	h.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err := h.Get("9876543210")
	assert.Error(t, err, "expired conversation should be missing")
	assert.Equal(t, 0, h.Len(), "expired conversation should be removed")
}

func TestLRUEviction(t *testing.T) {
	h := NewHistory(3, time.Hour)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	tick := 0
	h.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i := 0; i < 3; i++ {
		h.Append(fmt.Sprintf("phone-%d", i), RoleUser, "hi")
	}
	// Touch phone-0 so phone-1 becomes the LRU entry.
	_, err := h.Get("phone-0")
	require.NoError(t, err)
	h.Append("phone-0", RoleUser, "again")

	h.Append("phone-3", RoleUser, "new farmer")

	require.Equal(t, 3, h.Len())
	_, err = h.Get("phone-1")
	assert.Error(t, err, "LRU conversation should be evicted")
	_, err = h.Get("phone-0")
	assert.NoError(t, err, "recently used conversation should survive")
}

func TestMessageCap(t *testing.T) {
	h := NewHistory(10, time.Hour)
	for i := 0; i < maxMessagesPerConversation+10; i++ {
		h.Append("9876543210", RoleUser, fmt.Sprintf("msg %d", i))
	}
	conv, err := h.Get("9876543210")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, maxMessagesPerConversation)
	assert.Equal(t, "msg 10", conv.Messages[0].Content, "oldest messages should be dropped")
}

func TestCleanup(t *testing.T) {
	h := NewHistory(10, time.Minute)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return base }

	h.Append("a", RoleUser, "hi")
	h.Append("b", RoleUser, "hi")

	h.now = func() time.Time { return base.Add(30 * time.Second) }
	h.Append("c", RoleUser, "hi")

	h.now = func() time.Time { return base.Add(70 * time.Second) }
	assert.Equal(t, 2, h.Cleanup())
	assert.Equal(t, 1, h.Len())
}
