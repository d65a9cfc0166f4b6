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

import "testing"

func TestNewOpenAIBackendRequiresKey(t *testing.T) {
	if _, err := NewOpenAIBackend("", nil); err == nil {
		t.Fatal("expected an error for an empty API key")
	}
}

func TestNewOpenAIBackendDefaults(t *testing.T) {
	backend, err := NewOpenAIBackend("test-key", nil)
	if err != nil {
		t.Fatalf("NewOpenAIBackend() error = %v", err)
	}
	if backend.maxTokens != DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want %d", backend.maxTokens, DefaultMaxTokens)
	}
	if backend.temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", backend.temperature, DefaultTemperature)
	}
}

func TestNewOpenAIBackendOptions(t *testing.T) {
	backend, err := NewOpenAIBackend("test-key", nil,
		WithMaxTokens(2000),
		WithTemperature(0.7))
	if err != nil {
		t.Fatalf("NewOpenAIBackend() error = %v", err)
	}
	if backend.maxTokens != 2000 {
		t.Errorf("maxTokens = %d, want 2000", backend.maxTokens)
	}
	if backend.temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", backend.temperature)
	}
}

func TestNewOpenAIBackendOptionsKeepDefaultsOnZeroValues(t *testing.T) {
	backend, err := NewOpenAIBackend("test-key", nil,
		WithMaxTokens(0),
		WithTemperature(-1))
	if err != nil {
		t.Fatalf("NewOpenAIBackend() error = %v", err)
	}
	if backend.maxTokens != DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want default %d", backend.maxTokens, DefaultMaxTokens)
	}
	if backend.temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want default %v", backend.temperature, DefaultTemperature)
	}
}
