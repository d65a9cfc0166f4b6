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

package i18n

import "testing"

func TestTLocalizes(t *testing.T) {
	if got := T("Hindi", "app_name"); got != "किसान सुपर ऐप" {
		t.Errorf("T(Hindi, app_name) = %q", got)
	}
	if got := T("Marathi", "user_not_found"); got != "वापरकर्ता सापडला नाही. कृपया नोंदणी करा." {
		t.Errorf("T(Marathi, user_not_found) = %q", got)
	}
	if got := T("English", "namaste"); got != "Namaste" {
		t.Errorf("T(English, namaste) = %q", got)
	}
}

func TestTUnknownLanguageFallsBack(t *testing.T) {
	if got := T("Tamil", "app_name"); got != "Farmer Super App" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	if got := T("English", "no_such_key"); got != "no_such_key" {
		t.Errorf("expected key echo, got %q", got)
	}
}

func TestAllLanguagesShareKeys(t *testing.T) {
	base := translations[DefaultLanguage]
	for _, lang := range SupportedLanguages {
		for key := range base {
			if _, ok := translations[lang][key]; !ok {
				t.Errorf("language %s missing key %q", lang, key)
			}
		}
	}
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"English", "en"},
		{"Hindi", "hi"},
		{"Marathi", "mr"},
		{"", "en"},
		{"Tamil", "en"},
	}
	for _, tt := range tests {
		if got := LanguageCode(tt.lang); got != tt.want {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}
