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

// Package i18n holds the localized user-facing strings the API returns
// directly, such as auth errors and greetings. English, Hindi, and Marathi
// are supported; unknown languages and unknown keys fall back gracefully.
package i18n

// DefaultLanguage is used when a profile has no language preference.
const DefaultLanguage = "English"

// SupportedLanguages lists the languages the app localizes for.
var SupportedLanguages = []string{"English", "Hindi", "Marathi"}

// LanguageCode maps a language name to its two-letter code for external
// APIs that expect ISO codes.
func LanguageCode(language string) string {
	switch language {
	case "Hindi":
		return "hi"
	case "Marathi":
		return "mr"
	default:
		return "en"
	}
}

// T looks up a localized string. Unknown languages fall back to English;
// unknown keys return the key itself so a miss is visible but not fatal.
func T(language, key string) string {
	table, ok := translations[language]
	if !ok {
		table = translations[DefaultLanguage]
	}
	if msg, ok := table[key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

var translations = map[string]map[string]string{
	"English": {
		"app_name":       "Farmer Super App",
		"tagline":        "Your smart farming companion",
		"namaste":        "Namaste",
		"welcome_user":   "Welcome, Farmer!",
		"weather_err":    "Weather Unavailable",
		"user_not_found": "User not found. Please Register.",
		"already_reg":    "Phone number already registered. Please Login.",
		"fill_all":       "Please fill all details.",
		"success_create": "Account created! Let's personalize your experience.",
		"bad_login":      "Invalid mobile number or password.",
	},
	"Hindi": {
		"app_name":       "किसान सुपर ऐप",
		"tagline":        "आपका स्मार्ट खेती साथी",
		"namaste":        "नमस्ते",
		"welcome_user":   "स्वागत है, किसान!",
		"weather_err":    "मौसम उपलब्ध नहीं",
		"user_not_found": "उपयोगकर्ता नहीं मिला। कृपया पंजीकरण करें।",
		"already_reg":    "फोन नंबर पहले से पंजीकृत है। कृपया लॉग इन करें।",
		"fill_all":       "कृपया सभी विवरण भरें।",
		"success_create": "खाता बनाया गया! आइए आपके अनुभव को निजीकृत करें।",
		"bad_login":      "अमान्य मोबाइल नंबर या पासवर्ड।",
	},
	"Marathi": {
		"app_name":       "शेतकरी सुपर ॲप",
		"tagline":        "तुमचा स्मार्ट शेती सोबती",
		"namaste":        "नमस्ते",
		"welcome_user":   "स्वागत आहे, शेतकरी!",
		"weather_err":    "हवामान उपलब्ध नाही",
		"user_not_found": "वापरकर्ता सापडला नाही. कृपया नोंदणी करा.",
		"already_reg":    "फोन नंबर आधीच नोंदणीकृत आहे. कृपया लॉग इन करा.",
		"fill_all":       "कृपया सर्व तपशील भरा.",
		"success_create": "खाते तयार झाले! चला तुमचा अनुभव वैयक्तिकृत करूया.",
		"bad_login":      "अवैध मोबाईल नंबर किंवा पासवर्ड.",
	},
}
