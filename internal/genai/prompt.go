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

import "fmt"

// Part is a single element of a multimodal prompt: either a piece of text
// or an opaque image payload.
type Part struct {
	Text      string
	ImageMIME string
	ImageData []byte
}

// TextPart creates a text prompt part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart creates an image prompt part from raw bytes and a MIME type.
func ImagePart(mime string, data []byte) Part {
	return Part{ImageMIME: mime, ImageData: data}
}

// IsImage reports whether the part carries an image payload.
func (p Part) IsImage() bool {
	return len(p.ImageData) > 0
}

// PromptContent is a tagged variant: either a single plain-text prompt or an
// ordered list of multimodal parts. Construct with Text or Multipart; the
// zero value is an empty text prompt.
type PromptContent struct {
	text      string
	parts     []Part
	multipart bool
}

// Text builds a plain-text prompt.
func Text(text string) PromptContent {
	return PromptContent{text: text}
}

// Multipart builds a multimodal prompt from ordered parts.
func Multipart(parts ...Part) PromptContent {
	copied := make([]Part, len(parts))
	copy(copied, parts)
	return PromptContent{parts: copied, multipart: true}
}

// IsText reports whether the content is a single plain-text prompt.
func (c PromptContent) IsText() bool {
	return !c.multipart
}

// PlainText returns the prompt text and true when the content is plain text.
func (c PromptContent) PlainText() (string, bool) {
	if c.multipart {
		return "", false
	}
	return c.text, true
}

// Parts returns the ordered prompt parts. A plain-text prompt is returned as
// a single text part.
func (c PromptContent) Parts() []Part {
	if !c.multipart {
		return []Part{{Text: c.text}}
	}
	copied := make([]Part, len(c.parts))
	copy(copied, c.parts)
	return copied
}

// withInstruction returns a copy of the content with an extra instruction
// appended as a trailing text element.
func (c PromptContent) withInstruction(instruction string) PromptContent {
	if instruction == "" {
		return c
	}
	if !c.multipart {
		return Text(c.text + "\n\n" + instruction)
	}
	parts := c.Parts()
	return Multipart(append(parts, TextPart(instruction))...)
}

// Request is an immutable generation request: prompt content, the natural
// language the response must be written in, and an optional cache key hint.
type Request struct {
	Content  PromptContent
	Language string
}

// languageInstruction is appended to every prompt before dispatch so the
// backend answers in the farmer's language.
func languageInstruction(language string) string {
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf("IMPORTANT: PROVIDE THE RESPONSE IN %s LANGUAGE.", language)
}

// Result is the outcome of a generation call. Err is never exposed: a total
// failure degrades to a localized fallback message with Fallback set.
type Result struct {
	Text     string
	Model    string
	Fallback bool
}
