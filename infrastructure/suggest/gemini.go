// Package suggest implements the field suggestion client: it asks a
// hosted text-generation model for field names relevant to a form title.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"formforge-backend/application/ports"
	pkgerrors "formforge-backend/pkg/errors"
)

const defaultModel = "gemini-2.0-flash"

const promptTemplate = `You are an AI assistant that suggests relevant form fields based on the title of the form.

Form Title: %s

Based on the form title, suggest form fields that would be relevant to include in the form. Return them as a JSON array of strings.
Example: ["First Name", "Last Name", "Email", "Phone Number"]
Ensure that the form fields are relevant to the form title.
Do not include any explanation, only the JSON array.`

// GeminiSuggester implements ports.Suggester against the Gemini API
type GeminiSuggester struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiSuggester creates a suggestion client. An empty model selects
// the default.
func NewGeminiSuggester(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("suggestion API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiSuggester{client: client, model: model, logger: logger}, nil
}

var _ ports.Suggester = (*GeminiSuggester)(nil)

// SuggestFields returns field name suggestions for the given title.
// A response in any shape other than a JSON array of strings yields no
// suggestions rather than an error; only transport failures are errors.
func (s *GeminiSuggester) SuggestFields(ctx context.Context, formTitle string) ([]string, error) {
	if strings.TrimSpace(formTitle) == "" {
		return nil, pkgerrors.NewValidationError("form title is required for suggestions")
	}

	prompt := fmt.Sprintf(promptTemplate, formTitle)
	result, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, pkgerrors.NewExternalError("suggestions", err)
	}

	fields := ParseSuggestions(result.Text())
	s.logger.Debug("field suggestions received",
		zap.String("formTitle", formTitle),
		zap.Int("count", len(fields)),
	)
	return fields, nil
}

// ParseSuggestions extracts field names from a model response. The service
// is expected to return a JSON array of plain strings; markdown code fences
// are tolerated, anything else is treated as "no suggestions".
func ParseSuggestions(raw string) []string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var fields []string
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil
	}

	out := fields[:0]
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
