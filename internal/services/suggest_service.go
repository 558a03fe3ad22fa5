package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/careerpilot/autofill-backend/internal/engine"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type SuggestService struct {
	Client llms.Model
}

// NewSuggestService initializes the Gemini client once so we don't recreate
// it per request.
func NewSuggestService(apiKey string) *SuggestService {
	if apiKey == "" {
		log.Fatal("CRITICAL ERROR: GEMINI_API_KEY is empty. Did you load the .env file?")
	}

	ctx := context.Background()
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}

	return &SuggestService{
		Client: llm,
	}
}

const mappingSuggestionPrompt = `
You are an expert Form Field Mapping Agent. Your task is to analyze the raw HTML of a job application form and map its input fields to a fixed set of profile field keys.

### INSTRUCTIONS:
1. **Find** every fillable input, select and textarea in the form.
2. **Identify** each one by its most stable identifier: id first, then name, then placeholder.
3. **Map** each identifier to exactly one of the allowed profile keys below. Skip fields that match none of them.
4. **Format** the output as a single valid JSON object of "identifier": "profile_key" pairs. Do not wrap the output in markdown code blocks.

### ALLOWED PROFILE KEYS:
%s

### CONSTRAINT:
Only use identifiers that actually appear in the HTML. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// SuggestFieldMappings asks the LLM to propose field_mappings for a site's
// form. Suggestions are returned for user review, never persisted here, so
// a hallucinated mapping can't silently poison the registry.
func (s *SuggestService) SuggestFieldMappings(ctx context.Context, rawHTML string) (map[string]string, error) {
	if len(rawHTML) > 20000 {
		rawHTML = rawHTML[:20000]
	}

	prompt := fmt.Sprintf(mappingSuggestionPrompt, strings.Join(engine.CanonicalKeys(), ", "), rawHTML)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, err
	}

	// Models still sometimes fence the JSON despite the instructions
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")

	var raw map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp)), &raw); err != nil {
		return nil, fmt.Errorf("could not parse mapping suggestion: %w", err)
	}

	// Keep only mappings onto keys the engine actually knows
	known := map[string]bool{}
	for _, key := range engine.CanonicalKeys() {
		known[key] = true
	}
	suggestions := map[string]string{}
	for identifier, key := range raw {
		if known[key] {
			suggestions[identifier] = key
		}
	}
	return suggestions, nil
}
