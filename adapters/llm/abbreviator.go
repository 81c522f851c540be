// Package llm implements the abbreviation collaborator over an OpenAI
// chat completions client.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gowrangle/ports"
)

// Config holds LLM adapter configuration
type Config struct {
	Model       string        // e.g., "gpt-4.1-mini"
	APIKey      string        // OpenAI API key
	BaseURL     string        // Optional override (default: https://api.openai.com/v1)
	Temperature float64       // 0.0-1.0, lower = more deterministic
	MaxTokens   int           // Max tokens in response
	Timeout     time.Duration // Request timeout
}

// Abbreviator implements ports.AbbreviatorPort using an LLM
type Abbreviator struct {
	config    Config
	llmClient LLMClient
}

// NewAbbreviator creates an LLM-backed abbreviator
func NewAbbreviator(config Config) (*Abbreviator, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &Abbreviator{config: config, llmClient: client}, nil
}

// NewAbbreviatorWithClient wires an explicit client; tests and offline
// runs pass MockLLMClient here.
func NewAbbreviatorWithClient(config Config, client LLMClient) *Abbreviator {
	return &Abbreviator{config: config, llmClient: client}
}

// AbbreviateBatch sends one batch of long names and parses the
// index-keyed JSON response. The returned map is keyed by absolute
// column index; a malformed or non-JSON response fails the whole batch.
func (a *Abbreviator) AbbreviateBatch(ctx context.Context, batch ports.AbbreviationBatch) (map[int]string, error) {
	if len(batch.LongNames) == 0 {
		return map[int]string{}, nil
	}

	prompt := buildPrompt(batch)
	log.Printf("[Abbreviator] Requesting %d abbreviations (columns %d-%d)",
		len(batch.LongNames), batch.StartIndex, batch.StartIndex+len(batch.LongNames)-1)

	content, err := a.llmClient.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("abbreviation call failed: %w", err)
	}

	return parseAbbreviations(content)
}

// buildPrompt lists each long name with its absolute column index and
// asks for an index-keyed JSON object back
func buildPrompt(batch ports.AbbreviationBatch) string {
	var list strings.Builder
	for i, name := range batch.LongNames {
		fmt.Fprintf(&list, "%d: %s\n", batch.StartIndex+i, name)
	}

	return fmt.Sprintf(`You are abbreviating survey column headers to make them concise and readable.

For each header below, create a short, clear column name that captures the essential meaning.
Rules:
- Use snake_case format (lowercase with underscores)
- Maximum 30 characters
- Preserve key information but remove redundancy
- For matrix questions, focus on the specific aspect being measured
- Make names unique and descriptive

Headers to abbreviate:
%s
Return ONLY a JSON object with the format:
{
  "%d": "abbreviated_name_1",
  "%d": "abbreviated_name_2",
  ...
}

Use the original column numbers shown above as keys.`,
		list.String(), batch.StartIndex, batch.StartIndex+1)
}

// parseAbbreviations cleans and decodes the index-keyed response
func parseAbbreviations(content string) (map[int]string, error) {
	cleaned := cleanJSONContent(content)

	raw := make(map[string]string)
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("response is not an index-keyed JSON object: %w", err)
	}

	result := make(map[int]string, len(raw))
	for key, name := range raw {
		col, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			log.Printf("[Abbreviator] Skipping non-integer response key %q", key)
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		result[col] = name
	}
	return result, nil
}

// cleanJSONContent strips markdown code fences and leading chatter so
// the JSON object survives models that wrap their output
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop chatter lines that precede the JSON object
	if idx := strings.Index(content, "{"); idx > 0 {
		prefix := content[:idx]
		if !strings.Contains(prefix, "}") {
			content = content[idx:]
		}
	}

	return strings.TrimSpace(content)
}
