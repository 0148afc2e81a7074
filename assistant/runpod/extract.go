package runpod

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Workers disagree on output shape: bare strings, {"text": ...},
// OpenAI-style choices, token lists. extractText walks the known
// shapes and falls back to a string rendering rather than failing.

func extractText(output json.RawMessage) string {
	if len(output) == 0 {
		return ""
	}

	var value any
	if err := json.Unmarshal(output, &value); err != nil {
		return string(output)
	}
	return extractValue(value)
}

func extractValue(value any) string {
	switch v := value.(type) {
	case string:
		return v

	case map[string]any:
		for _, key := range []string{"text", "response", "generated_text", "content"} {
			if inner, ok := v[key]; ok {
				return extractValue(inner)
			}
		}
		if choices, ok := v["choices"].([]any); ok && len(choices) > 0 {
			if text, ok := extractChoice(choices[0]); ok {
				return text
			}
		}
		return fmt.Sprintf("%v", v)

	case []any:
		if text, ok := joinStrings(v); ok {
			return text
		}
		if len(v) > 0 {
			if _, ok := v[0].(map[string]any); ok {
				return extractValue(v[0])
			}
		}
		return fmt.Sprintf("%v", v)

	default:
		return fmt.Sprintf("%v", v)
	}
}

func extractChoice(choice any) (string, bool) {
	m, ok := choice.(map[string]any)
	if !ok {
		return "", false
	}

	if message, ok := m["message"].(map[string]any); ok {
		if content, ok := message["content"].(string); ok {
			return content, true
		}
	}
	if text, ok := m["text"].(string); ok {
		return text, true
	}
	if tokens, ok := m["tokens"].([]any); ok {
		if text, ok := joinStrings(tokens); ok {
			return text, true
		}
	}
	return "", false
}

func joinStrings(items []any) (string, bool) {
	var b strings.Builder
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}
	return b.String(), true
}
