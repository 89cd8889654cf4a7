package tools

import (
	"encoding/json"
)

// Tool arguments arrive as map[string]any decoded from JSON, so numbers are
// float64. Helpers coerce with per-parameter defaults.

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		if int(v) > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return fallback
}

func boolArg(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func mustMarshal(v interface{}) []byte {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return b
}

// errorPayload shapes a fault into the data-level JSON error object the
// Reddit tools return instead of raising.
func errorPayload(msg string) string {
	return string(mustMarshal(map[string]string{"error": msg}))
}
