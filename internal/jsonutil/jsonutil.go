// Package jsonutil provides helpers for loosely typed JSON: decoding with
// context, and lenient field extraction from generic maps where a missing or
// malformed value degrades to a zero value instead of an error.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// GetString extracts a string value from m.
// Numbers are formatted; anything else yields "".
func GetString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// GetStringOr is GetString with a default for missing or empty values.
func GetStringOr(m map[string]any, key, defaultValue string) string {
	if s := GetString(m, key); s != "" {
		return s
	}
	return defaultValue
}

// GetDecimal extracts a decimal from m. Price APIs commonly encode numbers
// as strings; both forms are accepted. Missing, null or unparsable values
// yield zero.
func GetDecimal(m map[string]any, key string) decimal.Decimal {
	switch v := m[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	default:
		return decimal.Zero
	}
}

// GetInt extracts an integer from m, accepting numeric strings.
// Missing or unparsable values yield zero.
func GetInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Objects converts a decoded JSON value into a slice of objects.
// A single object is returned as a one-element slice; non-object elements
// of an array are skipped.
func Objects(v any) ([]map[string]any, error) {
	switch val := v.(type) {
	case map[string]any:
		return []map[string]any{val}, nil
	case []any:
		out := make([]map[string]any, 0, len(val))
		for _, item := range val {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("expected JSON array or object, got null")
	default:
		return nil, fmt.Errorf("expected JSON array or object, got %T", v)
	}
}

// First returns the first element if v is a non-empty array, v itself
// otherwise. JSONPath queries may yield either a list or a single value.
func First(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}
