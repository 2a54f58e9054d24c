// Package llmjson extracts and validates JSON payloads embedded in LLM
// responses. Models return valid JSON, JSON wrapped in markdown fences,
// or JSON buried in prose; every parser in this service goes through
// Extract first so that the cleanup lives in exactly one place.
package llmjson

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// ValidationFailure describes why an LLM payload was rejected. It is a
// normal error value so callers can decide their own retry policy.
type ValidationFailure struct {
	Reason string
	Field  string
}

func (v *ValidationFailure) Error() string {
	if v.Field != "" {
		return fmt.Sprintf("validation failed on %q: %s", v.Field, v.Reason)
	}
	return "validation failed: " + v.Reason
}

// Failf builds a ValidationFailure for a specific field.
func Failf(field, format string, args ...any) *ValidationFailure {
	return &ValidationFailure{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StripFences removes a leading ```json (or any language tag) fence and a
// trailing ``` fence, leaving the body untouched.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = s[3:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Extract returns the outermost balanced JSON object span inside text,
// after stripping markdown fences. Surrounding prose is discarded; the
// payload itself comes back byte-for-byte. Returns a ValidationFailure
// when no parseable object exists.
func Extract(text string) (string, error) {
	clean := StripFences(text)
	if clean == "" {
		return "", &ValidationFailure{Reason: "empty response"}
	}

	start := strings.IndexByte(clean, '{')
	if start < 0 {
		return "", &ValidationFailure{Reason: "no JSON object found in response"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(clean); i++ {
		c := clean[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := clean[start : i+1]
				if !gjson.Valid(candidate) {
					return "", &ValidationFailure{Reason: "response contains an unparseable JSON object"}
				}
				return candidate, nil
			}
		}
	}

	// Unbalanced braces: fall back to the last closing brace, which
	// recovers payloads with trailing junk after a truncated string.
	end := strings.LastIndexByte(clean, '}')
	if end > start {
		candidate := clean[start : end+1]
		if gjson.Valid(candidate) {
			return candidate, nil
		}
	}
	return "", &ValidationFailure{Reason: "unbalanced JSON object in response"}
}

// Number reads a numeric field, coercing numeric strings like "7" and
// clamping into [min, max]. Missing or non-numeric values yield def.
func Number(json, path string, def, min, max float64) float64 {
	v := gjson.Get(json, path)
	var n float64
	switch v.Type {
	case gjson.Number:
		n = v.Float()
	case gjson.String:
		parsed := gjson.Parse(v.String())
		if parsed.Type != gjson.Number {
			return def
		}
		n = parsed.Float()
	default:
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Enum reads a string field and lowercases it; values outside allowed
// collapse to def.
func Enum(json, path, def string, allowed ...string) string {
	s := strings.ToLower(strings.TrimSpace(gjson.Get(json, path).String()))
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// Text reads a string field truncated to max bytes.
func Text(json, path string, max int) string {
	return Truncate(gjson.Get(json, path).String(), max)
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 rune.
// A max of 0 or less means no cap.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// StringList reads an array of strings, dropping empties, capped at max
// entries (0 means no cap).
func StringList(json, path string, max int) []string {
	var out []string
	gjson.Get(json, path).ForEach(func(_, v gjson.Result) bool {
		s := strings.TrimSpace(v.String())
		if s != "" {
			out = append(out, s)
		}
		return max <= 0 || len(out) < max
	})
	return out
}

// RequireString reads a required non-empty string field or fails.
func RequireString(json, path string) (string, error) {
	v := gjson.Get(json, path)
	if !v.Exists() {
		return "", Failf(path, "required field is missing")
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return "", Failf(path, "required field is empty")
	}
	return s, nil
}

// RequireArray fails unless path holds a non-empty JSON array.
func RequireArray(json, path string) (gjson.Result, error) {
	v := gjson.Get(json, path)
	if !v.Exists() {
		return v, Failf(path, "required field is missing")
	}
	if !v.IsArray() {
		return v, Failf(path, "expected an array, got %s", v.Type)
	}
	if len(v.Array()) == 0 {
		return v, Failf(path, "required array is empty")
	}
	return v, nil
}
