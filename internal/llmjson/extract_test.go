package llmjson

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainJSON(t *testing.T) {
	payload, err := Extract(`{"skills": [], "summary": "ok"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"skills": [], "summary": "ok"}`, payload)
}

func TestExtractFencedJSON(t *testing.T) {
	raw := "```json\n{\"name\": \"test\"}\n```"
	payload, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "test"}`, payload)
}

func TestExtractJSONBuriedInProse(t *testing.T) {
	raw := `Here is the analysis you requested:

{"skills": [{"name": "Go"}], "summary": "backend role"}

Let me know if you need anything else!`
	payload, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"skills": [{"name": "Go"}], "summary": "backend role"}`, payload)
}

func TestExtractPreservesPayloadBytes(t *testing.T) {
	// braces inside string values must not confuse the scanner
	inner := `{"summary": "uses {braces} and \"quotes\" inside", "nested": {"a": 1}}`
	payload, err := Extract("noise before " + inner + " noise after")
	require.NoError(t, err)
	assert.Equal(t, inner, payload)
}

func TestExtractIdempotent(t *testing.T) {
	raw := "```json\n{\"a\": {\"b\": 2}}\n```"
	first, err := Extract(raw)
	require.NoError(t, err)
	second, err := Extract(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractRejectsEmptyAndProseOnly(t *testing.T) {
	for _, raw := range []string{"", "   ", "no json here at all", "```\n\n```"} {
		_, err := Extract(raw)
		require.Error(t, err, "input %q", raw)
		var vf *ValidationFailure
		assert.ErrorAs(t, err, &vf)
	}
}

func TestExtractRejectsBrokenJSON(t *testing.T) {
	_, err := Extract(`{"unterminated": `)
	require.Error(t, err)
}

func TestStripFencesWithLanguageTag(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
}

func TestNumberCoercionAndClamping(t *testing.T) {
	json := `{"n": 7, "s": "8.5", "big": 42, "neg": -3, "text": "abc"}`

	assert.Equal(t, 7.0, Number(json, "n", 5, 0, 10))
	assert.Equal(t, 8.5, Number(json, "s", 5, 0, 10), "numeric strings coerce")
	assert.Equal(t, 10.0, Number(json, "big", 5, 0, 10), "clamps to max")
	assert.Equal(t, 0.0, Number(json, "neg", 5, 0, 10), "clamps to min")
	assert.Equal(t, 5.0, Number(json, "text", 5, 0, 10), "non-numeric falls back")
	assert.Equal(t, 5.0, Number(json, "missing", 5, 0, 10))
}

func TestEnum(t *testing.T) {
	json := `{"level": "Senior", "bad": "wizard"}`
	assert.Equal(t, "senior", Enum(json, "level", "mid", "junior", "mid", "senior"))
	assert.Equal(t, "mid", Enum(json, "bad", "mid", "junior", "mid", "senior"))
	assert.Equal(t, "mid", Enum(json, "missing", "mid", "junior", "mid", "senior"))
}

func TestStringListDropsEmptiesAndCaps(t *testing.T) {
	json := `{"items": ["a", "", "  ", "b", "c", "d"]}`
	assert.Equal(t, []string{"a", "b", "c"}, StringList(json, "items", 3))
	assert.Equal(t, []string{"a", "b", "c", "d"}, StringList(json, "items", 0))
}

func TestRequireString(t *testing.T) {
	_, err := RequireString(`{"x": ""}`, "x")
	require.Error(t, err)
	_, err = RequireString(`{}`, "x")
	require.Error(t, err)

	s, err := RequireString(`{"x": "ok"}`, "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
}

func TestRequireArray(t *testing.T) {
	_, err := RequireArray(`{"a": []}`, "a")
	require.Error(t, err)
	_, err = RequireArray(`{"a": "not an array"}`, "a")
	require.Error(t, err)

	v, err := RequireArray(`{"a": [1, 2]}`, "a")
	require.NoError(t, err)
	assert.Len(t, v.Array(), 2)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "короткий", Truncate("короткий", 100))
	assert.Equal(t, "", Truncate("短", 1))
	assert.Equal(t, "短", Truncate("短文", 4))
	assert.Equal(t, "no cap", Truncate("no cap", 0))

	// every prefix of a multi-byte string stays valid UTF-8
	s := "résumé 履歴書"
	for max := 1; max <= len(s); max++ {
		cut := Truncate(s, max)
		assert.True(t, utf8.ValidString(cut), "max=%d produced invalid UTF-8", max)
		assert.LessOrEqual(t, len(cut), max)
	}
}

func TestTextTruncatesAtRuneBoundary(t *testing.T) {
	json := `{"summary": "这是一个测试"}`
	got := Text(json, "summary", 4)
	assert.Equal(t, "这", got)
	assert.True(t, utf8.ValidString(got))
}
