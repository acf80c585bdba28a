package llm

import (
	"testing"

	"github.com/picko-ai/picko/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose around", `Here you go: {"a":1} hope it helps`, `{"a":1}`, true},
		{"nested", `x {"a":{"b":[1,{"c":2}]}} y`, `{"a":{"b":[1,{"c":2}]}}`, true},
		{"first of two", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"brace in string", `{"reason":"uses } and { freely"}`, `{"reason":"uses } and { freely"}`, true},
		{"escaped quote in string", `{"reason":"say \"}\" ok"}`, `{"reason":"say \"}\" ok"}`, true},
		{"escaped backslash before quote", `{"path":"C:\\"} tail}`, `{"path":"C:\\"}`, true},
		{"unclosed then closed", `{ broken {"a":1}`, `{"a":1}`, true},
		{"korean text", `결과: {"keywords":["마케팅"]}`, `{"keywords":["마케팅"]}`, true},
		{"no object", "sorry, I cannot help", "", false},
		{"only opening", `{"a":1`, "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`  {"a":1}  `))
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing quote on first key", `{rank": 1}`, `{"rank": 1}`},
		{"missing quote after comma", `{"rank": 1, tool_number": 3}`, `{"rank": 1, "tool_number": 3}`},
		{"valid json untouched", `{"rank": 1, "ok": true}`, `{"rank": 1, "ok": true}`},
		{"bare literal untouched", `[1, true, false]`, `[1, true, false]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairJSON(tt.input))
		})
	}
}

func TestDecodeObject(t *testing.T) {
	type payload struct {
		Keywords []string `json:"keywords"`
		Rank     int      `json:"rank"`
	}

	tests := []struct {
		name    string
		raw     string
		want    payload
		wantErr error
	}{
		{"valid", `{"keywords": ["a"], "rank": 2}`, payload{Keywords: []string{"a"}, Rank: 2}, nil},
		{"one broken key", `{keywords": ["video"]}`, payload{Keywords: []string{"video"}}, nil},
		{"one broken key fenced", "```json\n{keywords\": [\"video\"]}\n```", payload{Keywords: []string{"video"}}, nil},
		{"two broken keys", `{keywords": ["a"], rank": 3}`, payload{Keywords: []string{"a"}, Rank: 3}, nil},
		{"three broken keys", `{keywords": ["a"], rank": 3, extra": 1}`, payload{Keywords: []string{"a"}, Rank: 3}, nil},
		{"no object", "sorry, I cannot help", payload{}, ai.ErrNoJSON},
		{"unclosed", `{"keywords": ["a"]`, payload{}, ai.ErrNoJSON},
		{"wrong type", `{"rank": "first"}`, payload{}, ai.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := decodeObject(tt.raw, &got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
