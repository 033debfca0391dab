package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: `{"title":"a"}`, want: "a"},
		{name: "fenced", input: "```json\n{\"title\":\"b\"}\n```", want: "b"},
		{name: "bare fence", input: "```\n{\"title\":\"c\"}\n```", want: "c"},
		{name: "prose around", input: "Sure! Here it is: {\"title\":\"d\"} Hope it helps.", want: "d"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "garbage", input: "no json here", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := DecodeJSON(tt.input, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Title)
		})
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "<empty>", snippet(" \n "))
	assert.Equal(t, "a b", snippet("a\n\tb"))
	long := snippet(strings.Repeat("x", 500))
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.Len(t, long, 163)
}

func TestTemplatesRender(t *testing.T) {
	out, err := ArticleVariationTemplate.Render(map[string]string{"mood": "Anxious", "focus": "Understanding the Feeling"})
	require.NoError(t, err)
	assert.Contains(t, out, `feeling "Anxious"`)
	assert.Contains(t, out, "Understanding the Feeling")

	_, err = AnalysisTemplate.Render(map[string]string{"other": "x"})
	assert.Error(t, err)
}
