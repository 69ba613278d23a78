package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"header", "footer", "form", "plan", "lines"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestFormKeepsValues(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "form", map[string]any{
		"Title":   "AI Fitness Coach",
		"Profile": map[string]string{"Name": "Ana", "Goal": "muscle_gain"},
		"Options": map[string][]string{"Goal": {"weight_loss", "muscle_gain"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `value="Ana"`)
	assert.Contains(t, out, `<option value="muscle_gain" selected>Muscle gain</option>`)
}

func TestTitle(t *testing.T) {
	title := funcMap["title"].(func(string) string)
	assert.Equal(t, "Non vegetarian", title("non_vegetarian"))
	assert.Equal(t, "", title(""))
}
