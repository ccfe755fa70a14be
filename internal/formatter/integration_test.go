package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/json2table/internal/parser"
	"github.com/mcncl/json2table/internal/renderer"
)

func TestIntegration_ParserRendererFormatter(t *testing.T) {
	// Parser -> Renderer -> Formatter
	jsonInput := `{
		"user_id": 123,
		"username": "johndoe",
		"is_active": true,
		"profile": {
			"full_name": "John Doe",
			"email": "john.doe@example.com"
		},
		"roles": [
			{"name": "admin", "scope": "all"},
			{"name": "editor", "scope": "posts"}
		]
	}`

	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	frag, err := renderer.New(renderer.Options{TableClass: "data"}).RenderFragment(doc.Root, 0)
	require.NoError(t, err)

	formatted, err := NewFormatter().Format(frag)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(formatted, "<table class='data' style=''>\n  <tr>\n    <th>\n      User Id\n"))
	assert.Contains(t, formatted, "      john.doe@example.com\n")
	assert.Contains(t, formatted, "          <th>\n            Scope\n          </th>\n")
	assert.True(t, strings.HasSuffix(formatted, "</table>\n"))

	// Formatting only moves whitespace around.
	squash := func(s string) string { return strings.Join(strings.Fields(s), "") }
	assert.Equal(t, squash(frag.HTML), squash(formatted))
}
