package json2table

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bare = "<table class='' style=''>\n"

func TestGetHTMLTable_String(t *testing.T) {
	html, err := GetHTMLTable(`{"name":"Bob","tags":[1,2,3]}`, Options{})
	require.NoError(t, err)

	expected := bare +
		"<tr><th>Name</th>\n<td>Bob</td></tr>\n" +
		"<tr><th>Tags</th>\n<td>1<br/>\n2<br/>\n3<br/>\n</td></tr>\n" +
		"</table>\n"
	assert.Equal(t, expected, html)
}

func TestGetHTMLTable_InputForms(t *testing.T) {
	const text = `[{"a":1,"b":2},{"a":3,"b":4}]`
	want, err := GetHTMLTable(text, Options{})
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))

	inputs := map[string]any{
		"bytes":     []byte(text),
		"reader":    strings.NewReader(text),
		"decoded":   decoded,
		"go values": []map[string]int{{"a": 1, "b": 2}, {"a": 3, "b": 4}},
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := GetHTMLTable(input, Options{})
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestGetHTMLTable_EmptyValues(t *testing.T) {
	for _, input := range []any{"null", "{}", "[]", nil, map[string]any{}, []any{}} {
		html, err := GetHTMLTable(input, Options{})
		require.NoError(t, err)
		assert.Equal(t, "", html, "input %#v", input)
	}
}

func TestGetHTMLTable_InvalidJSON(t *testing.T) {
	html, err := GetHTMLTable(`{"name": }`, Options{})
	require.Error(t, err)
	assert.Empty(t, html)
	assert.True(t, errors.Is(err, ErrInvalidJSON))

	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "parser diagnostic should be kept: %v", err)
}

func TestGetHTMLTable_EmptyText(t *testing.T) {
	_, err := GetHTMLTable("  ", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestGetHTMLTable_MultipleValues(t *testing.T) {
	_, err := GetHTMLTable(`1 2`, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMultipleJSON))
}

func TestGetHTMLTable_DepthExceeded(t *testing.T) {
	deep := strings.Repeat("[", 6) + "1" + strings.Repeat("]", 6)
	_, err := GetHTMLTable(`{"a":{"b":{"c":{"d":{"e":1}}}}}`, Options{MaxDepth: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDepthExceeded))

	_, err = GetHTMLTable(deep, Options{MaxDepth: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDepthExceeded))
}

func TestGetHTMLTable_CyclicGoValue(t *testing.T) {
	cyclic := map[string]any{"name": "loop"}
	cyclic["next"] = cyclic

	_, err := GetHTMLTable(cyclic, Options{MaxDepth: 20})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDepthExceeded))
}

func TestGetHTMLTable_Options(t *testing.T) {
	html, err := GetHTMLTable(`{"user_id":1,"createdAt":"today"}`, Options{
		TableClass:      "table",
		TableStyle:      "width: 100%",
		TableAttributes: "border=1",
		Keys: KeyFormatter{
			Labels: map[string]string{"user_id": "User ID"},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<table class='table' style='width: 100%' border=1>\n"))
	assert.Contains(t, html, "<th>User ID</th>")
	assert.Contains(t, html, "<th>Created At</th>")
}

func TestGetHTMLTable_KeyStyle(t *testing.T) {
	html, err := GetHTMLTable(`{"createdAt":1}`, Options{Keys: KeyFormatter{Style: KeyStyleSnake}})
	require.NoError(t, err)
	assert.Contains(t, html, "<th>created_at</th>")
}

func TestRenderFragment(t *testing.T) {
	frag, err := RenderFragment(`{"a":"</td>"}`, Options{})
	require.NoError(t, err)
	assert.Equal(t, bare+"<tr><th>A</th>\n<td></td></td></tr>\n</table>\n", frag.HTML)

	var closingTD int
	for _, tag := range frag.Tags {
		if tag.Name == "td" && tag.Closing {
			closingTD++
		}
	}
	assert.Equal(t, 1, closingTD)

	_, err = RenderFragment(`[{"a":1},[{"a":1},[{"a":1},1]]]`, Options{MaxDepth: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDepthExceeded))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Foo Bar", Humanize("fooBar"))
	assert.Equal(t, "This Is A Mixed C Ase Line String", Humanize("this_isA_mixedCAse_line-string"))
	assert.Equal(t, "A/B", Humanize("A::B"))
}

func TestUniformKeys(t *testing.T) {
	keys, ok := UniformKeys([]any{
		map[string]any{"a": 1, "b": 2},
		map[string]any{"b": 3, "a": 4},
	})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, keys)

	_, ok = UniformKeys([]any{map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}})
	assert.False(t, ok)

	_, ok = UniformKeys(nil)
	assert.False(t, ok)
}
