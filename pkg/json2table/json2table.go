// Package json2table renders JSON documents as nested HTML tables.
//
// Objects become two-column key/value tables, arrays of objects that share
// one key set become a single table with a header row, other arrays of
// objects become a run of tables, and arrays of scalars become line-broken
// lists inside a cell. Keys are humanized into header labels by default
// ("createdAt" becomes "Created At").
//
// # Safety
//
// Nothing is HTML-escaped. Keys, values and the table option strings are
// copied into the output verbatim, so only render trusted data or sanitize
// it before rendering.
//
// # Example
//
//	html, err := json2table.GetHTMLTable(`{"name":"Bob","tags":[1,2,3]}`, json2table.Options{
//	    TableClass: "table",
//	})
package json2table

import (
	"io"

	"github.com/mcncl/json2table/internal/analyzer"
	"github.com/mcncl/json2table/internal/errors"
	"github.com/mcncl/json2table/internal/models"
	"github.com/mcncl/json2table/internal/naming"
	"github.com/mcncl/json2table/internal/parser"
	"github.com/mcncl/json2table/internal/renderer"
)

// Options controls the emitted table markup. The zero value renders bare
// tables with humanized header labels.
type Options = renderer.Options

// KeyFormatter turns object keys into header labels.
type KeyFormatter = naming.Formatter

// KeyRule applies a key style to the keys matching its pattern.
type KeyRule = naming.Rule

// Fragment is rendered HTML together with the offsets of the table tags the
// renderer wrote, so later passes can tell them apart from markup in the data.
type Fragment = renderer.Fragment

// Tag locates one table, thead, tbody, tr, th or td tag in a Fragment.
type Tag = renderer.Tag

// Key styles for KeyFormatter.
const (
	KeyStyleHuman      = naming.StyleHuman
	KeyStyleRaw        = naming.StyleRaw
	KeyStyleSnake      = naming.StyleSnake
	KeyStyleKebab      = naming.StyleKebab
	KeyStyleCamel      = naming.StyleCamel
	KeyStyleLowerCamel = naming.StyleLowerCamel
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = renderer.DefaultMaxDepth

// Errors reported by GetHTMLTable, for use with errors.Is.
var (
	ErrInvalidJSON   = errors.ErrInvalidJSON
	ErrEmptyInput    = errors.ErrEmptyInput
	ErrMultipleJSON  = errors.ErrMultipleJSON
	ErrDepthExceeded = errors.ErrDepthExceeded
)

// GetHTMLTable renders input as an HTML table fragment.
//
// input may be JSON text (string, []byte or io.Reader), a parsed
// models.Value or models.Document, or a plain Go value such as the result of
// json.Unmarshal into an interface. Go maps are rendered with their keys
// sorted; JSON text keeps the key order of the source. Null, {} and []
// render to an empty string.
//
// Invalid JSON text fails with an error wrapping ErrInvalidJSON and the
// decoder's diagnostic. Input nested deeper than Options.MaxDepth fails with
// ErrDepthExceeded. No partial output is returned on error.
func GetHTMLTable(input any, opts Options) (string, error) {
	frag, err := RenderFragment(input, opts)
	if err != nil {
		return "", err
	}
	return frag.HTML, nil
}

// RenderFragment is GetHTMLTable, also returning where each structural tag
// was written.
func RenderFragment(input any, opts Options) (Fragment, error) {
	value, err := toValue(input, opts.MaxDepth)
	if err != nil {
		return Fragment{}, err
	}
	return renderer.New(opts).RenderFragment(value, 0)
}

func toValue(input any, maxDepth int) (models.Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	switch t := input.(type) {
	case string:
		doc, err := parser.ParseString(t)
		if err != nil {
			return nil, err
		}
		return doc.Root, nil
	case []byte:
		doc, err := parser.ParseString(string(t))
		if err != nil {
			return nil, err
		}
		return doc.Root, nil
	case io.Reader:
		doc, err := parser.Parse(t)
		if err != nil {
			return nil, err
		}
		return doc.Root, nil
	default:
		return parser.FromValue(input, maxDepth)
	}
}

// Humanize converts a raw key such as "user_id" or "createdAt" into the
// header label used by default ("User Id", "Created At").
func Humanize(key string) string {
	return naming.Humanize(key)
}

// UniformKeys reports whether items are all objects sharing one key set and
// returns the first object's keys in order. Such arrays render as a single
// table with one column per key.
func UniformKeys(items []any) ([]string, bool) {
	arr := make(models.Array, len(items))
	for i, item := range items {
		v, err := parser.FromValue(item, DefaultMaxDepth)
		if err != nil {
			return nil, false
		}
		arr[i] = v
	}
	return analyzer.UniformKeys(arr)
}
