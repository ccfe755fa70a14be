// Package renderer turns JSON values into nested HTML tables.
//
// Objects become key/value tables, arrays of objects sharing one key set
// become a single columnar table, other arrays of objects become a run of
// independent tables, and arrays of anything else become a line-broken
// list. Keys, values and option strings are written verbatim: nothing is
// HTML-escaped, so callers must only render trusted data or sanitize it
// first.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/mcncl/json2table/internal/analyzer"
	"github.com/mcncl/json2table/internal/errors"
	"github.com/mcncl/json2table/internal/models"
	"github.com/mcncl/json2table/internal/naming"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is not set.
const DefaultMaxDepth = 1000

// Options controls the markup of every emitted table.
type Options struct {
	// TableClass is the value of each table's class attribute.
	TableClass string
	// TableStyle is the value of each table's style attribute.
	TableStyle string
	// TableAttributes is appended verbatim inside each opening table tag.
	TableAttributes string
	// MaxDepth bounds how many levels of nested objects and arrays are
	// followed. Zero or negative means DefaultMaxDepth.
	MaxDepth int
	// Keys turns object keys into header labels. The zero value humanizes.
	Keys naming.Formatter
}

// Renderer renders JSON values with a fixed set of options. It holds no
// mutable state and is safe for concurrent use.
type Renderer struct {
	opts     Options
	maxDepth int
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Renderer{opts: opts, maxDepth: maxDepth}
}

// Tag is the position of one table element tag the renderer wrote into a
// Fragment. Start and End are byte offsets into Fragment.HTML.
type Tag struct {
	Name    string
	Start   int
	End     int
	Closing bool
}

// Fragment is rendered HTML together with the location of every table,
// thead, tbody, tr, th and td tag in it. Markup coming from keys or values
// has no Tag entry.
type Fragment struct {
	HTML string
	Tags []Tag
}

// Render renders v at the given nesting level. Null, {} and [] produce an
// empty string. level 0 is the document root.
func (r *Renderer) Render(v models.Value, level int) (string, error) {
	frag, err := r.RenderFragment(v, level)
	if err != nil {
		return "", err
	}
	return frag.HTML, nil
}

// RenderFragment is Render, also reporting where the structural tags are.
func (r *Renderer) RenderFragment(v models.Value, level int) (Fragment, error) {
	w := &writer{}
	if err := r.writeValue(w, v, level, level); err != nil {
		return Fragment{}, err
	}
	return w.fragment(), nil
}

// RenderArray renders the contents of an array cell: a columnar table,
// a run of tables or a line-broken list, depending on the elements.
func (r *Renderer) RenderArray(items models.Array, level int) (string, error) {
	w := &writer{}
	if err := r.writeArray(w, items, level, level); err != nil {
		return "", err
	}
	return w.String(), nil
}

// RenderVertical renders items as one table with a column per key. Only a
// level 0 table gets thead and tbody sections.
func (r *Renderer) RenderVertical(items []models.Object, keys []string, level int) (string, error) {
	w := &writer{}
	if err := r.writeVertical(w, items, keys, level, level); err != nil {
		return "", err
	}
	return w.String(), nil
}

// writer is the output buffer. Structural tags go through open and close
// so their offsets are recorded.
type writer struct {
	bytes.Buffer
	tags []Tag
}

func (w *writer) open(name, tag string) {
	start := w.Len()
	w.WriteString(tag)
	w.tags = append(w.tags, Tag{Name: name, Start: start, End: w.Len()})
}

func (w *writer) close(name string) {
	start := w.Len()
	w.WriteString("</" + name + ">")
	w.tags = append(w.tags, Tag{Name: name, Start: start, End: w.Len(), Closing: true})
}

// element writes <name>text</name>.
func (w *writer) element(name, text string) {
	w.open(name, "<"+name+">")
	w.WriteString(text)
	w.close(name)
}

func (w *writer) fragment() Fragment {
	return Fragment{HTML: w.String(), Tags: w.tags}
}

// The writers below take two counters. level is the table nesting that
// decides thead/tbody; depth counts every recursive step, stacked array
// elements included, and is what MaxDepth bounds.

func (r *Renderer) writeValue(w *writer, v models.Value, level, depth int) error {
	if err := r.checkDepth(depth); err != nil {
		return err
	}
	if models.IsEmpty(v) {
		return nil
	}

	switch t := v.(type) {
	case models.Array:
		layout, keys := analyzer.ClassifyArray(t)
		if layout == analyzer.LayoutVertical {
			// Already wrapped in its own table.
			return r.writeVertical(w, objects(t), keys, level, depth)
		}
		r.openTable(w)
		if err := r.writeLayout(w, t, layout, nil, level, depth); err != nil {
			return err
		}
		r.closeTable(w)
	case models.Object:
		r.openTable(w)
		for _, m := range t {
			w.open("tr", "<tr>")
			w.element("th", r.opts.Keys.Format(m.Key))
			w.WriteString("\n")
			w.open("td", "<td>")
			if err := r.writeCell(w, m.Value, level, depth); err != nil {
				return err
			}
			w.close("td")
			w.close("tr")
			w.WriteString("\n")
		}
		r.closeTable(w)
	case models.String, models.Number, models.Bool:
		r.openTable(w)
		w.open("tr", "<tr>")
		w.element("td", t.String())
		w.close("tr")
		w.WriteString("\n")
		r.closeTable(w)
	default:
		return errors.NewRenderError(fmt.Sprintf("unexpected json value type: %T", v), errors.ErrUnsupportedValue)
	}
	return nil
}

// writeCell writes the content of a key/value row's data cell.
func (r *Renderer) writeCell(w *writer, v models.Value, level, depth int) error {
	switch t := v.(type) {
	case models.Object:
		return r.writeValue(w, t, level+1, depth+1)
	case models.Array:
		return r.writeArray(w, t, level+1, depth+1)
	default:
		return r.writeText(w, v, depth)
	}
}

func (r *Renderer) writeArray(w *writer, items models.Array, level, depth int) error {
	if err := r.checkDepth(depth); err != nil {
		return err
	}
	layout, keys := analyzer.ClassifyArray(items)
	return r.writeLayout(w, items, layout, keys, level, depth)
}

func (r *Renderer) writeLayout(w *writer, items models.Array, layout analyzer.Layout, keys []string, level, depth int) error {
	switch layout {
	case analyzer.LayoutEmpty:
		return nil
	case analyzer.LayoutVertical:
		return r.writeVertical(w, objects(items), keys, level, depth)
	case analyzer.LayoutStacked:
		// Stacked tables share the array's level but are one step deeper.
		for _, item := range items {
			if err := r.writeValue(w, item, level, depth+1); err != nil {
				return err
			}
		}
	case analyzer.LayoutList:
		for _, item := range items {
			if err := r.writeText(w, item, depth); err != nil {
				return err
			}
			w.WriteString("<br/>\n")
		}
	}
	return nil
}

func (r *Renderer) writeVertical(w *writer, items []models.Object, keys []string, level, depth int) error {
	if err := r.checkDepth(depth); err != nil {
		return err
	}

	r.openTable(w)
	if level == 0 {
		w.open("thead", "<thead>")
		w.WriteString("\n")
	}
	w.open("tr", "<tr>")
	w.WriteString("\n")
	for _, key := range keys {
		w.element("th", r.opts.Keys.Format(key))
		w.WriteString("\n")
	}
	w.close("tr")
	w.WriteString("\n")
	if level == 0 {
		w.close("thead")
		w.WriteString("\n")
		w.open("tbody", "<tbody>")
		w.WriteString("\n")
	}

	for _, item := range items {
		w.open("tr", "<tr>")
		w.WriteString("\n")
		for _, key := range keys {
			value, _ := item.Get(key)
			switch t := value.(type) {
			case models.Object:
				w.open("td", "<td>")
				if err := r.writeValue(w, t, level+1, depth+1); err != nil {
					return err
				}
			case models.Array:
				w.open("td", "<td>")
				w.WriteString("\n")
				if err := r.writeArray(w, t, level+1, depth+1); err != nil {
					return err
				}
			default:
				w.open("td", "<td>")
				if err := r.writeText(w, value, depth); err != nil {
					return err
				}
			}
			w.close("td")
			w.WriteString("\n")
		}
		w.close("tr")
		w.WriteString("\n")
	}

	if level == 0 {
		w.close("tbody")
		w.WriteString("\n")
	}
	r.closeTable(w)
	return nil
}

// writeText writes the inline text of v. Arrays and objects only get here
// from a list and are written as compact JSON, one level below depth.
func (r *Renderer) writeText(w *writer, v models.Value, depth int) error {
	switch t := v.(type) {
	case nil:
		return nil
	case models.Array, models.Object:
		if err := models.AppendJSON(&w.Buffer, t, r.maxDepth-depth); err != nil {
			if models.IsEncodeDepthError(err) {
				return errors.NewDepthError(errors.ErrorTypeRender, r.maxDepth+1, r.maxDepth)
			}
			return errors.NewRenderError("failed to write list item", err)
		}
		return nil
	default:
		w.WriteString(t.String())
		return nil
	}
}

func (r *Renderer) openTable(w *writer) {
	tag := fmt.Sprintf("<table class='%s' style='%s'", r.opts.TableClass, r.opts.TableStyle)
	if r.opts.TableAttributes != "" {
		tag += " " + r.opts.TableAttributes
	}
	w.open("table", tag+">")
	w.WriteString("\n")
}

func (r *Renderer) closeTable(w *writer) {
	w.close("table")
	w.WriteString("\n")
}

func (r *Renderer) checkDepth(depth int) error {
	if depth > r.maxDepth {
		return errors.NewDepthError(errors.ErrorTypeRender, depth, r.maxDepth)
	}
	return nil
}

// objects converts a uniform array; ClassifyArray has already checked that
// every element is an object.
func objects(items models.Array) []models.Object {
	out := make([]models.Object, len(items))
	for i, item := range items {
		out[i] = item.(models.Object)
	}
	return out
}
