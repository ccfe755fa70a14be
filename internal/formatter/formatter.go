package formatter

import (
	"fmt"
	"strings"

	"github.com/mcncl/json2table/internal/renderer"
)

// Formatter re-indents a rendered fragment so every table element starts on
// its own line, nested one Indent deeper than its parent. Only the tags the
// renderer recorded are structure; markup from keys or values is cell text.
type Formatter struct {
	Indent string
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{Indent: "  "}
}

// Format returns frag.HTML indented. Cell text is trimmed of surrounding
// whitespace but otherwise left as is.
func (f *Formatter) Format(frag renderer.Fragment) (string, error) {
	html := frag.HTML
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	var out strings.Builder
	var open []string
	last := 0
	for _, tag := range frag.Tags {
		if tag.Start < last || tag.End < tag.Start || tag.End > len(html) {
			return "", fmt.Errorf("failed to format HTML: tag <%s> at %d is out of place", tag.Name, tag.Start)
		}
		f.writeText(&out, html[last:tag.Start], len(open))
		last = tag.End

		text := html[tag.Start:tag.End]
		if tag.Closing {
			if len(open) == 0 || open[len(open)-1] != tag.Name {
				return "", fmt.Errorf("failed to format HTML: unexpected closing tag %s", text)
			}
			open = open[:len(open)-1]
			f.writeLine(&out, text, len(open))
			continue
		}
		f.writeLine(&out, text, len(open))
		open = append(open, tag.Name)
	}
	f.writeText(&out, html[last:], len(open))

	if len(open) > 0 {
		return "", fmt.Errorf("failed to format HTML: unclosed <%s>", open[len(open)-1])
	}
	return out.String(), nil
}

// writeText writes each non-blank line of text at depth.
func (f *Formatter) writeText(out *strings.Builder, text string, depth int) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		f.writeLine(out, line, depth)
	}
}

func (f *Formatter) writeLine(out *strings.Builder, line string, depth int) {
	out.WriteString(strings.Repeat(f.Indent, depth))
	out.WriteString(line)
	out.WriteByte('\n')
}
