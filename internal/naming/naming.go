// Package naming turns raw JSON object keys into table header labels.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/json2table/internal/errors"
)

var (
	// ABCDef -> ABC Def
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	// fooBar -> foo Bar, v2Api -> v2 Api
	camelBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Humanize converts a camelCase, snake_case, kebab-case or Ruby-style
// namespaced (a::b) key into space separated, title-cased words.
// Only the first letter of each word is changed; "mixedCAse" becomes
// "Mixed C Ase".
func Humanize(key string) string {
	s := strings.ReplaceAll(key, "::", "/")
	s = acronymBoundary.ReplaceAllString(s, "${1} ${2}")
	s = camelBoundary.ReplaceAllString(s, "${1} ${2}")
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

// Style selects how keys are turned into labels.
type Style string

const (
	StyleHuman      Style = "human"
	StyleRaw        Style = "raw"
	StyleSnake      Style = "snake"
	StyleKebab      Style = "kebab"
	StyleCamel      Style = "camel"
	StyleLowerCamel Style = "lower_camel"
)

var styles = []Style{StyleHuman, StyleRaw, StyleSnake, StyleKebab, StyleCamel, StyleLowerCamel}

// Styles returns every supported style name.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ParseStyle validates a style name. The empty string selects StyleHuman.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return StyleHuman, nil
	}
	for _, st := range styles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errors.ErrInvalidKeyStyle, s)
}

// Rule applies Style to every key matching Pattern.
type Rule struct {
	Pattern *regexp.Regexp
	Style   Style
}

// Formatter produces header labels. The zero value humanizes every key.
type Formatter struct {
	Style Style
	// Labels maps raw keys to fixed labels and takes precedence over
	// Rules and Style.
	Labels map[string]string
	// Rules are tried in order before falling back to Style.
	Rules []Rule
}

// Format returns the label for key.
func (f Formatter) Format(key string) string {
	if label, ok := f.Labels[key]; ok {
		return label
	}
	for _, rule := range f.Rules {
		if rule.Pattern != nil && rule.Pattern.MatchString(key) {
			return format(rule.Style, key)
		}
	}
	return format(f.Style, key)
}

func format(style Style, key string) string {
	switch style {
	case StyleRaw:
		return key
	case StyleSnake:
		return strcase.ToSnake(key)
	case StyleKebab:
		return strcase.ToKebab(key)
	case StyleCamel:
		return strcase.ToCamel(key)
	case StyleLowerCamel:
		return strcase.ToLowerCamel(key)
	default:
		return Humanize(key)
	}
}
