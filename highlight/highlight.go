// Package highlight renders source lines as HTML with syntax highlighting.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.OperatorWord:      "hl-b",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericPrompt:     "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

type Option func(*Highlighter)

// Lang selects the lexer by language name.
func Lang(lang string) Option {
	return func(hl *Highlighter) {
		hl.lexer = lexers.Get(lang)
	}
}

// LangFromFilename selects the lexer based on a filename.
func LangFromFilename(filename string) Option {
	return func(hl *Highlighter) {
		hl.lexer = lexers.Match(filename)
	}
}

// Highlighter renders single lines of source code as HTML. The zero options
// produce plain, escaped text.
type Highlighter struct {
	lexer chroma.Lexer
}

func New(opts ...Option) *Highlighter {
	hl := &Highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

// Line renders a single line. The result is fully escaped: markup-significant
// characters in s render literally.
func (hl *Highlighter) Line(s string) (template.HTML, error) {
	it, err := hl.lexer.Tokenise(nil, s)
	if err != nil {
		return "", fmt.Errorf("tokenizing line: %v", err)
	}

	var sb strings.Builder
	for _, token := range it.Tokens() {
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(token.Value))
		if class != "" {
			fmt.Fprintf(&sb, "</span>")
		}
	}
	return template.HTML(sb.String()), nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}
