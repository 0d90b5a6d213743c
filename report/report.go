// Package report renders a diff as a self-contained HTML document.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"znkr.io/fdiff/diff"
	"znkr.io/fdiff/highlight"
	"znkr.io/fdiff/textdiff"
)

type Option func(*renderer)

// Context sets the number of matching context lines around changes in the
// unified layout. The default is 3.
func Context(n int) Option {
	return func(r *renderer) {
		r.context = n
	}
}

// Split switches from the unified layout to a two-column table that pairs
// every line of x with its counterpart in y. The split layout shows the full
// listing without context elision.
func Split() Option {
	return func(r *renderer) {
		r.split = true
	}
}

// Lang forces a syntax-highlighting lexer by language name.
func Lang(lang string) Option {
	return func(r *renderer) {
		r.lang = lang
	}
}

// Names sets the display names of the two inputs and enables filename-based
// lexer detection.
func Names(from, to string) Option {
	return func(r *renderer) {
		r.from = from
		r.to = to
	}
}

type renderer struct {
	split    bool
	context  int
	lang     string
	from, to string
}

type pageData struct {
	Title string
	Split bool
	Hunks []hunkData
	Rows  []rowData
}

type hunkData struct {
	Header string
	Lines  []lineData
}

type lineData struct {
	Class   string
	Mark    string
	Content template.HTML
}

type rowData struct {
	XClass, YClass     string
	XLine, YLine       string
	XContent, YContent template.HTML
}

// Render renders the diff of x and y described by s as a self-contained HTML
// page: inline styles, no scripts, no external resources. All line content is
// escaped so that markup-significant characters render literally.
func Render(x, y []string, s diff.Script, opts ...Option) ([]byte, error) {
	r := &renderer{context: 3}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if err := s.Validate(len(x), len(y)); err != nil {
		return nil, fmt.Errorf("invalid edit script: %v", err)
	}

	var hlopt highlight.Option
	switch {
	case r.lang != "":
		hlopt = highlight.Lang(r.lang)
	case r.to != "":
		hlopt = highlight.LangFromFilename(r.to)
	}
	hl := highlight.New(hlopt)

	data := pageData{
		Title: "diff",
		Split: r.split,
	}
	if r.from != "" || r.to != "" {
		data.Title = r.from + " → " + r.to
	}

	var err error
	if r.split {
		data.Rows, err = splitRows(x, y, s, hl)
	} else {
		data.Hunks, err = unifiedHunks(x, y, s, r.context, hl)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering report: %v", err)
	}
	return buf.Bytes(), nil
}

func unifiedHunks(x, y []string, s diff.Script, context int, hl *highlight.Highlighter) ([]hunkData, error) {
	var hunks []hunkData
	for _, h := range diff.Hunks(s, context) {
		hd := hunkData{
			Header: fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.X0+1, h.X1-h.X0, h.Y0+1, h.Y1-h.Y0),
		}
		for _, e := range h.Edits {
			switch e.Op {
			case diff.Match:
				for i := e.X0; i < e.X1; i++ {
					ln, err := line(hl, "match", " ", x[i])
					if err != nil {
						return nil, err
					}
					hd.Lines = append(hd.Lines, ln)
				}
			case diff.Delete:
				for i := e.X0; i < e.X1; i++ {
					ln, err := line(hl, "delete", "-", x[i])
					if err != nil {
						return nil, err
					}
					hd.Lines = append(hd.Lines, ln)
				}
			case diff.Insert:
				for j := e.Y0; j < e.Y1; j++ {
					ln, err := line(hl, "insert", "+", y[j])
					if err != nil {
						return nil, err
					}
					hd.Lines = append(hd.Lines, ln)
				}
			}
		}
		hunks = append(hunks, hd)
	}
	return hunks, nil
}

func line(hl *highlight.Highlighter, class, mark, text string) (lineData, error) {
	content, err := hl.Line(text)
	if err != nil {
		return lineData{}, fmt.Errorf("highlighting line: %v", err)
	}
	return lineData{Class: class, Mark: mark, Content: content}, nil
}

func splitRows(x, y []string, s diff.Script, hl *highlight.Highlighter) ([]rowData, error) {
	rows, err := textdiff.Rows(x, y, s)
	if err != nil {
		return nil, err
	}

	out := make([]rowData, 0, len(rows))
	for _, r := range rows {
		xc, err := hl.Line(r.XText)
		if err != nil {
			return nil, fmt.Errorf("highlighting line: %v", err)
		}
		yc, err := hl.Line(r.YText)
		if err != nil {
			return nil, fmt.Errorf("highlighting line: %v", err)
		}

		rd := rowData{XContent: xc, YContent: yc}
		if r.XLine > 0 {
			rd.XLine = strconv.Itoa(r.XLine)
		}
		if r.YLine > 0 {
			rd.YLine = strconv.Itoa(r.YLine)
		}
		switch r.Kind {
		case textdiff.RowMatch:
			rd.XClass, rd.YClass = "match", "match"
		case textdiff.RowDelete:
			rd.XClass, rd.YClass = "delete", "empty"
		case textdiff.RowInsert:
			rd.XClass, rd.YClass = "empty", "insert"
		case textdiff.RowReplace:
			rd.XClass, rd.YClass = "delete", "insert"
		}
		out = append(out, rd)
	}
	return out, nil
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: ui-monospace, monospace; font-size: 13px; margin: 2em; color: #1f2328; }
h1 { font-size: 16px; font-weight: 600; }
.header { color: #57606a; background: #f6f8fa; padding: 2px 8px; }
.line { white-space: pre-wrap; padding: 0 8px; }
.line.delete { background: #ffebe9; }
.line.insert { background: #dafbe1; }
.mark { display: inline-block; width: 1ch; color: #57606a; }
.sep { color: #57606a; text-align: center; padding: 4px 0; }
table.diff { border-collapse: collapse; width: 100%; }
table.diff td { padding: 0 8px; vertical-align: top; white-space: pre-wrap; }
table.diff td.num { color: #57606a; text-align: right; width: 1%; user-select: none; }
table.diff td.delete { background: #ffebe9; }
table.diff td.insert { background: #dafbe1; }
table.diff td.empty { background: #f6f8fa; }
.hl-b { font-weight: 600; }
.hl-bl { color: #0550ae; }
.hl-i { color: #0a3069; }
.hl-ii { color: #57606a; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Split}}<table class="diff">
{{range .Rows}}<tr><td class="num">{{.XLine}}</td><td class="{{.XClass}}">{{.XContent}}</td><td class="num">{{.YLine}}</td><td class="{{.YClass}}">{{.YContent}}</td></tr>
{{end}}</table>
{{else}}{{range $i, $h := .Hunks}}{{if $i}}<div class="sep">⋯</div>
{{end}}<div class="hunk">
<div class="header">{{$h.Header}}</div>
{{range $h.Lines}}<div class="line {{.Class}}"><span class="mark">{{.Mark}}</span>{{.Content}}</div>
{{end}}</div>
{{end}}{{end}}</body>
</html>
`))
