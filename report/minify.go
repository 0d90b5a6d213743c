package report

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

// Minify minifies a rendered report for writing to disk.
func Minify(b []byte) ([]byte, error) {
	minifier := minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)

	out, err := minifier.Bytes("text/html", b)
	if err != nil {
		return nil, fmt.Errorf("minifying report: %v", err)
	}
	return out, nil
}
