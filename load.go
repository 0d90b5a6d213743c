package main

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"znkr.io/fdiff/textdiff"
)

// loadLines reads path and splits its content into lines. Files containing
// NUL bytes or invalid UTF-8 are rejected as binary.
func loadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %v", err)
	}
	if bytes.IndexByte(b, 0) >= 0 || !utf8.Valid(b) {
		return nil, fmt.Errorf("%s appears to be a binary file", path)
	}
	return textdiff.Split(string(b)), nil
}
