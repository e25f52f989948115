// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader extracts plain text from documents in the supported
// formats: Markdown, plain text, PDF, and Word (.docx).
// See docs/ARCHITECTURE § Document Loading.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound indicates the document path does not exist.
var ErrNotFound = errors.New("document not found")

// ErrUnsupportedFormat indicates the file extension has no registered reader.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// reader extracts text from one document format.
type reader func(path string, size int64) (string, error)

// readers maps file extensions to format readers. Presentations (.pptx)
// have no reader in this corpus and resolve to ErrUnsupportedFormat.
var readers = map[string]reader{
	".md":       readPlainText,
	".markdown": readPlainText,
	".txt":      readPlainText,
	".pdf":      readPDF,
	".docx":     readDocx,
}

// SupportedExtensions lists the registered formats, sorted, for CLI help text.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(readers))
	for ext := range readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads the document at path and returns its extracted text as a
// single string.
func Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	text, err := read(path, info.Size())
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

func readPlainText(path string, _ int64) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
