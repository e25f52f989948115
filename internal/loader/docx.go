// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// readDocx extracts paragraph text from a Word document. Tables and
// embedded media are skipped; paragraphs are joined with newlines so the
// downstream line heuristics see one paragraph per line.
func readDocx(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := docx.Parse(f, size)
	if err != nil {
		return "", fmt.Errorf("docx parse: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(para.String()); text != "" {
			lines = append(lines, text)
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("no text content found in document")
	}
	return strings.Join(lines, "\n"), nil
}
