// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.md")
	content := "# Title\n\nBody text.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != content {
		t.Errorf("Load = %q, want %q", got, content)
	}
}

func TestLoadPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("plain"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "plain" {
		t.Errorf("Load = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.md"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PAPER.MD")
	if err := os.WriteFile(path, []byte("upper"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "upper" {
		t.Errorf("Load = %q", got)
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	want := map[string]bool{".md": true, ".markdown": true, ".txt": true, ".pdf": true, ".docx": true}
	if len(exts) != len(want) {
		t.Fatalf("got %d extensions, want %d", len(exts), len(want))
	}
	for _, ext := range exts {
		if !want[ext] {
			t.Errorf("unexpected extension %q", ext)
		}
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`with \(parens\)`, "with (parens)"},
		{`octal\040space`, "octal space"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, `back\slash`},
	}
	for _, tt := range tests {
		if got := decodePDFString([]byte(tt.in)); got != tt.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextFromContentStream(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n(Hello ) Tj\n(World) Tj\n0 -14 Td\n(Second line) Tj\nET\n")

	got := textFromContentStream(stream)

	want := "Hello World\nSecond line"
	if got != want {
		t.Errorf("textFromContentStream = %q, want %q", got, want)
	}
}

func TestCleanExtractedText(t *testing.T) {
	in := "  spaced   out \n\n\nnext   line\n"
	want := "spaced out\nnext line"
	if got := cleanExtractedText(in); got != want {
		t.Errorf("cleanExtractedText = %q, want %q", got, want)
	}
}
