// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
	"testing"
)

func toolNames(text string, known []string) []string {
	var names []string
	for _, tool := range identifyTools(text, known) {
		names = append(names, tool.Name)
	}
	return names
}

func TestListItemTools(t *testing.T) {
	text := "- **NumPy**: array programming\n" +
		"* **The Solver** for constraint problems\n" +
		"1. **Batch Runner**\n"

	tools := identifyTools(text, nil)

	if len(tools) != 3 {
		t.Fatalf("got %d tools, want 3: %v", len(tools), tools)
	}
	if tools[0].Name != "NumPy" || tools[0].Description != "array programming" {
		t.Errorf("tools[0] = %+v", tools[0])
	}
	if tools[1].Name != "The Solver" || tools[1].Description != "constraint problems" {
		t.Errorf("tools[1] = %+v", tools[1])
	}
	if tools[2].Name != "Batch Runner" || tools[2].Description != descListTool {
		t.Errorf("tools[2] = %+v", tools[2])
	}
	for i, tool := range tools {
		if tool.Type != "tool/library" {
			t.Errorf("tools[%d].Type = %q, want %q", i, tool.Type, "tool/library")
		}
	}
}

func TestListItemToolExclusions(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"exclusion vocabulary", "- **Main Result** of the paper"},
		{"too many words", "- **One Two Three Four Five**: long name"},
		{"theorem label", "- **Theorem Prover Output**: logs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tools := identifyTools(tt.line+"\n", nil); len(tools) != 0 {
				t.Errorf("line %q yielded tools %v, want none", tt.line, tools)
			}
		})
	}
}

func TestHeadingTools(t *testing.T) {
	text := "## The Consensus Algorithm\n" +
		"## A Novel Algorithm\n" +
		"### Evaluation Framework\n"

	tools := identifyTools(text, nil)

	if len(tools) != 2 {
		t.Fatalf("got %d tools, want 2: %v", len(tools), tools)
	}
	if tools[0].Name != "The Consensus Algorithm" || tools[0].Type != "algorithm" {
		t.Errorf("tools[0] = %+v", tools[0])
	}
	if tools[1].Name != "Evaluation Framework" || tools[1].Type != "framework" {
		t.Errorf("tools[1] = %+v", tools[1])
	}
}

func TestKnownNameMatching(t *testing.T) {
	text := "We built the training loop in PyTorch on Python 3.11, " +
		"with DataLoader helpers.\n"

	names := toolNames(text, DefaultKnownLibraries)

	want := []string{"PyTorch", "Python 3.11", "DataLoader"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestKnownListRunsBeforeCamelCase(t *testing.T) {
	// TensorFlow matches both the allow-list and the CamelCase pattern;
	// the allow-list runs first and its entry wins the seen-name slot.
	tools := identifyTools("TensorFlow everywhere.\n", DefaultKnownLibraries)

	if len(tools) != 1 {
		t.Fatalf("got %d tools, want 1: %v", len(tools), tools)
	}
	if tools[0].Name != "TensorFlow" || tools[0].Type != "library" {
		t.Errorf("tools[0] = %+v", tools[0])
	}
}

func TestToolDedupFirstOccurrenceWins(t *testing.T) {
	// The list item finds NumPy first; the allow-list match later must not
	// produce a second entry or overwrite the first description.
	text := "- **NumPy**: the array library\nNumPy is used throughout.\n"

	tools := identifyTools(text, DefaultKnownLibraries)

	count := 0
	for _, tool := range tools {
		if tool.Name == "NumPy" {
			count++
			if tool.Type != "tool/library" {
				t.Errorf("first occurrence lost: %+v", tool)
			}
		}
	}
	if count != 1 {
		t.Errorf("NumPy appears %d times, want 1", count)
	}
}

func TestToolCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "- **Tool Number%d**: helper\n", i)
	}

	if tools := identifyTools(b.String(), nil); len(tools) > maxTools {
		t.Errorf("got %d tools, cap is %d", len(tools), maxTools)
	}
}

func TestInjectableKnownList(t *testing.T) {
	text := "The pipeline uses libfoo for parsing.\n"

	if names := toolNames(text, nil); len(names) != 0 {
		t.Fatalf("unexpected matches without allow-list: %v", names)
	}

	names := toolNames(text, []string{"libfoo"})
	if len(names) != 1 || names[0] != "libfoo" {
		t.Errorf("custom allow-list names = %v, want [libfoo]", names)
	}
}

func TestToolsNeverDuplicateNames(t *testing.T) {
	text := "- **PyTorch**: training\n## PyTorch Algorithm\nPyTorch again.\n"

	tools := identifyTools(text, DefaultKnownLibraries)

	seen := map[string]bool{}
	for _, tool := range tools {
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
	}
}

func TestToolsEmptyText(t *testing.T) {
	tools := identifyTools("", DefaultKnownLibraries)

	if tools == nil {
		t.Fatal("tools must be empty, not nil")
	}
	if len(tools) != 0 {
		t.Errorf("empty text yielded %v", tools)
	}
}
