// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// maxTools caps the tool stage's output.
const maxTools = 10

var (
	// listToolRe matches a list item that names a tool in bold, with an
	// optional connector and trailing description:
	//   - **NumPy**: array programming
	//   * **The Solver** for constraint problems
	listToolRe = regexp.MustCompile(`^\s*(?:[-*•+]|\d+[.)])\s*\*\*([^*]+)\*\*\s*(.*)$`)

	// anyHeadingRe matches a heading of any level.
	anyHeadingRe = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*$`)

	// pythonVersionRe matches a version-numbered Python mention, e.g.
	// "Python 3.11".
	pythonVersionRe = regexp.MustCompile(`\bPython\s*\d+(?:\.\d+)*\b`)

	// camelCaseRe matches names built from two or more title-cased
	// segments with no separator, e.g. "TensorFlow", "PyTorch".
	camelCaseRe = regexp.MustCompile(`\b[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]+)+\b`)

	// connectorRe strips the optional connector between a list-item tool
	// name and its trailing description.
	connectorRe = regexp.MustCompile(`^(?:for\s+|[:\x{2013}-]\s*)`)
)

// toolNameExclusions reject bold list-item names that label document
// structure rather than naming a tool.
var toolNameExclusions = []string{
	"result", "finding", "contribution", "type", "theorem", "lemma",
	"proposition", "validation", "empirical", "novel", "overview",
	"introduction", "conclusion", "methodology", "abstract",
}

// DefaultKnownLibraries is the default allow-list of well-known library and
// tool names, matched literally as whole words. Callers extend the list
// through configuration without touching the matching logic.
var DefaultKnownLibraries = []string{
	"PyTorch", "TensorFlow", "Keras", "NumPy", "SciPy", "Pandas",
	"scikit-learn", "JAX", "Hugging Face", "OpenCV", "CUDA", "MATLAB",
	"Docker", "Kubernetes", "Spark", "Hadoop", "Kafka", "Redis",
	"PostgreSQL", "SQLite",
}

// Fixed descriptions for tools whose source pattern carries no trailing text.
const (
	descListTool  = "Tool or library referenced in the document"
	descAlgorithm = "Algorithm described in the document"
	descFramework = "Framework described in the document"
	descLibrary   = "Software library or tool mentioned in the document"
)

// ToolStage scans the document for named tools, libraries, algorithms, and
// frameworks.
type ToolStage struct {
	Model Completer

	// Known is the allow-list of well-known tool names. Empty means no
	// allow-list matching; use DefaultKnownLibraries for the stock list.
	Known []string
}

// Name implements pipeline.Stage.
func (s *ToolStage) Name() string { return "tools" }

// Apply implements pipeline.Stage.
func (s *ToolStage) Apply(ctx context.Context, st types.State) (types.Update, error) {
	if s.Model != nil {
		var tools []types.Tool
		if err := completeJSON(ctx, s.Model, toolPrompt(st.DocumentText), &tools); err == nil {
			return types.Update{Tools: dedupTools(tools)}, nil
		}
	}

	return types.Update{Tools: identifyTools(st.DocumentText, s.Known)}, nil
}

// identifyTools runs the three heuristic pattern families in order, all
// feeding one deduplicated-by-name sequence. The first occurrence of a name
// wins regardless of which family found it; the sequence is truncated to the
// first 10 tools in search order.
func identifyTools(text string, known []string) []types.Tool {
	tools := []types.Tool{}
	seen := map[string]bool{}
	add := func(t types.Tool) {
		if t.Name == "" || seen[t.Name] {
			return
		}
		seen[t.Name] = true
		tools = append(tools, t)
	}

	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if t, ok := listItemTool(line); ok {
			add(t)
		}
	}

	for _, line := range lines {
		if t, ok := headingTool(line); ok {
			add(t)
		}
	}

	for _, name := range knownNameMatches(text, known) {
		add(types.Tool{Name: name, Description: descLibrary, Type: "library"})
	}

	if len(tools) > maxTools {
		tools = tools[:maxTools]
	}
	return tools
}

// listItemTool parses a list item with a bold tool name. The name must be at
// most 4 words and must not contain any exclusion token; the trailing text
// becomes the description when present.
func listItemTool(line string) (types.Tool, bool) {
	m := listToolRe.FindStringSubmatch(line)
	if m == nil {
		return types.Tool{}, false
	}

	name := strings.TrimSpace(m[1])
	if len(strings.Fields(name)) > 4 || containsExclusion(name) {
		return types.Tool{}, false
	}

	desc := strings.TrimSpace(connectorRe.ReplaceAllString(strings.TrimSpace(m[2]), ""))
	if desc == "" {
		desc = descListTool
	}

	return types.Tool{Name: name, Description: desc, Type: "tool/library"}, true
}

// containsExclusion reports whether the lowercased name carries any token
// from the exclusion vocabulary.
func containsExclusion(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range toolNameExclusions {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// headingTool classifies a heading that names an algorithm or framework.
func headingTool(line string) (types.Tool, bool) {
	m := anyHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return types.Tool{}, false
	}

	heading := m[1]
	lower := strings.ToLower(heading)
	switch {
	case strings.Contains(lower, "algorithm") && !strings.Contains(lower, "novel"):
		return types.Tool{Name: heading, Description: descAlgorithm, Type: "algorithm"}, true
	case strings.Contains(lower, "framework"):
		return types.Tool{Name: heading, Description: descFramework, Type: "framework"}, true
	}
	return types.Tool{}, false
}

// knownNameMatches finds well-known tool names in the text: the allow-list
// first, then version-numbered Python, then generic CamelCase names. The
// enumeration order decides which pattern wins when names coincide, because
// the caller's seen-set keeps the first occurrence.
func knownNameMatches(text string, known []string) []string {
	var names []string

	if pattern := knownListPattern(known); pattern != nil {
		names = append(names, pattern.FindAllString(text, -1)...)
	}
	names = append(names, pythonVersionRe.FindAllString(text, -1)...)
	names = append(names, camelCaseRe.FindAllString(text, -1)...)

	var out []string
	for _, name := range names {
		if len(strings.Fields(name)) <= 3 {
			out = append(out, name)
		}
	}
	return out
}

// knownListPattern compiles the allow-list into one whole-word alternation.
func knownListPattern(known []string) *regexp.Regexp {
	if len(known) == 0 {
		return nil
	}
	quoted := make([]string, len(known))
	for i, name := range known {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, `|`) + `)\b`)
}

// dedupTools enforces the dedup-by-name and cap invariants on a model
// response, keeping first occurrences.
func dedupTools(tools []types.Tool) []types.Tool {
	out := []types.Tool{}
	seen := map[string]bool{}
	for _, t := range tools {
		if t.Name == "" || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t)
		if len(out) == maxTools {
			break
		}
	}
	return out
}
