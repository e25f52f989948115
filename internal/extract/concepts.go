// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// Caps on the concept stage's output sequences. Truncation keeps discovery
// order; there is no ranking.
const (
	maxConcepts = 10
	maxTheorems = 5
	maxResults  = 5
)

var (
	// boldSpanRe matches a bold-delimited span: **text**.
	boldSpanRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

	// conceptHeadingRe matches level-2-or-deeper section headings.
	conceptHeadingRe = regexp.MustCompile(`^#{2,}\s*(.+?)\s*$`)

	// percentRe matches a percentage figure like "40%".
	percentRe = regexp.MustCompile(`\d+%`)

	// leadingListMarkerRe strips a bullet or numbering marker from the
	// front of a result line.
	leadingListMarkerRe = regexp.MustCompile(`^(?:[-*•+]|\d+[.)])\s+`)
)

// theoremTokens mark a line as a theorem-like statement.
var theoremTokens = []string{"theorem", "lemma", "proposition"}

// resultTokens mark a line as an empirical result.
var resultTokens = []string{"improvement", "reduction", "increase"}

// conceptStopList names section headings that are structural boilerplate
// rather than concepts.
var conceptStopList = map[string]bool{
	"introduction": true,
	"conclusion":   true,
	"results":      true,
	"methodology":  true,
	"references":   true,
}

// conceptExclusionPrefixes reject bold spans that label extraction output
// rather than naming a concept.
var conceptExclusionPrefixes = []string{"type:", "result", "finding"}

// ConceptStage scans the document for main concepts, theorem-like
// statements, and empirical results.
type ConceptStage struct {
	Model Completer
}

// Name implements pipeline.Stage.
func (s *ConceptStage) Name() string { return "concepts" }

// conceptResponse is the JSON shape requested from the model path.
type conceptResponse struct {
	MainConcepts []string        `json:"main_concepts"`
	Theorems     []types.Theorem `json:"theorems"`
	Results      []types.Result  `json:"results"`
}

// Apply implements pipeline.Stage.
func (s *ConceptStage) Apply(ctx context.Context, st types.State) (types.Update, error) {
	if s.Model != nil {
		var resp conceptResponse
		if err := completeJSON(ctx, s.Model, conceptPrompt(st.DocumentText), &resp); err == nil {
			return types.Update{
				MainConcepts: truncateStrings(nonNilStrings(resp.MainConcepts), maxConcepts),
				Theorems:     truncateTheorems(resp.Theorems),
				Results:      truncateResults(resp.Results),
			}, nil
		}
	}

	concepts, theorems, results := extractConcepts(st.DocumentText)
	return types.Update{
		MainConcepts: concepts,
		Theorems:     theorems,
		Results:      results,
	}, nil
}

// extractConcepts runs the heuristic scan. Empty text yields three empty
// sequences; absence of matches is a valid outcome, never an error.
func extractConcepts(text string) ([]string, []types.Theorem, []types.Result) {
	theorems := []types.Theorem{}
	results := []types.Result{}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		switch {
		case isTheoremLine(line):
			theorems = append(theorems, types.Theorem{
				Name:        theoremName(line),
				Description: "Extracted from document",
				Type:        "theorem",
			})
		case isResultLine(line):
			results = append(results, types.Result{
				Description: resultDescription(line),
				Type:        "empirical result",
			})
		}
	}

	concepts := []string{}
	seen := map[string]bool{}
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			concepts = append(concepts, c)
		}
	}

	for _, line := range lines {
		if heading, ok := conceptHeading(line); ok {
			add(heading)
		}
	}
	for _, span := range boldSpans(text) {
		if isConceptSpan(span) {
			add(span)
		}
	}

	return truncateStrings(concepts, maxConcepts), truncateTheorems(theorems), truncateResults(results)
}

// isTheoremLine reports whether the line states a theorem, lemma, or
// proposition.
func isTheoremLine(line string) bool {
	lower := strings.ToLower(line)
	for _, tok := range theoremTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// theoremName takes the first bold span on the line, falling back to the
// first 100 characters of the trimmed line.
func theoremName(line string) string {
	if m := boldSpanRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return truncateRunes(strings.TrimSpace(line), 100)
}

// isResultLine reports whether the line carries a percentage figure or a
// result token. Theorem lines are classified first and never double as
// results.
func isResultLine(line string) bool {
	if percentRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, tok := range resultTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// resultDescription trims the line, strips leading list markers, and caps
// the length at 200 characters.
func resultDescription(line string) string {
	trimmed := strings.TrimSpace(line)
	stripped := leadingListMarkerRe.ReplaceAllString(trimmed, "")
	if stripped == "" {
		stripped = trimmed
	}
	return truncateRunes(stripped, 200)
}

// conceptHeading extracts the heading text of a level-2-or-deeper heading,
// rejecting stop-list headings case-insensitively.
func conceptHeading(line string) (string, bool) {
	m := conceptHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	heading := m[1]
	if conceptStopList[strings.ToLower(heading)] {
		return "", false
	}
	return heading, true
}

// boldSpans returns all bold-delimited spans in the text, in document order.
func boldSpans(text string) []string {
	var spans []string
	for _, m := range boldSpanRe.FindAllStringSubmatch(text, -1) {
		spans = append(spans, m[1])
	}
	return spans
}

// isConceptSpan accepts bold spans of 2-5 words that do not look like
// labelled extraction output.
func isConceptSpan(span string) bool {
	words := len(strings.Fields(span))
	if words < 2 || words > 5 {
		return false
	}
	lower := strings.ToLower(span)
	for _, prefix := range conceptExclusionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func truncateStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func truncateTheorems(t []types.Theorem) []types.Theorem {
	if t == nil {
		t = []types.Theorem{}
	}
	if len(t) > maxTheorems {
		return t[:maxTheorems]
	}
	return t
}

func truncateResults(r []types.Result) []types.Result {
	if r == nil {
		r = []types.Result{}
	}
	if len(r) > maxResults {
		return r[:maxResults]
	}
	return r
}

// nonNilStrings normalizes a possibly-nil model response slice so the merge
// still records the field as written.
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
