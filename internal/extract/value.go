// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// placeholderValueName is used when no named construct can be resolved.
const placeholderValueName = "Extracted Method"

var (
	// introducedWithAcronymRe matches "introduce/present/propose the
	// Capitalized Multi-Word Name (ACRONYM)".
	introducedWithAcronymRe = regexp.MustCompile(
		`(?:introduce|present|propose)s?\s+(?:the\s+)?((?:[A-Z][A-Za-z]*\s+)+[A-Z][A-Za-z]*)\s*\(([A-Z]{2,})\)`)

	// suffixedWithAcronymRe matches "the Capitalized Name Algorithm/Model/
	// Framework/Architecture (ACRONYM)".
	suffixedWithAcronymRe = regexp.MustCompile(
		`the\s+((?:[A-Z][A-Za-z]*\s+)*[A-Z][A-Za-z]*\s+(?:Algorithm|Model|Framework|Architecture))\s*\(([A-Z]{2,})\)`)

	// suffixedNameRe matches a capitalized multi-word name ending in a
	// construct suffix, no acronym required.
	suffixedNameRe = regexp.MustCompile(
		`((?:[A-Z][A-Za-z]*\s+)+(?:Algorithm|Model|Framework|Architecture|Method))\b`)
)

// descriptionVerbs qualify a line as describing the resolved construct when
// it also mentions the construct's first word.
var descriptionVerbs = []string{"introduce", "present", "propose", "describe", "works by"}

// descriptionPhrases qualify a line as a document self-description.
var descriptionPhrases = []string{"this paper presents", "we present", "we propose", "our approach"}

// valueTypePriority orders the substring checks that re-derive the value
// type from the resolved name.
var valueTypePriority = []string{"algorithm", "model", "framework", "architecture"}

// ValueStage identifies the single most salient named algorithm, model,
// framework, or architecture the document is about, with a rationale an
// implementer can act on.
type ValueStage struct {
	Model Completer
}

// Name implements pipeline.Stage.
func (s *ValueStage) Name() string { return "useful-value" }

// Apply implements pipeline.Stage.
func (s *ValueStage) Apply(ctx context.Context, st types.State) (types.Update, error) {
	if s.Model != nil {
		var v types.UsefulValue
		if err := completeJSON(ctx, s.Model, valuePrompt(st), &v); err == nil && v.Name != "" {
			return types.Update{UsefulValue: &v}, nil
		}
	}

	v := resolveUsefulValue(st)
	return types.Update{UsefulValue: &v}, nil
}

// resolveUsefulValue runs the heuristic resolution chain over the
// accumulated state.
func resolveUsefulValue(st types.State) types.UsefulValue {
	name := resolveValueName(st.DocumentText)
	valueType := deriveValueType(name)

	return types.UsefulValue{
		Name:          name,
		Type:          valueType,
		Description:   resolveValueDescription(st.DocumentText, name, valueType, st.Understanding),
		WhyUseful:     "This provides reusable knowledge that can be applied to solve problems in this domain.",
		KeyPrinciples: resolveKeyPrinciples(st.DocumentText, st.MainConcepts),
		Prerequisites: []string{"Basic programming knowledge", "Understanding of the problem domain"},
	}
}

// resolveValueName tries the name resolvers in order, scanning lines top to
// bottom; the first match wins.
func resolveValueName(text string) string {
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if m := introducedWithAcronymRe.FindStringSubmatch(line); m != nil {
			return composeName(m[1], m[2])
		}
	}

	for _, line := range lines {
		if m := suffixedWithAcronymRe.FindStringSubmatch(line); m != nil {
			return composeName(m[1], m[2])
		}
	}

	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "novel") {
			continue
		}
		if m := suffixedNameRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if name := headingValueName(lines); name != "" {
		return name
	}

	return placeholderValueName
}

// composeName joins the construct name and its acronym.
func composeName(name, acronym string) string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(name), acronym)
}

// headingValueName scans heading lines for the first mentioning an
// algorithm, then a model, then a framework.
func headingValueName(lines []string) string {
	for _, keyword := range []string{"algorithm", "model", "framework"} {
		for _, line := range lines {
			m := anyHeadingRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			lower := strings.ToLower(m[1])
			if !strings.Contains(lower, keyword) {
				continue
			}
			if keyword == "algorithm" && strings.Contains(lower, "novel") {
				continue
			}
			return m[1]
		}
	}
	return ""
}

// deriveValueType re-derives the type from the chosen name by substring
// match, in priority order; "algorithm" is the default.
func deriveValueType(name string) string {
	lower := strings.ToLower(name)
	for _, t := range valueTypePriority {
		if strings.Contains(lower, t) {
			return t
		}
	}
	return "algorithm"
}

// resolveValueDescription tries the description resolvers in order.
func resolveValueDescription(text, name, valueType, understanding string) string {
	firstWord := ""
	if fields := strings.Fields(name); len(fields) > 0 {
		firstWord = strings.ToLower(fields[0])
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		lower := strings.ToLower(line)
		if firstWord == "" || !strings.Contains(lower, firstWord) {
			continue
		}
		for _, verb := range descriptionVerbs {
			if strings.Contains(lower, verb) {
				return strings.TrimSpace(line)
			}
		}
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, phrase := range descriptionPhrases {
			if strings.Contains(lower, phrase) {
				return strings.TrimSpace(line)
			}
		}
	}

	if sentence := firstSentence(understanding); len(sentence) > 20 {
		return sentence
	}

	return fmt.Sprintf("A %s extracted from the document that can be implemented and applied.", valueType)
}

// firstSentence returns the text up to and including the first period.
func firstSentence(text string) string {
	trimmed := strings.TrimSpace(text)
	if idx := strings.Index(trimmed, "."); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx+1])
	}
	return trimmed
}

// resolveKeyPrinciples takes the first 5 non-trivial concepts, falling back
// to document list items, falling back to a fixed placeholder.
func resolveKeyPrinciples(text string, concepts []string) []string {
	principles := []string{}
	for _, c := range concepts {
		if len(strings.TrimSpace(c)) > 3 {
			principles = append(principles, c)
		}
		if len(principles) == 5 {
			return principles
		}
	}
	if len(principles) > 0 {
		return principles
	}

	for _, item := range listItems(text) {
		if len(item) < 100 {
			principles = append(principles, item)
		}
		if len(principles) == 5 {
			return principles
		}
	}
	if len(principles) > 0 {
		return principles
	}

	return []string{
		"Understand the core methodology described in the source document",
		"Apply the method incrementally, validating each part against the document",
	}
}

// listItemRe matches bullet and numbered list items.
var listItemRe = regexp.MustCompile(`^\s*(?:[-*•+]|\d+[.)])\s+(.+?)\s*$`)

// listItems returns the text of every bullet or numbered list item, marker
// stripped, in document order.
func listItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			items = append(items, m[1])
		}
	}
	return items
}
