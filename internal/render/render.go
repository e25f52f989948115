// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a final pipeline state into a self-contained Skill.md
// document. Every section falls back to a placeholder when its source data
// is absent, so rendering never fails on a sparse state.
// See docs/ARCHITECTURE § Rendering.
package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// skillTmpl is the Skill.md skeleton. Section bodies are preformatted
// strings so each formatter stays independently testable.
var skillTmpl = template.Must(template.New("skill").Parse(`# Skill: {{.SkillName}}

**Type:** {{.SkillType}}
**Generated from:** {{.SourceDocument}}
**Generated on:** {{.Timestamp}}

---

## What You Will Build

{{.WhatYouWillBuild}}

---

## Why This Is Useful

{{.WhyUseful}}

---

## Prerequisites

{{.Prerequisites}}

---

## Core Principles

{{.CorePrinciples}}

---

## Implementation Guide

{{.ImplementationSteps}}

---

## Required Tools and Resources

{{.Tools}}

---

## External Resources

{{.ExternalResources}}

---

## Validation Criteria

{{.ValidationCriteria}}

---

## Supporting Concepts

{{.Concepts}}

---

## Theoretical Foundation

{{.Theorems}}

---

## Expected Results

{{.Results}}

---

## Quick Start

To implement this skill:

1. Review the **Prerequisites** to ensure you have the necessary background
2. Study the **Core Principles** to understand the fundamental concepts
3. Follow the **Implementation Guide** step by step
4. Use the **Required Tools** as specified
5. Validate your implementation against the **Validation Criteria**

---

## Notes for AI Systems

This skill document is designed to be actionable and self-contained:

- Focus on the **Implementation Guide** for step-by-step instructions
- Use **Core Principles** to understand the underlying theory
- Reference **External Resources** for additional context if needed
- The goal is to BUILD and IMPLEMENT, not just understand

---

*End of Skill Document*
`))

// now is stubbed in tests that assert on full output.
var now = time.Now

// Skill renders the final pipeline state as a markdown skill document.
func Skill(st types.State) string {
	value := st.UsefulValue
	if value == nil {
		value = &types.UsefulValue{}
	}
	guide := st.ImplementationGuide
	if guide == nil {
		guide = &types.ImplementationGuide{}
	}

	skillName := value.Name
	if skillName == "" {
		skillName = titleFromPath(st.DocumentPath)
	}
	skillType := value.Type
	if skillType == "" {
		skillType = "skill"
	}
	build := value.Description
	if build == "" {
		build = overview(st.Understanding, st.MainConcepts)
	}
	whyUseful := value.WhyUseful
	if whyUseful == "" {
		whyUseful = "This provides reusable knowledge that can be applied to solve problems in this domain."
	}
	source := st.DocumentPath
	if source == "" {
		source = "Unknown"
	}

	data := map[string]string{
		"SkillName":           skillName,
		"SkillType":           titleCase(skillType),
		"SourceDocument":      source,
		"Timestamp":           now().UTC().Format("2006-01-02 15:04:05 UTC"),
		"WhatYouWillBuild":    build,
		"WhyUseful":           whyUseful,
		"Prerequisites":       formatPrerequisites(value.Prerequisites),
		"CorePrinciples":      formatCorePrinciples(value.KeyPrinciples, st.MainConcepts),
		"ImplementationSteps": formatSteps(guide.Steps),
		"Tools":               formatTools(st.Tools, guide.RequiredTools),
		"ExternalResources":   formatExternalResources(guide.ExternalResources),
		"ValidationCriteria":  formatValidationCriteria(guide.ValidationCriteria),
		"Concepts":            formatConcepts(st.MainConcepts),
		"Theorems":            formatTheorems(st.Theorems),
		"Results":             formatResults(st.Results),
	}

	var buf bytes.Buffer
	if err := skillTmpl.Execute(&buf, data); err != nil {
		// The template only reads string map keys; execution cannot fail
		// on this data shape.
		return ""
	}
	return buf.String()
}

// titleFromPath derives a display title from the document filename.
func titleFromPath(path string) string {
	if path == "" {
		return "Document Analysis"
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return titleCase(stem)
}

// titleCase upcases the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// overview builds a fallback description from the understanding text and
// concept count.
func overview(understanding string, concepts []string) string {
	var parts []string

	if understanding != "" {
		var sentences []string
		for _, s := range strings.Split(understanding, ".") {
			if t := strings.TrimSpace(s); t != "" {
				sentences = append(sentences, t)
			}
			if len(sentences) == 3 {
				break
			}
		}
		if len(sentences) > 0 {
			parts = append(parts, strings.Join(sentences, ". ")+".")
		}
	}

	if len(concepts) > 0 {
		parts = append(parts, fmt.Sprintf(
			"This document covers %d main concepts and provides comprehensive analysis of the subject matter.",
			len(concepts)))
	}

	if len(parts) == 0 {
		return "No overview available."
	}
	return strings.Join(parts, "\n\n")
}

func formatPrerequisites(prerequisites []string) string {
	if len(prerequisites) == 0 {
		return "- Basic programming knowledge\n- Understanding of the problem domain"
	}
	var b strings.Builder
	for _, p := range prerequisites {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCorePrinciples(keyPrinciples, concepts []string) string {
	principles := keyPrinciples
	if len(principles) == 0 {
		if len(concepts) > 5 {
			principles = concepts[:5]
		} else {
			principles = concepts
		}
	}
	if len(principles) == 0 {
		return "*Core principles will be derived from the implementation.*"
	}
	var b strings.Builder
	for i, p := range principles {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSteps(steps []types.GuideStep) string {
	if len(steps) == 0 {
		return `### Step 1: Understand the Core Concepts
Review the core principles and prerequisites before implementing.

### Step 2: Set Up Environment
Install required tools and dependencies.

### Step 3: Implement Core Logic
Build the main components following the principles.

### Step 4: Test and Validate
Verify implementation against validation criteria.`
	}
	var b strings.Builder
	for _, step := range steps {
		fmt.Fprintf(&b, "### Step %d: %s\n\n", step.Step, step.Title)
		if step.Description != "" {
			fmt.Fprintf(&b, "**Goal:** %s\n\n", step.Description)
		}
		if step.Details != "" {
			fmt.Fprintf(&b, "%s\n\n", step.Details)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTools(tools []types.Tool, requiredTools []string) string {
	var b strings.Builder

	if len(requiredTools) > 0 {
		b.WriteString("### Required for Implementation\n\n")
		for _, t := range requiredTools {
			fmt.Fprintf(&b, "- **%s**\n", t)
		}
		b.WriteString("\n")
	}

	if len(tools) > 0 {
		b.WriteString("### Tools from Document\n\n")
		for i, tool := range tools {
			desc := tool.Description
			if desc == "" {
				desc = "No description available"
			}
			toolType := tool.Type
			if toolType == "" {
				toolType = "tool"
			}
			fmt.Fprintf(&b, "**%d. %s** (%s)\n   %s\n\n", i+1, tool.Name, toolType, desc)
		}
	}

	if b.Len() == 0 {
		return "*No specific tools identified. Use appropriate tools for your implementation language.*"
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatExternalResources(resources []string) string {
	if len(resources) == 0 {
		return "- Original paper/document for detailed specifications\n- Related implementations for reference"
	}
	var b strings.Builder
	for _, r := range resources {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatValidationCriteria(criteria []string) string {
	if len(criteria) == 0 {
		return "- Implementation produces expected outputs\n- Performance matches documented benchmarks\n- All core features are functional"
	}
	var b strings.Builder
	for i, c := range criteria {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatConcepts(concepts []string) string {
	if len(concepts) == 0 {
		return "*No additional concepts extracted.*"
	}
	var b strings.Builder
	for i, c := range concepts {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, c)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTheorems(theorems []types.Theorem) string {
	if len(theorems) == 0 {
		return "*No theorems or propositions found.*"
	}
	var b strings.Builder
	for i, th := range theorems {
		desc := th.Description
		if desc == "" {
			desc = "No description"
		}
		thType := th.Type
		if thType == "" {
			thType = "theorem"
		}
		fmt.Fprintf(&b, "### %d. %s\n\n**Type:** %s\n\n**Description:** %s\n\n", i+1, th.Name, thType, desc)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatResults(results []types.Result) string {
	if len(results) == 0 {
		return "*No specific results documented.*"
	}
	var b strings.Builder
	for i, r := range results {
		desc := r.Description
		if desc == "" {
			desc = "No description"
		}
		rType := r.Type
		if rType == "" {
			rType = "result"
		}
		fmt.Fprintf(&b, "### Result %d\n\n**Type:** %s\n\n**Finding:** %s\n\n", i+1, rType, desc)
	}
	return strings.TrimRight(b.String(), "\n")
}
