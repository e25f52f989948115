// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper2skill/pkg/types"
)

func populatedState() types.State {
	st := types.NewState("text", "papers/deep_dive-report.pdf")
	understanding := "A study of distributed optimization. It covers convergence."
	return st.Merge(types.Update{
		Understanding: &understanding,
		MainConcepts:  []string{"Gradient Descent", "Consensus Protocols"},
		Theorems: []types.Theorem{
			{Name: "Convergence Theorem", Description: "Extracted from document", Type: "theorem"},
		},
		Results: []types.Result{
			{Description: "40% improvement on the benchmark", Type: "empirical result"},
		},
		Tools: []types.Tool{
			{Name: "PyTorch", Description: "training", Type: "library"},
			{Name: "NumPy", Description: "arrays", Type: "library"},
		},
		UsefulValue: &types.UsefulValue{
			Name:          "Distributed Optimization Algorithm (DOA)",
			Type:          "algorithm",
			Description:   "Reduces complexity across nodes.",
			WhyUseful:     "Applies broadly.",
			KeyPrinciples: []string{"Decompose the objective", "Average the gradients"},
			Prerequisites: []string{"Linear algebra"},
		},
		ImplementationGuide: &types.ImplementationGuide{
			Target:              "Distributed Optimization Algorithm (DOA)",
			TargetType:          "algorithm",
			EstimatedComplexity: "Medium",
			Steps: []types.GuideStep{
				{Step: 1, Title: "Understand the Core Concepts", Description: "goal", Details: "details"},
			},
			RequiredTools:      []string{"PyTorch"},
			ExternalResources:  []string{"Original paper/document for detailed specifications"},
			ValidationCriteria: []string{"Implementation produces expected outputs"},
		},
	})
}

// Every accumulated name must appear literally in the rendered markdown.
func TestSkillIncludesAllAccumulatedNames(t *testing.T) {
	st := populatedState()

	md := Skill(st)

	for _, concept := range st.MainConcepts {
		assert.Contains(t, md, concept)
	}
	for _, theorem := range st.Theorems {
		assert.Contains(t, md, theorem.Name)
	}
	for _, tool := range st.Tools {
		assert.Contains(t, md, tool.Name)
	}
	for _, result := range st.Results {
		assert.Contains(t, md, result.Description)
	}
	assert.Contains(t, md, "Distributed Optimization Algorithm (DOA)")
	assert.Contains(t, md, "**Type:** Algorithm")
	assert.Contains(t, md, st.DocumentPath)
}

func TestSkillEmptyStatePlaceholders(t *testing.T) {
	md := Skill(types.NewState("", ""))

	require.NotEmpty(t, md)
	assert.Contains(t, md, "# Skill: Document Analysis")
	assert.Contains(t, md, "*No theorems or propositions found.*")
	assert.Contains(t, md, "*No specific results documented.*")
	assert.Contains(t, md, "*No additional concepts extracted.*")
	assert.Contains(t, md, "*No specific tools identified. Use appropriate tools for your implementation language.*")
	assert.Contains(t, md, "- Basic programming knowledge")
	assert.Contains(t, md, "**Generated from:** Unknown")
}

func TestSkillTitleFromPath(t *testing.T) {
	st := types.NewState("", "papers/deep_dive-report.pdf")

	md := Skill(st)

	assert.Contains(t, md, "# Skill: Deep Dive Report")
}

func TestSkillSectionOrder(t *testing.T) {
	md := Skill(populatedState())

	sections := []string{
		"## What You Will Build",
		"## Why This Is Useful",
		"## Prerequisites",
		"## Core Principles",
		"## Implementation Guide",
		"## Required Tools and Resources",
		"## External Resources",
		"## Validation Criteria",
		"## Supporting Concepts",
		"## Theoretical Foundation",
		"## Expected Results",
		"## Quick Start",
		"## Notes for AI Systems",
	}
	last := -1
	for _, sec := range sections {
		idx := strings.Index(md, sec)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", sec)
		assert.Greater(t, idx, last, "section %s out of order", sec)
		last = idx
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Algorithm", titleCase("algorithm"))
	assert.Equal(t, "Deep Dive", titleCase("deep dive"))
	assert.Equal(t, "", titleCase(""))
}
