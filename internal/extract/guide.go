// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// fallbackToolList is used in the environment step when the document named
// no tools.
const fallbackToolList = "standard development tools for your language of choice"

// GuideStage synthesizes the ordered build plan from the resolved value and
// identified tools. The plan is deliberately templated: a fixed five-step
// structure with only the value name and tool names substituted in.
type GuideStage struct {
	Model Completer
}

// Name implements pipeline.Stage.
func (s *GuideStage) Name() string { return "implementation-guide" }

// Apply implements pipeline.Stage.
func (s *GuideStage) Apply(ctx context.Context, st types.State) (types.Update, error) {
	if s.Model != nil {
		var g types.ImplementationGuide
		if err := completeJSON(ctx, s.Model, guidePrompt(st), &g); err == nil && len(g.Steps) > 0 {
			return types.Update{ImplementationGuide: &g}, nil
		}
	}

	g := buildGuide(st.UsefulValue, st.Tools)
	return types.Update{ImplementationGuide: &g}, nil
}

// buildGuide produces the fixed five-step plan. The value may be nil when
// the guide stage runs without a preceding value stage.
func buildGuide(value *types.UsefulValue, tools []types.Tool) types.ImplementationGuide {
	name := placeholderValueName
	valueType := "algorithm"
	if value != nil {
		name = value.Name
		valueType = value.Type
	}

	toolNames := firstToolNames(tools, 5)
	toolList := fallbackToolList
	if len(toolNames) > 0 {
		toolList = strings.Join(toolNames, ", ")
	}

	steps := []types.GuideStep{
		{
			Step:        1,
			Title:       "Understand the Core Concepts",
			Description: fmt.Sprintf("Build a working understanding of %s before writing code.", name),
			Details:     fmt.Sprintf("Read the source document's description of %s and restate its key principles in your own words.", name),
		},
		{
			Step:        2,
			Title:       "Set Up Environment",
			Description: fmt.Sprintf("Prepare the tools and dependencies needed to implement %s.", name),
			Details:     fmt.Sprintf("Install and configure: %s.", toolList),
		},
		{
			Step:        3,
			Title:       "Implement Core Components",
			Description: fmt.Sprintf("Build the main components of %s.", name),
			Details:     fmt.Sprintf("Implement each part of %s separately, following the core principles, before wiring them together.", name),
		},
		{
			Step:        4,
			Title:       "Integrate and Test",
			Description: fmt.Sprintf("Combine the components into a working %s implementation.", name),
			Details:     fmt.Sprintf("Exercise %s end to end on small inputs and compare behavior against the document's description.", name),
		},
		{
			Step:        5,
			Title:       "Optimize and Deploy",
			Description: fmt.Sprintf("Tune %s and prepare it for real use.", name),
			Details:     fmt.Sprintf("Profile %s, address bottlenecks, and package the implementation for its target environment.", name),
		},
	}

	requiredTools := toolNames
	if len(requiredTools) == 0 {
		requiredTools = []string{"A programming language of choice"}
	}

	return types.ImplementationGuide{
		Target:              name,
		TargetType:          valueType,
		EstimatedComplexity: "Medium",
		Steps:               steps,
		RequiredTools:       requiredTools,
		ExternalResources: []string{
			"Original paper/document for detailed specifications",
			"Related implementations for reference",
		},
		ValidationCriteria: []string{
			"Implementation produces expected outputs",
			"Performance matches documented benchmarks",
		},
	}
}

// firstToolNames returns up to n tool names verbatim, in discovery order.
func firstToolNames(tools []types.Tool, n int) []string {
	var names []string
	for _, t := range tools {
		names = append(names, t.Name)
		if len(names) == n {
			break
		}
	}
	return names
}
