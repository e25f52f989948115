// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements the five extraction stages that turn raw
// document text into a structured skill record: understanding, concepts,
// tools, useful value, and implementation guide.
//
// Every stage has a heuristic path that works on pattern matching alone and
// never fails on well-formed string input. When a Completer is injected the
// stage first asks the model and falls back to the heuristic path on any
// call or parse failure.
// See docs/ARCHITECTURE § Extraction Stages.
package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pdiddy/paper2skill/internal/pipeline"
)

// Completer abstracts the text-completion API so tests can supply a mock and
// the heuristic path can run with no model at all. Implementations live in
// internal/model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Stages builds the fixed stage sequence for one pipeline run. A nil
// completer selects the heuristic path for every stage. knownLibraries
// extends the tool allow-list; nil keeps the default list.
func Stages(completer Completer, knownLibraries []string) []pipeline.Stage {
	known := DefaultKnownLibraries
	if knownLibraries != nil {
		known = knownLibraries
	}
	return []pipeline.Stage{
		&UnderstandingStage{Model: completer},
		&ConceptStage{Model: completer},
		&ToolStage{Model: completer, Known: known},
		&ValueStage{Model: completer},
		&GuideStage{Model: completer},
	}
}

// completeJSON sends a prompt to the model and unmarshals the response into
// out. Models often wrap JSON in markdown fences; those are stripped before
// parsing. Any failure is returned so the caller can degrade to its
// heuristic path.
func completeJSON(ctx context.Context, m Completer, prompt string, out any) error {
	raw, err := m.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(stripFences(raw)), out)
}

// stripFences removes a surrounding markdown code fence from a model
// response, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
