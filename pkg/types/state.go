// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Field keys for State.Written. Each extraction stage owns a disjoint set of
// keys and writes each key at most once.
const (
	FieldUnderstanding       = "understanding"
	FieldMainConcepts        = "main_concepts"
	FieldTheorems            = "theorems"
	FieldResults             = "results"
	FieldTools               = "tools"
	FieldUsefulValue         = "useful_value"
	FieldImplementationGuide = "implementation_guide"
)

// State is the record threaded through all extraction stages for one
// document run. The two input fields are set once at construction and never
// mutated; every other field is written exactly once, by its owning stage,
// through Merge. A State has no existence beyond one run.
type State struct {
	// DocumentText is the raw extracted text of the document.
	DocumentText string `json:"document_text" yaml:"document_text"`

	// DocumentPath is the originating file path.
	DocumentPath string `json:"document_path" yaml:"document_path"`

	// Understanding summarizes gross document statistics or, in the
	// model-backed path, the model's reading of the document.
	Understanding string `json:"understanding,omitempty" yaml:"understanding,omitempty"`

	// MainConcepts holds up to 10 concept strings in discovery order,
	// with no duplicates.
	MainConcepts []string `json:"main_concepts,omitempty" yaml:"main_concepts,omitempty"`

	// Theorems holds up to 5 theorem-like statements in discovery order.
	Theorems []Theorem `json:"theorems,omitempty" yaml:"theorems,omitempty"`

	// Results holds up to 5 empirical results in discovery order.
	Results []Result `json:"results,omitempty" yaml:"results,omitempty"`

	// Tools holds up to 10 tools in discovery order, deduplicated by name.
	Tools []Tool `json:"tools,omitempty" yaml:"tools,omitempty"`

	// UsefulValue is the resolved core construct, or nil when the value
	// stage has not run.
	UsefulValue *UsefulValue `json:"useful_value,omitempty" yaml:"useful_value,omitempty"`

	// ImplementationGuide is the templated build plan, or nil when the
	// guide stage has not run.
	ImplementationGuide *ImplementationGuide `json:"implementation_guide,omitempty" yaml:"implementation_guide,omitempty"`

	// Error records a stage failure message. When set, no further stages
	// ran; fields written by earlier stages remain populated.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// written tracks which field keys have been merged, so Merge never
	// overwrites an owning stage's output.
	written map[string]bool
}

// Update is one stage's partial contribution to the State. A nil field means
// the stage did not produce that key; stages that legitimately found nothing
// return empty (non-nil) slices so the key still counts as written.
type Update struct {
	Understanding       *string
	MainConcepts        []string
	Theorems            []Theorem
	Results             []Result
	Tools               []Tool
	UsefulValue         *UsefulValue
	ImplementationGuide *ImplementationGuide
}

// NewState creates a fresh per-run State with only the input fields set.
func NewState(documentText, documentPath string) State {
	return State{
		DocumentText: documentText,
		DocumentPath: documentPath,
		written:      map[string]bool{},
	}
}

// Written reports whether the given field key has been merged into the state.
func (s State) Written(field string) bool {
	return s.written[field]
}

// Merge returns a copy of the state with the update's present fields filled
// in. The merge is append-only over distinct keys: a key already written by
// an earlier stage is never overwritten, so partial progress survives later
// failures.
func (s State) Merge(u Update) State {
	out := s
	out.written = make(map[string]bool, len(s.written)+4)
	for k := range s.written {
		out.written[k] = true
	}

	if u.Understanding != nil && !out.written[FieldUnderstanding] {
		out.Understanding = *u.Understanding
		out.written[FieldUnderstanding] = true
	}
	if u.MainConcepts != nil && !out.written[FieldMainConcepts] {
		out.MainConcepts = u.MainConcepts
		out.written[FieldMainConcepts] = true
	}
	if u.Theorems != nil && !out.written[FieldTheorems] {
		out.Theorems = u.Theorems
		out.written[FieldTheorems] = true
	}
	if u.Results != nil && !out.written[FieldResults] {
		out.Results = u.Results
		out.written[FieldResults] = true
	}
	if u.Tools != nil && !out.written[FieldTools] {
		out.Tools = u.Tools
		out.written[FieldTools] = true
	}
	if u.UsefulValue != nil && !out.written[FieldUsefulValue] {
		out.UsefulValue = u.UsefulValue
		out.written[FieldUsefulValue] = true
	}
	if u.ImplementationGuide != nil && !out.written[FieldImplementationGuide] {
		out.ImplementationGuide = u.ImplementationGuide
		out.written[FieldImplementationGuide] = true
	}

	return out
}
