// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Theorem is a theorem-like statement (theorem, lemma, proposition)
// discovered in the document text.
type Theorem struct {
	// Name is the display name, taken from the first bold span on the
	// matching line when one exists.
	Name string `json:"name" yaml:"name"`

	// Description is a short note on where the statement came from.
	Description string `json:"description" yaml:"description"`

	// Type categorizes the statement; always "theorem" in the heuristic path.
	Type string `json:"type" yaml:"type"`
}

// Result is an empirical result or measured outcome found in the document.
type Result struct {
	// Description is the source line, trimmed and truncated.
	Description string `json:"description" yaml:"description"`

	// Type categorizes the result; "empirical result" in the heuristic path.
	Type string `json:"type" yaml:"type"`
}

// Tool is a named tool, library, algorithm, or framework mentioned in the
// document.
type Tool struct {
	// Name is the tool name as it appears in the text.
	Name string `json:"name" yaml:"name"`

	// Description explains what the tool is or how the document uses it.
	Description string `json:"description" yaml:"description"`

	// Type categorizes the tool: "tool/library", "algorithm", "framework",
	// or "library".
	Type string `json:"type" yaml:"type"`
}

// UsefulValue is the single most salient named construct the document
// centers on, plus the rationale for implementing it.
type UsefulValue struct {
	// Name is the resolved construct name, possibly with a trailing
	// acronym, e.g. "Distributed Optimization Algorithm (DOA)".
	Name string `json:"name" yaml:"name"`

	// Type is one of "algorithm", "model", "framework", "architecture".
	Type string `json:"type" yaml:"type"`

	// Description says what the construct does, in the document's words
	// where possible.
	Description string `json:"description" yaml:"description"`

	// WhyUseful is a short rationale for building the construct.
	WhyUseful string `json:"why_useful" yaml:"why_useful"`

	// KeyPrinciples lists the ideas an implementer must understand first.
	KeyPrinciples []string `json:"key_principles" yaml:"key_principles"`

	// Prerequisites lists background knowledge assumed by the guide.
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites"`
}

// GuideStep is one ordered step in the implementation guide.
type GuideStep struct {
	Step        int    `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Details     string `json:"details" yaml:"details"`
}

// ImplementationGuide is an ordered, templated build plan for the resolved
// useful value.
type ImplementationGuide struct {
	// Target names what the guide builds; mirrors UsefulValue.Name.
	Target string `json:"target" yaml:"target"`

	// TargetType mirrors UsefulValue.Type.
	TargetType string `json:"target_type" yaml:"target_type"`

	// EstimatedComplexity is always "Medium" in the heuristic path.
	EstimatedComplexity string `json:"estimated_complexity" yaml:"estimated_complexity"`

	Steps              []GuideStep `json:"steps" yaml:"steps"`
	RequiredTools      []string    `json:"required_tools" yaml:"required_tools"`
	ExternalResources  []string    `json:"external_resources" yaml:"external_resources"`
	ValidationCriteria []string    `json:"validation_criteria" yaml:"validation_criteria"`
}
