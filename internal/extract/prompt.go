// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// promptTextLimit caps how much document text is embedded in a prompt.
const promptTextLimit = 4000

var understandingTmpl = template.Must(template.New("understanding").Parse(
	`Analyze this document and provide a comprehensive understanding:

Document:
{{.Text}}

Provide:
1. Main topic and purpose
2. Key themes
3. Target audience
4. Document structure overview
`))

var conceptTmpl = template.Must(template.New("concepts").Parse(
	`Extract key information from this document:

Document:
{{.Text}}

Extract and format as a JSON object with these keys:
1. main_concepts: list of main concepts (strings)
2. theorems: list of theorems/lemmas (objects with name, description, type)
3. results: list of main results/findings (objects with description, type)

Return only valid JSON.
`))

var toolTmpl = template.Must(template.New("tools").Parse(
	`Identify all tools, methods, algorithms, and frameworks from this document:

Document:
{{.Text}}

For each tool, provide a JSON object with:
- name: the name of the tool
- description: what it does and how it is used
- type: category (algorithm, framework, library, tool/library)

Return a JSON array only. Include tools even if they do not exist yet but are described.
`))

var valueTmpl = template.Must(template.New("value").Parse(
	`Identify the single most useful thing this document teaches: the core
algorithm, model, framework, or architecture a reader could implement.

Document:
{{.Text}}

Known concepts: {{.Concepts}}

Return a JSON object with: name, type (algorithm|model|framework|architecture),
description, why_useful, key_principles (list of strings), prerequisites
(list of strings). Return only valid JSON.
`))

var guideTmpl = template.Must(template.New("guide").Parse(
	`Produce an ordered implementation plan for building {{.Target}}.

Available tools: {{.Tools}}

Return a JSON object with: target, target_type, estimated_complexity,
steps (list of objects with step, title, description, details),
required_tools, external_resources, validation_criteria. Return only valid JSON.
`))

func understandingPrompt(text string) string {
	return renderPrompt(understandingTmpl, map[string]string{"Text": truncateRunes(text, promptTextLimit)})
}

func conceptPrompt(text string) string {
	return renderPrompt(conceptTmpl, map[string]string{"Text": truncateRunes(text, promptTextLimit)})
}

func toolPrompt(text string) string {
	return renderPrompt(toolTmpl, map[string]string{"Text": truncateRunes(text, promptTextLimit)})
}

func valuePrompt(st types.State) string {
	return renderPrompt(valueTmpl, map[string]string{
		"Text":     truncateRunes(st.DocumentText, promptTextLimit),
		"Concepts": strings.Join(st.MainConcepts, "; "),
	})
}

func guidePrompt(st types.State) string {
	target := placeholderValueName
	if st.UsefulValue != nil {
		target = st.UsefulValue.Name
	}
	return renderPrompt(guideTmpl, map[string]string{
		"Target": target,
		"Tools":  strings.Join(firstToolNames(st.Tools, 5), ", "),
	})
}

// renderPrompt executes a prompt template; templates here cannot fail on
// string data, so errors surface as an empty prompt.
func renderPrompt(tmpl *template.Template, data map[string]string) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}
