// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// UnderstandingStage summarizes the gross shape of the document. The
// heuristic path reports word and line counts; the model path asks for a
// short reading of the document's topic and structure.
type UnderstandingStage struct {
	Model Completer
}

// Name implements pipeline.Stage.
func (s *UnderstandingStage) Name() string { return "understanding" }

// Apply implements pipeline.Stage.
func (s *UnderstandingStage) Apply(ctx context.Context, st types.State) (types.Update, error) {
	understanding := summarizeText(st.DocumentText)

	if s.Model != nil {
		if resp, err := s.Model.Complete(ctx, understandingPrompt(st.DocumentText)); err == nil {
			if trimmed := strings.TrimSpace(resp); trimmed != "" {
				understanding = trimmed
			}
		}
	}

	return types.Update{Understanding: &understanding}, nil
}

// summarizeText produces the heuristic document analysis from raw text.
func summarizeText(text string) string {
	words := len(strings.Fields(text))
	lines := strings.Count(text, "\n") + 1

	return fmt.Sprintf(`Document Analysis:
- Total words: %d
- Total lines: %d
- Document appears to contain technical/academic content
- Structure includes multiple sections and paragraphs
`, words, lines)
}
