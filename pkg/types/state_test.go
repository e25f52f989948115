// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestNewState(t *testing.T) {
	st := NewState("some text", "doc.md")

	assert.Equal(t, "some text", st.DocumentText)
	assert.Equal(t, "doc.md", st.DocumentPath)
	assert.False(t, st.Written(FieldUnderstanding))
	assert.False(t, st.Written(FieldTools))
}

func TestMergeFillsUnsetFields(t *testing.T) {
	st := NewState("text", "doc.md")

	st = st.Merge(Update{Understanding: strptr("analysis")})
	st = st.Merge(Update{
		MainConcepts: []string{"Gradient Descent"},
		Theorems:     []Theorem{{Name: "Convergence Theorem", Type: "theorem"}},
		Results:      []Result{},
	})

	assert.Equal(t, "analysis", st.Understanding)
	assert.Equal(t, []string{"Gradient Descent"}, st.MainConcepts)
	assert.True(t, st.Written(FieldUnderstanding))
	assert.True(t, st.Written(FieldMainConcepts))
	assert.True(t, st.Written(FieldTheorems))
	// An empty but non-nil slice still counts as written.
	assert.True(t, st.Written(FieldResults))
	assert.False(t, st.Written(FieldTools))
}

func TestMergeNeverOverwrites(t *testing.T) {
	st := NewState("text", "doc.md")
	st = st.Merge(Update{Understanding: strptr("first")})

	st = st.Merge(Update{Understanding: strptr("second")})

	assert.Equal(t, "first", st.Understanding)
}

func TestMergeNilFieldsAreAbsent(t *testing.T) {
	st := NewState("text", "doc.md")

	st = st.Merge(Update{})

	assert.False(t, st.Written(FieldMainConcepts))
	assert.Nil(t, st.MainConcepts)
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	st := NewState("text", "doc.md")

	merged := st.Merge(Update{Understanding: strptr("analysis")})

	assert.False(t, st.Written(FieldUnderstanding))
	assert.Empty(t, st.Understanding)
	assert.True(t, merged.Written(FieldUnderstanding))
}
