// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// fakeStage is a scriptable stage for orchestrator tests.
type fakeStage struct {
	name  string
	apply func(types.State) (types.Update, error)
}

func (f fakeStage) Name() string { return f.name }

func (f fakeStage) Apply(_ context.Context, st types.State) (types.Update, error) {
	return f.apply(st)
}

func understandingStage(text string) Stage {
	return fakeStage{name: "understand", apply: func(types.State) (types.Update, error) {
		return types.Update{Understanding: &text}, nil
	}}
}

func TestRunThreadsStateThroughStages(t *testing.T) {
	concepts := fakeStage{name: "concepts", apply: func(st types.State) (types.Update, error) {
		// A later stage sees the earlier stage's output.
		if st.Understanding == "" {
			return types.Update{}, fmt.Errorf("understanding not populated")
		}
		return types.Update{MainConcepts: []string{"Concept A"}}, nil
	}}

	st := Run(context.Background(), types.NewState("text", "doc.md"),
		[]Stage{understandingStage("stats"), concepts})

	assert.Empty(t, st.Error)
	assert.Equal(t, "stats", st.Understanding)
	assert.Equal(t, []string{"Concept A"}, st.MainConcepts)
}

func TestRunStageErrorHaltsAndPreservesEarlierFields(t *testing.T) {
	failing := fakeStage{name: "tools", apply: func(types.State) (types.Update, error) {
		return types.Update{}, fmt.Errorf("scan blew up")
	}}
	never := fakeStage{name: "value", apply: func(types.State) (types.Update, error) {
		t.Fatal("stage after a failure must not run")
		return types.Update{}, nil
	}}

	st := Run(context.Background(), types.NewState("text", "doc.md"),
		[]Stage{understandingStage("stats"), failing, never})

	assert.Contains(t, st.Error, "tools")
	assert.Contains(t, st.Error, "scan blew up")
	assert.Equal(t, "stats", st.Understanding)
}

func TestRunRecoversStagePanic(t *testing.T) {
	panicking := fakeStage{name: "concepts", apply: func(types.State) (types.Update, error) {
		panic("index out of range")
	}}

	st := Run(context.Background(), types.NewState("text", "doc.md"),
		[]Stage{understandingStage("stats"), panicking})

	assert.Contains(t, st.Error, "concepts")
	assert.Contains(t, st.Error, "index out of range")
	assert.Equal(t, "stats", st.Understanding)
}

func TestRunNoStagesReturnsInputState(t *testing.T) {
	st := Run(context.Background(), types.NewState("text", "doc.md"), nil)

	assert.Empty(t, st.Error)
	assert.Equal(t, "text", st.DocumentText)
}
