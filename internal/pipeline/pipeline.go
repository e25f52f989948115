// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the fixed sequence of extraction stages over one
// document, threading the accumulating State through each stage.
// See docs/ARCHITECTURE § Extraction Pipeline.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper2skill/pkg/types"
)

// Stage is one self-contained extraction step. Apply reads the accumulated
// state and returns a partial update; it must not modify the state it
// receives. The heuristic path of every stage is a pure function of the
// state, so runs are reentrant and independent runs may execute in parallel.
type Stage interface {
	// Name identifies the stage in error messages.
	Name() string

	// Apply produces the stage's contribution to the state.
	Apply(ctx context.Context, st types.State) (types.Update, error)
}

// Run executes stages in order, merging each stage's update into the state.
// On the first stage failure it records the message in State.Error and stops;
// fields written by earlier stages remain in the returned state so a caller
// can attempt partial recovery. A set Error is fatal for the run: no skill
// document should be rendered from it.
func Run(ctx context.Context, st types.State, stages []Stage) types.State {
	for _, stage := range stages {
		upd, err := applyStage(ctx, stage, st)
		if err != nil {
			st.Error = err.Error()
			return st
		}
		st = st.Merge(upd)
	}
	return st
}

// applyStage invokes one stage, converting a panic inside the stage into an
// error so a misbehaving stage cannot take down the whole run.
func applyStage(ctx context.Context, stage Stage, st types.State) (upd types.Update, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", stage.Name(), r)
		}
	}()

	upd, err = stage.Apply(ctx, st)
	if err != nil {
		return types.Update{}, fmt.Errorf("%s: %w", stage.Name(), err)
	}
	return upd, nil
}
