// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

// Package executor runs operation plans against the local filesystem.
//
// A plan is an ordered action sequence for a single file. Steps run
// strictly sequentially and there is no rollback: filesystem operations
// are not transactional, and a plan that fails halfway reports partial
// completion with the file's last known location instead of pretending
// the earlier steps never happened.
package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
)

// FileExecutor abstracts the file actions a plan step can request. The OS
// implementation is [OSFileExecutor]; tests substitute function-backed
// fakes.
type FileExecutor interface {
	// Move relocates src to dst, creating intermediate directories. An
	// existing dst fails the step unless overwrite is set.
	Move(ctx context.Context, src, dst models.ClientPath, overwrite bool) error

	// Rename changes the file's leaf name within its current directory
	// and returns the resulting path.
	Rename(ctx context.Context, src models.ClientPath, newName string) (models.ClientPath, error)

	// Unpack expands the archive at src into targetDir. Produced files
	// are not tracked by the plan.
	Unpack(ctx context.Context, src, targetDir models.ClientPath) error

	// Delete removes the file. Deleting an already absent file is a
	// success.
	Delete(ctx context.Context, path models.ClientPath) error
}

// DestinationRecorder receives the auto-capture feedback: the directory a
// file ended up in after a successful move or unpack. The destination
// service implements it on top of the destination store.
type DestinationRecorder interface {
	RecordDestination(ctx context.Context, dir models.ClientPath, category string) error
}

// PlanExecutor drives plans through a [FileExecutor] and reports captured
// destinations to a [DestinationRecorder].
type PlanExecutor struct {
	fs          FileExecutor
	recorder    DestinationRecorder
	planTimeout time.Duration
	parallelism int
	logger      *logger.Logger
}

// NewPlanExecutor wires a plan executor from its dependencies and the
// executor configuration.
func NewPlanExecutor(fs FileExecutor, recorder DestinationRecorder, cfg config.Executor, log *logger.Logger) *PlanExecutor {
	log.Debug().
		Dur("plan_timeout", cfg.PlanTimeout).
		Int("batch_parallelism", cfg.BatchParallelism).
		Msg("creating plan executor")
	return &PlanExecutor{
		fs:          fs,
		recorder:    recorder,
		planTimeout: cfg.PlanTimeout,
		parallelism: cfg.BatchParallelism,
		logger:      log,
	}
}

// Execute runs one plan to completion or first failure.
//
// Steps run in ascending Order. After each success the file's live
// location (currentPath) becomes the implicit source of the next step. The
// first failure halts the plan immediately; completed steps are not rolled
// back. The per-plan deadline counts as a step failure with the last known
// path.
//
// On success or partial completion, if the last completed step was a move
// or an unpack, the resulting directory is reported to the recorder. A
// capture failure is logged and ignored: the file operations already
// happened and their outcome must not be re-labelled over a bookkeeping
// error.
func (e *PlanExecutor) Execute(ctx context.Context, plan models.OperationPlan) models.ExecutionResult {
	log := logger.FromContext(ctx)

	planCtx, cancel := context.WithTimeout(ctx, e.planTimeout)
	defer cancel()

	res := models.ExecutionResult{
		SourcePath:  plan.SourcePath,
		CurrentPath: plan.SourcePath,
	}

	steps := make([]models.Step, len(plan.Steps))
	copy(steps, plan.Steps)
	slices.SortStableFunc(steps, func(a, b models.Step) int { return a.Order - b.Order })

	current := plan.SourcePath
	for _, step := range steps {
		if err := planCtx.Err(); err != nil {
			e.failPlan(&res, step, fmt.Errorf("%w: %w", ErrPlanTimeout, err))
			break
		}

		next, err := e.applyStep(planCtx, current, step)
		if err != nil {
			log.Warn().
				Str("func", "PlanExecutor.Execute").
				Str("source_path", string(plan.SourcePath)).
				Int("step_order", step.Order).
				Str("step_type", string(step.Type)).
				Err(err).
				Msg("plan step failed, halting plan")
			e.failPlan(&res, step, err)
			break
		}

		current = next
		step.Status = models.StepStatusSuccess
		res.CompletedSteps = append(res.CompletedSteps, step)
		res.CurrentPath = current
	}

	if res.FinalStatus == "" {
		res.FinalStatus = models.FinalStatusSuccess
	}

	// Capture runs on the parent context: an expired plan deadline must
	// not suppress recording what did complete.
	e.capture(ctx, plan, &res)

	return res
}

// ExecuteAll runs independent plans concurrently, bounded by the
// configured batch parallelism. Results keep the input order; a failure in
// one plan never affects another.
func (e *PlanExecutor) ExecuteAll(ctx context.Context, plans []models.OperationPlan) []models.ExecutionResult {
	results := make([]models.ExecutionResult, len(plans))

	var g errgroup.Group
	g.SetLimit(e.parallelism)
	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			results[i] = e.Execute(ctx, plan)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // per-plan outcomes live in results

	return results
}

func (e *PlanExecutor) applyStep(ctx context.Context, current models.ClientPath, step models.Step) (models.ClientPath, error) {
	switch step.Type {
	case models.StepTypeMove:
		if err := e.fs.Move(ctx, current, step.TargetPath, step.Metadata.Overwrite); err != nil {
			return current, err
		}
		return step.TargetPath, nil

	case models.StepTypeRename:
		return e.fs.Rename(ctx, current, filepath.Base(string(step.TargetPath)))

	case models.StepTypeUnpack:
		// The archive itself stays where it is; a follow-up delete step
		// is how plans dispose of it.
		return current, e.fs.Unpack(ctx, current, step.TargetPath)

	case models.StepTypeDelete:
		return current, e.fs.Delete(ctx, current)
	}

	return current, fmt.Errorf("%w: %q", ErrUnsupportedStep, step.Type)
}

func (e *PlanExecutor) failPlan(res *models.ExecutionResult, step models.Step, err error) {
	step.Status = models.StepStatusFailed
	step.Error = err.Error()
	res.FailedStep = &step
	res.Error = err.Error()
	if len(res.CompletedSteps) == 0 {
		res.FinalStatus = models.FinalStatusFailed
	} else {
		res.FinalStatus = models.FinalStatusPartial
	}
}

func (e *PlanExecutor) capture(ctx context.Context, plan models.OperationPlan, res *models.ExecutionResult) {
	if len(res.CompletedSteps) == 0 {
		return
	}

	last := res.CompletedSteps[len(res.CompletedSteps)-1]

	var dir models.ClientPath
	switch last.Type {
	case models.StepTypeMove:
		dir = models.ClientPath(filepath.Dir(string(last.TargetPath)))
	case models.StepTypeUnpack:
		dir = last.TargetPath
	default:
		return
	}

	category := plan.Category
	if category == "" {
		category = "auto"
	}

	if err := e.recorder.RecordDestination(ctx, dir, category); err != nil {
		logger.FromContext(ctx).Warn().
			Str("func", "PlanExecutor.capture").
			Str("dir", string(dir)).
			Err(err).
			Msg("failed to auto-capture destination")
	}
}
