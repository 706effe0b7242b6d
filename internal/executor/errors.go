// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package executor

import "errors"

// Sentinel errors surfaced inside step failure messages. Callers match
// them with [errors.Is]; over the wire they travel as plain strings inside
// the failed step.
var (
	// ErrTargetExists is returned when a move would replace an existing
	// file and the step does not carry the overwrite flag.
	ErrTargetExists = errors.New("target already exists")

	// ErrUnsupportedStep is returned for step types the executor does
	// not know.
	ErrUnsupportedStep = errors.New("unsupported step type")

	// ErrPlanTimeout is returned when the per-plan deadline expires
	// before all steps have run. Remaining steps are abandoned; completed
	// ones stay completed.
	ErrPlanTimeout = errors.New("plan execution timed out")

	// ErrBadArchiveEntry is returned when an archive member would escape
	// the unpack target directory.
	ErrBadArchiveEntry = errors.New("archive entry escapes target directory")
)
