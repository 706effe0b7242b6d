// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package models

// StepType identifies one file action inside an operation plan.
type StepType string

const (
	StepTypeMove   StepType = "move"
	StepTypeRename StepType = "rename"
	StepTypeUnpack StepType = "unpack"
	StepTypeDelete StepType = "delete"
)

// Valid reports whether t is one of the supported step types.
func (t StepType) Valid() bool {
	switch t {
	case StepTypeMove, StepTypeRename, StepTypeUnpack, StepTypeDelete:
		return true
	}
	return false
}

// StepStatus tracks the lifecycle of a single step during execution.
type StepStatus string

const (
	StepStatusPending StepStatus = "pending"
	StepStatusSuccess StepStatus = "success"
	StepStatusFailed  StepStatus = "failed"
)

// StepMetadata carries per-step execution modifiers.
type StepMetadata struct {
	// Overwrite allows a move to replace an existing target file.
	Overwrite bool `json:"overwrite,omitempty"`
}

// Step is one ordered action in an operation plan. The file's live location
// after the previous step is the implicit source; TargetPath is the step's
// destination and is empty for delete steps.
type Step struct {
	Order      int          `json:"order"`
	Type       StepType     `json:"type"`
	TargetPath ClientPath   `json:"target_path,omitempty"`
	Metadata   StepMetadata `json:"metadata,omitempty"`
	Status     StepStatus   `json:"status,omitempty"`

	// Error carries the failure message when Status is failed.
	Error string `json:"error,omitempty"`
}

// OperationPlan is the ordered action sequence for a single file, produced
// by the suggestion layer and consumed exactly once by the executor. Plans
// are ephemeral: they live for one organize-then-execute request cycle and
// are not persisted beyond the audit log.
type OperationPlan struct {
	SourcePath ClientPath `json:"source_path"`
	Steps      []Step     `json:"steps"`

	// Category optionally labels the file's classification so that an
	// auto-captured destination records something more useful than a
	// bare path.
	Category string `json:"category,omitempty"`
}

// FinalStatus summarizes the outcome of executing one plan.
type FinalStatus string

const (
	// FinalStatusSuccess means every step completed.
	FinalStatusSuccess FinalStatus = "success"

	// FinalStatusPartial means at least one but not all steps completed.
	// Completed steps are NOT rolled back; the file rests wherever the
	// last successful step left it.
	FinalStatusPartial FinalStatus = "partial"

	// FinalStatusFailed means the very first step failed and the file was
	// never touched.
	FinalStatusFailed FinalStatus = "failed"
)

// ExecutionResult reports what happened to one plan. Partial completion is
// a real, user-visible outcome: filesystem operations are not transactional
// and the result must not pretend otherwise.
type ExecutionResult struct {
	SourcePath     ClientPath  `json:"source_path"`
	FinalStatus    FinalStatus `json:"final_status"`
	CompletedSteps []Step      `json:"completed_steps"`
	FailedStep     *Step       `json:"failed_step,omitempty"`
	Error          string      `json:"error,omitempty"`

	// CurrentPath is the file's last known location when execution
	// stopped, whether by success, failure, or timeout.
	CurrentPath ClientPath `json:"current_path"`
}
