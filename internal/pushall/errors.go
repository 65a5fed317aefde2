package pushall

import (
	"errors"
	"fmt"
	"strings"
)

const (
	notAGitRepositoryMessageConstant      = "not inside a git working tree"
	missingRequiredCommandMessageConstant = "required command not found"
	missingCheckoutMessageConstant        = "submodule is not checked out"
	syncURLsFailedMessageConstant         = "failed to synchronize submodule URLs"
	commitFailedMessageConstant           = "commit failed"
	pushFailedMessageConstant             = "push failed"
	nothingToCommitMessageConstant        = "nothing to commit"
	inspectionFailedMessageConstant       = "repository state could not be inspected"
	branchNamesExhaustedMessageConstant   = "no free branch name available"
	detachedHeadPushMessageConstant       = "HEAD is detached"
	operationErrorTemplateConstant        = "%s %s: %s"
	operationErrorCauseTemplateConstant   = "%s %s: %s: %v"
)

// ErrNotAGitRepository indicates the working directory is not inside a git working tree.
var ErrNotAGitRepository = errors.New(notAGitRepositoryMessageConstant)

// ErrMissingRequiredCommand indicates git could not be found on PATH.
var ErrMissingRequiredCommand = errors.New(missingRequiredCommandMessageConstant)

// ErrMissingCheckout indicates a declared submodule path is absent or lacks a .git marker.
var ErrMissingCheckout = errors.New(missingCheckoutMessageConstant)

// ErrSyncURLsFailed indicates "git submodule sync" failed; the run continues.
var ErrSyncURLsFailed = errors.New(syncURLsFailedMessageConstant)

// ErrCommitFailed indicates branch creation, staging or committing failed.
var ErrCommitFailed = errors.New(commitFailedMessageConstant)

// ErrPushFailed indicates a push was attempted and failed.
var ErrPushFailed = errors.New(pushFailedMessageConstant)

// ErrNothingToCommit indicates staging produced no changes to commit.
var ErrNothingToCommit = errors.New(nothingToCommitMessageConstant)

// ErrInspectionFailed indicates the state of a submodule could not be determined.
var ErrInspectionFailed = errors.New(inspectionFailedMessageConstant)

// ErrBranchNamesExhausted indicates every candidate branch name was already taken.
var ErrBranchNamesExhausted = errors.New(branchNamesExhaustedMessageConstant)

// ErrDetachedHead indicates a push was requested while HEAD pointed at no branch.
var ErrDetachedHead = errors.New(detachedHeadPushMessageConstant)

// Operation names the step that produced an OperationError.
type Operation string

// Operations reported in OperationError.
const (
	OperationLocateGit     Operation = "locate"
	OperationResolveRoot   Operation = "resolve-root"
	OperationSyncURLs      Operation = "sync-urls"
	OperationReadModules   Operation = "read-submodules"
	OperationInspect       Operation = "inspect"
	OperationCreateBranch  Operation = "create-branch"
	OperationDiscardBranch Operation = "discard-branch"
	OperationStage         Operation = "stage"
	OperationCommit        Operation = "commit"
	OperationPush          Operation = "push"
	OperationCheckCheckout Operation = "check-checkout"
)

// OperationError ties a failure kind to the step and path that produced it.
// errors.Is matches both the Kind sentinel and anything wrapped by Cause.
type OperationError struct {
	Operation Operation
	Path      string
	Kind      error
	Cause     error
}

// Error describes the failure.
func (operationError OperationError) Error() string {
	kindMessage := ""
	if operationError.Kind != nil {
		kindMessage = operationError.Kind.Error()
	}
	if operationError.Cause == nil {
		return strings.TrimSpace(fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Path, kindMessage))
	}
	return fmt.Sprintf(operationErrorCauseTemplateConstant, operationError.Operation, operationError.Path, kindMessage, operationError.Cause)
}

// Unwrap exposes the kind sentinel and the underlying cause.
func (operationError OperationError) Unwrap() []error {
	wrapped := make([]error, 0, 2)
	if operationError.Kind != nil {
		wrapped = append(wrapped, operationError.Kind)
	}
	if operationError.Cause != nil {
		wrapped = append(wrapped, operationError.Cause)
	}
	return wrapped
}

func newOperationError(operation Operation, path string, kind error, cause error) OperationError {
	return OperationError{Operation: operation, Path: path, Kind: kind, Cause: cause}
}
