package shared

import (
	"context"
	"time"

	"github.com/temirov/pushall/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the remote consulted for push URLs and upstream creation.
	OriginRemoteNameConstant = "origin"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepoClient exposes the git primitives needed to synchronize a superproject and its submodules.
type RepoClient interface {
	ResolveRoot(executionContext context.Context, workingDirectory string) (string, error)
	SyncSubmoduleURLs(executionContext context.Context, repositoryPath string) error
	HasUnstagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	GetPushURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	ResolveSymbolicHead(executionContext context.Context, repositoryPath string) (HeadState, error)
	BranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error)
	CreateAndSwitchBranch(executionContext context.Context, repositoryPath string, branchName string) error
	DiscardBranch(executionContext context.Context, repositoryPath string, branchName string) error
	StageAll(executionContext context.Context, repositoryPath string) error
	Commit(executionContext context.Context, repositoryPath string, message string) error
	Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	PushSetUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, error)
}

// HeadState describes where HEAD points.
type HeadState struct {
	Detached   bool
	BranchName string
}
