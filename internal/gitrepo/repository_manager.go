package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/pushall/internal/execshell"
	"github.com/temirov/pushall/internal/shared"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	branchNameRequiredMessageConstant           = "branch name must be provided"
	remoteNameRequiredMessageConstant           = "remote name must be provided"
	rootResolutionFailureTemplateConstant       = "failed to resolve repository root from %s: %w"
	rootResolutionEmptyTemplateConstant         = "git reported an empty repository root for %s"
	submoduleSyncFailureTemplateConstant        = "failed to synchronize submodule URLs in %s: %w"
	changeDetectionFailureTemplateConstant      = "failed to detect changes in %s: %w"
	pushURLFailureTemplateConstant              = "failed to read push URL of %s in %s: %w"
	symbolicHeadFailureTemplateConstant         = "failed to inspect HEAD in %s: %w"
	branchLookupFailureTemplateConstant         = "failed to look up branch %q in %s: %w"
	branchCreationFailureTemplateConstant       = "failed to create branch %q in %s: %w"
	stageFailureTemplateConstant                = "failed to stage changes in %s: %w"
	commitFailureTemplateConstant               = "failed to commit in %s: %w"
	branchDiscardFailureTemplateConstant        = "failed to discard branch %q in %s: %w"
	pushFailureTemplateConstant                 = "failed to push %s to %s/%s: %w"
	pushUpstreamFailureTemplateConstant         = "failed to push %s to %s/%s with upstream tracking: %w"
	currentBranchFailureTemplateConstant        = "failed to resolve current branch in %s: %w"
	upstreamBranchFailureTemplateConstant       = "failed to resolve upstream branch in %s: %w"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitShowToplevelFlagConstant                 = "--show-toplevel"
	gitAbbrevRefFlagConstant                    = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant             = "--symbolic-full-name"
	gitUpstreamReferenceConstant                = "@{u}"
	gitHeadReferenceConstant                    = "HEAD"
	gitSubmoduleSubcommandConstant              = "submodule"
	gitSyncSubcommandConstant                   = "sync"
	gitRecursiveFlagConstant                    = "--recursive"
	gitDiffSubcommandConstant                   = "diff"
	gitCachedFlagConstant                       = "--cached"
	gitQuietFlagConstant                        = "--quiet"
	gitShortQuietFlagConstant                   = "-q"
	gitRemoteSubcommandConstant                 = "remote"
	gitGetURLSubcommandConstant                 = "get-url"
	gitPushFlagConstant                         = "--push"
	gitSymbolicRefSubcommandConstant            = "symbolic-ref"
	gitShowRefSubcommandConstant                = "show-ref"
	gitVerifyFlagConstant                       = "--verify"
	gitLocalBranchReferencePrefixConstant       = "refs/heads/"
	gitCheckoutSubcommandConstant               = "checkout"
	gitCreateBranchFlagConstant                 = "-b"
	gitDetachFlagConstant                       = "--detach"
	gitBranchSubcommandConstant                 = "branch"
	gitForceDeleteFlagConstant                  = "-D"
	gitAddSubcommandConstant                    = "add"
	gitAllFlagConstant                          = "-A"
	gitCommitSubcommandConstant                 = "commit"
	gitMessageFlagConstant                      = "-m"
	gitPushSubcommandConstant                   = "push"
	gitSetUpstreamFlagConstant                  = "-u"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	differencesFoundExitCodeConstant            = 1
	negativeAnswerExitCodeConstant              = 1
	currentDirectoryLabelConstant               = "current directory"
)

// ErrGitExecutorNotConfigured indicates the manager was created without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates an operation received an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrBranchNameRequired indicates an operation received an empty branch name.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrRemoteNameRequired indicates an operation received an empty remote name.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// RepositoryManager implements shared.RepoClient using the git CLI.
type RepositoryManager struct {
	executor shared.GitExecutor
}

var _ shared.RepoClient = (*RepositoryManager)(nil)

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ResolveRoot returns the top-level directory of the working tree containing workingDirectory.
func (manager *RepositoryManager) ResolveRoot(executionContext context.Context, workingDirectory string) (string, error) {
	result, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowToplevelFlagConstant},
		WorkingDirectory: strings.TrimSpace(workingDirectory),
	})
	if executionError != nil {
		return "", fmt.Errorf(rootResolutionFailureTemplateConstant, describeDirectory(workingDirectory), executionError)
	}

	rootPath := strings.TrimSpace(result.StandardOutput)
	if len(rootPath) == 0 {
		return "", fmt.Errorf(rootResolutionEmptyTemplateConstant, describeDirectory(workingDirectory))
	}
	return filepath.Clean(filepath.FromSlash(rootPath)), nil
}

// SyncSubmoduleURLs refreshes submodule remote URLs from .gitmodules, recursively.
func (manager *RepositoryManager) SyncSubmoduleURLs(executionContext context.Context, repositoryPath string) error {
	if _, executionError := manager.run(executionContext, repositoryPath, gitSubmoduleSubcommandConstant, gitSyncSubcommandConstant, gitRecursiveFlagConstant); executionError != nil {
		return fmt.Errorf(submoduleSyncFailureTemplateConstant, repositoryPath, executionError)
	}
	return nil
}

// HasUnstagedChanges reports whether tracked files differ from the index.
func (manager *RepositoryManager) HasUnstagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	return manager.detectDifferences(executionContext, repositoryPath, gitDiffSubcommandConstant, gitQuietFlagConstant)
}

// HasStagedChanges reports whether the index differs from HEAD.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	return manager.detectDifferences(executionContext, repositoryPath, gitDiffSubcommandConstant, gitCachedFlagConstant, gitQuietFlagConstant)
}

// GetPushURL returns the push URL configured for remoteName, or an empty string when the remote does not exist.
func (manager *RepositoryManager) GetPushURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return "", ErrRemoteNameRequired
	}

	result, executionError := manager.run(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitGetURLSubcommandConstant, gitPushFlagConstant, trimmedRemoteName)
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			return "", nil
		}
		return "", fmt.Errorf(pushURLFailureTemplateConstant, trimmedRemoteName, repositoryPath, executionError)
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// ResolveSymbolicHead reports whether HEAD is detached and, when attached, the branch it points to.
func (manager *RepositoryManager) ResolveSymbolicHead(executionContext context.Context, repositoryPath string) (shared.HeadState, error) {
	result, executionError := manager.run(executionContext, repositoryPath, gitSymbolicRefSubcommandConstant, gitShortQuietFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		if hasExitCode(executionError, negativeAnswerExitCodeConstant) {
			return shared.HeadState{Detached: true}, nil
		}
		return shared.HeadState{}, fmt.Errorf(symbolicHeadFailureTemplateConstant, repositoryPath, executionError)
	}

	branchName := strings.TrimPrefix(strings.TrimSpace(result.StandardOutput), gitLocalBranchReferencePrefixConstant)
	return shared.HeadState{BranchName: branchName}, nil
}

// BranchExists reports whether a local branch with the provided name exists.
func (manager *RepositoryManager) BranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error) {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return false, ErrBranchNameRequired
	}

	_, executionError := manager.run(executionContext, repositoryPath, gitShowRefSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, gitLocalBranchReferencePrefixConstant+trimmedBranchName)
	if executionError != nil {
		if hasExitCode(executionError, negativeAnswerExitCodeConstant) {
			return false, nil
		}
		return false, fmt.Errorf(branchLookupFailureTemplateConstant, trimmedBranchName, repositoryPath, executionError)
	}
	return true, nil
}

// CreateAndSwitchBranch creates a branch at HEAD and checks it out.
func (manager *RepositoryManager) CreateAndSwitchBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return ErrBranchNameRequired
	}

	if _, executionError := manager.run(executionContext, repositoryPath, gitCheckoutSubcommandConstant, gitCreateBranchFlagConstant, trimmedBranchName); executionError != nil {
		return fmt.Errorf(branchCreationFailureTemplateConstant, trimmedBranchName, repositoryPath, executionError)
	}
	return nil
}

// DiscardBranch detaches HEAD at its current commit and force-deletes branchName.
func (manager *RepositoryManager) DiscardBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return ErrBranchNameRequired
	}

	if _, executionError := manager.run(executionContext, repositoryPath, gitCheckoutSubcommandConstant, gitShortQuietFlagConstant, gitDetachFlagConstant); executionError != nil {
		return fmt.Errorf(branchDiscardFailureTemplateConstant, trimmedBranchName, repositoryPath, executionError)
	}
	if _, executionError := manager.run(executionContext, repositoryPath, gitBranchSubcommandConstant, gitForceDeleteFlagConstant, trimmedBranchName); executionError != nil {
		return fmt.Errorf(branchDiscardFailureTemplateConstant, trimmedBranchName, repositoryPath, executionError)
	}
	return nil
}

// StageAll stages every change, including untracked files and deletions.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	if _, executionError := manager.run(executionContext, repositoryPath, gitAddSubcommandConstant, gitAllFlagConstant); executionError != nil {
		return fmt.Errorf(stageFailureTemplateConstant, repositoryPath, executionError)
	}
	return nil
}

// Commit records the staged changes with the provided message, used verbatim.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, message string) error {
	if _, executionError := manager.run(executionContext, repositoryPath, gitCommitSubcommandConstant, gitMessageFlagConstant, message); executionError != nil {
		return fmt.Errorf(commitFailureTemplateConstant, repositoryPath, executionError)
	}
	return nil
}

// Push pushes branchName to the same branch on remoteName, ignoring any configured push remote.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return ErrRemoteNameRequired
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return ErrBranchNameRequired
	}

	if _, executionError := manager.runWithoutPrompt(executionContext, repositoryPath, gitPushSubcommandConstant, trimmedRemoteName, trimmedBranchName); executionError != nil {
		return fmt.Errorf(pushFailureTemplateConstant, repositoryPath, trimmedRemoteName, trimmedBranchName, executionError)
	}
	return nil
}

// PushSetUpstream pushes branchName to remoteName and records it as the upstream.
func (manager *RepositoryManager) PushSetUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return ErrRemoteNameRequired
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return ErrBranchNameRequired
	}

	if _, executionError := manager.runWithoutPrompt(executionContext, repositoryPath, gitPushSubcommandConstant, gitSetUpstreamFlagConstant, trimmedRemoteName, trimmedBranchName); executionError != nil {
		return fmt.Errorf(pushUpstreamFailureTemplateConstant, repositoryPath, trimmedRemoteName, trimmedBranchName, executionError)
	}
	return nil
}

// GetCurrentBranch returns the abbreviated name of HEAD ("HEAD" when detached).
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", fmt.Errorf(currentBranchFailureTemplateConstant, repositoryPath, executionError)
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// GetUpstreamBranch returns the upstream of the current branch, or an empty string when none is configured.
func (manager *RepositoryManager) GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitSymbolicFullNameFlagConstant, gitUpstreamReferenceConstant)
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			return "", nil
		}
		return "", fmt.Errorf(upstreamBranchFailureTemplateConstant, repositoryPath, executionError)
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

func (manager *RepositoryManager) detectDifferences(executionContext context.Context, repositoryPath string, arguments ...string) (bool, error) {
	_, executionError := manager.run(executionContext, repositoryPath, arguments...)
	if executionError == nil {
		return false, nil
	}
	if hasExitCode(executionError, differencesFoundExitCodeConstant) {
		return true, nil
	}
	return false, fmt.Errorf(changeDetectionFailureTemplateConstant, repositoryPath, executionError)
}

func (manager *RepositoryManager) run(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return execshell.ExecutionResult{}, ErrRepositoryPathRequired
	}
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: trimmedPath,
	})
}

func (manager *RepositoryManager) runWithoutPrompt(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return execshell.ExecutionResult{}, ErrRepositoryPathRequired
	}
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     trimmedPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	})
}

func hasExitCode(executionError error, exitCode int) bool {
	var failedError execshell.CommandFailedError
	if !errors.As(executionError, &failedError) {
		return false
	}
	return failedError.ExitCode() == exitCode
}

func describeDirectory(workingDirectory string) string {
	trimmed := strings.TrimSpace(workingDirectory)
	if len(trimmed) == 0 {
		return currentDirectoryLabelConstant
	}
	return trimmed
}
