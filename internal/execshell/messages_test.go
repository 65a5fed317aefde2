package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRepositoryDirectoryConstant = "/workspace/repo"

func TestCommandMessageFormatterStartedMessages(t *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		expectedMessage string
	}{
		{
			name:            "toplevel",
			arguments:       []string{"rev-parse", "--show-toplevel"},
			expectedMessage: "Resolving repository root from /workspace/repo",
		},
		{
			name:            "submodule_sync",
			arguments:       []string{"submodule", "sync", "--recursive"},
			expectedMessage: "Synchronizing submodule URLs in /workspace/repo",
		},
		{
			name:            "worktree_diff",
			arguments:       []string{"diff", "--quiet"},
			expectedMessage: "Checking unstaged changes in /workspace/repo",
		},
		{
			name:            "index_diff",
			arguments:       []string{"diff", "--cached", "--quiet"},
			expectedMessage: "Checking staged changes in /workspace/repo",
		},
		{
			name:            "push_url",
			arguments:       []string{"remote", "get-url", "--push", "origin"},
			expectedMessage: "Checking origin remote for /workspace/repo",
		},
		{
			name:            "branch_lookup",
			arguments:       []string{"show-ref", "--verify", "--quiet", "refs/heads/auto-20240101-120000"},
			expectedMessage: "Checking whether branch auto-20240101-120000 exists in /workspace/repo",
		},
		{
			name:            "branch_creation",
			arguments:       []string{"checkout", "-b", "auto-20240101-120000"},
			expectedMessage: "Creating branch auto-20240101-120000 in /workspace/repo",
		},
		{
			name:            "push_with_upstream",
			arguments:       []string{"push", "-u", "origin", "auto-20240101-120000"},
			expectedMessage: "Pushing auto-20240101-120000 to origin from /workspace/repo and setting upstream",
		},
		{
			name:            "plain_push",
			arguments:       []string{"push"},
			expectedMessage: "Pushing current branch to upstream from /workspace/repo",
		},
		{
			name:            "stage_all",
			arguments:       []string{"add", "-A"},
			expectedMessage: "Staging all changes in /workspace/repo",
		},
		{
			name:            "commit",
			arguments:       []string{"commit", "-m", "sync work"},
			expectedMessage: `Creating commit in /workspace/repo with message "sync work"`,
		},
		{
			name:            "unknown_subcommand",
			arguments:       []string{"status", "--short"},
			expectedMessage: "Running git status --short (in /workspace/repo)",
		},
	}

	formatter := CommandMessageFormatter{}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: testCase.arguments, WorkingDirectory: testRepositoryDirectoryConstant},
			}
			require.Equal(t, testCase.expectedMessage, formatter.BuildStartedMessage(command))
		})
	}
}

func TestCommandMessageFormatterTreatsQueryExitCodesAsAnswers(t *testing.T) {
	formatter := CommandMessageFormatter{}
	diffCommand := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"diff", "--cached", "--quiet"}, WorkingDirectory: testRepositoryDirectoryConstant},
	}
	detachedCommand := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"symbolic-ref", "-q", "HEAD"}, WorkingDirectory: testRepositoryDirectoryConstant},
	}
	pushCommand := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"push"}, WorkingDirectory: testRepositoryDirectoryConstant},
	}

	require.True(t, formatter.IsExpectedNonZeroExit(diffCommand, ExecutionResult{ExitCode: 1}))
	require.Equal(t, "Staged changes present in /workspace/repo", formatter.BuildFailureMessage(diffCommand, ExecutionResult{ExitCode: 1}))
	require.Equal(t, "/workspace/repo is in a detached HEAD state", formatter.BuildFailureMessage(detachedCommand, ExecutionResult{ExitCode: 1}))
	require.False(t, formatter.IsExpectedNonZeroExit(pushCommand, ExecutionResult{ExitCode: 1}))
	require.Equal(
		t,
		"Failed to push current branch to upstream from /workspace/repo (exit code 1: rejected)",
		formatter.BuildFailureMessage(pushCommand, ExecutionResult{ExitCode: 1, StandardError: "rejected\n"}),
	)
}

func TestCommandMessageFormatterExecutionFailure(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"submodule", "sync", "--recursive"}},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("context canceled"))

	require.Equal(t, "Unable to synchronize submodule URLs in current directory: context canceled", message)
}
