package pushall

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newSuperProject() *fakeRepository {
	return &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: ownedRemote("superproject")}
}

func callsFor(client *fakeRepoClient, label string) []string {
	matching := []string{}
	for _, recordedCall := range client.calls {
		if strings.HasPrefix(recordedCall, label+": ") {
			matching = append(matching, recordedCall)
		}
	}
	return matching
}

func indexOfCall(client *fakeRepoClient, call string) int {
	for callIndex, recordedCall := range client.calls {
		if recordedCall == call {
			return callIndex
		}
	}
	return -1
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	testCases := []struct {
		name          string
		dependencies  Dependencies
		expectedError error
	}{
		{
			name:          "missing_repository_client",
			dependencies:  Dependencies{SubmoduleCatalog: &fakeCatalog{}, ExecutableLocator: fakeExecutableLocator{}},
			expectedError: ErrRepositoryClientNotConfigured,
		},
		{
			name:          "missing_submodule_catalog",
			dependencies:  Dependencies{RepositoryClient: newFakeRepoClient(newSuperProject()), ExecutableLocator: fakeExecutableLocator{}},
			expectedError: ErrSubmoduleCatalogNotConfigured,
		},
		{
			name:          "missing_executable_locator",
			dependencies:  Dependencies{RepositoryClient: newFakeRepoClient(newSuperProject()), SubmoduleCatalog: &fakeCatalog{}},
			expectedError: ErrExecutableLocatorNotConfigured,
		},
		{
			name:         "optional_collaborators_defaulted",
			dependencies: Dependencies{RepositoryClient: newFakeRepoClient(newSuperProject()), SubmoduleCatalog: &fakeCatalog{}, ExecutableLocator: fakeExecutableLocator{}},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, creationError := NewService(testCase.dependencies)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, creationError, testCase.expectedError)
				require.Nil(testInstance, service)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, service)
		})
	}
}

func TestServiceRunCommitsOwnedSubmoduleAndSetsUpstream(testInstance *testing.T) {
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	client.addSubmodule("libfoo", &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURL: ownedRemote("libfoo")})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("libfoo")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, testRootPathConstant, result.SuperProjectRoot)
	require.Len(testInstance, result.Submodules, 1)

	libfoo := client.submodule("libfoo")
	require.Equal(testInstance, []string{testCommitMessageConstant}, libfoo.commitMessages)
	require.Equal(testInstance, []string{"push -u origin main"}, libfoo.pushes)

	submoduleResult := result.Submodules[0]
	require.Equal(testInstance, SubmoduleOutcomeCommittedPushed, submoduleResult.Outcome)
	require.True(testInstance, submoduleResult.Committed)
	require.True(testInstance, submoduleResult.Ownership.Eligible)
	require.NoError(testInstance, submoduleResult.Err)

	require.Equal(testInstance, SuperProjectOutcomeCommittedPushed, result.SuperProject.Outcome)
	require.Equal(testInstance, []string{testCommitMessageConstant}, superProject.commitMessages)
	require.Equal(testInstance, []string{testPushOriginMainConstant}, superProject.pushes)

	output := outputBuffer.String()
	require.Contains(testInstance, output, "ROOT: /work/superproject\n")
	require.Contains(testInstance, output, "SYNC: submodule URLs refreshed\n")
	require.Contains(testInstance, output, "COMMIT: libfoo\n")
	require.Contains(testInstance, output, "PUSH: libfoo -> origin/main (upstream set)\n")
	require.Contains(testInstance, output, "PUSH: superproject -> origin/main\n")
	require.Less(testInstance, indexOfCall(client, "libfoo: push -u origin main"), indexOfCall(client, ".: commit"))
}

func TestServiceRunSkipsPushForThirdPartyRemote(testInstance *testing.T) {
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	client.addSubmodule("vendor/bar", &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: testThirdPartyRemoteConstant})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("vendor/bar")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	vendorBar := client.submodule("vendor/bar")
	require.Equal(testInstance, []string{testCommitMessageConstant}, vendorBar.commitMessages)
	require.Empty(testInstance, vendorBar.pushes)
	require.Equal(testInstance, SubmoduleOutcomeCommittedNotOwned, result.Submodules[0].Outcome)
	require.False(testInstance, result.Submodules[0].PushAttempted)
	require.Equal(testInstance, OwnershipReasonNotMatched, result.Submodules[0].Ownership.Reason)
	require.Contains(testInstance, outputBuffer.String(), "PUSH-SKIPPED: vendor/bar (push URL does not match owner pattern: thirdparty/bar on github.com)\n")
	require.Equal(testInstance, SuperProjectOutcomeCommittedPushed, result.SuperProject.Outcome)
}

func TestServiceRunNeverPushesNonOwnedRemotes(testInstance *testing.T) {
	testCases := []struct {
		name            string
		dirty           bool
		expectedOutcome SubmoduleOutcome
	}{
		{name: "dirty", dirty: true, expectedOutcome: SubmoduleOutcomeCommittedNotOwned},
		{name: "clean", dirty: false, expectedOutcome: SubmoduleOutcomeCleanNoPush},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client := newFakeRepoClient(newSuperProject())
			client.addSubmodule("vendor/bar", &fakeRepository{unstaged: testCase.dirty, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: testThirdPartyRemoteConstant})
			service, _ := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("vendor/bar")}, fakeExecutableLocator{}, nil)

			result, runError := service.Run(context.Background(), Options{OwnerPolicy: ownedPolicy(testInstance)})

			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedOutcome, result.Submodules[0].Outcome)
			for _, recordedCall := range callsFor(client, "vendor/bar") {
				require.NotContains(testInstance, recordedCall, testPushCallConstant)
			}
		})
	}
}

func TestServiceRunWithoutOwnerPatternPushesOnlySuperProject(testInstance *testing.T) {
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	client.addSubmodule("libfoo", &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURL: ownedRemote("libfoo")})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("libfoo")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, SubmoduleOutcomeCommittedNotOwned, result.Submodules[0].Outcome)
	require.Equal(testInstance, []string{defaultCommitMessageConstant}, client.submodule("libfoo").commitMessages)
	require.Empty(testInstance, client.submodule("libfoo").pushes)
	require.Contains(testInstance, outputBuffer.String(), "PUSH-SKIPPED: libfoo (owner pattern not configured: acme/libfoo on github.com)\n")
	require.Equal(testInstance, []string{testPushOriginMainConstant}, superProject.pushes)
}

func TestServiceRunSkipsCleanDetachedSubmodule(testInstance *testing.T) {
	client := newFakeRepoClient(newSuperProject())
	client.addSubmodule("libfoo", &fakeRepository{detached: true, pushURL: ownedRemote("libfoo")})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("libfoo")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, SubmoduleOutcomeCleanNoPush, result.Submodules[0].Outcome)
	require.True(testInstance, result.Submodules[0].State.HeadDetached)
	require.Empty(testInstance, result.Submodules[0].CreatedBranch)
	require.Empty(testInstance, callsFor(client, "libfoo"))
	require.Contains(testInstance, outputBuffer.String(), "SKIP-DETACHED: libfoo is clean on a detached HEAD\n")
}

func TestServiceRunCreatesUniqueBranchesForDirtyDetachedSubmodules(testInstance *testing.T) {
	client := newFakeRepoClient(newSuperProject())
	client.addSubmodule("liba", &fakeRepository{detached: true, unstaged: true, pushURL: ownedRemote("liba")})
	client.addSubmodule("libb", &fakeRepository{
		detached:         true,
		unstaged:         true,
		pushURL:          ownedRemote("libb"),
		existingBranches: map[string]struct{}{testGeneratedBranchConstant + "-2": {}},
	})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("liba", "libb")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, testGeneratedBranchConstant, result.Submodules[0].CreatedBranch)
	require.Equal(testInstance, testGeneratedBranchConstant+"-3", result.Submodules[1].CreatedBranch)

	checkoutIndex := indexOfCall(client, "liba: checkout -b "+testGeneratedBranchConstant)
	commitIndex := indexOfCall(client, "liba: commit")
	require.NotEqual(testInstance, -1, checkoutIndex)
	require.Less(testInstance, checkoutIndex, commitIndex)

	require.Equal(testInstance, []string{"push -u origin " + testGeneratedBranchConstant}, client.submodule("liba").pushes)
	require.Equal(testInstance, []string{"push -u origin " + testGeneratedBranchConstant + "-3"}, client.submodule("libb").pushes)
	require.Equal(testInstance, SubmoduleOutcomeCommittedPushed, result.Submodules[0].Outcome)
	require.Contains(testInstance, outputBuffer.String(), "BRANCH: liba "+testGeneratedBranchConstant+"\n")
}

func TestServiceRunRestoresDetachedHeadWhenStagingProducesNothing(testInstance *testing.T) {
	testCases := []struct {
		name             string
		discardError     error
		expectedBranch   string
		expectedDetached bool
		expectedWarnings int
	}{
		{
			name:             "branch_discarded",
			expectedDetached: true,
			expectedWarnings: 1,
		},
		{
			name:             "discard_failed",
			discardError:     errTestFailure,
			expectedBranch:   testGeneratedBranchConstant,
			expectedWarnings: 2,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client := newFakeRepoClient(newSuperProject())
			submodule := &fakeRepository{detached: true, unstaged: true, stagingProducesNoChanges: true, pushURL: ownedRemote("liba"), discardError: testCase.discardError}
			client.addSubmodule("liba", submodule)
			service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("liba")}, fakeExecutableLocator{}, nil)

			result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

			require.NoError(testInstance, runError)
			submoduleResult := result.Submodules[0]
			require.Equal(testInstance, SubmoduleOutcomeCleanNoPush, submoduleResult.Outcome)
			require.False(testInstance, submoduleResult.PushAttempted)
			require.Equal(testInstance, testCase.expectedBranch, submoduleResult.CreatedBranch)
			require.Equal(testInstance, testCase.expectedDetached, submodule.detached)
			require.Empty(testInstance, submodule.pushes)
			require.Empty(testInstance, submodule.commitMessages)
			require.Len(testInstance, result.Warnings, testCase.expectedWarnings)
			require.Contains(testInstance, outputBuffer.String(), "SKIP-DETACHED: liba is clean on a detached HEAD\n")
			require.Less(testInstance, indexOfCall(client, "liba: add -A"), indexOfCall(client, "liba: "+testDetachCallConstant))
		})
	}
}

func TestServiceRunPushesToOriginRegardlessOfConfiguredUpstream(testInstance *testing.T) {
	superProject := newSuperProject()
	superProject.upstream = "upstream/main"
	client := newFakeRepoClient(superProject)
	client.addSubmodule("libfoo", &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: "upstream/main", pushURL: ownedRemote("libfoo")})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("libfoo")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, SubmoduleOutcomeCommittedPushed, result.Submodules[0].Outcome)
	require.Equal(testInstance, []string{testPushOriginMainConstant}, client.submodule("libfoo").pushes)
	require.Equal(testInstance, []string{testPushOriginMainConstant}, superProject.pushes)
	output := outputBuffer.String()
	require.Contains(testInstance, output, "PUSH: libfoo -> origin/main\n")
	require.Contains(testInstance, output, "PUSH: superproject -> origin/main\n")
	require.NotContains(testInstance, output, "upstream/main")
}

func TestServiceRunIsIdempotent(testInstance *testing.T) {
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	client.addSubmodule("libfoo", &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURL: ownedRemote("libfoo")})
	client.addSubmodule("vendor/bar", &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: testThirdPartyRemoteConstant})
	catalog := &fakeCatalog{declarations: declarationsFor("libfoo", "vendor/bar")}
	service, _ := newTestService(testInstance, client, catalog, fakeExecutableLocator{}, nil)
	options := Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)}

	_, firstRunError := service.Run(context.Background(), options)
	require.NoError(testInstance, firstRunError)
	commitCountAfterFirstRun := len(client.callsMatching(testCommitCallConstant))

	secondResult, secondRunError := service.Run(context.Background(), options)

	require.NoError(testInstance, secondRunError)
	require.Equal(testInstance, commitCountAfterFirstRun, len(client.callsMatching(testCommitCallConstant)))
	require.Equal(testInstance, SubmoduleOutcomeCleanPushed, secondResult.Submodules[0].Outcome)
	require.Equal(testInstance, SubmoduleOutcomeCleanNoPush, secondResult.Submodules[1].Outcome)
	require.Equal(testInstance, SuperProjectOutcomeNoChanges, secondResult.SuperProject.Outcome)
	require.Len(testInstance, superProject.commitMessages, 1)
}

func TestServiceRunUsesCommitMessageVerbatim(testInstance *testing.T) {
	const commitMessage = "  fix:  keep   spacing\tand tabs  "
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	client.addSubmodule("libfoo", &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURL: ownedRemote("libfoo")})
	client.addSubmodule("vendor/bar", &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURL: testThirdPartyRemoteConstant})
	service, _ := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("libfoo", "vendor/bar")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: commitMessage, OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, commitMessage, result.CommitMessage)
	require.Equal(testInstance, []string{commitMessage}, client.submodule("libfoo").commitMessages)
	require.Equal(testInstance, []string{commitMessage}, client.submodule("vendor/bar").commitMessages)
	require.Equal(testInstance, []string{commitMessage}, superProject.commitMessages)
}

func TestServiceRunWithoutSubmodules(testInstance *testing.T) {
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant})

	require.NoError(testInstance, runError)
	require.Empty(testInstance, result.Submodules)
	require.Contains(testInstance, outputBuffer.String(), "SUBMODULES: no submodules found\n")
	require.Equal(testInstance, SuperProjectOutcomeCommittedPushed, result.SuperProject.Outcome)
	require.Equal(testInstance, []string{testPushOriginMainConstant}, superProject.pushes)
}

func TestServiceRunFailsWhenSuperProjectPushFails(testInstance *testing.T) {
	superProject := newSuperProject()
	superProject.pushError = errTestFailure
	client := newFakeRepoClient(superProject)
	client.addSubmodule("liba", &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURL: ownedRemote("liba")})
	client.addSubmodule("libb", &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: ownedRemote("libb")})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("liba", "libb")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

	require.ErrorIs(testInstance, runError, ErrPushFailed)
	require.ErrorIs(testInstance, runError, errTestFailure)
	require.Equal(testInstance, 2, result.PushedSubmoduleCount())
	require.Len(testInstance, client.submodule("liba").pushes, 1)
	require.Len(testInstance, client.submodule("libb").pushes, 1)
	require.Equal(testInstance, SuperProjectOutcomeCommittedPushFailed, result.SuperProject.Outcome)
	require.Contains(testInstance, outputBuffer.String(), "PUSH-FAILED: superproject: simulated git failure\n")
}

func TestServiceRunPreflightFailures(testInstance *testing.T) {
	testCases := []struct {
		name           string
		locator        fakeExecutableLocator
		rootError      error
		expectedKind   error
		expectedOutput string
		expectedCalls  int
	}{
		{
			name:           "missing_git",
			locator:        fakeExecutableLocator{lookupError: errTestFailure},
			expectedKind:   ErrMissingRequiredCommand,
			expectedOutput: "MISSING-COMMAND: git not found on PATH\n",
			expectedCalls:  0,
		},
		{
			name:          "not_a_repository",
			rootError:     errTestFailure,
			expectedKind:  ErrNotAGitRepository,
			expectedCalls: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client := newFakeRepoClient(newSuperProject())
			client.resolveRootError = testCase.rootError
			service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{}, testCase.locator, nil)

			_, runError := service.Run(context.Background(), Options{})

			require.ErrorIs(testInstance, runError, testCase.expectedKind)
			require.ErrorIs(testInstance, runError, errTestFailure)
			require.Len(testInstance, client.calls, testCase.expectedCalls)
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())

			var operationError OperationError
			require.True(testInstance, errors.As(runError, &operationError))
		})
	}
}

func TestServiceRunDryRunMutatesNothing(testInstance *testing.T) {
	superProject := newSuperProject()
	superProject.unstaged = false
	client := newFakeRepoClient(superProject)
	client.addSubmodule("liba", &fakeRepository{detached: true, unstaged: true, pushURL: ownedRemote("liba")})
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("liba")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{DryRun: true, OwnerPolicy: ownedPolicy(testInstance)})

	require.NoError(testInstance, runError)
	require.True(testInstance, result.DryRun)
	require.Equal(testInstance, []string{": " + testResolveRootCallConstant}, client.calls)
	require.Equal(testInstance, SubmoduleOutcomeCommittedPushed, result.Submodules[0].Outcome)
	require.Equal(testInstance, testGeneratedBranchConstant, result.Submodules[0].CreatedBranch)
	require.Equal(testInstance, SuperProjectOutcomeNoChanges, result.SuperProject.Outcome)

	output := outputBuffer.String()
	require.Contains(testInstance, output, "WOULD-SYNC: submodule URLs\n")
	require.Contains(testInstance, output, "WOULD-BRANCH: liba "+testGeneratedBranchConstant+"\n")
	require.Contains(testInstance, output, "WOULD-COMMIT: liba\n")
	require.Contains(testInstance, output, "WOULD-PUSH: liba -> origin/"+testGeneratedBranchConstant+"\n")
	require.Contains(testInstance, output, "NOTHING-TO-COMMIT: superproject\n")
	require.Contains(testInstance, output, "WOULD-PUSH: superproject -> origin/main\n")
}

func TestServiceRunOnlyFilter(testInstance *testing.T) {
	client := newFakeRepoClient(newSuperProject())
	client.addSubmodule("liba", &fakeRepository{unstaged: true, branch: testMainBranchConstant})
	client.addSubmodule("libb", &fakeRepository{unstaged: true, branch: testMainBranchConstant})
	service, _ := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("liba", "libb")}, fakeExecutableLocator{}, nil)

	result, runError := service.Run(context.Background(), Options{OnlyPaths: []string{"./libb", "missing/path"}})

	require.NoError(testInstance, runError)
	require.Len(testInstance, result.Submodules, 1)
	require.Equal(testInstance, "libb", result.Submodules[0].Path)
	require.Empty(testInstance, callsFor(client, "liba"))
	require.Equal(testInstance, []string{"submodule path missing/path is not declared in .gitmodules"}, result.Warnings)
}

func TestServiceRunReportsSyncFailureAsWarning(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	client := newFakeRepoClient(newSuperProject())
	client.syncError = errTestFailure
	service, outputBuffer := newTestService(testInstance, client, &fakeCatalog{}, fakeExecutableLocator{}, zap.New(observerCore))

	result, runError := service.Run(context.Background(), Options{})

	require.NoError(testInstance, runError)
	expectedWarning := "sync-urls /work/superproject: failed to synchronize submodule URLs: simulated git failure"
	require.Equal(testInstance, []string{expectedWarning}, result.Warnings)
	require.Contains(testInstance, outputBuffer.String(), "WARNING: "+expectedWarning+"\n")
	require.Equal(testInstance, 1, observedLogs.FilterMessage(warningLogMessageConstant).Len())
	require.Equal(testInstance, SuperProjectOutcomeCommittedPushed, result.SuperProject.Outcome)
}

func TestServiceRunSubmoduleFailuresDoNotAbort(testInstance *testing.T) {
	testCases := []struct {
		name            string
		repository      *fakeRepository
		missing         bool
		expectedOutcome SubmoduleOutcome
		expectedKind    error
		expectedOutput  string
		expectedNote    string
		expectedPushes  int
	}{
		{
			name:            "missing_checkout",
			repository:      &fakeRepository{},
			missing:         true,
			expectedOutcome: SubmoduleOutcomeSkippedMissing,
			expectedKind:    ErrMissingCheckout,
			expectedOutput:  "SKIP-MISSING: liba\n",
		},
		{
			name:            "inspection_failed",
			repository:      &fakeRepository{unstagedError: errTestFailure},
			expectedOutcome: SubmoduleOutcomeInspectionFailed,
			expectedKind:    ErrInspectionFailed,
			expectedOutput:  "INSPECT-FAILED: liba: simulated git failure\n",
		},
		{
			name:            "commit_failed_still_pushes",
			repository:      &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: ownedRemote("liba"), commitError: errTestFailure},
			expectedOutcome: SubmoduleOutcomeCommitFailed,
			expectedKind:    ErrCommitFailed,
			expectedOutput:  "COMMIT-FAILED: liba: commit liba: commit failed: simulated git failure\n",
			expectedPushes:  1,
		},
		{
			name:            "branch_creation_failed",
			repository:      &fakeRepository{detached: true, unstaged: true, pushURL: ownedRemote("liba"), createBranchError: errTestFailure},
			expectedOutcome: SubmoduleOutcomeCommitFailed,
			expectedKind:    ErrCommitFailed,
			expectedNote:    detachedPushSkippedNoteConstant,
		},
		{
			name:            "submodule_push_failed",
			repository:      &fakeRepository{unstaged: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: ownedRemote("liba"), pushError: errTestFailure},
			expectedOutcome: SubmoduleOutcomeCommittedPushFailed,
			expectedKind:    ErrPushFailed,
			expectedOutput:  "PUSH-FAILED: liba: simulated git failure\n",
		},
		{
			name:            "nothing_to_commit",
			repository:      &fakeRepository{unstaged: true, stagingProducesNoChanges: true, branch: testMainBranchConstant, upstream: testOriginMainConstant, pushURL: ownedRemote("liba")},
			expectedOutcome: SubmoduleOutcomeCleanPushed,
			expectedOutput:  "NOTHING-TO-COMMIT: liba\n",
			expectedNote:    nothingToCommitMessageConstant,
			expectedPushes:  1,
		},
		{
			name:            "detached_nothing_to_commit",
			repository:      &fakeRepository{detached: true, unstaged: true, stagingProducesNoChanges: true, pushURL: ownedRemote("liba")},
			expectedOutcome: SubmoduleOutcomeCleanNoPush,
			expectedOutput:  "BRANCH-DISCARDED: liba " + testGeneratedBranchConstant + "\n",
			expectedNote:    detachedPushSkippedNoteConstant,
		},
		{
			name:            "push_url_lookup_failed",
			repository:      &fakeRepository{unstaged: true, branch: testMainBranchConstant, pushURLError: errTestFailure},
			expectedOutcome: SubmoduleOutcomeCommittedNotOwned,
			expectedOutput:  "PUSH-SKIPPED: liba (liba: push URL unavailable: simulated git failure)\n",
			expectedNote:    "liba: push URL unavailable: simulated git failure",
		},
		{
			name:            "no_origin_remote",
			repository:      &fakeRepository{unstaged: true, branch: testMainBranchConstant},
			expectedOutcome: SubmoduleOutcomeCommittedNotOwned,
			expectedOutput:  "PUSH-SKIPPED: liba (no origin remote)\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			superProject := newSuperProject()
			client := newFakeRepoClient(superProject)
			client.addSubmodule("liba", testCase.repository)
			catalog := &fakeCatalog{declarations: declarationsFor("liba")}
			if testCase.missing {
				catalog.missingPaths = map[string]struct{}{"liba": {}}
			}
			service, outputBuffer := newTestService(testInstance, client, catalog, fakeExecutableLocator{}, nil)

			result, runError := service.Run(context.Background(), Options{CommitMessage: testCommitMessageConstant, OwnerPolicy: ownedPolicy(testInstance)})

			require.NoError(testInstance, runError)
			submoduleResult := result.Submodules[0]
			require.Equal(testInstance, testCase.expectedOutcome, submoduleResult.Outcome)
			if testCase.expectedKind != nil {
				require.ErrorIs(testInstance, submoduleResult.Err, testCase.expectedKind)
			}
			if len(testCase.expectedOutput) > 0 {
				require.Contains(testInstance, outputBuffer.String(), testCase.expectedOutput)
			}
			if len(testCase.expectedNote) > 0 {
				require.Contains(testInstance, submoduleResult.Notes, testCase.expectedNote)
			}
			require.Len(testInstance, testCase.repository.pushes, testCase.expectedPushes)
			require.Equal(testInstance, SuperProjectOutcomeCommittedPushed, result.SuperProject.Outcome)
		})
	}
}

func TestServiceRunStopsWhenContextIsCancelled(testInstance *testing.T) {
	superProject := newSuperProject()
	client := newFakeRepoClient(superProject)
	client.addSubmodule("liba", &fakeRepository{unstaged: true, branch: testMainBranchConstant})
	service, _ := newTestService(testInstance, client, &fakeCatalog{declarations: declarationsFor("liba")}, fakeExecutableLocator{}, nil)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	result, runError := service.Run(cancelledContext, Options{})

	require.ErrorIs(testInstance, runError, context.Canceled)
	require.Empty(testInstance, result.Submodules)
	require.Empty(testInstance, client.callsMatching(testStageCallConstant))
	require.Empty(testInstance, client.callsMatching(testPushCallConstant))
}
