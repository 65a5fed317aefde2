package pushall

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pushall/internal/shared"
	"github.com/temirov/pushall/internal/submodules"
)

const (
	testRootPathConstant         = "/work/superproject"
	testOwnedPatternConstant     = `github\.com[:/]acme/`
	testOwnedRemoteTemplate      = "git@github.com:acme/%s.git"
	testThirdPartyRemoteConstant = "https://github.com/thirdparty/bar.git"
	testMainBranchConstant       = "main"
	testOriginMainConstant       = "origin/main"
	testCommitMessageConstant    = "update vendored libraries"
	testGeneratedBranchConstant  = "auto-20240309-143005"
	testCallTemplateConstant     = "%s: %s"
	testCheckoutCallTemplate     = "checkout -b %s"
	testPushUpstreamCallTemplate = "push -u %s %s"
	testPushCallTemplate         = "push %s %s"
	testPushOriginMainConstant   = "push origin main"
	testDetachCallConstant       = "checkout --detach"
	testDeleteBranchCallTemplate = "branch -D %s"
	testCommitCallConstant       = "commit"
	testStageCallConstant        = "add -A"
	testPushCallConstant         = "push"
	testSyncCallConstant         = "submodule sync"
	testResolveRootCallConstant  = "rev-parse --show-toplevel"
)

var errTestFailure = errors.New("simulated git failure")

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)
}

type fakeExecutableLocator struct {
	lookupError error
}

func (locator fakeExecutableLocator) LookPath(name string) (string, error) {
	if locator.lookupError != nil {
		return "", locator.lookupError
	}
	return "/usr/bin/" + name, nil
}

type fakeCatalog struct {
	declarations   []submodules.Declaration
	readError      error
	missingPaths   map[string]struct{}
	checkoutErrors map[string]error
}

func (catalog *fakeCatalog) ReadDeclarations(string) ([]submodules.Declaration, error) {
	return catalog.declarations, catalog.readError
}

func (catalog *fakeCatalog) IsCheckedOut(_ string, relativePath string) (bool, error) {
	if checkoutError, exists := catalog.checkoutErrors[relativePath]; exists {
		return false, checkoutError
	}
	if _, missing := catalog.missingPaths[relativePath]; missing {
		return false, nil
	}
	return true, nil
}

// fakeRepository models the git state of one working tree.
type fakeRepository struct {
	unstaged                 bool
	staged                   bool
	detached                 bool
	branch                   string
	upstream                 string
	pushURL                  string
	existingBranches         map[string]struct{}
	stagingProducesNoChanges bool

	unstagedError     error
	headError         error
	pushURLError      error
	createBranchError error
	discardError      error
	stageError        error
	commitError       error
	pushError         error

	commitMessages []string
	pushes         []string
}

// fakeRepoClient is an in-memory RepoClient keyed by repository path.
type fakeRepoClient struct {
	rootPath         string
	resolveRootError error
	syncError        error
	repositories     map[string]*fakeRepository
	calls            []string
}

var _ shared.RepoClient = (*fakeRepoClient)(nil)

func newFakeRepoClient(superProject *fakeRepository) *fakeRepoClient {
	return &fakeRepoClient{
		rootPath:     testRootPathConstant,
		repositories: map[string]*fakeRepository{testRootPathConstant: superProject},
	}
}

func (client *fakeRepoClient) addSubmodule(relativePath string, repository *fakeRepository) {
	client.repositories[filepath.Join(testRootPathConstant, filepath.FromSlash(relativePath))] = repository
}

func (client *fakeRepoClient) submodule(relativePath string) *fakeRepository {
	return client.repository(filepath.Join(testRootPathConstant, filepath.FromSlash(relativePath)))
}

func (client *fakeRepoClient) repository(repositoryPath string) *fakeRepository {
	repository, exists := client.repositories[repositoryPath]
	if !exists {
		repository = &fakeRepository{branch: testMainBranchConstant}
		client.repositories[repositoryPath] = repository
	}
	return repository
}

func (client *fakeRepoClient) record(repositoryPath string, call string) {
	label := repositoryPath
	if relativePath, relativeError := filepath.Rel(testRootPathConstant, repositoryPath); relativeError == nil {
		label = filepath.ToSlash(relativePath)
	}
	client.calls = append(client.calls, fmt.Sprintf(testCallTemplateConstant, label, call))
}

func (client *fakeRepoClient) callsMatching(call string) []string {
	matching := []string{}
	for _, recordedCall := range client.calls {
		if strings.Contains(recordedCall, call) {
			matching = append(matching, recordedCall)
		}
	}
	return matching
}

func (client *fakeRepoClient) ResolveRoot(_ context.Context, workingDirectory string) (string, error) {
	client.record(workingDirectory, testResolveRootCallConstant)
	if client.resolveRootError != nil {
		return "", client.resolveRootError
	}
	return client.rootPath, nil
}

func (client *fakeRepoClient) SyncSubmoduleURLs(_ context.Context, repositoryPath string) error {
	client.record(repositoryPath, testSyncCallConstant)
	return client.syncError
}

func (client *fakeRepoClient) HasUnstagedChanges(_ context.Context, repositoryPath string) (bool, error) {
	repository := client.repository(repositoryPath)
	return repository.unstaged, repository.unstagedError
}

func (client *fakeRepoClient) HasStagedChanges(_ context.Context, repositoryPath string) (bool, error) {
	return client.repository(repositoryPath).staged, nil
}

func (client *fakeRepoClient) GetPushURL(_ context.Context, repositoryPath string, _ string) (string, error) {
	repository := client.repository(repositoryPath)
	return repository.pushURL, repository.pushURLError
}

func (client *fakeRepoClient) ResolveSymbolicHead(_ context.Context, repositoryPath string) (shared.HeadState, error) {
	repository := client.repository(repositoryPath)
	if repository.headError != nil {
		return shared.HeadState{}, repository.headError
	}
	if repository.detached {
		return shared.HeadState{Detached: true}, nil
	}
	return shared.HeadState{BranchName: repository.branch}, nil
}

func (client *fakeRepoClient) BranchExists(_ context.Context, repositoryPath string, branchName string) (bool, error) {
	_, exists := client.repository(repositoryPath).existingBranches[branchName]
	return exists, nil
}

func (client *fakeRepoClient) CreateAndSwitchBranch(_ context.Context, repositoryPath string, branchName string) error {
	client.record(repositoryPath, fmt.Sprintf(testCheckoutCallTemplate, branchName))
	repository := client.repository(repositoryPath)
	if repository.createBranchError != nil {
		return repository.createBranchError
	}
	if repository.existingBranches == nil {
		repository.existingBranches = map[string]struct{}{}
	}
	repository.existingBranches[branchName] = struct{}{}
	repository.detached = false
	repository.branch = branchName
	repository.upstream = ""
	return nil
}

func (client *fakeRepoClient) DiscardBranch(_ context.Context, repositoryPath string, branchName string) error {
	client.record(repositoryPath, testDetachCallConstant)
	repository := client.repository(repositoryPath)
	if repository.discardError != nil {
		return repository.discardError
	}
	client.record(repositoryPath, fmt.Sprintf(testDeleteBranchCallTemplate, branchName))
	delete(repository.existingBranches, branchName)
	repository.detached = true
	repository.branch = ""
	return nil
}

func (client *fakeRepoClient) StageAll(_ context.Context, repositoryPath string) error {
	client.record(repositoryPath, testStageCallConstant)
	repository := client.repository(repositoryPath)
	if repository.stageError != nil {
		return repository.stageError
	}
	if repository.unstaged && !repository.stagingProducesNoChanges {
		repository.staged = true
	}
	repository.unstaged = false
	return nil
}

func (client *fakeRepoClient) Commit(_ context.Context, repositoryPath string, message string) error {
	client.record(repositoryPath, testCommitCallConstant)
	repository := client.repository(repositoryPath)
	if repository.commitError != nil {
		return repository.commitError
	}
	repository.commitMessages = append(repository.commitMessages, message)
	repository.staged = false
	return nil
}

func (client *fakeRepoClient) Push(_ context.Context, repositoryPath string, remoteName string, branchName string) error {
	pushCall := fmt.Sprintf(testPushCallTemplate, remoteName, branchName)
	client.record(repositoryPath, pushCall)
	repository := client.repository(repositoryPath)
	if repository.pushError != nil {
		return repository.pushError
	}
	repository.pushes = append(repository.pushes, pushCall)
	return nil
}

func (client *fakeRepoClient) PushSetUpstream(_ context.Context, repositoryPath string, remoteName string, branchName string) error {
	pushCall := fmt.Sprintf(testPushUpstreamCallTemplate, remoteName, branchName)
	client.record(repositoryPath, pushCall)
	repository := client.repository(repositoryPath)
	if repository.pushError != nil {
		return repository.pushError
	}
	repository.pushes = append(repository.pushes, pushCall)
	repository.upstream = remoteName + "/" + branchName
	return nil
}

func (client *fakeRepoClient) GetCurrentBranch(_ context.Context, repositoryPath string) (string, error) {
	repository := client.repository(repositoryPath)
	if repository.detached {
		return detachedHeadBranchNameConstant, nil
	}
	return repository.branch, nil
}

func (client *fakeRepoClient) GetUpstreamBranch(_ context.Context, repositoryPath string) (string, error) {
	return client.repository(repositoryPath).upstream, nil
}

func ownedRemote(repositoryName string) string {
	return fmt.Sprintf(testOwnedRemoteTemplate, repositoryName)
}

func ownedPolicy(testInstance *testing.T) OwnershipPolicy {
	testInstance.Helper()
	pattern, parseError := ParseOwnerPattern(testOwnedPatternConstant)
	require.NoError(testInstance, parseError)
	return NewPatternOwnershipPolicy(pattern)
}

func declarationsFor(paths ...string) []submodules.Declaration {
	declarations := make([]submodules.Declaration, 0, len(paths))
	for _, declaredPath := range paths {
		declarations = append(declarations, submodules.Declaration{Name: declaredPath, Path: declaredPath})
	}
	return declarations
}

func newTestService(testInstance *testing.T, client *fakeRepoClient, catalog *fakeCatalog, locator fakeExecutableLocator, logger *zap.Logger) (*Service, *bytes.Buffer) {
	testInstance.Helper()
	outputBuffer := &bytes.Buffer{}
	service, creationError := NewService(Dependencies{
		RepositoryClient:  client,
		SubmoduleCatalog:  catalog,
		ExecutableLocator: locator,
		Clock:             fixedClock{},
		Reporter:          shared.NewWriterReporter(outputBuffer),
		Logger:            logger,
	})
	require.NoError(testInstance, creationError)
	return service, outputBuffer
}
