package pushall

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pushall/internal/execshell"
	"github.com/temirov/pushall/internal/gitrepo"
	"github.com/temirov/pushall/internal/shared"
	"github.com/temirov/pushall/internal/submodules"
)

const (
	gitExecutableNameConstant               = "git"
	detachedHeadBranchNameConstant          = "HEAD"
	superProjectLabelConstant               = "superproject"
	currentDirectoryLabelConstant           = "current directory"
	repositoryClientMissingMessageConstant  = "repository client not configured"
	submoduleCatalogMissingMessageConstant  = "submodule catalog not configured"
	executableLocatorMissingMessageConstant = "executable locator not configured"
	undeclaredPathWarningTemplateConstant   = "submodule path %s is not declared in .gitmodules"
	nothingToCommitWarningTemplateConstant  = "%s: %s after staging"
	pushURLLookupWarningTemplateConstant    = "%s: push URL unavailable: %v"
	remoteReferenceTemplateConstant         = "%s/%s"
	missingCommandTemplateConstant          = "MISSING-COMMAND: %s not found on PATH\n"
	rootTemplateConstant                    = "ROOT: %s\n"
	syncTemplateConstant                    = "SYNC: submodule URLs refreshed\n"
	wouldSyncTemplateConstant               = "WOULD-SYNC: submodule URLs\n"
	warningTemplateConstant                 = "WARNING: %s\n"
	noSubmodulesTemplateConstant            = "SUBMODULES: no submodules found\n"
	skipMissingTemplateConstant             = "SKIP-MISSING: %s\n"
	inspectionFailedTemplateConstant        = "INSPECT-FAILED: %s: %v\n"
	skipDetachedTemplateConstant            = "SKIP-DETACHED: %s is clean on a detached HEAD\n"
	cleanTemplateConstant                   = "CLEAN: %s (%s)\n"
	branchTemplateConstant                  = "BRANCH: %s %s\n"
	wouldBranchTemplateConstant             = "WOULD-BRANCH: %s %s\n"
	branchDiscardedTemplateConstant         = "BRANCH-DISCARDED: %s %s\n"
	commitTemplateConstant                  = "COMMIT: %s\n"
	wouldCommitTemplateConstant             = "WOULD-COMMIT: %s\n"
	commitFailedTemplateConstant            = "COMMIT-FAILED: %s: %v\n"
	nothingToCommitTemplateConstant         = "NOTHING-TO-COMMIT: %s\n"
	pushTemplateConstant                    = "PUSH: %s -> %s\n"
	pushUpstreamTemplateConstant            = "PUSH: %s -> %s (upstream set)\n"
	wouldPushTemplateConstant               = "WOULD-PUSH: %s -> %s\n"
	pushSkippedTemplateConstant             = "PUSH-SKIPPED: %s (%s)\n"
	pushSkippedRemoteTemplateConstant       = "PUSH-SKIPPED: %s (%s: %s)\n"
	pushFailedTemplateConstant              = "PUSH-FAILED: %s: %v\n"
	runStartedLogMessageConstant            = "push-all started"
	runFinishedLogMessageConstant           = "push-all finished"
	submoduleProcessedLogMessageConstant    = "submodule processed"
	noOriginRemoteLogMessageConstant        = "no origin remote"
	pushSkippedLogMessageConstant           = "push skipped"
	detachedPushSkippedNoteConstant         = "push skipped: HEAD is detached"
	warningLogMessageConstant               = "push-all warning"
	logFieldRootConstant                    = "superproject_root"
	logFieldDryRunConstant                  = "dry_run"
	logFieldSubmodulePathConstant           = "submodule_path"
	logFieldOutcomeConstant                 = "outcome"
	logFieldWarningConstant                 = "warning"
	logFieldSubmoduleCountConstant          = "submodule_count"
	logFieldPushedCountConstant             = "pushed_count"
	logFieldSuperProjectOutcomeConstant     = "superproject_outcome"
	logFieldReasonConstant                  = "reason"
)

// ErrRepositoryClientNotConfigured indicates the service was created without a repository client.
var ErrRepositoryClientNotConfigured = errors.New(repositoryClientMissingMessageConstant)

// ErrSubmoduleCatalogNotConfigured indicates the service was created without a submodule catalog.
var ErrSubmoduleCatalogNotConfigured = errors.New(submoduleCatalogMissingMessageConstant)

// ErrExecutableLocatorNotConfigured indicates the service was created without an executable locator.
var ErrExecutableLocatorNotConfigured = errors.New(executableLocatorMissingMessageConstant)

// SubmoduleCatalog lists declared submodules and detects their checkouts.
type SubmoduleCatalog interface {
	ReadDeclarations(rootPath string) ([]submodules.Declaration, error)
	IsCheckedOut(rootPath string, relativePath string) (bool, error)
}

// Dependencies enumerates the collaborators required by Service.
type Dependencies struct {
	RepositoryClient  shared.RepoClient
	SubmoduleCatalog  SubmoduleCatalog
	ExecutableLocator execshell.ExecutableLocator
	Clock             shared.Clock
	Reporter          shared.Reporter
	Logger            *zap.Logger
}

// Service orchestrates the submodule and superproject synchronization.
type Service struct {
	repositoryClient  shared.RepoClient
	submoduleCatalog  SubmoduleCatalog
	executableLocator execshell.ExecutableLocator
	clock             shared.Clock
	reporter          shared.Reporter
	logger            *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryClient == nil {
		return nil, ErrRepositoryClientNotConfigured
	}
	if dependencies.SubmoduleCatalog == nil {
		return nil, ErrSubmoduleCatalogNotConfigured
	}
	if dependencies.ExecutableLocator == nil {
		return nil, ErrExecutableLocatorNotConfigured
	}

	clock := dependencies.Clock
	if clock == nil {
		clock = shared.SystemClock{}
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repositoryClient:  dependencies.RepositoryClient,
		submoduleCatalog:  dependencies.SubmoduleCatalog,
		executableLocator: dependencies.ExecutableLocator,
		clock:             clock,
		reporter:          reporter,
		logger:            logger,
	}, nil
}

// Run synchronizes every declared submodule and then the superproject.
// It returns an error only when git is missing, the working directory is not a
// working tree, the context is cancelled, or the superproject push fails.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	runOptions := options.normalized()
	result := Result{CommitMessage: runOptions.CommitMessage, DryRun: runOptions.DryRun}

	if _, lookupError := service.executableLocator.LookPath(gitExecutableNameConstant); lookupError != nil {
		service.reporter.Printf(missingCommandTemplateConstant, gitExecutableNameConstant)
		return result, newOperationError(OperationLocateGit, gitExecutableNameConstant, ErrMissingRequiredCommand, lookupError)
	}

	rootPath, rootError := service.repositoryClient.ResolveRoot(executionContext, runOptions.WorkingDirectory)
	if rootError != nil {
		return result, newOperationError(OperationResolveRoot, describeWorkingDirectory(runOptions.WorkingDirectory), ErrNotAGitRepository, rootError)
	}
	result.SuperProjectRoot = rootPath
	service.reporter.Printf(rootTemplateConstant, rootPath)
	service.logger.Info(runStartedLogMessageConstant, zap.String(logFieldRootConstant, rootPath), zap.Bool(logFieldDryRunConstant, runOptions.DryRun))

	service.syncSubmoduleURLs(executionContext, rootPath, runOptions, &result)

	declarations := service.selectDeclarations(rootPath, runOptions, &result)
	if len(declarations) == 0 {
		service.reporter.Printf(noSubmodulesTemplateConstant)
	}

	namer := newBranchNamer(service.clock, service.repositoryClient, runOptions.BranchPrefix)
	for _, declaration := range declarations {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}
		submoduleResult := service.processSubmodule(executionContext, rootPath, declaration, runOptions, namer, &result)
		service.logger.Info(
			submoduleProcessedLogMessageConstant,
			zap.String(logFieldSubmodulePathConstant, submoduleResult.Path),
			zap.String(logFieldOutcomeConstant, string(submoduleResult.Outcome)),
		)
		result.Submodules = append(result.Submodules, submoduleResult)
	}
	if contextError := executionContext.Err(); contextError != nil {
		return result, contextError
	}

	superProjectResult, superProjectError := service.processSuperProject(executionContext, rootPath, runOptions, &result)
	result.SuperProject = superProjectResult

	service.logger.Info(
		runFinishedLogMessageConstant,
		zap.Int(logFieldSubmoduleCountConstant, len(result.Submodules)),
		zap.Int(logFieldPushedCountConstant, result.PushedSubmoduleCount()),
		zap.String(logFieldSuperProjectOutcomeConstant, string(superProjectResult.Outcome)),
	)
	return result, superProjectError
}

func (service *Service) syncSubmoduleURLs(executionContext context.Context, rootPath string, options Options, result *Result) {
	if options.DryRun {
		service.reporter.Printf(wouldSyncTemplateConstant)
		return
	}
	if syncError := service.repositoryClient.SyncSubmoduleURLs(executionContext, rootPath); syncError != nil {
		service.recordWarning(result, newOperationError(OperationSyncURLs, rootPath, ErrSyncURLsFailed, syncError).Error())
		return
	}
	service.reporter.Printf(syncTemplateConstant)
}

func (service *Service) selectDeclarations(rootPath string, options Options, result *Result) []submodules.Declaration {
	declarations, readError := service.submoduleCatalog.ReadDeclarations(rootPath)
	if readError != nil {
		service.recordWarning(result, newOperationError(OperationReadModules, rootPath, readError, nil).Error())
		declarations = nil
	}
	if len(options.OnlyPaths) == 0 {
		return declarations
	}

	declaredPaths := make(map[string]struct{}, len(declarations))
	for _, declaration := range declarations {
		declaredPaths[declaration.Path] = struct{}{}
	}

	requestedPaths := map[string]struct{}{}
	for _, onlyPath := range options.OnlyPaths {
		normalizedPath, valid := submodules.NormalizePath(onlyPath)
		if !valid {
			service.recordWarning(result, fmt.Sprintf(undeclaredPathWarningTemplateConstant, strings.TrimSpace(onlyPath)))
			continue
		}
		if _, declared := declaredPaths[normalizedPath]; !declared {
			service.recordWarning(result, fmt.Sprintf(undeclaredPathWarningTemplateConstant, normalizedPath))
			continue
		}
		requestedPaths[normalizedPath] = struct{}{}
	}

	selectedDeclarations := make([]submodules.Declaration, 0, len(requestedPaths))
	for _, declaration := range declarations {
		if _, requested := requestedPaths[declaration.Path]; requested {
			selectedDeclarations = append(selectedDeclarations, declaration)
		}
	}
	return selectedDeclarations
}

func (service *Service) processSubmodule(executionContext context.Context, rootPath string, declaration submodules.Declaration, options Options, namer *branchNamer, result *Result) SubmoduleResult {
	submoduleResult := SubmoduleResult{Name: declaration.Name, Path: declaration.Path}
	submodulePath := filepath.Join(rootPath, filepath.FromSlash(declaration.Path))

	checkedOut, checkoutError := service.submoduleCatalog.IsCheckedOut(rootPath, declaration.Path)
	if checkoutError != nil {
		submoduleResult.Outcome = SubmoduleOutcomeInspectionFailed
		submoduleResult.Err = newOperationError(OperationCheckCheckout, declaration.Path, ErrInspectionFailed, checkoutError)
		service.reporter.Printf(inspectionFailedTemplateConstant, declaration.Path, checkoutError)
		return submoduleResult
	}
	if !checkedOut {
		submoduleResult.Outcome = SubmoduleOutcomeSkippedMissing
		submoduleResult.Err = newOperationError(OperationCheckCheckout, declaration.Path, ErrMissingCheckout, nil)
		service.reporter.Printf(skipMissingTemplateConstant, declaration.Path)
		return submoduleResult
	}

	state, inspectionError := service.inspectSubmodule(executionContext, submodulePath)
	if inspectionError != nil {
		submoduleResult.Outcome = SubmoduleOutcomeInspectionFailed
		submoduleResult.Err = newOperationError(OperationInspect, declaration.Path, ErrInspectionFailed, inspectionError)
		service.reporter.Printf(inspectionFailedTemplateConstant, declaration.Path, inspectionError)
		return submoduleResult
	}
	submoduleResult.State = state

	if !state.Dirty {
		if state.HeadDetached {
			submoduleResult.Outcome = SubmoduleOutcomeCleanNoPush
			service.reporter.Printf(skipDetachedTemplateConstant, declaration.Path)
			return submoduleResult
		}
		service.reporter.Printf(cleanTemplateConstant, declaration.Path, state.CurrentBranch)
		submoduleResult.Err = service.pushIfEligible(executionContext, submodulePath, declaration.Path, state.CurrentBranch, options, &submoduleResult)
		submoduleResult.Outcome = cleanOutcome(submoduleResult)
		return submoduleResult
	}

	branchName, commitError := service.commitSubmodule(executionContext, submodulePath, declaration.Path, state, options, namer, &submoduleResult, result)
	if commitError != nil {
		submoduleResult.Outcome = SubmoduleOutcomeCommitFailed
		submoduleResult.Err = commitError
		service.reporter.Printf(commitFailedTemplateConstant, declaration.Path, commitError)
		if state.HeadDetached && len(submoduleResult.CreatedBranch) == 0 {
			submoduleResult.Notes = append(submoduleResult.Notes, detachedPushSkippedNoteConstant)
			return submoduleResult
		}
		if pushError := service.pushIfEligible(executionContext, submodulePath, declaration.Path, branchName, options, &submoduleResult); pushError != nil {
			submoduleResult.Notes = append(submoduleResult.Notes, pushError.Error())
		}
		return submoduleResult
	}

	if !submoduleResult.Committed && state.HeadDetached {
		submoduleResult.Outcome = SubmoduleOutcomeCleanNoPush
		submoduleResult.Notes = append(submoduleResult.Notes, detachedPushSkippedNoteConstant)
		service.reporter.Printf(skipDetachedTemplateConstant, declaration.Path)
		return submoduleResult
	}

	submoduleResult.Err = service.pushIfEligible(executionContext, submodulePath, declaration.Path, branchName, options, &submoduleResult)
	if submoduleResult.Committed {
		submoduleResult.Outcome = committedOutcome(submoduleResult)
	} else {
		submoduleResult.Outcome = cleanOutcome(submoduleResult)
	}
	return submoduleResult
}

func (service *Service) inspectSubmodule(executionContext context.Context, submodulePath string) (SubmoduleState, error) {
	hasUnstagedChanges, unstagedError := service.repositoryClient.HasUnstagedChanges(executionContext, submodulePath)
	if unstagedError != nil {
		return SubmoduleState{}, unstagedError
	}
	hasStagedChanges, stagedError := service.repositoryClient.HasStagedChanges(executionContext, submodulePath)
	if stagedError != nil {
		return SubmoduleState{}, stagedError
	}
	headState, headError := service.repositoryClient.ResolveSymbolicHead(executionContext, submodulePath)
	if headError != nil {
		return SubmoduleState{}, headError
	}
	return SubmoduleState{
		CheckedOut:    true,
		Dirty:         hasUnstagedChanges || hasStagedChanges,
		HeadDetached:  headState.Detached,
		CurrentBranch: headState.BranchName,
	}, nil
}

// commitSubmodule returns the branch the commit landed on, creating one first when HEAD is detached.
func (service *Service) commitSubmodule(executionContext context.Context, submodulePath string, displayPath string, state SubmoduleState, options Options, namer *branchNamer, submoduleResult *SubmoduleResult, result *Result) (string, error) {
	branchName := state.CurrentBranch
	if state.HeadDetached {
		generatedName, namingError := namer.Next(executionContext, submodulePath)
		if namingError != nil {
			return "", newOperationError(OperationCreateBranch, displayPath, ErrCommitFailed, namingError)
		}
		if options.DryRun {
			service.reporter.Printf(wouldBranchTemplateConstant, displayPath, generatedName)
		} else {
			if creationError := service.repositoryClient.CreateAndSwitchBranch(executionContext, submodulePath, generatedName); creationError != nil {
				return "", newOperationError(OperationCreateBranch, displayPath, ErrCommitFailed, creationError)
			}
			service.reporter.Printf(branchTemplateConstant, displayPath, generatedName)
		}
		submoduleResult.CreatedBranch = generatedName
		branchName = generatedName
	}

	if options.DryRun {
		submoduleResult.Committed = true
		service.reporter.Printf(wouldCommitTemplateConstant, displayPath)
		return branchName, nil
	}

	if stageError := service.repositoryClient.StageAll(executionContext, submodulePath); stageError != nil {
		return branchName, newOperationError(OperationStage, displayPath, ErrCommitFailed, stageError)
	}
	hasStagedChanges, stagedError := service.repositoryClient.HasStagedChanges(executionContext, submodulePath)
	if stagedError != nil {
		return branchName, newOperationError(OperationStage, displayPath, ErrCommitFailed, stagedError)
	}
	if !hasStagedChanges {
		submoduleResult.Notes = append(submoduleResult.Notes, ErrNothingToCommit.Error())
		service.reporter.Printf(nothingToCommitTemplateConstant, displayPath)
		service.recordWarning(result, fmt.Sprintf(nothingToCommitWarningTemplateConstant, displayPath, ErrNothingToCommit.Error()))
		if state.HeadDetached {
			service.discardCreatedBranch(executionContext, submodulePath, displayPath, submoduleResult, result)
		}
		return branchName, nil
	}

	if commitError := service.repositoryClient.Commit(executionContext, submodulePath, options.CommitMessage); commitError != nil {
		return branchName, newOperationError(OperationCommit, displayPath, ErrCommitFailed, commitError)
	}
	submoduleResult.Committed = true
	service.reporter.Printf(commitTemplateConstant, displayPath)
	return branchName, nil
}

// discardCreatedBranch returns a submodule to its pinned commit when the branch created for it received no commit.
func (service *Service) discardCreatedBranch(executionContext context.Context, submodulePath string, displayPath string, submoduleResult *SubmoduleResult, result *Result) {
	createdBranch := submoduleResult.CreatedBranch
	if len(createdBranch) == 0 {
		return
	}
	if discardError := service.repositoryClient.DiscardBranch(executionContext, submodulePath, createdBranch); discardError != nil {
		service.recordWarning(result, newOperationError(OperationDiscardBranch, displayPath, ErrCommitFailed, discardError).Error())
		return
	}
	submoduleResult.CreatedBranch = ""
	service.reporter.Printf(branchDiscardedTemplateConstant, displayPath, createdBranch)
}

// pushIfEligible records the ownership decision and pushes when the policy allows it.
func (service *Service) pushIfEligible(executionContext context.Context, repositoryPath string, displayPath string, branchHint string, options Options, submoduleResult *SubmoduleResult) error {
	pushURL, lookupError := service.repositoryClient.GetPushURL(executionContext, repositoryPath, shared.OriginRemoteNameConstant)
	if lookupError != nil {
		note := fmt.Sprintf(pushURLLookupWarningTemplateConstant, displayPath, lookupError)
		submoduleResult.Notes = append(submoduleResult.Notes, note)
		service.reporter.Printf(pushSkippedTemplateConstant, displayPath, note)
		return nil
	}

	decision := options.OwnerPolicy.Decide(pushURL)
	submoduleResult.Ownership = decision
	if !decision.Eligible {
		if len(decision.PushURL) == 0 {
			service.logger.Info(noOriginRemoteLogMessageConstant, zap.String(logFieldSubmodulePathConstant, displayPath))
			service.reporter.Printf(pushSkippedTemplateConstant, displayPath, decision.Reason)
			return nil
		}
		service.logger.Info(pushSkippedLogMessageConstant, zap.String(logFieldSubmodulePathConstant, displayPath), zap.String(logFieldReasonConstant, decision.Reason))
		service.reporter.Printf(pushSkippedRemoteTemplateConstant, displayPath, decision.Reason, gitrepo.DescribeRemote(decision.PushURL))
		return nil
	}

	submoduleResult.PushAttempted = true
	if pushError := service.pushRepository(executionContext, repositoryPath, displayPath, branchHint, options.DryRun); pushError != nil {
		service.reporter.Printf(pushFailedTemplateConstant, displayPath, pushError)
		return newOperationError(OperationPush, displayPath, ErrPushFailed, pushError)
	}
	submoduleResult.Pushed = true
	return nil
}

// pushRepository pushes the current branch to origin, recording origin as the upstream when none is configured.
// The destination is always origin because that is the remote whose URL passed the ownership check.
func (service *Service) pushRepository(executionContext context.Context, repositoryPath string, displayPath string, branchHint string, dryRun bool) error {
	branchName, branchError := service.repositoryClient.GetCurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		return branchError
	}
	if len(branchName) == 0 || branchName == detachedHeadBranchNameConstant {
		if !dryRun || len(branchHint) == 0 {
			return ErrDetachedHead
		}
		branchName = branchHint
	}

	upstreamBranch, upstreamError := service.repositoryClient.GetUpstreamBranch(executionContext, repositoryPath)
	if upstreamError != nil {
		return upstreamError
	}

	destination := fmt.Sprintf(remoteReferenceTemplateConstant, shared.OriginRemoteNameConstant, branchName)
	if len(upstreamBranch) == 0 {
		if dryRun {
			service.reporter.Printf(wouldPushTemplateConstant, displayPath, destination)
			return nil
		}
		if pushError := service.repositoryClient.PushSetUpstream(executionContext, repositoryPath, shared.OriginRemoteNameConstant, branchName); pushError != nil {
			return pushError
		}
		service.reporter.Printf(pushUpstreamTemplateConstant, displayPath, destination)
		return nil
	}

	if dryRun {
		service.reporter.Printf(wouldPushTemplateConstant, displayPath, destination)
		return nil
	}
	if pushError := service.repositoryClient.Push(executionContext, repositoryPath, shared.OriginRemoteNameConstant, branchName); pushError != nil {
		return pushError
	}
	service.reporter.Printf(pushTemplateConstant, displayPath, destination)
	return nil
}

func (service *Service) processSuperProject(executionContext context.Context, rootPath string, options Options, result *Result) (SuperProjectResult, error) {
	superProjectResult := SuperProjectResult{}

	if !options.DryRun {
		if stageError := service.repositoryClient.StageAll(executionContext, rootPath); stageError != nil {
			service.recordWarning(result, newOperationError(OperationStage, superProjectLabelConstant, ErrCommitFailed, stageError).Error())
		}
	}

	hasStagedChanges, stagedError := service.repositoryClient.HasStagedChanges(executionContext, rootPath)
	if stagedError != nil {
		service.recordWarning(result, newOperationError(OperationStage, superProjectLabelConstant, ErrCommitFailed, stagedError).Error())
		hasStagedChanges = false
	}

	switch {
	case !hasStagedChanges:
		service.reporter.Printf(nothingToCommitTemplateConstant, superProjectLabelConstant)
	case options.DryRun:
		superProjectResult.Committed = true
		service.reporter.Printf(wouldCommitTemplateConstant, superProjectLabelConstant)
	default:
		if commitError := service.repositoryClient.Commit(executionContext, rootPath, options.CommitMessage); commitError != nil {
			service.reporter.Printf(commitFailedTemplateConstant, superProjectLabelConstant, commitError)
			service.recordWarning(result, newOperationError(OperationCommit, superProjectLabelConstant, ErrCommitFailed, commitError).Error())
		} else {
			superProjectResult.Committed = true
			service.reporter.Printf(commitTemplateConstant, superProjectLabelConstant)
		}
	}

	if pushError := service.pushRepository(executionContext, rootPath, superProjectLabelConstant, "", options.DryRun); pushError != nil {
		service.reporter.Printf(pushFailedTemplateConstant, superProjectLabelConstant, pushError)
		superProjectResult.Err = newOperationError(OperationPush, rootPath, ErrPushFailed, pushError)
		if superProjectResult.Committed {
			superProjectResult.Outcome = SuperProjectOutcomeCommittedPushFailed
		} else {
			superProjectResult.Outcome = SuperProjectOutcomePushFailedFatal
		}
		return superProjectResult, superProjectResult.Err
	}

	superProjectResult.Pushed = true
	if superProjectResult.Committed {
		superProjectResult.Outcome = SuperProjectOutcomeCommittedPushed
	} else {
		superProjectResult.Outcome = SuperProjectOutcomeNoChanges
	}
	return superProjectResult, nil
}

func (service *Service) recordWarning(result *Result, message string) {
	result.Warnings = append(result.Warnings, message)
	service.reporter.Printf(warningTemplateConstant, message)
	service.logger.Warn(warningLogMessageConstant, zap.String(logFieldWarningConstant, message))
}

func cleanOutcome(submoduleResult SubmoduleResult) SubmoduleOutcome {
	switch {
	case submoduleResult.Pushed:
		return SubmoduleOutcomeCleanPushed
	case submoduleResult.PushAttempted:
		return SubmoduleOutcomeCleanPushFailed
	default:
		return SubmoduleOutcomeCleanNoPush
	}
}

func committedOutcome(submoduleResult SubmoduleResult) SubmoduleOutcome {
	switch {
	case submoduleResult.Pushed:
		return SubmoduleOutcomeCommittedPushed
	case submoduleResult.PushAttempted:
		return SubmoduleOutcomeCommittedPushFailed
	default:
		return SubmoduleOutcomeCommittedNotOwned
	}
}

func describeWorkingDirectory(workingDirectory string) string {
	trimmedDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedDirectory) == 0 {
		return currentDirectoryLabelConstant
	}
	return trimmedDirectory
}
