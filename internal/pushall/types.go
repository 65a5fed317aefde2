package pushall

const (
	defaultCommitMessageConstant = "sync"
	defaultBranchPrefixConstant  = "auto"
)

// SubmoduleOutcome summarizes what happened to one submodule.
type SubmoduleOutcome string

// Submodule outcomes.
const (
	SubmoduleOutcomeSkippedMissing      SubmoduleOutcome = "skipped-missing"
	SubmoduleOutcomeInspectionFailed    SubmoduleOutcome = "inspection-failed"
	SubmoduleOutcomeCleanNoPush         SubmoduleOutcome = "clean-no-push"
	SubmoduleOutcomeCleanPushed         SubmoduleOutcome = "clean-pushed"
	SubmoduleOutcomeCleanPushFailed     SubmoduleOutcome = "clean-push-failed"
	SubmoduleOutcomeCommitFailed        SubmoduleOutcome = "commit-failed"
	SubmoduleOutcomeCommittedNotOwned   SubmoduleOutcome = "committed-not-owned"
	SubmoduleOutcomeCommittedPushed     SubmoduleOutcome = "committed-pushed"
	SubmoduleOutcomeCommittedPushFailed SubmoduleOutcome = "committed-push-failed"
)

// SuperProjectOutcome summarizes what happened to the superproject.
type SuperProjectOutcome string

// Superproject outcomes.
const (
	SuperProjectOutcomeNoChanges           SuperProjectOutcome = "no-changes"
	SuperProjectOutcomeCommittedPushed     SuperProjectOutcome = "committed-pushed"
	SuperProjectOutcomeCommittedPushFailed SuperProjectOutcome = "committed-push-failed"
	SuperProjectOutcomePushFailedFatal     SuperProjectOutcome = "push-failed-fatal"
)

// Options configures a single synchronization run.
type Options struct {
	// WorkingDirectory is where root resolution starts; empty means the process working directory.
	WorkingDirectory string
	// CommitMessage is used verbatim for every commit; empty selects "sync".
	CommitMessage string
	// OwnerPolicy decides which push URLs may receive pushes; nil pushes nowhere.
	OwnerPolicy OwnershipPolicy
	// BranchPrefix names branches created on detached HEADs; empty selects "auto".
	BranchPrefix string
	// DryRun announces every decision without running mutating git commands.
	DryRun bool
	// OnlyPaths restricts processing to these declared submodule paths.
	OnlyPaths []string
}

// SubmoduleState is the per-run snapshot a submodule's processing branches on.
type SubmoduleState struct {
	CheckedOut    bool
	Dirty         bool
	HeadDetached  bool
	CurrentBranch string
}

// SubmoduleResult records the decisions and outcome for one submodule.
type SubmoduleResult struct {
	Name          string
	Path          string
	Outcome       SubmoduleOutcome
	State         SubmoduleState
	CreatedBranch string
	Committed     bool
	Ownership     OwnershipDecision
	PushAttempted bool
	Pushed        bool
	Notes         []string
	Err           error
}

// SuperProjectResult records the outcome for the superproject.
type SuperProjectResult struct {
	Outcome   SuperProjectOutcome
	Committed bool
	Pushed    bool
	Err       error
}

// Result aggregates everything a run did.
type Result struct {
	SuperProjectRoot string
	CommitMessage    string
	DryRun           bool
	Submodules       []SubmoduleResult
	SuperProject     SuperProjectResult
	Warnings         []string
}

// PushedSubmoduleCount returns how many submodules were pushed.
func (result Result) PushedSubmoduleCount() int {
	pushedCount := 0
	for _, submoduleResult := range result.Submodules {
		if submoduleResult.Pushed {
			pushedCount++
		}
	}
	return pushedCount
}

func (options Options) normalized() Options {
	normalizedOptions := options
	if len(normalizedOptions.CommitMessage) == 0 {
		normalizedOptions.CommitMessage = defaultCommitMessageConstant
	}
	normalizedOptions.BranchPrefix = sanitizeBranchPrefix(options.BranchPrefix)
	if normalizedOptions.OwnerPolicy == nil {
		normalizedOptions.OwnerPolicy = NewPatternOwnershipPolicy(OwnerPattern{})
	}
	return normalizedOptions
}
