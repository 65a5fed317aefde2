package pushall

import (
	"strings"

	pathutils "github.com/temirov/pushall/internal/utils/path"
)

var pushAllConfigurationHomeDirectoryExpander = pathutils.NewHomeExpander()

const (
	configurationKeySeparatorConstant     = "."
	configurationOwnerPatternKeyConstant  = "owner_pattern"
	configurationBranchPrefixKeyConstant  = "branch_prefix"
	configurationCommitMessageKeyConstant = "commit_message"
	configurationSummaryKeyConstant       = "summary"
	configurationRootKeyConstant          = "repository_root"
	configurationDryRunKeyConstant        = "dry_run"
	configurationOnlyKeyConstant          = "only"
)

// CommandConfiguration captures configuration values for the push-all command.
type CommandConfiguration struct {
	OwnerPattern   OwnerPattern `mapstructure:"owner_pattern"`
	BranchPrefix   string       `mapstructure:"branch_prefix"`
	CommitMessage  string       `mapstructure:"commit_message"`
	Summary        string       `mapstructure:"summary"`
	RepositoryRoot string       `mapstructure:"repository_root"`
	DryRun         bool         `mapstructure:"dry_run"`
	OnlyPaths      []string     `mapstructure:"only"`
}

// DefaultCommandConfiguration provides baseline configuration values for push-all.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		OwnerPattern:   OwnerPattern{},
		BranchPrefix:   defaultBranchPrefixConstant,
		CommitMessage:  defaultCommitMessageConstant,
		Summary:        string(SummaryFormatNone),
		RepositoryRoot: "",
		DryRun:         false,
		OnlyPaths:      nil,
	}
}

// DefaultConfigurationValues returns viper defaults keyed under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationOwnerPatternKeyConstant:  defaults.OwnerPattern.String(),
		rootKey + configurationKeySeparatorConstant + configurationBranchPrefixKeyConstant:  defaults.BranchPrefix,
		rootKey + configurationKeySeparatorConstant + configurationCommitMessageKeyConstant: defaults.CommitMessage,
		rootKey + configurationKeySeparatorConstant + configurationSummaryKeyConstant:       defaults.Summary,
		rootKey + configurationKeySeparatorConstant + configurationRootKeyConstant:          defaults.RepositoryRoot,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:        defaults.DryRun,
		rootKey + configurationKeySeparatorConstant + configurationOnlyKeyConstant:          []string{},
	}
}

// Sanitize trims configured values and expands the repository root.
// The commit message is kept verbatim.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.BranchPrefix = strings.TrimSpace(configuration.BranchPrefix)
	sanitized.Summary = strings.ToLower(strings.TrimSpace(configuration.Summary))
	sanitized.RepositoryRoot = pushAllConfigurationHomeDirectoryExpander.Expand(strings.TrimSpace(configuration.RepositoryRoot))
	sanitized.OnlyPaths = sanitizeOnlyPaths(configuration.OnlyPaths)
	return sanitized
}

func sanitizeOnlyPaths(candidatePaths []string) []string {
	sanitizedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}
		sanitizedPaths = append(sanitizedPaths, trimmedPath)
	}
	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}
