package pushall

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pushall/internal/dependencies"
	"github.com/temirov/pushall/internal/execshell"
	"github.com/temirov/pushall/internal/shared"
	"github.com/temirov/pushall/internal/submodules"
	"github.com/temirov/pushall/internal/utils"
	"github.com/temirov/pushall/internal/utils/flags"
)

const (
	commandUseConstant                     = "push-all [commit message]"
	commandShortDescriptionConstant        = "Commit and push every owned submodule, then the superproject"
	commandLongDescriptionConstant         = "push-all walks the submodules declared in .gitmodules, commits local changes with the given message, pushes repositories whose origin matches the owner pattern, and finally commits and pushes the superproject."
	commandExampleConstant                 = "  pushall push-all \"update vendored libraries\" --owner-pattern 'github\\.com[:/]acme/'"
	commitMessageArgumentSeparatorConstant = " "
	dryRunFlagNameConstant                 = "dry-run"
	dryRunFlagUsageConstant                = "Announce every decision without committing, creating branches, or pushing"
	onlyFlagNameConstant                   = "only"
	onlyFlagUsageConstant                  = "Restrict processing to this declared submodule path (repeatable)"
	ownerPatternFlagNameConstant           = "owner-pattern"
	ownerPatternFlagUsageConstant          = "Regular expression matched against origin push URLs of submodules that may be pushed"
	branchPrefixFlagNameConstant           = "branch-prefix"
	branchPrefixFlagUsageConstant          = "Prefix for branches created on detached HEADs"
	summaryFlagNameConstant                = "summary"
	summaryFlagUsageConstant               = "Print a run summary after the progress log."
	rootFlagNameConstant                   = "root"
	rootFlagUsageConstant                  = "Directory inside the superproject working tree"
	ownerPatternMissingWarningConstant     = "owner pattern not configured; submodule pushes are disabled"
	commandConfigurationLogMessageConstant = "push-all configuration"
	logFieldConfigurationFileConstant      = "config_file"
	logFieldOwnerPatternConstant           = "owner_pattern"
	logFieldSummaryFormatConstant          = "summary"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the push-all command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryClient             shared.RepoClient
	SubmoduleCatalog             SubmoduleCatalog
	ExecutableLocator            execshell.ExecutableLocator
	Clock                        shared.Clock
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the push-all command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	summaryValue := flags.NewChoiceValue(string(SummaryFormatNone), SummaryFormats())
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagUsageConstant)
	command.Flags().StringArray(onlyFlagNameConstant, nil, onlyFlagUsageConstant)
	command.Flags().String(ownerPatternFlagNameConstant, "", ownerPatternFlagUsageConstant)
	command.Flags().String(branchPrefixFlagNameConstant, "", branchPrefixFlagUsageConstant)
	command.Flags().Var(summaryValue, summaryFlagNameConstant, summaryValue.Usage(summaryFlagUsageConstant))
	command.Flags().String(rootFlagNameConstant, "", rootFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.applyFlagOverrides(command, builder.resolveConfiguration())
	if configurationError != nil {
		return configurationError
	}

	summaryFormat, summaryFormatError := ParseSummaryFormat(configuration.Summary)
	if summaryFormatError != nil {
		return summaryFormatError
	}

	commitMessage := configuration.CommitMessage
	if len(arguments) > 0 {
		commitMessage = strings.Join(arguments, commitMessageArgumentSeparatorConstant)
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLogging(command))
	if executorError != nil {
		return executorError
	}

	repositoryClient, clientError := dependencies.ResolveRepositoryClient(builder.RepositoryClient, gitExecutor)
	if clientError != nil {
		return clientError
	}

	submoduleCatalog := builder.SubmoduleCatalog
	if submoduleCatalog == nil {
		submoduleCatalog = submodules.NewCatalog(submodules.OSFilesystemFactory)
	}

	outputWriter := command.OutOrStdout()
	service, serviceCreationError := NewService(Dependencies{
		RepositoryClient:  repositoryClient,
		SubmoduleCatalog:  submoduleCatalog,
		ExecutableLocator: dependencies.ResolveExecutableLocator(builder.ExecutableLocator),
		Clock:             dependencies.ResolveClock(builder.Clock),
		Reporter:          shared.NewWriterReporter(outputWriter),
		Logger:            logger,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	configurationFilePath := ""
	if runContext, available := utils.NewCommandContextAccessor().RunContext(command.Context()); available {
		configurationFilePath = runContext.ConfigurationFilePath
	}
	logger.Debug(
		commandConfigurationLogMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.String(logFieldOwnerPatternConstant, configuration.OwnerPattern.String()),
		zap.String(logFieldSummaryFormatConstant, string(summaryFormat)),
	)
	if configuration.OwnerPattern.IsZero() {
		logger.Warn(ownerPatternMissingWarningConstant)
	}

	result, runError := service.Run(command.Context(), Options{
		WorkingDirectory: configuration.RepositoryRoot,
		CommitMessage:    commitMessage,
		OwnerPolicy:      NewPatternOwnershipPolicy(configuration.OwnerPattern),
		BranchPrefix:     configuration.BranchPrefix,
		DryRun:           configuration.DryRun,
		OnlyPaths:        configuration.OnlyPaths,
	})

	if len(result.SuperProjectRoot) > 0 {
		if renderError := RenderSummary(outputWriter, result, summaryFormat); renderError != nil && runError == nil {
			return renderError
		}
	}

	return runError
}

func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) (CommandConfiguration, error) {
	commandFlags := command.Flags()

	if commandFlags.Changed(dryRunFlagNameConstant) {
		dryRun, flagError := commandFlags.GetBool(dryRunFlagNameConstant)
		if flagError != nil {
			return configuration, flagError
		}
		configuration.DryRun = dryRun
	}

	if commandFlags.Changed(onlyFlagNameConstant) {
		onlyPaths, flagError := commandFlags.GetStringArray(onlyFlagNameConstant)
		if flagError != nil {
			return configuration, flagError
		}
		configuration.OnlyPaths = sanitizeOnlyPaths(onlyPaths)
	}

	if commandFlags.Changed(ownerPatternFlagNameConstant) {
		rawPattern, flagError := commandFlags.GetString(ownerPatternFlagNameConstant)
		if flagError != nil {
			return configuration, flagError
		}
		ownerPattern, parseError := ParseOwnerPattern(rawPattern)
		if parseError != nil {
			return configuration, parseError
		}
		configuration.OwnerPattern = ownerPattern
	}

	if commandFlags.Changed(branchPrefixFlagNameConstant) {
		branchPrefix, flagError := commandFlags.GetString(branchPrefixFlagNameConstant)
		if flagError != nil {
			return configuration, flagError
		}
		configuration.BranchPrefix = strings.TrimSpace(branchPrefix)
	}

	if commandFlags.Changed(summaryFlagNameConstant) {
		configuration.Summary = commandFlags.Lookup(summaryFlagNameConstant).Value.String()
	}

	if commandFlags.Changed(rootFlagNameConstant) {
		repositoryRoot, flagError := commandFlags.GetString(rootFlagNameConstant)
		if flagError != nil {
			return configuration, flagError
		}
		configuration.RepositoryRoot = pushAllConfigurationHomeDirectoryExpander.Expand(strings.TrimSpace(repositoryRoot))
	}

	return configuration, nil
}

func (builder *CommandBuilder) humanReadableLogging(command *cobra.Command) bool {
	if builder.HumanReadableLoggingProvider != nil {
		return builder.HumanReadableLoggingProvider()
	}
	if runContext, available := utils.NewCommandContextAccessor().RunContext(command.Context()); available {
		return runContext.HumanReadable()
	}
	return false
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
