package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pushall/internal/utils"
	"github.com/temirov/pushall/internal/utils/flags"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testOwnerPatternConstant          = `github\.com[:/]acme/`
	testPushAllCommandNameConstant    = "push-all"
	testOwnerPatternEnvironmentName   = "PUSHALL_TOOLS_PUSH_ALL_OWNER_PATTERN"
)

func writeTestConfiguration(testInstance *testing.T, content string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o600))
	return configurationPath
}

func newTestApplication(testInstance *testing.T, configurationContent string) *Application {
	testInstance.Helper()
	application := NewApplication()
	application.configurationFilePath = writeTestConfiguration(testInstance, configurationContent)
	application.rootCommand.SetContext(context.Background())
	return application
}

func TestNewApplicationRegistersPushAllCommand(testInstance *testing.T) {
	application := NewApplication()

	pushAllCommand, _, findError := application.rootCommand.Find([]string{testPushAllCommandNameConstant})
	require.NoError(testInstance, findError)
	require.Equal(testInstance, testPushAllCommandNameConstant, pushAllCommand.Name())

	for _, flagName := range []string{configFileFlagNameConstant, logLevelFlagNameConstant, logFormatFlagNameConstant} {
		require.NotNil(testInstance, application.rootCommand.PersistentFlags().Lookup(flagName), flagName)
	}
}

func TestInitializeConfigurationLoadsPushAllSettings(testInstance *testing.T) {
	application := newTestApplication(testInstance, "common:\n  log_level: debug\ntools:\n  push_all:\n    owner_pattern: '"+testOwnerPatternConstant+"'\n    branch_prefix: wip\n    summary: yaml\n    only:\n      - libfoo\n")

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	pushAllConfiguration := application.configuration.Tools.PushAll
	require.Equal(testInstance, testOwnerPatternConstant, pushAllConfiguration.OwnerPattern.String())
	require.Equal(testInstance, "wip", pushAllConfiguration.BranchPrefix)
	require.Equal(testInstance, "yaml", pushAllConfiguration.Summary)
	require.Equal(testInstance, "sync", pushAllConfiguration.CommitMessage)
	require.Equal(testInstance, []string{"libfoo"}, pushAllConfiguration.OnlyPaths)
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)

	runContext, available := application.commandContextAccessor.RunContext(application.rootCommand.Context())
	require.True(testInstance, available)
	require.Equal(testInstance, application.configurationFilePath, runContext.ConfigurationFilePath)
	require.False(testInstance, runContext.HumanReadable())
}

func TestInitializeConfigurationAppliesEnvironmentOverride(testInstance *testing.T) {
	const environmentPattern = `gitlab\.example\.com[:/]platform/`
	testInstance.Setenv(testOwnerPatternEnvironmentName, environmentPattern)
	application := newTestApplication(testInstance, "common:\n  log_level: info\n")

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, environmentPattern, application.configuration.Tools.PushAll.OwnerPattern.String())
}

func TestInitializeConfigurationAppliesLoggingFlags(testInstance *testing.T) {
	application := newTestApplication(testInstance, "common:\n  log_level: info\n  log_format: structured\n")
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "CONSOLE"))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "warn"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, string(utils.LogFormatConsole), application.configuration.Common.LogFormat)
	require.Equal(testInstance, "warn", application.configuration.Common.LogLevel)
	require.True(testInstance, application.humanReadableLoggingEnabled())

	runContext, available := application.commandContextAccessor.RunContext(application.rootCommand.Context())
	require.True(testInstance, available)
	require.True(testInstance, runContext.HumanReadable())
}

func TestInitializeConfigurationRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		configurationContent string
		expectedFragment     string
	}{
		{
			name:                 "invalid_owner_pattern",
			configurationContent: "tools:\n  push_all:\n    owner_pattern: '(unclosed'\n",
			expectedFragment:     "unable to load configuration",
		},
		{
			name:                 "invalid_log_level",
			configurationContent: "common:\n  log_level: verbose\n",
			expectedFragment:     "unable to create logger",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			application := newTestApplication(testInstance, testCase.configurationContent)

			initializationError := application.initializeConfiguration(application.rootCommand)

			require.Error(testInstance, initializationError)
			require.Contains(testInstance, initializationError.Error(), testCase.expectedFragment)
		})
	}
}

func TestLogFormatFlagRejectsUnknownFormat(testInstance *testing.T) {
	application := NewApplication()

	setError := application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "xml")

	require.Error(testInstance, setError)
	require.Contains(testInstance, setError.Error(), flags.ErrUnsupportedChoice.Error())
}

func TestConfigurationSearchPathsIncludeWorkingDirectory(testInstance *testing.T) {
	searchPaths := configurationSearchPaths()
	require.NotEmpty(testInstance, searchPaths)
	require.Equal(testInstance, defaultConfigurationSearchPathConstant, searchPaths[0])
	if len(searchPaths) > 1 {
		require.Equal(testInstance, userConfigurationDirectoryNameConstant, filepath.Base(searchPaths[1]))
	}
}
