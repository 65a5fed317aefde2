package utils

import (
	"context"
	"strings"
)

const (
	runContextKeyConstant = commandContextKey("pushallRunContext")
)

type commandContextKey string

// RunContext carries values resolved by the root command into subcommands.
type RunContext struct {
	ConfigurationFilePath string
	LogFormat             LogFormat
}

// HumanReadable reports whether the run logs in console format.
func (runContext RunContext) HumanReadable() bool {
	return strings.EqualFold(strings.TrimSpace(string(runContext.LogFormat)), string(LogFormatConsole))
}

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithRunContext attaches runContext to parentContext.
func (accessor CommandContextAccessor) WithRunContext(parentContext context.Context, runContext RunContext) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, runContextKeyConstant, runContext)
}

// RunContext extracts the run context; the boolean is false when none was attached.
func (accessor CommandContextAccessor) RunContext(executionContext context.Context) (RunContext, bool) {
	if executionContext == nil {
		return RunContext{}, false
	}
	runContext, available := executionContext.Value(runContextKeyConstant).(RunContext)
	return runContext, available
}
