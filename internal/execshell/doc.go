// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap diagnostics and lifecycle
// observers, OSCommandRunner executes processes through os/exec, and
// CommandMessageFormatter turns git invocations into the human-readable lines
// shown when console logging is enabled.
package execshell
