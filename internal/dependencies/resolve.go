package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/pushall/internal/execshell"
	"github.com/temirov/pushall/internal/gitrepo"
	"github.com/temirov/pushall/internal/shared"
	"github.com/temirov/pushall/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable mode attaches a console observer that narrates each git invocation.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadable bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	observers := []execshell.CommandEventObserver{}
	if humanReadable {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryClient returns the provided client or constructs a repository manager from the executor.
func ResolveRepositoryClient(existing shared.RepoClient, executor shared.GitExecutor) (shared.RepoClient, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveExecutableLocator returns the provided locator or a PATH-backed default.
func ResolveExecutableLocator(existing execshell.ExecutableLocator) execshell.ExecutableLocator {
	if existing != nil {
		return existing
	}
	return execshell.OSExecutableLocator{}
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}
