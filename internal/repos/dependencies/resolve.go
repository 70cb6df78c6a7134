// Package dependencies supplies default collaborators for release services.
package dependencies

import (
	"io"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/gitrepo"
	"github.com/temirov/pubrelease/internal/repos/filesystem"
	"github.com/temirov/pubrelease/internal/repos/prompt"
	"github.com/temirov/pubrelease/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}

// ResolveCommandExecutor returns the provided executor or constructs a shell-backed default that reports
// command lifecycle events to the observer and mirrors live output to the supplied writers.
func ResolveCommandExecutor(existing shared.CommandExecutor, logger *zap.Logger, observer execshell.CommandEventObserver, outputMirror io.Writer, errorMirror io.Writer) (shared.CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewMirroringOSCommandRunner(outputMirror, errorMirror)
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveConfirmationPrompter returns the provided prompter or one reading answers from input.
func ResolveConfirmationPrompter(existing shared.ConfirmationPrompter, input io.Reader, output io.Writer) shared.ConfirmationPrompter {
	if existing != nil {
		return existing
	}
	return prompt.NewIOConfirmationPrompter(input, output)
}
