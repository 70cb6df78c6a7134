package shared

import (
	"context"
	"io/fs"
	"time"

	"github.com/temirov/pubrelease/internal/execshell"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes the filesystem queries used by release steps.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
}

// ConfirmationResult captures the outcome of a user confirmation prompt.
type ConfirmationResult struct {
	Confirmed  bool
	ApplyToAll bool
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (ConfirmationResult, error)
}

// GitExecutor exposes the subset of shell execution used for git.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ToolExecutor runs arbitrary executables such as the SDK build wrapper.
type ToolExecutor interface {
	ExecuteTool(executionContext context.Context, executable string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandExecutor combines git and tool execution.
type CommandExecutor interface {
	GitExecutor
	ToolExecutor
}

// GitRepositoryManager exposes repository-level git queries.
type GitRepositoryManager interface {
	TopLevel(executionContext context.Context, workingDirectory string) (string, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	ListTags(executionContext context.Context, repositoryPath string) ([]string, error)
	TagExists(executionContext context.Context, repositoryPath string, tagName string) (bool, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
}
