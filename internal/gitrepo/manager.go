package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	gitTerminalPromptEnvironmentNameConstant  = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentValueConstant = "0"
	gitRevParseCommandConstant                = "rev-parse"
	gitShowTopLevelFlagConstant               = "--show-toplevel"
	gitAbbrevRefFlagConstant                  = "--abbrev-ref"
	gitHeadReferenceConstant                  = "HEAD"
	gitTagCommandConstant                     = "tag"
	gitTagListFlagConstant                    = "-l"
	gitRemoteCommandConstant                  = "remote"
	gitRemoteGetURLCommandConstant            = "get-url"
	gitStatusCommandConstant                  = "status"
	gitPorcelainFlagConstant                  = "--porcelain"
	lineSeparatorConstant                     = "\n"
	requiredValueMessageConstant              = "value required"
	executorNotConfiguredMessageConstant      = "git executor not configured"
	repositoryPathRequiredMessageConstant     = "repository path required"
	remoteNameRequiredMessageConstant         = "remote name required"
	tagNameRequiredMessageConstant            = "tag name required"
	detachedHeadMessageConstant               = "repository is in a detached HEAD state"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrRepositoryPathRequired indicates a query omitted the repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRemoteNameRequired indicates a remote lookup omitted the remote name.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// ErrTagNameRequired indicates a tag lookup omitted the tag name.
var ErrTagNameRequired = errors.New(tagNameRequiredMessageConstant)

// ErrDetachedHead indicates the repository has no current branch.
var ErrDetachedHead = errors.New(detachedHeadMessageConstant)

// NewCommandDetails builds git invocation details that never block on credential prompts.
func NewCommandDetails(workingDirectory string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:            append([]string{}, arguments...),
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentValueConstant},
	}
}

// RepositoryManager answers repository-level questions through git.
type RepositoryManager struct {
	executor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the executor.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// TopLevel returns the root of the repository containing workingDirectory. An empty directory means the process directory.
func (manager *RepositoryManager) TopLevel(executionContext context.Context, workingDirectory string) (string, error) {
	return manager.captureTrimmed(executionContext, strings.TrimSpace(workingDirectory), gitRevParseCommandConstant, gitShowTopLevelFlagConstant)
}

// GetCurrentBranch returns the checked-out branch name.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return "", ErrRepositoryPathRequired
	}
	branchName, queryError := manager.captureTrimmed(executionContext, repositoryPath, gitRevParseCommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if queryError != nil {
		return "", queryError
	}
	if branchName == gitHeadReferenceConstant {
		return "", ErrDetachedHead
	}
	return branchName, nil
}

// ListTags returns every tag name in the repository.
func (manager *RepositoryManager) ListTags(executionContext context.Context, repositoryPath string) ([]string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return nil, ErrRepositoryPathRequired
	}
	tagOutput, queryError := manager.captureTrimmed(executionContext, repositoryPath, gitTagCommandConstant, gitTagListFlagConstant)
	if queryError != nil {
		return nil, queryError
	}
	return splitNonEmptyLines(tagOutput), nil
}

// TagExists reports whether a tag with exactly this name exists.
func (manager *RepositoryManager) TagExists(executionContext context.Context, repositoryPath string, tagName string) (bool, error) {
	trimmedTagName := strings.TrimSpace(tagName)
	if len(trimmedTagName) == 0 {
		return false, ErrTagNameRequired
	}
	tags, listError := manager.ListTags(executionContext, repositoryPath)
	if listError != nil {
		return false, listError
	}
	for _, existingTag := range tags {
		if existingTag == trimmedTagName {
			return true, nil
		}
	}
	return false, nil
}

// GetRemoteURL returns the fetch URL of the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return "", ErrRepositoryPathRequired
	}
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return "", ErrRemoteNameRequired
	}
	return manager.captureTrimmed(executionContext, repositoryPath, gitRemoteCommandConstant, gitRemoteGetURLCommandConstant, trimmedRemoteName)
}

// CheckCleanWorktree reports whether the repository has no staged, modified or untracked files.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return false, ErrRepositoryPathRequired
	}
	statusOutput, queryError := manager.captureTrimmed(executionContext, repositoryPath, gitStatusCommandConstant, gitPorcelainFlagConstant)
	if queryError != nil {
		return false, queryError
	}
	return len(statusOutput) == 0, nil
}

func (manager *RepositoryManager) captureTrimmed(executionContext context.Context, workingDirectory string, arguments ...string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, NewCommandDetails(workingDirectory, arguments...))
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func splitNonEmptyLines(output string) []string {
	lines := strings.Split(output, lineSeparatorConstant)
	values := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		values = append(values, trimmedLine)
	}
	return values
}
