package sdk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/release"
	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	testPublicURLConstant     = "https://github.com/card-io/card.io-Android-SDK.git"
	testReleaseBranchConstant = "release/1.4.0"
	testVersionConstant       = "1.4.0"
)

type recordingExecutor struct {
	sourceRoot   string
	branch       string
	remoteURLs   map[string]string
	gitCommands  []execshell.CommandDetails
	toolCommands [][]string
}

func newRecordingExecutor(sourceRoot string) *recordingExecutor {
	return &recordingExecutor{sourceRoot: sourceRoot, branch: testReleaseBranchConstant, remoteURLs: map[string]string{}}
}

func (executor *recordingExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.gitCommands = append(executor.gitCommands, details)
	joined := strings.Join(details.Arguments, " ")
	switch {
	case joined == "rev-parse --show-toplevel":
		return execshell.ExecutionResult{StandardOutput: executor.sourceRoot + "\n"}, nil
	case joined == "rev-parse --abbrev-ref HEAD":
		return execshell.ExecutionResult{StandardOutput: executor.branch + "\n"}, nil
	case strings.HasPrefix(joined, "remote get-url "):
		return execshell.ExecutionResult{StandardOutput: executor.remoteURLs[details.WorkingDirectory] + "\n"}, nil
	case len(details.Arguments) > 0 && details.Arguments[0] == "clone":
		clonePath := details.Arguments[len(details.Arguments)-1]
		if mkdirError := os.MkdirAll(filepath.Join(clonePath, ".git"), 0o755); mkdirError != nil {
			return execshell.ExecutionResult{}, mkdirError
		}
		executor.remoteURLs[clonePath] = details.Arguments[len(details.Arguments)-2]
	}
	return execshell.ExecutionResult{}, nil
}

func (executor *recordingExecutor) ExecuteTool(_ context.Context, executable string, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.toolCommands = append(executor.toolCommands, append([]string{executable}, details.Arguments...))
	return execshell.ExecutionResult{}, nil
}

func (executor *recordingExecutor) hasGitCommand(arguments string) bool {
	for _, details := range executor.gitCommands {
		if strings.Join(details.Arguments, " ") == arguments {
			return true
		}
	}
	return false
}

type fixedPrompter struct {
	result  shared.ConfirmationResult
	prompts []string
}

func (prompter *fixedPrompter) Confirm(prompt string) (shared.ConfirmationResult, error) {
	prompter.prompts = append(prompter.prompts, prompt)
	return prompter.result, nil
}

func writeSourceFixture(testInstance *testing.T) string {
	testInstance.Helper()
	sourceRoot := filepath.Join(testInstance.TempDir(), "source")
	files := map[string]string{
		filepath.Join("card.io", "build", "outputs", "aar", "card.io-release.aar"): "aar",
		filepath.Join("sdk", "README.md"):                                          "io.card:android-sdk:REPLACE_VERSION\n",
		filepath.Join("SampleApp", "build.gradle"):                                 "io.card:android-sdk:REPLACE_VERSION\n",
	}
	for relativePath, content := range files {
		absolutePath := filepath.Join(sourceRoot, relativePath)
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
	}
	return sourceRoot
}

func testConfigurationProvider(sourceRoot string) func() release.Configuration {
	return func() release.Configuration {
		configuration := release.DefaultConfiguration()
		configuration.SourceRepositoryPath = sourceRoot
		configuration.PublicRepository.URL = testPublicURLConstant
		return configuration
	}
}

func (executor *recordingExecutor) cloneExisting(publicRoot string) error {
	if mkdirError := os.MkdirAll(filepath.Join(publicRoot, ".git"), 0o755); mkdirError != nil {
		return mkdirError
	}
	executor.remoteURLs[publicRoot] = testPublicURLConstant
	return nil
}
