package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	testPublicURLConstant     = "git@github.com:card-io/card.io-Android-SDK.git"
	testReleaseBranchConstant = "release/1.4.0"
	testVersionConstant       = "1.4.0"
)

type recordedToolCommand struct {
	executable string
	details    execshell.CommandDetails
}

// simulatedGitExecutor answers repository queries from in-memory state and records every invocation.
type simulatedGitExecutor struct {
	sourceRoot   string
	branch       string
	remoteURLs   map[string]string
	tags         map[string][]string
	dirtySource  bool
	toolFailure  error
	failures     map[string]error
	gitCommands  []execshell.CommandDetails
	toolCommands []recordedToolCommand
}

func newSimulatedGitExecutor(sourceRoot string) *simulatedGitExecutor {
	return &simulatedGitExecutor{
		sourceRoot: sourceRoot,
		branch:     testReleaseBranchConstant,
		remoteURLs: map[string]string{},
		tags:       map[string][]string{},
		failures:   map[string]error{},
	}
}

func (executor *simulatedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.gitCommands = append(executor.gitCommands, details)
	key := strings.Join(details.Arguments, " ")
	if failure, exists := executor.failures[key]; exists {
		return execshell.ExecutionResult{}, failure
	}

	switch {
	case key == "rev-parse --show-toplevel":
		return execshell.ExecutionResult{StandardOutput: executor.sourceRoot + "\n"}, nil
	case key == "rev-parse --abbrev-ref HEAD":
		return execshell.ExecutionResult{StandardOutput: executor.branch + "\n"}, nil
	case key == "tag -l":
		return execshell.ExecutionResult{StandardOutput: strings.Join(executor.tags[details.WorkingDirectory], "\n")}, nil
	case key == "status --porcelain" && executor.dirtySource:
		return execshell.ExecutionResult{StandardOutput: " M README.md\n"}, nil
	case strings.HasPrefix(key, "remote get-url "):
		remoteURL, exists := executor.remoteURLs[details.WorkingDirectory]
		if !exists {
			return execshell.ExecutionResult{}, execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
				Result:  execshell.ExecutionResult{ExitCode: 2, StandardError: "error: No such remote"},
			}
		}
		return execshell.ExecutionResult{StandardOutput: remoteURL + "\n"}, nil
	case len(details.Arguments) > 0 && details.Arguments[0] == "clone":
		clonePath := details.Arguments[len(details.Arguments)-1]
		if mkdirError := os.MkdirAll(filepath.Join(clonePath, ".git"), 0o755); mkdirError != nil {
			return execshell.ExecutionResult{}, mkdirError
		}
		executor.remoteURLs[clonePath] = details.Arguments[len(details.Arguments)-2]
	case len(details.Arguments) > 1 && details.Arguments[0] == "tag" && details.Arguments[1] != "-l":
		tagName := details.Arguments[len(details.Arguments)-1]
		executor.tags[details.WorkingDirectory] = append(executor.tags[details.WorkingDirectory], tagName)
	}
	return execshell.ExecutionResult{}, nil
}

func (executor *simulatedGitExecutor) ExecuteTool(_ context.Context, executable string, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.toolCommands = append(executor.toolCommands, recordedToolCommand{executable: executable, details: details})
	if executor.toolFailure != nil {
		return execshell.ExecutionResult{}, executor.toolFailure
	}
	return execshell.ExecutionResult{}, nil
}

func (executor *simulatedGitExecutor) commandsIn(workingDirectory string) []string {
	commands := make([]string, 0, len(executor.gitCommands))
	for _, details := range executor.gitCommands {
		if details.WorkingDirectory == workingDirectory {
			commands = append(commands, strings.Join(details.Arguments, " "))
		}
	}
	return commands
}

type scriptedPrompter struct {
	responses []shared.ConfirmationResult
	prompts   []string
}

func (prompter *scriptedPrompter) Confirm(prompt string) (shared.ConfirmationResult, error) {
	prompter.prompts = append(prompter.prompts, prompt)
	if len(prompter.responses) == 0 {
		return shared.ConfirmationResult{}, nil
	}
	response := prompter.responses[0]
	prompter.responses = prompter.responses[1:]
	return response, nil
}

type steppingClock struct {
	current time.Time
}

func (clock *steppingClock) Now() time.Time {
	clock.current = clock.current.Add(time.Second)
	return clock.current
}

type recordingReporter struct {
	progress []string
	warnings []string
}

func (reporter *recordingReporter) Progress(format string, arguments ...any) {
	reporter.progress = append(reporter.progress, formatLine(format, arguments...))
}

func (reporter *recordingReporter) Warning(format string, arguments ...any) {
	reporter.warnings = append(reporter.warnings, formatLine(format, arguments...))
}

// sourceFixture lays out a source repository with a built artifact, SDK files and a sample app.
func sourceFixture(testInstance *testing.T) string {
	testInstance.Helper()
	sourceRoot := filepath.Join(testInstance.TempDir(), "card.io-Android-source")
	writeFixtureFile(testInstance, filepath.Join(sourceRoot, "card.io", "build", "outputs", "aar", "card.io-release.aar"), "aar-bytes")
	writeFixtureFile(testInstance, filepath.Join(sourceRoot, "sdk", "README.md"), "compile 'io.card:android-sdk:REPLACE_VERSION'\n")
	writeFixtureFile(testInstance, filepath.Join(sourceRoot, "sdk", ".gitignore"), "build/\n")
	writeFixtureFile(testInstance, filepath.Join(sourceRoot, "SampleApp", "build.gradle"), "compile 'io.card:android-sdk:REPLACE_VERSION'\n")
	return sourceRoot
}

func writeFixtureFile(testInstance *testing.T, filePath string, content string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(testInstance, os.WriteFile(filePath, []byte(content), 0o644))
}

func testConfiguration() Configuration {
	configuration := DefaultConfiguration()
	configuration.PublicRepository.URL = testPublicURLConstant
	configuration.Checklist = nil
	return configuration
}

func newTestService(testInstance *testing.T, configuration Configuration, executor *simulatedGitExecutor, prompter shared.ConfirmationPrompter) (*Service, *recordingReporter) {
	testInstance.Helper()
	reporter := &recordingReporter{}
	service, serviceError := NewService(configuration, ServiceDependencies{
		Executor: executor,
		Prompter: prompter,
		Clock:    &steppingClock{},
		Reporter: reporter,
	})
	require.NoError(testInstance, serviceError)
	return service, reporter
}

func formatLine(format string, arguments ...any) string {
	return fmt.Sprintf(format, arguments...)
}
