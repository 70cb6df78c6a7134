package dependencies_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/repos/dependencies"
	"github.com/temirov/pubrelease/internal/repos/filesystem"
	"github.com/temirov/pubrelease/internal/repos/shared"
)

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

type stubCommandExecutor struct{}

func (stubCommandExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func (stubCommandExecutor) ExecuteTool(context.Context, string, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func TestResolversPreferProvidedCollaborators(testInstance *testing.T) {
	clock := fixedClock{instant: time.Unix(0, 0)}
	require.Equal(testInstance, clock, dependencies.ResolveClock(clock))
	require.IsType(testInstance, shared.SystemClock{}, dependencies.ResolveClock(nil))

	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))

	executor := stubCommandExecutor{}
	resolvedExecutor, resolveError := dependencies.ResolveCommandExecutor(executor, nil, nil, nil, nil)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, executor, resolvedExecutor)
}

func TestResolveCommandExecutorBuildsShellExecutor(testInstance *testing.T) {
	resolvedExecutor, resolveError := dependencies.ResolveCommandExecutor(nil, zap.NewNop(), nil, nil, nil)
	require.NoError(testInstance, resolveError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, resolvedExecutor)

	_, resolveError = dependencies.ResolveCommandExecutor(nil, nil, nil, nil, nil)
	require.ErrorIs(testInstance, resolveError, execshell.ErrLoggerNotConfigured)

	manager, managerError := dependencies.ResolveGitRepositoryManager(nil, resolvedExecutor)
	require.NoError(testInstance, managerError)
	require.NotNil(testInstance, manager)
}

func TestResolveConfirmationPrompterReadsInput(testInstance *testing.T) {
	prompter := dependencies.ResolveConfirmationPrompter(nil, strings.NewReader("y\n"), nil)
	result, confirmError := prompter.Confirm("Proceed?")
	require.NoError(testInstance, confirmError)
	require.True(testInstance, result.Confirmed)
}
