package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForFetchIncludesRemote(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "public"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching from public in /workspace/repo", message)
}

func TestBuildStartedMessageForFetchWithoutRemoteUsesAllRemotesLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching from all remotes in /workspace/repo", message)
}

func TestGitMessagesDescribeReleaseOperations(t *testing.T) {
	testCases := []struct {
		name     string
		command  ShellCommand
		stage    messageStage
		result   ExecutionResult
		expected string
	}{
		{
			name: "clone_start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments: []string{"clone", "--origin", "public", "git@github.com:card-io/card.io-Android-SDK.git", "distribution-repo"},
			}},
			stage:    messageStageStart,
			expected: "Cloning git@github.com:card-io/card.io-Android-SDK.git into distribution-repo",
		},
		{
			name: "reset_success",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"reset", "--hard", "public/master"},
				WorkingDirectory: "distribution-repo",
			}},
			stage:    messageStageSuccess,
			expected: "distribution-repo now matches public/master",
		},
		{
			name: "commit_failure",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"commit", "-am", "Update library to 1.4.0"},
				WorkingDirectory: "distribution-repo",
			}},
			stage:    messageStageFailure,
			result:   ExecutionResult{ExitCode: 1, StandardError: "nothing to commit\n"},
			expected: `Failed to create commit in distribution-repo with message "Update library to 1.4.0" (exit code 1: nothing to commit)`,
		},
		{
			name: "forced_tag_start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"tag", "-f", "1.4.0"},
				WorkingDirectory: "distribution-repo",
			}},
			stage:    messageStageStart,
			expected: "Overwriting tag 1.4.0 in distribution-repo",
		},
		{
			name: "tag_list_start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments: []string{"tag", "-l"},
			}},
			stage:    messageStageStart,
			expected: "Listing tags in current directory",
		},
		{
			name: "current_branch_success",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"rev-parse", "--abbrev-ref", "HEAD"},
				WorkingDirectory: "/src",
			}},
			stage:    messageStageSuccess,
			result:   ExecutionResult{StandardOutput: "release\n"},
			expected: "Current branch in /src is release",
		},
	}

	formatter := CommandMessageFormatter{}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, formatter.buildMessage(testCase.command, testCase.result, nil, testCase.stage))
		})
	}
}

func TestGenericMessageForTool(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandName("./gradlew"),
		Details: CommandDetails{
			Arguments:        []string{"clean", ":card.io:assembleRelease"},
			WorkingDirectory: "/src",
		},
	}

	require.Equal(t, "Running ./gradlew clean :card.io:assembleRelease (in /src)", formatter.BuildStartedMessage(command))
	require.Equal(t, "./gradlew clean :card.io:assembleRelease (in /src) failed with exit code 2", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 2}))
}
