package release

import (
	"errors"
	"fmt"

	"github.com/temirov/pubrelease/internal/workspace"
)

const (
	invalidReleaseBranchMessageConstant           = "cannot extract release version from branch"
	publicRepositoryURLRequiredMessageConstant    = "public repository URL required"
	publicRepositoryPathRequiredMessageConstant   = "public repository path required"
	publicRepositoryNotDirectoryMessageConstant   = "public repository path exists but is not a directory"
	publicRepositoryRemoteMismatchMessageConstant = "public repository remote does not match the configured URL"
	artifactPathRequiredMessageConstant           = "artifact path required"
	artifactNameRequiredMessageConstant           = "artifact name required"
	invalidArtifactModeMessageConstant            = "unsupported artifact mode"
	buildExecutableRequiredMessageConstant        = "build executable required"
	invalidCommitMessageTemplateMessageConstant   = "commit message template must contain exactly one %s"
	sourceRepositoryDirtyMessageConstant          = "source repository has uncommitted changes"
	versionNotResolvedMessageConstant             = "release version not resolved"
	commandExecutorMissingMessageConstant         = "release service requires a command executor"
	prompterMissingMessageConstant                = "release pipeline requires a confirmation prompter"
	buildFailedErrorTemplateConstant              = "build failed with exit code %d: %v"
	buildStartFailedErrorTemplateConstant         = "build failed: %v"
	stepFailedErrorTemplateConstant               = "release step %s failed: %w"
	releaseAbortedErrorTemplateConstant           = "release aborted at step %s: %s"
)

// ErrInvalidReleaseBranch indicates the current branch does not carry a version suffix.
var ErrInvalidReleaseBranch = errors.New(invalidReleaseBranchMessageConstant)

// ErrPublicRepositoryURLRequired indicates the public repository URL is missing.
var ErrPublicRepositoryURLRequired = errors.New(publicRepositoryURLRequiredMessageConstant)

// ErrPublicRepositoryPathRequired indicates the public repository path is missing.
var ErrPublicRepositoryPathRequired = errors.New(publicRepositoryPathRequiredMessageConstant)

// ErrPublicRepositoryNotDirectory indicates the public repository path names a non-directory.
var ErrPublicRepositoryNotDirectory = errors.New(publicRepositoryNotDirectoryMessageConstant)

// ErrPublicRepositoryRemoteMismatch indicates an existing clone points at another repository.
var ErrPublicRepositoryRemoteMismatch = errors.New(publicRepositoryRemoteMismatchMessageConstant)

// ErrArtifactPathRequired indicates the artifact path contract is missing.
var ErrArtifactPathRequired = errors.New(artifactPathRequiredMessageConstant)

// ErrArtifactNameRequired indicates copy mode was configured without an artifact name.
var ErrArtifactNameRequired = errors.New(artifactNameRequiredMessageConstant)

// ErrInvalidArtifactMode indicates an unknown artifact placement mode.
var ErrInvalidArtifactMode = errors.New(invalidArtifactModeMessageConstant)

// ErrBuildExecutableRequired indicates the build executable is missing.
var ErrBuildExecutableRequired = errors.New(buildExecutableRequiredMessageConstant)

// ErrInvalidCommitMessageTemplate indicates a commit message template without a single version verb.
var ErrInvalidCommitMessageTemplate = errors.New(invalidCommitMessageTemplateMessageConstant)

// ErrSourceRepositoryDirty indicates uncommitted source changes when a clean tree is required.
var ErrSourceRepositoryDirty = errors.New(sourceRepositoryDirtyMessageConstant)

// ErrVersionNotResolved indicates a step ran before the release version was known.
var ErrVersionNotResolved = errors.New(versionNotResolvedMessageConstant)

// ErrCommandExecutorNotConfigured indicates the service was constructed without an executor.
var ErrCommandExecutorNotConfigured = errors.New(commandExecutorMissingMessageConstant)

// ErrPrompterNotConfigured indicates the pipeline was constructed without a prompter.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrArtifactMissing indicates the declared artifact path does not name an existing file.
var ErrArtifactMissing = workspace.ErrArtifactMissing

// ErrArtifactAmbiguous indicates the declared artifact glob matched several files.
var ErrArtifactAmbiguous = workspace.ErrArtifactAmbiguous

// BuildFailedError reports a build tool invocation that did not succeed.
type BuildFailedError struct {
	ExitCode int
	Cause    error
}

// Error describes the build failure.
func (failure BuildFailedError) Error() string {
	if failure.ExitCode == 0 {
		return fmt.Sprintf(buildStartFailedErrorTemplateConstant, failure.Cause)
	}
	return fmt.Sprintf(buildFailedErrorTemplateConstant, failure.ExitCode, failure.Cause)
}

// Unwrap exposes the underlying command error.
func (failure BuildFailedError) Unwrap() error {
	return failure.Cause
}

// ConfirmationDeclinedError reports that the operator declined a prompt.
type ConfirmationDeclinedError struct {
	Step    StepName
	Message string
}

// Error returns the neutral decline message.
func (declined ConfirmationDeclinedError) Error() string {
	return declined.Message
}

// AbortedError reports a step that stopped the release without failing.
type AbortedError struct {
	Step   StepName
	Reason string
}

// Error describes where the release stopped.
func (aborted AbortedError) Error() string {
	return fmt.Sprintf(releaseAbortedErrorTemplateConstant, aborted.Step, aborted.Reason)
}
