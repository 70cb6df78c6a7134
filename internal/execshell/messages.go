package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant     = "rev-parse"
	gitShowTopLevelFlagConstant           = "--show-toplevel"
	gitAbbrevRefFlagConstant              = "--abbrev-ref"
	gitHeadReferenceConstant              = "HEAD"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
	gitStatusSubcommandNameConstant       = "status"
	gitCloneSubcommandNameConstant        = "clone"
	gitOriginFlagConstant                 = "--origin"
	gitCheckoutSubcommandNameConstant     = "checkout"
	gitFetchSubcommandNameConstant        = "fetch"
	gitResetSubcommandNameConstant        = "reset"
	gitCleanSubcommandNameConstant        = "clean"
	gitAddSubcommandNameConstant          = "add"
	gitCommitSubcommandNameConstant       = "commit"
	gitMessageFlagConstant                = "-m"
	gitAllAndMessageFlagConstant          = "-am"
	gitTagSubcommandNameConstant          = "tag"
	gitTagListFlagConstant                = "-l"
	gitForceFlagConstant                  = "-f"
)

const (
	gitTopLevelStartTemplateConstant                 = "Locating repository root from %s"
	gitTopLevelSuccessTemplateConstant               = "Repository root for %s is %s"
	gitTopLevelFailureTemplateConstant               = "Could not locate repository root from %s (exit code %d%s)"
	gitTopLevelExecutionFailureTemplateConstant      = "Unable to locate repository root from %s: %s"
	gitCurrentBranchStartTemplateConstant            = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant          = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant  = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant          = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant = "Unable to identify current branch in %s: %s"
	gitRemoteLookupStartTemplateConstant             = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant           = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant           = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant  = "Unable to read %s remote for %s: %s"
	gitStatusStartTemplateConstant                   = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant                 = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant                 = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant        = "Unable to review working tree status in %s: %s"
	gitCloneStartTemplateConstant                    = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                  = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                  = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant         = "Unable to clone %s into %s: %s"
	gitCheckoutStartTemplateConstant                 = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant               = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant               = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant      = "Unable to switch %s to branch %s: %s"
	gitFetchStartTemplateConstant                    = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                  = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                  = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant         = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant                  = "all remotes"
	gitResetStartTemplateConstant                    = "Resetting %s to %s"
	gitResetSuccessTemplateConstant                  = "%s now matches %s"
	gitResetFailureTemplateConstant                  = "Failed to reset %s to %s (exit code %d%s)"
	gitResetExecutionFailureTemplateConstant         = "Unable to reset %s to %s: %s"
	gitCleanStartTemplateConstant                    = "Removing untracked files in %s"
	gitCleanSuccessTemplateConstant                  = "Removed untracked files in %s"
	gitCleanFailureTemplateConstant                  = "Failed to remove untracked files in %s (exit code %d%s)"
	gitCleanExecutionFailureTemplateConstant         = "Unable to remove untracked files in %s: %s"
	gitAddStartTemplateConstant                      = "Staging %s in %s"
	gitAddSuccessTemplateConstant                    = "Staged %s in %s"
	gitAddFailureTemplateConstant                    = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant           = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                   = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                 = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                 = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant        = "Unable to create commit in %s with message %q: %s"
	gitTagListStartTemplateConstant                  = "Listing tags in %s"
	gitTagListSuccessTemplateConstant                = "Listed tags in %s"
	gitTagListFailureTemplateConstant                = "Failed to list tags in %s (exit code %d%s)"
	gitTagListExecutionFailureTemplateConstant       = "Unable to list tags in %s: %s"
	gitTagCreateStartTemplateConstant                = "Tagging %s as %s"
	gitTagForceCreateStartTemplateConstant           = "Overwriting tag %[2]s in %[1]s"
	gitTagCreateSuccessTemplateConstant              = "Tagged %s as %s"
	gitTagCreateFailureTemplateConstant              = "Failed to tag %s as %s (exit code %d%s)"
	gitTagCreateExecutionFailureTemplateConstant     = "Unable to tag %s as %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildCompletionMessage formats the success message using the captured command output.
func (formatter CommandMessageFormatter) BuildCompletionMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitStatusStartTemplateConstant,
			gitStatusSuccessTemplateConstant,
			gitStatusFailureTemplateConstant,
			gitStatusExecutionFailureTemplateConstant,
		), formatter.describeWorkingDirectory(command))
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 1))
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitCheckoutStartTemplateConstant,
			gitCheckoutSuccessTemplateConstant,
			gitCheckoutFailureTemplateConstant,
			gitCheckoutExecutionFailureTemplateConstant,
		), formatter.describeWorkingDirectory(command), branchName)
	case gitFetchSubcommandNameConstant:
		remoteName := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
		if len(remoteName) == 0 {
			remoteName = gitFetchAllRemotesLabelConstant
		}
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitFetchStartTemplateConstant,
			gitFetchSuccessTemplateConstant,
			gitFetchFailureTemplateConstant,
			gitFetchExecutionFailureTemplateConstant,
		), remoteName, formatter.describeWorkingDirectory(command))
	case gitResetSubcommandNameConstant:
		reference := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitResetStartTemplateConstant,
			gitResetSuccessTemplateConstant,
			gitResetFailureTemplateConstant,
			gitResetExecutionFailureTemplateConstant,
		), formatter.describeWorkingDirectory(command), reference)
	case gitCleanSubcommandNameConstant:
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitCleanStartTemplateConstant,
			gitCleanSuccessTemplateConstant,
			gitCleanFailureTemplateConstant,
			gitCleanExecutionFailureTemplateConstant,
		), formatter.describeWorkingDirectory(command))
	case gitAddSubcommandNameConstant:
		targetPath := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitAddStartTemplateConstant,
			gitAddSuccessTemplateConstant,
			gitAddFailureTemplateConstant,
			gitAddExecutionFailureTemplateConstant,
		), targetPath, formatter.describeWorkingDirectory(command))
	case gitCommitSubcommandNameConstant:
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitCommitStartTemplateConstant,
			gitCommitSuccessTemplateConstant,
			gitCommitFailureTemplateConstant,
			gitCommitExecutionFailureTemplateConstant,
		), formatter.describeWorkingDirectory(command), formatter.extractCommitMessage(command.Details.Arguments))
	case gitTagSubcommandNameConstant:
		return formatter.describeGitTagMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	trimmedOutput := strings.TrimSpace(result.StandardOutput)

	if containsArgument(arguments, gitShowTopLevelFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitTopLevelStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitTopLevelSuccessTemplateConstant, workingDirectory, formatter.ensureValue(trimmedOutput))
		case messageStageFailure:
			return fmt.Sprintf(gitTopLevelFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitTopLevelExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			if strings.EqualFold(trimmedOutput, gitHeadReferenceConstant) || len(trimmedOutput) == 0 {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmedOutput)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if strings.TrimSpace(formatter.argumentAtIndex(arguments, 1)) != gitRemoteGetURLSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	positionalArguments := formatter.extractPositionalArguments(command.Details.Arguments[1:], gitOriginFlagConstant)
	repositoryURL := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	destination := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 1))
	return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
		gitCloneStartTemplateConstant,
		gitCloneSuccessTemplateConstant,
		gitCloneFailureTemplateConstant,
		gitCloneExecutionFailureTemplateConstant,
	), repositoryURL, destination)
}

func (formatter CommandMessageFormatter) describeGitTagMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitTagListFlagConstant) || len(arguments) == 1 {
		return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
			gitTagListStartTemplateConstant,
			gitTagListSuccessTemplateConstant,
			gitTagListFailureTemplateConstant,
			gitTagListExecutionFailureTemplateConstant,
		), workingDirectory)
	}

	tagName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
	startTemplate := gitTagCreateStartTemplateConstant
	if containsArgument(arguments, gitForceFlagConstant) {
		startTemplate = gitTagForceCreateStartTemplateConstant
	}
	return formatter.selectStageMessage(stage, result, failure, formatter.stageTemplates(
		startTemplate,
		gitTagCreateSuccessTemplateConstant,
		gitTagCreateFailureTemplateConstant,
		gitTagCreateExecutionFailureTemplateConstant,
	), workingDirectory, tagName)
}

type stageTemplateSet struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

func (formatter CommandMessageFormatter) stageTemplates(start string, success string, failure string, executionFailure string) stageTemplateSet {
	return stageTemplateSet{start: start, success: success, failure: failure, executionFailure: executionFailure}
}

// selectStageMessage renders the template for the stage. Failure templates receive the exit code and
// stderr suffix after the subject values; execution failure templates receive the failure description.
func (formatter CommandMessageFormatter) selectStageMessage(stage messageStage, result ExecutionResult, failure error, templates stageTemplateSet, subjects ...any) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		failureArguments := append(append([]any{}, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, failureArguments...)
	case messageStageExecutionFailure:
		executionFailureArguments := append(append([]any{}, subjects...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, executionFailureArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

// extractPositionalArguments drops flags and the values of the listed value-taking flags.
func (formatter CommandMessageFormatter) extractPositionalArguments(arguments []string, valueFlags ...string) []string {
	positional := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 {
			continue
		}
		if containsArgument(valueFlags, trimmed) {
			index++
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		trimmedArgument := strings.TrimSpace(arguments[index])
		if (trimmedArgument == gitMessageFlagConstant || trimmedArgument == gitAllAndMessageFlagConstant) && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
