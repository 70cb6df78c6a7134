package sdk

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/temirov/pubrelease/internal/release"
	"github.com/temirov/pubrelease/internal/ui"
	flagutils "github.com/temirov/pubrelease/internal/utils/flags"
)

const (
	releaseCommandUseConstant              = "release"
	releaseCommandAliasConstant            = "sdk_release"
	releaseCommandShortDescriptionConstant = "Build the SDK and publish it to the public distribution repository"
	releaseCommandLongDescriptionConstant  = "release derives the version from the current release/<version> branch, confirms the pre-release checklist, prepares and resets the public clone, builds the SDK, publishes the artifact with the SDK files and sample app, commits, and tags both repositories. Overwriting an existing tag requires confirmation."
	releaseCommandExampleConstant          = "pubrelease release --upload-archives=no"
	releaseWarnFlagUsageConstant           = "Ask before resetting an existing public clone."
	releaseUploadFlagUsageConstant         = "Upload archives as part of the build."
	releaseSuccessMessageConstant          = "Success!"
	releaseLocationTemplateConstant        = "The distribution files are now available in %s"
	releaseVersionTemplateConstant         = "Released %s as tag %s"
	releaseUploadNoticeConstant            = "The artifact has been uploaded to the staging repository. Promote it!"
	releaseElapsedTemplateConstant         = "Completed in %s"
	nextStepLineTemplateConstant           = "%s"
	elapsedRoundingConstant                = time.Millisecond
)

// BuildReleaseCommand constructs the release command.
func (builder *CommandBuilder) BuildReleaseCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     releaseCommandUseConstant,
		Aliases: []string{releaseCommandAliasConstant},
		Short:   releaseCommandShortDescriptionConstant,
		Long:    releaseCommandLongDescriptionConstant,
		Example: releaseCommandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.runRelease,
	}

	var uploadArchives bool
	var warn bool
	flagutils.AddToggleFlag(command.Flags(), &uploadArchives, uploadArchivesFlagNameConstant, "", true, releaseUploadFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &warn, warnFlagNameConstant, "", true, releaseWarnFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runRelease(command *cobra.Command, _ []string) error {
	uploadArchives, uploadError := command.Flags().GetBool(uploadArchivesFlagNameConstant)
	if uploadError != nil {
		return uploadError
	}
	warn, warnError := command.Flags().GetBool(warnFlagNameConstant)
	if warnError != nil {
		return warnError
	}

	configuration := builder.resolveConfiguration()
	session, sessionError := builder.openSession(command, configuration)
	if sessionError != nil {
		return sessionError
	}
	defer session.close()

	executionContext := commandContext(command)
	result, releaseError := session.service.Release(executionContext, release.ReleaseOptions{UploadArchives: uploadArchives, WarnBeforeReset: warn})
	if releaseError != nil {
		return releaseError
	}

	elapsed := result.Elapsed
	if invocation, available := builder.ContextAccessor.Invocation(executionContext); available && !invocation.StartedAt.IsZero() {
		elapsed = time.Since(invocation.StartedAt)
	}
	printReleaseSummary(session.status, configuration, result, elapsed)
	return nil
}

func printReleaseSummary(status *ui.StatusPrinter, configuration release.Configuration, result release.Result, elapsed time.Duration) {
	status.Plain("")
	status.Success(releaseSuccessMessageConstant)
	status.Plain(releaseVersionTemplateConstant, result.Version, result.TagName)
	status.Plain(releaseLocationTemplateConstant, result.PublicRepositoryPath)
	status.Plain("")
	if result.UploadedArchives {
		status.Plain(releaseUploadNoticeConstant)
		status.Plain("")
	}
	for _, nextStep := range configuration.NextSteps {
		status.Plain(nextStepLineTemplateConstant, nextStep)
	}
	status.Plain(releaseElapsedTemplateConstant, elapsed.Round(elapsedRoundingConstant))
}
