package sdk

import (
	"github.com/spf13/cobra"

	"github.com/temirov/pubrelease/internal/release"
	flagutils "github.com/temirov/pubrelease/internal/utils/flags"
)

const (
	buildCommandUseConstant              = "build"
	buildCommandShortDescriptionConstant = "Run the SDK build tool"
	buildCommandLongDescriptionConstant  = "build runs the configured build executable with its release arguments in the source repository. With --upload-archives it also runs the upload arguments."
	buildCommandExampleConstant          = "pubrelease build --upload-archives=yes"
	uploadArchivesFlagNameConstant       = "upload-archives"
	uploadArchivesFlagUsageConstant      = "Append the archive upload arguments to the build."
	buildCompletedMessageConstant        = "Build completed"
)

// BuildBuildCommand constructs the build command.
func (builder *CommandBuilder) BuildBuildCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     buildCommandUseConstant,
		Short:   buildCommandShortDescriptionConstant,
		Long:    buildCommandLongDescriptionConstant,
		Example: buildCommandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.runBuild,
	}

	var uploadArchives bool
	flagutils.AddToggleFlag(command.Flags(), &uploadArchives, uploadArchivesFlagNameConstant, "", false, uploadArchivesFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runBuild(command *cobra.Command, _ []string) error {
	uploadArchives, uploadError := command.Flags().GetBool(uploadArchivesFlagNameConstant)
	if uploadError != nil {
		return uploadError
	}

	session, sessionError := builder.openSession(command, builder.resolveConfiguration())
	if sessionError != nil {
		return sessionError
	}
	defer session.close()

	if _, buildError := session.service.Build(commandContext(command), release.BuildOptions{UploadArchives: uploadArchives}); buildError != nil {
		return buildError
	}

	session.status.Success(buildCompletedMessageConstant)
	return nil
}
