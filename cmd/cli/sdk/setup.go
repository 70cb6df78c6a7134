package sdk

import (
	"github.com/spf13/cobra"
)

const (
	setupCommandUseConstant              = "setup"
	setupCommandAliasConstant            = "sdk_setup"
	setupCommandShortDescriptionConstant = "Clone the public distribution repository when it is missing"
	setupCommandLongDescriptionConstant  = "setup resolves the source repository root and clones the public distribution repository into its configured path. An existing clone is left in place after its remote URL is checked."
	setupCommandExampleConstant          = "pubrelease setup"
	setupReadyTemplateConstant           = "Public repository ready at %s"
)

// BuildSetupCommand constructs the setup command.
func (builder *CommandBuilder) BuildSetupCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     setupCommandUseConstant,
		Aliases: []string{setupCommandAliasConstant},
		Short:   setupCommandShortDescriptionConstant,
		Long:    setupCommandLongDescriptionConstant,
		Example: setupCommandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.runSetup,
	}
	return command, nil
}

func (builder *CommandBuilder) runSetup(command *cobra.Command, _ []string) error {
	session, sessionError := builder.openSession(command, builder.resolveConfiguration())
	if sessionError != nil {
		return sessionError
	}
	defer session.close()

	result, setupError := session.service.Setup(commandContext(command))
	if setupError != nil {
		return setupError
	}

	session.status.Plain(setupReadyTemplateConstant, result.PublicRepositoryPath)
	return nil
}
