package sdk

import (
	"github.com/spf13/cobra"

	"github.com/temirov/pubrelease/internal/release"
	flagutils "github.com/temirov/pubrelease/internal/utils/flags"
)

const (
	resetCommandUseConstant              = "reset"
	resetCommandAliasConstant            = "sdk_reset"
	resetCommandShortDescriptionConstant = "Fetch and hard-reset the public distribution repository"
	resetCommandLongDescriptionConstant  = "reset ensures the public clone exists, then checks out the configured branch, fetches the remote, hard-resets to it and removes untracked files. It asks before discarding local state unless --warn=no or --yes is given."
	resetCommandExampleConstant          = "pubrelease reset --warn=no"
	warnFlagNameConstant                 = "warn"
	warnFlagUsageConstant                = "Ask before resetting an existing public clone."
	resetCompletedTemplateConstant       = "Public repository at %s reset to %s/%s"
)

// BuildResetCommand constructs the reset command.
func (builder *CommandBuilder) BuildResetCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     resetCommandUseConstant,
		Aliases: []string{resetCommandAliasConstant},
		Short:   resetCommandShortDescriptionConstant,
		Long:    resetCommandLongDescriptionConstant,
		Example: resetCommandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.runReset,
	}

	var warnValue bool
	flagutils.AddToggleFlag(command.Flags(), &warnValue, warnFlagNameConstant, "", true, warnFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runReset(command *cobra.Command, _ []string) error {
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

	result, resetError := session.service.Reset(commandContext(command), release.ResetOptions{Warn: warn})
	if resetError != nil {
		return resetError
	}

	session.status.Plain(resetCompletedTemplateConstant, result.PublicRepositoryPath, configuration.PublicRepository.RemoteName, configuration.PublicRepository.Branch)
	return nil
}
