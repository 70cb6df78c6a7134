package release

import (
	"context"
	"fmt"
)

const (
	resetWarningMessageConstant   = "This step will fetch and reset the public repo to the latest version."
	resetPromptConstant           = "Proceed?"
	resetDeclineMessageConstant   = "Public repository left unchanged, aborted."
	resetProgressTemplateConstant = "Resetting %s to %s/%s"
	resetCommandErrorTemplate     = "unable to reset public repository %s: %w"
)

// ResetStep discards local state in the public clone and aligns it with the remote branch.
type ResetStep struct {
	environment *stepEnvironment
	warn        bool
}

// Name identifies the step.
func (step ResetStep) Name() StepName {
	return StepReset
}

// Run asks for consent unless warnings are off or the clone was created in this run, then resets.
func (step ResetStep) Run(executionContext context.Context, state *State, approval Approval) (Outcome, error) {
	publicRoot, publicError := step.environment.publicRoot(executionContext, state)
	if publicError != nil {
		return Outcome{}, publicError
	}

	if step.warn && !state.PublicCloneCreated && !approval.Granted {
		return NeedsConfirmation(resetPromptConstant, resetWarningMessageConstant, resetDeclineMessageConstant), nil
	}

	publicConfiguration := step.environment.configuration.PublicRepository
	step.environment.reporter.Progress(resetProgressTemplateConstant, publicRoot, publicConfiguration.RemoteName, publicConfiguration.Branch)

	commandSequence := [][]string{
		{"checkout", publicConfiguration.Branch},
		{"fetch", publicConfiguration.RemoteName, "--prune"},
		{"reset", "--hard", publicConfiguration.RemoteName + "/" + publicConfiguration.Branch},
		{"clean", "-x", "-d", "-f"},
	}
	for _, arguments := range commandSequence {
		if _, commandError := step.environment.git(executionContext, publicRoot, arguments...); commandError != nil {
			return Outcome{}, fmt.Errorf(resetCommandErrorTemplate, publicRoot, commandError)
		}
	}
	return Completed(), nil
}
