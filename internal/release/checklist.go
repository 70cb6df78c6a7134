package release

import (
	"context"
	"fmt"

	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	checklistWarningTemplateConstant = "Pre-release checklist item %d of %d"
	checklistDeclineMessageConstant  = "Pre-release checklist not confirmed, aborted."
	sourceDirtyErrorTemplateConstant = "%w: %s"
)

// ChecklistStep asks the operator to confirm each pre-release checklist item and, when configured,
// requires a clean source working tree.
type ChecklistStep struct {
	environment *stepEnvironment
}

// Name identifies the step.
func (step ChecklistStep) Name() StepName {
	return StepChecklist
}

// Run returns one confirmation request per unconfirmed checklist item.
func (step ChecklistStep) Run(executionContext context.Context, state *State, approval Approval) (Outcome, error) {
	configuration := step.environment.configuration

	if shared.CleanWorktreePolicyFromBool(configuration.RequireCleanSource).RequireClean() && !state.SourceCleanVerified {
		sourceRoot, sourceError := step.environment.sourceRoot(executionContext, state)
		if sourceError != nil {
			return Outcome{}, sourceError
		}
		clean, cleanError := step.environment.repositories.CheckCleanWorktree(executionContext, sourceRoot)
		if cleanError != nil {
			return Outcome{}, cleanError
		}
		if !clean {
			return Outcome{}, fmt.Errorf(sourceDirtyErrorTemplateConstant, ErrSourceRepositoryDirty, sourceRoot)
		}
		state.SourceCleanVerified = true
	}

	itemCount := len(configuration.Checklist)
	if approval.Granted && state.ChecklistConfirmed < itemCount {
		state.ChecklistConfirmed++
	}
	if state.ChecklistConfirmed >= itemCount {
		return Completed(), nil
	}

	return NeedsConfirmation(
		configuration.Checklist[state.ChecklistConfirmed],
		fmt.Sprintf(checklistWarningTemplateConstant, state.ChecklistConfirmed+1, itemCount),
		checklistDeclineMessageConstant,
	), nil
}
