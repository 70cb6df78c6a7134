package release

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const tagOverwriteApprovedMessageConstant = "tag overwrite approved ahead of publishing"

// TagCheckStep asks about every existing release tag before anything is built or committed.
// It only reads; the approvals it collects are honored later by TagStep.
type TagCheckStep struct {
	environment *stepEnvironment
}

// Name identifies the step.
func (TagCheckStep) Name() StepName {
	return StepTagCheck
}

// Run requests one confirmation per repository that already carries the release tag.
func (step TagCheckStep) Run(executionContext context.Context, state *State, approval Approval) (Outcome, error) {
	if _, versionError := step.environment.version(executionContext, state); versionError != nil {
		return Outcome{}, versionError
	}
	if len(state.TagName) == 0 {
		return Outcome{}, ErrVersionNotResolved
	}

	if approval.Granted && state.pendingTagOverwrite != nil {
		state.ApprovedTagOverwrites = append(state.ApprovedTagOverwrites, *state.pendingTagOverwrite)
		step.environment.logger.Debug(tagOverwriteApprovedMessageConstant, zap.String(logFieldTagConstant, state.TagName.String()))
		state.pendingTagOverwrite = nil
	}

	tagName := state.TagName.String()
	for _, target := range []TagTarget{TagTargetSource, TagTargetPublic} {
		if state.tagOverwriteApproved(target) {
			continue
		}

		repositoryPath, pathError := step.environment.tagRepositoryPath(executionContext, state, target)
		if pathError != nil {
			return Outcome{}, pathError
		}
		exists, existsError := step.environment.repositories.TagExists(executionContext, repositoryPath, tagName)
		if existsError != nil {
			return Outcome{}, fmt.Errorf(tagListErrorTemplateConstant, repositoryPath, existsError)
		}
		if exists {
			pendingTarget := target
			state.pendingTagOverwrite = &pendingTarget
			return NeedsConfirmation(tagPromptConstant, fmt.Sprintf(tagPresentWarningTemplateConstant, tagName, repositoryPath), tagDeclineMessageConstant), nil
		}
	}

	return Completed(), nil
}
