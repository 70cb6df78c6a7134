package release

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	tagPromptConstant                 = "Proceed with overwriting tag?"
	tagPresentWarningTemplateConstant = "Tag %s already present in %s."
	tagDeclineMessageConstant         = "Tag not overwritten, aborted."
	tagAppliedMessageConstant         = "tag applied"
	tagListErrorTemplateConstant      = "unable to list tags in %s: %w"
	tagCreateErrorTemplateConstant    = "unable to tag %s with %s: %w"
	gitTagSubcommandConstant          = "tag"
	gitForceFlagConstant              = "-f"
	logFieldOverwrittenConstant       = "overwritten"
	logFieldRepositoryConstant        = "repository"
)

// TagTarget selects which repository a TagStep tags.
type TagTarget int

// Tag targets.
const (
	TagTargetSource TagTarget = iota
	TagTargetPublic
)

// TagStep tags one repository with the release version. Replacing an existing tag requires consent.
type TagStep struct {
	environment *stepEnvironment
	target      TagTarget
}

// Name identifies the step.
func (step TagStep) Name() StepName {
	if step.target == TagTargetPublic {
		return StepTagPublic
	}
	return StepTagSource
}

// Run creates the tag, or asks before force-replacing one that already exists.
func (step TagStep) Run(executionContext context.Context, state *State, approval Approval) (Outcome, error) {
	if _, versionError := step.environment.version(executionContext, state); versionError != nil {
		return Outcome{}, versionError
	}
	if len(state.TagName) == 0 {
		return Outcome{}, ErrVersionNotResolved
	}

	repositoryPath, pathError := step.environment.tagRepositoryPath(executionContext, state, step.target)
	if pathError != nil {
		return Outcome{}, pathError
	}

	tagName := state.TagName.String()
	exists, existsError := step.environment.repositories.TagExists(executionContext, repositoryPath, tagName)
	if existsError != nil {
		return Outcome{}, fmt.Errorf(tagListErrorTemplateConstant, repositoryPath, existsError)
	}

	if exists && !approval.Granted && !state.tagOverwriteApproved(step.target) {
		return NeedsConfirmation(tagPromptConstant, fmt.Sprintf(tagPresentWarningTemplateConstant, tagName, repositoryPath), tagDeclineMessageConstant), nil
	}

	arguments := []string{gitTagSubcommandConstant, tagName}
	if exists {
		arguments = []string{gitTagSubcommandConstant, gitForceFlagConstant, tagName}
	}
	if _, tagError := step.environment.git(executionContext, repositoryPath, arguments...); tagError != nil {
		return Outcome{}, fmt.Errorf(tagCreateErrorTemplateConstant, repositoryPath, tagName, tagError)
	}

	step.environment.logger.Info(
		tagAppliedMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.String(logFieldTagConstant, tagName),
		zap.Bool(logFieldOverwrittenConstant, exists),
	)
	return Completed(), nil
}

func (environment *stepEnvironment) tagRepositoryPath(executionContext context.Context, state *State, target TagTarget) (string, error) {
	if target == TagTargetPublic {
		return environment.publicRoot(executionContext, state)
	}
	return environment.sourceRoot(executionContext, state)
}
