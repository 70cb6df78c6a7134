package release

import (
	"context"
	"time"

	"github.com/temirov/pubrelease/internal/repos/shared"
)

// StepName identifies a pipeline step.
type StepName string

// Pipeline steps in execution order.
const (
	StepChecklist StepName = "checklist"
	StepSetup     StepName = "setup"
	StepReset     StepName = "reset"
	StepTagCheck  StepName = "tag-check"
	StepBuild     StepName = "build"
	StepPublish   StepName = "publish"
	StepTagSource StepName = "tag-source"
	StepTagPublic StepName = "tag-public"
)

// State carries values resolved while a pipeline runs. It lives for a single invocation.
type State struct {
	SourceRepositoryPath string
	PublicRepositoryPath string
	Version              Version
	TagName              shared.TagName
	PublicCloneCreated   bool
	UploadArchives       bool
	PublishedArtifact    string
	ChecklistConfirmed   int
	SourceCleanVerified  bool
	// ApprovedTagOverwrites lists the repositories whose existing release tag the operator agreed to replace.
	ApprovedTagOverwrites []TagTarget
	pendingTagOverwrite   *TagTarget
}

func (state *State) tagOverwriteApproved(target TagTarget) bool {
	for _, approved := range state.ApprovedTagOverwrites {
		if approved == target {
			return true
		}
	}
	return false
}

// StepTiming records how long a step took.
type StepTiming struct {
	Step     StepName
	Duration time.Duration
}

// Result summarizes a finished task.
type Result struct {
	SourceRepositoryPath string
	PublicRepositoryPath string
	Version              Version
	TagName              shared.TagName
	PublicCloneCreated   bool
	UploadedArchives     bool
	PublishedArtifact    string
	Steps                []StepTiming
	Elapsed              time.Duration
}

// Step is one stage of a release. Run must not mutate anything when it returns OutcomeNeedsConfirmation.
type Step interface {
	Name() StepName
	Run(executionContext context.Context, state *State, approval Approval) (Outcome, error)
}
