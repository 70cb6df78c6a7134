package release

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	stepStartedMessageConstant          = "release step started"
	stepCompletedMessageConstant        = "release step completed"
	confirmationAssumedMessageConstant  = "confirmation assumed"
	confirmationGrantedMessageConstant  = "confirmation granted"
	confirmationDeclinedMessageConstant = "confirmation declined"
	defaultDeclineMessageConstant       = "Aborted."
	warningLineTemplateConstant         = "%s"
	logFieldStepConstant                = "step"
	logFieldPromptConstant              = "prompt"
	logFieldDurationConstant            = "duration"
	logFieldApplyToAllConstant          = "apply_to_all"
	confirmationErrorTemplateConstant   = "unable to confirm %q: %w"
)

// PipelineDependencies supplies the collaborators of a Pipeline.
type PipelineDependencies struct {
	Prompter shared.ConfirmationPrompter
	Policy   shared.ConfirmationPolicy
	Reporter Reporter
	Logger   *zap.Logger
	Clock    shared.Clock
}

// Pipeline runs steps in order, stopping at the first failure. It is the only component that asks the operator.
type Pipeline struct {
	steps    []Step
	prompter shared.ConfirmationPrompter
	policy   shared.ConfirmationPolicy
	reporter Reporter
	logger   *zap.Logger
	clock    shared.Clock
}

// NewPipeline constructs a Pipeline over the provided steps.
func NewPipeline(pipelineDependencies PipelineDependencies, steps ...Step) (*Pipeline, error) {
	if pipelineDependencies.Prompter == nil && pipelineDependencies.Policy.ShouldPrompt() {
		return nil, ErrPrompterNotConfigured
	}

	logger := pipelineDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := pipelineDependencies.Clock
	if clock == nil {
		clock = shared.SystemClock{}
	}

	return &Pipeline{
		steps:    append([]Step{}, steps...),
		prompter: pipelineDependencies.Prompter,
		policy:   pipelineDependencies.Policy,
		reporter: resolveReporter(pipelineDependencies.Reporter),
		logger:   logger,
		clock:    clock,
	}, nil
}

// Run executes every step against state and returns the time spent in each finished step.
// Side effects of finished steps are not rolled back when a later step fails.
func (pipeline *Pipeline) Run(executionContext context.Context, state *State) ([]StepTiming, error) {
	timings := make([]StepTiming, 0, len(pipeline.steps))
	for _, step := range pipeline.steps {
		startedAt := pipeline.clock.Now()
		pipeline.logger.Debug(stepStartedMessageConstant, zap.String(logFieldStepConstant, string(step.Name())))

		if stepError := pipeline.runStep(executionContext, step, state); stepError != nil {
			return timings, stepError
		}

		duration := pipeline.clock.Now().Sub(startedAt)
		timings = append(timings, StepTiming{Step: step.Name(), Duration: duration})
		pipeline.logger.Info(stepCompletedMessageConstant, zap.String(logFieldStepConstant, string(step.Name())), zap.Duration(logFieldDurationConstant, duration))
	}
	return timings, nil
}

func (pipeline *Pipeline) runStep(executionContext context.Context, step Step, state *State) error {
	approval := Approval{}
	confirmRemaining := false

	for {
		if contextError := executionContext.Err(); contextError != nil {
			return fmt.Errorf(stepFailedErrorTemplateConstant, step.Name(), contextError)
		}

		outcome, runError := step.Run(executionContext, state, approval)
		if runError != nil {
			return fmt.Errorf(stepFailedErrorTemplateConstant, step.Name(), runError)
		}

		switch outcome.Kind {
		case OutcomeOK:
			return nil
		case OutcomeAborted:
			return AbortedError{Step: step.Name(), Reason: outcome.Reason}
		case OutcomeNeedsConfirmation:
			if len(outcome.Warning) > 0 {
				pipeline.reporter.Warning(warningLineTemplateConstant, outcome.Warning)
			}

			granted, applyToAll, confirmationError := pipeline.confirm(step.Name(), outcome, confirmRemaining)
			if confirmationError != nil {
				return fmt.Errorf(stepFailedErrorTemplateConstant, step.Name(), confirmationError)
			}
			if !granted {
				declineMessage := outcome.DeclineMessage
				if len(declineMessage) == 0 {
					declineMessage = defaultDeclineMessageConstant
				}
				return ConfirmationDeclinedError{Step: step.Name(), Message: declineMessage}
			}
			confirmRemaining = confirmRemaining || applyToAll
			approval = Approval{Granted: true}
		}
	}
}

func (pipeline *Pipeline) confirm(stepName StepName, outcome Outcome, confirmRemaining bool) (bool, bool, error) {
	promptFields := []zap.Field{zap.String(logFieldStepConstant, string(stepName)), zap.String(logFieldPromptConstant, outcome.Prompt)}

	if pipeline.policy.ShouldAssumeYes() || confirmRemaining {
		pipeline.logger.Info(confirmationAssumedMessageConstant, promptFields...)
		return true, false, nil
	}

	confirmation, promptError := pipeline.prompter.Confirm(outcome.Prompt)
	if promptError != nil {
		return false, false, fmt.Errorf(confirmationErrorTemplateConstant, outcome.Prompt, promptError)
	}
	if !confirmation.Confirmed {
		pipeline.logger.Info(confirmationDeclinedMessageConstant, promptFields...)
		return false, false, nil
	}

	pipeline.logger.Info(confirmationGrantedMessageConstant, append(promptFields, zap.Bool(logFieldApplyToAllConstant, confirmation.ApplyToAll))...)
	return true, confirmation.ApplyToAll, nil
}
