package release

// OutcomeKind classifies the result of running a step.
type OutcomeKind int

// Step outcome kinds.
const (
	OutcomeOK OutcomeKind = iota
	OutcomeNeedsConfirmation
	OutcomeAborted
)

// Outcome is the value returned by a step. A step that needs the operator's consent returns
// OutcomeNeedsConfirmation without mutating anything and is re-run once consent is granted.
type Outcome struct {
	Kind           OutcomeKind
	Prompt         string
	Warning        string
	DeclineMessage string
	Reason         string
}

// Approval carries the operator's consent into a re-run step.
type Approval struct {
	Granted bool
}

// Completed reports a step that finished.
func Completed() Outcome {
	return Outcome{Kind: OutcomeOK}
}

// NeedsConfirmation reports a step that waits for consent.
func NeedsConfirmation(prompt string, warning string, declineMessage string) Outcome {
	return Outcome{Kind: OutcomeNeedsConfirmation, Prompt: prompt, Warning: warning, DeclineMessage: declineMessage}
}

// Aborted reports a step that stopped the release without an error.
func Aborted(reason string) Outcome {
	return Outcome{Kind: OutcomeAborted, Reason: reason}
}
