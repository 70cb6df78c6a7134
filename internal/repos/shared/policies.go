package shared

// ConfirmationPolicy specifies how the release driver handles user confirmations.
type ConfirmationPolicy int

const (
	// ConfirmationPrompt indicates the driver should prompt the user.
	ConfirmationPrompt ConfirmationPolicy = iota
	// ConfirmationAssumeYes indicates the driver should continue without prompting.
	ConfirmationAssumeYes
)

// ConfirmationPolicyFromBool converts the assume-yes flag into a policy.
func ConfirmationPolicyFromBool(assumeYes bool) ConfirmationPolicy {
	if assumeYes {
		return ConfirmationAssumeYes
	}
	return ConfirmationPrompt
}

// ShouldPrompt reports whether the driver must prompt the user.
func (policy ConfirmationPolicy) ShouldPrompt() bool {
	return policy != ConfirmationAssumeYes
}

// ShouldAssumeYes reports whether prompting can be skipped.
func (policy ConfirmationPolicy) ShouldAssumeYes() bool {
	return policy == ConfirmationAssumeYes
}

// CleanWorktreePolicy describes expectations for source repository cleanliness before a release.
type CleanWorktreePolicy int

const (
	// CleanWorktreeOptional allows dirty worktrees.
	CleanWorktreeOptional CleanWorktreePolicy = iota
	// CleanWorktreeRequired enforces a clean worktree before the release starts.
	CleanWorktreeRequired
)

// CleanWorktreePolicyFromBool converts the require-clean flag into a policy value.
func CleanWorktreePolicyFromBool(requireClean bool) CleanWorktreePolicy {
	if requireClean {
		return CleanWorktreeRequired
	}
	return CleanWorktreeOptional
}

// RequireClean reports whether a clean worktree is mandatory.
func (policy CleanWorktreePolicy) RequireClean() bool {
	return policy == CleanWorktreeRequired
}
