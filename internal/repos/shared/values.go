package shared

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	valueRequiredMessageConstant         = "value required"
	valueWhitespaceMessageConstant       = "must not contain whitespace"
	valueLeadingDashMessageConstant      = "must not start with '-'"
	valueReferenceRulesMessageConstant   = "is not a valid git reference name"
	valueErrorTemplateConstant           = "%s %q %s"
	repositoryPathLabelConstant          = "repository path"
	remoteNameLabelConstant              = "remote name"
	branchNameLabelConstant              = "branch name"
	tagNameLabelConstant                 = "tag name"
	referenceForbiddenCharactersConstant = "~^:?*[\\"
	referenceDoubleDotConstant           = ".."
	referenceLockSuffixConstant          = ".lock"
	referenceSeparatorConstant           = "/"
	referenceReflogMarkerConstant        = "@{"
)

// ErrInvalidValue is wrapped by every value validation failure.
var ErrInvalidValue = errors.New("invalid value")

// RepositoryPath is a trimmed, non-empty filesystem path to a repository.
type RepositoryPath string

// NewRepositoryPath validates a repository path.
func NewRepositoryPath(raw string) (RepositoryPath, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", valueError(repositoryPathLabelConstant, raw, valueRequiredMessageConstant)
	}
	if strings.ContainsAny(trimmed, "\n\r") {
		return "", valueError(repositoryPathLabelConstant, raw, valueWhitespaceMessageConstant)
	}
	return RepositoryPath(trimmed), nil
}

// String returns the path.
func (value RepositoryPath) String() string {
	return string(value)
}

// RemoteName names a git remote.
type RemoteName string

// NewRemoteName validates a git remote name.
func NewRemoteName(raw string) (RemoteName, error) {
	trimmed, validationError := validateReference(remoteNameLabelConstant, raw)
	if validationError != nil {
		return "", validationError
	}
	if strings.Contains(trimmed, referenceSeparatorConstant) {
		return "", valueError(remoteNameLabelConstant, raw, valueReferenceRulesMessageConstant)
	}
	return RemoteName(trimmed), nil
}

// String returns the remote name.
func (value RemoteName) String() string {
	return string(value)
}

// BranchName names a git branch.
type BranchName string

// NewBranchName validates a git branch name.
func NewBranchName(raw string) (BranchName, error) {
	trimmed, validationError := validateReference(branchNameLabelConstant, raw)
	if validationError != nil {
		return "", validationError
	}
	return BranchName(trimmed), nil
}

// String returns the branch name.
func (value BranchName) String() string {
	return string(value)
}

// TagName names a git tag.
type TagName string

// NewTagName validates a git tag name.
func NewTagName(raw string) (TagName, error) {
	trimmed, validationError := validateReference(tagNameLabelConstant, raw)
	if validationError != nil {
		return "", validationError
	}
	return TagName(trimmed), nil
}

// String returns the tag name.
func (value TagName) String() string {
	return string(value)
}

// validateReference applies the subset of git-check-ref-format rules that matter for operator input.
func validateReference(label string, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", valueError(label, raw, valueRequiredMessageConstant)
	}
	if strings.IndexFunc(trimmed, unicode.IsSpace) >= 0 {
		return "", valueError(label, raw, valueWhitespaceMessageConstant)
	}
	if strings.HasPrefix(trimmed, "-") {
		return "", valueError(label, raw, valueLeadingDashMessageConstant)
	}
	if strings.ContainsAny(trimmed, referenceForbiddenCharactersConstant) ||
		strings.Contains(trimmed, referenceDoubleDotConstant) ||
		strings.Contains(trimmed, referenceReflogMarkerConstant) ||
		strings.HasSuffix(trimmed, referenceLockSuffixConstant) ||
		strings.HasSuffix(trimmed, referenceSeparatorConstant) ||
		strings.HasSuffix(trimmed, ".") ||
		strings.IndexFunc(trimmed, unicode.IsControl) >= 0 {
		return "", valueError(label, raw, valueReferenceRulesMessageConstant)
	}
	return trimmed, nil
}

func valueError(label string, raw string, message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(valueErrorTemplateConstant, label, raw, message))
}
