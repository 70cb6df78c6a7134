package release

import (
	"fmt"
	"strings"
)

const (
	releaseBranchSeparatorConstant       = "/"
	invalidReleaseBranchTemplateConstant = "%w: %q does not look like \"release/1.1.1\""
)

// Version is the release version derived from the branch name.
type Version string

// String returns the version text.
func (version Version) String() string {
	return string(version)
}

// ResolveVersion extracts the version from a branch name such as release/1.1.1.
// The version is the text after the last slash; branches without a slash or with an empty suffix are rejected.
func ResolveVersion(branchName string) (Version, error) {
	trimmedBranch := strings.TrimSpace(branchName)
	separatorIndex := strings.LastIndex(trimmedBranch, releaseBranchSeparatorConstant)
	if separatorIndex < 0 {
		return "", fmt.Errorf(invalidReleaseBranchTemplateConstant, ErrInvalidReleaseBranch, trimmedBranch)
	}

	versionText := trimmedBranch[separatorIndex+len(releaseBranchSeparatorConstant):]
	if len(versionText) == 0 {
		return "", fmt.Errorf(invalidReleaseBranchTemplateConstant, ErrInvalidReleaseBranch, trimmedBranch)
	}
	return Version(versionText), nil
}
