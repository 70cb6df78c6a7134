package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	artifactMissingMessage               = "build artifact not found"
	artifactAmbiguousMessage             = "build artifact pattern matched more than one file"
	artifactPatternInvalidMessage        = "invalid build artifact pattern"
	notRegularFileMessage                = "not a regular file"
	artifactMissingTemplateConstant      = "%w: %s"
	artifactAmbiguousTemplateConstant    = "%w: %s matched %s"
	artifactPatternErrorTemplateConstant = "%w %q: %v"
	artifactGlobErrorTemplateConstant    = "unable to resolve build artifact %s: %w"
	artifactMatchSeparatorConstant       = ", "
)

// ErrArtifactMissing indicates the declared artifact path does not name an existing file.
var ErrArtifactMissing = errors.New(artifactMissingMessage)

// ErrArtifactAmbiguous indicates a glob artifact path matched several files.
var ErrArtifactAmbiguous = errors.New(artifactAmbiguousMessage)

// ErrArtifactPatternInvalid indicates a malformed glob.
var ErrArtifactPatternInvalid = errors.New(artifactPatternInvalidMessage)

// ErrNotRegularFile indicates a path expected to be a regular file is something else.
var ErrNotRegularFile = errors.New(notRegularFileMessage)

// ResolveArtifact resolves the declared artifact path to exactly one regular file. The path may be a literal path
// or a doublestar glob; relative paths are anchored at root.
func ResolveArtifact(root string, declaredPath string) (string, error) {
	trimmedPath := strings.TrimSpace(declaredPath)
	anchoredPath := trimmedPath
	if !filepath.IsAbs(anchoredPath) {
		anchoredPath = filepath.Join(root, trimmedPath)
	}

	if !containsGlobMeta(trimmedPath) {
		fileInfo, statError := os.Stat(anchoredPath)
		if statError != nil || !fileInfo.Mode().IsRegular() {
			return "", fmt.Errorf(artifactMissingTemplateConstant, ErrArtifactMissing, anchoredPath)
		}
		return anchoredPath, nil
	}

	matches, globError := globArtifact(root, trimmedPath)
	if globError != nil {
		return "", globError
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf(artifactMissingTemplateConstant, ErrArtifactMissing, anchoredPath)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf(artifactAmbiguousTemplateConstant, ErrArtifactAmbiguous, trimmedPath, strings.Join(matches, artifactMatchSeparatorConstant))
	}
}

func globArtifact(root string, pattern string) ([]string, error) {
	globOptions := []doublestar.GlobOption{doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors()}

	if filepath.IsAbs(pattern) {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf(artifactPatternErrorTemplateConstant, ErrArtifactPatternInvalid, pattern, doublestar.ErrBadPattern)
		}
		matches, globError := doublestar.FilepathGlob(pattern, globOptions...)
		if globError != nil {
			return nil, fmt.Errorf(artifactGlobErrorTemplateConstant, pattern, globError)
		}
		return matches, nil
	}

	slashPattern := filepath.ToSlash(filepath.Clean(pattern))
	if !doublestar.ValidatePattern(slashPattern) {
		return nil, fmt.Errorf(artifactPatternErrorTemplateConstant, ErrArtifactPatternInvalid, pattern, doublestar.ErrBadPattern)
	}
	relativeMatches, globError := doublestar.Glob(os.DirFS(root), slashPattern, globOptions...)
	if globError != nil {
		return nil, fmt.Errorf(artifactGlobErrorTemplateConstant, pattern, globError)
	}

	matches := make([]string, 0, len(relativeMatches))
	for _, relativeMatch := range relativeMatches {
		matches = append(matches, filepath.Join(root, filepath.FromSlash(relativeMatch)))
	}
	return matches, nil
}

// ArtifactExtension returns the artifact's extension including the leading dot, or an empty string.
func ArtifactExtension(artifactPath string) string {
	return filepath.Ext(artifactPath)
}

func containsGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
