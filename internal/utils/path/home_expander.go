// Package pathutils resolves operator-supplied paths against the home directory and a base directory.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts user home shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading "~" or "~/" to the user's home directory. Other paths are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)))
	default:
		return candidatePath
	}
}

// ExpandAll expands every path in the slice.
func (expander *HomeExpander) ExpandAll(candidatePaths []string) []string {
	expandedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		expandedPaths = append(expandedPaths, expander.Expand(candidatePath))
	}
	return expandedPaths
}

// ResolveAgainst expands the home shortcut and anchors relative paths at baseDirectory.
func (expander *HomeExpander) ResolveAgainst(baseDirectory string, candidatePath string) string {
	expandedPath := expander.Expand(strings.TrimSpace(candidatePath))
	if len(expandedPath) == 0 || filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath)
	}
	return filepath.Join(baseDirectory, expandedPath)
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
