package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	gitMetadataDirectoryNameConstant  = ".git"
	workingTreeNotDirectoryMessage    = "working tree root is not a directory"
	clearReadErrorTemplateConstant    = "unable to list working tree %s: %w"
	clearRemoveErrorTemplateConstant  = "unable to remove %s: %w"
	notDirectoryErrorTemplateConstant = "%w: %s"
)

// ErrNotDirectory indicates a path expected to be a directory is something else.
var ErrNotDirectory = errors.New(workingTreeNotDirectoryMessage)

// ClearWorkingTree removes every entry of root except the .git metadata directory and returns the removed names.
func ClearWorkingTree(root string) ([]string, error) {
	rootInfo, statError := os.Stat(root)
	if statError != nil {
		return nil, fmt.Errorf(clearReadErrorTemplateConstant, root, statError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(notDirectoryErrorTemplateConstant, ErrNotDirectory, root)
	}

	entries, readError := os.ReadDir(root)
	if readError != nil {
		return nil, fmt.Errorf(clearReadErrorTemplateConstant, root, readError)
	}

	removedNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name() == gitMetadataDirectoryNameConstant {
			continue
		}
		entryPath := filepath.Join(root, entry.Name())
		if removeError := os.RemoveAll(entryPath); removeError != nil {
			return removedNames, fmt.Errorf(clearRemoveErrorTemplateConstant, entryPath, removeError)
		}
		removedNames = append(removedNames, entry.Name())
	}
	return removedNames, nil
}
