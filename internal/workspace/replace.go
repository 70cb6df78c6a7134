package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	placeholderFileMissingMessage       = "placeholder file not found"
	placeholderSearchRequiredMessage    = "placeholder search text required"
	replaceReadErrorTemplateConstant    = "unable to read %s: %w"
	replaceWriteErrorTemplateConstant   = "unable to write %s: %w"
	replaceMissingErrorTemplateConstant = "%w: %s"
)

// ErrPlaceholderFileMissing indicates a file listed for placeholder rewriting does not exist.
var ErrPlaceholderFileMissing = errors.New(placeholderFileMissingMessage)

// ErrPlaceholderSearchRequired indicates an empty search text.
var ErrPlaceholderSearchRequired = errors.New(placeholderSearchRequiredMessage)

// Replacement reports how many occurrences were rewritten in one file.
type Replacement struct {
	File  string
	Count int
}

// ReplaceInFiles rewrites every literal occurrence of searchText with replacementText in the listed files,
// resolved relative to root. Files keep their permission bits. A listed file that does not exist is an error.
func ReplaceInFiles(root string, relativeFiles []string, searchText string, replacementText string) ([]Replacement, error) {
	if len(searchText) == 0 {
		return nil, ErrPlaceholderSearchRequired
	}

	replacements := make([]Replacement, 0, len(relativeFiles))
	for _, relativeFile := range relativeFiles {
		filePath := filepath.Join(root, relativeFile)
		fileInfo, statError := os.Stat(filePath)
		if statError != nil {
			if errors.Is(statError, fs.ErrNotExist) {
				return replacements, fmt.Errorf(replaceMissingErrorTemplateConstant, ErrPlaceholderFileMissing, filePath)
			}
			return replacements, fmt.Errorf(replaceReadErrorTemplateConstant, filePath, statError)
		}

		content, readError := os.ReadFile(filePath)
		if readError != nil {
			return replacements, fmt.Errorf(replaceReadErrorTemplateConstant, filePath, readError)
		}

		occurrences := bytes.Count(content, []byte(searchText))
		if occurrences > 0 {
			rewritten := bytes.ReplaceAll(content, []byte(searchText), []byte(replacementText))
			if writeError := os.WriteFile(filePath, rewritten, fileInfo.Mode().Perm()); writeError != nil {
				return replacements, fmt.Errorf(replaceWriteErrorTemplateConstant, filePath, writeError)
			}
		}
		replacements = append(replacements, Replacement{File: relativeFile, Count: occurrences})
	}
	return replacements, nil
}
