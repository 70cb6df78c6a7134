// Package prompt implements interactive confirmation prompts over standard streams.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	promptTemplateConstant    = "%s [y/N/a] "
	responseYesShortConstant  = "y"
	responseYesConstant       = "yes"
	responseAllShortConstant  = "a"
	responseAllConstant       = "all"
	responseLineDelimiterByte = '\n'
	promptWriteErrorTemplate  = "unable to write confirmation prompt: %w"
	responseReadErrorTemplate = "unable to read confirmation response: %w"
)

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
// Anything other than yes or all, including end of input, declines.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	if input == nil {
		input = strings.NewReader("")
	}
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets y/yes as a single confirmation and a/all as confirming the remaining prompts.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (shared.ConfirmationResult, error) {
	if prompter.writer != nil {
		if _, writeError := fmt.Fprintf(prompter.writer, promptTemplateConstant, strings.TrimSpace(prompt)); writeError != nil {
			return shared.ConfirmationResult{}, fmt.Errorf(promptWriteErrorTemplate, writeError)
		}
	}

	response, readError := prompter.reader.ReadString(responseLineDelimiterByte)
	if readError != nil && !errors.Is(readError, io.EOF) {
		return shared.ConfirmationResult{}, fmt.Errorf(responseReadErrorTemplate, readError)
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case responseYesShortConstant, responseYesConstant:
		return shared.ConfirmationResult{Confirmed: true}, nil
	case responseAllShortConstant, responseAllConstant:
		return shared.ConfirmationResult{Confirmed: true, ApplyToAll: true}, nil
	default:
		return shared.ConfirmationResult{}, nil
	}
}
