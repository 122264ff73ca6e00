package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Interactor asks the person at the terminal for input
type Interactor interface {
	// PromptYesNo asks a yes/no question; only an explicit "y" is yes
	PromptYesNo(question string) bool

	// Prompt asks for a free-text value and returns it trimmed
	Prompt(question string) string
}

// DefaultInteractor reads answers line by line from its input and writes
// questions to Writer.
type DefaultInteractor struct {
	Writer io.Writer
	reader *bufio.Reader
}

// NewDefaultInteractor creates an interactor bound to stdin/stdout
func NewDefaultInteractor() *DefaultInteractor {
	return NewInteractor(os.Stdin, os.Stdout)
}

// NewInteractor creates an interactor over arbitrary streams.
// The reader is buffered once so consecutive prompts don't lose input.
func NewInteractor(r io.Reader, w io.Writer) *DefaultInteractor {
	return &DefaultInteractor{Writer: w, reader: bufio.NewReader(r)}
}

// PromptYesNo returns true only when the answer is "y" (any case).
// Anything else, including read errors and "yes", counts as no.
func (i *DefaultInteractor) PromptYesNo(question string) bool {
	return strings.ToLower(i.Prompt(question+" (y/n)")) == "y"
}

// Prompt prints "question: " and returns the trimmed reply
func (i *DefaultInteractor) Prompt(question string) string {
	_, _ = fmt.Fprintf(i.Writer, "%s: ", question)

	answer, err := i.reader.ReadString('\n')
	if err != nil && answer == "" {
		return ""
	}
	return strings.TrimSpace(answer)
}

// NonInteractive answers every question with its default without reading
type NonInteractive struct{}

// NewNonInteractive creates a NonInteractive interactor
func NewNonInteractive() *NonInteractive {
	return &NonInteractive{}
}

// PromptYesNo always returns false without prompting
func (NonInteractive) PromptYesNo(string) bool {
	return false
}

// Prompt always returns an empty answer
func (NonInteractive) Prompt(string) string {
	return ""
}
