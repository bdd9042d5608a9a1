package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
)

const msgInvalidAnswer = "Please answer 'yes' or 'no'."

// LineReader reads one line of user input after showing a prompt.
// *readline.Instance satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// NewTerminalReader creates a readline based LineReader for an interactive terminal
func NewTerminalReader(stdin io.ReadCloser, stdout io.Writer) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:                  stdin,
		Stdout:                 stdout,
		HistoryLimit:           -1,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize readline")
	}
	return rl, nil
}

// StreamReader is a LineReader over a plain stream such as a pipe
type StreamReader struct {
	scanner *bufio.Scanner
	w       io.Writer
	prompt  string
}

// NewStreamReader creates a LineReader that prints prompts to w and reads lines from r
func NewStreamReader(r io.Reader, w io.Writer) *StreamReader {
	return &StreamReader{
		scanner: bufio.NewScanner(r),
		w:       w,
	}
}

func (s *StreamReader) SetPrompt(prompt string) {
	s.prompt = prompt
}

func (s *StreamReader) Readline() (string, error) {
	fmt.Fprint(s.w, s.prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", goerr.Wrap(err, "failed to read input")
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// Prompter asks yes/no questions over a LineReader, repeating until a valid token is given
type Prompter struct {
	reader LineReader
	w      io.Writer
}

// NewPrompter creates a Prompter. Retry notices are written to w.
func NewPrompter(reader LineReader, w io.Writer) *Prompter {
	return &Prompter{reader: reader, w: w}
}

// AskYesNo accepts yes/y and no/n in any case
func (p *Prompter) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	p.reader.SetPrompt(prompt)
	for {
		if err := ctx.Err(); err != nil {
			return false, goerr.Wrap(err, "prompt canceled")
		}

		line, err := p.reader.Readline()
		if err != nil {
			return false, goerr.Wrap(err, "failed to read answer", goerr.V("prompt", prompt))
		}

		if yes, ok := ParseYesNo(line); ok {
			return yes, nil
		}
		fmt.Fprintln(p.w, msgInvalidAnswer)
	}
}

// ParseYesNo interprets a reply token. ok is false for anything but yes/y/no/n.
func ParseYesNo(s string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	default:
		return false, false
	}
}
