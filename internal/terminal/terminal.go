// Package terminal drives a quiz session from a raw-mode terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"vocabquiz/internal/domain"

	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

const (
	colorGreen = "\033[92m"
	colorRed   = "\033[91m"
	colorReset = "\033[0m"
	clearLine  = "\r\033[K"
)

// KeySink receives decoded keystrokes
type KeySink interface {
	KeyPress(ctx context.Context, r rune) error
	Backspace(ctx context.Context) error
	Enter(ctx context.Context) error
}

// MakeRaw puts the terminal behind fd into raw mode and returns a function
// that restores it
func MakeRaw(fd int) (func() error, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("fd %d is not a terminal", fd)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	return func() error { return term.Restore(fd, state) }, nil
}

// ReadKeys decodes keystrokes from in until Ctrl-C, Ctrl-D or end of input.
// It returns nil in those cases and the sink error otherwise.
func ReadKeys(ctx context.Context, in io.Reader, sink KeySink) error {
	reader := bufio.NewReader(in)

	for {
		r, _, err := reader.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch {
		case r == keyCtrlC || r == keyCtrlD:
			return nil
		case r == '\r' || r == '\n':
			err = sink.Enter(ctx)
		case r == keyDelete || r == keyBackspace:
			err = sink.Backspace(ctx)
		case unicode.IsPrint(r):
			err = sink.KeyPress(ctx, r)
		default:
			continue
		}

		if err != nil {
			return err
		}
	}
}

// Screen renders a session on a raw terminal. Raw mode disables output
// post-processing, so every line ends with "\r\n".
type Screen struct {
	mu  sync.Mutex
	out io.Writer
}

// NewScreen creates a screen writing to out
func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out}
}

func (s *Screen) ShowWord(word string) {
	s.printf("Translate: %s\r\n> ", word)
}

func (s *Screen) ShowBuffer(buffer string) {
	s.printf("%s> %s", clearLine, buffer)
}

func (s *Screen) ShowOutcome(outcome domain.Outcome) {
	if outcome.Correct {
		s.printf("%sCorrect!%s (All correct answers: %s)\r\n\r\n", colorGreen, colorReset, outcome.AcceptedString())
		return
	}
	s.printf("%sWrong :(%s (All correct answers: %s)\r\n\r\n", colorRed, colorReset, outcome.AcceptedString())
}

func (s *Screen) ShowWaiting() {
	s.printf("%sLoading words...\r\n", clearLine)
}

// ShowSummary prints the final score and a farewell
func (s *Screen) ShowSummary(score domain.Score) {
	if score.Total > 0 {
		rule := strings.Repeat("*", 80)
		s.printf("\r\n\r\n%s\r\n%s\r\n%s\r\n", rule, score.Summary(), rule)
	}
	s.printf("Goodbye!\r\n")
}

func (s *Screen) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
