// Package source acquires raw diff text from the places a run can take it
// from: a pipe on standard input or the system clipboard.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
)

// ErrEmpty is reported when a source yields no text at all.
var ErrEmpty = errors.New("input is empty")

// Piped reports whether standard input arrives from a pipe or a redirected
// file rather than an interactive terminal.
func Piped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ReadAll drains r into a string.
func ReadAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("source.ReadAll: %w", err)
	}
	return string(b), nil
}

// Clipboard returns the system clipboard text.
func Clipboard() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("source.Clipboard: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("source.Clipboard: %w", ErrEmpty)
	}
	return text, nil
}
