package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

type terminalReader struct {
	in     *os.File
	lines  *bufio.Reader
	prompt io.Writer
}

// NewTerminalReader reads secrets from in without echo, writing prompts to
// prompt. When in is not a terminal each secret is one line of input.
func NewTerminalReader(in *os.File, prompt io.Writer) SecretReader {
	return &terminalReader{in: in, lines: bufio.NewReader(in), prompt: prompt}
}

func (r *terminalReader) ReadSecret(prompt string) (string, error) {
	fmt.Fprintf(r.prompt, "%s: ", prompt)

	fd := int(r.in.Fd())
	if !isTerminal(fd) {
		line, err := r.lines.ReadString('\n')
		fmt.Fprintln(r.prompt)
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(prompt), err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	secret, err := readPassword(fd)
	fmt.Fprintln(r.prompt)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(prompt), err)
	}
	return string(secret), nil
}

// readSecret prompts once and rejects an empty answer.
func readSecret(r SecretReader, prompt string) (string, error) {
	v, err := r.ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(prompt), ErrEmptySecret)
	}
	return v, nil
}

// readNewPassword prompts twice and requires both answers to match.
func readNewPassword(r SecretReader, prompt string) (string, error) {
	first, err := readSecret(r, prompt)
	if err != nil {
		return "", err
	}
	second, err := r.ReadSecret("Repeat " + strings.ToLower(prompt))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}
