package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// prompter reads interactive input: plain lines for account/OTP, and a
// non-echoing read for the password when stdin is a terminal. Piped input
// falls back to plain line reads so scripted logins keep working.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// isTerminal gates the non-echoing password path.
	isTerminal bool
	// readPassword is term.ReadPassword in production; tests replace it.
	readPassword func(fd int) ([]byte, error)
}

func newPrompter() *prompter {
	return &prompter{
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		isTerminal:   isatty.IsTerminal(os.Stdin.Fd()),
		readPassword: term.ReadPassword,
	}
}

// ReadLine prints "prompt: " and reads one trimmed line.
func (p *prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading %s: %w", prompt, err)
	}

	return strings.TrimSpace(line), nil
}

// ReadRequired reads a line and rejects blank input.
func (p *prompter) ReadRequired(prompt string) (string, error) {
	value, err := p.ReadLine(prompt)
	if err != nil {
		return "", err
	}

	if value == "" {
		return "", fmt.Errorf("missing %s", prompt)
	}

	return value, nil
}

// ReadPassword reads the password without echoing when possible.
func (p *prompter) ReadPassword(prompt string) (string, error) {
	if !p.isTerminal {
		return p.ReadRequired(prompt)
	}

	fmt.Fprintf(p.out, "%s: ", prompt)

	pw, err := p.readPassword(int(os.Stdin.Fd()))

	fmt.Fprintln(p.out)

	if err != nil {
		return "", fmt.Errorf("reading %s: %w", prompt, err)
	}

	if len(pw) == 0 {
		return "", fmt.Errorf("missing %s", prompt)
	}

	return string(pw), nil
}
