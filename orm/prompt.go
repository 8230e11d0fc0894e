package orm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const connectionPrompt = "Enter connection string: "

// PromptConnectionString writes a prompt to out and reads lines from in
// until one is not blank. Terminal input is read without echo since
// connection strings carry passwords.
func PromptConnectionString(in io.Reader, out io.Writer) (string, error) {
	if out == nil {
		out = io.Discard
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		for {
			fmt.Fprint(out, connectionPrompt)
			line, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("failed to read connection string: %w", err)
			}
			if s := strings.TrimSpace(string(line)); s != "" {
				return s, nil
			}
		}
	}

	r := bufio.NewReader(in)
	for {
		fmt.Fprint(out, connectionPrompt)
		line, err := r.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrEmptyConnectionString
		}
		if err != nil {
			return "", fmt.Errorf("failed to read connection string: %w", err)
		}
	}
}
