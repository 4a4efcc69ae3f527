/*
Package input reads lines and passwords from the terminal.
*/
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal is a terminal used for input. If `nil`, stdin is used.
var Terminal *term.Terminal

// ReadWriter combines reader and writer.
type ReadWriter struct {
	io.Reader
	io.Writer
}

// ReadLine reads a line from the input without trailing '\n'.
func ReadLine(prompt string) (string, error) {
	trm := Terminal
	if trm == nil {
		s, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return readLineNoTerm(prompt)
		}
		defer func() { _ = term.Restore(int(os.Stdin.Fd()), s) }()
		trm = term.NewTerminal(ReadWriter{
			Reader: os.Stdin,
			Writer: os.Stdout,
		}, "")
	}
	return readLine(trm, prompt)
}

func readLine(trm *term.Terminal, prompt string) (string, error) {
	_, err := trm.Write([]byte(prompt))
	if err != nil {
		return "", err
	}
	return trm.ReadLine()
}

func readLineNoTerm(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// ReadPassword reads the user's password (or a private key) with prompt.
func ReadPassword(prompt string) (string, error) {
	if Terminal != nil {
		return Terminal.ReadPassword(prompt)
	}
	return readSecurePassword(prompt)
}

// readPasswordFd prints the prompt to w and reads a password from the
// terminal fd without echo.
func readPasswordFd(fd int, w io.Writer, prompt string) (string, error) {
	if _, err := io.WriteString(w, prompt); err != nil {
		return "", err
	}
	pass, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return string(pass), err
}

// ConfirmTx asks for a confirmation to send the transaction.
func ConfirmTx(w io.Writer, what string) error {
	_, _ = fmt.Fprintf(w, "%s\n", what)
	ln, err := ReadLine("Relay transaction (y|N)> ")
	if err != nil {
		return err
	}
	if len(ln) == 0 || (ln[0] != 'y' && ln[0] != 'Y') {
		return fmt.Errorf("transaction cancelled")
	}
	return nil
}
