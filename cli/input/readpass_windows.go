//go:build windows

package input

import (
	"os"
)

func readSecurePassword(prompt string) (string, error) {
	return readPasswordFd(int(os.Stdin.Fd()), os.Stderr, prompt)
}
