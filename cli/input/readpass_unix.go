//go:build !windows

package input

import (
	"os"
)

// readSecurePassword reads the password from /dev/tty, so it works when
// stdin is redirected.
func readSecurePassword(prompt string) (string, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readPasswordFd(int(f.Fd()), f, prompt)
}
