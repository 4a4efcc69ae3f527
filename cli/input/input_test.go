package input

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func withInput(t *testing.T, data string) {
	Terminal = term.NewTerminal(ReadWriter{
		Reader: bytes.NewBufferString(data),
		Writer: io.Discard,
	}, "")
	t.Cleanup(func() { Terminal = nil })
}

func TestReadLine(t *testing.T) {
	withInput(t, "line\r")
	s, err := ReadLine("> ")
	require.NoError(t, err)
	require.Equal(t, "line", s)
}

func TestReadPassword(t *testing.T) {
	withInput(t, "secret\r")
	s, err := ReadPassword("> ")
	require.NoError(t, err)
	require.Equal(t, "secret", s)
}

func TestConfirmTx(t *testing.T) {
	out := bytes.NewBuffer(nil)
	withInput(t, "y\r")
	require.NoError(t, ConfirmTx(out, "deploy"))
	require.Equal(t, "deploy\n", out.String())

	withInput(t, "n\r")
	require.Error(t, ConfirmTx(out, "deploy"))
}
