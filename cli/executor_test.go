package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/alephium-go/cli/app"
	"github.com/nspcc-dev/alephium-go/cli/input"
	"github.com/nspcc-dev/alephium-go/internal/fakenode"
	"github.com/nspcc-dev/alephium-go/pkg/alphtest"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	contractsDir = "../contracts"
	artifactsDir = "../artifacts"

	testPubKey = "0381818e63bd9e35a5489b52a430accefc608fd60aa2c7c0d1b393b5239aedf6b2"
)

// executor represents context for a test instance.
// It can be safely used in multiple tests, but not in parallel.
type executor struct {
	// CLI is a cli application to test.
	CLI *cli.App
	// Node is a fake node the CLI talks to (can be empty).
	Node *fakenode.Node
	// ConfigPath is the project configuration pointing to Node.
	ConfigPath string
	// ArtifactDir is a temporary artifact directory.
	ArtifactDir string
	// Out contains command output.
	Out *bytes.Buffer
	// Err contains command errors.
	Err *bytes.Buffer
	// In contains command input.
	In *bytes.Buffer
}

func newExecutor(t *testing.T, needNode bool) *executor {
	e := &executor{
		CLI: app.New(),
		Out: bytes.NewBuffer(nil),
		Err: bytes.NewBuffer(nil),
		In:  bytes.NewBuffer(nil),
	}
	e.CLI.Writer = e.Out
	e.CLI.ErrWriter = e.Err
	if needNode {
		e.Node = newTestNode(t)
		e.ArtifactDir = t.TempDir()
		e.ConfigPath = writeConfig(t, map[string]any{
			"NodeURL":     e.Node.URL(),
			"SourceDir":   contractsDir,
			"ArtifactDir": e.ArtifactDir,
			"LogLevel":    "error",
			"Deployer": map[string]string{
				"WalletName":     alphtest.TestWalletName,
				"WalletPassword": alphtest.TestPassword,
			},
		})
	}
	t.Cleanup(func() {
		e.Close(t)
	})
	return e
}

// newTestNode starts a node serving the test wallet.
func newTestNode(t *testing.T) *fakenode.Node {
	n := fakenode.New(t)
	n.Respond(http.MethodPost, "/wallets/"+alphtest.TestWalletName+"/unlock", nil)
	n.Respond(http.MethodGet, "/wallets/"+alphtest.TestWalletName+"/addresses", &result.WalletAddresses{
		ActiveAddress: alphtest.TestAddress,
		Addresses:     []result.AddressInfo{{Address: alphtest.TestAddress, PublicKey: testPubKey, Group: 0}},
	})
	n.Respond(http.MethodPost, "/wallets/"+alphtest.TestWalletName+"/sign", &result.Sign{Signature: "aa"})
	return n
}

func writeConfig(t *testing.T, cfg map[string]any) string {
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "alephium.yml")
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func (e *executor) Close(t *testing.T) {
	input.Terminal = nil
}

func (e *executor) getNextLine(t *testing.T) string {
	line, err := e.Out.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimSuffix(line, "\n")
}

func (e *executor) checkNextLine(t *testing.T, expected string) {
	line := e.getNextLine(t)
	e.checkLine(t, line, expected)
}

func (e *executor) checkLine(t *testing.T, line, expected string) {
	require.Regexp(t, expected, line)
}

func (e *executor) checkEOF(t *testing.T) {
	_, err := e.Out.ReadString('\n')
	require.True(t, errors.Is(err, io.EOF))
}

func setExitFunc() <-chan int {
	ch := make(chan int, 1)
	cli.OsExiter = func(code int) {
		ch <- code
	}
	return ch
}

func checkExit(t *testing.T, ch <-chan int, code int) {
	select {
	case c := <-ch:
		require.Equal(t, code, c)
	default:
		if code != 0 {
			require.Fail(t, "no exit was called")
		}
	}
}

// RunWithError runs command and checks that is exits with error.
func (e *executor) RunWithError(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.Error(t, e.run(args...))
	checkExit(t, ch, 1)
}

// Run runs command and checks that there were no errors.
func (e *executor) Run(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.NoError(t, e.run(args...))
	checkExit(t, ch, 0)
}

func (e *executor) run(args ...string) error {
	e.Out.Reset()
	e.Err.Reset()
	input.Terminal = term.NewTerminal(input.ReadWriter{
		Reader: e.In,
		Writer: io.Discard,
	}, "")
	err := e.CLI.Run(args)
	input.Terminal = nil
	e.In.Reset()
	return err
}
