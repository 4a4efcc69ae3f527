package alphtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nspcc-dev/alephium-go/pkg/compiler"
	"github.com/nspcc-dev/alephium-go/pkg/config"
	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/waiter"
	"github.com/nspcc-dev/alephium-go/pkg/wallet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// NodeURLEnv is the environment variable overriding the node endpoint.
const NodeURLEnv = "ALEPHIUM_NODE_URL"

// WaitTimeout limits transaction awaiting in DeployContract and
// ExecuteScript.
const WaitTimeout = time.Minute

// waitPoll is the status polling interval used by Executor.
const waitPoll = 200 * time.Millisecond

// Executor wraps the node client, the compiler and the actor of a signer.
type Executor struct {
	Client   *rpcclient.Client
	Compiler *compiler.Compiler
	Actor    *actor.Actor
	// Contracts are the contracts compiled with CompileContract, by name.
	Contracts map[string]*contract.Contract
}

// NodeURL returns the node endpoint to test against, it's taken from
// NodeURLEnv if set.
func NodeURL() string {
	if u := os.Getenv(NodeURLEnv); u != "" {
		return u
	}
	return config.DefaultNodeURL
}

// NewClient creates an initialized client for NodeURL. The test is skipped
// if the node is not available.
func NewClient(t testing.TB) *rpcclient.Client {
	ctx := context.Background()
	c, err := rpcclient.New(ctx, NodeURL(), rpcclient.Options{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	if err := c.Ping(); err != nil {
		t.Skipf("node is not available at %s: %v", NodeURL(), err)
	}
	require.NoError(t, c.Init(ctx))
	return c
}

// NewExecutor creates an Executor for the client using sourceDir for
// contract sources and signer for transactions.
func NewExecutor(t testing.TB, c *rpcclient.Client, signer wallet.Signer, sourceDir string) *Executor {
	act, err := actor.NewTuned(context.Background(), c, signer, actor.Options{
		Waiter: waiter.Config{PollConfig: waiter.PollConfig{PollInterval: waitPoll}},
	})
	require.NoError(t, err)
	return &Executor{
		Client: c,
		Compiler: compiler.New(c, compiler.Options{
			SourceDir: sourceDir,
			Logger:    zaptest.NewLogger(t),
		}),
		Actor:     act,
		Contracts: make(map[string]*contract.Contract),
	}
}

// NewTestExecutor creates an Executor for the node at NodeURL signing with
// TestWallet. The test is skipped if the node is not available.
func NewTestExecutor(t testing.TB, sourceDir string) *Executor {
	c := NewClient(t)
	return NewExecutor(t, c, TestWallet(t, c), sourceDir)
}

// Sender returns the address of the executor signer.
func (e *Executor) Sender() string {
	return e.Actor.Sender()
}

// CompileContract compiles the contract from path relative to the source
// directory.
func (e *Executor) CompileContract(t testing.TB, path string) *contract.Contract {
	c, err := contract.FromSource(context.Background(), e.Compiler, path)
	require.NoError(t, err, "failed to compile %s", path)
	e.Contracts[c.Name()] = c
	return c
}

// CompileScript compiles the script from path relative to the source
// directory.
func (e *Executor) CompileScript(t testing.TB, path string) *contract.Script {
	s, err := contract.ScriptFromSource(context.Background(), e.Compiler, path)
	require.NoError(t, err, "failed to compile %s", path)
	return s
}

// TestMethod simulates the public method of the contract.
func (e *Executor) TestMethod(t testing.TB, c *contract.Contract, method string, p contract.TestParams) *contract.TestResult[[]any] {
	res, err := contract.TestPublicMethod(context.Background(), e.Actor, c, method, p)
	require.NoError(t, err, "%s.%s simulation failed", c.Name(), method)
	return res
}

// TestPrivateMethod simulates the private method of the contract.
func (e *Executor) TestPrivateMethod(t testing.TB, c *contract.Contract, method string, p contract.TestParams) *contract.TestResult[[]any] {
	res, err := contract.TestPrivateMethod(context.Background(), e.Actor, c, method, p)
	require.NoError(t, err, "%s.%s simulation failed", c.Name(), method)
	return res
}

// DeployContract builds, signs and submits the contract deployment, checks
// that the node accepted exactly the built transaction and waits for it to
// be confirmed.
func (e *Executor) DeployContract(t testing.TB, c *contract.Contract, p contract.DeployParams) *contract.DeployTx {
	ctx := context.Background()
	tx, err := c.TransactionForDeployment(ctx, e.Actor, p)
	require.NoError(t, err, "failed to build %s deployment", c.Name())

	e.submit(t, tx.UnsignedTx, tx.TxID, tx.FromGroup, tx.ToGroup)
	return tx
}

// ExecuteScript builds, signs and submits the script execution the same way
// DeployContract does it for contracts.
func (e *Executor) ExecuteScript(t testing.TB, s *contract.Script, p contract.ExecuteScriptParams) *contract.ExecuteScriptTx {
	ctx := context.Background()
	tx, err := s.TransactionForDeployment(ctx, e.Actor, p)
	require.NoError(t, err, "failed to build %s execution", s.Name())

	e.submit(t, tx.UnsignedTx, tx.TxID, tx.FromGroup, tx.ToGroup)
	return tx
}

func (e *Executor) submit(t testing.TB, unsignedTx string, txID string, fromGroup int, toGroup int) {
	ctx, cancel := context.WithTimeout(context.Background(), WaitTimeout)
	defer cancel()

	res, err := e.Actor.SubmitTransaction(ctx, unsignedTx, txID)
	require.NoError(t, err, "failed to submit %s", txID)
	require.Equal(t, txID, res.TxID)
	require.Equal(t, fromGroup, res.FromGroup)
	require.Equal(t, toGroup, res.ToGroup)

	_, err = e.Actor.Wait(ctx, txID, nil)
	require.NoError(t, err, "transaction %s is not confirmed", txID)
}
