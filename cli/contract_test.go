package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/alephium-go/internal/fakenode"
	"github.com/nspcc-dev/alephium-go/pkg/alphtest"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
	"github.com/stretchr/testify/require"
)

const (
	testTxID     = "0f7c4c0db8b5d8e6a0a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f708192a3b4c"
	testContract = "tgx7VNFoP9DJiFMFgXXtafQZkUvyEdDHT9ryamHJYrjq"
	greeterPath  = artifactsDir + "/greeter.ral.json"
)

func greeterArtifact(t *testing.T) *artifact.Contract {
	a, err := artifact.ReadContractFile(greeterPath)
	require.NoError(t, err)
	return a
}

func u256(t *testing.T, v int) noderpc.Val {
	val, err := smartcontract.ToVal("U256", v)
	require.NoError(t, err)
	return val
}

func TestContractCompile(t *testing.T) {
	e := newExecutor(t, true)
	a := greeterArtifact(t)
	e.Node.Respond(http.MethodPost, "/contracts/compile-contract", &result.CompileContract{
		Version:   a.Version,
		Name:      a.Name,
		Bytecode:  a.Bytecode,
		CodeHash:  a.CodeHash,
		Fields:    a.FieldsSig,
		Functions: a.Functions,
		Events:    a.EventsSig,
	})

	t.Run("no input", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "compile", "--config", e.ConfigPath)
	})
	t.Run("default output", func(t *testing.T) {
		e.Run(t, "alephium-go", "contract", "compile", "--config", e.ConfigPath, "greeter.ral")
		out := filepath.Join(e.ArtifactDir, "greeter.ral.json")
		e.checkNextLine(t, "greeter.ral.json$")
		e.checkEOF(t)

		saved, err := artifact.ReadContractFile(out)
		require.NoError(t, err)
		require.Equal(t, a.CodeHash, saved.CodeHash)
	})
	t.Run("custom output", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "g.json")
		e.Run(t, "alephium-go", "contract", "compile", "--config", e.ConfigPath, "-o", out, "greeter.ral")
		e.checkNextLine(t, "g.json$")
		_, err := os.Stat(out)
		require.NoError(t, err)
	})
	t.Run("node error", func(t *testing.T) {
		e.Node.Fail(http.MethodPost, "/contracts/compile-contract", http.StatusBadRequest, "syntax error")
		e.RunWithError(t, "alephium-go", "contract", "compile", "--config", e.ConfigPath, "greeter.ral")
	})
}

func TestContractGenerateBinding(t *testing.T) {
	e := newExecutor(t, false)
	out := filepath.Join(t.TempDir(), "greeter", "greeter.go")

	t.Run("no artifact", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "generate-binding", "-o", out)
	})
	t.Run("extra args", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "generate-binding", "-a", greeterPath, "-o", out, "something")
	})
	t.Run("flags", func(t *testing.T) {
		e.Run(t, "alephium-go", "contract", "generate-binding", "-a", greeterPath, "-o", out, "--package", "greeter")
		bs, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Contains(t, string(bs), "package greeter")
	})
	t.Run("config", func(t *testing.T) {
		cfgOut := filepath.Join(t.TempDir(), "hello.go")
		cfgPath := filepath.Join(t.TempDir(), "binding.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("package: hello\nartifact: "+greeterPath+"\noutput: "+cfgOut+"\n"), 0644))
		e.Run(t, "alephium-go", "contract", "generate-binding", "--config", cfgPath)
		bs, err := os.ReadFile(cfgOut)
		require.NoError(t, err)
		require.Contains(t, string(bs), "package hello")
	})
	t.Run("bad config", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "generate-binding", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	})
}

func setupDeploy(n *fakenode.Node, submittedID string) {
	n.Respond(http.MethodPost, "/contracts/unsigned-tx/deploy-contract", &result.BuildDeployContractTx{
		UnsignedTx:      "00",
		GasAmount:       57000,
		GasPrice:        "100000000000",
		TxID:            testTxID,
		ContractAddress: testContract,
	})
	n.Respond(http.MethodPost, "/transactions/submit", &result.SubmitTransaction{TxID: submittedID})
	n.Respond(http.MethodGet, "/transactions/status", &result.TxStatus{
		Type:               result.TxConfirmed,
		BlockHash:          "bb",
		ChainConfirmations: 1,
	})
}

func TestContractDeploy(t *testing.T) {
	e := newExecutor(t, true)
	setupDeploy(e.Node, testTxID)
	deploy := []string{"alephium-go", "contract", "deploy", "--config", e.ConfigPath, "-a", greeterPath}

	t.Run("no artifact", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "deploy", "--config", e.ConfigPath, "btcPrice=1")
	})
	t.Run("missing field", func(t *testing.T) {
		e.RunWithError(t, deploy...)
	})
	t.Run("unknown field", func(t *testing.T) {
		e.RunWithError(t, append(deploy, "btcPrice=1", "ethPrice=2")...)
	})
	t.Run("conflicting signers", func(t *testing.T) {
		e.RunWithError(t, append(deploy, "--wallet", "w", "--private-key", "btcPrice=1")...)
	})
	t.Run("cancelled", func(t *testing.T) {
		e.In.WriteString("n\r")
		e.RunWithError(t, append(deploy, "btcPrice=1")...)
		require.Len(t, e.Node.Requests(http.MethodPost, "/transactions/submit"), 0)
	})
	t.Run("confirmed", func(t *testing.T) {
		e.In.WriteString("y\r")
		e.Run(t, append(deploy, "btcPrice=1")...)
		e.checkNextLine(t, "^Deploy Greeter from "+alphtest.TestAddress)
		e.checkNextLine(t, "^Contract: "+testContract)
		e.checkNextLine(t, "^Contract ID: [0-9a-f]{64}$")
		e.checkNextLine(t, "^Groups: 0 -> 0")
		e.checkNextLine(t, "^TxID: "+testTxID)
		e.checkEOF(t)

		var req noderpc.BuildDeployContractTx
		reqs := e.Node.Requests(http.MethodPost, "/contracts/unsigned-tx/deploy-contract")
		require.NoError(t, reqs[len(reqs)-1].Decode(&req))
		require.Equal(t, testPubKey, req.FromPublicKey)
		require.True(t, strings.HasPrefix(req.Bytecode, greeterArtifact(t).Bytecode))

		var sign noderpc.Sign
		reqs = e.Node.Requests(http.MethodPost, "/wallets/"+alphtest.TestWalletName+"/sign")
		require.Len(t, reqs, 1)
		require.NoError(t, reqs[0].Decode(&sign))
		require.Equal(t, testTxID, sign.Data)
	})
	t.Run("forced with gas and await", func(t *testing.T) {
		e.Run(t, append(deploy, "--force", "--await", "--gas", "60000", "--gas-price", "100000000000", "--alph", "1000000000000000000", "btcPrice=1")...)
		e.checkNextLine(t, "^Contract: "+testContract)
		e.checkNextLine(t, "^Contract ID: ")
		e.checkNextLine(t, "^Groups: ")
		e.checkNextLine(t, "^TxID: "+testTxID)
		e.checkNextLine(t, "^Block: bb")
		e.checkEOF(t)

		var req noderpc.BuildDeployContractTx
		reqs := e.Node.Requests(http.MethodPost, "/contracts/unsigned-tx/deploy-contract")
		require.NoError(t, reqs[len(reqs)-1].Decode(&req))
		require.NotNil(t, req.GasAmount)
		require.Equal(t, 60000, *req.GasAmount)
		require.Equal(t, "1000000000000000000", req.InitialAttoAlphAmount)
	})
	t.Run("unexpected txid", func(t *testing.T) {
		setupDeploy(e.Node, strings.Repeat("ff", 32))
		e.RunWithError(t, append(deploy, "--force", "btcPrice=1")...)
	})
}

func TestContractState(t *testing.T) {
	e := newExecutor(t, true)
	a := greeterArtifact(t)
	e.Node.Respond(http.MethodGet, "/contracts/"+testContract+"/state", &noderpc.ContractState{
		Address:  testContract,
		Bytecode: a.Bytecode,
		CodeHash: a.CodeHash,
		Fields:   []noderpc.Val{u256(t, 42)},
		Asset:    noderpc.Asset{AttoAlphAmount: "1000000000000000000"},
	})

	t.Run("no address", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "state", "--config", e.ConfigPath, "-a", greeterPath)
	})
	t.Run("good", func(t *testing.T) {
		e.Run(t, "alephium-go", "contract", "state", "--config", e.ConfigPath, "-a", greeterPath, testContract)
		out := e.Out.String()
		require.Contains(t, out, `"address": "`+testContract+`"`)
		require.Contains(t, out, `"btcPrice": "42"`)
		require.Contains(t, out, `"attoAlphAmount": "1000000000000000000"`)
		require.Less(t, strings.Index(out, `"address"`), strings.Index(out, `"fields"`))

		reqs := e.Node.Requests(http.MethodGet, "/contracts/"+testContract+"/state")
		require.Len(t, reqs, 1)
		require.NotEmpty(t, reqs[0].Query.Get("group"))
	})
	t.Run("other contract", func(t *testing.T) {
		e.RunWithError(t, "alephium-go", "contract", "state", "--config", e.ConfigPath, "-a", artifactsDir+"/sub.ral.json", testContract)
	})
}

func TestContractCall(t *testing.T) {
	e := newExecutor(t, true)
	e.Node.Respond(http.MethodPost, "/contracts/call-contract", &result.CallContract{
		Returns: []noderpc.Val{u256(t, 42)},
		GasUsed: 1234,
	})
	call := []string{"alephium-go", "contract", "call", "--config", e.ConfigPath, "-a", greeterPath}

	t.Run("no address", func(t *testing.T) {
		e.RunWithError(t, call...)
	})
	t.Run("no method", func(t *testing.T) {
		e.RunWithError(t, append(call, testContract)...)
	})
	t.Run("unknown method", func(t *testing.T) {
		e.RunWithError(t, append(call, testContract, "farewell")...)
	})
	t.Run("good", func(t *testing.T) {
		e.Run(t, append(call, testContract, "greet")...)
		out := e.Out.String()
		require.Contains(t, out, `"42"`)
		require.Contains(t, out, `"gasUsed": 1234`)

		var req noderpc.CallContract
		reqs := e.Node.Requests(http.MethodPost, "/contracts/call-contract")
		require.NoError(t, reqs[len(reqs)-1].Decode(&req))
		require.Equal(t, testContract, req.Address)
		require.Equal(t, 0, req.MethodIndex)
		require.Empty(t, req.WorldStateBlockHash)
	})
	t.Run("historic", func(t *testing.T) {
		e.Run(t, append(call, "--historic", "bb", testContract, "greet")...)

		var req noderpc.CallContract
		reqs := e.Node.Requests(http.MethodPost, "/contracts/call-contract")
		require.NoError(t, reqs[len(reqs)-1].Decode(&req))
		require.Equal(t, "bb", req.WorldStateBlockHash)
	})
	t.Run("failed", func(t *testing.T) {
		e.Node.Respond(http.MethodPost, "/contracts/call-contract", &result.CallContract{
			Type:  result.CallContractFailed,
			Error: "AssertionFailed",
		})
		e.RunWithError(t, append(call, testContract, "greet")...)
	})
}
