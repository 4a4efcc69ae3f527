package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
	"github.com/stretchr/testify/require"
)

const artifactsDir = "../../../artifacts"

func TestLoadContracts(t *testing.T) {
	for _, name := range []string{"add.ral.json", "sub.ral.json", "greeter.ral.json", "nft/nft_collection_test.ral.json", "nft/nft_test.ral.json"} {
		c, err := ReadContractFile(filepath.Join(artifactsDir, name))
		require.NoError(t, err, name)
		require.NotEmpty(t, c.Functions)
	}

	c, err := ReadContractFile(filepath.Join(artifactsDir, "add.ral.json"))
	require.NoError(t, err)
	require.Equal(t, "Add", c.Name)
	require.Equal(t, []string{"subContractId", "result"}, c.FieldsSig.Names)
	fn, idx, ok := c.Function("addPrivate")
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.False(t, fn.IsPublic)
	_, _, ok = c.Function("mul")
	require.False(t, ok)

	nft, err := ReadContractFile(filepath.Join(artifactsDir, "nft/nft_collection_test.ral.json"))
	require.NoError(t, err)
	e, ok := nft.Enum("ErrorCodes")
	require.True(t, ok)
	require.Len(t, e.Fields, 2)
	_, ok = nft.Enum("Other")
	require.False(t, ok)
}

func TestLoadScripts(t *testing.T) {
	for _, name := range []string{"main.ral.json", "greeter_main.ral.json"} {
		s, err := ReadScriptFile(filepath.Join(artifactsDir, name))
		require.NoError(t, err, name)
		require.Contains(t, s.BytecodeTemplate, "{0}")
	}

	_, err := LoadScript([]byte(`{"name": "S", "bytecodeTemplate": ""}`))
	require.Error(t, err)
	_, err = ReadScriptFile(filepath.Join(artifactsDir, "missing.ral.json"))
	require.Error(t, err)
}

func TestCodeHashMismatch(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(artifactsDir, "greeter.ral.json"))
	require.NoError(t, err)
	c, err := LoadContract(data)
	require.NoError(t, err)

	c.Bytecode += "00"
	raw, err := Marshal(c)
	require.NoError(t, err)
	_, err = LoadContract(raw)
	require.ErrorIs(t, err, ErrCodeHashMismatch)

	_, err = LoadContract([]byte(`{"name": "X", "bytecode": 1}`))
	require.Error(t, err)
}

func TestLoadNewerCompilerKeys(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(artifactsDir, "greeter.ral.json"))
	require.NoError(t, err)
	c, err := LoadContract(data)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	obj["bytecodeDebugPatch"] = ""
	obj["codeHashDebug"] = c.CodeHash
	obj["structs"] = []any{}
	raw, err := json.Marshal(obj)
	require.NoError(t, err)

	loaded, err := LoadContract(raw)
	require.NoError(t, err)
	require.Equal(t, c.Name, loaded.Name)
	require.Equal(t, c.CodeHash, loaded.CodeHash)
	require.Equal(t, c.Functions, loaded.Functions)

	data, err = os.ReadFile(filepath.Join(artifactsDir, "main.ral.json"))
	require.NoError(t, err)
	obj = nil
	require.NoError(t, json.Unmarshal(data, &obj))
	obj["bytecodeDebugPatch"] = ""
	raw, err = json.Marshal(obj)
	require.NoError(t, err)
	s, err := LoadScript(raw)
	require.NoError(t, err)
	require.Equal(t, "Main", s.Name)
}

func TestSaveRoundtrip(t *testing.T) {
	res := &result.CompileContract{
		Version:  "v1.7.0",
		Name:     "Greeter",
		Bytecode: "01010c0100000001020000a00002",
		Fields:   abi.FieldsSig{Names: []string{"btcPrice"}, Types: []string{"U256"}, IsMutable: []bool{false}},
		Functions: []abi.FunctionSig{{
			Name:        "greet",
			IsPublic:    true,
			ReturnTypes: []string{"U256"},
		}},
	}
	var err error
	res.CodeHash, err = CodeHash(res.Bytecode)
	require.NoError(t, err)

	c := NewContract(res)
	require.NoError(t, c.Validate())

	path := filepath.Join(t.TempDir(), "greeter.ral.json")
	require.NoError(t, WriteFile(path, c))
	loaded, err := ReadContractFile(path)
	require.NoError(t, err)
	require.Equal(t, c.CodeHash, loaded.CodeHash)
	require.Equal(t, c.FieldsSig, loaded.FieldsSig)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Keys follow the declaration order.
	require.Regexp(t, `(?s)"version".*"name".*"bytecode".*"codeHash".*"fieldsSig"`, string(data))

	s := NewScript(&result.CompileScript{Name: "Main", BytecodeTemplate: "00{0}", Fields: abi.FieldsSig{Names: []string{"a"}, Types: []string{"Bool"}}})
	require.NoError(t, s.Validate())

	_, err = CodeHash("zz")
	require.Error(t, err)
}
