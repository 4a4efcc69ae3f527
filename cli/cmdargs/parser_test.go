package cmdargs

import (
	"flag"
	"testing"

	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestParseNamedVals(t *testing.T) {
	var (
		names = []string{"subContractId", "result", "array", "flag"}
		types = []string{"ByteVec", "U256", "[U256;2]", "Bool"}
	)
	vals, err := ParseNamedVals([]string{"subContractId=00ff", "result=0", "array=[2, 1]", "flag=true"}, names, types)
	require.NoError(t, err)
	require.Equal(t, smartcontract.NamedVals{
		"subContractId": "00ff",
		"result":        "0",
		"array":         []any{"2", "1"},
		"flag":          true,
	}, vals)

	encoded, err := smartcontract.ToVals(names, types, vals)
	require.NoError(t, err)
	require.Len(t, encoded, 4)

	for name, args := range map[string][]string{
		"no value":     {"subContractId"},
		"unknown":      {"unknown=1"},
		"twice":        {"result=1", "result=2"},
		"missing":      {"result=1"},
		"bad bool":     {"subContractId=00", "result=0", "array=[1,2]", "flag=maybe"},
		"short array":  {"subContractId=00", "result=0", "array=[1]", "flag=true"},
		"not an array": {"subContractId=00", "result=0", "array=1", "flag=true"},
		"empty name":   {"=1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseNamedVals(args, names, types)
			require.Error(t, err)
		})
	}
}

func TestParseValueNested(t *testing.T) {
	v, err := ParseValue(abi.MustParseType("[[U256;2];2]"), "[[1,2],[3, 4]]")
	require.NoError(t, err)
	require.Equal(t, []any{[]any{"1", "2"}, []any{"3", "4"}}, v)

	_, err = ParseValue(abi.MustParseType("[[U256;2];2]"), "[[1,2],[3,4]")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseValue(abi.MustParseType("[U256;2]"), "[1,2]]")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnsureNone(t *testing.T) {
	set := flag.NewFlagSet("flagSet", flag.ExitOnError)
	ctx := cli.NewContext(cli.NewApp(), set, nil)
	require.Nil(t, EnsureNone(ctx))

	set = flag.NewFlagSet("flagSet", flag.ExitOnError)
	require.NoError(t, set.Parse([]string{"something"}))
	ctx = cli.NewContext(cli.NewApp(), set, nil)
	require.NotNil(t, EnsureNone(ctx))
}
