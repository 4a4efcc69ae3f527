package smartcontract

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/stretchr/testify/require"
)

func TestNamedObject(t *testing.T) {
	vals := smartcontract.NamedVals{
		"z":     true,
		"b":     uint256.NewInt(1 << 40),
		"a":     big.NewInt(-3),
		"extra": "00ff",
	}
	obj := namedObject(vals, []string{"z", "b", "a", "missing"})
	require.Equal(t, json.OrderedObject{
		{Key: "z", Value: true},
		{Key: "b", Value: "1099511627776"},
		{Key: "a", Value: "-3"},
		{Key: "extra", Value: "00ff"},
	}, obj)
}

func TestPlainValue(t *testing.T) {
	require.Equal(t, []any{"1", []any{"2", "-1"}, "ab"},
		plainValue([]any{uint256.NewInt(1), []any{uint256.NewInt(2), big.NewInt(-1)}, "ab"}))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, json.OrderedObject{
		{Key: "fields", Value: namedObject(smartcontract.NamedVals{"x": uint256.NewInt(5)}, nil)},
		{Key: "asset", Value: assetObject(noderpc.Asset{AttoAlphAmount: "10"})},
	}))
	out := buf.String()
	require.Contains(t, out, `"x": "5"`)
	require.Contains(t, out, `"attoAlphAmount": "10"`)
	require.Less(t, strings.Index(out, `"fields"`), strings.Index(out, `"asset"`))
}
