package alphtest

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/stretchr/testify/require"
)

// Event is an expected contract event. Numeric field values can be given
// as any Go integers.
type Event struct {
	Name   string
	Fields smartcontract.NamedVals
}

// CheckEvents sorts a copy of events by name and checks them against the
// expected ones (which must be sorted by name as well).
func CheckEvents(t testing.TB, events []contract.ContractEvent, expected ...Event) {
	sorted := make([]contract.ContractEvent, len(events))
	copy(sorted, events)
	contract.SortEventsByName(sorted)

	require.Equal(t, len(expected), len(sorted), "unexpected number of events")
	for i := range expected {
		require.Equal(t, expected[i].Name, sorted[i].Name, "event %d", i)
		CheckValues(t, expected[i].Fields, sorted[i].Fields)
	}
}

// CheckValues checks that actual has the same keys as expected and equal
// values. Integers are compared by value regardless of their Go type.
func CheckValues(t testing.TB, expected smartcontract.NamedVals, actual smartcontract.NamedVals) {
	require.Equal(t, len(expected), len(actual), "unexpected number of values")
	for k, v := range expected {
		a, ok := actual[k]
		require.True(t, ok, "missing %s", k)
		require.Equal(t, Normalize(v), Normalize(a), "value %s", k)
	}
}

// Normalize converts integers of all types into their decimal string form,
// byte slices into hex, other slices and arrays are converted into []any
// with normalized elements.
func Normalize(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case *uint256.Int:
		return v.ToBig().String()
	case *big.Int:
		return v.String()
	case string, bool:
		return v
	case []byte:
		return hex.EncodeToString(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprint(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprint(rv.Uint())
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = Normalize(rv.Index(i).Interface())
		}
		return res
	}
	return v
}
