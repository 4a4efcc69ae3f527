/*
Package cmdargs parses contract fields and method arguments given on the
command line.
*/
package cmdargs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
	"github.com/urfave/cli"
)

const (
	// ArrayStartSeparator marks the start of array cli arg.
	ArrayStartSeparator = "["
	// ArrayEndSeparator marks the end of array cli arg.
	ArrayEndSeparator = "]"
	// ArrayElementSeparator separates array elements.
	ArrayElementSeparator = ","
)

// ParamsParsingDoc is a documentation for parameters parsing.
const ParamsParsingDoc = `   Fields and arguments are given as 'name=value' pairs, the value is
   converted according to the Ralph type of the field or the parameter:
    * 'Bool' values are 'true' and 'false'.
    * 'I256' and 'U256' values are decimal integers.
    * 'ByteVec' values are hex-encoded strings.
    * 'Address' values are base58 addresses.
    * arrays are comma-separated elements inside square brackets, nested
      arrays are supported, e.g. 'array=[2,1]' or 'matrix=[[1,2],[3,4]]'.

   Examples:
    * 'result=0' sets a U256 field
    * 'subContractId=0f8e...' sets a ByteVec field
`

// ErrInvalidArgument is returned for malformed arguments.
var ErrInvalidArgument = errors.New("invalid argument")

// EnsureNone returns an error if there are any positional arguments present.
// It can be used to check for them in commands that don't accept arguments.
func EnsureNone(ctx *cli.Context) *cli.ExitError {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	return nil
}

// ParseNamedVals parses 'name=value' arguments into values of the given
// names and types. Every name must be given exactly once.
func ParseNamedVals(args []string, names []string, types []string) (smartcontract.NamedVals, error) {
	typeOf := make(map[string]string, len(names))
	for i := range names {
		typeOf[names[i]] = types[i]
	}
	res := make(smartcontract.NamedVals, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q is not a name=value pair", ErrInvalidArgument, arg)
		}
		typ, ok := typeOf[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown name %q", ErrInvalidArgument, name)
		}
		if _, ok := res[name]; ok {
			return nil, fmt.Errorf("%w: %q is given twice", ErrInvalidArgument, name)
		}
		t, err := abi.ParseType(typ)
		if err != nil {
			return nil, err
		}
		v, err := ParseValue(t, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		res[name] = v
	}
	for _, n := range names {
		if _, ok := res[n]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidArgument, n)
		}
	}
	return res, nil
}

// ParseValue parses a single value of type t. Numbers and byte vectors stay
// strings, they're checked when converted to node values.
func ParseValue(t abi.Type, s string) (any, error) {
	s = strings.TrimSpace(s)
	if t.IsArray() {
		elems, err := splitArray(s)
		if err != nil {
			return nil, err
		}
		if len(elems) != t.Len {
			return nil, fmt.Errorf("%w: expected %d elements for %s, got %d", ErrInvalidArgument, t.Len, t, len(elems))
		}
		res := make([]any, len(elems))
		for i := range elems {
			res[i], err = ParseValue(*t.Elem, elems[i])
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return res, nil
	}
	if t.Name == abi.BoolType {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a Bool", ErrInvalidArgument, s)
		}
		return b, nil
	}
	return s, nil
}

// splitArray splits '[a,b,[c,d]]' into top-level elements.
func splitArray(s string) ([]string, error) {
	if !strings.HasPrefix(s, ArrayStartSeparator) || !strings.HasSuffix(s, ArrayEndSeparator) {
		return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidArgument, s)
	}
	inner := s[1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	var (
		res   []string
		depth int
		start int
	)
	for i, c := range inner {
		switch string(c) {
		case ArrayStartSeparator:
			depth++
		case ArrayEndSeparator:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidArgument, s)
			}
		case ArrayElementSeparator:
			if depth == 0 {
				res = append(res, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidArgument, s)
	}
	return append(res, strings.TrimSpace(inner[start:])), nil
}
