/*
Package abi describes contract interfaces as the node reports them: field,
function and event signatures along with the Ralph type system.
*/
package abi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Primitive Ralph types.
const (
	BoolType    = "Bool"
	I256Type    = "I256"
	U256Type    = "U256"
	ByteVecType = "ByteVec"
	AddressType = "Address"
	// ArrayType is the type name arrays have in node values.
	ArrayType = "Array"
)

// ErrInvalidType is returned for type strings that can't be parsed.
var ErrInvalidType = errors.New("invalid type")

type (
	// FieldsSig describes contract or script fields.
	FieldsSig struct {
		Names     []string `json:"names"`
		Types     []string `json:"types"`
		IsMutable []bool   `json:"isMutable"`
	}

	// FunctionSig describes a single contract or script function.
	FunctionSig struct {
		Name                 string   `json:"name"`
		UsePreapprovedAssets bool     `json:"usePreapprovedAssets"`
		UseAssetsInContract  bool     `json:"useAssetsInContract"`
		IsPublic             bool     `json:"isPublic"`
		ParamNames           []string `json:"paramNames"`
		ParamTypes           []string `json:"paramTypes"`
		ParamIsMutable       []bool   `json:"paramIsMutable"`
		ReturnTypes          []string `json:"returnTypes"`
	}

	// EventSig describes an event a contract can emit.
	EventSig struct {
		Name       string   `json:"name"`
		FieldNames []string `json:"fieldNames"`
		FieldTypes []string `json:"fieldTypes"`
	}
)

// Validate checks that names and types are consistent.
func (f FieldsSig) Validate() error {
	if len(f.Names) != len(f.Types) {
		return fmt.Errorf("%d field names for %d types", len(f.Names), len(f.Types))
	}
	if len(f.IsMutable) != 0 && len(f.IsMutable) != len(f.Names) {
		return fmt.Errorf("%d mutability flags for %d fields", len(f.IsMutable), len(f.Names))
	}
	return validateNames(f.Names, f.Types)
}

// Validate checks that parameter names and types are consistent.
func (f FunctionSig) Validate() error {
	if len(f.ParamNames) != len(f.ParamTypes) {
		return fmt.Errorf("function %s: %d parameter names for %d types", f.Name, len(f.ParamNames), len(f.ParamTypes))
	}
	if err := validateNames(f.ParamNames, f.ParamTypes); err != nil {
		return fmt.Errorf("function %s: %w", f.Name, err)
	}
	for _, t := range f.ReturnTypes {
		if _, err := ParseType(t); err != nil {
			return fmt.Errorf("function %s: %w", f.Name, err)
		}
	}
	return nil
}

// Validate checks that field names and types are consistent.
func (e EventSig) Validate() error {
	if len(e.FieldNames) != len(e.FieldTypes) {
		return fmt.Errorf("event %s: %d field names for %d types", e.Name, len(e.FieldNames), len(e.FieldTypes))
	}
	if err := validateNames(e.FieldNames, e.FieldTypes); err != nil {
		return fmt.Errorf("event %s: %w", e.Name, err)
	}
	return nil
}

func validateNames(names, types []string) error {
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if n == "" {
			return errors.New("empty name")
		}
		if seen[n] {
			return fmt.Errorf("duplicate name %q", n)
		}
		seen[n] = true
		if _, err := ParseType(types[i]); err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
	}
	return nil
}

// Type is a parsed Ralph type. Arrays are represented by their element type
// and length, nesting is allowed.
type Type struct {
	// Name is the primitive type name, empty for arrays.
	Name string
	// Elem is the element type of an array.
	Elem *Type
	// Len is the array length.
	Len int
}

// ParseType parses a Ralph type string like "U256" or "[[Bool;2];3]".
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
		}
		inner := s[1 : len(s)-1]
		sep := strings.LastIndex(inner, ";")
		if sep < 0 {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
		}
		n, err := strconv.Atoi(strings.TrimSpace(inner[sep+1:]))
		if err != nil || n <= 0 {
			return Type{}, fmt.Errorf("%w: bad array length in %q", ErrInvalidType, s)
		}
		elem, err := ParseType(inner[:sep])
		if err != nil {
			return Type{}, err
		}
		return Type{Elem: &elem, Len: n}, nil
	}
	switch s {
	case BoolType, I256Type, U256Type, ByteVecType, AddressType:
		return Type{Name: s}, nil
	default:
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// MustParseType is the same as ParseType, but panics on error.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsArray returns true for array types.
func (t Type) IsArray() bool {
	return t.Elem != nil
}

// Base returns the primitive type arrays are built from.
func (t Type) Base() string {
	for t.Elem != nil {
		t = *t.Elem
	}
	return t.Name
}

// FlatSize returns the number of primitive values the type occupies when
// flattened.
func (t Type) FlatSize() int {
	if t.Elem == nil {
		return 1
	}
	return t.Len * t.Elem.FlatSize()
}

// String implements fmt.Stringer, it returns the Ralph type string.
func (t Type) String() string {
	if t.Elem == nil {
		return t.Name
	}
	return "[" + t.Elem.String() + ";" + strconv.Itoa(t.Len) + "]"
}

// EventIndex returns the index of the event with the given name or -1.
func EventIndex(events []EventSig, name string) int {
	for i := range events {
		if events[i].Name == name {
			return i
		}
	}
	return -1
}

// FunctionIndex returns the index of the function with the given name or -1.
func FunctionIndex(functions []FunctionSig, name string) int {
	for i := range functions {
		if functions[i].Name == name {
			return i
		}
	}
	return -1
}
