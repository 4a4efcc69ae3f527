package binding

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Override replaces the Go type generated for a contract field, a method
// parameter or a method return value. Keys of Config.Overrides are built
// with FieldKey, ParamKey, ReturnKey and EventFieldKey. The type must have
// string underlying type for ByteVec and Address values and bool for Bool
// values, arrays of such values are overridden with slice types like
// []uri.URI.
type Override struct {
	// Package contains a fully-qualified package name, it's empty for
	// predeclared types.
	Package string
	// TypeName contains type name together with a package alias.
	TypeName string
}

// FieldKey returns the override key for the contract field.
func FieldKey(name string) string {
	return "fields." + name
}

// ParamKey returns the override key for the method parameter.
func ParamKey(method, param string) string {
	return method + "." + param
}

// ReturnKey returns the override key for the method return value.
func ReturnKey(method string) string {
	return method
}

// EventFieldKey returns the override key for the event field.
func EventFieldKey(event, field string) string {
	return "events." + event + "." + field
}

// NewOverrideFromString parses a fully-qualified type name like
// "github.com/some/uri.URI" or "[][]github.com/some/uri.URI".
func NewOverrideFromString(s string) Override {
	var (
		prefix string
		name   = s
	)
	for strings.HasPrefix(name, "[]") {
		prefix += "[]"
		name = name[2:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot == -1 {
		return Override{TypeName: s}
	}
	alias := name[:dot]
	if slash := strings.LastIndexByte(alias, '/'); slash != -1 {
		alias = alias[slash+1:]
	}
	return Override{
		Package:  name[:dot],
		TypeName: prefix + alias + name[dot:],
	}
}

// String returns the fully-qualified form of the override accepted by
// NewOverrideFromString.
func (o Override) String() string {
	if o.Package == "" {
		return o.TypeName
	}
	elem := strings.TrimLeft(o.TypeName, "[]")
	prefix := o.TypeName[:len(o.TypeName)-len(elem)]
	return prefix + o.Package + elem[strings.IndexByte(elem, '.'):]
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (o *Override) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*o = NewOverrideFromString(s)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (o Override) MarshalYAML() (any, error) {
	return o.String(), nil
}
