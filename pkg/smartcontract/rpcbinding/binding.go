/*
Package rpcbinding generates Go packages for compiled contracts. A generated
package has typed contract fields, a Factory simulating every contract method
and an Instance calling public methods of the deployed contract, including
multicalls. Events get typed structures with filters, enums and constants
become Go constants. The contract is registered in contract.DefaultRegistry
on package initialization.
*/
package rpcbinding

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/binding"
)

// The set of constants containing parts of RPC binding template. Each block of code
// including template definition and var/type/method definitions contain new line at the
// start and ends with a new line. On adding new block of code to the template, please,
// ensure that this block has new line at the start and in the end of the block.
const (
	eventDefinition = `{{ define "EVENT" }}
// {{.Name}} represents "{{.NameABI}}" event emitted by the contract.
type {{.Name}} struct {
	{{- range .Fields}}
	{{.Name}} {{.Type}}
	{{- end}}
}

// {{.Name}}sFromEvents retrieves a set of all emitted events with "{{.NameABI}}"
// name from the list of decoded events.
func {{.Name}}sFromEvents(events []contract.ContractEvent) ([]*{{.Name}}, error) {
	var res []*{{.Name}}
	for i := range events {
		if events[i].Name != "{{.NameABI}}" {
			continue
		}
		event := new({{.Name}})
		err := event.FromNamedVals(events[i].Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to decode event %d: %w", i, err)
		}
		res = append(res, event)
	}
	return res, nil
}

// FromNamedVals converts decoded event fields into {{.Name}}.
func (e *{{.Name}}) FromNamedVals(vals smartcontract.NamedVals) error {
	{{- if .Fields}}
	var err error
	{{- end}}
	{{- range .Fields}}
	e.{{.Name}}, err = smartcontract.As[{{.Type}}](vals["{{.NameABI}}"])
	if err != nil {
		return fmt.Errorf("field {{.NameABI}}: %w", err)
	}
	{{- end}}
	return nil
}
{{ end }}`

	argsDefinition = `{{ define "ARGS" }}
// {{.Name}}Args are arguments of ` + "`{{.NameABI}}`" + ` method.
type {{.Name}}Args struct {
	{{- range .Args}}
	{{.Name}} {{.Type}}
	{{- end}}
}

// ToNamedVals implements contract.NamedValuer.
func (a {{.Name}}Args) ToNamedVals() smartcontract.NamedVals {
	return smartcontract.NamedVals{
		{{- range .Args}}
		"{{.NameABI}}": a.{{.Name}},
		{{- end}}
	}
}
{{ end }}`

	resultDefinition = `{{ define "RESULT" }}
// {{.Name}}Result contains values returned by ` + "`{{.NameABI}}`" + ` method.
type {{.Name}}Result struct {
	{{- range .Returns}}
	{{.Name}} {{.Type}}
	{{- end}}
}

func decode{{.Name}}Result(vals []noderpc.Val, err error) ({{.Name}}Result, error) {
	var res {{.Name}}Result
	items, err := unwrap.Values(vals, err)
	if err != nil {
		return res, err
	}
	if len(items) != {{len .Returns}} {
		return res, fmt.Errorf("expected {{len .Returns}} values, got %d", len(items))
	}
	{{- range $i, $r := .Returns}}
	res.{{.Name}}, err = smartcontract.As[{{.Type}}](items[{{$i}}])
	if err != nil {
		return res, fmt.Errorf("value {{$i}}: %w", err)
	}
	{{- end}}
	return res, nil
}
{{ end }}`

	testDefinition = `{{ define "TEST" }}
// Test{{.Name}} simulates ` + "`{{.NameABI}}`" + `{{if not .IsPublic}} private{{end}} method.
func (f *Factory) Test{{.Name}}(ctx context.Context, p contract.TypedTestParams[Fields, {{.ArgsType}}]) (*contract.TestResult[{{.ReturnType}}], error) {
	return contract.TestTyped(ctx, f.invoker, Contract, "{{.NameABI}}", p, {{.Decoder}})
}
{{ end }}`

	methodDefinition = `{{ define "METHOD" }}
// {{.Name}} calls ` + "`{{.NameABI}}`" + ` method of the deployed contract.
func (i *Instance) {{.Name}}(ctx context.Context, p contract.TypedCallParams[{{.ArgsType}}]) (*contract.CallResult[{{.ReturnType}}], error) {
	return contract.CallTyped(ctx, i.invoker, Contract, i.Address, "{{.NameABI}}", p, {{.Decoder}})
}
{{ end }}`

	bindingDefinition = `// Code generated by alephium-go contract generate-binding. DO NOT EDIT.

// Package {{.PackageName}} contains RPC wrappers for {{.ContractName}} contract.
package {{.PackageName}}

import (
{{- range $m := .StdImports}}
	"{{ $m }}"
{{- end}}
{{ range $m := .Imports}}
	"{{ $m }}"
{{- end}}
)

// CodeHash is the code hash of {{.ContractName}} contract.
const CodeHash = "{{.CodeHash}}"
{{- if .Constants}}

// Contract constants.
const (
{{- range .Constants}}
	{{.Name}} = {{.Value}}
{{- end}}
)
{{- end}}
{{- range .Enums}}

// {{.Name}} enum values.
const (
{{- range .Fields}}
	{{.Name}} = {{.Value}}
{{- end}}
)
{{- end}}

const artifactJSON = {{.ArtifactJSON}}

// Contract is {{.ContractName}} contract, it's registered in
// contract.DefaultRegistry on package initialization.
var Contract *contract.Contract

func init() {
	Contract = contract.MustRegisterJSON([]byte(artifactJSON))
}

// Invoker is used by Factory and Instance to simulate and call methods.
type Invoker interface {
	contract.Tester
	contract.Caller
	contract.StateReader
}

// Fields are {{.ContractName}} contract fields.
type Fields struct {
	{{- range .Fields}}
	{{.Name}} {{.Type}}
	{{- end}}
}

// State is {{.ContractName}} contract state.
type State = contract.TypedState[Fields]

// ToNamedVals implements contract.NamedValuer.
func (f Fields) ToNamedVals() smartcontract.NamedVals {
	return smartcontract.NamedVals{
		{{- range .Fields}}
		"{{.NameABI}}": f.{{.Name}},
		{{- end}}
	}
}

// FieldsFromNamedVals converts decoded contract fields into Fields.
func FieldsFromNamedVals(vals smartcontract.NamedVals) (Fields, error) {
	var f Fields
	{{- if .Fields}}
	var err error
	{{- end}}
	{{- range .Fields}}
	f.{{.Name}}, err = smartcontract.As[{{.Type}}](vals["{{.NameABI}}"])
	if err != nil {
		return f, fmt.Errorf("field {{.NameABI}}: %w", err)
	}
	{{- end}}
	return f, nil
}
{{- range .Methods}}{{if .Args}}{{template "ARGS" .}}{{end}}{{end}}
{{- range .Methods}}{{if gt (len .Returns) 1}}{{template "RESULT" .}}{{end}}{{end}}
// Factory simulates {{.ContractName}} methods and creates instances of
// the deployed contract.
type Factory struct {
	invoker Invoker
}

// NewFactory creates a Factory using the given Invoker.
func NewFactory(invoker Invoker) *Factory {
	return &Factory{invoker: invoker}
}

// At returns an instance of the contract deployed at addr. It doesn't make
// any requests, the address is not checked.
func (f *Factory) At(addr string) *Instance {
	return &Instance{invoker: f.invoker, Address: addr}
}
{{- range .Methods}}{{template "TEST" .}}{{end}}
// Instance is {{.ContractName}} contract deployed at Address.
type Instance struct {
	invoker Invoker
	Address string
}

// FetchState gets the current state of the contract, it's never cached.
func (i *Instance) FetchState(ctx context.Context) (*State, error) {
	return contract.FetchTypedState(ctx, i.invoker, Contract, i.Address, FieldsFromNamedVals)
}
{{- range .Methods}}{{if .IsPublic}}{{template "METHOD" .}}{{end}}{{end}}
// MultiCallParams selects methods for Multicall, nil fields are not called.
type MultiCallParams struct {
	{{- range .Methods}}{{if .IsPublic}}
	{{.Name}} *contract.TypedCallParams[{{.ArgsType}}]
	{{- end}}{{end}}
}

// MultiCallResults contains results of the methods selected by
// MultiCallParams, fields of the methods not selected are nil.
type MultiCallResults struct {
	{{- range .Methods}}{{if .IsPublic}}
	{{.Name}} *contract.CallResult[{{.ReturnType}}]
	{{- end}}{{end}}
}

{{- if .HasPublic}}

// Multicall calls the selected methods in a single request.
func (i *Instance) Multicall(ctx context.Context, p MultiCallParams) (*MultiCallResults, error) {
	var calls = make(map[string]contract.CallParams)
	{{- range .Methods}}{{if .IsPublic}}
	if p.{{.Name}} != nil {
		calls["{{.NameABI}}"] = p.{{.Name}}.Untyped()
	}
	{{- end}}{{end}}
	raw, err := contract.MultiCallRaw(ctx, i.invoker, Contract, i.Address, calls)
	if err != nil {
		return nil, err
	}
	var res = new(MultiCallResults)
	{{- range .Methods}}{{if .IsPublic}}
	if r, ok := raw["{{.NameABI}}"]; ok {
		res.{{.Name}}, err = contract.DecodeCallResult(Contract, i.Address, "{{.NameABI}}", r, {{.Decoder}})
		if err != nil {
			return nil, err
		}
	}
	{{- end}}{{end}}
	return res, nil
}
{{- end}}
{{- range .Events}}{{template "EVENT" .}}{{end}}`

	srcTmpl = bindingDefinition +
		eventDefinition +
		argsDefinition +
		resultDefinition +
		testDefinition +
		methodDefinition
)

type (
	// ContractTmpl is the data the binding template is executed with.
	ContractTmpl struct {
		PackageName  string
		ContractName string
		CodeHash     string
		ArtifactJSON string
		StdImports   []string
		Imports      []string
		HasPublic    bool
		Constants    []ConstTmpl
		Enums        []EnumTmpl
		Fields       []ParamTmpl
		Methods      []MethodTmpl
		Events       []EventTmpl
	}

	// ParamTmpl is a field, a parameter or a return value.
	ParamTmpl struct {
		Name    string
		NameABI string
		Type    string
	}

	// ConstTmpl is a Go constant.
	ConstTmpl struct {
		Name  string
		Value string
	}

	// EnumTmpl is a set of enum constants.
	EnumTmpl struct {
		Name   string
		Fields []ConstTmpl
	}

	// MethodTmpl is a contract function.
	MethodTmpl struct {
		Name       string
		NameABI    string
		IsPublic   bool
		Args       []ParamTmpl
		ArgsType   string
		Returns    []ParamTmpl
		ReturnType string
		Decoder    string
	}

	// EventTmpl is a contract event.
	EventTmpl struct {
		Name    string
		NameABI string
		Fields  []ParamTmpl
	}
)

// Identifiers generated for every contract, contract-specific ones can't
// reuse them.
var reservedNames = []string{"CodeHash", "Contract", "Invoker", "Fields", "State",
	"FieldsFromNamedVals", "Factory", "NewFactory", "Instance", "MultiCallParams",
	"MultiCallResults"}

// Names of Instance members.
var instanceNames = []string{"Address", "FetchState", "Multicall"}

var defaultImports = []string{
	"context",
	"fmt",
	"math/big",
	"github.com/holiman/uint256",
	"github.com/nspcc-dev/alephium-go/pkg/contract",
	"github.com/nspcc-dev/alephium-go/pkg/noderpc",
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/unwrap",
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract",
}

// NewConfig initializes and returns a new config instance.
func NewConfig() binding.Config {
	return binding.NewConfig()
}

// Generate writes Go file containing contract bindings to the cfg.Output or
// to the cfg.OutputPath file if no Output is set. The artifact is read from
// cfg.ArtifactPath unless cfg.Artifact is provided.
func Generate(cfg binding.Config) error {
	if err := cfg.LoadArtifact(); err != nil {
		return err
	}
	if err := cfg.Artifact.Validate(); err != nil {
		return fmt.Errorf("invalid artifact: %w", err)
	}
	ctr, err := contractToTemplate(cfg)
	if err != nil {
		return err
	}
	if cfg.Output == nil {
		if cfg.OutputPath == "" {
			return errors.New("no output")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), os.ModePerm); err != nil {
			return fmt.Errorf("can't create output directory: %w", err)
		}
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("can't create output file: %w", err)
		}
		defer f.Close()
		cfg.Output = f
	}
	srcTemplate := template.Must(template.New("generate").Parse(srcTmpl))
	return binding.FExecute(srcTemplate, cfg.Output, ctr)
}

func contractToTemplate(cfg binding.Config) (ContractTmpl, error) {
	var (
		a       = cfg.Artifact
		imports = make(map[string]struct{})
		names   = newNameSet(reservedNames...)
		ctr     = ContractTmpl{
			PackageName:  cfg.Package,
			ContractName: a.Name,
			CodeHash:     a.CodeHash,
		}
		err error
	)
	if ctr.PackageName == "" {
		ctr.PackageName = binding.ToPackageName(a.Name)
	}
	for _, imp := range defaultImports {
		imports[imp] = struct{}{}
	}
	data, err := artifact.Marshal(a)
	if err != nil {
		return ctr, err
	}
	ctr.ArtifactJSON = goStringLiteral(strings.TrimSuffix(string(data), "\n"))

	typeOf := func(key string, typ string) (string, bool, error) {
		if over, ok := cfg.Overrides[key]; ok {
			if over.Package != "" {
				imports[over.Package] = struct{}{}
			}
			return over.TypeName, true, nil
		}
		t, err := abi.ParseType(typ)
		if err != nil {
			return "", false, err
		}
		return goType(t), false, nil
	}
	params := func(key func(string) string, abiNames, types []string) ([]ParamTmpl, error) {
		var (
			res  = make([]ParamTmpl, 0, len(abiNames))
			seen = newNameSet()
		)
		for i, n := range abiNames {
			p := ParamTmpl{Name: binding.ToParameterBindingName(n), NameABI: n}
			if err := seen.add(p.Name); err != nil {
				return nil, err
			}
			typ, _, err := typeOf(key(n), types[i])
			if err != nil {
				return nil, err
			}
			p.Type = typ
			res = append(res, p)
		}
		return res, nil
	}

	ctr.Fields, err = params(binding.FieldKey, a.FieldsSig.Names, a.FieldsSig.Types)
	if err != nil {
		return ctr, fmt.Errorf("fields: %w", err)
	}
	for _, c := range a.Constants {
		ct := ConstTmpl{Name: binding.ToPascalCase(c.Name)}
		if ct.Value, err = constValue(c.Value); err != nil {
			return ctr, fmt.Errorf("constant %s: %w", c.Name, err)
		}
		if err := names.add(ct.Name); err != nil {
			return ctr, err
		}
		ctr.Constants = append(ctr.Constants, ct)
	}
	for _, e := range a.Enums {
		et := EnumTmpl{Name: binding.ToPascalCase(e.Name)}
		for _, f := range e.Fields {
			ct := ConstTmpl{Name: et.Name + binding.ToPascalCase(f.Name)}
			if ct.Value, err = constValue(f.Value); err != nil {
				return ctr, fmt.Errorf("enum %s.%s: %w", e.Name, f.Name, err)
			}
			if err := names.add(ct.Name); err != nil {
				return ctr, err
			}
			et.Fields = append(et.Fields, ct)
		}
		ctr.Enums = append(ctr.Enums, et)
	}

	members := newNameSet(instanceNames...)
	for _, fn := range a.Functions {
		m := MethodTmpl{
			Name:     binding.ToPascalCase(fn.Name),
			NameABI:  fn.Name,
			IsPublic: fn.IsPublic,
			ArgsType: "contract.NoArgs",
		}
		if err := members.add(m.Name); err != nil {
			return ctr, fmt.Errorf("method %s: %w", fn.Name, err)
		}
		m.Args, err = params(func(n string) string { return binding.ParamKey(fn.Name, n) }, fn.ParamNames, fn.ParamTypes)
		if err != nil {
			return ctr, fmt.Errorf("method %s: %w", fn.Name, err)
		}
		if len(m.Args) != 0 {
			m.ArgsType = m.Name + "Args"
			if err := names.add(m.ArgsType); err != nil {
				return ctr, err
			}
		}
		switch len(fn.ReturnTypes) {
		case 0:
			m.ReturnType, m.Decoder = "struct{}", "unwrap.Nothing"
		case 1:
			typ, overridden, err := typeOf(binding.ReturnKey(fn.Name), fn.ReturnTypes[0])
			if err != nil {
				return ctr, fmt.Errorf("method %s: %w", fn.Name, err)
			}
			m.ReturnType = typ
			m.Decoder = "unwrap.As[" + typ + "]"
			if !overridden {
				m.Decoder = decoder(abi.MustParseType(fn.ReturnTypes[0]))
			}
		default:
			for i, r := range fn.ReturnTypes {
				t, err := abi.ParseType(r)
				if err != nil {
					return ctr, fmt.Errorf("method %s: %w", fn.Name, err)
				}
				m.Returns = append(m.Returns, ParamTmpl{Name: "Ret" + strconv.Itoa(i), Type: goType(t)})
			}
			m.ReturnType = m.Name + "Result"
			m.Decoder = "decode" + m.Name + "Result"
			if err := names.add(m.ReturnType); err != nil {
				return ctr, err
			}
		}
		ctr.HasPublic = ctr.HasPublic || m.IsPublic
		ctr.Methods = append(ctr.Methods, m)
	}
	for _, e := range a.EventsSig {
		et := EventTmpl{Name: binding.ToEventBindingName(e.Name), NameABI: e.Name}
		if err := names.add(et.Name); err != nil {
			return ctr, err
		}
		et.Fields, err = params(func(n string) string { return binding.EventFieldKey(e.Name, n) }, e.FieldNames, e.FieldTypes)
		if err != nil {
			return ctr, fmt.Errorf("event %s: %w", e.Name, err)
		}
		ctr.Events = append(ctr.Events, et)
	}

	for imp := range imports {
		if strings.Contains(strings.Split(imp, "/")[0], ".") {
			ctr.Imports = append(ctr.Imports, imp)
		} else {
			ctr.StdImports = append(ctr.StdImports, imp)
		}
	}
	sort.Strings(ctr.StdImports)
	sort.Strings(ctr.Imports)
	return ctr, nil
}

type nameSet map[string]struct{}

func newNameSet(names ...string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) add(name string) error {
	if name == "" {
		return errors.New("empty identifier")
	}
	if _, ok := s[name]; ok {
		return fmt.Errorf("duplicate identifier %s", name)
	}
	s[name] = struct{}{}
	return nil
}

func goType(t abi.Type) string {
	if t.IsArray() {
		return "[]" + goType(*t.Elem)
	}
	switch t.Name {
	case abi.BoolType:
		return "bool"
	case abi.I256Type:
		return "*big.Int"
	case abi.U256Type:
		return "*uint256.Int"
	default:
		return "string"
	}
}

func decoder(t abi.Type) string {
	if t.IsArray() {
		return "unwrap.ArrayOf[" + goType(*t.Elem) + "]"
	}
	switch t.Name {
	case abi.BoolType:
		return "unwrap.Bool"
	case abi.I256Type:
		return "unwrap.I256"
	case abi.U256Type:
		return "unwrap.U256"
	case abi.AddressType:
		return "unwrap.Address"
	default:
		return "unwrap.ByteVec"
	}
}

func constValue(v noderpc.Val) (string, error) {
	d, err := smartcontract.FromVal(v)
	if err != nil {
		return "", err
	}
	switch c := d.(type) {
	case bool:
		return strconv.FormatBool(c), nil
	case *big.Int:
		return c.String(), nil
	case *uint256.Int:
		return c.ToBig().String(), nil
	case string:
		return strconv.Quote(c), nil
	}
	return "", fmt.Errorf("unsupported constant type %s", v.Type)
}

func goStringLiteral(s string) string {
	if strings.ContainsRune(s, '`') {
		return strconv.Quote(s)
	}
	return "`" + s + "`"
}
