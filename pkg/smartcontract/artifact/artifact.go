/*
Package artifact contains the model of compiled contract and script artifacts
(.ral.json files) along with functions to load and save them.
*/
package artifact

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/alephium-go/pkg/crypto/hash"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
	json "github.com/nspcc-dev/go-ordered-json"
)

// ErrCodeHashMismatch is returned when the artifact code hash doesn't match
// its bytecode.
var ErrCodeHashMismatch = errors.New("code hash mismatch")

type (
	// Constant is a named contract constant.
	Constant struct {
		Name  string      `json:"name"`
		Value noderpc.Val `json:"value"`
	}

	// EnumField is a single enum member.
	EnumField struct {
		Name  string      `json:"name"`
		Value noderpc.Val `json:"value"`
	}

	// Enum is a named set of constants, error codes are usually defined this
	// way.
	Enum struct {
		Name   string      `json:"name"`
		Fields []EnumField `json:"fields"`
	}

	// Contract is a compiled contract artifact.
	Contract struct {
		Version   string            `json:"version"`
		Name      string            `json:"name"`
		Bytecode  string            `json:"bytecode"`
		CodeHash  string            `json:"codeHash"`
		FieldsSig abi.FieldsSig     `json:"fieldsSig"`
		EventsSig []abi.EventSig    `json:"eventsSig"`
		Functions []abi.FunctionSig `json:"functions"`
		Constants []Constant        `json:"constants,omitempty"`
		Enums     []Enum            `json:"enums,omitempty"`
	}

	// Script is a compiled script artifact. Its bytecode is a template with
	// placeholders for fields.
	Script struct {
		Version          string            `json:"version"`
		Name             string            `json:"name"`
		BytecodeTemplate string            `json:"bytecodeTemplate"`
		FieldsSig        abi.FieldsSig     `json:"fieldsSig"`
		Functions        []abi.FunctionSig `json:"functions"`
	}
)

// NewContract creates an artifact from the compilation result.
func NewContract(res *result.CompileContract) *Contract {
	return &Contract{
		Version:   res.Version,
		Name:      res.Name,
		Bytecode:  res.Bytecode,
		CodeHash:  res.CodeHash,
		FieldsSig: res.Fields,
		EventsSig: res.Events,
		Functions: res.Functions,
	}
}

// NewScript creates an artifact from the compilation result.
func NewScript(res *result.CompileScript) *Script {
	return &Script{
		Version:          res.Version,
		Name:             res.Name,
		BytecodeTemplate: res.BytecodeTemplate,
		FieldsSig:        res.Fields,
		Functions:        res.Functions,
	}
}

// CodeHash returns the hex-encoded hash of the given hex bytecode.
func CodeHash(bytecode string) (string, error) {
	b, err := hex.DecodeString(bytecode)
	if err != nil {
		return "", fmt.Errorf("bad bytecode: %w", err)
	}
	return hash.Blake2bHex(b), nil
}

// Validate checks the artifact for consistency, including the code hash.
func (c *Contract) Validate() error {
	if c.Name == "" {
		return errors.New("no contract name")
	}
	h, err := CodeHash(c.Bytecode)
	if err != nil {
		return err
	}
	if h != c.CodeHash {
		return fmt.Errorf("%w: %s expected, artifact has %s", ErrCodeHashMismatch, h, c.CodeHash)
	}
	if err := c.FieldsSig.Validate(); err != nil {
		return fmt.Errorf("fields: %w", err)
	}
	for _, fn := range c.Functions {
		if err := fn.Validate(); err != nil {
			return err
		}
	}
	for _, ev := range c.EventsSig {
		if err := ev.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the artifact for consistency.
func (s *Script) Validate() error {
	if s.Name == "" {
		return errors.New("no script name")
	}
	if s.BytecodeTemplate == "" {
		return errors.New("empty bytecode template")
	}
	if err := s.FieldsSig.Validate(); err != nil {
		return fmt.Errorf("fields: %w", err)
	}
	for _, fn := range s.Functions {
		if err := fn.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Function returns the signature of the function with the given name.
func (c *Contract) Function(name string) (*abi.FunctionSig, int, bool) {
	i := abi.FunctionIndex(c.Functions, name)
	if i < 0 {
		return nil, -1, false
	}
	return &c.Functions[i], i, true
}

// Enum returns the enum with the given name.
func (c *Contract) Enum(name string) (*Enum, bool) {
	for i := range c.Enums {
		if c.Enums[i].Name == name {
			return &c.Enums[i], true
		}
	}
	return nil, false
}

// LoadContract decodes and validates a contract artifact.
func LoadContract(data []byte) (*Contract, error) {
	c := new(Contract)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("bad contract artifact: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadScript decodes and validates a script artifact.
func LoadScript(data []byte) (*Script, error) {
	s := new(Script)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("bad script artifact: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadContractFile loads a contract artifact from the file.
func ReadContractFile(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadContract(data)
}

// ReadScriptFile loads a script artifact from the file.
func ReadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadScript(data)
}

// Marshal returns the indented JSON representation of the artifact with keys
// in declaration order.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile saves the artifact into the file.
func WriteFile(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
