/*
Package binding contains the parts of the contract binding generator that
don't depend on the kind of binding produced: configuration, type overrides,
identifier conversion and code formatting. See the rpcbinding package for
the generator itself.
*/
package binding

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode"

	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"
)

// Config contains parameter for the generated binding.
type Config struct {
	// Package is the name of the generated package, it's derived from the
	// contract name if not set.
	Package string `yaml:"package,omitempty"`
	// ArtifactPath is the path to the compiled contract artifact, it's used
	// when Artifact is nil.
	ArtifactPath string `yaml:"artifact,omitempty"`
	// OutputPath is the file the binding is written to when no Output is
	// provided.
	OutputPath string              `yaml:"output,omitempty"`
	Overrides  map[string]Override `yaml:"overrides,omitempty"`

	Artifact *artifact.Contract `yaml:"-"`
	Output   io.Writer          `yaml:"-"`
}

// NewConfig initializes and returns a new config instance.
func NewConfig() Config {
	return Config{
		Overrides: make(map[string]Override),
	}
}

// LoadArtifact reads the artifact from ArtifactPath unless it's already set.
func (c *Config) LoadArtifact() error {
	if c.Artifact != nil {
		return nil
	}
	if c.ArtifactPath == "" {
		return fmt.Errorf("no artifact path")
	}
	a, err := artifact.ReadContractFile(c.ArtifactPath)
	if err != nil {
		return err
	}
	c.Artifact = a
	return nil
}

// FExecute tries to execute given template and format it.
func FExecute(tmplt *template.Template, out io.Writer, data any) error {
	var buf bytes.Buffer
	if err := tmplt.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	res, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("failed to format generated code: %w", err)
	}
	_, err = out.Write(res)
	return err
}

// ToPascalCase converts a Ralph identifier into an exported Go one. Any
// character that's not a letter or a digit is treated as a word separator.
func ToPascalCase(s string) string {
	var (
		res    strings.Builder
		caser  = cases.Title(language.Und, cases.NoLower)
		spaced = strings.Map(func(c rune) rune {
			if unicode.IsLetter(c) || unicode.IsDigit(c) {
				return c
			}
			return ' '
		}, s)
	)
	for _, w := range strings.Fields(spaced) {
		res.WriteString(caser.String(w))
	}
	return res.String()
}

// ToPackageName converts a contract name into a Go package name.
func ToPackageName(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return unicode.ToLower(c)
		}
		return -1
	}, s)
}

// ToEventBindingName converts event name specified in the contract artifact
// to a valid go exported event structure name.
func ToEventBindingName(eventName string) string {
	return ToPascalCase(eventName) + "Event"
}

// ToParameterBindingName converts parameter name specified in the contract
// artifact to a valid go structure's exported field name.
func ToParameterBindingName(paramName string) string {
	return ToPascalCase(paramName)
}
