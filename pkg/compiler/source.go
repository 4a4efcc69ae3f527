package compiler

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SourceExt is the extension of Ralph source files.
const SourceExt = ".ral"

// Kind is the kind of a top-level Ralph declaration.
type Kind int

// Declaration kinds.
const (
	UnknownKind Kind = iota
	ContractKind
	ScriptKind
	InterfaceKind
	AbstractKind
)

var (
	importRegex = regexp.MustCompile(`^\s*import\s+"([^"]+)"\s*$`)
	declRegex   = regexp.MustCompile(`(?m)^\s*(Abstract\s+Contract|Contract|TxScript|Interface)\s+([A-Za-z][A-Za-z0-9]*)`)

	// ErrImportCycle is returned when sources import each other.
	ErrImportCycle = errors.New("import cycle")
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case ContractKind:
		return "Contract"
	case ScriptKind:
		return "TxScript"
	case InterfaceKind:
		return "Interface"
	case AbstractKind:
		return "Abstract Contract"
	default:
		return "Unknown"
	}
}

// Source is a Ralph source file with all of its imports inlined.
type Source struct {
	// Path is the path of the main file relative to the source directory.
	Path string
	// Code is the full code to be compiled: imported files go first, then
	// the file itself without import lines.
	Code string
	// Name is the name of the first declaration of the main file.
	Name string
	// Kind is the kind of the first declaration of the main file.
	Kind Kind
	// Imports lists inlined files in the order of inclusion.
	Imports []string
}

type loader struct {
	root     string
	done     map[string]bool
	loading  map[string]bool
	imports  []string
	code     strings.Builder
	mainCode string
}

// LoadSource reads the file at path (relative to root) and resolves its
// import "x.ral" statements recursively. Every file is included once, paths
// of imports are relative to root as well.
func LoadSource(root string, path string) (*Source, error) {
	l := &loader{
		root:    root,
		done:    make(map[string]bool),
		loading: make(map[string]bool),
	}
	path = filepath.Clean(path)
	own, err := l.load(path, true)
	if err != nil {
		return nil, err
	}
	l.code.WriteString(own)
	src := &Source{
		Path:    path,
		Code:    l.code.String(),
		Imports: l.imports,
	}
	if m := declRegex.FindStringSubmatch(own); m != nil {
		src.Name = m[2]
		src.Kind = kindOf(m[1])
	}
	return src, nil
}

func kindOf(decl string) Kind {
	switch {
	case strings.HasPrefix(decl, "Abstract"):
		return AbstractKind
	case decl == "Contract":
		return ContractKind
	case decl == "TxScript":
		return ScriptKind
	case decl == "Interface":
		return InterfaceKind
	default:
		return UnknownKind
	}
}

// load returns the code of path without import lines, imported files are
// appended to l.code.
func (l *loader) load(path string, main bool) (string, error) {
	if l.loading[path] {
		return "", fmt.Errorf("%w: %s", ErrImportCycle, path)
	}
	l.loading[path] = true
	defer delete(l.loading, path)

	f, err := os.Open(filepath.Join(l.root, path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var (
		own strings.Builder
		sc  = bufio.NewScanner(f)
	)
	for sc.Scan() {
		line := sc.Text()
		m := importRegex.FindStringSubmatch(line)
		if m == nil {
			own.WriteString(line)
			own.WriteByte('\n')
			continue
		}
		imp := filepath.Clean(m[1])
		if !strings.HasSuffix(imp, SourceExt) {
			return "", fmt.Errorf("%s: bad import %q", path, m[1])
		}
		if l.done[imp] {
			continue
		}
		code, err := l.load(imp, false)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		l.done[imp] = true
		l.imports = append(l.imports, imp)
		l.code.WriteString(code)
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return own.String(), nil
}
