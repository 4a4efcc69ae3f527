/*
Package compiler compiles Ralph sources using the node. It resolves imports,
caches compilation results and converts them into artifacts.
*/
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/alephium-go/pkg/crypto/hash"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
	"go.uber.org/zap"
)

// DefaultCacheSize is the default number of compilation results kept in
// memory.
const DefaultCacheSize = 128

// ArtifactExt is appended to the source file name to get the artifact name.
const ArtifactExt = ".json"

// RPCCompile is a set of node methods needed to compile sources.
type RPCCompile interface {
	CompileContract(ctx context.Context, code string) (*result.CompileContract, error)
	CompileScript(ctx context.Context, code string) (*result.CompileScript, error)
}

// Options contains all the parameters that affect the behaviour of the compiler.
type Options struct {
	// SourceDir is the directory source paths and imports are relative to.
	SourceDir string

	// ArtifactDir is the directory CompileAndSave puts artifacts into.
	ArtifactDir string

	// CacheSize is the number of compilation results to cache,
	// DefaultCacheSize is used if not set.
	CacheSize int

	// Logger is used to report compiler warnings, they're dropped if it's
	// not set.
	Logger *zap.Logger
}

// Compiler compiles sources via the node. It's safe for concurrent use.
type Compiler struct {
	client RPCCompile
	opts   Options
	log    *zap.Logger
	cache  *lru.Cache
}

// New creates a new Compiler.
func New(client RPCCompile, opts Options) *Compiler {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cache, _ := lru.New(opts.CacheSize) // Never errors for positive size.
	return &Compiler{
		client: client,
		opts:   opts,
		log:    log,
		cache:  cache,
	}
}

// Load reads the source file with its imports.
func (c *Compiler) Load(path string) (*Source, error) {
	return LoadSource(c.opts.SourceDir, path)
}

func cacheKey(kind Kind, code string) string {
	return kind.String() + ":" + hash.Blake2bHex([]byte(code))
}

// CompileContractCode compiles contract code that has no imports.
func (c *Compiler) CompileContractCode(ctx context.Context, code string) (*artifact.Contract, error) {
	key := cacheKey(ContractKind, code)
	if v, ok := c.cache.Get(key); ok {
		return artifact.NewContract(v.(*result.CompileContract)), nil
	}
	res, err := c.client.CompileContract(ctx, code)
	if err != nil {
		return nil, err
	}
	c.logWarnings(res.Name, res.Warnings)
	a := artifact.NewContract(res)
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("contract %s: %w", res.Name, err)
	}
	c.cache.Add(key, res)
	return a, nil
}

// CompileScriptCode compiles script code that has no imports.
func (c *Compiler) CompileScriptCode(ctx context.Context, code string) (*artifact.Script, error) {
	key := cacheKey(ScriptKind, code)
	if v, ok := c.cache.Get(key); ok {
		return artifact.NewScript(v.(*result.CompileScript)), nil
	}
	res, err := c.client.CompileScript(ctx, code)
	if err != nil {
		return nil, err
	}
	c.logWarnings(res.Name, res.Warnings)
	a := artifact.NewScript(res)
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", res.Name, err)
	}
	c.cache.Add(key, res)
	return a, nil
}

func (c *Compiler) logWarnings(name string, warnings []string) {
	for _, w := range warnings {
		c.log.Warn("compiler warning", zap.String("name", name), zap.String("warning", w))
	}
}

// CompileContract compiles the contract from the source file.
func (c *Compiler) CompileContract(ctx context.Context, path string) (*artifact.Contract, error) {
	src, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	if src.Kind != ContractKind {
		return nil, fmt.Errorf("%s: %s is not a contract", path, src.Name)
	}
	return c.CompileContractCode(ctx, src.Code)
}

// CompileScript compiles the script from the source file.
func (c *Compiler) CompileScript(ctx context.Context, path string) (*artifact.Script, error) {
	src, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	if src.Kind != ScriptKind {
		return nil, fmt.Errorf("%s: %s is not a script", path, src.Name)
	}
	return c.CompileScriptCode(ctx, src.Code)
}

// CompileAndSave compiles the source file (either a contract or a script) and
// saves the artifact to out. If out is empty, the artifact is saved into
// ArtifactDir under the same relative path as the source with ArtifactExt
// appended. It returns the path of the artifact.
func (c *Compiler) CompileAndSave(ctx context.Context, path string, out string) (string, error) {
	if !strings.HasSuffix(path, SourceExt) {
		return "", fmt.Errorf("%s is not a Ralph file", path)
	}
	src, err := c.Load(path)
	if err != nil {
		return "", err
	}
	var a any
	switch src.Kind {
	case ContractKind:
		a, err = c.CompileContractCode(ctx, src.Code)
	case ScriptKind:
		a, err = c.CompileScriptCode(ctx, src.Code)
	default:
		return "", fmt.Errorf("%s: nothing to compile", path)
	}
	if err != nil {
		return "", fmt.Errorf("error while trying to compile %s: %w", path, err)
	}
	if out == "" {
		out = filepath.Join(c.opts.ArtifactDir, src.Path+ArtifactExt)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", err
	}
	if err := artifact.WriteFile(out, a); err != nil {
		return "", err
	}
	return out, nil
}

// CompileAll compiles and saves every source file in SourceDir. Files that
// only contain interfaces or abstract contracts are skipped.
func (c *Compiler) CompileAll(ctx context.Context) ([]string, error) {
	var (
		paths []string
		errs  []error
	)
	err := filepath.WalkDir(c.opts.SourceDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, SourceExt) {
			return nil
		}
		rel, err := filepath.Rel(c.opts.SourceDir, p)
		if err != nil {
			return err
		}
		src, err := c.Load(rel)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if src.Kind != ContractKind && src.Kind != ScriptKind {
			return nil
		}
		out, err := c.CompileAndSave(ctx, rel, "")
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		paths = append(paths, out)
		return nil
	})
	if err != nil {
		return paths, err
	}
	return paths, errors.Join(errs...)
}
