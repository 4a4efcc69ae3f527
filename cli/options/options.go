/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nspcc-dev/alephium-go/cli/input"
	"github.com/nspcc-dev/alephium-go/pkg/config"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/alephium-go/pkg/services/metrics"
	"github.com/nspcc-dev/alephium-go/pkg/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultTimeout is the default timeout used for RPC requests.
	DefaultTimeout = 10 * time.Second
	// DefaultAwaitableTimeout is the default timeout used for RPC requests that
	// require transaction awaiting.
	DefaultAwaitableTimeout = 2 * time.Minute
)

// NodeFlag is a long flag name for the node endpoint. It can be used to
// check for flag presence in the context.
const NodeFlag = "node"

// Config is a flag for commands that use project configuration.
var Config = cli.StringFlag{
	Name:  "config, c",
	Usage: "path to the project configuration file (" + config.DefaultConfigPath + " is used if present)",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Node is a set of flags used for node connections (endpoint and timeout).
var Node = []cli.Flag{
	cli.StringFlag{
		Name:  NodeFlag + ", n",
		Usage: "node REST endpoint (overrides configuration)",
	},
	cli.DurationFlag{
		Name:  "timeout, s",
		Value: DefaultTimeout,
		Usage: "Timeout for the operation",
	},
}

// Metrics is a flag enabling prometheus metrics exposition for the
// duration of the command.
var Metrics = cli.StringFlag{
	Name:  "metrics",
	Usage: "expose prometheus metrics at the given address (host:port) while running",
}

// Common is a set of flags shared by all commands talking to the node.
var Common = append([]cli.Flag{Config, Debug, Metrics}, Node...)

// Deployer is a set of flags used to choose the signer.
var Deployer = []cli.Flag{
	cli.StringFlag{
		Name:  "wallet, w",
		Usage: "node wallet to sign transactions with (overrides configuration)",
	},
	cli.BoolFlag{
		Name:  "private-key",
		Usage: "ask for the hex-encoded private key to sign transactions with",
	},
}

var (
	errNoSigner       = errors.New("no signer is configured, use '--wallet', '--private-key' or the Deployer configuration section")
	errConflictSigner = errors.New("--wallet flag conflicts with --private-key flag")
)

// GetTimeoutContext returns a context.Context with the default or a user-set timeout.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	dur := ctx.Duration("timeout")
	if dur == 0 {
		dur = DefaultTimeout
	}
	if !ctx.IsSet("timeout") && ctx.Bool("await") {
		dur = DefaultAwaitableTimeout
	}
	return context.WithTimeout(context.Background(), dur)
}

// GetConfigFromContext loads the configuration file given with --config or
// the default one if it exists, defaults are used otherwise. The node
// endpoint is overridden with the flag value.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg = config.Default()
		err error
	)
	path := ctx.String("config")
	if path == "" {
		if _, statErr := os.Stat(config.DefaultConfigPath); statErr == nil {
			path = config.DefaultConfigPath
		}
	}
	if path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	if node := ctx.String(NodeFlag); node != "" {
		cfg.NodeURL = node
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	if ctx.IsSet("timeout") {
		cfg.RequestTimeout = ctx.Duration("timeout")
	}
	return cfg, nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.Config) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil
	cc.OutputPaths = []string{"stderr"}

	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}

// Env is what commands need to talk to the node: configuration, logger,
// client and the metrics services started for the command.
type Env struct {
	Config config.Config
	Log    *zap.Logger
	Client *rpcclient.Client

	services []*metrics.Service
}

// NewEnv loads the configuration, creates the logger and an initialized
// client. Metrics services are started if configured or requested with
// --metrics. Env must be closed after use.
func NewEnv(gctx context.Context, ctx *cli.Context) (*Env, cli.ExitCoder) {
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	log, _, err := HandleLoggingParams(ctx.Bool("debug"), cfg)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	if addr := ctx.String("metrics"); addr != "" {
		cfg.Prometheus = config.BasicService{Enabled: true, Address: addr}
	}
	e := &Env{Config: cfg, Log: log}

	var reg *prometheus.Registry
	if cfg.Prometheus.Enabled {
		reg = prometheus.NewRegistry()
		e.services = append(e.services, metrics.NewPrometheusService(cfg.Prometheus, reg, log))
	}
	if cfg.Pprof.Enabled {
		e.services = append(e.services, metrics.NewPprofService(cfg.Pprof, log))
	}
	for _, s := range e.services {
		s.Start()
	}

	opts := rpcclient.Options{
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log,
	}
	if reg != nil {
		opts.Metrics = reg
	}
	c, err := rpcclient.New(gctx, cfg.NodeURL, opts)
	if err != nil {
		e.Close()
		return nil, cli.NewExitError(err, 1)
	}
	e.Client = c
	if err := c.Init(gctx); err != nil {
		e.Close()
		return nil, cli.NewExitError(err, 1)
	}
	return e, nil
}

// Close stops metrics services and releases the client.
func (e *Env) Close() {
	if e.Client != nil {
		e.Client.Close()
	}
	for _, s := range e.services {
		s.ShutDown()
	}
	_ = e.Log.Sync()
}

// GetSigner returns the signer chosen by flags or the configuration. Node
// wallets are unlocked, missing passwords and private keys are asked for.
func GetSigner(gctx context.Context, ctx *cli.Context, e *Env) (wallet.Signer, error) {
	var (
		d       = e.Config.Deployer
		name    = ctx.String("wallet")
		askKey  = ctx.Bool("private-key")
		keyText = d.PrivateKey
	)
	if name != "" && askKey {
		return nil, errConflictSigner
	}
	if name != "" || askKey {
		keyText = ""
		if name != d.WalletName {
			d = config.Deployer{WalletName: name}
		}
	}
	switch {
	case askKey || keyText != "":
		if keyText == "" {
			var err error
			keyText, err = input.ReadPassword("Enter private key > ")
			if err != nil {
				return nil, fmt.Errorf("error reading private key: %w", err)
			}
		}
		return wallet.NewPrivateKeyWalletFromHex(keyText, e.Client.Groups())
	case d.WalletName != "":
		pass := d.WalletPassword
		if pass == "" {
			var err error
			pass, err = input.ReadPassword(fmt.Sprintf("Enter %s wallet password > ", d.WalletName))
			if err != nil {
				return nil, fmt.Errorf("error reading password: %w", err)
			}
		}
		w := wallet.NewNodeWallet(e.Client, d.WalletName, pass)
		if err := w.Unlock(gctx); err != nil {
			return nil, fmt.Errorf("failed to unlock %s: %w", d.WalletName, err)
		}
		return w, nil
	}
	return nil, errNoSigner
}

// GetActor creates an Actor for the signer chosen by GetSigner.
func GetActor(gctx context.Context, ctx *cli.Context, e *Env) (*actor.Actor, cli.ExitCoder) {
	signer, err := GetSigner(gctx, ctx, e)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	a, err := actor.New(gctx, e.Client, signer)
	if err != nil {
		return nil, cli.NewExitError(fmt.Errorf("failed to create Actor: %w", err), 1)
	}
	return a, nil
}
