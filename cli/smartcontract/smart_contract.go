package smartcontract

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/alephium-go/cli/cmdargs"
	"github.com/nspcc-dev/alephium-go/cli/input"
	"github.com/nspcc-dev/alephium-go/cli/options"
	"github.com/nspcc-dev/alephium-go/pkg/compiler"
	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/urfave/cli"
)

var (
	errNoInput      = errors.New("no input file was found, specify an input file as the first argument or use --all")
	errNoArtifact   = errors.New("no artifact was provided, specify it with the '--artifact' or '-a' flag")
	errNoAddress    = errors.New("no contract address was provided, specify it as the first argument")
	errNoMethod     = errors.New("no method was provided, specify it as the second argument")
	errTxIDMismatch = errors.New("node accepted a transaction with unexpected id")
)

var artifactFlag = cli.StringFlag{
	Name:  "artifact, a",
	Usage: "compiled contract artifact (*.ral.json)",
}

// NewCommands returns 'contract' command.
func NewCommands() []cli.Command {
	compileFlags := append([]cli.Flag{
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output artifact path (the artifact directory is used by default)",
		},
		cli.BoolFlag{
			Name:  "all",
			Usage: "compile all sources of the source directory",
		},
		cli.StringFlag{
			Name:  "source-dir",
			Usage: "contract source directory (overrides configuration)",
		},
		cli.StringFlag{
			Name:  "artifact-dir",
			Usage: "artifact directory (overrides configuration)",
		},
	}, options.Common...)
	deployFlags := append([]cli.Flag{
		artifactFlag,
		cli.StringFlag{
			Name:  "alph",
			Usage: "initial ALPH amount of the contract (in attoALPH), node minimum if not set",
		},
		cli.StringFlag{
			Name:  "issue-token",
			Usage: "amount of contract tokens to issue",
		},
		cli.IntFlag{
			Name:  "gas",
			Usage: "gas amount, estimated by the node if not set",
		},
		cli.StringFlag{
			Name:  "gas-price",
			Usage: "gas price (in attoALPH), node default if not set",
		},
		cli.BoolFlag{
			Name:  "await",
			Usage: "wait for the transaction to be confirmed",
		},
		cli.BoolFlag{
			Name:  "force",
			Usage: "do not ask for a confirmation",
		},
	}, options.Common...)
	deployFlags = append(deployFlags, options.Deployer...)
	stateFlags := append([]cli.Flag{artifactFlag}, options.Common...)
	callFlags := append([]cli.Flag{
		artifactFlag,
		cli.StringFlag{
			Name:  "historic",
			Usage: "use the world state of the given block hash",
		},
	}, options.Common...)
	return []cli.Command{{
		Name:  "contract",
		Usage: "compile - generate bindings - deploy - inspect contracts",
		Subcommands: []cli.Command{
			{
				Name:      "compile",
				Usage:     "compile a contract or a script with the node",
				UsageText: "alephium-go contract compile [--all] [-o output.ral.json] [path.ral]",
				Description: `Compiles the source (relative to the source directory) with all of its
   imports and saves the artifact. With --all every source of the source
   directory is compiled. Paths of saved artifacts are printed.
`,
				Action: contractCompile,
				Flags:  compileFlags,
			},
			generateBindingCmd,
			{
				Name:      "deploy",
				Usage:     "deploy a compiled contract",
				UsageText: "alephium-go contract deploy -a contract.ral.json [--await] [--force] [field=value ...]",
				Description: `Builds, signs and submits the contract deployment transaction. Initial
   fields of the contract are given as arguments.

` + cmdargs.ParamsParsingDoc,
				Action: contractDeploy,
				Flags:  deployFlags,
			},
			{
				Name:      "state",
				Usage:     "print the state of a deployed contract",
				UsageText: "alephium-go contract state -a contract.ral.json <address>",
				Action:    contractState,
				Flags:     stateFlags,
			},
			{
				Name:      "call",
				Usage:     "call a method of a deployed contract without a transaction",
				UsageText: "alephium-go contract call -a contract.ral.json [--historic hash] <address> <method> [arg=value ...]",
				Description: `Calls the method and prints its returns, the state of the chain is not
   changed.

` + cmdargs.ParamsParsingDoc,
				Action: contractCall,
				Flags:  callFlags,
			},
		},
	}}
}

func contractCompile(ctx *cli.Context) error {
	all := ctx.Bool("all")
	if !all && ctx.NArg() != 1 {
		return cli.NewExitError(errNoInput, 1)
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	e, exitErr := options.NewEnv(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer e.Close()

	opts := compiler.Options{
		SourceDir:   e.Config.SourceDir,
		ArtifactDir: e.Config.ArtifactDir,
		CacheSize:   e.Config.CompileCacheSize,
		Logger:      e.Log,
	}
	if dir := ctx.String("source-dir"); dir != "" {
		opts.SourceDir = dir
	}
	if dir := ctx.String("artifact-dir"); dir != "" {
		opts.ArtifactDir = dir
	}
	c := compiler.New(e.Client, opts)

	var paths []string
	if all {
		var err error
		paths, err = c.CompileAll(gctx)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	} else {
		p, err := c.CompileAndSave(gctx, ctx.Args().First(), ctx.String("out"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		paths = append(paths, p)
	}
	for _, p := range paths {
		fmt.Fprintln(ctx.App.Writer, p)
	}
	return nil
}

func readContract(ctx *cli.Context) (*contract.Contract, cli.ExitCoder) {
	path := ctx.String("artifact")
	if path == "" {
		return nil, cli.NewExitError(errNoArtifact, 1)
	}
	c, err := contract.FromFile(path)
	if err != nil {
		return nil, cli.NewExitError(fmt.Errorf("can't read contract artifact: %w", err), 1)
	}
	return c, nil
}

func contractDeploy(ctx *cli.Context) error {
	c, exitErr := readContract(ctx)
	if exitErr != nil {
		return exitErr
	}
	sig := c.FieldsSig()
	fields, err := cmdargs.ParseNamedVals(ctx.Args(), sig.Names, sig.Types)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid fields: %w", err), 1)
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	e, exitErr := options.NewEnv(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer e.Close()

	act, exitErr := options.GetActor(gctx, ctx, e)
	if exitErr != nil {
		return exitErr
	}
	p := contract.DeployParams{
		InitialFields:         fields,
		InitialAttoAlphAmount: ctx.String("alph"),
		IssueTokenAmount:      ctx.String("issue-token"),
		GasPrice:              ctx.String("gas-price"),
	}
	if ctx.IsSet("gas") {
		gas := ctx.Int("gas")
		p.GasAmount = &gas
	}
	tx, err := c.TransactionForDeployment(gctx, act, p)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to build deployment: %w", err), 1)
	}
	if !ctx.Bool("force") {
		err := input.ConfirmTx(ctx.App.Writer, fmt.Sprintf("Deploy %s from %s: gas %d, gas price %s",
			c.Name(), act.Sender(), tx.GasAmount, tx.GasPrice))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	res, err := act.SubmitTransaction(gctx, tx.UnsignedTx, tx.TxID)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to submit deployment: %w", err), 1)
	}
	if res.TxID != tx.TxID {
		return cli.NewExitError(fmt.Errorf("%w: %s instead of %s", errTxIDMismatch, res.TxID, tx.TxID), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Contract: %s\n", tx.ContractAddress)
	fmt.Fprintf(ctx.App.Writer, "Contract ID: %s\n", tx.ContractID)
	fmt.Fprintf(ctx.App.Writer, "Groups: %d -> %d\n", res.FromGroup, res.ToGroup)
	fmt.Fprintf(ctx.App.Writer, "TxID: %s\n", res.TxID)
	if ctx.Bool("await") {
		st, err := act.Wait(gctx, res.TxID, nil)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("failed to await transaction: %w", err), 1)
		}
		fmt.Fprintf(ctx.App.Writer, "Block: %s\n", st.BlockHash)
	}
	return nil
}
