package smartcontract

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/alephium-go/cli/cmdargs"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/rpcbinding"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

var generateBindingCmd = cli.Command{
	Name:      "generate-binding",
	Usage:     "generate Go binding for a compiled contract",
	UsageText: "alephium-go contract generate-binding [--config binding.yml] [-a contract.ral.json] [-o binding.go] [--package name]",
	Description: `Generates a Go package with typed fields, a factory simulating every
   contract method and an instance calling public methods of a deployed
   contract. Flags override the configuration file values. The configuration
   file is YAML:

     package: nftcollectiontest
     artifact: artifacts/nft/nft_collection_test.ral.json
     output: artifacts/go/nftcollectiontest/nftcollectiontest.go
     overrides:
       mint.nftUri: github.com/some/uri.URI
`,
	Action: contractGenerateBinding,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "binding configuration file to use",
		},
		artifactFlag,
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output Go file",
		},
		cli.StringFlag{
			Name:  "package",
			Usage: "Go package name, derived from the contract name if not set",
		},
	},
}

func contractGenerateBinding(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	cfg := rpcbinding.NewConfig()
	if cfgPath := ctx.String("config"); cfgPath != "" {
		bs, err := os.ReadFile(cfgPath)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("can't read config file: %w", err), 1)
		}
		err = yaml.Unmarshal(bs, &cfg)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("can't parse config file: %w", err), 1)
		}
	}
	if path := ctx.String("artifact"); path != "" {
		cfg.ArtifactPath = path
	}
	if path := ctx.String("out"); path != "" {
		cfg.OutputPath = path
	}
	if name := ctx.String("package"); name != "" {
		cfg.Package = name
	}
	if cfg.ArtifactPath == "" {
		return cli.NewExitError(errNoArtifact, 1)
	}
	err := rpcbinding.Generate(cfg)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("error during generation: %w", err), 1)
	}
	return nil
}
