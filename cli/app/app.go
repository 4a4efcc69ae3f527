package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/alephium-go/cli/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "alephium-go\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates an alephium-go instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "alephium-go"
	ctl.Version = config.Version
	ctl.Usage = "Go toolkit for Alephium smart contracts"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, smartcontract.NewCommands()...)
	return ctl
}
