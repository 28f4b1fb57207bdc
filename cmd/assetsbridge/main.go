// assetsbridge inspects and exercises the assets-factory precompile.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var verbosityFlag = &cli.IntFlag{
	Name:  "verbosity",
	Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
	Value: 3,
}

var app = &cli.App{
	Name:  "assetsbridge",
	Usage: "assets-factory precompile toolbox",
	Flags: []cli.Flag{configFileFlag, verbosityFlag},
	Commands: []*cli.Command{
		selectorsCommand,
		encodeCommand,
		callCommand,
		dumpConfigCommand,
	},
	Before: func(ctx *cli.Context) error {
		setupLogging(ctx.Int(verbosityFlag.Name))
		return nil
	},
}

func setupLogging(verbosity int) {
	var (
		output   io.Writer = os.Stderr
		useColor           = isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
	)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	glogger := log.NewGlogHandler(log.NewTerminalHandler(output, useColor))
	glogger.Verbosity(log.FromLegacyLevel(verbosity))
	log.SetDefault(log.NewLogger(glogger))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
