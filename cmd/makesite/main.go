package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/makesite/cmd/makesite/commands"
	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	"git.home.luguber.info/inful/makesite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	globals := &commands.Global{}
	parser := kong.Must(cli,
		kong.Name("makesite"),
		kong.Description("Generate a static site from content, layout and static directories."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(globals),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(globals, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, globals.Logger).HandleError(err)
	}
}
