package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookit/cmd/bookit/commands"
	"git.home.luguber.info/inful/bookit/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("bookit"),
		kong.Description("Build a browsable markdown book from a source tree"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(-1)
	}
}
