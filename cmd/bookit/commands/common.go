package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Debug   bool             `short:"d" help:"All logs"`
	Info    bool             `short:"i" help:"Info + error logs"`
	Quiet   bool             `short:"q" help:"Suppress logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Create a book of linked markdown files with constant filenames"`
	Init  InitCmd  `cmd:"" help:"Setup a new book project"`
}

// AfterApply runs after flag parsing; setup logging once. Default verbosity
// is errors only; --info adds info logs, --debug everything, --quiet nothing.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelError
	out := io.Writer(os.Stderr)
	switch {
	case c.Debug:
		level = slog.LevelDebug
	case c.Info:
		level = slog.LevelInfo
	case c.Quiet:
		out = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
