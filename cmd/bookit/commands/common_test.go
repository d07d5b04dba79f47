package commands

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestParse_BuildFlags(t *testing.T) {
	cli, ctx := parse(t, "build", "--nolint", "-w")
	require.Equal(t, "build", ctx.Command())
	require.True(t, cli.Build.NoLint)
	require.True(t, cli.Build.Watch)
}

func TestParse_BuildDefaults(t *testing.T) {
	cli, ctx := parse(t, "build")
	require.Equal(t, "build", ctx.Command())
	require.False(t, cli.Build.NoLint)
	require.False(t, cli.Build.Watch)
}

func TestParse_InitFlags(t *testing.T) {
	cli, ctx := parse(t, "init", "--force", "-t", "My Book", "-s", "preface", "-s", "appendix")
	require.Equal(t, "init", ctx.Command())
	require.True(t, cli.Init.Force)
	require.Equal(t, "My Book", cli.Init.Title)
	require.Equal(t, []string{"preface", "appendix"}, cli.Init.Sections)
}

func TestParse_VerbosityFlags(t *testing.T) {
	cli, _ := parse(t, "-d", "build")
	require.True(t, cli.Debug)

	cli, _ = parse(t, "-q", "build")
	require.True(t, cli.Quiet)
}

func TestParse_UnknownCommandFails(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"publish"})
	require.Error(t, err)
}
