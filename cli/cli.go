package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ams/cli/cmd"
	"github.com/ardnew/ams/cli/cmd/repl"
	"github.com/ardnew/ams/pkg"
)

// CLI is the top-level command-line interface for ams.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source  []string         `help:"Input source file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`
	Version kong.VersionFlag `help:"Print the version and exit."`

	Init cmd.Init  `cmd:"" help:"Write current flag values to the configuration file"`
	Fmt  cmd.Fmt   `cmd:"" help:"Format AMS source"`
	Tree cmd.Tree  `cmd:"" help:"Print the parsed structure of AMS source"`
	Repl repl.Repl `cmd:"" help:"Start an interactive session"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate AMS source"`
}

// Run executes the ams CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig),
		cmd.CacheIdentifier:  cachePath(),
		"version":            strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logging flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loadTOML, configPath(baseConfig+".toml")),
		kong.Configuration(resolve(ctx), configPath(baseConfig)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
