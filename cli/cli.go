package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/makec/cli/cmd"
	"github.com/ardnew/makec/pkg"
)

// CLI is the top-level command-line interface for makec.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Plan   cmd.Plan   `cmd:"" default:"withargs" help:"Print the lowered rules for the requested targets."`
	Tokens cmd.Tokens `cmd:""                    help:"Print the token stream."`
	AST    cmd.AST    `cmd:""                    help:"Print variable definitions and rules as parsed." name:"ast"`
	Vars   cmd.Vars   `cmd:""                    help:"Print the resolved variables."`
	Dump   cmd.Dump   `cmd:""                    help:"Print variables and lowered rules in a structured format."`
	Watch  cmd.Watch  `cmd:""                    help:"Recompile the makefile whenever it changes."`
	Init   cmd.Init   `cmd:""                    help:"Write a configuration file with the current flag values."`
}

// Run executes the makec CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, streams{os.Stdin, os.Stdout, os.Stderr}, args...)
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func run(
	ctx context.Context,
	exit func(code int),
	std streams,
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cmd.KongVars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(std.out, std.err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.BindTo(std.out, (*io.Writer)(nil)),
		kong.BindTo(std.err, (*cmd.Stderr)(nil)),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
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
	ctx = cmd.WithStdin(ctx, std.in)

	// Applies TimeLayout and Caller, which have no UnmarshalText hook.
	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	err = ktx.Run(ctx)

	var diag *cmd.Diagnostic
	if errors.As(err, &diag) {
		_ = diag.Render(std.err)
	}

	return err
}
