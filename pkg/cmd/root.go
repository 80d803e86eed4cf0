package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the dalsql CLI application with the given commands and
// command-line arguments once the fx application starts.
//
// The configuration file is loaded by the fx graph before the CLI parses its flags,
// so the --config flag is resolved up front by ConfigPath. It is still declared here
// for help output and validation.
//
// Example usage:
//
//	fx.New(
//		fx.Supply(args, cmd.ConfigPath(args), &cmd.Version{Version: "v1.0.0"}),
//		config.Module,
//		shard.Module,
//		cmd.Module,
//	).Run()
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "dalsql",
		Usage: "Render and execute sharded SQL statement scripts",
		Description: `dalsql assembles SQL statements from scripts, pruning conditions whose
values are missing, quoting identifiers for the target dialect and resolving
logical tables to their physical shards.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the dalsql config file",
				Sources: cli.EnvVars(consts.ConfigEnvVar),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug information, including executed statements",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			return ctx, nil
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// ConfigPath returns the configuration file named by --config (or -c) in args,
// falling back to the DALSQL_CONFIG environment variable. An empty path selects the
// default file.
func ConfigPath(args []string) config.Path {
	for i, arg := range args {
		if arg == "--" {
			break
		}

		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				return config.Path(args[i+1])
			}
		case strings.HasPrefix(arg, "--config="):
			return config.Path(strings.TrimPrefix(arg, "--config="))
		case strings.HasPrefix(arg, "-c="):
			return config.Path(strings.TrimPrefix(arg, "-c="))
		}
	}

	return config.Path(os.Getenv(consts.ConfigEnvVar))
}
