package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/script"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/urfave/cli/v3"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// render creates the render command, which builds a script and prints the
// resulting statement without touching a database.
//
// Output formats:
//   - text (default): the SQL followed by one comment line per parameter
//   - yaml: the statement with its parameters
//   - msgpack: the statement encoded with msgpack, for other tools to consume
//
// Sensitive parameter values are redacted in every format.
//
// Examples:
//
//	# Render a script
//	dalsql render orders.dal
//
//	# Render from stdin as YAML
//	echo 'db orders select * from Orders shard 1' | dalsql render -o yaml -
func render(p commandParams) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a statement script",
		ArgsUsage: "<script>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format: text, yaml or msgpack",
				Value:   "text",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stmt, err := buildStatement(cmd, p)
			if err != nil {
				return err
			}

			return writeStatement(cmd, cmd.String("output"), stmt.Redacted())
		},
	}
}

func writeStatement(cmd *cli.Command, format string, stmt *sqlbuilder.Statement) error {
	switch format {
	case "text":
		return script.Format(cmd.Writer, stmt)
	case "yaml":
		enc := yaml.NewEncoder(cmd.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(stmt); err != nil {
			return errors.Wrap(err, "failed to encode statement")
		}
		return enc.Close()
	case "msgpack":
		if err := msgpack.NewEncoder(cmd.Writer).Encode(stmt); err != nil {
			return errors.Wrap(err, "failed to encode statement")
		}
		return nil
	default:
		return errors.Errorf("unknown output format: %q", format)
	}
}
