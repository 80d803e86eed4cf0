package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/script"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type commandParams struct {
	fx.In

	Config  *config.Config
	Catalog shard.Catalog
	Open    Opener
}

// buildStatement replays the script named by the command's only argument ("-" reads
// stdin). The configured default database is selected before the script runs.
func buildStatement(cmd *cli.Command, p commandParams) (*sqlbuilder.Statement, error) {
	if cmd.Args().Len() != 1 {
		return nil, errors.New("exactly one script argument is required")
	}

	var r io.Reader = cmd.Reader
	if path := cmd.Args().First(); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open script: %s", path)
		}
		defer func() { _ = f.Close() }()

		r = f
	}

	if r == nil {
		r = os.Stdin
	}

	b := sqlbuilder.New(sqlbuilder.WithCatalog(p.Catalog))
	if p.Config != nil && p.Config.DefaultDatabase != "" {
		b.SetLogicDB(p.Config.DefaultDatabase)
	}

	return script.Build(b, r)
}
