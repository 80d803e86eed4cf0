package main

import (
	"context"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/pseudomuto/dalsql/pkg/cmd"
	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"go.uber.org/fx"
	_ "modernc.org/sqlite"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	fx.New(
		fx.Supply(
			os.Args,
			cmd.ConfigPath(os.Args),
			&cmd.Version{
				Version:   version,
				Commit:    commit,
				Timestamp: date,
			},
		),
		fx.Supply(fx.Annotate(context.Background(), fx.As(new(context.Context)))),
		config.Module,
		shard.Module,
		cmd.Module,
		fx.NopLogger,
	).Run()
}
