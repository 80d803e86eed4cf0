package cmd

import (
	"database/sql"

	"go.uber.org/fx"
)

// Opener opens a database handle for a driver name and DSN.
type Opener func(driver, dsn string) (*sql.DB, error)

var Module = fx.Module("cli",
	fx.Provide(
		func() Opener { return sql.Open },
		fx.Annotate(render, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(execCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
