package shard

import (
	"go.uber.org/fx"
)

// Module provides the configuration-driven Catalog.
var Module = fx.Module("shard", fx.Provide(
	fx.Annotate(NewStatic, fx.As(new(Catalog))),
))
