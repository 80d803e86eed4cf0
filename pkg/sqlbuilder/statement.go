package sqlbuilder

import (
	"log/slog"

	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
)

// Statement is a rendered SQL string and its bound parameters. A Statement is
// immutable once built and may be shared between goroutines.
type Statement struct {
	SQL     string              `yaml:"sql" msgpack:"sql"`
	Dialect dialect.Name        `yaml:"dialect" msgpack:"dialect"`
	InMode  params.InMode       `yaml:"in_mode" msgpack:"in_mode"`
	Params  []*params.Parameter `yaml:"params" msgpack:"params"`
}

// String returns the SQL text.
func (s *Statement) String() string { return s.SQL }

// Args returns the parameter values in placeholder order.
func (s *Statement) Args() []any {
	args := make([]any, len(s.Params))
	for i, p := range s.Params {
		args[i] = p.Value
	}

	return args
}

// Redacted returns a copy whose sensitive parameter values are hidden.
func (s *Statement) Redacted() *Statement {
	cp := *s
	cp.Params = make([]*params.Parameter, len(s.Params))
	for i, p := range s.Params {
		cp.Params[i] = p.Redact()
	}

	return &cp
}

// LogValue implements slog.LogValuer. Sensitive values are redacted.
func (s *Statement) LogValue() slog.Value {
	attrs := make([]any, len(s.Params))
	for i, p := range s.Params {
		attrs[i] = slog.Any(p.Name, p)
	}

	return slog.GroupValue(
		slog.String("sql", s.SQL),
		slog.String("dialect", string(s.Dialect)),
		slog.Group("params", attrs...),
	)
}
