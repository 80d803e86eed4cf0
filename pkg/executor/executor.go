package executor

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
)

type (
	// Conn is the part of *sql.DB, *sql.Conn and *sql.Tx the executor needs.
	Conn interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	}

	// Executor runs statements against a database connection.
	//
	// Example usage:
	//
	//	exec := executor.New(executor.Config{Conn: db})
	//	res, err := exec.Exec(ctx, stmt)
	Executor struct {
		conn   Conn
		logger *slog.Logger
	}

	// Config contains configuration options for creating a new Executor.
	Config struct {
		// Conn runs the prepared statements.
		Conn Conn

		// Logger receives a debug record per statement. Defaults to slog.Default().
		Logger *slog.Logger
	}

	// ExecutionResult describes the outcome of one statement in a batch.
	ExecutionResult struct {
		// Index is the 1-based position of the statement in the batch.
		Index int

		// Status indicates the outcome of the execution.
		Status ExecutionStatus

		// Error contains any error that occurred during execution.
		Error error

		// ExecutionTime records how long the statement took to execute.
		ExecutionTime time.Duration

		// RowsAffected as reported by the driver, when it supports it.
		RowsAffected int64
	}

	// ExecutionStatus represents the outcome of a statement execution.
	ExecutionStatus string
)

const (
	// StatusSuccess indicates the statement was executed successfully.
	StatusSuccess ExecutionStatus = "success"

	// StatusFailed indicates the statement failed.
	StatusFailed ExecutionStatus = "failed"

	// StatusSkipped indicates the statement was not run because an earlier one failed.
	StatusSkipped ExecutionStatus = "skipped"
)

// New creates an executor with the provided configuration.
func New(config Config) *Executor {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{conn: config.Conn, logger: logger}
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, stmt *sqlbuilder.Statement) (sql.Result, error) {
	query, args, err := e.prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}

	res, err := e.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute statement")
	}

	return res, nil
}

// Query runs a statement that returns rows. The caller closes them.
func (e *Executor) Query(ctx context.Context, stmt *sqlbuilder.Statement) (*sql.Rows, error) {
	query, args, err := e.prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}

	rows, err := e.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query statement")
	}

	return rows, nil
}

// Execute runs the statements in order with Exec. It stops at the first failure,
// marking the remaining statements as skipped, and returns that failure.
func (e *Executor) Execute(ctx context.Context, stmts []*sqlbuilder.Statement) ([]*ExecutionResult, error) {
	results := make([]*ExecutionResult, len(stmts))

	var failure error
	for i, stmt := range stmts {
		result := &ExecutionResult{Index: i + 1, Status: StatusSkipped}
		results[i] = result
		if failure != nil {
			continue
		}

		start := time.Now()
		res, err := e.Exec(ctx, stmt)
		result.ExecutionTime = time.Since(start)
		if err != nil {
			result.Status = StatusFailed
			result.Error = err
			failure = errors.Wrapf(err, "statement %d", i+1)
			continue
		}

		result.Status = StatusSuccess
		if n, err := res.RowsAffected(); err == nil {
			result.RowsAffected = n
		}
	}

	return results, failure
}

func (e *Executor) prepare(ctx context.Context, stmt *sqlbuilder.Statement) (string, []any, error) {
	if stmt == nil {
		return "", nil, sqlerr.Usage("Prepare", "", "statement can not be nil")
	}

	query, args, err := Prepare(stmt)
	if err != nil {
		return "", nil, err
	}

	e.logger.DebugContext(ctx, "Executing statement", "stmt", stmt, "query", query)
	return query, args, nil
}

// Prepare rewrites the statement for its dialect and returns the query text with the
// driver arguments in placeholder order.
func Prepare(stmt *sqlbuilder.Statement) (string, []any, error) {
	d, err := dialect.Lookup(string(stmt.Dialect))
	if err != nil {
		return "", nil, sqlerr.WrapConfiguration(err, "Prepare", string(stmt.Dialect))
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(stmt.Params))
		rest = stmt.SQL
	)

	bind := func(v any) string {
		args = append(args, v)
		return d.Placeholder(len(args))
	}

	for _, p := range stmt.Params {
		i := strings.Index(rest, consts.PlaceHolder)
		if i < 0 {
			return "", nil, sqlerr.Internal("Prepare", p.Name, "statement has fewer placeholders than parameters")
		}

		head := rest[:i]
		rest = rest[i+len(consts.PlaceHolder):]

		if !p.InParam {
			sb.WriteString(head)
			sb.WriteString(bind(p.Value))
			continue
		}

		values := p.Values()
		if d.Name() == dialect.NamePostgres {
			if prefix, tail, ok := arrayComparison(head, rest); ok {
				sb.WriteString(prefix)
				sb.WriteString(bind(pq.Array(values)))
				sb.WriteString(")")
				rest = tail
				continue
			}
		}

		if len(values) == 0 {
			return "", nil, sqlerr.Usage("Prepare", p.Name, "IN list can not be empty")
		}

		marks := make([]string, len(values))
		for j, v := range values {
			marks[j] = bind(v)
		}

		sb.WriteString(head)
		sb.WriteString(strings.Join(marks, ", "))
	}

	if strings.Contains(rest, consts.PlaceHolder) {
		return "", nil, sqlerr.Internal("Prepare", "", "statement has more placeholders than parameters")
	}

	sb.WriteString(rest)
	return sb.String(), args, nil
}

// arrayComparison turns `col IN ( ` / ` )` around a list placeholder into
// `col = ANY(` and the NOT IN form into `col <> ALL(`. It returns the text to write
// before the placeholder and the remainder after the closing bracket.
func arrayComparison(head, rest string) (string, string, bool) {
	const (
		in      = " IN ( "
		notIn   = " NOT IN ( "
		closing = " )"
	)

	if !strings.HasPrefix(rest, closing) {
		return "", "", false
	}

	tail := rest[len(closing):]
	switch {
	case strings.HasSuffix(head, notIn):
		return strings.TrimSuffix(head, notIn) + " <> ALL(", tail, true
	case strings.HasSuffix(head, in):
		return strings.TrimSuffix(head, in) + " = ANY(", tail, true
	default:
		return "", "", false
	}
}
