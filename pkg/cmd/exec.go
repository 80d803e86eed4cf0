package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/clickhouse"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/executor"
	"github.com/urfave/cli/v3"
)

// queryPrefixes are the leading keywords of statements that return rows.
var queryPrefixes = []string{"SELECT", "WITH", "SHOW", "DESCRIBE", "EXPLAIN", "PRAGMA", "VALUES"}

// execCmd creates the exec command, which builds a script and runs the statement
// through a database/sql driver. Statements that return rows are printed as a
// table; anything else reports the number of affected rows.
//
// Drivers:
//   - mysql: github.com/go-sql-driver/mysql
//   - postgres: github.com/lib/pq
//   - sqlite: modernc.org/sqlite
//   - clickhouse: github.com/ClickHouse/clickhouse-go/v2
//
// Examples:
//
//	dalsql exec --driver mysql --dsn "user:pass@tcp(localhost:3306)/orders" orders.dal
//	dalsql exec --driver sqlite --dsn ./local.db --query report.dal
//	dalsql exec --driver clickhouse --dsn ch1:9440 --ca-file ca.pem report.dal
func execCmd(p commandParams) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Execute a statement script",
		ArgsUsage: "<script>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "driver",
				Usage:    "database/sql driver name (mysql, postgres, sqlite, clickhouse)",
				Required: true,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:     "dsn",
				Usage:    "data source name passed to the driver",
				Required: true,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "query",
				Usage: "treat the statement as a query and print the returned rows",
			},
			&cli.StringFlag{
				Name:  "ca-file",
				Usage: "CA certificate for ClickHouse TLS connections",
			},
			&cli.StringFlag{
				Name:  "cert-file",
				Usage: "client certificate for ClickHouse mutual TLS",
			},
			&cli.StringFlag{
				Name:  "key-file",
				Usage: "client key for ClickHouse mutual TLS",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runExec(ctx, cmd, p)
		},
	}
}

func runExec(ctx context.Context, cmd *cli.Command, p commandParams) error {
	stmt, err := buildStatement(cmd, p)
	if err != nil {
		return err
	}

	driver := cmd.String("driver")
	slog.Info("Executing statement", "driver", driver, "dialect", stmt.Dialect)

	db, err := openDB(cmd, p, driver)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s database", driver)
	}
	defer func() { _ = db.Close() }()

	exec := executor.New(executor.Config{Conn: db})
	if !cmd.Bool("query") && !isQuery(stmt.SQL) {
		res, err := exec.Exec(ctx, stmt)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to read affected rows")
		}

		fmt.Fprintf(cmd.Writer, "%d rows affected\n", n)
		return nil
	}

	rows, err := exec.Query(ctx, stmt)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return printRows(cmd.Writer, rows)
}

// openDB opens the target database. ClickHouse goes through the native options so
// host-only DSNs and TLS files are honoured.
func openDB(cmd *cli.Command, p commandParams, driver string) (*sql.DB, error) {
	if driver != string(dialect.NameClickHouse) {
		return p.Open(driver, cmd.String("dsn"))
	}

	return clickhouse.Open(cmd.String("dsn"), clickhouse.TLSFiles{
		CAFile:   cmd.String("ca-file"),
		CertFile: cmd.String("cert-file"),
		KeyFile:  cmd.String("key-file"),
	})
}

func isQuery(sql string) bool {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return false
	}

	for _, prefix := range queryPrefixes {
		if strings.EqualFold(fields[0], prefix) {
			return true
		}
	}

	return false
}

func printRows(w io.Writer, rows *sql.Rows) error {
	cols, err := rows.Columns()
	if err != nil {
		return errors.Wrap(err, "failed to read columns")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return errors.Wrap(err, "failed to scan row")
		}

		cells := make([]string, len(values))
		for i, v := range values {
			switch v := v.(type) {
			case nil:
				cells[i] = "NULL"
			case []byte:
				cells[i] = string(v)
			default:
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "failed to read rows")
	}

	return tw.Flush()
}
