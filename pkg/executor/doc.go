// Package executor runs built statements through database/sql.
//
// Statements carry `?` placeholders and one parameter per placeholder. Before a
// statement reaches the driver the executor prepares it for the target dialect:
//
//   - list parameters bound to a single `IN ( ? )` placeholder are expanded into one
//     placeholder per element
//   - on PostgreSQL the same lists are passed as arrays instead, rewriting
//     `col IN ( ? )` to `col = ANY($n)` and `col NOT IN ( ? )` to `col <> ALL($n)`
//   - PostgreSQL placeholders are numbered ($1, $2, ...)
//
// # Usage Example
//
//	db, err := sql.Open("postgres", dsn)
//	if err != nil {
//		return err
//	}
//
//	exec := executor.New(executor.Config{Conn: db, Logger: slog.Default()})
//	rows, err := exec.Query(ctx, stmt)
//	if err != nil {
//		return err
//	}
//	defer rows.Close()
//
// Batches run with Execute, which stops at the first failure and reports every
// statement's outcome:
//
//	results, err := exec.Execute(ctx, stmts)
//	for _, r := range results {
//		fmt.Printf("%d: %s (%d rows)\n", r.Index, r.Status, r.RowsAffected)
//	}
//
// Statements are logged at debug level with sensitive values redacted.
package executor
