package script

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
)

// Format writes stmt as commented text: the dialect, the SQL and one line per
// parameter. Sensitive values are redacted.
//
// Example output:
//
//	-- sqlserver
//	SELECT [id] FROM [Orders_2] WITH (NOLOCK) WHERE [user_id] = ?
//	-- 1 user_id integer 6
func Format(w io.Writer, stmt *sqlbuilder.Statement) error {
	if _, err := fmt.Fprintf(w, "-- %s\n%s\n", stmt.Dialect, stmt.SQL); err != nil {
		return errors.Wrap(err, "failed to write statement")
	}

	for _, p := range stmt.Redacted().Params {
		if _, err := fmt.Fprintf(w, "-- %d %s %s %v\n", p.Index, p.Name, p.Type, p.Value); err != nil {
			return errors.Wrap(err, "failed to write parameter")
		}
	}

	return nil
}
