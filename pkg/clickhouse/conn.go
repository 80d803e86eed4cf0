package clickhouse

import (
	"database/sql"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
)

// Open returns a database/sql handle for dsn. No connection is made until the handle
// is used. When files names any certificate the connection is made over TLS.
func Open(dsn string, files TLSFiles) (*sql.DB, error) {
	opts, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if files.Enabled() {
		cfg, err := GetTLSConfig(files)
		if err != nil {
			return nil, sqlerr.WrapConfiguration(err, "Open", "tls")
		}

		opts.TLS = cfg
	}

	return clickhouse.OpenDB(opts), nil
}

// ParseDSN converts dsn into client options. A DSN without a scheme is treated as a
// single host:port address.
func ParseDSN(dsn string) (*clickhouse.Options, error) {
	if dsn == "" {
		return nil, sqlerr.Usage("ParseDSN", "dsn", "dsn can not be empty")
	}

	if !strings.Contains(dsn, "://") {
		return &clickhouse.Options{Addr: []string{dsn}}, nil
	}

	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, sqlerr.WrapConfiguration(err, "ParseDSN", "dsn")
	}

	return opts, nil
}
