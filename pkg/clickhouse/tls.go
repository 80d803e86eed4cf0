package clickhouse

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// TLSFiles names the PEM files used for a TLS connection. All fields are optional.
type TLSFiles struct {
	// CAFile verifies the server certificate. The system pool is used when empty.
	CAFile string

	// CertFile and KeyFile hold the client certificate for mutual TLS. They must be
	// set together.
	CertFile string
	KeyFile  string
}

// Enabled reports whether any file is set.
func (f TLSFiles) Enabled() bool {
	return f.CAFile != "" || f.CertFile != "" || f.KeyFile != ""
}

// GetTLSConfig creates a TLS config for connecting to ClickHouse, optionally over mTLS.
//
// Example usage:
//
//	cfg, err := GetTLSConfig(files)
//	if err != nil {
//		return err
//	}
func GetTLSConfig(files TLSFiles) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if files.CertFile != "" || files.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(files.CertFile, files.KeyFile)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to load certfile/keyfile")
		}

		cfg.Certificates = []tls.Certificate{cert}
	}

	if files.CAFile != "" {
		caCert, err := os.ReadFile(files.CAFile)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to load CAfile")
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errors.Errorf("No certificates found in CAfile: %s", files.CAFile)
		}

		cfg.RootCAs = pool
	}

	return cfg, nil
}
