// Package docker runs throwaway ClickHouse servers for integration tests.
//
// Containers are started through testcontainers and removed on Stop. Callers
// connect with the DSN returned by GetDSN, usually via clickhouse.Open.
//
// # Usage Example
//
//	container := docker.NewWithOptions(docker.DockerOptions{Version: "25.7"})
//	if err := container.Start(ctx); err != nil {
//		return err
//	}
//	defer func() { _ = container.Stop(ctx) }()
//
//	dsn, err := container.GetDSN()
//	if err != nil {
//		return err
//	}
//
//	db, err := clickhouse.Open(dsn, clickhouse.TLSFiles{})
package docker
