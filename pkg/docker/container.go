package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultClickHousePort is the native protocol port inside the container
	DefaultClickHousePort = 9000

	// DefaultClickHouseHTTPPort is the HTTP port inside the container
	DefaultClickHouseHTTPPort = 8123
)

type (
	// DockerOptions represents options for running ClickHouse in Docker
	DockerOptions struct {
		// Version is the ClickHouse version to run (default: latest)
		Version string

		// StartupTimeout bounds how long Start waits for the server (default: 5m)
		StartupTimeout time.Duration
	}

	// Container manages a ClickHouse Docker container
	Container struct {
		options   DockerOptions
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a new Docker container with default options
func New() *Container {
	return NewWithOptions(DockerOptions{})
}

// NewWithOptions creates a new Docker container with custom options
//
// Example:
//
//	container := docker.NewWithOptions(docker.DockerOptions{Version: "25.7"})
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
func NewWithOptions(opts DockerOptions) *Container {
	return &Container{options: opts}
}

// Image returns the image reference Start runs.
func (c *Container) Image() string {
	version := c.options.Version
	if version == "" {
		version = "latest"
	}

	return fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", version)
}

// Start starts the ClickHouse container and waits for its HTTP endpoint.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	timeout := c.options.StartupTimeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	container, err := clickhouse.Run(ctx,
		c.Image(),
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			timeout,
			wait.
				NewHTTPStrategy("/").
				WithPort("8123/tcp").
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the container. Stopping a stopped container is a no-op.
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop ClickHouse container")
	}

	return nil
}

// GetDSN returns the native protocol DSN for the running container
func (c *Container) GetDSN() (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.container.ConnectionString(context.Background())
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}
