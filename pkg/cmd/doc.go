// Package cmd provides the commands of the dalsql CLI.
//
// The CLI renders and executes statement scripts (see package script) against the
// logical databases described in dalsql.yaml.
//
// # Available Commands
//
//   - render: Build a script and print the statement as text, YAML or msgpack
//   - exec: Build a script and run it through a database/sql driver
//
// # Command Structure
//
// Each command is implemented as a function that returns a *cli.Command, following
// the urfave/cli/v3 pattern. Commands are provided to the fx graph in the "commands"
// group and receive the loaded configuration and shard catalog as dependencies.
//
// # Global Options
//
//   - --config, -c: The configuration file (DALSQL_CONFIG, defaults to dalsql.yaml)
//   - --verbose, -v: Log statements and debug information
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	dalsql render orders.dal                                  # print SQL and parameters
//	dalsql render -o yaml orders.dal                          # print the statement as YAML
//	dalsql --config prod.yaml exec --driver mysql --dsn "$DSN" orders.dal
//	echo 'db orders select * from Orders shard 1' | dalsql render -
package cmd
