package testutil

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command as the root of a test app and returns what it wrote.
func RunCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()
	return RunCommandWithInput(t, nil, command, args...)
}

// RunCommandWithInput executes a command reading stdin from in.
func RunCommandWithInput(t *testing.T, in io.Reader, command *cli.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "test",
		Flags:  command.Flags,
		Action: command.Action,
		Writer: &buf,
	}
	if in != nil {
		app.Reader = in
	}

	err := app.Run(context.Background(), append([]string{"test"}, args...))
	return buf.String(), err
}
