package clicommand

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/buildkite/lexan/cliconfig"
	"github.com/buildkite/lexan/logger"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

// testApp returns an app running only cmd, writing to stdout.
func testApp(t *testing.T, stdout *bytes.Buffer, cmd cli.Command) *cli.App {
	t.Helper()

	app := cli.NewApp()
	app.Name = "lexan"
	app.Writer = stdout
	app.ErrWriter = &bytes.Buffer{}
	app.Action = func(c *cli.Context) {
		t.Errorf("Error: %v", c.Args())
	}
	app.CommandNotFound = func(c *cli.Context, command string) {
		t.Errorf("Error: %s %v", command, c.Args())
	}
	app.Commands = []cli.Command{cmd}
	return app
}

// captureConfig returns an action that records the loaded config instead of
// running the command.
func captureConfig[T any](got *T) *Action[T] {
	return &Action[T]{
		Action: func(_ context.Context, _ *cli.Context, _ logger.Logger, _ cliconfig.Loader, cfg *T) error {
			*got = *cfg
			return nil
		},
	}
}

// workdir creates a temp dir holding a dictionary, makes it the working
// directory and points HOME at it so no stray config file is found.
func workdir(t *testing.T, dictionary string) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultDictionaryFile), []byte(dictionary), 0o600))
	return dir
}
