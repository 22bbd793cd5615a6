package clicommand

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/buildkite/lexan/cliconfig"
	"github.com/buildkite/lexan/logger"
	"github.com/urfave/cli"
)

// Action is the body of a lexan command, called once its config has been
// loaded and its logger built.
type Action[T any] struct {
	Action func(
		ctx context.Context,
		c *cli.Context,
		l logger.Logger,
		loader cliconfig.Loader,
		cfg *T,
	) error
}

// NewConfigAndLogger returns a cli.ActionFunc that loads a fresh T from the
// command line, environment and config file, then runs f. The context passed
// to f is cancelled on interrupt.
func NewConfigAndLogger[T any](f *Action[T]) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := new(T)
		loader := cliconfig.Loader{
			CLI:                    c,
			Config:                 cfg,
			DefaultConfigFilePaths: DefaultConfigFilePaths(),
		}
		warnings, err := loader.Load()
		if err != nil {
			return err
		}

		l, err := CreateLogger(cfg)
		if err != nil {
			return err
		}
		loader.Logger = l

		// Now that we have a logger, log out the warnings that loading config generated
		for _, warning := range warnings {
			l.Warn("%s", warning)
		}

		if err := HandleGlobalFlags(l, cfg); err != nil {
			return err
		}

		if loader.File != nil {
			l.Debug("Loaded config file %s", loader.File.Path)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return f.Action(ctx, c, l, loader, cfg)
	}
}

// newUsageError wraps err so it's reported together with a pointer to the
// command's help.
func newUsageError(c *cli.Context, err error) error {
	return NewExitError(1, fmt.Errorf("%w. See: `%s %s --help`", err, c.App.Name, c.Command.Name))
}
