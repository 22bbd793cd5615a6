package clicommand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/buildkite/lexan/cliconfig"
	"github.com/buildkite/lexan/logger"
	"github.com/buildkite/lexan/report"
	"github.com/buildkite/lexan/source"
	"github.com/urfave/cli"
)

const classifyDescription = `Usage:

    lexan classify [options...] [token...]

Description:

Classifies the tokens given as arguments against the dictionary and prints
the results as a table. With no arguments, tokens are read from stdin.

Example:

    $ lexan classify if x1 1x while
    $ echo "if x1 1x while" | lexan classify --format json`

type ClassifyConfig struct {
	GlobalConfig

	Dictionary           string   `cli:"dictionary" normalize:"filepath" validate:"required"`
	AllowEmptyDictionary bool     `cli:"allow-empty-dictionary"`
	Tokens               []string `cli:"arg:*"`
	Format               string   `cli:"format"`
}

var ClassifyCommand = classifyCommand(&Action[ClassifyConfig]{Action: Classify})

func classifyCommand(action *Action[ClassifyConfig]) cli.Command {
	return cli.Command{
		Name:        "classify",
		Usage:       "Classifies tokens given on the command line",
		Description: classifyDescription,
		Flags: flatten(dictionaryFlags, []cli.Flag{
			cli.StringFlag{
				Name:   "format",
				Value:  report.FormatConsole.String(),
				Usage:  "Output format, one of ′console′, ′table′, ′json′ or ′yaml′",
				EnvVar: "LEXAN_FORMAT",
			},
		}, globalFlags),
		Action: NewConfigAndLogger(action),
	}
}

// Classify prints the classification of each token in cfg, or of each token
// on stdin when there are none.
func Classify(ctx context.Context, c *cli.Context, l logger.Logger, _ cliconfig.Loader, cfg *ClassifyConfig) error {
	if len(cfg.Tokens) == 0 && !source.StdinIsReadable() {
		return newUsageError(c, errors.New("no tokens given and nothing piped to stdin"))
	}
	return classify(ctx, c, l, cfg, os.Stdin)
}

func classify(ctx context.Context, c *cli.Context, l logger.Logger, cfg *ClassifyConfig, stdin io.Reader) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return newUsageError(c, err)
	}
	r, err := report.New(format)
	if err != nil {
		return err
	}

	tokens := cfg.Tokens
	if len(tokens) == 0 {
		l.Debug("No tokens given, reading from stdin")
		if tokens, err = source.Tokenize(stdin); err != nil {
			return fmt.Errorf("reading tokens from stdin: %w", err)
		}
	}

	classifier, _, err := loadClassifier(l, cfg.Dictionary, cfg.AllowEmptyDictionary)
	if err != nil {
		return err
	}

	results, err := classifier.ClassifyAll(ctx, tokens, nil)
	if err != nil {
		return err
	}

	return r.Report(c.App.Writer, results)
}
