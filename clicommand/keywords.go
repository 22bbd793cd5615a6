package clicommand

import (
	"context"

	"github.com/buildkite/lexan/cliconfig"
	"github.com/buildkite/lexan/logger"
	"github.com/buildkite/lexan/report"
	"github.com/urfave/cli"
)

const keywordsDescription = `Usage:

    lexan keywords [options...]

Description:

Loads the dictionary and lists its keywords in the order they were first
defined, with the token kind each one maps to. Malformed entries are
reported as warnings.

With ′--format yaml′ the listing is itself a valid YAML dictionary, which is
a handy way to convert a text dictionary.

Example:

    $ lexan keywords --dictionary keywords.yml
    $ lexan keywords --format yaml > keywords.yml`

type KeywordsConfig struct {
	GlobalConfig

	Dictionary           string `cli:"dictionary" normalize:"filepath" validate:"required"`
	AllowEmptyDictionary bool   `cli:"allow-empty-dictionary"`
	Format               string `cli:"format"`
}

var KeywordsCommand = keywordsCommand(&Action[KeywordsConfig]{Action: Keywords})

func keywordsCommand(action *Action[KeywordsConfig]) cli.Command {
	return cli.Command{
		Name:        "keywords",
		Usage:       "Lists the keywords in a dictionary",
		Description: keywordsDescription,
		Flags: flatten(dictionaryFlags, []cli.Flag{
			cli.StringFlag{
				Name:   "format",
				Value:  report.FormatTable.String(),
				Usage:  "Output format, one of ′table′, ′json′ or ′yaml′",
				EnvVar: "LEXAN_FORMAT",
			},
		}, globalFlags),
		Action: NewConfigAndLogger(action),
	}
}

// Keywords prints the dictionary's keyword table.
func Keywords(_ context.Context, c *cli.Context, l logger.Logger, _ cliconfig.Loader, cfg *KeywordsConfig) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return newUsageError(c, err)
	}

	classifier, _, err := loadClassifier(l, cfg.Dictionary, cfg.AllowEmptyDictionary)
	if err != nil {
		return err
	}

	return report.WriteKeywords(c.App.Writer, classifier.Table(), format)
}
