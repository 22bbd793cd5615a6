package clicommand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/buildkite/lexan/cliconfig"
	"github.com/buildkite/lexan/dictionary"
	"github.com/buildkite/lexan/lexer"
	"github.com/buildkite/lexan/logger"
	"github.com/buildkite/lexan/metrics"
	"github.com/buildkite/lexan/report"
	"github.com/buildkite/lexan/source"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli"
)

const (
	DefaultDictionaryFile = "diccionario.txt"
	DefaultInputFile      = "texto_entrada.txt"
	DefaultOutputFile     = "tokens_salida.txt"

	// strictExitCode is returned by `analyze --strict` when any token was a
	// lexical error.
	strictExitCode = 2
)

const analyzeDescription = `Usage:

    lexan analyze [options...] [input-file]

Description:

Classifies every whitespace separated token of the input file. A token that
appears in the dictionary takes the dictionary's token kind, a token made of
a lowercase letter followed by lowercase letters or digits is an
IDENTIFICADOR, and anything else is an ERROR_LEXICO.

The dictionary is a text file with one ′lexeme kind′ pair per line, or a YAML
mapping of lexeme to kind when its name ends in .yml or .yaml. When a lexeme
is listed more than once the last kind wins.

Results are printed as a table and written to the output file, in input
order. Output files ending in .gz are gzip compressed. Use ′-′ as the input
file to read from stdin.

Example:

    $ lexan analyze --dictionary keywords.txt --output tokens.json --format json program.txt`

type AnalyzeConfig struct {
	GlobalConfig

	Dictionary           string `cli:"dictionary" normalize:"filepath" validate:"required"`
	AllowEmptyDictionary bool   `cli:"allow-empty-dictionary"`
	Input                string `cli:"input"`
	InputArg             string `cli:"arg:0"`
	Output               string `cli:"output"`
	Destination          string `cli:"destination"`
	Format               string `cli:"format"`
	Concurrency          int    `cli:"concurrency"`
	Strict               bool   `cli:"strict"`
	Quiet                bool   `cli:"quiet"`

	MetricsFile        string `cli:"metrics-file" normalize:"filepath"`
	MetricsDatadog     bool   `cli:"metrics-datadog"`
	MetricsDatadogHost string `cli:"metrics-datadog-host"`
}

var dictionaryFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "dictionary",
		Value:  DefaultDictionaryFile,
		Usage:  "Path to the keyword dictionary",
		EnvVar: "LEXAN_DICTIONARY",
	},
	cli.BoolFlag{
		Name:   "allow-empty-dictionary",
		Usage:  "Accept a dictionary with no entries, classifying every token as an identifier or lexical error",
		EnvVar: "LEXAN_ALLOW_EMPTY_DICTIONARY",
	},
}

var AnalyzeCommand = analyzeCommand(&Action[AnalyzeConfig]{Action: Analyze})

func analyzeCommand(action *Action[AnalyzeConfig]) cli.Command {
	return cli.Command{
		Name:        "analyze",
		Usage:       "Classifies the tokens of an input file",
		Description: analyzeDescription,
		Flags: flatten(dictionaryFlags, []cli.Flag{
			cli.StringFlag{
				Name:   "input",
				Value:  DefaultInputFile,
				Usage:  "Path to the input file, used when no input file argument is given",
				EnvVar: "LEXAN_INPUT",
			},
			cli.StringFlag{
				Name:   "output",
				Value:  DefaultOutputFile,
				Usage:  "Path the report file is written to",
				EnvVar: "LEXAN_OUTPUT",
			},
			cli.StringFlag{
				Name:   "destination",
				Value:  report.DestinationBoth.String(),
				Usage:  "Where the report goes, one of ′console′, ′file′ or ′both′",
				EnvVar: "LEXAN_DESTINATION",
			},
			cli.StringFlag{
				Name:   "format",
				Value:  report.FormatTable.String(),
				Usage:  "Format of the report file, one of ′table′, ′json′ or ′yaml′",
				EnvVar: "LEXAN_FORMAT",
			},
			cli.IntFlag{
				Name:   "concurrency",
				Value:  1,
				Usage:  "Number of workers classifying tokens",
				EnvVar: "LEXAN_CONCURRENCY",
			},
			cli.BoolFlag{
				Name:   "strict",
				Usage:  "Exit with status 2 when any token is a lexical error",
				EnvVar: "LEXAN_STRICT",
			},
			cli.BoolFlag{
				Name:   "quiet",
				Usage:  "Don't print the banner or summary",
				EnvVar: "LEXAN_QUIET",
			},
			cli.StringFlag{
				Name:   "metrics-file",
				Usage:  "Write Prometheus metrics for the run to this file",
				EnvVar: "LEXAN_METRICS_FILE",
			},
			cli.BoolFlag{
				Name:   "metrics-datadog",
				Usage:  "Send metrics for the run to DogStatsD",
				EnvVar: "LEXAN_METRICS_DATADOG",
			},
			cli.StringFlag{
				Name:   "metrics-datadog-host",
				Value:  "127.0.0.1:8125",
				Usage:  "The dogstatsd instance to send metrics to using udp",
				EnvVar: "LEXAN_METRICS_DATADOG_HOST",
			},
		}, globalFlags),
		Action: NewConfigAndLogger(action),
	}
}

// Analyze runs a full analysis: dictionary, input, classification, report.
func Analyze(ctx context.Context, c *cli.Context, l logger.Logger, _ cliconfig.Loader, cfg *AnalyzeConfig) (err error) {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil || format == report.FormatConsole {
		return newUsageError(c, fmt.Errorf("invalid report format %q, must be one of \"table\", \"json\" or \"yaml\"", cfg.Format))
	}
	dest, err := report.ParseDestination(cfg.Destination)
	if err != nil {
		return newUsageError(c, err)
	}
	if cfg.Concurrency < 1 {
		return newUsageError(c, fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency))
	}

	input := cfg.Input
	if cfg.InputArg != "" {
		input = cfg.InputArg
	}
	if input == "" {
		return newUsageError(c, errors.New("missing input file"))
	}

	out := c.App.Writer
	if !cfg.Quiet {
		printBanner(out)
	}

	collector := metrics.NewCollector(l, metrics.CollectorConfig{
		Datadog:      cfg.MetricsDatadog,
		DatadogHost:  cfg.MetricsDatadogHost,
		TextfilePath: cfg.MetricsFile,
	})
	if err := collector.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := collector.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	start := time.Now()
	classifier, dictStats, err := loadClassifier(l, cfg.Dictionary, cfg.AllowEmptyDictionary)
	if err != nil {
		return err
	}
	classifier.Concurrency = cfg.Concurrency
	collector.Time("dictionary", time.Since(start))
	collector.RecordDictionary(classifier.Table().Len(), dictStats.Malformed)

	start = time.Now()
	tokens, err := source.ReadFile(input)
	if err != nil {
		return err
	}
	collector.Time("read", time.Since(start))
	l.Info("Read %s %s from %s", humanize.Comma(int64(len(tokens))), english.PluralWord(len(tokens), "token", ""), input)

	start = time.Now()
	tally := lexer.NewTally()
	results, err := classifier.ClassifyAll(ctx, tokens, tally)
	if err != nil {
		return fmt.Errorf("classifying tokens: %w", err)
	}
	collector.Time("classify", time.Since(start))

	stats := tally.Stats()
	collector.RecordResults(stats)

	start = time.Now()
	if dest.Console() {
		console := &report.TableReporter{Framed: true}
		fmt.Fprintln(out)
		if err := console.Report(out, results); err != nil {
			return fmt.Errorf("printing report: %w", err)
		}
	}

	var outputPath string
	if dest.File() {
		r, err := report.New(format)
		if err != nil {
			return err
		}
		if err := report.WriteFile(cfg.Output, r, results); err != nil {
			return err
		}
		outputPath = cfg.Output
		l.Debug("Wrote %s report to %s", format, cfg.Output)
	}
	collector.Time("report", time.Since(start))

	if !cfg.Quiet {
		report.WriteSummary(out, stats, outputPath)
	}

	if cfg.Strict && stats.Errors > 0 {
		return NewExitError(strictExitCode, fmt.Errorf("found %s", english.Plural(stats.Errors, "lexical error", "")))
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "\nAnalysis finished successfully")
	}
	return nil
}

// loadClassifier loads the dictionary at path into a classifier.
func loadClassifier(l logger.Logger, path string, allowEmpty bool) (*lexer.Classifier, dictionary.Stats, error) {
	var opts []dictionary.Option
	if allowEmpty {
		opts = append(opts, dictionary.AllowEmpty())
	}

	table, stats, err := dictionary.Load(l, path, opts...)
	if err != nil {
		return nil, stats, err
	}

	l.Notice("Dictionary loaded: %d keywords", table.Len())
	if stats.Malformed > 0 {
		l.Warn("Skipped %s in %s", english.Plural(stats.Malformed, "malformed dictionary entry", "malformed dictionary entries"), path)
	}

	return lexer.NewClassifier(table), stats, nil
}

func printBanner(w io.Writer) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "%s\nLEXICAL ANALYZER\n%s\n", rule, rule)
}
