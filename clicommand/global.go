package clicommand

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildkite/lexan/internal/osutil"
	"github.com/buildkite/lexan/logger"
	"github.com/oleiade/reflections"
	"github.com/urfave/cli"
)

var ConfigFlag = cli.StringFlag{
	Name:   "config",
	Value:  "",
	Usage:  "Path to a configuration file",
	EnvVar: "LEXAN_CONFIG",
}

var DebugFlag = cli.BoolFlag{
	Name:   "debug",
	Usage:  "Enable debug mode. Synonym for ′--log-level debug′. Takes precedence over ′--log-level′",
	EnvVar: "LEXAN_DEBUG",
}

var LogLevelFlag = cli.StringFlag{
	Name:   "log-level",
	Value:  "notice",
	Usage:  "Set the log level for lexan. Possible values are: ′debug′, ′info′, ′notice′, ′warn′, ′error′, ′fatal′",
	EnvVar: "LEXAN_LOG_LEVEL",
}

var LogFormatFlag = cli.StringFlag{
	Name:   "log-format",
	Value:  "text",
	Usage:  "The format to use for the logger output, either ′text′ or ′json′",
	EnvVar: "LEXAN_LOG_FORMAT",
}

var NoColorFlag = cli.BoolFlag{
	Name:   "no-color",
	Usage:  "Don't show colors in logging",
	EnvVar: "LEXAN_NO_COLOR",
}

// DefaultConfigFilePaths are checked in order when --config isn't given.
func DefaultConfigFilePaths() []string {
	paths := []string{"lexan.cfg"}

	if home, err := osutil.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".lexan.cfg"))
	}

	return paths
}

// CreateLogger builds the logger described by cfg's global flags. Log lines
// always go to stderr so stdout only carries reports.
func CreateLogger(cfg any) (logger.Logger, error) {
	format := "text"
	if v, err := reflections.GetField(cfg, "LogFormat"); err == nil && v != "" {
		format = v.(string)
	}

	var printer logger.Printer
	switch format {
	case "text":
		tp := logger.NewTextPrinter(os.Stderr)
		if noColor, err := reflections.GetField(cfg, "NoColor"); err == nil && noColor == true {
			tp.Colors = false
		}
		printer = tp
	case "json":
		printer = logger.NewJSONPrinter(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid log format %q, must be one of \"text\" or \"json\"", format)
	}

	return logger.NewConsoleLogger(printer, os.Exit), nil
}

// HandleGlobalFlags applies the global flags in cfg to l.
func HandleGlobalFlags(l logger.Logger, cfg any) error {
	if logLevel, err := reflections.GetField(cfg, "LogLevel"); err == nil && logLevel != "" {
		level, err := logger.LevelFromString(logLevel.(string))
		if err != nil {
			return err
		}
		l.SetLevel(level)
	}

	// --debug wins over --log-level
	if debug, err := reflections.GetField(cfg, "Debug"); err == nil && debug == true {
		l.SetLevel(logger.DEBUG)
	}

	return nil
}
