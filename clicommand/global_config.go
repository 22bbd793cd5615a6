package clicommand

import "github.com/urfave/cli"

// GlobalConfig is embedded in every command's config.
type GlobalConfig struct {
	Config    string `cli:"config"`
	Debug     bool   `cli:"debug"`
	LogLevel  string `cli:"log-level"`
	LogFormat string `cli:"log-format"`
	NoColor   bool   `cli:"no-color"`
}

var globalFlags = []cli.Flag{
	ConfigFlag,
	NoColorFlag,
	DebugFlag,
	LogLevelFlag,
	LogFormatFlag,
}

func flatten(flagSets ...[]cli.Flag) []cli.Flag {
	length := 0
	for _, flagSet := range flagSets {
		length += len(flagSet)
	}

	flat := make([]cli.Flag, 0, length)
	for _, flagSet := range flagSets {
		flat = append(flat, flagSet...)
	}

	return flat
}
