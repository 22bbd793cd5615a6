package clicommand

import "github.com/urfave/cli"

// Commands is every lexan subcommand, in the order `lexan help` lists them.
var Commands = []cli.Command{
	AnalyzeCommand,
	ClassifyCommand,
	KeywordsCommand,
}
