// lexan classifies the tokens of a text file as keywords, identifiers or
// lexical errors.
package main

import (
	"os"

	"github.com/buildkite/lexan/clicommand"
	"github.com/buildkite/lexan/version"
	"github.com/urfave/cli"
)

const appHelpTemplate = `Usage:

  {{.Name}} <command> [options...]

Available commands are:

  {{range .Commands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
  {{end}}
Use "{{.Name}} <command> --help" for more information about a command.

`

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	cli.AppHelpTemplate = appHelpTemplate

	app := newApp()
	return clicommand.PrintMessageAndReturnExitCode(app.ErrWriter, app.Run(args))
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lexan"
	app.Usage = "Lexical token classifier"
	app.Version = version.FullVersion()
	app.ErrWriter = os.Stderr
	app.Commands = clicommand.Commands

	// When no sub command is used
	app.Action = func(c *cli.Context) {
		_ = cli.ShowAppHelp(c)
		os.Exit(1)
	}

	// When a sub command can't be found
	app.CommandNotFound = func(c *cli.Context, command string) {
		_ = cli.ShowAppHelp(c)
		os.Exit(1)
	}

	return app
}
