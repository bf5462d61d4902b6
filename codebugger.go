package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/codebugger/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:    "codebugger",
		Usage:   "Category-aware AI code analysis for Python",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from `FILE`",
				Value: ".env",
			},
		},
		Before: func(c *cli.Context) error {
			return cmd.LoadEnvFile(c.String("env-file"))
		},
		Commands: []*cli.Command{
			cmd.APICommand(),
			cmd.AnalyzeCommand(),
			cmd.ConfigCommand(),
			cmd.EnvCommand(),
			cmd.TokenCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
