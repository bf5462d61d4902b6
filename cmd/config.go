package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/codebugger/internal/aiconnectors"
	"github.com/codebugger/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "codebugger.toml",
					},
					&cli.StringFlag{
						Name:  "storage",
						Usage: "Storage driver: memory, sqlite or postgres",
						Value: "sqlite",
					},
					&cli.StringFlag{
						Name:  "dsn",
						Usage: "Storage connection string (defaults per driver)",
					},
					&cli.StringFlag{
						Name:    "model",
						Aliases: []string{"m"},
						Usage:   "Default model; its provider section is written for you",
						Value:   "gpt-4o",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: runConfigValidate,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")
	opts := config.InitOptions{
		Storage: c.String("storage"),
		DSN:     c.String("dsn"),
		Model:   c.String("model"),
	}

	if err := config.InitConfig(outputPath, opts); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	provider := aiconnectors.ProviderForModel(opts.Model)
	fmt.Printf("Created configuration file at %s (storage: %s, model: %s via %s)\n", outputPath, opts.Storage, opts.Model, provider)
	if env := providerEnv[provider]; len(env) > 0 {
		fmt.Printf("Set %s or edit [ai.%s] before running the API\n", strings.Join(env, " or "), provider)
	}
	return nil
}

func runConfigValidate(c *cli.Context) error {
	configPath := c.String("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("Configuration is valid (storage: %s, default model: %s)\n", cfg.Storage.Driver, cfg.AI.DefaultModel)
	return nil
}
