package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/codebugger/internal/api/auth"
	"github.com/codebugger/internal/config"
)

// TokenCommand returns the token command
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Manage API access tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "Print a signed access token for the API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Aliases:  []string{"s"},
						Usage:    "Who the token is issued to",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "Token lifetime",
						Value: 24 * time.Hour,
					},
				},
				Action: runTokenIssue,
			},
		},
	}
}

func runTokenIssue(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ts := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	token, expiresAt, err := ts.Issue(c.String("subject"), c.Duration("ttl"))
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(c.App.Writer, token)
	fmt.Fprintf(c.App.ErrWriter, "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
