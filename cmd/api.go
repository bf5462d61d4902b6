package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/codebugger/internal/api"
	"github.com/codebugger/internal/api/auth"
	"github.com/codebugger/internal/config"
	"github.com/codebugger/internal/logging"
	"github.com/codebugger/internal/projects"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the code review API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides server.port)",
			},
		},
		Action: runAPI,
	}
}

func runAPI(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Pretty); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		// A missing provider key only fails the requests that need it
		log.Warn().Err(err).Msg("Configuration is incomplete")
	}

	ctx := c.Context
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	expirer, err := a.expirer(ctx)
	if err != nil {
		return err
	}
	if err := expirer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start project expiry: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := expirer.Stop(stopCtx); err != nil {
			log.Error().Err(err).Msg("Failed to stop project expiry")
		}
	}()

	var scanner projects.SecretScanner
	if cfg.Projects.ScanSecrets {
		gs, err := projects.NewGitleaksScanner()
		if err != nil {
			log.Warn().Err(err).Msg("Secret scanning disabled")
		} else {
			scanner = gs
		}
	}

	deps := api.Deps{
		Reviews:  a.reviews,
		History:  a.history,
		Projects: a.projects,
		Ingester: projects.NewIngester(a.projects, projects.Extractor{MinFileSize: cfg.Projects.MinFileSize}, scanner),
		GitHub:   projects.NewGitHubImporter(cfg.GitHub.WebURL, cfg.GitHub.APIURL, cfg.GitHub.Token, cfg.GitHub.Timeout),
		GitLab:   projects.NewGitLabImporter(cfg.GitLab.URL, cfg.GitLab.Token),
		Models:   a.ai,
		Tokens:   auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
	}
	if cfg.Guard.Enabled {
		deps.Screener = api.NewPromptGuard(cfg.Guard.Threshold, cfg.Guard.Block)
	}
	if !deps.Tokens.Enabled() {
		log.Warn().Msg("auth.jwt_secret is not set; /api/v1 is unauthenticated")
	}

	server := api.NewServer(deps, api.Options{
		Port:           cfg.Server.Port,
		CORSOrigins:    cfg.Server.CORSOrigins,
		BodyLimit:      cfg.Server.BodyLimit,
		MaxUploadBytes: int64(cfg.Projects.MaxUploadMB) << 20,
		ChatFileLimit:  cfg.Projects.ChatFileLimit,
	})
	return server.Start()
}
