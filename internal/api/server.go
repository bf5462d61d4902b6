package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/codebugger/internal/aiconnectors"
	"github.com/codebugger/internal/api/auth"
	"github.com/codebugger/internal/conversation"
	"github.com/codebugger/internal/logging"
	"github.com/codebugger/internal/projects"
	"github.com/codebugger/internal/review"
)

// Analyzer runs one analysis through the review pipeline
type Analyzer interface {
	Run(ctx context.Context, req review.Request) (*review.Result, error)
}

// ModelLister reports the configured providers and their models
type ModelLister interface {
	Models(ctx context.Context) []aiconnectors.ModelInfo
}

// Deps are the collaborators the handlers call into. Screener and Tokens
// are optional.
type Deps struct {
	Reviews  Analyzer
	History  conversation.HistoryStore
	Projects projects.Store
	Ingester *projects.Ingester
	GitHub   *projects.GitHubImporter
	GitLab   *projects.GitLabImporter
	Models   ModelLister
	Screener Screener
	Tokens   *auth.TokenService
}

// Options tune the HTTP surface
type Options struct {
	Port           int
	CORSOrigins    []string
	BodyLimit      string
	MaxUploadBytes int64
	ChatFileLimit  int
}

// Server represents the API server
type Server struct {
	echo    *echo.Echo
	port    int
	deps    Deps
	options Options
}

// NewServer creates a new API server
func NewServer(deps Deps, options Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	// Middleware
	e.Use(logging.RequestLogger())
	e.Use(middleware.Recover())
	if len(options.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     options.CORSOrigins,
			AllowCredentials: !slices.Contains(options.CORSOrigins, "*"),
		}))
	} else {
		e.Use(middleware.CORS())
	}
	if options.BodyLimit != "" {
		e.Use(middleware.BodyLimit(options.BodyLimit))
	}

	server := &Server{
		echo:    e,
		port:    options.Port,
		deps:    deps,
		options: options,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "AI Code Review API is running",
		})
	})
	s.echo.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Welcome to AI Code Review API",
			"docs":    "/api/v1/openapi.json",
		})
	})

	// API v1 group
	v1 := s.echo.Group("/api/v1")
	v1.GET("/openapi.json", s.openAPI)

	protected := v1.Group("")
	if s.deps.Tokens != nil && s.deps.Tokens.Enabled() {
		protected.Use(auth.RequireAuth(s.deps.Tokens))
	}

	// Single-sample analysis
	for _, route := range analysisRoutes {
		protected.POST("/analyze/"+route.path, s.analyzeHandler(route))
	}

	// Conversations
	protected.POST("/conversational/chat", s.conversationalChat)
	protected.POST("/conversational/:id/chat", s.projectChat)
	protected.GET("/conversational/:id/history", s.history)

	// Projects
	protected.GET("/projects", s.listProjects)
	protected.POST("/projects/upload", s.uploadProject)
	protected.POST("/projects/github", s.importGitHub)
	protected.GET("/projects/github/validate", s.validateGitHub)
	protected.POST("/projects/gitlab", s.importGitLab)
	protected.GET("/projects/:id", s.getProject)
	protected.DELETE("/projects/:id", s.deleteProject)
	protected.POST("/projects/:id/analyze", s.analyzeProjectFile)

	protected.GET("/models", s.models)
}

// Start begins the API server
func (s *Server) Start() error {
	// Start server in a goroutine
	go func() {
		log.Info().Int("port", s.port).Msg("API server listening")
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("Shutting down API server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) models(c echo.Context) error {
	if s.deps.Models == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "success", "providers": []aiconnectors.ModelInfo{}})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "success",
		"providers": s.deps.Models.Models(c.Request().Context()),
	})
}
