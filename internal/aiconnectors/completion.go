package aiconnectors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ErrProviderNotConfigured means no credential exists for the provider a model maps to
var ErrProviderNotConfigured = errors.New("AI provider not configured")

// ProviderSettings are the credentials and suggested models of one provider
type ProviderSettings struct {
	APIKey  string
	BaseURL string
	Models  []string
}

// configured reports whether the provider has what it needs to be called
func (p ProviderSettings) configured(provider Provider) bool {
	if provider == ProviderOllama {
		return p.BaseURL != ""
	}
	return p.APIKey != ""
}

// Settings configures the completion service
type Settings struct {
	Providers         map[Provider]ProviderSettings
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxTokens         int
}

// Service implements prompt completion across the configured providers.
// Calls share one rate limiter and are always made at temperature 0.
type Service struct {
	settings Settings
	limiter  *rate.Limiter

	mu         sync.Mutex
	connectors map[string]*Connector
}

// NewService creates a completion service
func NewService(settings Settings) *Service {
	limit := rate.Inf
	if settings.RequestsPerSecond > 0 {
		limit = rate.Limit(settings.RequestsPerSecond)
	}
	burst := settings.Burst
	if burst <= 0 {
		burst = 1
	}
	if settings.Providers == nil {
		settings.Providers = map[Provider]ProviderSettings{}
	}
	return &Service{
		settings:   settings,
		limiter:    rate.NewLimiter(limit, burst),
		connectors: make(map[string]*Connector),
	}
}

// ProviderForModel maps a model name onto a provider by its prefix.
// Unrecognised names belong to ollama.
func ProviderForModel(model string) Provider {
	m := strings.ToLower(strings.TrimSpace(model))
	switch {
	case strings.HasPrefix(m, "gpt-"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return ProviderOpenAI
	case strings.HasPrefix(m, "gemini"):
		return ProviderGemini
	case strings.HasPrefix(m, "claude"):
		return ProviderClaude
	case strings.HasPrefix(m, "command"):
		return ProviderCohere
	default:
		return ProviderOllama
	}
}

// Ready checks that the model's provider is configured without calling it
func (s *Service) Ready(model string) error {
	provider := ProviderForModel(model)
	if !s.settings.Providers[provider].configured(provider) {
		return fmt.Errorf("%w: no credentials for %s (model %q)", ErrProviderNotConfigured, provider, model)
	}
	return nil
}

// Complete sends the prompt to the model and returns the reply unmodified
func (s *Service) Complete(ctx context.Context, prompt, model string) (string, error) {
	connector, err := s.connector(ctx, model)
	if err != nil {
		return "", err
	}

	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to acquire rate limit slot: %w", err)
	}

	start := time.Now()
	out, err := connector.Call(ctx, prompt)
	if err != nil {
		log.Error().Err(err).
			Str("provider", string(connector.GetProvider())).
			Str("model", model).
			Msg("Completion call failed")
		return "", err
	}

	log.Debug().
		Str("provider", string(connector.GetProvider())).
		Str("model", model).
		Int("prompt_chars", len(prompt)).
		Int("response_chars", len(out)).
		Dur("duration", time.Since(start)).
		Msg("Completion call succeeded")
	return out, nil
}

func (s *Service) connector(ctx context.Context, model string) (*Connector, error) {
	if err := s.Ready(model); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.connectors[model]; ok {
		return c, nil
	}

	provider := ProviderForModel(model)
	ps := s.settings.Providers[provider]
	c, err := NewConnector(ctx, ConnectorOptions{
		Provider: provider,
		APIKey:   ps.APIKey,
		BaseURL:  ps.BaseURL,
		ModelConfig: ModelConfig{
			Temperature: 0,
			MaxTokens:   s.settings.MaxTokens,
			Model:       model,
		},
	})
	if err != nil {
		return nil, err
	}
	s.connectors[model] = c
	return c, nil
}

// ModelInfo describes a configured provider and its suggested models
type ModelInfo struct {
	Provider   Provider `json:"provider"`
	Configured bool     `json:"configured"`
	Models     []string `json:"models"`
}

// Models lists every provider with its suggested models.
// For a configured Ollama server the locally installed models are listed.
func (s *Service) Models(ctx context.Context) []ModelInfo {
	out := make([]ModelInfo, 0, len(Providers))
	for _, p := range Providers {
		ps := s.settings.Providers[p]
		info := ModelInfo{Provider: p, Configured: ps.configured(p), Models: ps.Models}
		if p == ProviderOllama && info.Configured {
			if installed, err := FetchOllamaModels(ctx, ps.BaseURL); err == nil {
				info.Models = installed
			} else {
				log.Warn().Err(err).Str("base_url", ps.BaseURL).Msg("Could not list Ollama models")
			}
		}
		out = append(out, info)
	}
	return out
}
