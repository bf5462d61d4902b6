package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/mdombrov-33/go-promptguard/detector"
	"github.com/rs/zerolog/log"
)

// Verdict is the outcome of screening one question
type Verdict struct {
	Safe      bool
	RiskScore float64
}

// Screener checks chat questions for prompt injection
type Screener interface {
	Screen(ctx context.Context, text string) Verdict
}

// PromptGuard screens questions with go-promptguard. When Block is set an
// unsafe question is rejected, otherwise it is only logged.
type PromptGuard struct {
	Block  bool
	detect func(ctx context.Context, text string) Verdict
}

// NewPromptGuard creates a screener that flags inputs at or above threshold
func NewPromptGuard(threshold float64, block bool) *PromptGuard {
	guard := detector.New(detector.WithThreshold(threshold))
	return &PromptGuard{
		Block: block,
		detect: func(ctx context.Context, text string) Verdict {
			result := guard.Detect(ctx, text)
			return Verdict{Safe: result.Safe, RiskScore: result.RiskScore}
		},
	}
}

// Screen runs the detector over text
func (g *PromptGuard) Screen(ctx context.Context, text string) Verdict {
	return g.detect(ctx, text)
}

// blocker is implemented by screeners that can reject requests
type blocker interface {
	Blocks() bool
}

// Blocks reports whether unsafe questions are rejected
func (g *PromptGuard) Blocks() bool {
	return g.Block
}

// screenQuestion logs unsafe questions and rejects them when the screener
// is configured to block
func (s *Server) screenQuestion(c echo.Context, question string) error {
	if s.deps.Screener == nil {
		return nil
	}
	verdict := s.deps.Screener.Screen(c.Request().Context(), question)
	if verdict.Safe {
		return nil
	}

	b, ok := s.deps.Screener.(blocker)
	block := ok && b.Blocks()
	log.Warn().
		Float64("risk_score", verdict.RiskScore).
		Bool("blocked", block).
		Str("path", c.Path()).
		Msg("Possible prompt injection in question")
	if block {
		return badRequest("question rejected by prompt screening (risk %.2f)", verdict.RiskScore)
	}
	return nil
}
