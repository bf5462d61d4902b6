package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/capture"
	"github.com/codebugger/internal/conversation"
	"github.com/codebugger/internal/prompts"
)

// Classifier picks a category for a code sample
type Classifier interface {
	Classify(kind analysis.Kind, s *analysis.Sample) analysis.Classification
}

// Renderer turns a classification into a prompt
type Renderer interface {
	Build(c analysis.Classification, v prompts.Vars) string
	BuildPlain(kind analysis.Kind, v prompts.Vars) string
}

// Completer sends prompts to a language model
type Completer interface {
	// Ready reports whether the model can be called at all
	Ready(model string) error
	Complete(ctx context.Context, prompt, model string) (string, error)
}

// Config holds the review service configuration
type Config struct {
	ReviewTimeout time.Duration
	DefaultModel  string
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() Config {
	return Config{
		ReviewTimeout: 5 * time.Minute,
		DefaultModel:  "gpt-4o",
	}
}

// Service represents the review orchestration service
type Service struct {
	classifier Classifier
	renderer   Renderer
	completer  Completer
	history    conversation.HistoryStore
	config     Config
}

// NewService creates a new review service
func NewService(classifier Classifier, renderer Renderer, completer Completer, history conversation.HistoryStore, config Config) *Service {
	if config.DefaultModel == "" {
		config.DefaultModel = DefaultConfig().DefaultModel
	}
	return &Service{
		classifier: classifier,
		renderer:   renderer,
		completer:  completer,
		history:    history,
		config:     config,
	}
}

// Request contains everything needed to analyse one code sample
type Request struct {
	Kind      analysis.Kind
	Code      string
	Model     string
	Question  string
	SessionID string
}

// Prepared is a rendered prompt that has not been sent yet
type Prepared struct {
	Kind           analysis.Kind
	Model          string
	Prompt         string
	Classification *analysis.Classification
}

// Result contains the output of a completed analysis
type Result struct {
	Kind           analysis.Kind
	Output         string
	Model          string
	Prompt         string
	Classification *analysis.Classification
	Duration       time.Duration
}

// captureRecord is the fixture written for each completed analysis
type captureRecord struct {
	Kind           analysis.Kind            `json:"kind"`
	Model          string                   `json:"model"`
	Prompt         string                   `json:"prompt"`
	Output         string                   `json:"output"`
	Classification *analysis.Classification `json:"classification,omitempty"`
	DurationMS     int64                    `json:"duration_ms"`
}

// Model returns the model a request will use
func (s *Service) Model(req Request) string {
	if m := strings.TrimSpace(req.Model); m != "" {
		return m
	}
	return s.config.DefaultModel
}

// Prepare classifies the sample and renders its prompt. For conversational
// requests the session history is read and substituted as well.
func (s *Service) Prepare(ctx context.Context, req Request) (*Prepared, error) {
	op := OpName(req.Kind)
	if req.Kind == analysis.KindConversational && s.history == nil {
		return nil, &Error{Kind: KindInvalidRequest, Op: op, Err: errors.New("conversation history is not available")}
	}

	p := &Prepared{Kind: req.Kind, Model: s.Model(req)}
	vars := prompts.Vars{Code: req.Code, Question: req.Question}

	if req.Kind == analysis.KindConversational {
		exchanges, err := s.history.ReadAll(ctx, req.SessionID)
		if err != nil {
			return nil, &Error{Kind: KindHistoryStore, Op: op, Err: err}
		}
		vars.History = conversation.FormatHistory(exchanges)
	}

	sample := analysis.NewSample(req.Code)
	if sample.Empty() {
		p.Prompt = s.renderer.BuildPlain(req.Kind, vars)
		return p, nil
	}

	c := s.classifier.Classify(req.Kind, sample)
	p.Classification = &c
	p.Prompt = s.renderer.Build(c, vars)
	return p, nil
}

// Run executes the pipeline: classify, render, complete. The model's reply
// is returned unmodified. Nothing is retried and no partial result is kept.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	op := OpName(req.Kind)
	model := s.Model(req)

	if err := s.completer.Ready(model); err != nil {
		return nil, &Error{Kind: KindConfigurationMissing, Op: op, Err: err}
	}

	if s.config.ReviewTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ReviewTimeout)
		defer cancel()
	}

	prepared, err := s.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := s.completer.Complete(ctx, prepared.Prompt, model)
	if err != nil {
		log.Error().Err(err).
			Str("kind", string(req.Kind)).
			Str("model", model).
			Msg("Analysis dispatch failed")
		return nil, &Error{Kind: KindDispatchFailure, Op: op, Err: err}
	}

	if req.Kind == analysis.KindConversational {
		if err := s.history.Append(ctx, req.SessionID, req.Question, output); err != nil {
			return nil, &Error{Kind: KindHistoryStore, Op: op, Err: err}
		}
	}

	result := &Result{
		Kind:           req.Kind,
		Output:         output,
		Model:          model,
		Prompt:         prepared.Prompt,
		Classification: prepared.Classification,
		Duration:       time.Since(start),
	}

	ev := log.Info().
		Str("kind", string(req.Kind)).
		Str("model", model).
		Dur("duration", result.Duration)
	if result.Classification != nil {
		ev = ev.Str("category", result.Classification.Category.String())
	}
	ev.Msg("Analysis completed")

	capture.WriteJSON(string(req.Kind), captureRecord{
		Kind:           req.Kind,
		Model:          model,
		Prompt:         result.Prompt,
		Output:         output,
		Classification: result.Classification,
		DurationMS:     result.Duration.Milliseconds(),
	})

	return result, nil
}
