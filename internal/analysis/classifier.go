package analysis

import (
	"github.com/rs/zerolog/log"
)

// Classification is the outcome of classifying a sample for one kind
type Classification struct {
	Kind     Kind     `json:"kind"`
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Signals  Signals  `json:"signals"`
}

// Heuristic is the keyword and complexity classifier. It is stateless and
// safe for concurrent use.
type Heuristic struct{}

// Classify implements the classifier used by the review pipeline
func (Heuristic) Classify(kind Kind, s *Sample) Classification {
	return Classify(kind, s)
}

// Classify picks a category for the sample and gathers the kind's signals.
// It never fails: unparseable code only marks the signals as degraded.
func Classify(kind Kind, s *Sample) Classification {
	score := Score(kind, s)
	c := Classification{
		Kind: kind,
		Category: Category{
			Domain: DetectDomain(kind, s),
			Tier:   tierFor(kind, score),
		},
		Score: score,
	}

	switch kind {
	case KindBug:
		c.Signals.SecurityIndicators = DetectSecurityIndicators(s)
	case KindExplanation:
		c.Signals.Concepts = IdentifyKeyConcepts(s)
	case KindOptimization:
		metrics := CalculatePerformanceMetrics(s)
		c.Signals.Opportunities = DetectOptimizationOpportunities(s)
		c.Signals.Metrics = &metrics
	case KindEdgeCase:
		c.Signals.Risks, c.Signals.Degraded = ExtractRiskSignals(s)
		c.Signals.FunctionSignatures, _ = FunctionSignatures(s)
	case KindUnitTest:
		c.Signals.Scenarios, c.Signals.Degraded = IdentifyTestScenarios(s)
	}

	if c.Signals.Degraded {
		log.Warn().
			Str("kind", string(kind)).
			Int("lines", s.LineCount()).
			Msg("Could not parse code for function analysis")
	}

	log.Debug().
		Str("kind", string(kind)).
		Str("category", c.Category.String()).
		Int("score", score).
		Msg("Classified code sample")

	return c
}
