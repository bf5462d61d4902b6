package prompts

import (
	"strings"

	"github.com/codebugger/internal/analysis"
)

// Vars are the values substituted into a template
type Vars struct {
	Code               string
	Question           string
	History            string
	RiskAnalysis       string
	FunctionSignatures string
}

// Render substitutes every placeholder in a single pass. Substituted text is
// never rescanned, so user input containing "{code}" is inserted verbatim.
func Render(template string, v Vars) string {
	r := strings.NewReplacer(
		"{code}", v.Code,
		"{question}", v.Question,
		"{history}", v.History,
		"{risk_analysis}", v.RiskAnalysis,
		"{function_signatures}", v.FunctionSignatures,
	)
	return r.Replace(template)
}

// Builder assembles final prompts from the catalogue
type Builder struct{}

// Build selects, enriches and renders the template for a classification
func (Builder) Build(c analysis.Classification, v Vars) string {
	tpl := SelectTemplate(c.Kind, c.Category)
	tpl = Enrich(c.Kind, tpl, c)
	if v.RiskAnalysis == "" {
		v.RiskAnalysis = RiskText(c.Signals.Risks)
	}
	if v.FunctionSignatures == "" {
		v.FunctionSignatures = SignatureText(c.Signals.FunctionSignatures)
	}
	return Render(tpl, v)
}

// BuildPlain renders the kind's unclassified template
func (Builder) BuildPlain(kind analysis.Kind, v Vars) string {
	if v.RiskAnalysis == "" {
		v.RiskAnalysis = noRisksText
	}
	if v.FunctionSignatures == "" {
		v.FunctionSignatures = noFunctionsText
	}
	return Render(PlainTemplate(kind), v)
}
