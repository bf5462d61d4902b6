package prompts

import (
	"fmt"
	"strings"

	"github.com/codebugger/internal/analysis"
)

const noRisksText = "No specific risks detected"

const noFunctionsText = "No functions found"

// Enrich appends the classification's signals to a template. It only ever
// adds text after the template body.
func Enrich(kind analysis.Kind, template string, c analysis.Classification) string {
	switch kind {
	case analysis.KindOptimization:
		return template + optimizationSection(c.Signals)
	case analysis.KindEdgeCase:
		return template + "\n\nDetected risk areas:\n" + RiskText(c.Signals.Risks) +
			"\n\nFocus on the specific risk patterns identified above and generate executable pytest test cases."
	case analysis.KindExplanation:
		if len(c.Signals.Concepts) > 0 {
			return template + "\n\nPay special attention to explaining these concepts: " + strings.Join(c.Signals.Concepts, ", ")
		}
	case analysis.KindUnitTest:
		if len(c.Signals.Scenarios) > 0 {
			return template + "\n\nSpecific test scenarios to cover:\n" + findingLines(c.Signals.Scenarios)
		}
	}
	return template
}

func optimizationSection(s analysis.Signals) string {
	metrics := analysis.PerformanceMetrics{ComplexityEstimate: "low"}
	if s.Metrics != nil {
		metrics = *s.Metrics
	}

	var b strings.Builder
	b.WriteString("\n\nDETECTED OPTIMIZATION OPPORTUNITIES:\n")
	b.WriteString(findingLines(s.Opportunities))
	b.WriteString("\n\nPERFORMANCE METRICS:\n")
	fmt.Fprintf(&b, "- Code complexity: %s\n", metrics.ComplexityEstimate)
	fmt.Fprintf(&b, "- Total functions: %d\n", metrics.FunctionCount)
	fmt.Fprintf(&b, "- Loop count: %d\n", metrics.LoopCount)
	fmt.Fprintf(&b, "- Lines of code: %d\n", metrics.TotalLines)
	b.WriteString("\nFocus on the specific line-level optimizations identified above.")
	return b.String()
}

// findingLines renders one "- name: a, b" line per finding
func findingLines(findings []analysis.Finding) string {
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, fmt.Sprintf("- %s: %s", f.Name, strings.Join(f.Items, ", ")))
	}
	return strings.Join(lines, "\n")
}

// RiskText renders edge-case risks, or a placeholder sentence when there are none
func RiskText(risks []analysis.Finding) string {
	if len(risks) == 0 {
		return noRisksText
	}
	return findingLines(risks)
}

// SignatureText renders one signature per line
func SignatureText(signatures []string) string {
	if len(signatures) == 0 {
		return noFunctionsText
	}
	return strings.Join(signatures, "\n")
}
