package analysis

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Finding is a named group of matched items. Findings are kept in slices
// so their order survives into rendered prompts.
type Finding struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// PerformanceMetrics are coarse size counts used in optimization prompts
type PerformanceMetrics struct {
	TotalLines         int    `json:"total_lines"`
	FunctionCount      int    `json:"function_count"`
	ClassCount         int    `json:"class_count"`
	LoopCount          int    `json:"loop_count"`
	ConditionalCount   int    `json:"conditional_count"`
	ComplexityEstimate string `json:"complexity_estimate"`
}

// Signals carries the auxiliary observations made while classifying.
// None of it influences the selected category.
type Signals struct {
	SecurityIndicators []string            `json:"security_indicators,omitempty"`
	Risks              []Finding           `json:"risks,omitempty"`
	Concepts           []string            `json:"concepts,omitempty"`
	Opportunities      []Finding           `json:"opportunities,omitempty"`
	Metrics            *PerformanceMetrics `json:"metrics,omitempty"`
	Scenarios          []Finding           `json:"scenarios,omitempty"`
	FunctionSignatures []string            `json:"function_signatures,omitempty"`
	Degraded           bool                `json:"degraded,omitempty"`
}

func compile(pattern string, opts regexp2.RegexOptions) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, opts)
}

// findAll returns every non-overlapping match of re in text.
// When the pattern has a capture group, the first group is returned instead.
func findAll(re *regexp2.Regexp, text string) []string {
	var out []string
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		if groups := m.Groups(); len(groups) > 1 {
			out = append(out, groups[1].String())
		} else {
			out = append(out, m.String())
		}
		m, err = re.FindNextMatch(m)
	}
	return out
}

func matches(re *regexp2.Regexp, text string) bool {
	ok, err := re.MatchString(text)
	return err == nil && ok
}

type riskGroup struct {
	name     string
	patterns []*regexp2.Regexp
}

var riskGroups = []riskGroup{
	{"null_checks", []*regexp2.Regexp{
		compile(`\.get\(`, regexp2.Multiline),
		compile(`\[.*\]`, regexp2.Multiline),
		compile(`\.pop\(`, regexp2.Multiline),
	}},
	{"divisions", []*regexp2.Regexp{
		compile(`\/(?!=)`, regexp2.Multiline),
		compile(`%`, regexp2.Multiline),
		compile(`//`, regexp2.Multiline),
	}},
	{"loops", []*regexp2.Regexp{
		compile(`for\s+\w+\s+in`, regexp2.Multiline),
		compile(`while\s+`, regexp2.Multiline),
	}},
	{"external_calls", []*regexp2.Regexp{
		compile(`requests\.`, regexp2.Multiline),
		compile(`open\(`, regexp2.Multiline),
		compile(`\.read\(`, regexp2.Multiline),
	}},
	{"type_conversions", []*regexp2.Regexp{
		compile(`int\(`, regexp2.Multiline),
		compile(`str\(`, regexp2.Multiline),
		compile(`float\(`, regexp2.Multiline),
	}},
}

// ExtractRiskSignals collects literal matches per risk group, then the
// function and class names and the loop and conditional lines from the
// outline. Groups without matches are omitted.
// degraded reports that the outline could not be parsed.
func ExtractRiskSignals(s *Sample) (risks []Finding, degraded bool) {
	for _, group := range riskGroups {
		var found []string
		for _, re := range group.patterns {
			found = append(found, findAll(re, s.Text())...)
		}
		if len(found) > 0 {
			risks = append(risks, Finding{Name: group.name, Items: found})
		}
	}

	outline, ok := s.Outline()
	if !ok {
		return risks, true
	}
	if names := outline.FunctionNames(); len(names) > 0 {
		risks = append(risks, Finding{Name: "functions", Items: names})
	}
	if len(outline.Classes) > 0 {
		risks = append(risks, Finding{Name: "classes", Items: outline.Classes})
	}
	if len(outline.Loops) > 0 {
		risks = append(risks, Finding{Name: "loops_detected", Items: lineRefs(outline.Loops)})
	}
	if len(outline.Conditionals) > 0 {
		risks = append(risks, Finding{Name: "conditionals", Items: lineRefs(outline.Conditionals)})
	}
	return risks, false
}

func lineRefs(lines []int) []string {
	refs := make([]string, len(lines))
	for i, line := range lines {
		refs[i] = fmt.Sprintf("Line %d", line)
	}
	return refs
}

// FunctionSignatures renders "def name(args)" for every parsed function.
// ok is false when the sample does not parse.
func FunctionSignatures(s *Sample) (signatures []string, ok bool) {
	outline, ok := s.Outline()
	if !ok {
		return nil, false
	}
	for _, fn := range outline.Functions {
		signatures = append(signatures, fn.Signature())
	}
	return signatures, true
}

type concept struct {
	name  string
	check func(s *Sample) bool
}

var concepts = []concept{
	{"conditionals", func(s *Sample) bool { return s.has("if ") }},
	{"loops", func(s *Sample) bool { return s.hasAny("for ", "while ") }},
	{"lists", func(s *Sample) bool { return s.hasAny("[", "list(") }},
	{"dictionaries", func(s *Sample) bool { return s.hasAny("{", "dict(") }},
	{"functions", func(s *Sample) bool { return s.has("def ") }},
	{"classes", func(s *Sample) bool { return s.has("class ") }},
	{"error_handling", func(s *Sample) bool { return s.hasAny("try:", "except") }},
	{"file_handling", func(s *Sample) bool { return s.has("open(") }},
	{"lambda_functions", func(s *Sample) bool { return s.has("lambda") }},
	{"comprehensions", func(s *Sample) bool { return s.hasAny("for ", "if ") && s.has("[") }},
}

// IdentifyKeyConcepts lists the programming constructs worth explaining
func IdentifyKeyConcepts(s *Sample) []string {
	var out []string
	for _, c := range concepts {
		if c.check(s) {
			out = append(out, c.name)
		}
	}
	return out
}

var passwordLiteral = compile(`["'].*password.*["']`, regexp2.IgnoreCase)

// DetectSecurityIndicators flags security-sensitive patterns for bug reviews
func DetectSecurityIndicators(s *Sample) []string {
	var out []string
	if matches(passwordLiteral, s.Text()) {
		out = append(out, "password_handling")
	}
	if s.lowerHasAny("sql", "execute", "query", "select", "insert") {
		out = append(out, "database_operations")
	}
	if s.lowerHasAny("md5", "sha1", "hash") {
		out = append(out, "hashing_operations")
	}
	if s.lowerHas("request") && s.lowerHasAny("post", "get", "form") {
		out = append(out, "user_input_handling")
	}
	if s.hasAny("open(", "file.save", "upload") {
		out = append(out, "file_operations")
	}
	return out
}

var rangeLenLoop = compile(`for.*in.*range\(len\(`, regexp2.None)

// findings accumulates items per name, ordered by first appearance.
type findings struct {
	list  []Finding
	index map[string]int
}

func (f *findings) add(name, item string) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	i, ok := f.index[name]
	if !ok {
		i = len(f.list)
		f.index[name] = i
		f.list = append(f.list, Finding{Name: name})
	}
	f.list[i].Items = append(f.list[i].Items, item)
}

// DetectOptimizationOpportunities scans line by line for common
// performance smells. Line numbers are 1-based.
func DetectOptimizationOpportunities(s *Sample) []Finding {
	lines := s.Lines()
	usesPandas := s.lowerHas("pandas")
	var found findings

	for idx, line := range lines {
		i := idx + 1
		clean := strings.TrimSpace(line)

		if matches(rangeLenLoop, clean) {
			found.add("loop_optimization", fmt.Sprintf("Line %d: Use enumerate() instead of range(len())", i))
		}
		if strings.Contains(clean, ".append(") && anyStartsWithFor(lines[max(0, i-3):i]) {
			found.add("list_comprehension", fmt.Sprintf("Line %d: Consider list comprehension", i))
		}
		if strings.Contains(clean, "execute(") &&
			strings.Contains(strings.Join(lines[max(0, i-5):min(len(lines), i+5)], " "), "for ") {
			found.add("database_optimization", fmt.Sprintf("Line %d: Consider batch operations", i))
		}
		if strings.Contains(clean, "+=") && strings.Contains(strings.ToLower(clean), "str") {
			found.add("string_optimization", fmt.Sprintf("Line %d: String concatenation inefficiency", i))
		}
		if strings.Contains(clean, ".apply(") && usesPandas {
			found.add("vectorization", fmt.Sprintf("Line %d: Consider vectorized operations", i))
		}
		if strings.Count(clean, "(") > 3 {
			found.add("function_optimization", fmt.Sprintf("Line %d: Multiple function calls - consider caching", i))
		}
	}
	return found.list
}

func anyStartsWithFor(lines []string) bool {
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "for ") {
			return true
		}
	}
	return false
}

// CalculatePerformanceMetrics counts constructs and estimates overall complexity
func CalculatePerformanceMetrics(s *Sample) PerformanceMetrics {
	text := s.Text()
	m := PerformanceMetrics{
		TotalLines:       s.LineCount(),
		FunctionCount:    s.FunctionCount(),
		ClassCount:       s.ClassCount(),
		LoopCount:        strings.Count(text, "for ") + strings.Count(text, "while "),
		ConditionalCount: strings.Count(text, "if "),
	}
	score := m.FunctionCount*2 + m.ClassCount*3 + m.LoopCount*2 + m.ConditionalCount
	switch {
	case score > 20:
		m.ComplexityEstimate = "high"
	case score > 10:
		m.ComplexityEstimate = "medium"
	default:
		m.ComplexityEstimate = "low"
	}
	return m
}

var defName = compile(`def\s+(\w+)`, regexp2.None)

// IdentifyTestScenarios lists what a generated test suite should cover.
// degraded reports that function names came from the regex fallback.
func IdentifyTestScenarios(s *Sample) (scenarios []Finding, degraded bool) {
	var functions []string
	if outline, ok := s.Outline(); ok {
		functions = outline.FunctionNames()
	} else {
		degraded = true
		functions = findAll(defName, s.Text())
	}
	if len(functions) > 0 {
		scenarios = append(scenarios, Finding{Name: "functions", Items: functions})
	}

	if s.hasAny("try:", "except", "raise") {
		scenarios = append(scenarios, Finding{Name: "error_handling", Items: []string{"exception_scenarios"}})
	}
	if s.lowerHasAny("execute", "query", "select", "insert") {
		scenarios = append(scenarios, Finding{Name: "database", Items: []string{"connection_tests", "query_validation", "transaction_rollback"}})
	}
	if s.hasAny("open(", "read(", "write(") {
		scenarios = append(scenarios, Finding{Name: "file_operations", Items: []string{"file_existence", "permissions", "content_validation"}})
	}
	if s.has("@app.route") || (s.has("def ") && s.has("request")) {
		scenarios = append(scenarios, Finding{Name: "web_endpoints", Items: []string{"status_codes", "authentication", "input_validation"}})
	}
	if s.lowerHasAny("pandas", "dataframe", "csv") {
		scenarios = append(scenarios, Finding{Name: "data_processing", Items: []string{"empty_data", "invalid_formats", "large_datasets"}})
	}
	return scenarios, degraded
}
