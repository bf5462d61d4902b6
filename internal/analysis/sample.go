package analysis

import (
	"strings"
	"sync"
)

// Sample is an immutable view over a submitted code snippet.
// Derived values are computed once on construction; the outline is parsed lazily.
type Sample struct {
	text  string
	lower string
	lines []string

	lineCount   int
	importCount int

	outlineOnce sync.Once
	outline     *Outline
	outlineErr  error
}

// NewSample wraps source text for classification
func NewSample(text string) *Sample {
	s := &Sample{
		text:  text,
		lower: strings.ToLower(text),
		lines: strings.Split(text, "\n"),
	}
	for _, line := range s.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		s.lineCount++
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			s.importCount++
		}
	}
	return s
}

// Text returns the raw source
func (s *Sample) Text() string { return s.text }

// Lower returns the lower-cased source
func (s *Sample) Lower() string { return s.lower }

// Lines returns the source split on newlines, blank lines included
func (s *Sample) Lines() []string { return s.lines }

// Empty reports whether there is no code at all
func (s *Sample) Empty() bool { return s.text == "" }

// LineCount is the number of non-blank lines
func (s *Sample) LineCount() int { return s.lineCount }

// FunctionCount counts occurrences of "def " anywhere in the text
func (s *Sample) FunctionCount() int { return strings.Count(s.text, "def ") }

// ClassCount counts occurrences of "class " anywhere in the text
func (s *Sample) ClassCount() int { return strings.Count(s.text, "class ") }

// ImportCount is the number of lines starting with "import " or "from "
func (s *Sample) ImportCount() int { return s.importCount }

// Outline returns the lenient structural parse of the sample.
// ok is false when the source does not parse as Python.
func (s *Sample) Outline() (outline *Outline, ok bool) {
	s.outlineOnce.Do(func() {
		s.outline, s.outlineErr = parseOutline(s.text)
	})
	if s.outlineErr != nil {
		return nil, false
	}
	return s.outline, true
}

func (s *Sample) has(sub string) bool { return strings.Contains(s.text, sub) }

func (s *Sample) lowerHas(sub string) bool { return strings.Contains(s.lower, sub) }

func (s *Sample) lowerHasAny(subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s.lower, sub) {
			return true
		}
	}
	return false
}

func (s *Sample) hasAny(subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s.text, sub) {
			return true
		}
	}
	return false
}
