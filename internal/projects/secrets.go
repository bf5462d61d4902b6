package projects

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/zricethezav/gitleaks/v8/detect"
)

// SecretScanner counts hard-coded credentials in project files
type SecretScanner interface {
	Scan(files []File) []File
}

// GitleaksScanner scans with the default gitleaks rule set
type GitleaksScanner struct {
	mu       sync.Mutex
	detector *detect.Detector
}

// NewGitleaksScanner builds a scanner from the default gitleaks config
func NewGitleaksScanner() (*GitleaksScanner, error) {
	d, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks rules: %w", err)
	}
	return &GitleaksScanner{detector: d}, nil
}

// Scan sets SecretFindings on every file and returns the slice
func (g *GitleaksScanner) Scan(files []File) []File {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range files {
		findings := g.detector.DetectString(files[i].Content)
		files[i].SecretFindings = len(findings)
		for _, f := range findings {
			log.Warn().
				Str("path", files[i].Path).
				Str("rule", f.RuleID).
				Int("line", f.StartLine).
				Msg("Possible secret in project file")
		}
	}
	return files
}
