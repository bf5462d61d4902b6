package projects

import (
	"strings"
)

const truncatedMarker = "\n# ... (file truncated)"

// CombinedContext concatenates every file under a path header. Each file
// is cut to limit characters.
func CombinedContext(p *Project, limit int) string {
	parts := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		content := f.Content
		if limit > 0 && len([]rune(content)) > limit {
			content = string([]rune(content)[:limit]) + truncatedMarker
		}
		parts = append(parts, "\n# ========== "+f.Path+" ==========\n"+content+"\n")
	}
	return strings.Join(parts, "\n")
}

// ChatContext returns the code and a description of what it covers: one
// file when index is set, otherwise the whole project.
func ChatContext(p *Project, index *int, limit int) (code, info string, err error) {
	if index != nil {
		f, err := p.File(*index)
		if err != nil {
			return "", "", err
		}
		return f.Content, "File: " + f.Name, nil
	}
	return CombinedContext(p, limit), "Project: " + p.Name, nil
}
