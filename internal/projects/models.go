package projects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for unknown project ids
	ErrNotFound = errors.New("project not found")
	// ErrNoPythonFiles is returned when an archive holds no usable Python source
	ErrNoPythonFiles = errors.New("No Python files found in the uploaded project")
)

// IndexError reports a file index outside the project
type IndexError struct {
	Index int
	Total int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("File index %d out of range", e.Index)
}

// Source says where a project came from
type Source string

const (
	SourceUpload Source = "upload"
	SourceGitHub Source = "github"
	SourceGitLab Source = "gitlab"
)

// File is one indexed Python file of a project
type File struct {
	Index          int    `json:"index"`
	Name           string `json:"name"`
	Path           string `json:"path"`
	Size           int64  `json:"size"`
	Content        string `json:"-"`
	SecretFindings int    `json:"secret_findings"`
}

// Project is an uploaded or imported code base
type Project struct {
	ID        string    `json:"project_id"`
	Name      string    `json:"project_name"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Files     []File    `json:"files"`
}

// Summary is a project without its file contents
type Summary struct {
	ID        string    `json:"project_id"`
	Name      string    `json:"project_name"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	FileCount int       `json:"total_files"`
}

// NewID returns a short random project id
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// File returns the file at index
func (p *Project) File(index int) (*File, error) {
	if index < 0 || index >= len(p.Files) {
		return nil, &IndexError{Index: index, Total: len(p.Files)}
	}
	return &p.Files[index], nil
}

// SecretsDetected sums the secret findings of every file
func (p *Project) SecretsDetected() int {
	total := 0
	for _, f := range p.Files {
		total += f.SecretFindings
	}
	return total
}

// Summary describes the project without file contents
func (p *Project) Summary() Summary {
	return Summary{
		ID:        p.ID,
		Name:      p.Name,
		Source:    p.Source,
		CreatedAt: p.CreatedAt,
		FileCount: len(p.Files),
	}
}
