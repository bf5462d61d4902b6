package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/rs/zerolog/log"
)

// ErrInvalidGitLabProject is returned when no project path or id was given
var ErrInvalidGitLabProject = errors.New("GitLab project is required")

// archiveFunc downloads a repository snapshot as a tar.gz
type archiveFunc func(ctx context.Context, baseURL, token, project, ref string) ([]byte, error)

// GitLabImporter downloads repository archives through the GitLab API
type GitLabImporter struct {
	URL     string
	Token   string
	archive archiveFunc
}

// NewGitLabImporter creates an importer for a GitLab instance
func NewGitLabImporter(url, token string) *GitLabImporter {
	return &GitLabImporter{
		URL:     strings.TrimSuffix(url, "/"),
		Token:   token,
		archive: clientArchive,
	}
}

// GitLabRequest selects a project snapshot. BaseURL and Token override the
// configured instance for a single import.
type GitLabRequest struct {
	Project string `json:"project"`
	Ref     string `json:"ref"`
	BaseURL string `json:"base_url"`
	Token   string `json:"token"`
}

// Download returns the archive name, a display name and the archive bytes
func (g *GitLabImporter) Download(ctx context.Context, req GitLabRequest) (archiveName, projectName string, data []byte, err error) {
	project := strings.Trim(strings.TrimSpace(req.Project), "/")
	if project == "" {
		return "", "", nil, ErrInvalidGitLabProject
	}
	baseURL := strings.TrimSuffix(req.BaseURL, "/")
	if baseURL == "" {
		baseURL = g.URL
	}
	token := req.Token
	if token == "" {
		token = g.Token
	}

	data, err = g.archive(ctx, baseURL, token, project, req.Ref)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to download GitLab archive for %s: %w", project, err)
	}

	name := project[strings.LastIndex(project, "/")+1:]
	log.Info().
		Str("gitlab_url", baseURL).
		Str("project", project).
		Str("ref", req.Ref).
		Int("bytes", len(data)).
		Msg("Downloaded GitLab archive")
	return name + ".tar.gz", "GitLab: " + name, data, nil
}

func clientArchive(ctx context.Context, baseURL, token, project, ref string) ([]byte, error) {
	client := gitlab.NewClient(nil, token)
	if err := client.SetBaseURL(fmt.Sprintf("%s/api/v4", baseURL)); err != nil {
		return nil, fmt.Errorf("failed to set GitLab API base URL: %w", err)
	}

	opts := &gitlab.ArchiveOptions{}
	if ref != "" {
		opts.SHA = gitlab.String(ref)
	}
	data, _, err := client.Repositories.Archive(project, opts)
	if err != nil {
		return nil, err
	}
	return data, nil
}
