package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codebugger/internal/retry"
)

var (
	// ErrInvalidGitHubURL is returned for URLs outside the GitHub host
	ErrInvalidGitHubURL = errors.New("Invalid GitHub URL")
	// ErrDownloadFailed is returned when no branch archive could be fetched
	ErrDownloadFailed = errors.New("Could not download repository. Make sure it's public.")
)

const userAgent = "codebugger/1.0"

// GitHubImporter downloads public repositories as ZIP archives
type GitHubImporter struct {
	WebURL  string
	APIURL  string
	Token   string
	Timeout time.Duration
	Client  *http.Client
	Retry   retry.RetryConfig
}

// NewGitHubImporter creates an importer for github.com or a compatible host
func NewGitHubImporter(webURL, apiURL, token string, timeout time.Duration) *GitHubImporter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GitHubImporter{
		WebURL:  strings.TrimSuffix(webURL, "/"),
		APIURL:  strings.TrimSuffix(apiURL, "/"),
		Token:   token,
		Timeout: timeout,
		Client:  &http.Client{},
		Retry:   retry.DownloadRetryConfig(),
	}
}

// normalize trims the URL and checks it points at the configured host
func (g *GitHubImporter) normalize(repoURL string) (string, error) {
	repoURL = strings.TrimRight(strings.TrimSpace(repoURL), "/")
	if !strings.HasPrefix(repoURL, g.WebURL+"/") {
		return "", ErrInvalidGitHubURL
	}
	return repoURL, nil
}

// RepoName returns the last path element of a repository URL
func RepoName(repoURL string) string {
	repoURL = strings.TrimRight(strings.TrimSpace(repoURL), "/")
	return repoURL[strings.LastIndex(repoURL, "/")+1:]
}

// Download fetches the main branch archive, falling back to master
func (g *GitHubImporter) Download(ctx context.Context, repoURL string) (string, []byte, error) {
	repoURL, err := g.normalize(repoURL)
	if err != nil {
		return "", nil, err
	}
	name := RepoName(repoURL)

	for _, branch := range []string{"main", "master"} {
		archiveURL := fmt.Sprintf("%s/archive/refs/heads/%s.zip", repoURL, branch)

		var data []byte
		result := retry.RetryWithBackoff(ctx, g.Retry, func() error {
			var err error
			data, err = g.get(ctx, archiveURL, "")
			return err
		})
		if result.Success {
			log.Info().
				Str("repo", repoURL).
				Str("branch", branch).
				Int("attempts", result.Attempts).
				Msg("Downloaded repository archive")
			return name, data, nil
		}
		log.Debug().Err(result.LastError).Str("url", archiveURL).Msg("Branch archive unavailable")
	}
	return "", nil, ErrDownloadFailed
}

func (g *GitHubImporter) get(ctx context.Context, url, accept string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// StatusError is a non-200 reply from GitHub
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

// RepoValidation describes a repository as reported by the GitHub API
type RepoValidation struct {
	Valid         bool    `json:"valid"`
	RepoName      string  `json:"repo_name,omitempty"`
	DefaultBranch string  `json:"default_branch,omitempty"`
	Size          int     `json:"size,omitempty"`
	Language      *string `json:"language,omitempty"`
	Description   *string `json:"description,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// Validate checks that the repository exists and is public. Failures are
// reported in the result rather than as an error.
func (g *GitHubImporter) Validate(ctx context.Context, repoURL string) RepoValidation {
	repoURL, err := g.normalize(repoURL)
	if err != nil {
		return RepoValidation{Error: "Invalid GitHub URL format"}
	}

	parts := strings.Split(strings.TrimPrefix(repoURL, g.WebURL+"/"), "/")
	if len(parts) < 2 {
		return RepoValidation{Error: "Invalid URL structure"}
	}
	owner, repo := parts[0], parts[1]

	body, err := g.get(ctx, fmt.Sprintf("%s/repos/%s/%s", g.APIURL, owner, repo), "application/vnd.github.v3+json")
	if err != nil {
		var status *StatusError
		switch {
		case errors.As(err, &status) && status.Code == http.StatusNotFound:
			return RepoValidation{Error: "Repository not found or is private"}
		case errors.As(err, &status):
			return RepoValidation{Error: fmt.Sprintf("GitHub API error: %d", status.Code)}
		default:
			return RepoValidation{Error: fmt.Sprintf("Validation error: %v", err)}
		}
	}

	var info struct {
		FullName      string  `json:"full_name"`
		DefaultBranch string  `json:"default_branch"`
		Size          int     `json:"size"`
		Language      *string `json:"language"`
		Description   *string `json:"description"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return RepoValidation{Error: fmt.Sprintf("Validation error: %v", err)}
	}
	return RepoValidation{
		Valid:         true,
		RepoName:      info.FullName,
		DefaultBranch: info.DefaultBranch,
		Size:          info.Size,
		Language:      info.Language,
		Description:   info.Description,
	}
}
