package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/projects"
	"github.com/codebugger/internal/review"
)

// projectAnalysisKinds are the analysis_type values accepted for project files
var projectAnalysisKinds = map[string]analysis.Kind{
	"bugs":       analysis.KindBug,
	"optimize":   analysis.KindOptimization,
	"explain":    analysis.KindExplanation,
	"tests":      analysis.KindUnitTest,
	"edge-cases": analysis.KindEdgeCase,
}

// ProjectAnalysisRequest selects a project file and what to do with it
type ProjectAnalysisRequest struct {
	FileIndex    *int   `json:"file_index"`
	AnalysisType string `json:"analysis_type"`
	ModelChoice  string `json:"model_choice"`
}

// GitHubRequest names a public repository to import
type GitHubRequest struct {
	RepoURL     string `json:"repo_url"`
	ModelChoice string `json:"model_choice"`
}

func projectResponse(p *projects.Project) map[string]interface{} {
	return map[string]interface{}{
		"status":           "success",
		"project_id":       p.ID,
		"project_name":     p.Name,
		"source":           p.Source,
		"total_files":      len(p.Files),
		"files":            p.Files,
		"secrets_detected": p.SecretsDetected(),
	}
}

func (s *Server) uploadProject(c echo.Context) error {
	const op = "Project upload"

	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, op, badRequest("file is required"))
	}
	if !strings.HasSuffix(fh.Filename, ".zip") {
		return fail(c, op, badRequest("Only ZIP files are supported"))
	}
	if s.options.MaxUploadBytes > 0 && fh.Size > s.options.MaxUploadBytes {
		return fail(c, op, &requestError{
			status:  http.StatusRequestEntityTooLarge,
			message: fmt.Sprintf("upload exceeds %s", humanize.Bytes(uint64(s.options.MaxUploadBytes))),
		})
	}

	f, err := fh.Open()
	if err != nil {
		return fail(c, op, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, op, err)
	}

	p, err := s.deps.Ingester.Ingest(c.Request().Context(), fh.Filename, projects.UploadName(fh.Filename), projects.SourceUpload, data)
	if err != nil {
		return fail(c, op, err)
	}
	return c.JSON(http.StatusOK, projectResponse(p))
}

func (s *Server) importGitHub(c echo.Context) error {
	const op = "GitHub download"
	ctx := c.Request().Context()

	var req GitHubRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, op, badRequest("invalid request body"))
	}

	name, data, err := s.deps.GitHub.Download(ctx, req.RepoURL)
	if err != nil {
		return fail(c, op, err)
	}
	p, err := s.deps.Ingester.Ingest(ctx, name+"-github.zip", "GitHub: "+name, projects.SourceGitHub, data)
	if err != nil {
		return fail(c, op, err)
	}

	resp := projectResponse(p)
	resp["repo_url"] = strings.TrimRight(strings.TrimSpace(req.RepoURL), "/")
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) validateGitHub(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.GitHub.Validate(c.Request().Context(), c.QueryParam("repo_url")))
}

func (s *Server) importGitLab(c echo.Context) error {
	const op = "GitLab import"
	ctx := c.Request().Context()

	var req projects.GitLabRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, op, badRequest("invalid request body"))
	}

	archiveName, projectName, data, err := s.deps.GitLab.Download(ctx, req)
	if err != nil {
		return fail(c, op, err)
	}
	p, err := s.deps.Ingester.Ingest(ctx, archiveName, projectName, projects.SourceGitLab, data)
	if err != nil {
		return fail(c, op, err)
	}
	return c.JSON(http.StatusOK, projectResponse(p))
}

func (s *Server) listProjects(c echo.Context) error {
	list, err := s.deps.Projects.List(c.Request().Context())
	if err != nil {
		return fail(c, "Project listing", err)
	}
	if list == nil {
		list = []projects.Summary{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "success",
		"projects": list,
	})
}

func (s *Server) getProject(c echo.Context) error {
	p, err := s.deps.Projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, "Project lookup", err)
	}
	resp := projectResponse(p)
	resp["created_at"] = p.CreatedAt
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) deleteProject(c echo.Context) error {
	id := c.Param("id")
	if err := s.deps.Projects.Delete(c.Request().Context(), id); err != nil {
		return fail(c, "Project delete", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "success",
		"project_id": id,
	})
}

func (s *Server) analyzeProjectFile(c echo.Context) error {
	const op = "File analysis"
	ctx := c.Request().Context()

	var req ProjectAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, op, badRequest("invalid request body"))
	}
	if req.FileIndex == nil {
		return fail(c, op, badRequest("file_index is required"))
	}

	p, err := s.deps.Projects.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(c, op, err)
	}
	file, err := p.File(*req.FileIndex)
	if err != nil {
		return fail(c, op, badRequest("File index %d out of range. Project has %d files.", *req.FileIndex, len(p.Files)))
	}
	kind, ok := projectAnalysisKinds[req.AnalysisType]
	if !ok {
		return fail(c, op, badRequest("Invalid analysis type"))
	}

	result, err := s.deps.Reviews.Run(ctx, review.Request{
		Kind:  kind,
		Code:  file.Content,
		Model: req.ModelChoice,
	})
	if err != nil {
		return fail(c, op, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "success",
		"project_id":     p.ID,
		"file_index":     file.Index,
		"file_name":      file.Name,
		"analysis_type":  req.AnalysisType,
		"result":         result.Output,
		"execution_time": result.Duration.Seconds(),
		"model_used":     result.Model,
	})
}
