package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/conversation"
	"github.com/codebugger/internal/projects"
	"github.com/codebugger/internal/review"
)

// ProjectChatRequest is a question about one file or a whole project.
// A nil FileIndex selects the whole project.
type ProjectChatRequest struct {
	Question    string `json:"question"`
	FileIndex   *int   `json:"file_index"`
	SessionID   string `json:"session_id"`
	ModelChoice string `json:"model_choice"`
}

func (s *Server) projectChat(c echo.Context) error {
	const op = "Project chat"
	ctx := c.Request().Context()
	projectID := c.Param("id")

	var req ProjectChatRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, op, badRequest("invalid request body"))
	}
	if strings.TrimSpace(req.Question) == "" {
		return fail(c, op, badRequest("question is required"))
	}
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = "default"
	}

	p, err := s.deps.Projects.Get(ctx, projectID)
	if err != nil {
		return fail(c, op, err)
	}
	code, info, err := projects.ChatContext(p, req.FileIndex, s.options.ChatFileLimit)
	if err != nil {
		return fail(c, op, err)
	}
	if err := s.screenQuestion(c, req.Question); err != nil {
		return fail(c, op, err)
	}

	sessionID := projectID + "_" + req.SessionID
	result, err := s.deps.Reviews.Run(ctx, review.Request{
		Kind:      analysis.KindConversational,
		Code:      code,
		Model:     req.ModelChoice,
		Question:  req.Question,
		SessionID: sessionID,
	})
	if err != nil {
		return fail(c, op, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "success",
		"response":       result.Output,
		"context_info":   info,
		"session_id":     sessionID,
		"execution_time": result.Duration.Seconds(),
		"project_id":     projectID,
		"model_used":     result.Model,
	})
}

func (s *Server) history(c echo.Context) error {
	const op = "History lookup"
	sessionID := c.Param("id")

	exchanges, err := s.deps.History.ReadAll(c.Request().Context(), sessionID)
	if err != nil {
		return fail(c, op, err)
	}
	if exchanges == nil {
		exchanges = []conversation.Exchange{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "success",
		"session_id": sessionID,
		"exchanges":  exchanges,
	})
}
