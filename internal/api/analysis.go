package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/review"
)

// analysisRoute binds a path under /analyze to a kind and the response
// field its output is returned in
type analysisRoute struct {
	path  string
	kind  analysis.Kind
	field string
}

var analysisRoutes = []analysisRoute{
	{path: "bugs", kind: analysis.KindBug, field: "result"},
	{path: "explaincode", kind: analysis.KindExplanation, field: "explanation"},
	{path: "optimize", kind: analysis.KindOptimization, field: "optimized_code"},
	{path: "edgecase", kind: analysis.KindEdgeCase, field: "edge_case_analysis"},
	{path: "unittest", kind: analysis.KindUnitTest, field: "unit_tests"},
}

// AnalysisRequest is the body of the single-sample analysis routes
type AnalysisRequest struct {
	Code        string `json:"code"`
	ModelChoice string `json:"model_choice"`
}

// ConversationalRequest is a question about a code sample
type ConversationalRequest struct {
	Code        string `json:"code"`
	Question    string `json:"question"`
	SessionID   string `json:"session_id"`
	ModelChoice string `json:"model_choice"`
}

func (s *Server) analyzeHandler(route analysisRoute) echo.HandlerFunc {
	op := review.OpName(route.kind)
	return func(c echo.Context) error {
		var req AnalysisRequest
		if err := c.Bind(&req); err != nil {
			return fail(c, op, badRequest("invalid request body"))
		}

		result, err := s.deps.Reviews.Run(c.Request().Context(), review.Request{
			Kind:  route.kind,
			Code:  req.Code,
			Model: req.ModelChoice,
		})
		if err != nil {
			return fail(c, op, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":         "success",
			route.field:      result.Output,
			"execution_time": result.Duration.Seconds(),
			"model_used":     result.Model,
		})
	}
}

func (s *Server) conversationalChat(c echo.Context) error {
	op := review.OpName(analysis.KindConversational)

	var req ConversationalRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, op, badRequest("invalid request body"))
	}
	if strings.TrimSpace(req.Question) == "" {
		return fail(c, op, badRequest("question is required"))
	}
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = uuid.NewString()
	}
	if err := s.screenQuestion(c, req.Question); err != nil {
		return fail(c, op, err)
	}

	result, err := s.deps.Reviews.Run(c.Request().Context(), review.Request{
		Kind:      analysis.KindConversational,
		Code:      req.Code,
		Model:     req.ModelChoice,
		Question:  req.Question,
		SessionID: req.SessionID,
	})
	if err != nil {
		return fail(c, op, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "success",
		"response":       result.Output,
		"session_id":     req.SessionID,
		"execution_time": result.Duration.Seconds(),
		"model_used":     result.Model,
	})
}
