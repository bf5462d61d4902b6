package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/codebugger/internal/projects"
	"github.com/codebugger/internal/review"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// requestError is a failure caused by the caller
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.status
	}
	if rerr, ok := review.AsError(err); ok && rerr.Kind == review.KindInvalidRequest {
		return http.StatusBadRequest
	}

	var indexErr *projects.IndexError
	switch {
	case errors.Is(err, projects.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &indexErr),
		errors.Is(err, projects.ErrNoPythonFiles),
		errors.Is(err, projects.ErrInvalidArchive),
		errors.Is(err, projects.ErrInvalidGitHubURL),
		errors.Is(err, projects.ErrDownloadFailed),
		errors.Is(err, projects.ErrInvalidGitLabProject):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes "<op> failed: <message>" with the status the error maps to
func fail(c echo.Context, op string, err error) error {
	status := statusFor(err)
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("op", op).Int("status", status).Str("path", c.Path()).Msg("Request failed")

	return c.JSON(status, ErrorResponse{
		Status: "error",
		Error:  fmt.Sprintf("%s failed: %s", op, err.Error()),
	})
}

// errorHandler renders echo's own errors (401, 404, 413) in the same shape
// as handler failures
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Status: "error", Error: message})
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}
