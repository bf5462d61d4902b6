package review

import (
	"errors"

	"github.com/codebugger/internal/analysis"
)

// ErrorKind classifies a pipeline failure for the caller
type ErrorKind int

const (
	// KindInvalidRequest means the request itself cannot be served
	KindInvalidRequest ErrorKind = iota
	// KindConfigurationMissing means no provider is configured for the model
	KindConfigurationMissing
	// KindDispatchFailure means the completion call failed
	KindDispatchFailure
	// KindHistoryStore means reading or writing conversation history failed
	KindHistoryStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindDispatchFailure:
		return "dispatch_failure"
	case KindHistoryStore:
		return "history_store"
	default:
		return "unknown"
	}
}

// Error is returned by the pipeline. Its message is the underlying error's
// message, unmodified.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a pipeline error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

var opNames = map[analysis.Kind]string{
	analysis.KindBug:            "Bug analysis",
	analysis.KindExplanation:    "Code Explanation",
	analysis.KindOptimization:   "Code Optimization",
	analysis.KindEdgeCase:       "Edge_Case",
	analysis.KindUnitTest:       "Unit_tests",
	analysis.KindConversational: "Chat",
}

// OpName is the user-facing name of the operation serving a kind
func OpName(kind analysis.Kind) string {
	if name, ok := opNames[kind]; ok {
		return name
	}
	return "Analysis"
}
