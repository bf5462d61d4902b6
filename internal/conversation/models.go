package conversation

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrHistoryStore wraps every failure reported by a history store
var ErrHistoryStore = errors.New("history store failure")

// Exchange is one question and the answer it received
type Exchange struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore persists conversation exchanges per session
type HistoryStore interface {
	// Append records an exchange at the end of the session
	Append(ctx context.Context, sessionID, question, answer string) error
	// ReadAll returns the session's exchanges oldest first; unknown sessions are empty
	ReadAll(ctx context.Context, sessionID string) ([]Exchange, error)
}

// FormatHistory renders exchanges as "User: q\nAssistant: a" blocks
// separated by blank lines.
func FormatHistory(exchanges []Exchange) string {
	blocks := make([]string, 0, len(exchanges))
	for _, ex := range exchanges {
		blocks = append(blocks, "User: "+ex.Question+"\nAssistant: "+ex.Answer)
	}
	return strings.Join(blocks, "\n\n")
}
