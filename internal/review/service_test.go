package review

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebugger/internal/aiconnectors"
	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/capture"
	"github.com/codebugger/internal/conversation"
	"github.com/codebugger/internal/prompts"
)

// fakeCompleter records prompts and answers with a numbered reply
type fakeCompleter struct {
	readyErr error
	err      error
	prompts  []string
	models   []string
}

func (f *fakeCompleter) Ready(model string) error { return f.readyErr }

func (f *fakeCompleter) Complete(ctx context.Context, prompt, model string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("answer %d", len(f.prompts)), nil
}

// countingClassifier wraps the heuristic and counts calls
type countingClassifier struct {
	calls int
}

func (c *countingClassifier) Classify(kind analysis.Kind, s *analysis.Sample) analysis.Classification {
	c.calls++
	return analysis.Classify(kind, s)
}

type failingHistory struct {
	readErr   error
	appendErr error
}

func (f failingHistory) Append(ctx context.Context, sessionID, question, answer string) error {
	return f.appendErr
}

func (f failingHistory) ReadAll(ctx context.Context, sessionID string) ([]conversation.Exchange, error) {
	return nil, f.readErr
}

func newTestService(completer Completer, history conversation.HistoryStore) (*Service, *countingClassifier) {
	classifier := &countingClassifier{}
	return NewService(classifier, prompts.Builder{}, completer, history, DefaultConfig()), classifier
}

const flaskSnippet = `from flask import Flask
app = Flask(__name__)

@app.route("/")
def index():
    return "hi"
`

func TestRun_ReturnsCompletionVerbatim(t *testing.T) {
	completer := &fakeCompleter{}
	svc, _ := newTestService(completer, nil)

	res, err := svc.Run(context.Background(), Request{Kind: analysis.KindBug, Code: flaskSnippet})
	require.NoError(t, err)

	assert.Equal(t, "answer 1", res.Output)
	assert.Equal(t, "gpt-4o", res.Model)
	require.NotNil(t, res.Classification)
	assert.Equal(t, analysis.DomainFlaskWeb, res.Classification.Category.Domain)
	assert.Contains(t, completer.prompts[0], flaskSnippet)
	assert.Equal(t, res.Prompt, completer.prompts[0])
}

func TestRun_ConfigurationMissingFailsBeforeClassification(t *testing.T) {
	completer := &fakeCompleter{readyErr: fmt.Errorf("%w: no credentials", aiconnectors.ErrProviderNotConfigured)}
	svc, classifier := newTestService(completer, nil)

	_, err := svc.Run(context.Background(), Request{Kind: analysis.KindBug, Code: flaskSnippet, Model: "claude-3-haiku"})
	require.Error(t, err)

	perr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindConfigurationMissing, perr.Kind)
	assert.Equal(t, "Bug analysis", perr.Op)
	assert.ErrorIs(t, err, aiconnectors.ErrProviderNotConfigured)
	assert.Zero(t, classifier.calls)
	assert.Empty(t, completer.prompts)
}

func TestRun_DispatchFailureKeepsMessage(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("quota exceeded")}
	svc, _ := newTestService(completer, conversation.NewMemoryStore())

	_, err := svc.Run(context.Background(), Request{Kind: analysis.KindOptimization, Code: "x = 1"})
	require.Error(t, err)

	perr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindDispatchFailure, perr.Kind)
	assert.Equal(t, "Code Optimization", perr.Op)
	assert.Equal(t, "quota exceeded", err.Error())
}

func TestRun_EmptyCodeUsesPlainTemplate(t *testing.T) {
	completer := &fakeCompleter{}
	svc, classifier := newTestService(completer, nil)

	res, err := svc.Run(context.Background(), Request{Kind: analysis.KindUnitTest, Code: ""})
	require.NoError(t, err)

	assert.Nil(t, res.Classification)
	assert.Zero(t, classifier.calls)
	assert.True(t, strings.HasPrefix(completer.prompts[0], "You are a Senior Python Developer."))
}

// Two requests in one session: the second prompt carries the first
// exchange verbatim.
func TestRun_ConversationHistoryCarriesForward(t *testing.T) {
	completer := &fakeCompleter{}
	history := conversation.NewMemoryStore()
	svc, _ := newTestService(completer, history)
	ctx := context.Background()

	first := Request{Kind: analysis.KindConversational, Code: "print('hi')", Question: "What does {code} print?", SessionID: "s1"}
	_, err := svc.Run(ctx, first)
	require.NoError(t, err)

	second := first
	second.Question = "Why?"
	res, err := svc.Run(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "answer 2", res.Output)

	assert.Contains(t, completer.prompts[1], "User: What does {code} print?\nAssistant: answer 1")
	assert.NotContains(t, completer.prompts[0], "answer 1")

	stored, err := history.ReadAll(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Why?", stored[1].Question)
	assert.Equal(t, "answer 2", stored[1].Answer)

	other, err := history.ReadAll(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRun_HistoryFailures(t *testing.T) {
	storeErr := fmt.Errorf("%w: disk gone", conversation.ErrHistoryStore)

	tests := []struct {
		name        string
		history     failingHistory
		wantPrompts int
	}{
		{name: "read", history: failingHistory{readErr: storeErr}, wantPrompts: 0},
		{name: "append", history: failingHistory{appendErr: storeErr}, wantPrompts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{}
			svc, _ := newTestService(completer, tt.history)

			_, err := svc.Run(context.Background(), Request{Kind: analysis.KindConversational, Code: "x = 1", Question: "q", SessionID: "s"})
			require.Error(t, err)

			perr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindHistoryStore, perr.Kind)
			assert.Equal(t, "Chat", perr.Op)
			assert.ErrorIs(t, err, conversation.ErrHistoryStore)
			assert.Len(t, completer.prompts, tt.wantPrompts)
		})
	}
}

func TestPrepare_DoesNotCallModel(t *testing.T) {
	completer := &fakeCompleter{}
	svc, _ := newTestService(completer, nil)

	p, err := svc.Prepare(context.Background(), Request{Kind: analysis.KindEdgeCase, Code: "def div(a, b):\n    return a / b\n", Model: "llama3"})
	require.NoError(t, err)

	assert.Equal(t, "llama3", p.Model)
	assert.Contains(t, p.Prompt, "def div(a, b):")
	assert.Empty(t, completer.prompts)
}

func TestRun_CapturesFixtureWhenEnabled(t *testing.T) {
	capture.Enable(t.TempDir())
	t.Cleanup(capture.Disable)

	svc, _ := newTestService(&fakeCompleter{}, nil)
	_, err := svc.Run(context.Background(), Request{Kind: analysis.KindOptimization, Code: flaskSnippet})
	require.NoError(t, err)

	entries, err := os.ReadDir(capture.SessionDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(capture.SessionDir(), entries[0].Name()))
	require.NoError(t, err)
	var rec captureRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, analysis.KindOptimization, rec.Kind)
	assert.Equal(t, "answer 1", rec.Output)
	assert.Contains(t, rec.Prompt, "Flask")
}
