package capture

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	root := t.TempDir()
	Enable(root)
	t.Cleanup(Disable)
	require.True(t, Enabled())

	WriteJSON("bug", map[string]string{"prompt": "p", "output": "o"})

	entries, err := os.ReadDir(SessionDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^bug-\d{4}\.json$`, entries[0].Name())

	data, err := os.ReadFile(filepath.Join(SessionDir(), entries[0].Name()))
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "o", got["output"])
}

func TestDisabledWritesNothing(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	assert.Empty(t, SessionDir())
	WriteJSON("bug", map[string]string{"prompt": "p"})
}
