// Package capture records analysis prompts and replies as JSON fixtures.
// It is off unless CODEBUGGER_CAPTURE_DIR is set or Enable is called.
package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// EnvDir is the environment variable that turns capture on
const EnvDir = "CODEBUGGER_CAPTURE_DIR"

var (
	sessionID  = time.Now().Format("20060102-150405")
	captureSeq uint64

	mu  sync.RWMutex
	dir = os.Getenv(EnvDir)
)

// Enabled reports whether capture is currently active
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dir != ""
}

// Enable writes captures below path for the rest of the process
func Enable(path string) {
	mu.Lock()
	defer mu.Unlock()
	dir = path
}

// Disable turns capture off
func Disable() {
	Enable("")
}

// SessionDir is where this process writes its captures
func SessionDir() string {
	mu.RLock()
	defer mu.RUnlock()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, sessionID)
}

func writeFile(category, ext string, data []byte) {
	sessionDir := SessionDir()
	if sessionDir == "" {
		return
	}

	seq := atomic.AddUint64(&captureSeq, 1)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", sessionDir).Msg("capture: failed to create directory")
		return
	}

	path := filepath.Join(sessionDir, fmt.Sprintf("%s-%04d.%s", category, seq, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("capture: failed to write file")
		return
	}
	log.Debug().Str("path", path).Msg("capture: wrote fixture")
}

// WriteJSON marshals the payload to indented JSON and stores it in the capture
// directory. Failures are logged but otherwise ignored.
func WriteJSON(category string, payload interface{}) {
	if !Enabled() {
		return
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Warn().Err(err).Str("category", category).Msg("capture: failed to marshal payload")
		return
	}
	writeFile(category, "json", data)
}
