package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

// snapshotDir is where ctrl+s screenshots go. Empty when there is no home directory.
func snapshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fusion", "screenshots")
}

// writeSnapshot saves the screen as plain text, without colors, under dir.
// The file is named after the game and the time, e.g. fusion_20260314_150926.txt.
func writeSnapshot(dir, gameID string, s *core.Screen, at time.Time) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("screenshot: no directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	path := filepath.Join(dir, gameID+"_"+at.Format("20060102_150405")+".txt")
	if err := os.WriteFile(path, []byte(s.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}
