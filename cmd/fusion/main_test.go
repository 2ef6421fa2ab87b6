package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".fusion", "rounds.db"), expandHome("~/.fusion/rounds.db"))
	assert.Equal(t, "/tmp/x.db", expandHome("/tmp/x.db"))
	assert.Equal(t, "rel/x.db", expandHome("rel/x.db"))
}

func TestNewLoggerLevels(t *testing.T) {
	t.Cleanup(func() { flagLogLevel, flagLogFile = "warn", "" })

	flagLogLevel = "debug"
	l, err := newLogger(false)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	flagLogLevel = "loud"
	_, err = newLogger(false)
	assert.Error(t, err)
}

func TestNewLoggerWritesFile(t *testing.T) {
	t.Cleanup(func() {
		flagLogLevel, flagLogFile = "warn", ""
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
	})

	path := filepath.Join(t.TempDir(), "logs", "fusion.log")
	flagLogLevel = "info"
	flagLogFile = path

	l, err := newLogger(true)
	require.NoError(t, err)
	l.Info("hello", "k", "v")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"menu", "play", "levels", "validate", "scores", "serve"} {
		assert.True(t, names[want], want)
	}
}

func TestRootHelpDescribesPairMatches(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "two identical shapes side by side or stacked fuse")
	assert.NotContains(t, rootCmd.Long, "three")
}

func TestPortalWarnings(t *testing.T) {
	lvls := []levels.Level{
		{FilePath: "clean.yaml", Board: core.MustParseLayout("● . .", "X @a @a")},
		{FilePath: "resting.yaml", Board: core.MustParseLayout("● ■ .", "@b X @b")},
		{FilePath: "unparsed.yaml"},
	}

	got := portalWarnings(lvls)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "resting.yaml")
	assert.Contains(t, got[0], "(0,0)")
	assert.Contains(t, got[0], `portal "b"`)
}
