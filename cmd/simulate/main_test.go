package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bacbo-predictor/internal/engine"
)

func TestResolveOutcomesFromSequence(t *testing.T) {
	outcomes, err := resolveOutcomes("PLAYER, banker ,TIE", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"PLAYER", "banker", "TIE"}, outcomes)
}

func TestResolveOutcomesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoe.txt")
	require.NoError(t, os.WriteFile(path, []byte("PLAYER\n\nBANKER\nTIE\n"), 0o644))

	outcomes, err := resolveOutcomes("", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PLAYER", "BANKER", "TIE"}, outcomes)
}

func TestResolveOutcomesMissingFile(t *testing.T) {
	_, err := resolveOutcomes("", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestResolveOutcomesDefaultsToDemo(t *testing.T) {
	outcomes, err := resolveOutcomes("", "")
	require.NoError(t, err)
	assert.Equal(t, demoSequence, outcomes)
}

func TestCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "sequence", "file", "verbose"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestRunReplaysSequence(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	e := engine.New(engine.DefaultConfig())
	run(e, demoSequence, log, false)

	assert.Equal(t, len(demoSequence), e.Rounds())
	stats := e.Stats()
	assert.GreaterOrEqual(t, stats.Total, 1)
	assert.LessOrEqual(t, stats.Wins, stats.Total)
}
