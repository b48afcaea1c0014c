package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"streamydeck/internal/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(asset.DirEnv, "")
	c := New(zap.NewNop().Sugar(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, c.Load())

	assert.Equal(t, Values{
		AssetsDir:  asset.DefaultDir,
		Font:       asset.DefaultFont,
		Brightness: DefaultBrightness,
		Cooldown:   DefaultCooldown,
		Pacing:     DefaultPacing,
		LogFile:    DefaultLogFile,
		Rows:       DefaultRows,
		Cols:       DefaultCols,
	}, c.Values())
}

func TestLoad_File(t *testing.T) {
	t.Setenv(asset.DirEnv, "")
	path := filepath.Join(t.TempDir(), "streamydeck.yaml")
	writeConfig(t, path, `
assets_dir: /opt/deck
font: DejaVuSans.ttf
brightness: 70
cooldown: 500ms
pacing: 0s
log_file: deck.log
layout:
  rows: 4
  cols: 8
`)
	c := New(zap.NewNop().Sugar(), path)
	require.NoError(t, c.Load())

	got := c.Values()
	assert.Equal(t, "/opt/deck", got.AssetsDir)
	assert.Equal(t, "DejaVuSans.ttf", got.Font)
	assert.Equal(t, 70, got.Brightness)
	assert.Equal(t, 500*time.Millisecond, got.Cooldown)
	assert.Equal(t, time.Duration(0), got.Pacing)
	assert.Equal(t, "deck.log", got.LogFile)
	assert.Equal(t, 4, got.Rows)
	assert.Equal(t, 8, got.Cols)
	assert.Equal(t, path, c.Path())
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamydeck.yaml")
	writeConfig(t, path, "brightness: 70\n")
	t.Setenv("STREAMYDECK_BRIGHTNESS", "20")
	t.Setenv("STREAMYDECK_LAYOUT_ROWS", "2")
	t.Setenv(asset.DirEnv, "/env/assets")

	c := New(zap.NewNop().Sugar(), path)
	require.NoError(t, c.Load())
	assert.Equal(t, 20, c.Values().Brightness)
	assert.Equal(t, 2, c.Values().Rows)
	assert.Equal(t, "/env/assets", c.Values().AssetsDir)
}

func TestLoad_InvalidValuesReplaced(t *testing.T) {
	t.Setenv(asset.DirEnv, "")
	path := filepath.Join(t.TempDir(), "streamydeck.yaml")
	writeConfig(t, path, `
brightness: 140
cooldown: -1s
pacing: -5ms
layout:
  rows: 0
  cols: -2
`)
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(zap.New(core).Sugar(), path)
	require.NoError(t, c.Load())

	got := c.Values()
	assert.Equal(t, 100, got.Brightness)
	assert.Equal(t, DefaultCooldown, got.Cooldown)
	assert.Equal(t, DefaultPacing, got.Pacing)
	assert.Equal(t, DefaultRows, got.Rows)
	assert.Equal(t, DefaultCols, got.Cols)
	assert.Equal(t, 5, logs.FilterMessageSnippet("specified").Len()+logs.FilterMessageSnippet("clamping").Len())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamydeck.yaml")
	writeConfig(t, path, "brightness: [unterminated\n")

	c := New(zap.NewNop().Sugar(), path)
	assert.ErrorContains(t, c.Load(), "read config")
}

func TestWatchConfigFileChanges(t *testing.T) {
	t.Setenv(asset.DirEnv, "")
	path := filepath.Join(t.TempDir(), "streamydeck.yaml")
	writeConfig(t, path, "brightness: 40\n")

	c := New(zap.NewNop().Sugar(), path)
	require.NoError(t, c.Load())
	changes := c.SubscribeToChanges()

	c.WatchConfigFileChanges()
	t.Cleanup(c.StopWatchingConfigFile)

	writeConfig(t, path, "brightness: 90\n")
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}
	assert.Equal(t, 90, c.Values().Brightness)
}

func TestWatchConfigFileChanges_NoFile(t *testing.T) {
	c := New(zap.NewNop().Sugar(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, c.Load())
	c.WatchConfigFileChanges()
	c.StopWatchingConfigFile()
}
