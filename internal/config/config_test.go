package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"indir": "/data/in",
		"url": "/data/out",
		"dbname": "articles",
		"replace": true,
		"xml_dir": "/data/xml"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/in", cfg.InDir)
	assert.Equal(t, "/data/out", cfg.URL)
	assert.Equal(t, "articles", cfg.DBName)
	assert.True(t, cfg.Replace)
	assert.Equal(t, "/data/xml", cfg.XMLDir)
	assert.Equal(t, 30000, cfg.ResultQueueSize)
	assert.Equal(t, 7*time.Second, cfg.GrobidDelay)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, `{"indir": `))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMissingRequiredKeys(t *testing.T) {
	_, err := Load(writeConfig(t, `{"indir": "/data/in"}`))
	assert.Error(t, err)
}

func TestFromArgs(t *testing.T) {
	cfg := FromArgs("/in", "/out", "articles")
	assert.Equal(t, "/in", cfg.InDir)
	assert.Equal(t, "/out", cfg.URL)
	assert.Equal(t, "articles", cfg.DBName)
	assert.False(t, cfg.Replace)
	assert.Empty(t, cfg.XMLDir)
}

func TestEnvTunables(t *testing.T) {
	t.Setenv("RESULT_QUEUE_SIZE", "128")
	t.Setenv("GROBID_DELAY", "250ms")

	cfg := FromArgs("/in", "/out", "articles")
	assert.Equal(t, 128, cfg.ResultQueueSize)
	assert.Equal(t, 250*time.Millisecond, cfg.GrobidDelay)
}

func TestEnvTunableInvalidFallsBack(t *testing.T) {
	t.Setenv("RESULT_QUEUE_SIZE", "lots")
	cfg := FromArgs("/in", "/out", "articles")
	assert.Equal(t, 30000, cfg.ResultQueueSize)
}
