package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.PageURL, "atualizacao-do-rol-de-procedimentos")
	assert.Contains(t, cfg.UserAgent, "Mozilla/5.0")
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1024, cfg.ChunkSize)
	assert.Equal(t, "anexos", cfg.DownloadDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "anexos_ans.zip", cfg.ZipName)
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BASE_DIR", "/srv/ans")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/ans", cfg.BaseDir)
}

func TestConfig_FixedValuesIgnoreEnv(t *testing.T) {
	t.Setenv("PAGE_URL", "https://example.com/")
	t.Setenv("USER_AGENT", "curl/8.0")
	t.Setenv("HTTP_TIMEOUT", "1s")
	t.Setenv("CHUNK_SIZE", "7")
	t.Setenv("DOWNLOAD_DIR", "tmp")
	t.Setenv("OUTPUT_DIR", "tmp")
	t.Setenv("ZIP_NAME", "other.zip")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default().PageURL, cfg.PageURL)
	assert.Equal(t, UserAgent, cfg.UserAgent)
	assert.Equal(t, HTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, ChunkSize, cfg.ChunkSize)
	assert.Equal(t, DownloadDir, cfg.DownloadDir)
	assert.Equal(t, OutputDir, cfg.OutputDir)
	assert.Equal(t, ZipName, cfg.ZipName)
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{
		BaseDir:     "/srv/ans",
		DownloadDir: "anexos",
		OutputDir:   "output",
		ZipName:     "anexos_ans.zip",
	}

	assert.Equal(t, filepath.Join("/srv/ans", "anexos"), cfg.DownloadPath())
	assert.Equal(t, filepath.Join("/srv/ans", "output"), cfg.OutputPath())
	assert.Equal(t, filepath.Join("/srv/ans", "output", "anexos_ans.zip"), cfg.ZipPath())
}

func TestConfig_PathsDefaultToExecutableDir(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	cfg := &Config{DownloadDir: "anexos"}

	assert.Equal(t, filepath.Join(filepath.Dir(exe), "anexos"), cfg.DownloadPath())
}
