package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	PageURL     = "https://www.gov.br/ans/pt-br/acesso-a-informacao/participacao-da-sociedade/atualizacao-do-rol-de-procedimentos"
	UserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	HTTPTimeout = 30 * time.Second
	ChunkSize   = 1024
	DownloadDir = "anexos"
	OutputDir   = "output"
	ZipName     = "anexos_ans.zip"
)

// Из окружения читаются только LOG_LEVEL и BASE_DIR, остальное фиксировано.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Пустой BaseDir означает директорию исполняемого файла.
	BaseDir string `envconfig:"BASE_DIR"`

	PageURL     string        `ignored:"true"`
	UserAgent   string        `ignored:"true"`
	HTTPTimeout time.Duration `ignored:"true"`
	ChunkSize   int           `ignored:"true"`
	DownloadDir string        `ignored:"true"`
	OutputDir   string        `ignored:"true"`
	ZipName     string        `ignored:"true"`
}

func Default() Config {
	return Config{
		LogLevel:    "info",
		PageURL:     PageURL,
		UserAgent:   UserAgent,
		HTTPTimeout: HTTPTimeout,
		ChunkSize:   ChunkSize,
		DownloadDir: DownloadDir,
		OutputDir:   OutputDir,
		ZipName:     ZipName,
	}
}

func Load() (*Config, error) {
	cfg := Default()
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DownloadPath() string {
	return filepath.Join(c.baseDir(), c.DownloadDir)
}

func (c *Config) OutputPath() string {
	return filepath.Join(c.baseDir(), c.OutputDir)
}

func (c *Config) ZipPath() string {
	return filepath.Join(c.OutputPath(), c.ZipName)
}

func (c *Config) baseDir() string {
	if c.BaseDir != "" {
		return c.BaseDir
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
