package download_service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/infra/httpclient"
	"github.com/sunr3d/ans-anexos/internal/interfaces/infra"
	"github.com/sunr3d/ans-anexos/internal/interfaces/services"
	"github.com/sunr3d/ans-anexos/models"
)

const defaultChunkSize = 1024

var _ services.Downloader = (*downloadService)(nil)

type downloadService struct {
	logger     *zap.Logger
	cfg        *config.Config
	httpClient infra.HTTPClient
}

func New(log *zap.Logger, cfg *config.Config, client infra.HTTPClient) services.Downloader {
	return &downloadService{
		logger:     log,
		cfg:        cfg,
		httpClient: client,
	}
}

// DownloadAll скачивает вложения по очереди. Ошибка одного файла не
// прерывает остальные: он просто не попадает в список путей.
func (s *downloadService) DownloadAll(ctx context.Context, atts []models.Attachment) ([]string, []error) {
	paths := make([]string, 0, len(atts))
	var errs []error

	for _, att := range atts {
		s.logger.Info("загрузка файла",
			zap.String("filename", att.Name),
			zap.String("url", att.URL),
		)

		path, err := s.DownloadFile(ctx, att)
		if err != nil {
			s.logger.Error("не удалось загрузить файл",
				zap.String("filename", att.Name),
				zap.String("url", att.URL),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", att.Name, err))
			continue
		}

		paths = append(paths, path)
		s.logger.Info("файл загружен", zap.String("filename", att.Name), zap.String("path", path))
	}

	return paths, errs
}

func (s *downloadService) DownloadFile(ctx context.Context, att models.Attachment) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	reqCtx, idle := httpclient.WithIdleTimeout(ctx, s.cfg.HTTPTimeout)
	defer idle.Stop()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, att.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFileURL, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP status %d", ErrFileDownloadFailed, resp.StatusCode)
	}

	dir := s.cfg.DownloadPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMkdirFailed, err)
	}

	filePath := filepath.Join(dir, filepath.Base(att.Name))
	if err := s.saveFile(filePath, idle.Reader(resp.Body)); err != nil {
		if rmErr := os.Remove(filePath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("не удалось удалить недокачанный файл",
				zap.String("path", filePath),
				zap.Error(rmErr),
			)
		}
		return "", err
	}

	return filePath, nil
}

func (s *downloadService) saveFile(filePath string, body io.Reader) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileCreateFailed, err)
	}
	defer file.Close()

	chunkSize := s.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	// struct{ io.Writer } скрывает ReadFrom, иначе буфер игнорируется.
	if _, err := io.CopyBuffer(struct{ io.Writer }{file}, body, make([]byte, chunkSize)); err != nil {
		return fmt.Errorf("%w: %v", ErrFileDownloadFailed, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFileCopyFailed, err)
	}

	return nil
}
