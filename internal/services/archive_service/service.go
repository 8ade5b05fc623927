package archive_service

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/interfaces/services"
)

var _ services.Archiver = (*archiveService)(nil)

type archiveService struct {
	logger *zap.Logger
	cfg    *config.Config
}

func New(log *zap.Logger, cfg *config.Config) services.Archiver {
	return &archiveService{
		logger: log,
		cfg:    cfg,
	}
}

// BuildZip упаковывает files в cfg.ZipPath() под их базовыми именами.
// Отсутствующие файлы пропускаются с предупреждением; путь к архиву
// возвращается даже если в него ничего не попало.
func (s *archiveService) BuildZip(ctx context.Context, files []string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if err := os.MkdirAll(s.cfg.OutputPath(), 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMkdirFailed, err)
	}

	zipPath := s.cfg.ZipPath()
	s.logger.Info("упаковка файлов в архив", zap.String("path", zipPath), zap.Int("files", len(files)))

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileCreateFailed, err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)

	written := 0
	seen := make(map[string]struct{}, len(files))
	for _, filePath := range files {
		name := filepath.Base(filePath)
		if _, dup := seen[name]; dup {
			s.logger.Warn("файл с таким именем уже в архиве, пропуск", zap.String("path", filePath))
			continue
		}

		err := s.addFile(zipWriter, filePath, name)
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("файл для архивации не найден", zap.String("path", filePath))
			continue
		}
		if err != nil {
			zipWriter.Close()
			return "", fmt.Errorf("%w: %v", ErrArchiveBuild, err)
		}

		seen[name] = struct{}{}
		written++
	}

	if err := zipWriter.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchiveBuild, err)
	}
	if err := zipFile.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchiveBuild, err)
	}

	s.logger.Info("архив собран", zap.String("path", zipPath), zap.Int("entries", written))
	return zipPath, nil
}

func (s *archiveService) addFile(zw *zip.Writer, filePath, name string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrFileOpenFailed, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileOpenFailed, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileCreateFailed, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileCreateFailed, err)
	}

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("%w: %v", ErrFileCopyFailed, err)
	}

	return nil
}
