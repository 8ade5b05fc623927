package entrypoint

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/infra/httpclient"
	"github.com/sunr3d/ans-anexos/internal/interfaces/services"
	"github.com/sunr3d/ans-anexos/internal/services/archive_service"
	"github.com/sunr3d/ans-anexos/internal/services/download_service"
	"github.com/sunr3d/ans-anexos/internal/services/scraper_service"
	"github.com/sunr3d/ans-anexos/models"
)

const requiredAttachments = 2

type Pipeline struct {
	cfg        *config.Config
	logger     *zap.Logger
	scraper    services.Scraper
	downloader services.Downloader
	archiver   services.Archiver
}

func New(cfg *config.Config, log *zap.Logger, scraper services.Scraper, downloader services.Downloader, archiver services.Archiver) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		logger:     log,
		scraper:    scraper,
		downloader: downloader,
		archiver:   archiver,
	}
}

func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) (*models.Run, error) {
	client := httpclient.New(cfg, log)

	p := New(cfg, log,
		scraper_service.New(log, cfg, client),
		download_service.New(log, cfg, client),
		archive_service.New(log, cfg),
	)
	return p.Run(ctx)
}

// Run выполняет один проход: страница, поиск анексов, загрузка, архив.
// Любой шаг, завершившийся неудачей, прерывает проход; run возвращается
// всегда и содержит статус шага, на котором все остановилось.
func (p *Pipeline) Run(ctx context.Context) (*models.Run, error) {
	run := &models.Run{
		ID:        uuid.New().String(),
		Status:    models.RunStatusStarted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	log := p.logger.With(zap.String("run_id", run.ID))

	log.Info("запуск сбора анексов", zap.String("url", p.cfg.PageURL))

	if err := p.setupFolders(log); err != nil {
		log.Error("не удалось подготовить директории", zap.Error(err))
		return p.fail(run, models.RunStatusSetupFailed, err), err
	}

	doc, err := p.scraper.FetchPage(ctx)
	if err != nil {
		log.Error("не удалось получить страницу", zap.String("url", p.cfg.PageURL), zap.Error(err))
		return p.fail(run, models.RunStatusFetchFailed, err), err
	}

	run.Attachments = p.scraper.FindAttachments(doc)
	if len(run.Attachments) < requiredAttachments {
		log.Error("не удалось найти оба анекса", zap.Int("found", len(run.Attachments)))
		logAttachments(log, "найденные ссылки", run.Attachments)
		err := fmt.Errorf("%w: найдено %d из %d", ErrAttachmentsNotFound, len(run.Attachments), requiredAttachments)
		return p.fail(run, models.RunStatusNotFound, err), err
	}
	logAttachments(log, "найден анекс", run.Attachments)
	warnDuplicateNames(log, run.Attachments)

	files, errs := p.downloader.DownloadAll(ctx, run.Attachments)
	run.Files = files
	for _, e := range errs {
		run.Errors = append(run.Errors, e.Error())
	}
	if len(files) < requiredAttachments {
		log.Error("не удалось скачать все анексы",
			zap.Int("downloaded", len(files)),
			zap.Int("found", len(run.Attachments)),
		)
		err := fmt.Errorf("%w: скачано %d из %d", ErrDownloadShortfall, len(files), len(run.Attachments))
		return p.fail(run, models.RunStatusDownloadIncomplete, err), err
	}

	zipPath, err := p.archiver.BuildZip(ctx, files)
	if err != nil {
		log.Error("не удалось создать архив", zap.Error(err))
		return p.fail(run, models.RunStatusArchiveFailed, err), err
	}

	run.ArchivePath = zipPath
	run.Status = models.RunStatusCompleted
	run.UpdatedAt = time.Now()

	log.Info("процесс успешно завершен",
		zap.String("download_dir", p.cfg.DownloadPath()),
		zap.String("archive", zipPath),
		zap.Strings("files", files),
	)
	return run, nil
}

func (p *Pipeline) setupFolders(log *zap.Logger) error {
	if err := os.MkdirAll(p.cfg.DownloadPath(), 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию для загрузок: %w", err)
	} else {
		log.Debug("директория для загрузок создана", zap.String("path", p.cfg.DownloadPath()))
	}
	if err := os.MkdirAll(p.cfg.OutputPath(), 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию для архива: %w", err)
	} else {
		log.Debug("директория для архива создана", zap.String("path", p.cfg.OutputPath()))
	}
	return nil
}

func (p *Pipeline) fail(run *models.Run, status models.RunStatus, err error) *models.Run {
	run.Status = status
	run.Errors = append(run.Errors, err.Error())
	run.UpdatedAt = time.Now()
	return run
}

func logAttachments(log *zap.Logger, msg string, atts []models.Attachment) {
	for _, att := range atts {
		log.Info(msg, zap.String("filename", att.Name), zap.String("url", att.URL))
	}
}

// Две ссылки с одним именем файла проходят проверку количества, но
// скачаются в один и тот же файл.
func warnDuplicateNames(log *zap.Logger, atts []models.Attachment) {
	seen := make(map[string]string, len(atts))
	for _, att := range atts {
		if first, ok := seen[att.Name]; ok {
			log.Warn("несколько ссылок ведут к одному имени файла",
				zap.String("filename", att.Name),
				zap.String("first_url", first),
				zap.String("url", att.URL),
			)
			continue
		}
		seen[att.Name] = att.URL
	}
}
