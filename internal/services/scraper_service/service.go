package scraper_service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/infra/httpclient"
	"github.com/sunr3d/ans-anexos/internal/interfaces/infra"
	"github.com/sunr3d/ans-anexos/internal/interfaces/services"
	"github.com/sunr3d/ans-anexos/models"
)

var _ services.Scraper = (*scraperService)(nil)

type scraperService struct {
	logger     *zap.Logger
	cfg        *config.Config
	httpClient infra.HTTPClient
}

func New(log *zap.Logger, cfg *config.Config, client infra.HTTPClient) services.Scraper {
	return &scraperService{
		logger:     log,
		cfg:        cfg,
		httpClient: client,
	}
}

// FetchPage загружает страницу cfg.PageURL и возвращает разобранный документ.
// Любой статус кроме 2xx считается ошибкой.
func (s *scraperService) FetchPage(ctx context.Context) (*goquery.Document, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	reqCtx, idle := httpclient.WithIdleTimeout(ctx, s.cfg.HTTPTimeout)
	defer idle.Stop()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.cfg.PageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageURL, err)
	}

	s.logger.Info("загрузка страницы", zap.String("url", s.cfg.PageURL))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP status %d", ErrPageFetchFailed, resp.StatusCode)
	}

	body, err := charset.NewReader(idle.Reader(resp.Body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageParseFailed, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageParseFailed, err)
	}
	if resp.Request != nil {
		doc.Url = resp.Request.URL
	}

	return doc, nil
}

// FindAttachments ищет ссылки на анексы относительно адреса документа,
// а если он неизвестен, относительно cfg.PageURL.
func (s *scraperService) FindAttachments(doc *goquery.Document) []models.Attachment {
	base := doc.Url
	if base == nil {
		parsed, err := url.Parse(s.cfg.PageURL)
		if err != nil {
			s.logger.Error("некорректный базовый URL", zap.String("url", s.cfg.PageURL), zap.Error(err))
			return nil
		}
		base = parsed
	}

	return FindAttachments(doc, base, s.logger)
}
