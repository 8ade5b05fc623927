package scraper_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/infra/httpclient"
)

const testUserAgent = "Mozilla/5.0 (test)"

const testPage = `<html><head><title>Rol</title></head><body>
	<a href="/docs/rol_2021_anexoI.pdf">Anexo I</a>
	<a href="/docs/dut_2021_anexoII.pdf">Anexo II</a>
</body></html>`

func setupTestService(t *testing.T, handler http.HandlerFunc) (*scraperService, *httptest.Server) {
	logger := zaptest.NewLogger(t)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		PageURL:     srv.URL + "/rol",
		UserAgent:   testUserAgent,
		HTTPTimeout: 30 * time.Second,
	}

	service := New(logger, cfg, httpclient.New(cfg, logger)).(*scraperService)
	return service, srv
}

func TestScraperService_FetchPage_Success(t *testing.T) {
	gotUA := make(chan string, 1)
	service, srv := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA <- r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(testPage))
	})

	doc, err := service.FetchPage(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testUserAgent, <-gotUA)
	assert.Equal(t, "Rol", doc.Find("title").Text())

	atts := service.FindAttachments(doc)
	require.Len(t, atts, 2)
	assert.Equal(t, AnexoIName, atts[0].Name)
	assert.Equal(t, srv.URL+"/docs/rol_2021_anexoI.pdf", atts[0].URL)
	assert.Equal(t, AnexoIIName, atts[1].Name)
	assert.Equal(t, srv.URL+"/docs/dut_2021_anexoII.pdf", atts[1].URL)
}

func TestScraperService_FetchPage_DecodesCharset(t *testing.T) {
	service, _ := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<html><head><title>Atualiza\xe7\xe3o</title></head></html>"))
	})

	doc, err := service.FetchPage(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Atualização", doc.Find("title").Text())
}

func TestScraperService_FetchPage_BadStatus(t *testing.T) {
	service, _ := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	})

	_, err := service.FetchPage(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageFetchFailed)
	assert.Contains(t, err.Error(), "503")
}

func TestScraperService_FetchPage_ConnectionError(t *testing.T) {
	service, srv := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := service.FetchPage(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageFetchFailed)
}

func TestScraperService_FetchPage_Timeout(t *testing.T) {
	release := make(chan struct{})
	service, _ := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	service.cfg.HTTPTimeout = 50 * time.Millisecond
	service.httpClient = httpclient.New(service.cfg, zaptest.NewLogger(t))

	_, err := service.FetchPage(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageFetchFailed)
}

func TestScraperService_FetchPage_ContextCanceled(t *testing.T) {
	service, _ := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("запрос не должен был уйти")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.FetchPage(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "отмена контекста")
}

func TestScraperService_FindAttachments_FallsBackToPageURL(t *testing.T) {
	service, srv := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	})

	doc, err := service.FetchPage(context.Background())
	require.NoError(t, err)
	doc.Url = nil

	atts := service.FindAttachments(doc)

	require.Len(t, atts, 2)
	assert.Equal(t, srv.URL+"/docs/rol_2021_anexoI.pdf", atts[0].URL)
}

func TestScraperService_FetchPage_BodyStalls(t *testing.T) {
	release := make(chan struct{})
	service, _ := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><title>Rol</title>"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	service.cfg.HTTPTimeout = 100 * time.Millisecond
	service.httpClient = httpclient.New(service.cfg, zaptest.NewLogger(t))

	_, err := service.FetchPage(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), httpclient.ErrIdleTimeout.Error())
}
