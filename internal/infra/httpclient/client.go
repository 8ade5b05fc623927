package httpclient

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/interfaces/infra"
	"github.com/sunr3d/ans-anexos/internal/middleware"
)

var _ infra.HTTPClient = (*http.Client)(nil)

// New не ограничивает общее время запроса: cfg.HTTPTimeout действует на
// соединение и ожидание заголовков, а на чтение тела через IdleTimer.
func New(cfg *config.Config, log *zap.Logger) *http.Client {
	headers := http.Header{}
	headers.Set("User-Agent", cfg.UserAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")
	headers.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   cfg.HTTPTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = cfg.HTTPTimeout
	transport.ResponseHeaderTimeout = cfg.HTTPTimeout

	return &http.Client{
		Transport: middleware.Chain(transport,
			middleware.Headers(headers),
			middleware.ReqLogger(log),
		),
	}
}
