package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain оборачивает base так, что первый middleware выполняется первым.
func Chain(base http.RoundTripper, mws ...func(http.RoundTripper) http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

func Headers(headers http.Header) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			for key, values := range headers {
				if r.Header.Get(key) != "" {
					continue
				}
				for _, v := range values {
					r.Header.Add(key, v)
				}
			}
			return next.RoundTrip(r)
		})
	}
}

func ReqLogger(log *zap.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			log.Debug("Исходящий HTTP запрос",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
			)

			resp, err := next.RoundTrip(r)
			if err != nil {
				log.Debug("HTTP запрос завершился ошибкой",
					zap.String("url", r.URL.String()),
					zap.Duration("duration", time.Since(start)),
					zap.Error(err),
				)
				return nil, err
			}

			log.Debug("Получен HTTP ответ",
				zap.String("url", r.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", time.Since(start)),
			)
			return resp, nil
		})
	}
}
