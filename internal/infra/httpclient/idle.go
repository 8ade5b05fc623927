package httpclient

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// IdleTimer отменяет контекст запроса, если между двумя чтениями тела
// ответа прошло больше timeout. Медленная, но непрерывная передача не
// прерывается.
type IdleTimer struct {
	timeout time.Duration
	cancel  context.CancelFunc
	timer   *time.Timer
	fired   atomic.Bool
}

func WithIdleTimeout(ctx context.Context, timeout time.Duration) (context.Context, *IdleTimer) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &IdleTimer{timeout: timeout, cancel: cancel}
}

// Reader оборачивает тело ответа и запускает таймер.
func (t *IdleTimer) Reader(r io.Reader) io.Reader {
	if t.timeout <= 0 {
		return r
	}
	t.timer = time.AfterFunc(t.timeout, func() {
		t.fired.Store(true)
		t.cancel()
	})
	return &idleReader{r: r, t: t}
}

func (t *IdleTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.cancel()
}

type idleReader struct {
	r io.Reader
	t *IdleTimer
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF && r.t.fired.Load() {
		return n, fmt.Errorf("%w (%s): %v", ErrIdleTimeout, r.t.timeout, err)
	}
	r.t.timer.Reset(r.t.timeout)
	return n, err
}
