package httpclient

import "errors"

var ErrIdleTimeout = errors.New("сервер не присылает данные дольше таймаута")
