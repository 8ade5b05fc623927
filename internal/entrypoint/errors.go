package entrypoint

import "errors"

var (
	ErrAttachmentsNotFound = errors.New("не удалось найти оба анекса на странице")
	ErrDownloadShortfall   = errors.New("не удалось скачать все анексы")
)
