package scraper_service

import "errors"

var (
	ErrContextDone = errors.New("отмена контекста")

	ErrInvalidPageURL  = errors.New("некорректный URL страницы")
	ErrPageFetchFailed = errors.New("не удалось загрузить страницу")
	ErrPageParseFailed = errors.New("не удалось разобрать HTML страницы")
)
