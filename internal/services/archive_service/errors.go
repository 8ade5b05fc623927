package archive_service

import "errors"

var (
	ErrContextDone = errors.New("отмена контекста")

	ErrArchiveBuild = errors.New("не удалось создать архив")

	ErrMkdirFailed      = errors.New("не удалось создать директорию")
	ErrFileCreateFailed = errors.New("не удалось создать файл")
	ErrFileOpenFailed   = errors.New("не удалось открыть файл")
	ErrFileCopyFailed   = errors.New("не удалось скопировать файл")
)
