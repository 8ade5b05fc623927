package download_service

import "errors"

var (
	ErrContextDone = errors.New("отмена контекста")

	ErrInvalidFileURL     = errors.New("некорректный URL файла")
	ErrFileDownloadFailed = errors.New("не удалось загрузить файл")

	ErrMkdirFailed      = errors.New("не удалось создать директорию")
	ErrFileCreateFailed = errors.New("не удалось создать файл")
	ErrFileCopyFailed   = errors.New("не удалось записать файл")
)
