package services

import (
	"context"

	"github.com/sunr3d/ans-anexos/models"
)

type Downloader interface {
	DownloadFile(ctx context.Context, att models.Attachment) (string, error)
	DownloadAll(ctx context.Context, atts []models.Attachment) ([]string, []error)
}
