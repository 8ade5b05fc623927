package services

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/sunr3d/ans-anexos/models"
)

type Scraper interface {
	FetchPage(ctx context.Context) (*goquery.Document, error)
	FindAttachments(doc *goquery.Document) []models.Attachment
}
