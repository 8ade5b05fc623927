package services

import "context"

type Archiver interface {
	BuildZip(ctx context.Context, files []string) (string, error)
}
