package models

import "time"

type RunStatus string

const (
	RunStatusStarted            RunStatus = "started"
	RunStatusSetupFailed        RunStatus = "setup_failed"
	RunStatusFetchFailed        RunStatus = "fetch_failed"
	RunStatusNotFound           RunStatus = "not_found"
	RunStatusDownloadIncomplete RunStatus = "download_incomplete"
	RunStatusArchiveFailed      RunStatus = "archive_failed"
	RunStatusCompleted          RunStatus = "completed"
)

type Run struct {
	ID          string       `json:"id"`
	Status      RunStatus    `json:"status"`
	Attachments []Attachment `json:"attachments"`
	Files       []string     `json:"files"`
	ArchivePath string       `json:"archive_path,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Errors      []string     `json:"errors,omitempty"`
}
