package domain

import "time"

type FileAttachment struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
	URL      string
	Source   AttachmentSource
	AddedAt  time.Time
}
