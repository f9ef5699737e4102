// Package attach builds file attachment records from local files and Drive
// entries.
package attach

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrDirectory is returned when a path names a directory.
var ErrDirectory = errors.New("attachment path is a directory")

// FromPath stats a local file and sniffs its content type.
func FromPath(path string, now time.Time) (domain.FileAttachment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.FileAttachment{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return domain.FileAttachment{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return domain.FileAttachment{}, fmt.Errorf("%s: %w", path, ErrDirectory)
	}
	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return domain.FileAttachment{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	return domain.FileAttachment{
		ID:       uuid.New().String(),
		Name:     info.Name(),
		MimeType: mt.String(),
		Size:     info.Size(),
		URL:      "file://" + filepath.ToSlash(abs),
		Source:   domain.SourceLocal,
		AddedAt:  now,
	}, nil
}

// FromDrive maps a Drive file and its shareable link to an attachment.
// The Drive file id is kept as the attachment id so re-attaching the same
// file is detectable.
func FromDrive(f drive.File, link string, now time.Time) domain.FileAttachment {
	return domain.FileAttachment{
		ID:       f.ID,
		Name:     f.Name,
		MimeType: f.MimeType,
		Size:     f.Size,
		URL:      domain.CoalesceStr(link, f.WebViewLink),
		Source:   domain.SourceDrive,
		AddedAt:  now,
	}
}

// Add appends att unless an attachment with the same id is already present.
func Add(files []domain.FileAttachment, att domain.FileAttachment) ([]domain.FileAttachment, bool) {
	for _, f := range files {
		if f.ID == att.ID {
			return files, false
		}
	}
	out := make([]domain.FileAttachment, 0, len(files)+1)
	out = append(out, files...)
	return append(out, att), true
}
