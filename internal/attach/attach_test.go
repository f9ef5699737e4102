package attach

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

func TestFromPath_SniffsContent(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "worksheet.bin")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"), 0o600))

	att, err := FromPath(pdf, now)
	require.NoError(t, err)
	assert.Equal(t, "worksheet.bin", att.Name)
	assert.Equal(t, "application/pdf", att.MimeType)
	assert.Equal(t, domain.SourceLocal, att.Source)
	assert.Positive(t, att.Size)
	assert.Contains(t, att.URL, "file://")
	assert.Equal(t, now, att.AddedAt)
	assert.NotEmpty(t, att.ID)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("bring calculators\n"), 0o600))
	att, err = FromPath(txt, now)
	require.NoError(t, err)
	assert.Contains(t, att.MimeType, "text/plain")
}

func TestFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := FromPath(dir, now)
	assert.ErrorIs(t, err, ErrDirectory)

	_, err = FromPath(filepath.Join(dir, "missing.pdf"), now)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromDrive_PrefersShareLink(t *testing.T) {
	f := drive.File{ID: "f1", Name: "Quiz.pdf", MimeType: "application/pdf", Size: 10, WebViewLink: "https://drive/view"}

	att := FromDrive(f, "https://drive/share", now)
	assert.Equal(t, "f1", att.ID)
	assert.Equal(t, "https://drive/share", att.URL)
	assert.Equal(t, domain.SourceDrive, att.Source)

	att = FromDrive(f, "", now)
	assert.Equal(t, "https://drive/view", att.URL)
}

func TestAdd_SkipsDuplicates(t *testing.T) {
	files, added := Add(nil, domain.FileAttachment{ID: "a"})
	assert.True(t, added)
	files, added = Add(files, domain.FileAttachment{ID: "a"})
	assert.False(t, added)
	assert.Len(t, files, 1)
}
