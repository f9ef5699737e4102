package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShellHistory_FileNotFound_ReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "shell_history")
	assert.Nil(t, loadHistoryFromPath(path))
}

func TestLoadShellHistory_EmptyPath(t *testing.T) {
	assert.Nil(t, loadHistoryFromPath(""))
}

func TestLoadShellHistory_ReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell_history")
	content := "today\nboard Algebra\n\n  task list --overdue  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines := loadHistoryFromPath(path)
	assert.Equal(t, []string{"today", "board Algebra", "task list --overdue"}, lines)
}

func TestLoadShellHistory_TruncatesOverMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell_history")

	var b strings.Builder
	for i := 0; i < 600; i++ {
		b.WriteString("line\n")
	}
	b.WriteString("last\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	lines := loadHistoryFromPath(path)
	assert.Len(t, lines, maxHistoryLines)
	assert.Equal(t, "last", lines[len(lines)-1])
}

func TestAppendShellHistory_AppendsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shell_history")

	appendHistoryToPath(path, "first command")
	appendHistoryToPath(path, "second command")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first command\nsecond command\n", string(data))
}

func TestAppendShellHistory_SkipsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell_history")

	appendHistoryToPath(path, "")
	appendHistoryToPath(path, "   ")
	appendHistoryToPath("", "ignored")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file should not be created for empty lines")
}
