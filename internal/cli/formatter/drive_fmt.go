package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/drive"
)

// FormatDriveFiles renders a Drive listing with folders first.
func FormatDriveFiles(files []drive.File) string {
	if len(files) == 0 {
		return Dim("No files.")
	}

	rows := make([][]string, 0, len(files))
	add := func(f drive.File) {
		name := StyleFg.Render(f.Name)
		size := HumanSize(f.Size)
		if f.IsFolder() {
			name = StyleBlue.Render(f.Name + "/")
			size = Dim("--")
		}
		modified := Dim("--")
		if !f.ModifiedTime.IsZero() {
			modified = Dim(f.ModifiedTime.Format("2006-01-02"))
		}
		rows = append(rows, []string{name, size, modified, Dim(f.ID)})
	}
	for _, f := range files {
		if f.IsFolder() {
			add(f)
		}
	}
	for _, f := range files {
		if !f.IsFolder() {
			add(f)
		}
	}
	return RenderTable([]string{"NAME", "SIZE", "MODIFIED", "ID"}, rows)
}

// FormatDriveStatus renders the sign-in state and any advisory error.
func FormatDriveStatus(st drive.Status) string {
	var parts []string
	switch {
	case st.Demo:
		parts = append(parts, StyleYellow.Render("● demo mode"))
	case st.SignedIn:
		parts = append(parts, StyleGreen.Render("● signed in"))
	default:
		parts = append(parts, Dim("○ signed out"))
	}
	if st.Loading {
		parts = append(parts, Dim("loading…"))
	}
	if len(st.Files) > 0 {
		parts = append(parts, Dim(pluralFiles(len(st.Files))))
	}

	out := strings.Join(parts, "  ")
	if st.Error != "" {
		out += "\n" + StyleYellow.Render(st.Error)
	}
	return out
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file loaded"
	}
	return fmt.Sprintf("%d files loaded", n)
}
