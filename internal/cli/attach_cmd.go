package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teachdesk/internal/attach"
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/spf13/cobra"
)

// attachFlags are shared by every "attach" subcommand.
type attachFlags struct {
	file    string
	driveID string
}

func (f *attachFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Local file to attach")
	cmd.Flags().StringVar(&f.driveID, "drive", "", "Google Drive file ID to attach")
	cmd.MarkFlagsMutuallyExclusive("file", "drive")
	cmd.MarkFlagsOneRequired("file", "drive")
}

// build turns the flags into an attachment record.
func (f *attachFlags) build(ctx context.Context, app *App) (domain.FileAttachment, error) {
	if f.file != "" {
		return attach.FromPath(f.file, app.now())
	}
	if app.Drive == nil {
		return domain.FileAttachment{}, fmt.Errorf("drive is not available in this session")
	}

	file, err := findDriveFile(ctx, app.Drive, f.driveID)
	if err != nil {
		return domain.FileAttachment{}, err
	}
	link, err := app.Drive.CreateShareableLink(ctx, file.ID)
	if err != nil {
		return domain.FileAttachment{}, err
	}
	return attach.FromDrive(file, link, app.now()), nil
}

// findDriveFile looks in the last listing first and falls back to a full
// search.
func findDriveFile(ctx context.Context, c *drive.Client, id string) (drive.File, error) {
	files := c.Status().Files
	if !containsFile(files, id) {
		var err error
		if files, err = c.SearchFiles(ctx, ""); err != nil {
			return drive.File{}, err
		}
	}
	for _, f := range files {
		if f.ID != id {
			continue
		}
		if f.IsFolder() {
			return drive.File{}, fmt.Errorf("%s is a folder", f.Name)
		}
		return f, nil
	}
	return drive.File{}, fmt.Errorf("drive file not found: %q", id)
}

func containsFile(files []drive.File, id string) bool {
	for _, f := range files {
		if f.ID == id {
			return true
		}
	}
	return false
}

func reportAttached(cmd *cobra.Command, att domain.FileAttachment, added bool, target string) {
	if !added {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already attached to %s\n", att.Name, target)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s) to %s\n", att.Name, att.MimeType, target)
}
