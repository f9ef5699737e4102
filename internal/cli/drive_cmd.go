package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/spf13/cobra"
)

func newDriveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Browse Google Drive and share files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Drive == nil {
				return fmt.Errorf("drive is not available in this session")
			}
			return nil
		},
	}

	cmd.AddCommand(
		newDriveSignInCmd(app),
		newDriveSignOutCmd(app),
		newDriveListCmd(app),
		newDriveSearchCmd(app),
		newDriveLinkCmd(app),
		newDriveStatusCmd(app),
	)

	return cmd
}

// withSpinner runs fn behind a spinner on stderr when the session is
// interactive.
func withSpinner(cmd *cobra.Command, app *App, msg string, fn func(ctx context.Context) error) error {
	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
		defer stop()
	}
	return fn(cmd.Context())
}

func newDriveSignInCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Sign in to Google Drive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Drive.SignIn(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDriveStatus(app.Drive.Status()))
			return nil
		},
	}
}

func newDriveSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out of Google Drive",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Drive.SignOut()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out of Google Drive.")
			return nil
		},
	}
}

func newDriveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [FOLDER_ID]",
		Short: "List a Drive folder (root by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := ""
			if len(args) == 1 {
				folder = args[0]
			}
			var files []drive.File
			err := withSpinner(cmd, app, "Loading files…", func(ctx context.Context) error {
				var err error
				files, err = app.Drive.LoadFiles(ctx, folder)
				return err
			})
			if err != nil {
				return err
			}
			printDriveFiles(cmd, app, files)
			return nil
		},
	}
}

func newDriveSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find Drive files by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []drive.File
			err := withSpinner(cmd, app, "Searching…", func(ctx context.Context) error {
				var err error
				files, err = app.Drive.SearchFiles(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}
			printDriveFiles(cmd, app, files)
			return nil
		},
	}
}

func newDriveLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link FILE_ID",
		Short: "Create a shareable link for a Drive file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var link string
			err := withSpinner(cmd, app, "Sharing…", func(ctx context.Context) error {
				var err error
				link, err = app.Drive.CreateShareableLink(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			if msg := app.Drive.Status().Error; msg != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render(msg))
			}
			return nil
		},
	}
}

func newDriveStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Drive connection state",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDriveStatus(app.Drive.Status()))
			return nil
		},
	}
}

// printDriveFiles prints a listing and the advisory notice, if any.
func printDriveFiles(cmd *cobra.Command, app *App, files []drive.File) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDriveFiles(files))
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	if msg := app.Drive.Status().Error; msg != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render(msg))
	}
}
