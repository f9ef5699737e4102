package cli

import (
	"time"

	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the session state and the services CLI commands act on.
type App struct {
	Store  *store.Store
	Drive  *drive.Client
	Logger *zap.Logger

	// Loc is the zone dates on the command line are read in.
	Loc *time.Location
	Now func() time.Time

	NewID func() string

	// IsInteractive reports whether stdin is a terminal. Destructive
	// commands ask before acting when it is, and require --yes otherwise.
	IsInteractive func() bool

	// Ask shows a yes/no question; nil uses a huh confirm form.
	Ask func(title, message string) (bool, error)

	// AssumeYes answers every confirmation with yes.
	AssumeYes bool

	HistoryPath string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().In(a.loc())
	}
	return time.Now().In(a.loc())
}

func (a *App) loc() *time.Location {
	if a.Loc != nil {
		return a.Loc
	}
	return time.Local
}

func (a *App) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.New().String()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) state() store.State {
	return a.Store.State()
}

// NewRootCmd creates the top-level "teachdesk" command and registers all
// subcommands against the provided App. Run without arguments on a
// terminal, it starts the shell.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "teachdesk",
		Short: "Calendar, courses and task boards for teachers",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.logger().Debug("command", zap.String("path", cmd.CommandPath()), zap.Strings("args", args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runShell(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newEventCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newSubtaskCmd(app),
		newColumnCmd(app),
		newTemplateCmd(app),
		newClassCmd(app),
		newCalendarCmd(app),
		newBoardCmd(app),
		newDriveCmd(app),
		newRunCmd(app),
		newShellCmd(app),
	)

	return root
}
