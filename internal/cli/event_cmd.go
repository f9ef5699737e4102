package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/attach"
	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventUpdateCmd(app),
		newEventRemoveCmd(app),
		newEventListCmd(app),
		newEventShowCmd(app),
		newEventAttachCmd(app),
	)

	return cmd
}

// errDerivedEvent explains why generated events cannot be edited directly.
func errDerivedEvent(e domain.Event) error {
	switch e.Origin.Kind {
	case domain.OriginProjectDeadline:
		return fmt.Errorf("%q is the deadline of a project; change the project's end date instead", e.Title)
	case domain.OriginTaskDeadline:
		return fmt.Errorf("%q is the due date of a task; change the task instead", e.Title)
	default:
		return fmt.Errorf("%q belongs to a recurring class; change the class instead", e.Title)
	}
}

type eventFlags struct {
	title, description, date, start, end, typ, color, project string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Event title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (HH:MM); omit for all-day")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&f.typ, "type", "meeting", "class, meeting, deadline, personal or assignment")
	cmd.Flags().StringVar(&f.color, "color", "", "Hex color, e.g. #3b82f6")
	cmd.Flags().StringVar(&f.project, "project", "", "Project this event belongs to")
}

// apply copies the flags the user set onto e.
func (f *eventFlags) apply(cmd *cobra.Command, app *App, e domain.Event) (domain.Event, error) {
	changed := cmd.Flags().Changed
	if changed("title") {
		e.Title = strings.TrimSpace(f.title)
	}
	if changed("description") {
		e.Description = f.description
	}
	if changed("date") {
		d, err := app.parseDate(f.date)
		if err != nil {
			return e, err
		}
		e.Date = d
	}
	if changed("start") {
		e.StartTime = f.start
	}
	if changed("end") {
		e.EndTime = f.end
	}
	if changed("type") || e.Type == "" {
		t, err := parseEventType(f.typ)
		if err != nil {
			return e, err
		}
		e.Type = t
	}
	if changed("color") {
		e.Color = f.color
	}
	if changed("project") {
		e.ProjectID = ""
		if f.project != "" {
			p, err := resolveProject(app.state(), f.project)
			if err != nil {
				return e, err
			}
			e.ProjectID = p.ID
		}
	}

	if e.Title == "" {
		return e, fmt.Errorf("event title is required")
	}
	if err := validateTimes(e.StartTime, e.EndTime); err != nil {
		return e, err
	}
	return e, nil
}

func newEventAddCmd(app *App) *cobra.Command {
	var f eventFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := f.apply(cmd, app, domain.Event{ID: app.newID()})
			if err != nil {
				return err
			}
			app.Store.Dispatch(store.AddEvent{Event: e})

			fmt.Fprintf(cmd.OutOrStdout(), "Added event %s on %s [%s]\n",
				e.Title, e.Date.Format(dateLayout), domain.DisplayID(e.ID))
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var f eventFlags
	var allDay bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an event you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEvent(app.state(), args[0])
			if err != nil {
				return err
			}
			if e.IsDerived() {
				return errDerivedEvent(e)
			}
			if allDay {
				e.StartTime, e.EndTime = "", ""
			}
			if e, err = f.apply(cmd, app, e); err != nil {
				return err
			}
			app.Store.Dispatch(store.UpdateEvent{Event: e})

			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s\n", e.Title)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Clear start and end times")

	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an event you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEvent(app.state(), args[0])
			if err != nil {
				return err
			}
			if e.IsDerived() {
				return errDerivedEvent(e)
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{
				Title:   "Delete event?",
				Message: fmt.Sprintf("%q on %s will be removed.", e.Title, e.Date.Format(dateLayout)),
			})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}
			app.Store.Dispatch(store.DeleteEvent{ID: e.ID})

			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", e.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the events you created",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			var events []domain.Event
			for _, e := range st.Events {
				if all || !e.IsDerived() {
					events = append(events, e)
				}
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					e.Date.Format(dateLayout),
					formatter.ClockRange(e.StartTime, e.EndTime),
					formatter.Swatch(e.Color) + " " + e.Title,
					formatter.EventTypeBadge(e.Type),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "DATE", "TIME", "TITLE", "TYPE"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include class sessions and deadlines")

	return cmd
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEvent(app.state(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEventDetail(e, app.now()))
			return nil
		},
	}
}

func newEventAttachCmd(app *App) *cobra.Command {
	var f attachFlags

	cmd := &cobra.Command{
		Use:   "attach ID",
		Short: "Attach a local or Drive file to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEvent(app.state(), args[0])
			if err != nil {
				return err
			}
			if e.IsDerived() {
				return errDerivedEvent(e)
			}
			att, err := f.build(cmd.Context(), app)
			if err != nil {
				return err
			}
			files, added := attach.Add(e.Files, att)
			if added {
				e.Files = files
				app.Store.Dispatch(store.UpdateEvent{Event: e})
			}
			reportAttached(cmd, att, added, e.Title)
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

// cancelled reports a declined confirmation. A nil err means the user said no.
func cancelled(cmd *cobra.Command, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	return nil
}
