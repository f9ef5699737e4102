package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/alexanderramin/teachdesk/internal/timetable"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage weekly schedule templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateUpdateCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateListCmd(app),
		newTemplateImportCmd(app),
	)

	return cmd
}

type templateFlags struct {
	name, day, start, end, color, description string
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Group name shared by the slots of one course")
	cmd.Flags().StringVar(&f.day, "day", "", "Day of week (monday, tue, or 0-6 from Monday)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&f.color, "color", "", "Hex color")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
}

func (f *templateFlags) apply(cmd *cobra.Command, t domain.ScheduleTemplate) (domain.ScheduleTemplate, error) {
	changed := cmd.Flags().Changed
	if changed("name") {
		t.Name = strings.TrimSpace(f.name)
	}
	if changed("day") {
		d, err := domain.ParseWeekday(f.day)
		if err != nil {
			return t, err
		}
		t.DayOfWeek = d
	}
	if changed("start") {
		t.StartTime = strings.TrimSpace(f.start)
	}
	if changed("end") {
		t.EndTime = strings.TrimSpace(f.end)
	}
	if changed("color") {
		t.Color = f.color
	}
	if changed("description") {
		t.Description = f.description
	}
	return t, t.Validate()
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var f templateFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weekly slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := f.apply(cmd, domain.ScheduleTemplate{ID: app.newID()})
			if err != nil {
				return err
			}
			app.Store.Dispatch(store.AddScheduleTemplate{Template: t})
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s slot %s %s [%s]\n",
				t.Name, t.DayOfWeek, formatter.ClockRange(t.StartTime, t.EndTime), domain.DisplayID(t.ID))
			return nil
		},
	}

	f.register(cmd)
	for _, name := range []string{"name", "day", "start", "end"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newTemplateUpdateCmd(app *App) *cobra.Command {
	var f templateFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a slot; bound class sessions are regenerated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTemplate(app.state(), args[0])
			if err != nil {
				return err
			}
			if t, err = f.apply(cmd, t); err != nil {
				return err
			}
			app.Store.Dispatch(store.UpdateScheduleTemplate{Template: t})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s slot %s %s\n",
				t.Name, t.DayOfWeek, formatter.ClockRange(t.StartTime, t.EndTime))
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a slot with the classes and sessions bound to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			t, err := resolveTemplate(st, args[0])
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("The %s slot on %s will be removed.", t.Name, t.DayOfWeek)
			n := 0
			for _, rc := range st.RecurringClasses {
				if rc.ScheduleTemplateID == t.ID {
					n++
				}
			}
			if n > 0 {
				msg += fmt.Sprintf(" %d recurring classes and their sessions go with it.", n)
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{Title: "Delete schedule template?", Message: msg})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}

			app.Store.Dispatch(store.DeleteScheduleTemplate{ID: t.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s slot on %s\n", t.Name, t.DayOfWeek)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedule templates by group",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(st.TemplateGroups(), st.TemplateGroupNames()))
			return nil
		},
	}
}

func newTemplateImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import template groups from a YAML timetable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := timetable.Load(args[0])
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Timetable has no groups.")
				return nil
			}

			groups := make(map[string][]domain.ScheduleTemplate)
			var names []string
			for _, t := range templates {
				if _, seen := groups[t.Name]; !seen {
					names = append(names, t.Name)
				}
				groups[t.Name] = append(groups[t.Name], t)
				app.Store.Dispatch(store.AddScheduleTemplate{Template: t})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d slots:\n", len(templates))
			fmt.Fprint(out, formatter.FormatTemplateGroupSummary(groups, names))
			return nil
		},
	}
}

// ── recurring classes ────────────────────────────────────────────────────────

func newClassCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Manage recurring classes",
	}

	cmd.AddCommand(
		newClassAddCmd(app),
		newClassUpdateCmd(app),
		newClassRemoveCmd(app),
		newClassListCmd(app),
	)

	return cmd
}

type classFlags struct {
	title, description, template, start, end, project, color string
}

func (f *classFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Class title (default the template name)")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.template, "template", "", "Schedule template the class meets in")
	cmd.Flags().StringVar(&f.start, "start", "", "First day of the class (default today)")
	cmd.Flags().StringVar(&f.end, "end", "", "Last day (default Dec 31 of the start year)")
	cmd.Flags().StringVar(&f.project, "project", "", "Course the sessions belong to")
	cmd.Flags().StringVar(&f.color, "color", "", "Hex color (default the template color)")
}

func (f *classFlags) apply(cmd *cobra.Command, app *App, rc domain.RecurringClass) (domain.RecurringClass, error) {
	st := app.state()
	changed := cmd.Flags().Changed

	if changed("template") {
		t, err := resolveTemplate(st, f.template)
		if err != nil {
			return rc, err
		}
		rc.ScheduleTemplateID = t.ID
		rc.GroupName = t.Name
		if rc.Title == "" {
			rc.Title = t.Name
		}
		if rc.Color == "" {
			rc.Color = t.Color
		}
	}
	if changed("title") {
		rc.Title = strings.TrimSpace(f.title)
	}
	if changed("description") {
		rc.Description = f.description
	}
	if changed("color") {
		rc.Color = f.color
	}
	if changed("start") {
		d, err := app.parseDate(f.start)
		if err != nil {
			return rc, err
		}
		rc.StartDate = d
	}
	if changed("end") {
		d, err := app.parseDate(f.end)
		if err != nil {
			return rc, err
		}
		rc.EndDate = d
	}
	if rc.EndDate.IsZero() {
		rc.EndDate = domain.EndOfYear(rc.StartDate)
	}
	if changed("project") {
		rc.ProjectID = ""
		if f.project != "" {
			p, err := resolveProject(st, f.project)
			if err != nil {
				return rc, err
			}
			rc.ProjectID = p.ID
		}
	}

	if rc.Title == "" {
		return rc, fmt.Errorf("class title is required")
	}
	if rc.EndDate.Before(rc.StartDate) {
		return rc, fmt.Errorf("class ends %s before it starts %s",
			rc.EndDate.Format(dateLayout), rc.StartDate.Format(dateLayout))
	}
	return rc, nil
}

func newClassAddCmd(app *App) *cobra.Command {
	var f classFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring class and schedule its sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := f.apply(cmd, app, domain.RecurringClass{
				ID:        app.newID(),
				StartDate: domain.StartOfDay(app.now()),
			})
			if err != nil {
				return err
			}

			next := app.Store.Dispatch(store.AddRecurringClass{Class: rc})
			fmt.Fprintf(cmd.OutOrStdout(), "Added class %s with %d sessions [%s]\n",
				rc.Title, countSessions(next, rc.ID), domain.DisplayID(rc.ID))
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newClassUpdateCmd(app *App) *cobra.Command {
	var f classFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a recurring class; its sessions are regenerated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := resolveClass(app.state(), args[0])
			if err != nil {
				return err
			}
			if rc, err = f.apply(cmd, app, rc); err != nil {
				return err
			}

			next := app.Store.Dispatch(store.UpdateRecurringClass{Class: rc})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated class %s (%d sessions)\n", rc.Title, countSessions(next, rc.ID))
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

func newClassRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a recurring class and its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			rc, err := resolveClass(st, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{
				Title:   "Delete recurring class?",
				Message: fmt.Sprintf("%q and its %d sessions will be removed.", rc.Title, countSessions(st, rc.ID)),
			})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}

			app.Store.Dispatch(store.DeleteRecurringClass{ID: rc.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed class %s\n", rc.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newClassListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			classes := st.RecurringClasses
			if project != "" {
				p, err := resolveProject(st, project)
				if err != nil {
					return err
				}
				classes = st.ClassesForProject(p.ID)
			}
			if len(classes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recurring classes.")
				return nil
			}

			templates := make(map[string]domain.ScheduleTemplate, len(st.ScheduleTemplates))
			for _, t := range st.ScheduleTemplates {
				templates[t.ID] = t
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClassList(classes, templates, projectNames(st)))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only classes of this course")

	return cmd
}

func countSessions(st store.State, classID string) int {
	n := 0
	for _, e := range st.Events {
		if e.OwnedBy(domain.OriginRecurring, classID) {
			n++
		}
	}
	return n
}

func projectNames(st store.State) map[string]string {
	names := make(map[string]string, len(st.Projects))
	for _, p := range st.Projects {
		names[p.ID] = p.Name
	}
	return names
}
