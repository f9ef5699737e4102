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

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and courses",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectAttachCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description, color, typ, start, end, group, parent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project, or a course bound to a schedule template group",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()

			p := domain.Project{
				ID:          app.newID(),
				Name:        strings.TrimSpace(name),
				Description: description,
				Color:       color,
			}
			if p.Name == "" {
				return fmt.Errorf("project name is required")
			}

			var err error
			if p.Type, err = parseProjectType(typ); err != nil {
				return err
			}
			if start == "" {
				start = "today"
			}
			if p.StartDate, err = app.parseDate(start); err != nil {
				return err
			}
			if p.EndDate, err = app.parseOptionalDate(end); err != nil {
				return err
			}
			if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
				return fmt.Errorf("end date %s is before start date %s", end, start)
			}
			if parent != "" {
				course, err := resolveProject(st, parent)
				if err != nil {
					return err
				}
				if !course.IsCourse() {
					return fmt.Errorf("%s is not a course", course.Name)
				}
				p.ParentCourseID = course.ID
			}

			var np store.NewProject = store.PlainProject{Project: p}
			if group != "" {
				if _, ok := st.TemplateGroups()[group]; !ok {
					return fmt.Errorf("schedule template group %q not found", group)
				}
				np = store.CourseFromTemplateGroup{Project: p, TemplateGroupName: group}
			}
			next := app.Store.Dispatch(store.AddProject{New: np})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created project %s [%s]\n", p.Name, domain.DisplayID(p.ID))
			if classes := next.ClassesForProject(p.ID); len(classes) > 0 {
				n := 0
				for _, e := range next.Events {
					if e.Origin.Kind == domain.OriginRecurring && e.ProjectID == p.ID {
						n++
					}
				}
				fmt.Fprintf(out, "Scheduled %d class sessions from %d slots of %s\n", n, len(classes), group)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #3b82f6")
	cmd.Flags().StringVar(&typ, "type", string(domain.ProjectNone), "none, course, administrative or personal")
	cmd.Flags().StringVar(&start, "start", "", "Start date (default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date; adds a deadline to the calendar")
	cmd.Flags().StringVar(&group, "template-group", "", "Schedule template group to create class sessions from")
	cmd.Flags().StringVar(&parent, "course", "", "Parent course")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, description, color, typ, start, end, parent string
	var clearEnd bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			p, err := resolveProject(st, args[0])
			if err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			var patch store.ProjectPatch
			if changed("name") {
				n := strings.TrimSpace(name)
				if n == "" {
					return fmt.Errorf("project name cannot be empty")
				}
				patch.Name = &n
			}
			if changed("description") {
				patch.Description = &description
			}
			if changed("color") {
				patch.Color = &color
			}
			if changed("type") {
				t, err := parseProjectType(typ)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if changed("start") {
				d, err := app.parseDate(start)
				if err != nil {
					return err
				}
				patch.StartDate = &d
			}
			if changed("end") {
				if patch.EndDate, err = app.parseOptionalDate(end); err != nil {
					return err
				}
			}
			patch.ClearEndDate = clearEnd
			if changed("course") {
				id := ""
				if parent != "" {
					course, err := resolveProject(st, parent)
					if err != nil {
						return err
					}
					id = course.ID
				}
				patch.ParentCourseID = &id
			}

			app.Store.Dispatch(store.UpdateProject{ID: p.ID, Patch: patch})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&color, "color", "", "Hex color")
	cmd.Flags().StringVar(&typ, "type", "", "none, course, administrative or personal")
	cmd.Flags().StringVar(&start, "start", "", "Start date")
	cmd.Flags().StringVar(&end, "end", "", "End date")
	cmd.Flags().BoolVar(&clearEnd, "clear-end", false, "Remove the end date and its deadline")
	cmd.Flags().StringVar(&parent, "course", "", "Parent course (empty to detach)")
	cmd.MarkFlagsMutuallyExclusive("end", "clear-end")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project with its tasks, classes and deadlines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			p, err := resolveProject(st, args[0])
			if err != nil {
				return err
			}
			if p.IsGeneral() {
				return fmt.Errorf("the %s project cannot be removed", p.Name)
			}

			msg := fmt.Sprintf("%q and its %d tasks will be removed.", p.Name, len(p.Tasks))
			if n := len(st.ClassesForProject(p.ID)); n > 0 {
				msg += fmt.Sprintf(" %d recurring classes and their sessions go with it.", n)
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{Title: "Delete project?", Message: msg})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}
			app.Store.Dispatch(store.DeleteProject{ID: p.ID})

			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var courses bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			projects := st.Projects
			if courses {
				projects = st.Courses()
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&courses, "courses", false, "Only courses")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := inspectProject(app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// inspectProject renders the inspect card for the project input names.
func inspectProject(app *App, input string) (string, error) {
	st := app.state()
	p, err := resolveProject(st, input)
	if err != nil {
		return "", err
	}

	data := formatter.ProjectInspectData{
		Project: p,
		Classes: st.ClassesForProject(p.ID),
		Now:     app.now(),
	}
	if p.ParentCourseID != "" {
		if parent, ok := st.ProjectByID(p.ParentCourseID); ok {
			data.Parent = &parent
		}
	}
	for _, e := range st.UpcomingDeadlines(data.Now, 0) {
		if e.ProjectID == p.ID {
			data.Deadlines = append(data.Deadlines, e)
		}
	}
	return formatter.FormatProjectInspect(data), nil
}

func newProjectAttachCmd(app *App) *cobra.Command {
	var f attachFlags

	cmd := &cobra.Command{
		Use:   "attach ID",
		Short: "Attach a local or Drive file to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.state(), args[0])
			if err != nil {
				return err
			}
			att, err := f.build(cmd.Context(), app)
			if err != nil {
				return err
			}
			files, added := attach.Add(p.Files, att)
			if added {
				app.Store.Dispatch(store.UpdateProject{ID: p.ID, Patch: store.ProjectPatch{Files: files}})
			}
			reportAttached(cmd, att, added, p.Name)
			return nil
		},
	}

	f.register(cmd)

	return cmd
}
