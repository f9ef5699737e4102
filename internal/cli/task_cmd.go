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

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks on project boards",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
		newTaskListCmd(app),
		newTaskAttachCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, project, column, priority, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task (to General Tasks unless --project is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProjectOrGeneral(app.state(), project)
			if err != nil {
				return err
			}

			t := domain.Task{
				ID:          app.newID(),
				Title:       strings.TrimSpace(title),
				Description: description,
				ProjectID:   p.ID,
			}
			if t.Title == "" {
				return fmt.Errorf("task title is required")
			}
			if column != "" {
				c, err := resolveColumn(p, column)
				if err != nil {
					return err
				}
				t = t.MoveTo(c.ID)
			}
			if t.Priority, err = parsePriority(priority); err != nil {
				return err
			}
			if t.DueDate, err = app.parseOptionalDate(due); err != nil {
				return err
			}

			app.Store.Dispatch(store.AddTask{Task: t})
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s to %s [%s]\n", t.Title, p.Name, domain.DisplayID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&project, "project", "", "Project (default General Tasks)")
	cmd.Flags().StringVar(&column, "column", "", "Column (default To Do)")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "Due date; adds a deadline to the calendar")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, project, priority, due string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			if changed("title") {
				t.Title = strings.TrimSpace(title)
				if t.Title == "" {
					return fmt.Errorf("task title cannot be empty")
				}
			}
			if changed("description") {
				t.Description = description
			}
			if changed("priority") {
				if t.Priority, err = parsePriority(priority); err != nil {
					return err
				}
			}
			if changed("due") {
				if t.DueDate, err = app.parseOptionalDate(due); err != nil {
					return err
				}
			}
			if clearDue {
				t.DueDate = nil
			}

			app.Store.Dispatch(store.UpdateTask{Task: t})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")
	cmd.Flags().StringVar(&priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "Due date")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date and its deadline")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")

	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "move ID COLUMN",
		Short: "Move a task to another column; the done column completes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}
			c, err := resolveColumn(p, args[1])
			if err != nil {
				return err
			}

			app.Store.Dispatch(store.UpdateTaskStatus{ProjectID: p.ID, TaskID: t.ID, ColumnID: c.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", t.Title, c.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var project string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{
				Title:   "Delete task?",
				Message: fmt.Sprintf("%q will be removed from %s.", t.Title, p.Name),
			})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}

			app.Store.Dispatch(store.DeleteTask{ProjectID: p.ID, TaskID: t.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project, column string
	var overdue bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			projects := st.Projects
			if project != "" {
				p, err := resolveProject(st, project)
				if err != nil {
					return err
				}
				projects = []domain.Project{p}
			}
			now := app.now()

			var rows [][]string
			for _, p := range projects {
				colTitles := make(map[string]string, len(p.Columns))
				for _, c := range p.Columns {
					colTitles[c.ID] = c.Title
				}
				for _, t := range p.Tasks {
					if column != "" && !strings.EqualFold(t.ColumnID, column) && !strings.EqualFold(colTitles[t.ColumnID], column) {
						continue
					}
					if overdue && !t.IsOverdue(now) {
						continue
					}
					due := formatter.Dim("--")
					if t.DueDate != nil {
						due = formatter.RelativeDateStyled(*t.DueDate, now)
					}
					rows = append(rows, []string{
						formatter.TruncID(t.ID),
						t.Title,
						p.Name,
						colTitles[t.ColumnID],
						formatter.PriorityIndicator(t.Priority),
						due,
						formatter.SubtaskBadge(t),
					})
				}
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "TITLE", "PROJECT", "COLUMN", "PRIORITY", "DUE", "SUBTASKS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only this project")
	cmd.Flags().StringVar(&column, "column", "", "Only this column")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only open tasks past their due date")

	return cmd
}

func newTaskAttachCmd(app *App) *cobra.Command {
	var f attachFlags
	var project string

	cmd := &cobra.Command{
		Use:   "attach ID",
		Short: "Attach a local or Drive file to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}
			att, err := f.build(cmd.Context(), app)
			if err != nil {
				return err
			}
			files, added := attach.Add(t.Files, att)
			if added {
				t.Files = files
				app.Store.Dispatch(store.UpdateTask{Task: t})
			}
			reportAttached(cmd, att, added, t.Title)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")

	return cmd
}

// ── subtasks ─────────────────────────────────────────────────────────────────

func newSubtaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage a task's checklist",
	}

	cmd.AddCommand(
		newSubtaskAddCmd(app),
		newSubtaskDoneCmd(app),
		newSubtaskRemoveCmd(app),
	)

	return cmd
}

func newSubtaskAddCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add TASK TITLE",
		Short: "Add a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}
			title := strings.TrimSpace(args[1])
			if title == "" {
				return fmt.Errorf("subtask title is required")
			}

			st := domain.Subtask{ID: app.newID(), Title: title}
			app.Store.Dispatch(store.AddSubtask{ProjectID: p.ID, TaskID: t.ID, Subtask: st})
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s [%s]\n", title, t.Title, domain.DisplayID(st.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")

	return cmd
}

func newSubtaskDoneCmd(app *App) *cobra.Command {
	var project string
	var undo bool

	cmd := &cobra.Command{
		Use:   "done TASK SUBTASK",
		Short: "Check off a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubtask(t, args[1])
			if err != nil {
				return err
			}

			st.Completed = !undo
			app.Store.Dispatch(store.UpdateSubtask{ProjectID: p.ID, TaskID: t.ID, Subtask: st})

			t, _ = app.state().FindTask(t.ID)
			done, total := t.SubtaskProgress()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d done\n", t.Title, done, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the item as not done")

	return cmd
}

func newSubtaskRemoveCmd(app *App) *cobra.Command {
	var project string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove TASK SUBTASK",
		Short: "Remove a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, t, err := resolveTask(app.state(), project, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubtask(t, args[1])
			if err != nil {
				return err
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{
				Title:   "Delete subtask?",
				Message: fmt.Sprintf("%q will be removed from %s.", st.Title, t.Title),
			})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}

			app.Store.Dispatch(store.DeleteSubtask{ProjectID: p.ID, TaskID: t.ID, SubtaskID: st.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed subtask %s\n", st.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to look the task up in")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
