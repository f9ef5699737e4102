package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/spf13/cobra"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage the columns of a project board",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnRenameCmd(app),
		newColumnRemoveCmd(app),
		newColumnMoveCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "add PROJECT TITLE",
		Short: "Add a column at the end of the board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.state(), args[0])
			if err != nil {
				return err
			}
			title := strings.TrimSpace(args[1])
			if title == "" {
				return fmt.Errorf("column title is required")
			}
			col := domain.KanbanColumn{ID: domain.CoalesceStr(id, app.newID()), Title: title}
			if p.HasColumn(col.ID) {
				return fmt.Errorf("%s already has a column with ID %q", p.Name, col.ID)
			}

			app.Store.Dispatch(store.AddColumn{ProjectID: p.ID, Column: col})
			fmt.Fprintf(cmd.OutOrStdout(), "Added column %s to %s [%s]\n", title, p.Name, domain.DisplayID(col.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Column ID (default generated)")

	return cmd
}

func newColumnRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROJECT COLUMN TITLE",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.state(), args[0])
			if err != nil {
				return err
			}
			col, err := resolveColumn(p, args[1])
			if err != nil {
				return err
			}
			if domain.IsDefaultColumn(col.ID) {
				return fmt.Errorf("the %s column is built in and cannot be renamed", col.Title)
			}
			old := col.Title
			if col.Title = strings.TrimSpace(args[2]); col.Title == "" {
				return fmt.Errorf("column title is required")
			}

			app.Store.Dispatch(store.UpdateColumn{ProjectID: p.ID, Column: col})
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", old, col.Title)
			return nil
		},
	}
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	var reassign string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT COLUMN",
		Short: "Remove a column; its tasks go with it unless --reassign is given",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.state(), args[0])
			if err != nil {
				return err
			}
			col, err := resolveColumn(p, args[1])
			if err != nil {
				return err
			}
			if domain.IsDefaultColumn(col.ID) {
				return fmt.Errorf("the %s column is built in and cannot be removed", col.Title)
			}

			target := domain.KanbanColumn{}
			if reassign != "" {
				if target, err = resolveColumn(p, reassign); err != nil {
					return err
				}
				if target.ID == col.ID {
					return fmt.Errorf("cannot reassign tasks to the column being removed")
				}
			}

			n := 0
			for _, t := range p.Tasks {
				if t.ColumnID == col.ID {
					n++
				}
			}
			msg := fmt.Sprintf("%q will be removed from %s.", col.Title, p.Name)
			switch {
			case n > 0 && target.ID == "":
				msg += fmt.Sprintf(" Its %d tasks will be deleted.", n)
			case n > 0:
				msg += fmt.Sprintf(" Its %d tasks move to %s.", n, target.Title)
			}
			ok, err := app.confirm(yes, store.ConfirmationPrompt{Title: "Delete column?", Message: msg})
			if err != nil || !ok {
				return cancelled(cmd, err)
			}

			app.Store.Dispatch(store.DeleteColumn{ProjectID: p.ID, ColumnID: col.ID, ReassignTo: target.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed column %s\n", col.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&reassign, "reassign", "", "Column to move the tasks to")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newColumnMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move PROJECT COLUMN POSITION",
		Short: "Move a column to a 1-based position on the board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.state(), args[0])
			if err != nil {
				return err
			}
			col, err := resolveColumn(p, args[1])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[2])
			if err != nil || pos < 1 || pos > len(p.Columns) {
				return fmt.Errorf("position must be between 1 and %d", len(p.Columns))
			}

			from := 0
			for i, c := range p.Columns {
				if c.ID == col.ID {
					from = i
				}
			}
			if from != pos-1 {
				app.Store.Dispatch(store.ReorderColumns{ProjectID: p.ID, From: from, To: pos - 1})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", col.Title, pos)
			return nil
		},
	}
}
