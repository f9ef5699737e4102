package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/ics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// agendaDays is the span "calendar" shows without --to.
const agendaDays = 14

func newCalendarCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the agenda (today and the next two weeks by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			lo, hi, err := app.agendaRange(from, to, now)
			if err != nil {
				return err
			}
			st := app.state()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgenda(st.EventsBetween(lo, hi), projectNames(st), now))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (default today)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (default two weeks out)")

	cmd.AddCommand(newCalendarExportCmd(app))

	return cmd
}

func (a *App) agendaRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	lo := domain.StartOfDay(now)
	if from != "" {
		d, err := a.parseDate(from)
		if err != nil {
			return lo, lo, err
		}
		lo = d
	}
	hi := lo.AddDate(0, 0, agendaDays-1)
	if to != "" {
		d, err := a.parseDate(to)
		if err != nil {
			return lo, hi, err
		}
		hi = d
	}
	if hi.Before(lo) {
		return lo, hi, fmt.Errorf("--to %s is before --from %s", hi.Format(dateLayout), lo.Format(dateLayout))
	}
	return lo, hi, nil
}

func newCalendarExportCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write events to an iCalendar (.ics) file; - writes to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.state()
			events := st.Events
			if from != "" || to != "" {
				lo, hi, err := app.exportRange(from, to)
				if err != nil {
					return err
				}
				events = st.EventsBetween(lo, hi)
			}

			if args[0] == "-" {
				return ics.Export(cmd.OutOrStdout(), events, app.loc())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			if err := ics.Export(f, events, app.loc()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			app.logger().Info("calendar exported", zap.String("path", args[0]), zap.Int("events", len(events)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(events), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day to export")
	cmd.Flags().StringVar(&to, "to", "", "Last day to export")

	return cmd
}

// exportRange is open-ended on whichever side is not given.
func (a *App) exportRange(from, to string) (time.Time, time.Time, error) {
	lo := time.Time{}
	hi := time.Date(9999, time.December, 31, 0, 0, 0, 0, a.loc())
	var err error
	if from != "" {
		if lo, err = a.parseDate(from); err != nil {
			return lo, hi, err
		}
	}
	if to != "" {
		if hi, err = a.parseDate(to); err != nil {
			return lo, hi, err
		}
	}
	if hi.Before(lo) {
		return lo, hi, fmt.Errorf("--to %s is before --from %s", hi.Format(dateLayout), lo.Format(dateLayout))
	}
	return lo, hi, nil
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board [PROJECT]",
		Short: "Show a project's kanban board (General Tasks by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			out, err := renderBoard(app, input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func renderBoard(app *App, input string) (string, error) {
	p, err := resolveProjectOrGeneral(app.state(), input)
	if err != nil {
		return "", err
	}
	return formatter.FormatBoard(p, app.now()), nil
}
