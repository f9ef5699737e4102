package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(app *App) *cobra.Command {
	var yes, keepGoing bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a file of teachdesk commands against one session",
		Long: `Run executes one command per line, in order, against the same
session, so later lines see what earlier lines created. Blank lines and
lines starting with # are skipped. "-" reads the script from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				r = f
			}

			scriptApp := *app
			scriptApp.IsInteractive = func() bool { return false }
			scriptApp.AssumeYes = app.AssumeYes || yes
			return runScript(cmd, &scriptApp, r, keepGoing)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm every destructive command")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue after a failing line")

	return cmd
}

// runScript executes each line of r as a command line.
func runScript(cmd *cobra.Command, app *App, r io.Reader, keepGoing bool) error {
	var failed int

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := runScriptLine(cmd, app, line)
		if err == nil {
			continue
		}
		app.logger().Warn("script line failed", zap.Int("line", n), zap.String("command", line), zap.Error(err))
		if !keepGoing {
			return fmt.Errorf("line %d: %w", n, err)
		}
		failed++
		fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", n, err)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d script lines failed", failed)
	}
	return nil
}

func runScriptLine(cmd *cobra.Command, app *App, line string) error {
	args, err := splitShellArgs(line)
	if err != nil {
		return err
	}
	if len(args) > 0 && (args[0] == "run" || args[0] == "shell") {
		return fmt.Errorf("%s cannot be used inside a script", args[0])
	}

	root := NewRootCmd(app)
	root.SetOut(cmd.OutOrStdout())
	root.SetErr(cmd.ErrOrStderr())
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true
	return root.ExecuteContext(cmd.Context())
}
