package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell with autocomplete and history",
		Long: `Start an interactive shell. Every teachdesk command works inside it,
plus shortcuts such as today, projects, inspect and board.
Destructive commands ask for confirmation before they run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(app)
		},
	}
}

func runShell(app *App) error {
	p := tea.NewProgram(newShellModel(app))
	_, err := p.Run()
	return err
}

// destructiveCommands lists the subcommands the shell confirms before running.
var destructiveCommands = map[string]map[string]bool{
	"event":    {"remove": true},
	"project":  {"remove": true},
	"task":     {"remove": true},
	"subtask":  {"remove": true},
	"column":   {"remove": true},
	"template": {"remove": true},
	"class":    {"remove": true},
}

// terminalCommands need the real terminal, so the shell suspends itself
// while they run.
var terminalCommands = map[string]map[string]bool{
	"drive": {"signin": true},
}

func isCommand(table map[string]map[string]bool, args []string) bool {
	if len(args) < 2 {
		return false
	}
	subs, ok := table[strings.ToLower(args[0])]
	return ok && subs[strings.ToLower(args[1])]
}

func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}

// prepareShellCobraArgs adds --yes to a command the user already confirmed.
func prepareShellCobraArgs(args []string, confirmed bool) []string {
	if !confirmed || hasAnyArg(args, "--yes", "-y", "--help", "-h") {
		return args
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args...)
	return append(out, "--yes")
}

func hasAnyArg(args []string, wanted ...string) bool {
	for _, arg := range args {
		for _, w := range wanted {
			if arg == w {
				return true
			}
		}
	}
	return false
}

func shellError(err error) string {
	return formatter.FormatError(err)
}
