package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// shellMode tracks which interaction mode the shell is in.
type shellMode int

const (
	modePrompt  shellMode = iota // Normal command input.
	modeConfirm                  // Awaiting y/n for a destructive command.
)

// pendingConfirmation is a destructive command waiting on the store's
// confirmation request.
type pendingConfirmation struct {
	request store.ConfirmationRequest
	answer  <-chan bool
	args    []string
}

// shellModel is the bubbletea Model for the interactive shell REPL.
type shellModel struct {
	input textinput.Model
	width int

	app *App

	mode           shellMode
	pendingConfirm *pendingConfirmation

	// commands maps each top-level command to its subcommands.
	commands map[string][]string

	history    []string
	historyIdx int

	quitting bool
}

// shellShortcuts are handled by the shell itself rather than cobra.
var shellShortcuts = []string{"today", "projects", "inspect", "board", "help", "clear", "exit", "quit"}

func newShellModel(app *App) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	// Tab accepts a suggestion; Up/Down stay with history.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist := loadHistoryFromPath(app.HistoryPath)

	return shellModel{
		input:      ti,
		app:        app,
		commands:   commandTree(app),
		history:    hist,
		historyIdx: len(hist),
	}
}

// commandTree lists the cobra commands and their subcommands.
func commandTree(app *App) map[string][]string {
	tree := make(map[string][]string)
	for _, c := range NewRootCmd(app).Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		var subs []string
		for _, s := range c.Commands() {
			subs = append(subs, s.Name())
		}
		tree[c.Name()] = subs
	}
	return tree
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatShellWelcome()),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.promptPrefix()) - 1
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.pendingConfirm != nil {
				m.pendingConfirm.request.OnCancel()
				m.pendingConfirm = nil
			}
			m.quitting = true
			return m, tea.Quit
		}

		if m.mode == modeConfirm {
			return m.updateConfirm(msg)
		}
		return m.updatePrompt(msg)

	case terminalDoneMsg:
		if msg.err != nil {
			return m, tea.Println(shellError(msg.err))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	return m.promptPrefix() + m.input.View()
}

// ── prompt prefix ────────────────────────────────────────────────────────────

func (m *shellModel) promptPrefix() string {
	if m.mode == modeConfirm {
		return formatter.StyleYellow.Render("confirm (y/n)") + " " + formatter.Dim("❯") + " "
	}
	return formatter.StylePurple.Render("teachdesk") + " " + formatter.Dim("❯") + " "
}

// ── prompt mode ──────────────────────────────────────────────────────────────

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.SetSuggestions(nil)
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		output, cmd := m.executeCommand(input)
		var cmds []tea.Cmd
		if output != "" {
			cmds = append(cmds, tea.Println(output))
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.updateSuggestions()
		return m, cmd
	}
}

// ── confirm mode ─────────────────────────────────────────────────────────────

func (m shellModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		pending := m.pendingConfirm
		m.pendingConfirm = nil
		m.mode = modePrompt
		if pending == nil {
			return m, nil
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			pending.request.OnConfirm()
		default:
			pending.request.OnCancel()
		}
		if !<-pending.answer {
			return m, tea.Println(formatter.Dim("Cancelled."))
		}
		return m, tea.Println(m.execCobraCapture(pending.args, true))

	case tea.KeyEsc:
		if m.pendingConfirm != nil {
			m.pendingConfirm.request.OnCancel()
		}
		m.pendingConfirm = nil
		m.mode = modePrompt
		m.input.Reset()
		return m, tea.Println(formatter.Dim("Cancelled."))

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// ── history ──────────────────────────────────────────────────────────────────

func (m *shellModel) addHistory(line string) {
	if line == "" {
		return
	}
	m.history = append(m.history, line)
	m.historyIdx = len(m.history)
	appendHistoryToPath(m.app.HistoryPath, line)
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	} else {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (m *shellModel) updateSuggestions() {
	text := m.input.Value()
	if text == "" {
		m.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		m.input.SetSuggestions(filterSuggestions(m.allCommandNames(), parts[0]))
		return
	}

	cmd := strings.ToLower(parts[0])
	if len(parts) <= 2 && (!trailingSpace || len(parts) == 1) {
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}

		switch cmd {
		case "inspect", "board":
			m.input.SetSuggestions(m.projectSuggestions(cmd, prefix))
			return
		}
		if subs, ok := m.commands[cmd]; ok && len(subs) > 0 {
			m.input.SetSuggestions(prefixEach(cmd+" ", filterSuggestions(subs, prefix)))
			return
		}
	}

	m.input.SetSuggestions(nil)
}

// projectSuggestions completes project names after a shortcut.
func (m *shellModel) projectSuggestions(cmd, prefix string) []string {
	var names []string
	for _, p := range m.app.state().Projects {
		names = append(names, p.Name)
	}
	return prefixEach(cmd+" ", filterSuggestions(names, prefix))
}

// allCommandNames returns the shell shortcuts and every cobra command, sorted.
func (m *shellModel) allCommandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range shellShortcuts {
		seen[n] = true
		names = append(names, n)
	}
	for n := range m.commands {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}

// prefixEach turns word completions into whole-line suggestions, which is
// what textinput matches against.
func prefixEach(prefix string, items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = prefix + s
	}
	return out
}

// ── command dispatch ─────────────────────────────────────────────────────────

func (m *shellModel) executeCommand(input string) (string, tea.Cmd) {
	parts, err := splitShellArgs(input)
	if err != nil {
		return shellError(err), nil
	}
	if len(parts) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "today":
		return m.execToday(), nil
	case "projects":
		return m.execCobraCapture([]string{"project", "list"}, false), nil
	case "inspect":
		return m.execInspect(args), nil
	case "board":
		out, err := renderBoard(m.app, strings.Join(args, " "))
		if err != nil {
			return shellError(err), nil
		}
		return out, nil
	case "clear":
		return "\033[H\033[2J", nil
	case "help":
		return formatter.FormatShellHelp(), nil
	case "exit", "quit":
		m.quitting = true
		return "", tea.Quit
	case "shell":
		return formatter.StyleYellow.Render("Already in shell mode."), nil
	}

	if isCommand(terminalCommands, parts) {
		return "", m.execInTerminal(parts)
	}
	return m.execMaybeDestructive(parts), nil
}

func (m *shellModel) execToday() string {
	st := m.app.state()
	now := m.app.now()
	return formatter.FormatAgenda(st.EventsOn(now), projectNames(st), now)
}

func (m *shellModel) execInspect(args []string) string {
	if len(args) == 0 {
		return formatter.StyleYellow.Render("Usage: inspect <project>")
	}
	out, err := inspectProject(m.app, strings.Join(args, " "))
	if err != nil {
		return shellError(err)
	}
	return out
}

// ── cobra pass-through ───────────────────────────────────────────────────────

// shellApp is the App commands see inside the shell: never interactive,
// since the shell owns the terminal and asks for confirmation itself.
func (m *shellModel) shellApp() *App {
	a := *m.app
	a.IsInteractive = func() bool { return false }
	return &a
}

// execCobraCapture runs a command through the cobra tree and captures output.
func (m *shellModel) execCobraCapture(args []string, confirmed bool) string {
	var buf strings.Builder
	root := NewRootCmd(m.shellApp())
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(prepareShellCobraArgs(args, confirmed))
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), "unknown command") {
			buf.WriteString("\n" + formatter.Dim("Type help to see every command."))
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// ── destructive commands ─────────────────────────────────────────────────────

func (m *shellModel) execMaybeDestructive(parts []string) string {
	if !isCommand(destructiveCommands, parts) || hasAnyArg(parts[2:], "--yes", "-y", "--help", "-h") {
		return m.execCobraCapture(parts, false)
	}

	group := strings.ToLower(parts[0])
	prompt := store.ConfirmationPrompt{
		Title:   fmt.Sprintf("Delete %s?", group),
		Message: m.describeRemoval(group, parts[2:]),
	}
	answer := m.app.Store.RequestConfirmation(prompt)
	req := m.app.state().UI.Confirmation
	if req == nil {
		return shellError(fmt.Errorf("confirmation request was not recorded"))
	}

	m.mode = modeConfirm
	m.pendingConfirm = &pendingConfirmation{request: *req, answer: answer, args: parts}
	return formatter.FormatConfirmation(req.Title, req.Message)
}

// describeRemoval names what a remove command will delete. Unresolvable
// targets fall back to the raw arguments; the command reports the error.
func (m *shellModel) describeRemoval(group string, args []string) string {
	var positional []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break
		}
		positional = append(positional, a)
	}
	if len(positional) == 0 {
		return ""
	}

	st := m.app.state()
	target := positional[0]
	name := ""
	switch group {
	case "event":
		if e, err := resolveEvent(st, target); err == nil {
			name = e.Title
		}
	case "project":
		if p, err := resolveProject(st, target); err == nil {
			name = p.Name
		}
	case "task":
		if _, t, err := resolveTask(st, "", target); err == nil {
			name = t.Title
		}
	case "template":
		if t, err := resolveTemplate(st, target); err == nil {
			name = fmt.Sprintf("%s (%s %s)", t.Name, t.DayOfWeek, formatter.ClockRange(t.StartTime, t.EndTime))
		}
	case "class":
		if rc, err := resolveClass(st, target); err == nil {
			name = rc.Title
		}
	}
	if name == "" {
		name = strings.Join(positional, " ")
	}
	return fmt.Sprintf("%s %q will be removed.", group, name)
}

// ── terminal commands ────────────────────────────────────────────────────────

type terminalDoneMsg struct{ err error }

// cobraExec runs a command with the terminal handed back from bubbletea.
type cobraExec struct {
	app    *App
	args   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *cobraExec) SetStdin(r io.Reader)  { c.stdin = r }
func (c *cobraExec) SetStdout(w io.Writer) { c.stdout = w }
func (c *cobraExec) SetStderr(w io.Writer) { c.stderr = w }

func (c *cobraExec) Run() error {
	root := NewRootCmd(c.app)
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetArgs(c.args)
	root.SilenceUsage = true
	root.SilenceErrors = true
	return root.Execute()
}

func (m *shellModel) execInTerminal(args []string) tea.Cmd {
	return tea.Exec(&cobraExec{app: m.app, args: args}, func(err error) tea.Msg {
		return terminalDoneMsg{err: err}
	})
}
