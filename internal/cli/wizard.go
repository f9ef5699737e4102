package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/cli/formatter"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// teachdeskHuhTheme returns a huh theme that matches the formatter palette.
func teachdeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title, message string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(message).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(teachdeskHuhTheme()).WithShowHelp(false)
}

func askWithForm(title, message string) (bool, error) {
	var ok bool
	if err := wizardConfirm(title, message, &ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// errNeedsYes is returned when a destructive command runs without a
// terminal to ask on.
var errNeedsYes = errors.New("refusing to continue without confirmation; pass --yes")

// confirm gates a destructive command. The question goes through the
// store's confirmation request so every front end sees the same record.
func (a *App) confirm(yes bool, p store.ConfirmationPrompt) (bool, error) {
	if yes || a.AssumeYes {
		return true, nil
	}
	if !a.interactive() {
		return false, errNeedsYes
	}

	answer := a.Store.RequestConfirmation(p)
	req := a.state().UI.Confirmation
	if req == nil {
		return false, fmt.Errorf("confirmation request was not recorded")
	}

	ask := a.Ask
	if ask == nil {
		ask = askWithForm
	}
	ok, err := ask(req.Title, req.Message)
	if err != nil {
		req.OnCancel()
		<-answer
		return false, err
	}
	if ok {
		req.OnConfirm()
	} else {
		req.OnCancel()
	}
	return <-answer, nil
}

// NewAuthorizer returns the Drive sign-in step for a terminal session: it
// shows the consent URL and reads back the code, through a huh input when
// interactive() and as a plain line otherwise.
func NewAuthorizer(interactive func() bool, in io.Reader, out io.Writer) drive.AuthorizeFunc {
	return func(ctx context.Context, authURL string) (string, error) {
		fmt.Fprintf(out, "%s\n%s\n", formatter.StyleHeader.Render("Open this URL to allow access to Google Drive:"), authURL)

		if interactive != nil && interactive() {
			var code string
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Authorization code").
						Value(&code).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return fmt.Errorf("paste the code shown after sign-in")
							}
							return nil
						}),
				),
			).WithTheme(teachdeskHuhTheme()).WithShowHelp(false).RunWithContext(ctx)
			return strings.TrimSpace(code), err
		}

		fmt.Fprint(out, "Authorization code: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("reading authorization code: %w", err)
		}
		return strings.TrimSpace(line), ctx.Err()
	}
}
