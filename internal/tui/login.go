package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/api"
)

// loginModel is the unauthenticated screen: a login form that toggles
// into a register form. Submission moves idle -> submitting -> idle; on
// failure the fields are retained and the server detail is shown inline.
type loginModel struct {
	client *api.Client

	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password

	registering bool
	submitting  bool
	errLine     string
}

func newLoginModel(client *api.Client) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{
		client:   client,
		username: username,
		password: password,
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.username.Focus()
				m.password.Blur()
			} else {
				m.password.Focus()
				m.username.Blur()
			}
			return m, nil
		case "ctrl+t":
			m.registering = !m.registering
			m.errLine = ""
			return m, nil
		case "enter":
			user := strings.TrimSpace(m.username.Value())
			pass := m.password.Value()
			if user == "" || pass == "" {
				// Local guard, no network call and no alert.
				return m, nil
			}
			m.submitting = true
			m.errLine = ""
			if m.registering {
				return m, registerCmd(m.client, user, pass)
			}
			return m, loginCmd(m.client, user, pass)
		}

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errLine = authFailureLine(msg.err)
			return m, nil
		}
		// Success is handled by the app model; nothing to do here but
		// forget the password.
		m.password.SetValue("")
		m.errLine = ""
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// authFailureLine prefers the server-provided detail over the raw error.
func authFailureLine(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Authentication failed"
}

func (m loginModel) View() string {
	var b strings.Builder

	if m.registering {
		b.WriteString(titleStyle.Render("Join the Elite"))
	} else {
		b.WriteString(titleStyle.Render("Welcome Back"))
	}
	b.WriteString("\n\n")

	b.WriteString("Username\n" + m.username.View() + "\n\n")
	b.WriteString("Password\n" + m.password.View() + "\n\n")

	if m.errLine != "" {
		b.WriteString(errorStyle.Render(m.errLine) + "\n\n")
	}

	switch {
	case m.submitting:
		b.WriteString(mutedStyle.Render("Submitting..."))
	case m.registering:
		b.WriteString(mutedStyle.Render("enter create account · ctrl+t log in instead · ctrl+c quit"))
	default:
		b.WriteString(mutedStyle.Render("enter continue · ctrl+t create account · ctrl+c quit"))
	}

	return cardStyle.Render(b.String())
}
