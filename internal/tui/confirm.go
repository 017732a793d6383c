package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/models"
)

// confirmDecision is the outcome of one Update of the delete dialog.
type confirmDecision int

const (
	confirmPending confirmDecision = iota
	confirmAccepted
	confirmCancelled
)

// confirmModel is the two-step delete dialog. While it is open the
// record is only "pending confirmation"; the destructive call fires on
// explicit confirm and cancellation performs no network access.
type confirmModel struct {
	record   models.PersonalRecord
	deleting bool
}

func (m confirmModel) Update(msg tea.Msg) (confirmModel, confirmDecision) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.deleting {
		return m, confirmPending
	}
	switch key.String() {
	case "y", "enter":
		m.deleting = true
		return m, confirmAccepted
	case "n", "esc":
		return m, confirmCancelled
	}
	return m, confirmPending
}

func (m confirmModel) View() string {
	body := fmt.Sprintf("Delete Record?\n\n%s — %.1f kg × %d\n\n",
		m.record.Exercise, m.record.Weight, m.record.Reps)
	if m.deleting {
		body += mutedStyle.Render("Deleting...")
	} else {
		body += mutedStyle.Render("y delete · n cancel")
	}
	return dialogStyle.Render(body)
}
