package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/models"
)

// milestonesModel is the read-only achievements screen. It holds nothing
// but a loading flag and the last-fetched collection; the app refetches
// whenever the record collection generation changes.
type milestonesModel struct {
	loading bool
	items   []models.Milestone
	lastGen uint64

	bar progress.Model
}

func newMilestonesModel() milestonesModel {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return milestonesModel{bar: bar}
}

func (m milestonesModel) Update(msg tea.Msg) (milestonesModel, tea.Cmd) {
	if msg, ok := msg.(milestonesMsg); ok {
		m.loading = false
		if msg.err == nil {
			m.items = msg.items
		}
	}
	return m, nil
}

func (m milestonesModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Milestones") + "\n\n")

	if m.loading && len(m.items) == 0 {
		b.WriteString(mutedStyle.Render("Loading..."))
		return cardStyle.Render(b.String())
	}

	for _, ms := range m.items {
		b.WriteString(m.renderMilestone(ms))
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(mutedStyle.Render("No milestones yet."))
	}
	return cardStyle.Render(b.String())
}

func (m milestonesModel) renderMilestone(ms models.Milestone) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %s", ms.Icon(), ms.Title)
	if ms.IsUnlocked {
		b.WriteString(unlockedStyle.Render(title) + "  " + unlockedStyle.Render("UNLOCKED"))
		if ms.UnlockedAt != nil {
			b.WriteString(mutedStyle.Render("  " + ms.UnlockedAt.Format("02/01/2006")))
		}
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(ms.Description) + "\n")
	b.WriteString(fmt.Sprintf("%s %s / %s %s\n",
		m.bar.ViewAs(ms.Fraction()),
		trimFloat(ms.Progress), trimFloat(ms.Target), ms.Unit))
	return b.String()
}

// trimFloat drops a trailing ".0" so progress reads "100 kg", not "100.0 kg".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
