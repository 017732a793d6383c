package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/models"
	"github.com/meltforce/prtrack/internal/records"
)

// editRequestMsg asks the app to open the edit form for a record.
type editRequestMsg struct {
	record models.PersonalRecord
}

// deleteRequestMsg asks the app to start the delete confirmation for a
// record. No network access happens until the dialog confirms.
type deleteRequestMsg struct {
	record models.PersonalRecord
}

// historyModel renders the PR collection: newest first, filtered by the
// search box, truncated to five entries until expanded.
type historyModel struct {
	list *records.List

	search    textinput.Model
	searching bool
	showAll   bool
	cursor    int
}

func newHistoryModel(list *records.List) historyModel {
	search := textinput.New()
	search.Placeholder = "Filter by exercise..."
	search.CharLimit = 80
	return historyModel{list: list, search: search}
}

func (m historyModel) view() records.View {
	return records.BuildView(m.list.Records(), records.ViewParams{
		Query:   m.search.Value(),
		ShowAll: m.showAll,
	})
}

// clampCursor keeps the cursor on a real row. The list is shared, so a
// delete or refresh elsewhere can shrink the view between updates.
func (m historyModel) clampCursor(v records.View) historyModel {
	if m.cursor > len(v.Entries)-1 {
		m.cursor = len(v.Entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	m = m.clampCursor(m.view())

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			m.cursor = 0
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.cursor = 0
			return m, cmd
		}
		return m, nil
	}

	v := m.view()
	switch key.String() {
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(v.Entries)-1 {
			m.cursor++
		}
	case "m":
		m.showAll = !m.showAll
		if !m.showAll && m.cursor >= records.DefaultVisible {
			m.cursor = records.DefaultVisible - 1
		}
	case "e":
		if m.cursor < len(v.Entries) {
			rec := v.Entries[m.cursor]
			return m, func() tea.Msg { return editRequestMsg{record: rec} }
		}
	case "d":
		if m.cursor < len(v.Entries) {
			rec := v.Entries[m.cursor]
			return m, func() tea.Msg { return deleteRequestMsg{record: rec} }
		}
	}
	return m, nil
}

func (m historyModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("History") + "\n\n")

	if m.list.Len() == 0 {
		b.WriteString(mutedStyle.Render("No records yet. Go lift something heavy!"))
		return cardStyle.Render(b.String())
	}

	b.WriteString("Search: " + m.search.View() + "\n\n")

	v := m.view()
	if len(v.Entries) == 0 {
		b.WriteString(mutedStyle.Render("No matching records found."))
		return cardStyle.Render(b.String())
	}
	m = m.clampCursor(v)

	for i, r := range v.Entries {
		line := fmt.Sprintf("%-28s %7.1f kg × %-3d  %s",
			r.Exercise, r.Weight, r.Reps, r.PerformedAt.Format("02/01/2006"))
		if i == m.cursor && !m.searching {
			b.WriteString(selectedStyle.Render("› "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if v.Hidden > 0 {
		b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("m See More (%d More)", v.Hidden)))
	} else if m.showAll && v.FilteredCount > records.DefaultVisible {
		b.WriteString("\n" + mutedStyle.Render("m Show Less"))
	}

	b.WriteString("\n" + mutedStyle.Render("/ search · e edit · d delete"))
	return cardStyle.Render(b.String())
}
