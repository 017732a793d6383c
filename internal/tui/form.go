package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/models"
	"github.com/meltforce/prtrack/internal/records"
)

// prFormModel is the create/edit controller for a single PR.
//
// Create: idle -> submitting -> idle, clearing fields on success and
// retaining them on failure. Edit seeds the fields from an existing
// record; esc cancels without network access. Malformed input is a
// local guard: no call is made and no alert is shown.
type prFormModel struct {
	list *records.List

	exercise textinput.Model
	weight   textinput.Model
	reps     textinput.Model
	focus    int

	editing    *models.PersonalRecord
	submitting bool

	suggestionIdx int
}

func newPRFormModel(list *records.List) prFormModel {
	exercise := textinput.New()
	exercise.Placeholder = "Type or select exercise..."
	exercise.CharLimit = 80
	exercise.Focus()

	weight := textinput.New()
	weight.Placeholder = "0"
	weight.CharLimit = 8

	reps := textinput.New()
	reps.Placeholder = "0"
	reps.CharLimit = 4

	return prFormModel{list: list, exercise: exercise, weight: weight, reps: reps}
}

// startEdit seeds the form from an existing record.
func (m *prFormModel) startEdit(pr models.PersonalRecord) {
	rec := pr
	m.editing = &rec
	m.exercise.SetValue(pr.Exercise)
	m.weight.SetValue(strconv.FormatFloat(pr.Weight, 'f', -1, 64))
	m.reps.SetValue(strconv.Itoa(pr.Reps))
	m.setFocus(0)
}

// cancelEdit discards in-progress changes. No network access.
func (m *prFormModel) cancelEdit() {
	m.editing = nil
	m.clear()
}

func (m *prFormModel) clear() {
	m.exercise.SetValue("")
	m.weight.SetValue("")
	m.reps.SetValue("")
	m.suggestionIdx = 0
	m.setFocus(0)
}

func (m *prFormModel) setFocus(i int) {
	m.focus = i
	inputs := []*textinput.Model{&m.exercise, &m.weight, &m.reps}
	for n, in := range inputs {
		if n == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// draft validates the fields. ok is false when the local guard rejects
// the submission; that is not an error condition, the form just stays
// editable.
func (m *prFormModel) draft() (models.RecordDraft, bool) {
	exercise := strings.TrimSpace(m.exercise.Value())
	if exercise == "" {
		return models.RecordDraft{}, false
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(m.weight.Value()), 64)
	if err != nil || weight < 0 {
		return models.RecordDraft{}, false
	}
	reps, err := strconv.Atoi(strings.TrimSpace(m.reps.Value()))
	if err != nil || reps < 0 {
		return models.RecordDraft{}, false
	}
	return models.RecordDraft{Exercise: exercise, Weight: weight, Reps: reps}, true
}

// suggestions returns the canonical exercises matching the typed text.
func (m *prFormModel) suggestions() []string {
	typed := strings.ToLower(strings.TrimSpace(m.exercise.Value()))
	var out []string
	for _, s := range models.SuggestedExercises {
		if typed == "" || strings.Contains(strings.ToLower(s), typed) {
			out = append(out, s)
		}
	}
	return out
}

func (m prFormModel) Update(msg tea.Msg) (prFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % 3)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 2) % 3)
			return m, nil
		case "ctrl+e":
			// Cycle through the matching canonical exercises.
			if m.focus == 0 {
				if sugg := m.suggestions(); len(sugg) > 0 {
					m.exercise.SetValue(sugg[m.suggestionIdx%len(sugg)])
					m.exercise.CursorEnd()
					m.suggestionIdx++
				}
			}
			return m, nil
		case "esc":
			if m.editing != nil {
				m.cancelEdit()
			}
			return m, nil
		case "enter":
			draft, ok := m.draft()
			if !ok {
				return m, nil
			}
			m.submitting = true
			if m.editing != nil {
				return m, editRecordCmd(m.list, m.editing.ID, models.UpdateFromDraft(draft))
			}
			return m, addRecordCmd(m.list, draft)
		}

	case recordSavedMsg:
		m.submitting = false
		if msg.err != nil {
			// Fields are retained; the app surfaces the alert.
			return m, nil
		}
		if m.editing != nil {
			m.editing = nil
		}
		m.clear()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.exercise, cmd = m.exercise.Update(msg)
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes {
			m.suggestionIdx = 0
		}
	case 1:
		m.weight, cmd = m.weight.Update(msg)
	case 2:
		m.reps, cmd = m.reps.Update(msg)
	}
	return m, cmd
}

func (m prFormModel) View() string {
	var b strings.Builder

	if m.editing != nil {
		b.WriteString(headerStyle.Render(fmt.Sprintf("Edit Record #%d", m.editing.ID)))
	} else {
		b.WriteString(headerStyle.Render("DESTROY WEAKNESS! WHAT'S THE NEW PR, BRO?"))
	}
	b.WriteString("\n\n")

	b.WriteString("Exercise\n" + m.exercise.View() + "\n")
	if m.focus == 0 {
		if sugg := m.suggestions(); len(sugg) > 0 {
			b.WriteString(mutedStyle.Render("  "+strings.Join(sugg, " · ")) + "\n")
		}
	}
	b.WriteString("\nWeight (kg)\n" + m.weight.View() + "\n")
	b.WriteString("\nReps\n" + m.reps.View() + "\n\n")

	switch {
	case m.submitting:
		b.WriteString(mutedStyle.Render("Saving..."))
	case m.editing != nil:
		b.WriteString(mutedStyle.Render("enter update record · esc cancel · ctrl+e fill suggestion"))
	default:
		b.WriteString(mutedStyle.Render("enter log record · ctrl+e fill suggestion"))
	}

	return cardStyle.Render(b.String())
}
