package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/api"
	"github.com/meltforce/prtrack/internal/models"
)

// workoutModel is the AI coach screen: a three-field parameter form and
// the generated plan. Single request per submit; resubmission is
// disabled while a request is in flight; a new plan replaces the old.
type workoutModel struct {
	client *api.Client

	levelIdx int
	days     int
	focusIdx int
	field    int // 0 level, 1 days, 2 focus

	generating bool
	plan       *models.WorkoutPlan

	spin spinner.Model
}

func newWorkoutModel(client *api.Client) workoutModel {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	return workoutModel{
		client:   client,
		levelIdx: 1, // intermediate, the form's default
		days:     3,
		spin:     spin,
	}
}

func (m workoutModel) request() models.RoutineRequest {
	return models.RoutineRequest{
		FitnessLevel: models.FitnessLevels[m.levelIdx],
		DaysPerWeek:  m.days,
		FocusAreas:   models.FocusAreas[m.focusIdx],
	}
}

func (m workoutModel) Update(msg tea.Msg) (workoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.generating {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.field = (m.field + 1) % 3
		case "shift+tab", "up":
			m.field = (m.field + 2) % 3
		case "left", "h":
			m.cycle(-1)
		case "right", "l":
			m.cycle(1)
		case "s":
			m.plan = nil
		case "enter":
			m.generating = true
			return m, tea.Batch(m.spin.Tick, routineCmd(m.client, m.request()))
		}
		return m, nil

	case routineMsg:
		m.generating = false
		if msg.err != nil {
			// The app surfaces the alert; the form is retained as-is.
			return m, nil
		}
		m.plan = msg.plan
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *workoutModel) cycle(dir int) {
	switch m.field {
	case 0:
		n := len(models.FitnessLevels)
		m.levelIdx = (m.levelIdx + dir + n) % n
	case 1:
		m.days += dir
		if m.days < 1 {
			m.days = 1
		}
		if m.days > 7 {
			m.days = 7
		}
	case 2:
		n := len(models.FocusAreas)
		m.focusIdx = (m.focusIdx + dir + n) % n
	}
}

func (m workoutModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Your AI Coach") + "\n")
	b.WriteString(mutedStyle.Render("Design your perfect program!") + "\n\n")

	b.WriteString(m.fieldLine(0, "Fitness Level", models.FitnessLevels[m.levelIdx].Label()))
	b.WriteString(m.fieldLine(1, "Days Per Week", fmt.Sprintf("%d", m.days)))
	b.WriteString(m.fieldLine(2, "Focus Area", models.FocusAreas[m.focusIdx].Label()))
	b.WriteString("\n")

	if m.generating {
		b.WriteString(m.spin.View() + " Designing Plan...")
	} else {
		b.WriteString(mutedStyle.Render("enter generate routine · ←/→ change · s start over"))
	}

	if m.plan != nil {
		b.WriteString("\n\n" + renderPlan(m.plan))
	}
	return cardStyle.Render(b.String())
}

func (m workoutModel) fieldLine(i int, label, value string) string {
	line := fmt.Sprintf("%-15s ‹ %s ›", label, value)
	if i == m.field {
		return selectedStyle.Render("› "+line) + "\n"
	}
	return "  " + line + "\n"
}

func renderPlan(plan *models.WorkoutPlan) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(plan.RoutineName) + "\n")
	for _, day := range plan.Schedule {
		b.WriteString(fmt.Sprintf("\n%s — %s\n", headerStyle.Render(day.Day), day.Focus))
		for _, ex := range day.Exercises {
			b.WriteString(fmt.Sprintf("  %-28s %s × %s", ex.Name, ex.Sets, ex.Reps))
			if ex.Notes != "" {
				b.WriteString(mutedStyle.Render("  " + ex.Notes))
			}
			b.WriteString("\n")
		}
	}
	if plan.CoachTip != "" {
		b.WriteString("\n" + mutedStyle.Render("Coach tip: "+plan.CoachTip) + "\n")
	}
	return b.String()
}
