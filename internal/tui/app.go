// Package tui is the terminal presentation layer of the PR tracker.
//
// One root model gates everything on the session: unauthenticated users
// see only the login/register screen, and a 401 from any in-flight call
// drops the whole UI back there. After login the record list is the
// single source of truth; every mutation runs as a mutate-then-reload
// pair with its triggering control disabled until the pair completes.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meltforce/prtrack/internal/api"
	"github.com/meltforce/prtrack/internal/records"
	"github.com/meltforce/prtrack/internal/session"
)

// section is a navigation target in the authenticated layout.
type section int

const (
	sectionDashboard section = iota
	sectionNewPR
	sectionHistory
	sectionMilestones
	sectionWorkout
)

var sectionLabels = map[section]string{
	sectionDashboard:  "Dashboard",
	sectionNewPR:      "Add New PR",
	sectionHistory:    "History",
	sectionMilestones: "Milestones",
	sectionWorkout:    "Your AI Coach",
}

// Model is the root bubbletea model.
type Model struct {
	client  *api.Client
	session *session.Store
	list    *records.List
	log     *slog.Logger

	authenticated bool
	section       section

	login      loginModel
	form       prFormModel
	history    historyModel
	milestones milestonesModel
	workout    workoutModel

	confirm *confirmModel
	alert   string

	width  int
	height int
}

// New builds the root model. The session must already be loaded; when a
// credential is present the UI starts in the authenticated layout.
func New(client *api.Client, sess *session.Store, list *records.List, log *slog.Logger) Model {
	return Model{
		client:        client,
		session:       sess,
		list:          list,
		log:           log,
		authenticated: sess.Authenticated(),
		login:         newLoginModel(client),
		form:          newPRFormModel(list),
		history:       newHistoryModel(list),
		milestones:    newMilestonesModel(),
		workout:       newWorkoutModel(client),
	}
}

// Init starts the first collection load. The milestone fetch follows
// automatically: completion of the load advances the collection
// generation past the milestone view's, even for an empty collection.
func (m Model) Init() tea.Cmd {
	if !m.authenticated {
		return nil
	}
	return refreshCmd(m.list)
}

// logout clears the credential and resets every dependent collection.
func (m *Model) logout() {
	if err := m.session.Clear(); err != nil {
		m.log.Error("clearing session", "error", err)
	}
	m.list.Reset()
	m.authenticated = false
	m.section = sectionDashboard
	m.login = newLoginModel(m.client)
	m.form = newPRFormModel(m.list)
	m.history = newHistoryModel(m.list)
	m.milestones = newMilestonesModel()
	m.workout = newWorkoutModel(m.client)
	m.confirm = nil
}

// remoteFailure routes an error from any remote call: a 401 logs the
// user out globally, anything else becomes a blocking alert naming the
// operation and the best available detail. Local state is unchanged.
func (m *Model) remoteFailure(op string, err error) {
	m.log.Error("remote call failed", "op", op, "error", err)

	if api.IsUnauthorized(err) {
		m.logout()
		m.alert = "Session expired. Please log in again."
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		m.alert = fmt.Sprintf("Failed to %s (%d).\n\nDetail: %s", op, apiErr.Status, apiErr.Detail)
		return
	}
	m.alert = fmt.Sprintf("Failed to %s.\n\nDetail: %s", op, err.Error())
}

// maybeRefetchMilestones issues a milestone fetch when the record
// collection has changed since the last one.
func (m *Model) maybeRefetchMilestones() tea.Cmd {
	gen := m.list.Generation()
	if gen == m.milestones.lastGen {
		return nil
	}
	m.milestones.lastGen = gen
	m.milestones.loading = true
	return milestonesCmd(m.client)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// A blocking alert swallows the next keypress to dismiss.
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
	}

	if !m.authenticated {
		return m.updateAuth(msg)
	}
	return m.updateMain(msg)
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(authResultMsg); ok && msg.err == nil {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		if err := m.session.Set(msg.token); err != nil {
			m.log.Error("persisting session", "error", err)
			m.alert = "Failed to store the session token.\n\nDetail: " + err.Error()
			return m, cmd
		}
		m.authenticated = true
		m.section = sectionDashboard
		return m, tea.Batch(cmd, refreshCmd(m.list))
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The delete dialog is modal.
	if m.confirm != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			confirm, decision := m.confirm.Update(msg)
			switch decision {
			case confirmAccepted:
				m.confirm = &confirm
				return m, deleteRecordCmd(m.list, confirm.record.ID)
			case confirmCancelled:
				m.confirm = nil
				return m, nil
			default:
				m.confirm = &confirm
				return m, nil
			}
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "f1":
			m.section = sectionDashboard
			return m, nil
		case "f2":
			m.section = sectionNewPR
			return m, nil
		case "f3":
			m.section = sectionHistory
			return m, nil
		case "f4":
			m.section = sectionMilestones
			return m, nil
		case "f5":
			m.section = sectionWorkout
			return m, nil
		case "ctrl+x":
			m.logout()
			return m, nil
		}

	case editRequestMsg:
		m.form.startEdit(msg.record)
		m.section = sectionNewPR
		return m, nil

	case deleteRequestMsg:
		m.confirm = &confirmModel{record: msg.record}
		return m, nil

	case recordsRefreshedMsg:
		if msg.err != nil {
			m.remoteFailure("fetch records", msg.err)
			return m, nil
		}
		return m, m.maybeRefetchMilestones()

	case recordSavedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		if msg.err != nil {
			m.remoteFailure(msg.op+" record", msg.err)
			return m, cmd
		}
		return m, tea.Batch(cmd, m.maybeRefetchMilestones())

	case recordDeletedMsg:
		m.confirm = nil
		if msg.err != nil {
			m.remoteFailure("delete record", msg.err)
			return m, nil
		}
		return m, m.maybeRefetchMilestones()

	case milestonesMsg:
		var cmd tea.Cmd
		m.milestones, cmd = m.milestones.Update(msg)
		if msg.err != nil {
			m.remoteFailure("fetch milestones", msg.err)
		}
		return m, cmd

	case routineMsg:
		var cmd tea.Cmd
		m.workout, cmd = m.workout.Update(msg)
		if msg.err != nil {
			m.remoteFailure("generate routine", msg.err)
		}
		return m, cmd
	}

	// Everything else goes to the focused section.
	var cmd tea.Cmd
	switch m.section {
	case sectionNewPR:
		m.form, cmd = m.form.Update(msg)
	case sectionHistory:
		m.history, cmd = m.history.Update(msg)
	case sectionMilestones:
		m.milestones, cmd = m.milestones.Update(msg)
	case sectionWorkout:
		m.workout, cmd = m.workout.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.alert != "" {
		return lipgloss.Place(max(m.width, 40), max(m.height, 10),
			lipgloss.Center, lipgloss.Center,
			alertStyle.Render(m.alert+"\n\n"+mutedStyle.Render("press any key")))
	}

	if !m.authenticated {
		return lipgloss.Place(max(m.width, 40), max(m.height, 10),
			lipgloss.Center, lipgloss.Center, m.login.View())
	}

	if m.confirm != nil {
		return lipgloss.Place(max(m.width, 40), max(m.height, 10),
			lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var content string
	switch m.section {
	case sectionDashboard:
		content = m.dashboardView()
	case sectionNewPR:
		content = m.form.View()
	case sectionHistory:
		content = m.history.View()
	case sectionMilestones:
		content = m.milestones.View()
	case sectionWorkout:
		content = m.workout.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), " ", content)
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GYM PR TRACKER") + "\n")
	if user := m.session.Username(); user != "" {
		b.WriteString(mutedStyle.Render("Welcome, "+user) + "\n")
	}
	b.WriteString("\n")

	for i := sectionDashboard; i <= sectionWorkout; i++ {
		label := fmt.Sprintf("F%d %s", int(i)+1, sectionLabels[i])
		if i == m.section {
			b.WriteString(selectedStyle.Render(label) + "\n")
		} else {
			b.WriteString(label + "\n")
		}
	}

	b.WriteString("\n" + mutedStyle.Render("ctrl+x Sign Out"))
	b.WriteString("\n" + mutedStyle.Render("ctrl+c Quit"))
	return sidebarStyle.Render(b.String())
}

// dashboardView is the landing section: the five most recent records
// and a one-line summary.
func (m Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Dashboard") + "\n\n")

	total := m.list.Len()
	if total == 0 {
		b.WriteString(mutedStyle.Render("No records yet. Go lift something heavy!"))
		return cardStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%d records logged\n\n", total))
	v := records.BuildView(m.list.Records(), records.ViewParams{})
	for _, r := range v.Entries {
		b.WriteString(fmt.Sprintf("  %-28s %7.1f kg × %-3d  %s\n",
			r.Exercise, r.Weight, r.Reps, r.PerformedAt.Format("02/01/2006")))
	}
	if v.Hidden > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("\n...and %d more in History (F3)", v.Hidden)))
	}
	return cardStyle.Render(b.String())
}
