package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/api"
	"github.com/meltforce/prtrack/internal/models"
	"github.com/meltforce/prtrack/internal/records"
)

// requestTimeout bounds every command-issued API call. The UI has no
// cancel affordance; a call either completes or times out.
const requestTimeout = 60 * time.Second

// authResultMsg is the outcome of a login or register attempt.
type authResultMsg struct {
	token string
	err   error
}

// recordsRefreshedMsg signals a completed refresh (possibly failed).
type recordsRefreshedMsg struct {
	err error
}

// recordSavedMsg is the outcome of a create or update, refresh included.
type recordSavedMsg struct {
	op  string // "save" or "update"
	err error
}

// recordDeletedMsg is the outcome of a confirmed delete.
type recordDeletedMsg struct {
	id  int
	err error
}

// milestonesMsg carries a fetched milestone collection.
type milestonesMsg struct {
	items []models.Milestone
	err   error
}

// routineMsg carries a generated workout plan.
type routineMsg struct {
	plan *models.WorkoutPlan
	err  error
}

func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		token, err := client.Login(ctx, username, password)
		return authResultMsg{token: token, err: err}
	}
}

func registerCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		token, err := client.Register(ctx, username, password)
		return authResultMsg{token: token, err: err}
	}
}

func refreshCmd(list *records.List) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return recordsRefreshedMsg{err: list.Refresh(ctx)}
	}
}

func addRecordCmd(list *records.List, draft models.RecordDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return recordSavedMsg{op: "save", err: list.Add(ctx, draft)}
	}
}

func editRecordCmd(list *records.List, id int, update models.RecordUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return recordSavedMsg{op: "update", err: list.Edit(ctx, id, update)}
	}
}

func deleteRecordCmd(list *records.List, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return recordDeletedMsg{id: id, err: list.Remove(ctx, id)}
	}
}

func milestonesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := client.ListMilestones(ctx)
		return milestonesMsg{items: items, err: err}
	}
}

func routineCmd(client *api.Client, req models.RoutineRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		plan, err := client.GenerateRoutine(ctx, req)
		return routineMsg{plan: plan, err: err}
	}
}
