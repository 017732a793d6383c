package mcp

import (
	"context"

	"github.com/meltforce/prtrack/internal/api"
	"github.com/meltforce/prtrack/internal/models"
)

// Source abstracts the record backend for MCP tools. *api.Client (the
// REST client used by the TUI) satisfies it; tests plug in fakes.
type Source interface {
	ListRecords(ctx context.Context) ([]models.PersonalRecord, error)
	GetRecord(ctx context.Context, id int) (*models.PersonalRecord, error)
	CreateRecord(ctx context.Context, draft models.RecordDraft) error
	ListMilestones(ctx context.Context) ([]models.Milestone, error)
	GenerateRoutine(ctx context.Context, req models.RoutineRequest) (*models.WorkoutPlan, error)
}

// Compile-time check: *api.Client satisfies Source.
var _ Source = (*api.Client)(nil)
