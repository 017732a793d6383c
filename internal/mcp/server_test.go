package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/prtrack/internal/models"
)

// fakeSource is an in-memory Source for handler tests.
type fakeSource struct {
	records    []models.PersonalRecord
	milestones []models.Milestone
	created    []models.RecordDraft
}

func (f *fakeSource) ListRecords(_ context.Context) ([]models.PersonalRecord, error) {
	return append([]models.PersonalRecord(nil), f.records...), nil
}

func (f *fakeSource) GetRecord(_ context.Context, id int) (*models.PersonalRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, &notFoundErr{}
}

func (f *fakeSource) CreateRecord(_ context.Context, draft models.RecordDraft) error {
	f.created = append(f.created, draft)
	return nil
}

func (f *fakeSource) ListMilestones(_ context.Context) ([]models.Milestone, error) {
	return append([]models.Milestone(nil), f.milestones...), nil
}

func (f *fakeSource) GenerateRoutine(_ context.Context, req models.RoutineRequest) (*models.WorkoutPlan, error) {
	return &models.WorkoutPlan{RoutineName: "Test Plan " + string(req.FitnessLevel)}, nil
}

type notFoundErr struct{}

func (*notFoundErr) Error() string { return "not found" }

func testHandlers(src Source) *handlers {
	return &handlers{src: src, log: slog.New(slog.DiscardHandler)}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func datedRecord(id int, exercise string, day int) models.PersonalRecord {
	return models.PersonalRecord{
		ID: id, Exercise: exercise, Weight: 100, Reps: 5,
		PerformedAt: time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestListRecordsFilter(t *testing.T) {
	src := &fakeSource{records: []models.PersonalRecord{
		datedRecord(1, "Bench Press", 1),
		datedRecord(2, "Squat", 2),
		datedRecord(3, "Incline Bench", 3),
	}}
	h := testHandlers(src)

	res, err := h.listRecords(context.Background(), callReq(map[string]any{"exercise": "bench"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var got []models.PersonalRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for _, r := range got {
		if !strings.Contains(strings.ToLower(r.Exercise), "bench") {
			t.Errorf("record %q does not match filter", r.Exercise)
		}
	}
	// Matches come back newest first.
	if got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("order = [%d, %d], want [3, 1]", got[0].ID, got[1].ID)
	}
}

// TestListRecordsLimitReturnsNewest verifies the limit cuts from the
// newest end: the source serves creation order, the tool sorts before
// limiting.
func TestListRecordsLimitReturnsNewest(t *testing.T) {
	src := &fakeSource{records: []models.PersonalRecord{
		datedRecord(1, "Bench Press", 1),
		datedRecord(2, "Squat", 2),
		datedRecord(3, "Deadlift", 3),
	}}
	h := testHandlers(src)

	res, err := h.listRecords(context.Background(), callReq(map[string]any{"limit": 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []models.PersonalRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].ID != 3 {
		t.Errorf("got ID %d (%s), want 3 (the newest)", got[0].ID, got[0].Exercise)
	}
}

func TestLogRecord(t *testing.T) {
	src := &fakeSource{}
	h := testHandlers(src)

	res, err := h.logRecord(context.Background(), callReq(map[string]any{
		"exercise": "Overhead Press",
		"weight":   60.5,
		"reps":     5,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	if len(src.created) != 1 {
		t.Fatalf("created %d records, want 1", len(src.created))
	}
	d := src.created[0]
	if d.Exercise != "Overhead Press" || d.Weight != 60.5 || d.Reps != 5 {
		t.Errorf("unexpected draft: %+v", d)
	}
}

func TestLogRecordRejectsMissingExercise(t *testing.T) {
	src := &fakeSource{}
	h := testHandlers(src)

	res, err := h.logRecord(context.Background(), callReq(map[string]any{
		"weight": 100.0,
		"reps":   5,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for missing exercise")
	}
	if len(src.created) != 0 {
		t.Error("record created despite validation failure")
	}
}

func TestLogRecordRejectsNegativeWeight(t *testing.T) {
	h := testHandlers(&fakeSource{})

	res, err := h.logRecord(context.Background(), callReq(map[string]any{
		"exercise": "Bench Press",
		"weight":   -10.0,
		"reps":     5,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for negative weight")
	}
}

func TestGetMilestonesUnlockedOnly(t *testing.T) {
	now := time.Now()
	src := &fakeSource{milestones: []models.Milestone{
		{Name: "novice", IsUnlocked: true, UnlockedAt: &now},
		{Name: "century", IsUnlocked: false},
	}}
	h := testHandlers(src)

	res, err := h.getMilestones(context.Background(), callReq(map[string]any{"unlocked_only": true}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []models.Milestone
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(got) != 1 || got[0].Name != "novice" {
		t.Fatalf("got %+v, want only novice", got)
	}
}

func TestGenerateRoutineDefaults(t *testing.T) {
	h := testHandlers(&fakeSource{})

	res, err := h.generateRoutine(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var plan models.WorkoutPlan
	if err := json.Unmarshal([]byte(resultText(t, res)), &plan); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if plan.RoutineName != "Test Plan intermediate" {
		t.Errorf("routine = %q, want intermediate default", plan.RoutineName)
	}
}

func TestGenerateRoutineRejectsBadDays(t *testing.T) {
	h := testHandlers(&fakeSource{})

	res, err := h.generateRoutine(context.Background(), callReq(map[string]any{"days_per_week": 9}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for days_per_week out of range")
	}
}

