package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/prtrack/internal/models"
	"github.com/meltforce/prtrack/internal/records"
)

// --- Tool definitions ---

var toolListRecords = mcp.NewTool("list_records",
	mcp.WithDescription("List personal records, newest first. Optionally filter by exercise name (case-insensitive substring match)."),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench press')")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of records to return. Defaults to all.")),
)

var toolGetRecord = mcp.NewTool("get_record",
	mcp.WithDescription("Fetch a single personal record by its ID."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Record ID")),
)

var toolLogRecord = mcp.NewTool("log_record",
	mcp.WithDescription("Log a new personal record: an exercise with the weight lifted and the number of reps. The server timestamps it."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Bench Press')")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Number of reps")),
)

var toolGetMilestones = mcp.NewTool("get_milestones",
	mcp.WithDescription("List achievement milestones with unlock state and progress toward each target."),
	mcp.WithBoolean("unlocked_only", mcp.Description("Return only unlocked milestones. Defaults to false.")),
)

var toolGenerateRoutine = mcp.NewTool("generate_routine",
	mcp.WithDescription("Generate a weekly workout routine tailored to fitness level, training frequency, and focus area."),
	mcp.WithString("fitness_level", mcp.Description("Fitness level. Defaults to 'intermediate'."), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithNumber("days_per_week", mcp.Description("Training days per week, 1-7. Defaults to 3.")),
	mcp.WithString("focus_areas", mcp.Description("Training focus. Defaults to 'full_body'."), mcp.Enum("full_body", "upper_body", "lower_body", "push_pull_legs", "cardio_core", "strength", "hypertrophy")),
)

// --- Tool handlers ---

func (h *handlers) listRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := h.src.ListRecords(ctx)
	if err != nil {
		h.log.Error("mcp list_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	// The server returns creation order; newest-first is a client concern.
	v := records.BuildView(recs, records.ViewParams{
		Query:   req.GetString("exercise", ""),
		ShowAll: true,
	})
	recs = v.Entries

	if limit := req.GetInt("limit", 0); limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}

	result, err := mcp.NewToolResultJSON(recs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	rec, err := h.src.GetRecord(ctx, id)
	if err != nil {
		h.log.Error("mcp get_record", "id", id, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil || strings.TrimSpace(exercise) == "" {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	if weight < 0 || reps < 0 {
		return mcp.NewToolResultError("weight and reps must be non-negative"), nil
	}

	draft := models.RecordDraft{
		Exercise: strings.TrimSpace(exercise),
		Weight:   weight,
		Reps:     reps,
	}
	if err := h.src.CreateRecord(ctx, draft); err != nil {
		h.log.Error("mcp log_record", "error", err)
		return mcp.NewToolResultError("create failed: " + err.Error()), nil
	}

	return mcp.NewToolResultText("Record logged."), nil
}

func (h *handlers) getMilestones(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	milestones, err := h.src.ListMilestones(ctx)
	if err != nil {
		h.log.Error("mcp get_milestones", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if req.GetBool("unlocked_only", false) {
		kept := milestones[:0]
		for _, m := range milestones {
			if m.IsUnlocked {
				kept = append(kept, m)
			}
		}
		milestones = kept
	}

	result, err := mcp.NewToolResultJSON(milestones)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) generateRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days_per_week", 3)
	if days < 1 || days > 7 {
		return mcp.NewToolResultError("days_per_week must be between 1 and 7"), nil
	}

	rr := models.RoutineRequest{
		FitnessLevel: models.FitnessLevel(req.GetString("fitness_level", string(models.LevelIntermediate))),
		DaysPerWeek:  days,
		FocusAreas:   models.FocusArea(req.GetString("focus_areas", string(models.FocusFullBody))),
	}

	plan, err := h.src.GenerateRoutine(ctx, rr)
	if err != nil {
		h.log.Error("mcp generate_routine", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
