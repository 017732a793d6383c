package models

import "time"

// PersonalRecord is a logged lift as returned by the server.
// ID and PerformedAt are server-assigned and immutable after creation.
type PersonalRecord struct {
	ID          int       `json:"id"`
	Exercise    string    `json:"exercise"`
	Weight      float64   `json:"weight"`
	Reps        int       `json:"reps"`
	PerformedAt time.Time `json:"performed_at"`
}

// RecordDraft is the client-side payload for creating a record.
type RecordDraft struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

// RecordUpdate is a partial update; nil fields are left untouched by the server.
type RecordUpdate struct {
	Exercise *string  `json:"exercise,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Reps     *int     `json:"reps,omitempty"`
}

// UpdateFromDraft converts a fully filled form into a partial update
// covering all three mutable fields.
func UpdateFromDraft(d RecordDraft) RecordUpdate {
	return RecordUpdate{
		Exercise: &d.Exercise,
		Weight:   &d.Weight,
		Reps:     &d.Reps,
	}
}

// SuggestedExercises are the canonical lift names offered by the PR form.
// Free-text entry is still allowed; these only seed the dropdown.
var SuggestedExercises = []string{
	"Squat",
	"Bench Press",
	"Deadlift",
	"Overhead Press",
	"Pull Up",
	"Barbell Row",
	"Incline Bench Press",
	"Dips",
	"Romanian Deadlift",
	"Leg Press",
}
