package models

// FitnessLevel is the self-reported experience level sent to the routine
// generator. Values match the backend enum exactly.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// FitnessLevels lists the levels in display order.
var FitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Label returns the human-readable form.
func (l FitnessLevel) Label() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// FocusArea is the training emphasis for a generated routine.
type FocusArea string

const (
	FocusFullBody     FocusArea = "full_body"
	FocusUpperBody    FocusArea = "upper_body"
	FocusLowerBody    FocusArea = "lower_body"
	FocusPushPullLegs FocusArea = "push_pull_legs"
	FocusCardioCore   FocusArea = "cardio_core"
	FocusStrength     FocusArea = "strength"
	FocusHypertrophy  FocusArea = "hypertrophy"
)

// FocusAreas lists the areas in display order.
var FocusAreas = []FocusArea{
	FocusFullBody,
	FocusUpperBody,
	FocusLowerBody,
	FocusPushPullLegs,
	FocusCardioCore,
	FocusStrength,
	FocusHypertrophy,
}

var focusLabels = map[FocusArea]string{
	FocusFullBody:     "Full Body",
	FocusUpperBody:    "Upper Body",
	FocusLowerBody:    "Lower Body",
	FocusPushPullLegs: "Push / Pull / Legs",
	FocusCardioCore:   "Cardio & Core",
	FocusStrength:     "Strength & Power",
	FocusHypertrophy:  "Muscle Building (Hypertrophy)",
}

// Label returns the human-readable form.
func (f FocusArea) Label() string {
	if l, ok := focusLabels[f]; ok {
		return l
	}
	return string(f)
}

// RoutineRequest is the parameter set for routine generation.
type RoutineRequest struct {
	FitnessLevel FitnessLevel `json:"fitness_level"`
	DaysPerWeek  int          `json:"days_per_week"`
	FocusAreas   FocusArea    `json:"focus_areas"`
}

// WorkoutPlan is a generated routine. Held only in the workout builder's
// transient state; never persisted.
type WorkoutPlan struct {
	RoutineName string       `json:"routine_name"`
	Schedule    []WorkoutDay `json:"schedule"`
	CoachTip    string       `json:"coach_tip"`
}

// WorkoutDay is one day of a plan.
type WorkoutDay struct {
	Day       string            `json:"day"`
	Focus     string            `json:"focus"`
	Exercises []PlannedExercise `json:"exercises"`
}

// PlannedExercise is a single prescribed exercise. Sets and reps are
// strings because the generator emits ranges like "3-4" and "8-12".
type PlannedExercise struct {
	Name  string `json:"name"`
	Sets  string `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}
