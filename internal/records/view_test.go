package records

import (
	"testing"
	"time"

	"github.com/meltforce/prtrack/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
}

// sixRecords is a collection crafted so sort, filter, and truncation all
// have observable effects: six entries, two matching "bench".
func sixRecords() []models.PersonalRecord {
	return []models.PersonalRecord{
		{ID: 1, Exercise: "Bench Press", Weight: 100, Reps: 5, PerformedAt: day(1)},
		{ID: 2, Exercise: "Squat", Weight: 140, Reps: 3, PerformedAt: day(2)},
		{ID: 3, Exercise: "Deadlift", Weight: 180, Reps: 1, PerformedAt: day(3)},
		{ID: 4, Exercise: "Overhead Press", Weight: 60, Reps: 8, PerformedAt: day(4)},
		{ID: 5, Exercise: "Incline Bench", Weight: 80, Reps: 6, PerformedAt: day(5)},
		{ID: 6, Exercise: "Barbell Row", Weight: 90, Reps: 8, PerformedAt: day(6)},
	}
}

func TestBuildViewSortsNewestFirst(t *testing.T) {
	v := BuildView(sixRecords(), ViewParams{ShowAll: true})
	if len(v.Entries) != 6 {
		t.Fatalf("got %d entries, want 6", len(v.Entries))
	}
	for i := 1; i < len(v.Entries); i++ {
		if v.Entries[i].PerformedAt.After(v.Entries[i-1].PerformedAt) {
			t.Errorf("entries[%d] newer than entries[%d]", i, i-1)
		}
	}
	if v.Entries[0].ID != 6 {
		t.Errorf("first entry ID = %d, want 6 (newest)", v.Entries[0].ID)
	}
}

func TestBuildViewStableOnEqualTimestamps(t *testing.T) {
	recs := []models.PersonalRecord{
		{ID: 1, Exercise: "Bench Press", PerformedAt: day(1)},
		{ID: 2, Exercise: "Squat", PerformedAt: day(1)},
		{ID: 3, Exercise: "Deadlift", PerformedAt: day(1)},
	}
	v := BuildView(recs, ViewParams{})
	for i, id := range []int{1, 2, 3} {
		if v.Entries[i].ID != id {
			t.Errorf("entries[%d].ID = %d, want %d (snapshot order kept)", i, v.Entries[i].ID, id)
		}
	}
}

func TestBuildViewTruncatesToFive(t *testing.T) {
	v := BuildView(sixRecords(), ViewParams{})
	if len(v.Entries) != DefaultVisible {
		t.Fatalf("got %d entries, want %d", len(v.Entries), DefaultVisible)
	}
	if v.Hidden != 1 {
		t.Errorf("Hidden = %d, want 1", v.Hidden)
	}
	if v.FilteredCount != 6 {
		t.Errorf("FilteredCount = %d, want 6", v.FilteredCount)
	}
	// The hidden record is the oldest one.
	for _, r := range v.Entries {
		if r.ID == 1 {
			t.Error("oldest record visible despite truncation")
		}
	}
}

func TestBuildViewShowAll(t *testing.T) {
	v := BuildView(sixRecords(), ViewParams{ShowAll: true})
	if len(v.Entries) != 6 || v.Hidden != 0 {
		t.Fatalf("entries = %d hidden = %d, want 6 and 0", len(v.Entries), v.Hidden)
	}
}

func TestBuildViewFilterCaseInsensitive(t *testing.T) {
	v := BuildView(sixRecords(), ViewParams{Query: "BENCH"})
	if len(v.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(v.Entries))
	}
	// Filter runs before truncation, and the result stays sorted.
	if v.Entries[0].ID != 5 || v.Entries[1].ID != 1 {
		t.Errorf("entries = [%d, %d], want [5, 1]", v.Entries[0].ID, v.Entries[1].ID)
	}
}

func TestBuildViewFilterThenTruncate(t *testing.T) {
	recs := make([]models.PersonalRecord, 0, 8)
	for i := 1; i <= 8; i++ {
		recs = append(recs, models.PersonalRecord{
			ID: i, Exercise: "Bench Press", PerformedAt: day(i),
		})
	}
	recs = append(recs, models.PersonalRecord{ID: 99, Exercise: "Squat", PerformedAt: day(20)})

	v := BuildView(recs, ViewParams{Query: "bench"})
	if v.FilteredCount != 8 {
		t.Errorf("FilteredCount = %d, want 8", v.FilteredCount)
	}
	if len(v.Entries) != DefaultVisible || v.Hidden != 3 {
		t.Errorf("entries = %d hidden = %d, want 5 and 3", len(v.Entries), v.Hidden)
	}
}

func TestBuildViewNoMatch(t *testing.T) {
	v := BuildView(sixRecords(), ViewParams{Query: "curl"})
	if len(v.Entries) != 0 || v.FilteredCount != 0 || v.Hidden != 0 {
		t.Errorf("unexpected view for no-match query: %+v", v)
	}
}

func TestBuildViewDoesNotMutateSnapshot(t *testing.T) {
	recs := sixRecords()
	BuildView(recs, ViewParams{Query: "bench"})
	for i, want := range []int{1, 2, 3, 4, 5, 6} {
		if recs[i].ID != want {
			t.Fatalf("snapshot mutated at %d: ID = %d, want %d", i, recs[i].ID, want)
		}
	}
}
