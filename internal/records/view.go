package records

import (
	"sort"
	"strings"

	"github.com/meltforce/prtrack/internal/models"
)

// DefaultVisible is how many records the collapsed history shows.
const DefaultVisible = 5

// ViewParams are the UI inputs to the derived view.
type ViewParams struct {
	// Query filters by case-insensitive substring match on the exercise.
	Query string
	// ShowAll disables truncation to DefaultVisible.
	ShowAll bool
}

// View is the derived, display-ready slice of the collection.
type View struct {
	// Entries is what the screen renders, already sorted, filtered and
	// truncated.
	Entries []models.PersonalRecord
	// FilteredCount is how many records matched before truncation.
	FilteredCount int
	// Hidden is how many matched records truncation removed.
	Hidden int
}

// BuildView derives the display view from a snapshot. Pure function:
// sort by performed_at descending (stable, so equal timestamps keep
// their snapshot order), then filter, then truncate. The order of the
// three steps is fixed.
func BuildView(snapshot []models.PersonalRecord, p ViewParams) View {
	sorted := make([]models.PersonalRecord, len(snapshot))
	copy(sorted, snapshot)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PerformedAt.After(sorted[j].PerformedAt)
	})

	filtered := sorted
	if p.Query != "" {
		q := strings.ToLower(p.Query)
		filtered = filtered[:0:0]
		for _, r := range sorted {
			if strings.Contains(strings.ToLower(r.Exercise), q) {
				filtered = append(filtered, r)
			}
		}
	}

	v := View{Entries: filtered, FilteredCount: len(filtered)}
	if !p.ShowAll && len(filtered) > DefaultVisible {
		v.Entries = filtered[:DefaultVisible]
		v.Hidden = len(filtered) - DefaultVisible
	}
	return v
}
