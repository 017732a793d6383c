package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meltforce/prtrack/internal/models"
)

// fakeBackend is an in-memory server double. Mutations change the store,
// ListRecords returns the current state, so mutate-then-reload paths are
// observable end to end.
type fakeBackend struct {
	store  []models.PersonalRecord
	nextID int

	failCreate error
	failDelete error
	failList   error

	// updateEntered/updateRelease, when set, let a test hold an update
	// mid-flight: entered is closed on entry, release gates the return.
	updateEntered chan struct{}
	updateRelease chan struct{}

	listCalls int
}

func newFakeBackend(recs ...models.PersonalRecord) *fakeBackend {
	next := 1
	for _, r := range recs {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return &fakeBackend{store: recs, nextID: next}
}

func (f *fakeBackend) ListRecords(_ context.Context) ([]models.PersonalRecord, error) {
	f.listCalls++
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]models.PersonalRecord(nil), f.store...), nil
}

func (f *fakeBackend) CreateRecord(_ context.Context, draft models.RecordDraft) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.store = append(f.store, models.PersonalRecord{
		ID: f.nextID, Exercise: draft.Exercise, Weight: draft.Weight,
		Reps: draft.Reps, PerformedAt: time.Now(),
	})
	f.nextID++
	return nil
}

func (f *fakeBackend) UpdateRecord(_ context.Context, id int, update models.RecordUpdate) error {
	if f.updateEntered != nil {
		close(f.updateEntered)
		<-f.updateRelease
	}
	for i, r := range f.store {
		if r.ID == id {
			if update.Exercise != nil {
				f.store[i].Exercise = *update.Exercise
			}
			if update.Weight != nil {
				f.store[i].Weight = *update.Weight
			}
			if update.Reps != nil {
				f.store[i].Reps = *update.Reps
			}
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeBackend) DeleteRecord(_ context.Context, id int) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	kept := f.store[:0]
	for _, r := range f.store {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.store = kept
	return nil
}

func rec(id int, exercise string) models.PersonalRecord {
	return models.PersonalRecord{
		ID: id, Exercise: exercise, Weight: 100, Reps: 5,
		PerformedAt: time.Date(2026, 2, id, 0, 0, 0, 0, time.UTC),
	}
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"), rec(2, "Squat"))
	l := NewList(b)

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}

	b.store = []models.PersonalRecord{rec(3, "Deadlift")}
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := l.Records()
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("snapshot = %+v, want only ID 3", got)
	}
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	gen := l.Generation()

	b.failList = errors.New("boom")
	if err := l.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1 (snapshot untouched)", l.Len())
	}
	if l.Generation() != gen {
		t.Errorf("generation changed on failed refresh")
	}
}

func TestAddCreatesThenReloads(t *testing.T) {
	b := newFakeBackend()
	l := NewList(b)

	draft := models.RecordDraft{Exercise: "Squat", Weight: 140, Reps: 3}
	if err := l.Add(context.Background(), draft); err != nil {
		t.Fatal(err)
	}

	got := l.Records()
	if len(got) != 1 {
		t.Fatalf("Len = %d, want 1", len(got))
	}
	if got[0].ID == 0 {
		t.Error("record has no server-assigned ID")
	}
	if got[0].Exercise != "Squat" {
		t.Errorf("exercise = %q, want Squat", got[0].Exercise)
	}
}

func TestAddFailureLeavesCollection(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	gen := l.Generation()
	listCalls := b.listCalls

	b.failCreate = errors.New("boom")
	err := l.Add(context.Background(), models.RecordDraft{Exercise: "Squat"})
	if err == nil {
		t.Fatal("expected error")
	}
	if l.Generation() != gen {
		t.Error("generation changed on failed add")
	}
	if b.listCalls != listCalls {
		t.Error("reload issued after failed create")
	}
}

func TestEditUpdatesThenReloads(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	weight := 110.0
	if err := l.Edit(context.Background(), 1, models.RecordUpdate{Weight: &weight}); err != nil {
		t.Fatal(err)
	}
	got := l.Records()
	if got[0].Weight != 110 {
		t.Errorf("weight = %v, want 110", got[0].Weight)
	}
}

func TestRemoveDropsLocally(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"), rec(2, "Squat"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	listCalls := b.listCalls

	if err := l.Remove(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	got := l.Records()
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("snapshot = %+v, want only ID 2", got)
	}
	// Delete trusts the 204; no refetch.
	if b.listCalls != listCalls {
		t.Error("reload issued after delete")
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := l.Remove(context.Background(), 42); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestRemoveFailureLeavesCollection(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	b.failDelete = errors.New("boom")
	if err := l.Remove(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1 (snapshot untouched)", l.Len())
	}
}

func TestConcurrentMutationSameIDRejected(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	b.updateEntered = make(chan struct{})
	b.updateRelease = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		weight := 120.0
		done <- l.Edit(context.Background(), 1, models.RecordUpdate{Weight: &weight})
	}()

	// Once the update has entered the backend, the edit holds the
	// in-flight slot for id 1.
	<-b.updateEntered
	if err := l.Remove(context.Background(), 1); !errors.Is(err, ErrMutationInFlight) {
		t.Fatalf("err = %v, want ErrMutationInFlight", err)
	}

	close(b.updateRelease)
	if err := <-done; err != nil {
		t.Fatalf("blocked edit failed: %v", err)
	}
}

func TestGenerationAdvancesOnChange(t *testing.T) {
	b := newFakeBackend(rec(1, "Bench Press"))
	l := NewList(b)

	g0 := l.Generation()
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	g1 := l.Generation()
	if g1 == g0 {
		t.Error("generation unchanged after refresh")
	}

	if err := l.Remove(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if l.Generation() == g1 {
		t.Error("generation unchanged after remove")
	}

	l.Reset()
	if l.Generation() == g1 {
		t.Error("generation unchanged after reset")
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d after reset, want 0", l.Len())
	}
}
