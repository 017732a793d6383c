// Package records holds the in-memory PR collection and derives the
// views the history screen displays.
//
// The collection is always a snapshot of a prior full-list fetch. Create
// and update go through the server and then reload the whole list, so the
// view can never drift from server state once the round trip completes.
// Delete is the one local mutation: a 204 means the id is gone, which the
// client can represent exactly without refetching.
package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/meltforce/prtrack/internal/models"
)

// ErrMutationInFlight is returned when a second mutation targets a record
// that already has one running. Callers treat it as a guard, not a fault.
var ErrMutationInFlight = errors.New("records: mutation already in flight for this record")

// Backend is the subset of the API client the list needs. *api.Client
// satisfies this.
type Backend interface {
	ListRecords(ctx context.Context) ([]models.PersonalRecord, error)
	CreateRecord(ctx context.Context, draft models.RecordDraft) error
	UpdateRecord(ctx context.Context, id int, update models.RecordUpdate) error
	DeleteRecord(ctx context.Context, id int) error
}

// List is the single source of truth for PR data after login.
type List struct {
	backend Backend

	mu         sync.Mutex
	entries    []models.PersonalRecord
	generation uint64
	inflight   map[int]bool
}

// NewList creates an empty list backed by the given client.
func NewList(backend Backend) *List {
	return &List{
		backend:  backend,
		inflight: make(map[int]bool),
	}
}

// Refresh replaces the collection with a fresh full fetch.
func (l *List) Refresh(ctx context.Context) error {
	entries, err := l.backend.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("records: refresh: %w", err)
	}
	l.mu.Lock()
	l.entries = entries
	l.generation++
	l.mu.Unlock()
	return nil
}

// Add creates a record on the server and reloads the collection. On
// failure the collection is untouched.
func (l *List) Add(ctx context.Context, draft models.RecordDraft) error {
	if err := l.backend.CreateRecord(ctx, draft); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Edit updates a record on the server and reloads the collection.
// A second edit or remove for the same id while this one runs is
// rejected before any network access.
func (l *List) Edit(ctx context.Context, id int, update models.RecordUpdate) error {
	if err := l.acquire(id); err != nil {
		return err
	}
	defer l.release(id)

	if err := l.backend.UpdateRecord(ctx, id, update); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Remove deletes a record on the server and, on success, drops the id
// from the collection locally. A failed call leaves the collection
// unchanged; removing an id the list no longer holds changes nothing.
func (l *List) Remove(ctx context.Context, id int) error {
	if err := l.acquire(id); err != nil {
		return err
	}
	defer l.release(id)

	if err := l.backend.DeleteRecord(ctx, id); err != nil {
		return err
	}

	l.mu.Lock()
	kept := l.entries[:0]
	for _, r := range l.entries {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	l.entries = kept
	l.generation++
	l.mu.Unlock()
	return nil
}

// Reset drops the collection without network access. Called on logout.
func (l *List) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.generation++
	l.mu.Unlock()
}

// Records returns a copy of the current snapshot.
func (l *List) Records() []models.PersonalRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.PersonalRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the snapshot size.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Generation increments every time the collection changes. The milestone
// view refetches when it observes a new generation.
func (l *List) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

func (l *List) acquire(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inflight[id] {
		return ErrMutationInFlight
	}
	l.inflight[id] = true
	return nil
}

func (l *List) release(id int) {
	l.mu.Lock()
	delete(l.inflight, id)
	l.mu.Unlock()
}
