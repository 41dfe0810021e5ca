// Package session holds the dataset the user is currently looking at.
//
// The active dataset is swapped atomically and never updated in place. Loads
// are ticketed: only the most recently started load may install its result,
// so a slow parse that finishes after a newer one is discarded instead of
// overwriting it.
package session

import (
	"errors"
	"fmt"
	"sync/atomic"

	"storage-diagnostics/internal/model"
)

var (
	// ErrNoDataset is returned when nothing has been loaded yet.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrStale is returned by Commit when a newer load has started.
	ErrStale = errors.New("stale load superseded by a newer one")
	// ErrDatasetChanged is returned when a caller pins a dataset ID that is no longer active.
	ErrDatasetChanged = errors.New("dataset changed")
)

// Ticket identifies one load attempt.
type Ticket uint64

// Snapshot is an immutable view of the active dataset.
type Snapshot struct {
	Dataset *model.DiagnosticDataset
	Ticket  Ticket
}

type Session struct {
	latest  atomic.Uint64
	current atomic.Pointer[Snapshot]
}

func New() *Session {
	return &Session{}
}

// Begin starts a load and returns its ticket. Starting a load supersedes
// every earlier ticket.
func (s *Session) Begin() Ticket {
	return Ticket(s.latest.Add(1))
}

// Commit installs ds if t is still the newest ticket. A stale ticket leaves
// the active dataset untouched and returns ErrStale.
func (s *Session) Commit(t Ticket, ds *model.DiagnosticDataset) (*Snapshot, error) {
	if ds == nil {
		return nil, errors.New("dataset is nil")
	}
	snap := &Snapshot{Dataset: ds, Ticket: t}
	for {
		if Ticket(s.latest.Load()) != t {
			return nil, ErrStale
		}
		old := s.current.Load()
		if old != nil && old.Ticket >= t {
			return nil, ErrStale
		}
		if s.current.CompareAndSwap(old, snap) {
			return snap, nil
		}
	}
}

// Current returns the active snapshot.
func (s *Session) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoDataset
	}
	return snap, nil
}

// Pinned returns the active snapshot, checking that it still holds the dataset
// with the given ID. An empty ID accepts whatever is active.
func (s *Session) Pinned(datasetID string) (*Snapshot, error) {
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}
	if datasetID != "" && snap.Dataset.ID != datasetID {
		return nil, fmt.Errorf("%w: requested %s, active %s", ErrDatasetChanged, datasetID, snap.Dataset.ID)
	}
	return snap, nil
}
