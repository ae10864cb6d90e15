package schedule

import (
	"context"
	"sort"
	"sync"

	appLog "openday/internal/log"
	"openday/internal/model"
)

// State is the data-load lifecycle of the Store.
type State int

const (
	// StateLoading means the initial load has not completed yet.
	StateLoading State = iota
	// StateReady means an event list is available.
	StateReady
	// StateError means the load failed and no event list is available.
	// The state persists until a later Reload succeeds.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent view of the store at one instant. Events is
// the immutable base list; callers must not mutate it.
type Snapshot struct {
	State  State
	Events []model.EventRecord
	Report ParseReport
	Err    error
}

// Store holds the in-memory event list and its load state. The list is
// replaced wholesale on reload; readers always see either the previous
// complete list or the new one, never a partial mix.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewStore creates a Store in the Loading state.
func NewStore() *Store {
	return &Store{snap: Snapshot{State: StateLoading}}
}

// Snapshot returns the current state and event list.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Reload fetches and parses the schedule from source and swaps the
// event list atomically. On failure the previous Ready snapshot is kept
// (a stale schedule beats none); only when nothing was ever loaded does
// the store enter StateError.
func (s *Store) Reload(ctx context.Context, f *Fetcher, source string) error {
	body, fromCache, err := f.Fetch(ctx, source)
	if err != nil {
		s.fail(err)
		return err
	}

	events, report, err := ParseSchedule(body)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.snap = Snapshot{State: StateReady, Events: events, Report: report}
	s.mu.Unlock()

	appLog.Info("schedule loaded",
		"events", len(events),
		"dropped", report.Dropped,
		"day_mismatches", report.DayMismatches,
		"from_cache", fromCache,
	)
	return nil
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State == StateReady {
		appLog.Error("schedule reload failed, keeping previous events", err)
		return
	}
	s.snap = Snapshot{State: StateError, Err: err}
	appLog.Error("schedule load failed", err)
}

// Dates returns the distinct event dates, sorted ascending.
func Dates(events []model.EventRecord) []string {
	return distinct(events, func(e model.EventRecord) string { return e.Date })
}

// Departments returns the distinct non-empty department IDs, sorted.
func Departments(events []model.EventRecord) []string {
	return distinct(events, func(e model.EventRecord) string { return e.Department })
}

func distinct(events []model.EventRecord, key func(model.EventRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		k := key(e)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
