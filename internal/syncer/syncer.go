// Package syncer keeps a per-domain list of records consistent with the
// clinical backend. Every list screen in the console is one Syncer instance
// parameterized by an Adapter: the synchronizer owns the canonical list and
// its filtered view, and applies mutations locally only after the backend
// confirms them.
package syncer

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/clinicops/clinic-console/internal/observability/metrics"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// ErrNotFound reports a record that vanished from the canonical list even
// though the backend accepted the mutation. A follow-up Load resolves it.
var ErrNotFound = errors.New("syncer: record not found in canonical list")

// Doer issues authenticated JSON requests. Satisfied by *api.Client.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Endpoints names the backend routes for one domain. Delete is addressed by
// path except where the backend expects the id in the request body
// (inventory does).
type Endpoints struct {
	List       string
	Create     string
	Update     string
	DeletePath func(id int64) string
	DeleteBody func(id int64) interface{}
}

// Adapter parameterizes the generic synchronizer for one entity type:
// routes, validation, derived display fields, and the searchable field set.
type Adapter[T any] struct {
	Domain    string
	Endpoints Endpoints

	// Validate gates every create/update; failures must carry
	// api.KindValidation so no network call is attempted on bad input.
	Validate func(T) error
	// Derive computes display fields (status color, category image, totals).
	Derive func(T) T
	// ID and WithID read and stamp the backend-assigned identifier.
	ID     func(T) int64
	WithID func(T, int64) T
	// SearchText lists the stringified fields the search box matches on.
	SearchText func(T) []string

	// RefetchAfterCreate reloads the whole list after a create instead of
	// appending locally, for backends that resolve extra fields server-side.
	RefetchAfterCreate bool
}

// createResponse is the backend's answer to a create call.
type createResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// Snapshot is a read-only copy of the synchronizer state for rendering.
type Snapshot[T any] struct {
	Canonical  []T    `json:"canonical"`
	Filtered   []T    `json:"filtered"`
	SearchTerm string `json:"search_term"`
	Err        string `json:"error,omitempty"`
}

// Syncer owns the canonical list for one domain. All exported methods are
// safe for concurrent use; network calls happen outside the lock so a slow
// backend never blocks readers.
type Syncer[T any] struct {
	api     Doer
	adapter Adapter[T]
	logger  *logging.Logger
	metrics *metrics.SyncMetrics

	mu         sync.Mutex
	canonical  []T
	filtered   []T
	term       string
	lastErr    error
	gen        uint64 // tag handed to each issued operation
	appliedGen uint64 // tag of the newest applied state change
}

// New creates a synchronizer for the adapter's domain. Metrics may be nil.
func New[T any](api Doer, adapter Adapter[T], logger *logging.Logger, m *metrics.SyncMetrics) *Syncer[T] {
	if api == nil {
		panic("syncer: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Syncer[T]{
		api:     api,
		adapter: adapter,
		logger:  logger.WithDomain(adapter.Domain),
		metrics: m,
	}
}

// Load fetches the full list and replaces the canonical state. Safe to call
// repeatedly; a response superseded by a newer operation is discarded so a
// slow initial load cannot clobber fresher state. On failure the previous
// canonical list stays visible.
func (s *Syncer[T]) Load(ctx context.Context) error {
	myGen := s.nextGen()
	start := time.Now()

	var list []T
	err := s.api.Do(ctx, http.MethodGet, s.adapter.Endpoints.List, nil, &list)
	s.observe("load", start, err)
	if err != nil {
		s.setErr(err)
		return err
	}

	for i := range list {
		list[i] = s.derive(list[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if myGen <= s.appliedGen {
		s.logger.Debug("discarding superseded load response", "gen", myGen)
		return nil
	}
	s.appliedGen = myGen
	s.canonical = list
	s.lastErr = nil
	s.refilterLocked()
	return nil
}

// Create validates the input, issues the backend create, then reconciles:
// either appending the server-identified record or refetching the list,
// per the adapter. Returns the record as it now exists locally.
func (s *Syncer[T]) Create(ctx context.Context, in T) (T, error) {
	var zero T
	if err := s.validate(in); err != nil {
		s.observe("create", time.Now(), err)
		return zero, err
	}

	myGen := s.nextGen()
	start := time.Now()
	var resp createResponse
	err := s.api.Do(ctx, http.MethodPost, s.adapter.Endpoints.Create, in, &resp)
	s.observe("create", start, err)
	if err != nil {
		s.setErr(err)
		return zero, err
	}

	rec := s.derive(s.withID(in, resp.ID))

	if s.adapter.RefetchAfterCreate {
		if err := s.Load(ctx); err != nil {
			return zero, err
		}
		if found, ok := s.findByID(resp.ID); ok {
			return found, nil
		}
		return rec, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if myGen > s.appliedGen {
		s.appliedGen = myGen
		s.canonical = append(slices.Clone(s.canonical), rec)
		s.lastErr = nil
		s.refilterLocked()
	}
	return rec, nil
}

// Update validates the input, issues the backend update, then patches the
// matching record by id. The record must already exist locally; if it
// vanished, ErrNotFound is returned and a Load will reconcile.
func (s *Syncer[T]) Update(ctx context.Context, in T) (T, error) {
	var zero T
	if err := s.validate(in); err != nil {
		s.observe("update", time.Now(), err)
		return zero, err
	}

	myGen := s.nextGen()
	start := time.Now()
	err := s.api.Do(ctx, http.MethodPut, s.adapter.Endpoints.Update, in, nil)
	s.observe("update", start, err)
	if err != nil {
		s.setErr(err)
		return zero, err
	}

	rec := s.derive(in)
	id := s.adapter.ID(rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.canonical {
		if s.adapter.ID(s.canonical[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Warn("updated record missing from canonical list", "id", id)
		return zero, ErrNotFound
	}
	if myGen > s.appliedGen {
		s.appliedGen = myGen
		patched := slices.Clone(s.canonical)
		patched[idx] = rec
		s.canonical = patched
		s.lastErr = nil
		s.refilterLocked()
	}
	return rec, nil
}

// Remove issues the backend delete and drops the record locally. Removing an
// id that is not present is a no-op success: the confirm-then-delete UI can
// race its own refresh.
func (s *Syncer[T]) Remove(ctx context.Context, id int64) error {
	myGen := s.nextGen()
	start := time.Now()

	var (
		path = s.adapter.Endpoints.List
		body interface{}
	)
	if s.adapter.Endpoints.DeletePath != nil {
		path = s.adapter.Endpoints.DeletePath(id)
	}
	if s.adapter.Endpoints.DeleteBody != nil {
		body = s.adapter.Endpoints.DeleteBody(id)
	}

	err := s.api.Do(ctx, http.MethodDelete, path, body, nil)
	s.observe("remove", start, err)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if myGen > s.appliedGen {
		s.appliedGen = myGen
		kept := make([]T, 0, len(s.canonical))
		for _, rec := range s.canonical {
			if s.adapter.ID(rec) != id {
				kept = append(kept, rec)
			}
		}
		s.canonical = kept
		s.lastErr = nil
		s.refilterLocked()
	}
	return nil
}

// SetSearchTerm recomputes the filtered view. Never touches the network.
func (s *Syncer[T]) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
	s.refilterLocked()
}

// Snapshot returns copies of the canonical and filtered lists for rendering.
func (s *Syncer[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot[T]{
		Canonical:  slices.Clone(s.canonical),
		Filtered:   slices.Clone(s.filtered),
		SearchTerm: s.term,
	}
	if s.lastErr != nil {
		snap.Err = s.lastErr.Error()
	}
	return snap
}

// Domain names the entity type this synchronizer manages.
func (s *Syncer[T]) Domain() string {
	return s.adapter.Domain
}

func (s *Syncer[T]) findByID(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.canonical {
		if s.adapter.ID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// refilterLocked re-derives the filtered view; callers hold s.mu. The
// filtered slice is never mutated independently of canonical.
func (s *Syncer[T]) refilterLocked() {
	s.filtered = Filter(s.canonical, s.term, s.adapter.SearchText)
}

func (s *Syncer[T]) nextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

func (s *Syncer[T]) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func (s *Syncer[T]) validate(in T) error {
	if s.adapter.Validate == nil {
		return nil
	}
	return s.adapter.Validate(in)
}

func (s *Syncer[T]) derive(rec T) T {
	if s.adapter.Derive == nil {
		return rec
	}
	return s.adapter.Derive(rec)
}

func (s *Syncer[T]) withID(rec T, id int64) T {
	if s.adapter.WithID == nil {
		return rec
	}
	return s.adapter.WithID(rec, id)
}

func (s *Syncer[T]) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.ObserveOp(s.adapter.Domain, op, status)
	s.metrics.ObserveLatency(s.adapter.Domain, op, time.Since(start).Seconds())
}
