package appointments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/syncer"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Doer issues authenticated JSON requests. Satisfied by *api.Client.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Service layers the status workflow on top of the appointment list. The
// list itself stays owned by the synchronizer; after a status change the
// service reloads it so derived fields and backend joins stay current.
type Service struct {
	api         Doer
	sync        *syncer.Syncer[Appointment]
	transitions Transitions
	logger      *logging.Logger
}

// NewService creates the appointment workflow service.
func NewService(client Doer, sync *syncer.Syncer[Appointment], transitions Transitions, logger *logging.Logger) *Service {
	if client == nil {
		panic("appointments: api client required")
	}
	if sync == nil {
		panic("appointments: syncer required")
	}
	if transitions == nil {
		transitions = Permissive()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: client, sync: sync, transitions: transitions, logger: logger}
}

// Sync exposes the underlying list synchronizer.
func (s *Service) Sync() *syncer.Syncer[Appointment] { return s.sync }

// UpdateStatus moves an appointment to a new lifecycle state. The move is
// checked against the transition policy before any request goes out, and
// the list is reloaded afterwards.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to Status) error {
	if !to.Valid() {
		return api.Validation("status", "unknown status "+string(to))
	}
	current, ok := s.find(id)
	if !ok {
		return syncer.ErrNotFound
	}
	if !s.transitions.Allowed(current.Status, to) {
		msg := fmt.Sprintf("cannot move appointment from %s to %s", current.Status, to)
		return api.Validation("status", msg)
	}
	path := fmt.Sprintf("/api/appointments/status/%d", id)
	body := map[string]string{"status": string(to)}
	if err := s.api.Do(ctx, http.MethodPut, path, body, nil); err != nil {
		return err
	}
	s.logger.Info("appointment status changed",
		"appointment_id", id, "from", string(current.Status), "to", string(to))
	return s.sync.Load(ctx)
}

func (s *Service) find(id int64) (Appointment, bool) {
	for _, a := range s.sync.Snapshot().Canonical {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}
