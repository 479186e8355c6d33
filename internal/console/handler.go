// Package console is the HTTP surface of the admin dashboard. It translates
// browser requests into synchronizer operations and maps the error taxonomy
// onto HTTP statuses.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/appointments"
	"github.com/clinicops/clinic-console/internal/inventory"
	"github.com/clinicops/clinic-console/internal/medservices"
	"github.com/clinicops/clinic-console/internal/patients"
	"github.com/clinicops/clinic-console/internal/syncer"
	"github.com/clinicops/clinic-console/internal/users"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Deps collects everything the console serves.
type Deps struct {
	Client      *api.Client
	Users       *users.Service
	Inventory   *syncer.Syncer[inventory.Item]
	Patients    *syncer.Syncer[patients.Patient]
	PatientCare *patients.Service
	Schedule    *appointments.Service
	Meds        *medservices.Service
	Logger      *logging.Logger
}

// Handler serves the dashboard API.
type Handler struct {
	client      *api.Client
	users       *users.Service
	inventory   *syncer.Syncer[inventory.Item]
	patients    *syncer.Syncer[patients.Patient]
	patientCare *patients.Service
	schedule    *appointments.Service
	meds        *medservices.Service
	logger      *logging.Logger
}

// NewHandler creates the console handler.
func NewHandler(d Deps) *Handler {
	if d.Client == nil {
		panic("console: api client required")
	}
	if d.Logger == nil {
		d.Logger = logging.Default()
	}
	return &Handler{
		client:      d.Client,
		users:       d.Users,
		inventory:   d.Inventory,
		patients:    d.Patients,
		patientCare: d.PatientCare,
		schedule:    d.Schedule,
		meds:        d.Meds,
		logger:      d.Logger,
	}
}

// Routes wires the console endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/session/login", h.handleLogin)
	r.Post("/session/logout", h.handleLogout)
	r.Get("/session/profile", h.handleProfile)
	r.Get("/session/verify", h.handleVerify)
	r.Get("/ws", h.handleSocket)

	r.Get("/doctors", h.handleDoctors)
	r.Get("/medications", h.handleMedications)

	r.Route("/inventory", func(r chi.Router) {
		mountList(r, h.inventory, func(req *http.Request) (inventory.Item, error) {
			var form inventory.ItemForm
			if err := decodeBody(req, &form); err != nil {
				return inventory.Item{}, err
			}
			return form.Item()
		})
	})

	r.Route("/patients", func(r chi.Router) {
		mountList(r, h.patients, func(req *http.Request) (patients.Patient, error) {
			var form patients.PatientForm
			if err := decodeBody(req, &form); err != nil {
				return patients.Patient{}, err
			}
			return form.Patient()
		})
		r.Get("/{id}", h.handlePatientGet)
		r.Post("/{id}/history", h.handleHistoryAdd)
		r.Put("/{id}/history/{entryID}", h.handleHistoryUpdate)
		r.Delete("/{id}/history/{entryID}", h.handleHistoryRemove)
		r.Get("/{id}/treatments", h.handleTreatmentList)
		r.Post("/{id}/treatments", h.handleTreatmentAdd)
		r.Put("/{id}/treatments/{treatmentID}", h.handleTreatmentUpdate)
		r.Delete("/{id}/treatments/{treatmentID}", h.handleTreatmentRemove)
		r.Post("/{id}/prescriptions", h.handlePrescriptionAdd)
	})

	r.Route("/appointments", func(r chi.Router) {
		mountList(r, h.schedule.Sync(), func(req *http.Request) (appointments.Appointment, error) {
			var form appointments.Form
			if err := decodeBody(req, &form); err != nil {
				return appointments.Appointment{}, err
			}
			a, err := form.Appointment()
			if err != nil {
				return appointments.Appointment{}, err
			}
			// Editing date or participants must not reset the lifecycle
			// state; that only moves through the status route.
			if a.ID != 0 {
				for _, cur := range h.schedule.Sync().Snapshot().Canonical {
					if cur.ID == a.ID {
						a.Status = cur.Status
						break
					}
				}
			}
			return a, nil
		})
		r.Put("/{id}/status", h.handleAppointmentStatus)
	})

	return r
}

// mountList wires the generic list operations for one domain: refresh,
// create, update, delete and the local search filter.
func mountList[T any](r chi.Router, s *syncer.Syncer[T], decode func(*http.Request) (T, error)) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if err := s.Load(req.Context()); err != nil && !staleVisible(s, err) {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	})
	r.Get("/snapshot", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, s.Snapshot())
	})
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		in, err := decode(req)
		if err != nil {
			writeError(w, err)
			return
		}
		rec, err := s.Create(req.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	})
	r.Put("/", func(w http.ResponseWriter, req *http.Request) {
		in, err := decode(req)
		if err != nil {
			writeError(w, err)
			return
		}
		rec, err := s.Update(req.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})
	r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := urlID(req, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Remove(req.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Put("/search", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Term string `json:"term"`
		}
		if err := decodeBody(req, &body); err != nil {
			writeError(w, err)
			return
		}
		s.SetSearchTerm(body.Term)
		writeJSON(w, http.StatusOK, s.Snapshot())
	})
}

// staleVisible reports whether a failed refresh can still show data: the
// previous canonical list stays on screen with the error banner, so only
// auth failures bubble up as HTTP errors.
func staleVisible[T any](s *syncer.Syncer[T], err error) bool {
	if api.IsNotAuthenticated(err) || api.IsSessionExpired(err) {
		return false
	}
	return len(s.Snapshot().Canonical) > 0
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.client.Login(r.Context(), body.Username, body.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Session().Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Profile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Verify(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.users.Doctors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *Handler) handleMedications(w http.ResponseWriter, r *http.Request) {
	meds, err := h.meds.Medications(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meds)
}

func (h *Handler) handlePatientGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.patientCare.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleHistoryAdd(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.patientCare.AddHistory(r.Context(), id, body.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleHistoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, entryID, err := urlIDs(r, "id", "entryID")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.patientCare.UpdateHistory(r.Context(), id, entryID, body.Note); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHistoryRemove(w http.ResponseWriter, r *http.Request) {
	id, entryID, err := urlIDs(r, "id", "entryID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.patientCare.RemoveHistory(r.Context(), id, entryID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTreatmentList(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := h.patientCare.Treatments(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleTreatmentAdd(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var form patients.TreatmentForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	tr, err := h.patientCare.AddTreatment(r.Context(), id, form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tr)
}

func (h *Handler) handleTreatmentUpdate(w http.ResponseWriter, r *http.Request) {
	id, treatmentID, err := urlIDs(r, "id", "treatmentID")
	if err != nil {
		writeError(w, err)
		return
	}
	var form patients.TreatmentForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	form.ID = treatmentID
	if err := h.patientCare.UpdateTreatment(r.Context(), id, form); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTreatmentRemove(w http.ResponseWriter, r *http.Request) {
	id, treatmentID, err := urlIDs(r, "id", "treatmentID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.patientCare.RemoveTreatment(r.Context(), id, treatmentID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePrescriptionAdd(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		MedicationID int64 `json:"medication_id"`
		DoctorID     int64 `json:"doctor_id"`
		Quantity     int   `json:"quantity"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	med, err := h.findMedication(r.Context(), body.MedicationID)
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := medservices.NewPrescription(med, body.DoctorID, body.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.patientCare.AddPrescription(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// findMedication resolves the catalog row so the fee is quoted server-side
// rather than trusted from the browser.
func (h *Handler) findMedication(ctx context.Context, medicationID int64) (medservices.Medication, error) {
	list, err := h.meds.Medications(ctx)
	if err != nil {
		return medservices.Medication{}, err
	}
	for _, m := range list {
		if m.ID == medicationID {
			return m, nil
		}
	}
	return medservices.Medication{}, api.Validation("medication_id", "unknown medication")
}

func (h *Handler) handleAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status appointments.Status `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.schedule.UpdateStatus(r.Context(), id, body.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.schedule.Sync().Snapshot())
}

// errorResponse is the console's error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Remote failures
// pass the backend status through so the browser sees what the backend said.
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var apiErr *api.Error
	switch {
	case errors.Is(err, syncer.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &apiErr):
		resp.Kind = apiErr.Kind.String()
		resp.Field = apiErr.Field
		switch apiErr.Kind {
		case api.KindNotAuthenticated, api.KindSessionExpired:
			status = http.StatusUnauthorized
		case api.KindValidation:
			status = http.StatusBadRequest
		case api.KindRemote:
			status = apiErr.Status
			if status < 400 || status > 599 {
				status = http.StatusBadGateway
			}
		case api.KindNetwork:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, resp)
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return api.Validation("body", "invalid request body")
	}
	return nil
}

func urlID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id < 1 {
		return 0, api.Validation(key, "invalid "+key)
	}
	return id, nil
}

func urlIDs(r *http.Request, first, second string) (int64, int64, error) {
	a, err := urlID(r, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := urlID(r, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
