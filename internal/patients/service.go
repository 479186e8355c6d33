package patients

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Doer issues authenticated JSON requests. Satisfied by *api.Client.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Service manages the per-patient sub-resources: history entries,
// treatments and prescriptions. The patient list itself is owned by the
// synchronizer; after a sub-resource mutation the caller reloads it so the
// nested lists stay consistent with the backend.
type Service struct {
	api    Doer
	logger *logging.Logger
}

// NewService creates a patient sub-resource service.
func NewService(client Doer, logger *logging.Logger) *Service {
	if client == nil {
		panic("patients: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: client, logger: logger}
}

// Get fetches a single patient's full report.
func (s *Service) Get(ctx context.Context, patientID int64) (Patient, error) {
	var p Patient
	path := fmt.Sprintf("/api/patients/%d", patientID)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return Patient{}, err
	}
	return Derive(p), nil
}

// idResponse is the backend's answer to sub-resource creates.
type idResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// AddHistory appends a history entry and returns it with the
// backend-assigned id.
func (s *Service) AddHistory(ctx context.Context, patientID int64, note string) (HistoryEntry, error) {
	if strings.TrimSpace(note) == "" {
		return HistoryEntry{}, api.Validation("note", "history note is required")
	}
	var resp idResponse
	path := fmt.Sprintf("/api/patients/%d/history", patientID)
	if err := s.api.Do(ctx, http.MethodPost, path, map[string]string{"note": note}, &resp); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{ID: resp.ID, Note: note}, nil
}

// UpdateHistory rewrites an entry addressed by its stable id.
func (s *Service) UpdateHistory(ctx context.Context, patientID, entryID int64, note string) error {
	if strings.TrimSpace(note) == "" {
		return api.Validation("note", "history note is required")
	}
	path := fmt.Sprintf("/api/patients/%d/history/%d", patientID, entryID)
	return s.api.Do(ctx, http.MethodPut, path, map[string]string{"note": note}, nil)
}

// RemoveHistory deletes an entry by id. Ids of the remaining entries are
// unaffected, so stale UI state cannot hit the wrong record.
func (s *Service) RemoveHistory(ctx context.Context, patientID, entryID int64) error {
	path := fmt.Sprintf("/api/patients/%d/history/%d", patientID, entryID)
	return s.api.Do(ctx, http.MethodDelete, path, nil, nil)
}

// TreatmentForm carries raw treatment input.
type TreatmentForm struct {
	ID        int64  `json:"id,omitempty"`
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Finished  bool   `json:"finished"`
	Date      string `json:"date,omitempty"`
}

func (f TreatmentForm) validate() error {
	if strings.TrimSpace(f.Symptoms) == "" {
		return api.Validation("symptoms", "symptoms are required")
	}
	if strings.TrimSpace(f.Diagnosis) == "" {
		return api.Validation("diagnosis", "diagnosis is required")
	}
	if strings.TrimSpace(f.Treatment) == "" {
		return api.Validation("treatment", "treatment is required")
	}
	return nil
}

// Treatments lists a patient's treatments.
func (s *Service) Treatments(ctx context.Context, patientID int64) ([]Treatment, error) {
	var list []Treatment
	path := fmt.Sprintf("/api/patients/%d/treatments", patientID)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddTreatment creates a treatment for the patient.
func (s *Service) AddTreatment(ctx context.Context, patientID int64, form TreatmentForm) (Treatment, error) {
	if err := form.validate(); err != nil {
		return Treatment{}, err
	}
	var resp idResponse
	path := fmt.Sprintf("/api/patients/%d/treatments", patientID)
	if err := s.api.Do(ctx, http.MethodPost, path, form, &resp); err != nil {
		return Treatment{}, err
	}
	return Treatment{
		ID:        resp.ID,
		PatientID: patientID,
		Symptoms:  form.Symptoms,
		Diagnosis: form.Diagnosis,
		Treatment: form.Treatment,
		Finished:  form.Finished,
		Date:      form.Date,
	}, nil
}

// UpdateTreatment rewrites an existing treatment.
func (s *Service) UpdateTreatment(ctx context.Context, patientID int64, form TreatmentForm) error {
	if err := form.validate(); err != nil {
		return err
	}
	if form.ID == 0 {
		return api.Validation("id", "treatment id is required")
	}
	path := fmt.Sprintf("/api/patients/%d/treatments/%d", patientID, form.ID)
	return s.api.Do(ctx, http.MethodPut, path, form, nil)
}

// RemoveTreatment deletes a treatment by id.
func (s *Service) RemoveTreatment(ctx context.Context, patientID, treatmentID int64) error {
	path := fmt.Sprintf("/api/patients/%d/treatments/%d", patientID, treatmentID)
	return s.api.Do(ctx, http.MethodDelete, path, nil, nil)
}

// PrescriptionRequest is the payload for issuing a prescription. Fee is
// computed by the caller from the medication's unit price.
type PrescriptionRequest struct {
	MedicationID int64   `json:"medication_id"`
	DoctorID     int64   `json:"doctor_id"`
	Quantity     int     `json:"quantity"`
	Fee          float64 `json:"fee"`
}

// AddPrescription issues a prescription for the patient.
func (s *Service) AddPrescription(ctx context.Context, patientID int64, req PrescriptionRequest) (Prescription, error) {
	if req.MedicationID == 0 {
		return Prescription{}, api.Validation("medication_id", "medication is required")
	}
	if req.DoctorID == 0 {
		return Prescription{}, api.Validation("doctor_id", "doctor is required")
	}
	if req.Quantity < 1 {
		return Prescription{}, api.Validation("quantity", "quantity must be at least 1")
	}
	var resp idResponse
	path := fmt.Sprintf("/api/patients/%d/prescriptions", patientID)
	if err := s.api.Do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return Prescription{}, err
	}
	s.logger.Info("prescription issued", "patient_id", patientID, "medication_id", req.MedicationID)
	return Prescription{
		ID:           resp.ID,
		PatientID:    patientID,
		MedicationID: req.MedicationID,
		DoctorID:     req.DoctorID,
		Quantity:     req.Quantity,
		Fee:          req.Fee,
	}, nil
}
