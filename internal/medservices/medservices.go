// Package medservices drives the medical services screen: the medication
// catalog and prescription fee quoting.
package medservices

import (
	"context"
	"math"
	"net/http"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/patients"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Doer issues authenticated JSON requests. Satisfied by *api.Client.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Medication is one catalog row.
type Medication struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Service fetches the catalog and prices prescriptions.
type Service struct {
	api    Doer
	logger *logging.Logger
}

// NewService creates a medical services service.
func NewService(client Doer, logger *logging.Logger) *Service {
	if client == nil {
		panic("medservices: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: client, logger: logger}
}

// Medications lists the prescribable catalog.
func (s *Service) Medications(ctx context.Context) ([]Medication, error) {
	var list []Medication
	if err := s.api.Do(ctx, http.MethodGet, "/api/medications", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Fee quotes a prescription at unit price times quantity, rounded to cents.
func Fee(m Medication, quantity int) float64 {
	return math.Round(m.UnitPrice*float64(quantity)*100) / 100
}

// NewPrescription builds a priced prescription request for the medication.
func NewPrescription(m Medication, doctorID int64, quantity int) (patients.PrescriptionRequest, error) {
	if m.ID == 0 {
		return patients.PrescriptionRequest{}, api.Validation("medication_id", "medication is required")
	}
	if quantity < 1 {
		return patients.PrescriptionRequest{}, api.Validation("quantity", "quantity must be at least 1")
	}
	if m.Quantity > 0 && quantity > m.Quantity {
		return patients.PrescriptionRequest{}, api.Validation("quantity", "quantity exceeds available stock")
	}
	return patients.PrescriptionRequest{
		MedicationID: m.ID,
		DoctorID:     doctorID,
		Quantity:     quantity,
		Fee:          Fee(m, quantity),
	}, nil
}
