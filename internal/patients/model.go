// Package patients manages patient records and their nested medical data.
package patients

import (
	"strconv"
	"strings"

	"github.com/clinicops/clinic-console/internal/api"
)

const defaultProfileImage = "Profile-Icon.png"

// Patient is one patient row with its nested medical sub-lists.
type Patient struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Age           int            `json:"age"`
	Gender        string         `json:"gender"`
	Contact       string         `json:"contact"`
	History       []HistoryEntry `json:"history,omitempty"`
	Treatments    []Treatment    `json:"treatments,omitempty"`
	Prescriptions []Prescription `json:"prescriptions,omitempty"`
	Image         string         `json:"image,omitempty"`
}

// HistoryEntry is one line of a patient's medical history. Entries carry a
// stable backend-assigned id and are always addressed by it; positional
// addressing breaks as soon as an earlier entry is deleted.
type HistoryEntry struct {
	ID   int64  `json:"id"`
	Note string `json:"note"`
	Date string `json:"date,omitempty"`
}

// Treatment is one treatment record owned by a patient.
type Treatment struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patient_id"`
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Finished  bool   `json:"finished"`
	Date      string `json:"date,omitempty"`
}

// Prescription is one prescription issued to a patient. Fee is derived from
// the medication's unit price and the prescribed quantity.
type Prescription struct {
	ID           int64   `json:"id"`
	PatientID    int64   `json:"patient_id"`
	MedicationID int64   `json:"medication_id"`
	DoctorID     int64   `json:"doctor_id"`
	Quantity     int     `json:"quantity"`
	Fee          float64 `json:"fee,omitempty"`
}

// PatientForm carries raw form input for create/update.
type PatientForm struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Age     string `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// Patient validates and coerces the form into a typed record.
func (f PatientForm) Patient() (Patient, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Patient{}, api.Validation("name", "name is required")
	}
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return Patient{}, api.Validation("age", "age must be a whole number")
	}
	if age < 0 {
		return Patient{}, api.Validation("age", "age must not be negative")
	}
	return Patient{
		ID:      f.ID,
		Name:    name,
		Age:     age,
		Gender:  strings.TrimSpace(f.Gender),
		Contact: strings.TrimSpace(f.Contact),
	}, nil
}

// Validate gates patients that bypass the form path.
func Validate(p Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return api.Validation("name", "name is required")
	}
	if p.Age < 0 {
		return api.Validation("age", "age must not be negative")
	}
	return nil
}

// Derive fills in display-only fields.
func Derive(p Patient) Patient {
	if p.Image == "" {
		p.Image = defaultProfileImage
	}
	return p
}

// SearchText lists the fields the patient search box matches on.
func SearchText(p Patient) []string {
	return []string{
		p.Name,
		strconv.FormatInt(p.ID, 10),
		strconv.Itoa(p.Age),
		p.Gender,
		p.Contact,
	}
}
