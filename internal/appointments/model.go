// Package appointments manages the clinic appointment schedule.
package appointments

import (
	"strconv"
	"strings"
	"time"

	"github.com/clinicops/clinic-console/internal/api"
)

// Status is an appointment lifecycle state.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// Valid reports whether s is one of the four known states.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// statusColors matches the dashboard's row tinting.
var statusColors = map[Status]string{
	StatusScheduled: "#3498db",
	StatusCompleted: "#2ecc71",
	StatusCancelled: "#e74c3c",
	StatusNoShow:    "#f39c12",
}

const defaultStatusColor = "#95a5a6"

// StatusColor returns the display color for a status.
func StatusColor(s Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultStatusColor
}

// Appointment is one schedule row. PatientName and DoctorName are resolved
// by the backend; the formatted fields and color are derived locally.
type Appointment struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	DoctorID    int64  `json:"doctor_id"`
	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      Status `json:"status"`

	DateFormatted string `json:"date_formatted,omitempty"`
	TimeFormatted string `json:"time_formatted,omitempty"`
	StatusColor   string `json:"status_color,omitempty"`
}

// Form carries raw form input for create/update.
type Form struct {
	ID        int64  `json:"id,omitempty"`
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// Appointment validates and coerces the form. New appointments always start
// out scheduled; status changes go through the status operation.
func (f Form) Appointment() (Appointment, error) {
	patientID, err := strconv.ParseInt(strings.TrimSpace(f.PatientID), 10, 64)
	if err != nil || patientID <= 0 {
		return Appointment{}, api.Validation("patient_id", "patient is required")
	}
	doctorID, err := strconv.ParseInt(strings.TrimSpace(f.DoctorID), 10, 64)
	if err != nil || doctorID <= 0 {
		return Appointment{}, api.Validation("doctor_id", "doctor is required")
	}
	date := strings.TrimSpace(f.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Appointment{}, api.Validation("date", "date must be YYYY-MM-DD")
	}
	at := strings.TrimSpace(f.Time)
	if _, err := time.Parse("15:04", clipTime(at)); err != nil {
		return Appointment{}, api.Validation("time", "time must be HH:MM")
	}
	return Appointment{
		ID:        f.ID,
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      at,
		Status:    StatusScheduled,
	}, nil
}

// Validate gates appointments that bypass the form path.
func Validate(a Appointment) error {
	if a.PatientID <= 0 {
		return api.Validation("patient_id", "patient is required")
	}
	if a.DoctorID <= 0 {
		return api.Validation("doctor_id", "doctor is required")
	}
	if strings.TrimSpace(a.Date) == "" {
		return api.Validation("date", "date is required")
	}
	if strings.TrimSpace(a.Time) == "" {
		return api.Validation("time", "time is required")
	}
	if a.Status != "" && !a.Status.Valid() {
		return api.Validation("status", "unknown status "+string(a.Status))
	}
	return nil
}

// Derive fills in the display-only fields.
func Derive(a Appointment) Appointment {
	if parsed, err := time.Parse("2006-01-02", a.Date); err == nil {
		a.DateFormatted = parsed.Format("01/02/2006")
	}
	a.TimeFormatted = clipTime(a.Time)
	a.StatusColor = StatusColor(a.Status)
	return a
}

// SearchText lists the fields the appointment search box matches on.
func SearchText(a Appointment) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.PatientName,
		a.DoctorName,
		a.Date,
		a.Time,
		string(a.Status),
	}
}

// clipTime drops seconds from HH:MM:SS values.
func clipTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
