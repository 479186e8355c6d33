package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/clinic-console/internal/api"
)

func TestFormCoercion(t *testing.T) {
	tests := []struct {
		name    string
		form    Form
		wantErr string
	}{
		{
			name: "valid input",
			form: Form{PatientID: "4", DoctorID: "2", Date: "2026-09-01", Time: "09:30"},
		},
		{
			name: "time with seconds",
			form: Form{PatientID: "4", DoctorID: "2", Date: "2026-09-01", Time: "09:30:00"},
		},
		{
			name:    "missing patient",
			form:    Form{DoctorID: "2", Date: "2026-09-01", Time: "09:30"},
			wantErr: "patient_id",
		},
		{
			name:    "non-numeric doctor",
			form:    Form{PatientID: "4", DoctorID: "dr smith", Date: "2026-09-01", Time: "09:30"},
			wantErr: "doctor_id",
		},
		{
			name:    "bad date",
			form:    Form{PatientID: "4", DoctorID: "2", Date: "09/01/2026", Time: "09:30"},
			wantErr: "date",
		},
		{
			name:    "bad time",
			form:    Form{PatientID: "4", DoctorID: "2", Date: "2026-09-01", Time: "half past nine"},
			wantErr: "time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.form.Appointment()
			if tt.wantErr != "" {
				var apiErr *api.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, api.KindValidation, apiErr.Kind)
				assert.Equal(t, tt.wantErr, apiErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusScheduled, a.Status)
			assert.Equal(t, int64(4), a.PatientID)
		})
	}
}

func TestDeriveFormatsAndColors(t *testing.T) {
	a := Derive(Appointment{Date: "2026-09-01", Time: "09:30:00", Status: StatusScheduled})
	assert.Equal(t, "09/01/2026", a.DateFormatted)
	assert.Equal(t, "09:30", a.TimeFormatted)
	assert.Equal(t, "#3498db", a.StatusColor)
}

func TestStatusColorFallback(t *testing.T) {
	assert.Equal(t, "#2ecc71", StatusColor(StatusCompleted))
	assert.Equal(t, "#e74c3c", StatusColor(StatusCancelled))
	assert.Equal(t, "#f39c12", StatusColor(StatusNoShow))
	assert.Equal(t, "#95a5a6", StatusColor(Status("rescheduled")))
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	err := Validate(Appointment{PatientID: 1, DoctorID: 1, Date: "2026-09-01", Time: "09:30", Status: "pending"})
	assert.True(t, api.IsValidation(err))
}
