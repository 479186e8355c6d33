package patients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/clinic-console/internal/api"
)

func TestPatientFormCoercion(t *testing.T) {
	tests := []struct {
		name    string
		form    PatientForm
		wantErr string
		wantAge int
	}{
		{
			name:    "valid input",
			form:    PatientForm{Name: "Jane Doe", Age: "40", Gender: "female", Contact: "555-0101"},
			wantAge: 40,
		},
		{
			name:    "missing name",
			form:    PatientForm{Name: "  ", Age: "40"},
			wantErr: "name",
		},
		{
			name:    "non-numeric age",
			form:    PatientForm{Name: "Jane Doe", Age: "forty"},
			wantErr: "age",
		},
		{
			name:    "negative age",
			form:    PatientForm{Name: "Jane Doe", Age: "-3"},
			wantErr: "age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.form.Patient()
			if tt.wantErr != "" {
				require.Error(t, err)
				var apiErr *api.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, api.KindValidation, apiErr.Kind)
				assert.Equal(t, tt.wantErr, apiErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAge, p.Age)
		})
	}
}

func TestDeriveDefaultsProfileImage(t *testing.T) {
	p := Derive(Patient{Name: "Jane Doe"})
	assert.Equal(t, "Profile-Icon.png", p.Image)

	custom := Derive(Patient{Name: "Jane Doe", Image: "jane.png"})
	assert.Equal(t, "jane.png", custom.Image)
}

func TestSearchTextFields(t *testing.T) {
	fields := SearchText(Patient{ID: 2, Name: "John Roe", Age: 22, Gender: "male", Contact: "555-0102"})
	assert.Equal(t, []string{"John Roe", "2", "22", "male", "555-0102"}, fields)
}
