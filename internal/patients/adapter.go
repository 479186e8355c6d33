package patients

import (
	"fmt"

	"github.com/clinicops/clinic-console/internal/syncer"
)

// Adapter wires the patient list into the generic synchronizer.
func Adapter() syncer.Adapter[Patient] {
	return syncer.Adapter[Patient]{
		Domain: "patients",
		Endpoints: syncer.Endpoints{
			List:   "/api/patients",
			Create: "/api/patients/add",
			Update: "/api/patients/update",
			DeletePath: func(id int64) string {
				return fmt.Sprintf("/api/patients/delete/%d", id)
			},
		},
		Validate:   Validate,
		Derive:     Derive,
		ID:         func(p Patient) int64 { return p.ID },
		WithID:     func(p Patient, id int64) Patient { p.ID = id; return p },
		SearchText: SearchText,
	}
}
