package appointments

import (
	"fmt"

	"github.com/clinicops/clinic-console/internal/syncer"
)

// Adapter wires the appointment list into the generic synchronizer. The
// backend joins patient and doctor names onto each row, so creates refetch
// the list instead of patching in the bare echo.
func Adapter() syncer.Adapter[Appointment] {
	return syncer.Adapter[Appointment]{
		Domain: "appointments",
		Endpoints: syncer.Endpoints{
			List:   "/api/appointments",
			Create: "/api/appointments/add",
			Update: "/api/appointments/update",
			DeletePath: func(id int64) string {
				return fmt.Sprintf("/api/appointments/delete/%d", id)
			},
		},
		Validate:           Validate,
		Derive:             Derive,
		ID:                 func(a Appointment) int64 { return a.ID },
		WithID:             func(a Appointment, id int64) Appointment { a.ID = id; return a },
		SearchText:         SearchText,
		RefetchAfterCreate: true,
	}
}
