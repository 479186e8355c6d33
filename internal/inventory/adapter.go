package inventory

import (
	"github.com/clinicops/clinic-console/internal/syncer"
)

// The backend addresses inventory deletes by body, not path.
const removePath = "/api/inventory/remove"

// Adapter wires the inventory domain into the generic synchronizer.
func Adapter() syncer.Adapter[Item] {
	return syncer.Adapter[Item]{
		Domain: "inventory",
		Endpoints: syncer.Endpoints{
			List:       "/api/supplies",
			Create:     "/api/inventory/add",
			Update:     "/api/inventory/update",
			DeletePath: func(int64) string { return removePath },
			DeleteBody: func(id int64) interface{} {
				return map[string]int64{"inventoryId": id}
			},
		},
		Validate:   Validate,
		Derive:     Derive,
		ID:         func(it Item) int64 { return it.ID },
		WithID:     func(it Item, id int64) Item { it.ID = id; return it },
		SearchText: SearchText,
	}
}
