package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/clinic-console/internal/api"
)

func TestItemFormCoercion(t *testing.T) {
	tests := []struct {
		name      string
		form      ItemForm
		wantErr   string // offending field, empty for success
		wantQty   int
		wantPrice float64
	}{
		{
			name:      "valid input",
			form:      ItemForm{Name: "Aspirin", Quantity: "10", Category: "Analgesics", UnitPrice: "2.5"},
			wantQty:   10,
			wantPrice: 2.5,
		},
		{
			name:      "whitespace trimmed",
			form:      ItemForm{Name: " Aspirin ", Quantity: " 10 ", Category: "Analgesics", UnitPrice: " 2.5 "},
			wantQty:   10,
			wantPrice: 2.5,
		},
		{
			name:    "missing name",
			form:    ItemForm{Name: "", Quantity: "abc", Category: "X", UnitPrice: "10"},
			wantErr: "name",
		},
		{
			name:    "non-numeric quantity",
			form:    ItemForm{Name: "Aspirin", Quantity: "abc", Category: "X", UnitPrice: "10"},
			wantErr: "quantity",
		},
		{
			name:    "negative quantity",
			form:    ItemForm{Name: "Aspirin", Quantity: "-1", Category: "X", UnitPrice: "10"},
			wantErr: "quantity",
		},
		{
			name:    "non-numeric unit price",
			form:    ItemForm{Name: "Aspirin", Quantity: "5", Category: "X", UnitPrice: "cheap"},
			wantErr: "unit_price",
		},
		{
			name:    "missing category",
			form:    ItemForm{Name: "Aspirin", Quantity: "5", Category: "  ", UnitPrice: "1"},
			wantErr: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := tt.form.Item()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, api.IsValidation(err))
				var apiErr *api.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantErr, apiErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, item.Quantity)
			assert.Equal(t, tt.wantPrice, item.UnitPrice)
		})
	}
}

func TestDerive(t *testing.T) {
	item := Derive(Item{Name: "Aspirin", Quantity: 10, Category: "Analgesics", UnitPrice: 2.5})
	assert.Equal(t, 25.0, item.TotalValue)
	assert.Equal(t, "analgesics.png", item.Image)
}

func TestCategoryImageFallback(t *testing.T) {
	assert.Equal(t, "vaccines.png", CategoryImage("Vaccines"))
	assert.Equal(t, "drug.svg", CategoryImage("Unknown Category"))
}

func TestAdapterDeleteUsesBody(t *testing.T) {
	adapter := Adapter()
	assert.Equal(t, removePath, adapter.Endpoints.DeletePath(42))
	assert.Equal(t, map[string]int64{"inventoryId": 42}, adapter.Endpoints.DeleteBody(42))
}

func TestSearchTextFields(t *testing.T) {
	fields := SearchText(Item{ID: 3, Name: "Gauze", Quantity: 50, Category: "Supplies"})
	assert.Equal(t, []string{"Gauze", "3", "50", "Supplies"}, fields)
}
