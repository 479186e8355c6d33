// Package inventory manages the pharmacy supply list.
package inventory

import (
	"strconv"
	"strings"

	"github.com/clinicops/clinic-console/internal/api"
)

// Item is one pharmacy supply row. TotalValue and Image are derived for
// display and never sent back to the backend as authoritative data.
type Item struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Category   string  `json:"category"`
	UnitPrice  float64 `json:"unit_price"`
	TotalValue float64 `json:"total_value,omitempty"`
	Image      string  `json:"image,omitempty"`
}

// categoryImages maps pharmaceutical categories to their icon assets.
var categoryImages = map[string]string{
	"Antibiotics":       "antibiotics.png",
	"Analgesics":        "analgesics.png",
	"Antidepressants":   "antidepressants.png",
	"Antihypertensives": "antihypertensives.png",
	"Antihistamines":    "antihistamines.png",
	"Anti-inflammatory": "anti-inflammatory.png",
	"Vaccines":          "vaccines.png",
	"Pain Relief":       "analgesics.png",
	"Cold & Flu":        "antihistamines.png",
	"Allergy Relief":    "antihistamines.png",
	"Cardiovascular":    "antihypertensives.png",
}

const defaultCategoryImage = "drug.svg"

// CategoryImage returns the icon for a category, falling back to the
// generic drug image.
func CategoryImage(category string) string {
	if img, ok := categoryImages[category]; ok {
		return img
	}
	return defaultCategoryImage
}

// ItemForm carries raw form input. Numeric fields arrive as strings from
// the modal forms and are coerced here, before any network call.
type ItemForm struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Category  string `json:"category"`
	UnitPrice string `json:"unit_price"`
}

// Item validates and coerces the form into a typed record.
func (f ItemForm) Item() (Item, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Item{}, api.Validation("name", "name is required")
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return Item{}, api.Validation("category", "category is required")
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		return Item{}, api.Validation("quantity", "quantity must be a whole number")
	}
	if quantity < 0 {
		return Item{}, api.Validation("quantity", "quantity must not be negative")
	}
	unitPrice, err := strconv.ParseFloat(strings.TrimSpace(f.UnitPrice), 64)
	if err != nil {
		return Item{}, api.Validation("unit_price", "unit price must be a number")
	}
	if unitPrice < 0 {
		return Item{}, api.Validation("unit_price", "unit price must not be negative")
	}
	return Item{
		ID:        f.ID,
		Name:      name,
		Quantity:  quantity,
		Category:  category,
		UnitPrice: unitPrice,
	}, nil
}

// Validate gates items that bypass the form path.
func Validate(it Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return api.Validation("name", "name is required")
	}
	if strings.TrimSpace(it.Category) == "" {
		return api.Validation("category", "category is required")
	}
	if it.Quantity < 0 {
		return api.Validation("quantity", "quantity must not be negative")
	}
	if it.UnitPrice < 0 {
		return api.Validation("unit_price", "unit price must not be negative")
	}
	return nil
}

// Derive fills in the display-only fields.
func Derive(it Item) Item {
	it.TotalValue = float64(it.Quantity) * it.UnitPrice
	it.Image = CategoryImage(it.Category)
	return it
}

// SearchText lists the fields the inventory search box matches on.
func SearchText(it Item) []string {
	return []string{
		it.Name,
		strconv.FormatInt(it.ID, 10),
		strconv.Itoa(it.Quantity),
		it.Category,
	}
}
