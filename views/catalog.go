package views

import "dessert-cart/models"

// CatalogRow is one product tile. AddName is the value posted by its add action.
type CatalogRow struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	AddName  string `json:"add_name"`
}

type CatalogView struct {
	Rows        []CatalogRow `json:"rows"`
	Unavailable bool         `json:"unavailable"`
}

// NewCatalogView builds one row per product. A non-nil loadErr marks the
// catalog unavailable; the rows are then empty.
func NewCatalogView(products []models.Product, loadErr error) CatalogView {
	if loadErr != nil {
		return CatalogView{Rows: []CatalogRow{}, Unavailable: true}
	}

	rows := make([]CatalogRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, CatalogRow{
			Name:     p.Name,
			Category: p.Category,
			Price:    FormatPrice(p.Price),
			Image:    p.Image.Mobile,
			AddName:  p.Name,
		})
	}
	return CatalogView{Rows: rows}
}
