package models

// Product is a monitored product registered through the API.
// Table: products.json. Identity is ProductURL; rows are immutable except for
// deletion, which cascades to snapshots and reports.
type Product struct {
	ID         int     `json:"id"`
	ProductURL string  `json:"product_url"`
	Name       *string `json:"name"`
	CreatedAt  string  `json:"created_at"`
}

// Label returns the human label for a product: name, else url, else "-".
func (p Product) Label() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	if p.ProductURL != "" {
		return p.ProductURL
	}
	return "-"
}
