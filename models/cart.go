package models

// CartLine is one product entry in a user's server-side cart. The name,
// image and unit price here are display hints only; checkout re-reads the
// catalog for authoritative prices.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the per-user cart stored in Redis, keyed by user id.
type Cart struct {
	UserID string     `json:"user_id"`
	Lines  []CartLine `json:"lines"`
}

// IsEmpty reports whether the cart holds no purchasable lines.
func (c *Cart) IsEmpty() bool {
	for _, l := range c.Lines {
		if l.Quantity > 0 {
			return false
		}
	}
	return true
}
