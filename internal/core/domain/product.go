package domain

// Product is a read-only snapshot of a catalog entry. The catalog store is
// authoritative; a snapshot held in a cart can be stale.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       int64  `json:"price"` // minor currency units
	Stock       int    `json:"stock"`
}
