package domain

// CartLine is one product-plus-quantity entry in the cart. Lines are unique
// by product ID; adding the same product again merges into the existing line.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}
