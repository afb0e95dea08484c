package domain

// Customer is the profile held by the external customer store.
type Customer struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

// CheckoutIdentity is who the order is for. An empty CustomerID means the
// shopper is not authenticated.
type CheckoutIdentity struct {
	CustomerID string
	Name       string
	Email      string
	Phone      string
	Address    string
}

// OrderHeader is what gets persisted as the order row.
type OrderHeader struct {
	CustomerID      string
	Subtotal        int64
	DeliveryFee     int64
	DeliveryAddress string
}

// OrderLine is one persisted order-item row.
type OrderLine struct {
	ProductID    string
	ProductName  string
	ProductPrice int64
	Quantity     int
}

// OrderSubmission is the immutable record produced once per checkout attempt:
// a deep copy of the cart lines plus the identity and computed totals. It is
// not retained after the pipeline finishes; the durable record lives in the
// order store.
type OrderSubmission struct {
	Identity    CheckoutIdentity
	Lines       []CartLine
	Subtotal    int64
	DeliveryFee int64
	GrandTotal  int64
}

// OrderReceipt reports a completed submission.
type OrderReceipt struct {
	OrderID          string
	GrandTotal       int64
	NotificationSent bool
}
