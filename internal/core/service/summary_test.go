package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevscue/storefront/internal/core/domain"
)

func TestFormatOrderSummary(t *testing.T) {
	sub := domain.OrderSubmission{
		Identity: domain.CheckoutIdentity{
			CustomerID: "cust-1",
			Name:       "Jane Wanjiku",
			Email:      "jane@example.com",
			Phone:      "254711111111",
			Address:    "Moi Avenue 12, Nairobi",
		},
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "1", Name: "Floral Summer Dress", Price: 2500}, Quantity: 2},
			{Product: domain.Product{ID: "6", Name: "Slim Fit Jeans", Price: 2200}, Quantity: 1},
		},
		Subtotal:    7200,
		DeliveryFee: 150,
		GrandTotal:  7350,
	}

	msg := FormatOrderSummary(sub)

	assert.Contains(t, msg, "NEW ORDER FROM KEV'SCUE BOUTIQUE")
	assert.Contains(t, msg, "Name: Jane Wanjiku")
	assert.Contains(t, msg, "Email: jane@example.com")
	assert.Contains(t, msg, "Phone: 254711111111")
	assert.Contains(t, msg, "Delivery Address: Moi Avenue 12, Nairobi")
	assert.Contains(t, msg, "• Floral Summer Dress x2 - KSh 5000")
	assert.Contains(t, msg, "• Slim Fit Jeans x1 - KSh 2200")
	assert.Contains(t, msg, "*Delivery Fee:* KSh 150")
	assert.Contains(t, msg, "*TOTAL:* KSh 7350")
	assert.Contains(t, msg, "Thank you for your order!")
}
