package service

import (
	"fmt"
	"strings"

	"github.com/kevscue/storefront/internal/core/domain"
)

// FormatOrderSummary renders the human-readable order text handed to the
// notification sink: customer block, itemized lines, fee and total.
func FormatOrderSummary(sub domain.OrderSubmission) string {
	var b strings.Builder

	b.WriteString("🛍️ *NEW ORDER FROM KEV'SCUE BOUTIQUE* 🛍️\n\n")

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Identity.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Identity.Email)
	fmt.Fprintf(&b, "Phone: %s\n", sub.Identity.Phone)
	fmt.Fprintf(&b, "Delivery Address: %s\n", sub.Identity.Address)

	b.WriteString("\n*Order Summary:*\n")
	for _, l := range sub.Lines {
		fmt.Fprintf(&b, "• %s x%d - KSh %d\n", l.Product.Name, l.Quantity, l.LineTotal())
	}

	fmt.Fprintf(&b, "\n*Delivery Fee:* KSh %d\n", sub.DeliveryFee)
	fmt.Fprintf(&b, "*TOTAL:* KSh %d\n", sub.GrandTotal)

	b.WriteString("\nThank you for your order!\n")
	return b.String()
}
