package port

import (
	"context"

	"github.com/kevscue/storefront/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists the order header and returns the generated order ID
	CreateOrder(ctx context.Context, header domain.OrderHeader) (string, error)

	// CreateOrderLines persists one row per cart line under the given order
	CreateOrderLines(ctx context.Context, orderID string, lines []domain.OrderLine) error
}
