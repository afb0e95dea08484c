package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/kevscue/storefront/internal/core/domain"
	"github.com/kevscue/storefront/internal/port"
)

var (
	ErrOrderPersist     = errors.New("order header persist failed")
	ErrLineItemPersist  = errors.New("order line persist failed")
	ErrSubmitInProgress = errors.New("order submission already in progress")
)

// OrderService runs the submission pipeline: order header, order lines,
// best-effort stock decrements, notification, cart clear — strictly in that
// order.
type OrderService struct {
	orders   port.OrderRepository
	catalog  port.CatalogRepository
	notifier port.Notifier
	cart     *CartService
	inFlight atomic.Bool
	logger   zerolog.Logger
}

func NewOrderService(orders port.OrderRepository, catalog port.CatalogRepository, notifier port.Notifier, cart *CartService, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		catalog:  catalog,
		notifier: notifier,
		cart:     cart,
		logger:   logger,
	}
}

// Submit executes the pipeline for one assembled submission. A second call
// while one is running (a double-click, typically) is rejected with
// ErrSubmitInProgress instead of double-submitting.
//
// Header and line persistence are fatal: failure aborts the pipeline and the
// cart is kept so the shopper can retry. A line failure leaves the header
// behind — accepted inconsistency, reconciled out of band. Stock decrements
// and the notification are best-effort: failures are logged, the order still
// completes and the cart is cleared.
func (s *OrderService) Submit(ctx context.Context, sub domain.OrderSubmission) (domain.OrderReceipt, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.OrderReceipt{}, ErrSubmitInProgress
	}
	defer s.inFlight.Store(false)

	orderID, err := s.orders.CreateOrder(ctx, domain.OrderHeader{
		CustomerID:      sub.Identity.CustomerID,
		Subtotal:        sub.Subtotal,
		DeliveryFee:     sub.DeliveryFee,
		DeliveryAddress: sub.Identity.Address,
	})
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("%w: %w", ErrOrderPersist, err)
	}

	lines := make([]domain.OrderLine, 0, len(sub.Lines))
	for _, l := range sub.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID:    l.Product.ID,
			ProductName:  l.Product.Name,
			ProductPrice: l.Product.Price,
			Quantity:     l.Quantity,
		})
	}
	if err := s.orders.CreateOrderLines(ctx, orderID, lines); err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("%w: %w", ErrLineItemPersist, err)
	}

	for _, l := range sub.Lines {
		if _, err := s.catalog.DecrementStock(ctx, l.Product.ID, l.Quantity); err != nil {
			s.logger.Warn().Err(err).
				Str("order_id", orderID).
				Str("product_id", l.Product.ID).
				Int("quantity", l.Quantity).
				Msg("stock decrement skipped")
		}
	}

	sent := true
	if err := s.notifier.Dispatch(ctx, FormatOrderSummary(sub)); err != nil {
		sent = false
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("order notification dispatch failed")
	}

	s.cart.Clear(ctx)

	s.logger.Info().
		Str("order_id", orderID).
		Str("customer_id", sub.Identity.CustomerID).
		Int64("grand_total", sub.GrandTotal).
		Msg("order placed")

	return domain.OrderReceipt{
		OrderID:          orderID,
		GrandTotal:       sub.GrandTotal,
		NotificationSent: sent,
	}, nil
}
