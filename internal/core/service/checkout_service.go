package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kevscue/storefront/internal/core/domain"
	"github.com/kevscue/storefront/internal/port"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCart        = errors.New("cart is empty")
)

// CheckoutService turns the current cart and a customer identity into an
// immutable order submission.
type CheckoutService struct {
	settings   port.SettingsRepository
	defaultFee int64
	logger     zerolog.Logger
}

func NewCheckoutService(settings port.SettingsRepository, defaultFee int64, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		settings:   settings,
		defaultFee: defaultFee,
		logger:     logger,
	}
}

// DeliveryFee reads the flat delivery surcharge from the settings store,
// falling back to the configured default when the lookup fails.
func (s *CheckoutService) DeliveryFee(ctx context.Context) int64 {
	fee, err := s.settings.DeliveryFee(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Int64("default_fee", s.defaultFee).Msg("delivery fee lookup failed, using default")
		return s.defaultFee
	}
	return fee
}

// Assemble validates the checkout preconditions and snapshots the cart into
// an OrderSubmission. Identity is checked before the cart: an unauthenticated
// shopper with an empty cart gets ErrNotAuthenticated. The cart itself is not
// mutated.
func (s *CheckoutService) Assemble(cart *CartService, identity domain.CheckoutIdentity, deliveryFee int64) (domain.OrderSubmission, error) {
	if identity.CustomerID == "" {
		return domain.OrderSubmission{}, ErrNotAuthenticated
	}

	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.OrderSubmission{}, ErrEmptyCart
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.LineTotal()
	}

	return domain.OrderSubmission{
		Identity:    identity,
		Lines:       lines,
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		GrandTotal:  subtotal + deliveryFee,
	}, nil
}
