package port

import "context"

type SettingsRepository interface {
	// DeliveryFee returns the configured flat delivery surcharge
	DeliveryFee(ctx context.Context) (int64, error)
}
