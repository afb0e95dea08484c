package port

import "context"

type Notifier interface {
	// Dispatch hands a formatted order summary to the delivery channel.
	// Delivery itself is opaque to the caller.
	Dispatch(ctx context.Context, message string) error
}
