package port

import "context"

// SnapshotRepository is generic key-value persistence used to carry the cart
// across process restarts.
type SnapshotRepository interface {
	// Save writes the snapshot blob under key, replacing any previous value
	Save(ctx context.Context, key string, blob []byte) error

	// Load reads the snapshot under key, nil when none exists
	Load(ctx context.Context, key string) ([]byte, error)
}
