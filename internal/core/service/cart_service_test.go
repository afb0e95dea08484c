package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevscue/storefront/internal/core/domain"
)

type memSnapshotRepo struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saveErr error
	loadErr error
	saves   int
}

func newMemSnapshotRepo() *memSnapshotRepo {
	return &memSnapshotRepo{blobs: make(map[string][]byte)}
}

func (m *memSnapshotRepo) Save(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (m *memSnapshotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	blob, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	return blob, nil
}

var (
	dress = domain.Product{ID: "1", Name: "Floral Summer Dress", Category: "dresses", Price: 2500, Stock: 15}
	jeans = domain.Product{ID: "6", Name: "Slim Fit Jeans", Category: "bottoms", Price: 2200, Stock: 25}
)

func newTestCart(t *testing.T) (*CartService, *memSnapshotRepo) {
	t.Helper()
	repo := newMemSnapshotRepo()
	cart := NewCartService(context.Background(), repo, "test", zerolog.Nop())
	return cart, repo
}

func TestAddItem_MergesAndCaps(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	line, capped := cart.AddItem(ctx, dress, 2)
	require.False(t, capped)
	assert.Equal(t, 2, line.Quantity)

	// Merging 20 more into the existing 2 hits the stock ceiling of 15.
	line, capped = cart.AddItem(ctx, dress, 20)
	assert.True(t, capped)
	assert.Equal(t, 15, line.Quantity)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 15, lines[0].Quantity)
}

func TestAddItem_NewLineClampedToStock(t *testing.T) {
	cart, _ := newTestCart(t)

	line, capped := cart.AddItem(context.Background(), jeans, 30)
	assert.True(t, capped)
	assert.Equal(t, 25, line.Quantity)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	cart, repo := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, dress, 1)
	savesBefore := repo.saves

	cart.RemoveItem(ctx, "no-such-product")

	assert.Len(t, cart.Lines(), 1)
	assert.Equal(t, savesBefore, repo.saves)
}

func TestSetQuantity(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, jeans, 1)

	line, capped := cart.SetQuantity(ctx, jeans.ID, 5)
	require.False(t, capped)
	assert.Equal(t, 5, line.Quantity)

	line, capped = cart.SetQuantity(ctx, jeans.ID, 100)
	assert.True(t, capped)
	assert.Equal(t, 25, line.Quantity)

	// Unknown product is a no-op.
	_, capped = cart.SetQuantity(ctx, "no-such-product", 3)
	assert.False(t, capped)
	assert.Len(t, cart.Lines(), 1)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, dress, 2)

	cart.SetQuantity(ctx, dress.ID, 0)

	assert.Empty(t, cart.Lines())
	assert.Equal(t, 0, cart.Count())
}

func TestTotals(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	assert.Equal(t, int64(0), cart.Total())
	assert.Equal(t, 0, cart.Count())

	cart.AddItem(ctx, dress, 2)
	cart.AddItem(ctx, jeans, 1)

	assert.Equal(t, int64(2*2500+2200), cart.Total())
	assert.Equal(t, 3, cart.Count())
}

func TestClear(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, dress, 2)

	cart.Clear(ctx)

	assert.Empty(t, cart.Lines())
	assert.Equal(t, int64(0), cart.Total())
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemSnapshotRepo()

	first := NewCartService(ctx, repo, "test", zerolog.Nop())
	first.AddItem(ctx, dress, 2)
	first.AddItem(ctx, jeans, 3)

	restored := NewCartService(ctx, repo, "test", zerolog.Nop())

	want := map[string]int{dress.ID: 2, jeans.ID: 3}
	got := map[string]int{}
	for _, l := range restored.Lines() {
		got[l.Product.ID] = l.Quantity
	}
	assert.Equal(t, want, got)
	assert.Equal(t, first.Total(), restored.Total())
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newMemSnapshotRepo()
	repo.blobs["test"] = []byte("{not json")

	cart := NewCartService(ctx, repo, "test", zerolog.Nop())

	assert.Empty(t, cart.Lines())

	// The cart stays usable after the discarded snapshot.
	line, _ := cart.AddItem(ctx, dress, 1)
	assert.Equal(t, 1, line.Quantity)
}

func TestSnapshotLoadErrorStartsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newMemSnapshotRepo()
	repo.loadErr = assert.AnError

	cart := NewCartService(ctx, repo, "test", zerolog.Nop())

	assert.Empty(t, cart.Lines())
}

func TestPersistsAfterEveryMutation(t *testing.T) {
	cart, repo := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, dress, 1)
	cart.SetQuantity(ctx, dress.ID, 3)
	cart.RemoveItem(ctx, dress.ID)
	cart.Clear(ctx)

	assert.Equal(t, 4, repo.saves)
}

func TestSaveFailureDoesNotBlockMutation(t *testing.T) {
	cart, repo := newTestCart(t)
	repo.saveErr = assert.AnError

	line, _ := cart.AddItem(context.Background(), dress, 2)

	assert.Equal(t, 2, line.Quantity)
	assert.Len(t, cart.Lines(), 1)
}

func TestLinesReturnsCopy(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddItem(context.Background(), dress, 2)

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}
