package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Namespace prefixes every persisted cart key.
const Namespace = "ace-store-cart"

// ErrCorruptState marks stored cart bytes that no longer parse. The service
// recovers from it by resetting to an empty cart; it is never surfaced to
// callers as a failure.
var ErrCorruptState = errors.New("stored cart state is corrupt")

// Store persists the full line-item sequence of a session's cart. The wire
// format is a JSON array of line items, exactly the aggregate's shape.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
}

func marshalItems(c *Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return data, nil
}

func unmarshalItems(data []byte) (*Cart, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &Cart{Items: items}, nil
}

// MemoryStore keeps serialized carts in a map. It round-trips through the
// same JSON encoding as the redis store so tests exercise real serialization.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.carts[sessionID]
	if !ok {
		return New(), nil
	}
	return unmarshalItems(data)
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	data, err := marshalItems(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = data
	return nil
}

// SeedRaw plants raw bytes under a session key, bypassing serialization.
// Tests use it to simulate corrupt stored state.
func (m *MemoryStore) SeedRaw(sessionID string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = data
}
