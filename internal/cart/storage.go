package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// KeyPrefix namespaces persisted carts.
const KeyPrefix = "threadrot_cart"

var ErrCorruptCart = errors.New("corrupt cart data")

// Storage persists the items of a cart. Only Items are stored; the open flag
// and the applied discount live in memory.
type Storage interface {
	Load(ctx context.Context, key string) ([]LineItem, error)
	Save(ctx context.Context, key string, items []LineItem) error
}

// StorageKey returns the storage key for a visitor session.
func StorageKey(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}

func encodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// decodeItems parses a stored JSON array. Rows without an id or product id
// are dropped and quantities are clamped.
func decodeItems(data []byte) ([]LineItem, error) {
	var raw []LineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	items := make([]LineItem, 0, len(raw))
	for _, it := range raw {
		if it.ID == "" || it.ProductID == "" {
			continue
		}
		it.Quantity = clampQuantity(it.Quantity)
		items = append(items, it)
	}
	return items, nil
}

// MemoryStorage keeps encoded carts in process memory.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]LineItem, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeItems(raw)
}

func (m *MemoryStorage) Save(_ context.Context, key string, items []LineItem) error {
	raw, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// PersistItems returns a Committer that saves Items under key after every
// item-touching action. Save failures are logged and otherwise ignored.
func PersistItems(storage Storage, key string, logger *zap.Logger) Committer {
	return CommitterFunc(func(ctx context.Context, _, next State, a Action) {
		if !a.TouchesItems() {
			return
		}
		if err := storage.Save(ctx, key, next.Items); err != nil {
			logger.Warn("persist cart failed",
				zap.String("key", key),
				zap.Int("items", len(next.Items)),
				zap.Error(err),
			)
		}
	})
}
