package cart

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Registry hands out one Store per visitor session. Stores are kept in a
// bounded LRU; an evicted store is rebuilt from Storage on next use.
type Registry struct {
	storage Storage
	logger  *zap.Logger
	stores  *lru.Cache
	sfg     singleflight.Group
	opts    []Option
}

// NewRegistry creates a registry holding at most size live stores. Extra
// options are applied to every store it creates.
func NewRegistry(storage Storage, size int, logger *zap.Logger, opts ...Option) (*Registry, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create store cache: %w", err)
	}
	return &Registry{
		storage: storage,
		logger:  logger,
		stores:  cache,
		opts:    opts,
	}, nil
}

// Get returns the store for sessionID, loading persisted items on first use.
// Load failures never surface: the visitor gets an empty cart. Corrupt data
// is replaced on the next save; any other failure yields a throwaway store
// that is neither cached nor persisted, so the saved cart survives until
// storage recovers.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	if v, ok := r.stores.Get(sessionID); ok {
		return v.(*Store)
	}

	// Callers share the load, so one caller's cancellation must not fail it
	// for the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, _, _ := r.sfg.Do(sessionID, func() (interface{}, error) {
		if v, ok := r.stores.Get(sessionID); ok {
			return v, nil
		}

		key := StorageKey(sessionID)
		items, err := r.storage.Load(loadCtx, key)
		switch {
		case errors.Is(err, ErrCorruptCart):
			r.logger.Error("corrupt cart discarded",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			items = nil
		case err != nil:
			r.logger.Warn("load cart failed, serving a temporary cart",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			return NewStore(append([]Option{WithItems(nil)}, r.opts...)...), nil
		}

		opts := append([]Option{WithItems(items)}, r.opts...)
		opts = append(opts, WithCommitter(PersistItems(r.storage, key, r.logger)))
		store := NewStore(opts...)
		r.stores.Add(sessionID, store)
		return store, nil
	})
	return v.(*Store)
}

// Len reports how many stores are currently live.
func (r *Registry) Len() int {
	return r.stores.Len()
}
