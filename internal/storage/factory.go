package storage

import (
	"fmt"

	"github.com/mhzindev/sunsetflow/internal/store"
	"github.com/mhzindev/sunsetflow/internal/storage/memory"
)

// NewStore builds the persistence backend selected by cfg.
func NewStore(cfg store.Config) (*store.Result, error) {
	switch cfg.Type {
	case store.SQLiteBackend:
		repo, err := NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("create sqlite store: %w", err)
		}
		return &store.Result{Store: repo, Cleanup: repo.Close}, nil
	case store.MemoryBackend:
		repo := memory.NewRepository()
		return &store.Result{Store: repo, Cleanup: repo.Close}, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Type)
	}
}
