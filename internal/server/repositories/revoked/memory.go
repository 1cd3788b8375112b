package revoked

import (
	"context"
	"sync"
	"time"

	"github.com/andrejsk/placemark/internal/common"
)

// MemoryRepository is an in-process revocation set. It backs tests and
// single-node runs without a database; entries are lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryRepository constructs an empty in-memory revocation set.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]time.Time)}
}

func (r *MemoryRepository) Revoke(_ context.Context, fingerprint string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[fingerprint]; ok {
		return common.ErrAlreadyRevoked
	}
	r.entries[fingerprint] = expiresAt
	return nil
}

func (r *MemoryRepository) IsRevoked(_ context.Context, fingerprint string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[fingerprint]
	return ok, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var n int64
	for fp, exp := range r.entries {
		if exp.Before(now) {
			delete(r.entries, fp)
			n++
		}
	}
	return n, nil
}
