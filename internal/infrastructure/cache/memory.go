package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryFlagStore is an in-memory session flag store with expiration. Used in
// development and tests when Redis is not available; flags do not survive a
// restart, which only forces an extra verification.
type MemoryFlagStore struct {
	mu    sync.RWMutex
	items map[string]time.Time
	ttl   time.Duration
}

// NewMemoryFlagStore creates an in-memory session flag store
func NewMemoryFlagStore(ttl time.Duration) *MemoryFlagStore {
	store := &MemoryFlagStore{
		items: make(map[string]time.Time),
		ttl:   ttl,
	}

	go store.cleanupExpired()

	return store
}

// SetFaceVerified marks the (session, meeting) pair as verified
func (ms *MemoryFlagStore) SetFaceVerified(_ context.Context, sessionID, meetingID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[memoryFlagKey(sessionID, meetingID)] = time.Now().Add(ms.ttl)
	return nil
}

// HasFaceVerified reports whether the pair was verified within the TTL
func (ms *MemoryFlagStore) HasFaceVerified(_ context.Context, sessionID, meetingID uuid.UUID) (bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	expireTime, exists := ms.items[memoryFlagKey(sessionID, meetingID)]
	if !exists || time.Now().After(expireTime) {
		return false, nil
	}
	return true, nil
}

// ClearFaceVerified drops the flag
func (ms *MemoryFlagStore) ClearFaceVerified(_ context.Context, sessionID, meetingID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, memoryFlagKey(sessionID, meetingID))
	return nil
}

func memoryFlagKey(sessionID, meetingID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", sessionID, meetingID)
}

// cleanupExpired periodically removes expired flags
func (ms *MemoryFlagStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, expireTime := range ms.items {
			if now.After(expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
