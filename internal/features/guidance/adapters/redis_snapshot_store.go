package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nav-guidance/internal/core/cache"
	"nav-guidance/internal/features/guidance/domain"
)

const snapshotKeyPrefix = "session_snapshot:"

// RedisSnapshotStore implements ports.SnapshotStore using the cache port.
// Only the most recent snapshot per session is retained.
type RedisSnapshotStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisSnapshotStore creates a new RedisSnapshotStore.
// The ttl bounds how long an idle session's snapshot is retained; 0 means no expiration.
func NewRedisSnapshotStore(c cache.Cache, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		cache: c,
		ttl:   ttl,
	}
}

// Save stores the latest snapshot for a session, replacing any prior one.
// The route pointer is not serialized; callers re-attach it on load.
func (s *RedisSnapshotStore) Save(ctx context.Context, sessionID string, snapshot domain.ProgressSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.cache.Set(ctx, snapshotKeyPrefix+sessionID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save snapshot to cache: %w", err)
	}

	return nil
}

// Last retrieves the most recent snapshot for a session. Returns nil, nil
// when the session has no snapshot yet.
func (s *RedisSnapshotStore) Last(ctx context.Context, sessionID string) (*domain.ProgressSnapshot, error) {
	key := snapshotKeyPrefix + sessionID

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if err.Error() == fmt.Sprintf("key not found: %s", key) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	var snapshot domain.ProgressSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// Clear removes the stored snapshot for a session.
func (s *RedisSnapshotStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, snapshotKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete snapshot from cache: %w", err)
	}
	return nil
}
