package mining

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultProfileTTL bounds how stale a cached demand profile may get
const DefaultProfileTTL = time.Hour

// Cache stores demand profiles between mining runs. A miss is
// (nil, false, nil), never an error.
type Cache interface {
	GetDemandProfile(ctx context.Context, companyID uuid.UUID) (*DemandProfile, bool, error)
	SetDemandProfile(ctx context.Context, profile *DemandProfile) error
}

// RedisCache stores demand profiles as JSON values with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps a redis client. A non-positive ttl falls back
// to DefaultProfileTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func profileKey(companyID uuid.UUID) string {
	return "matchengine:demand:" + companyID.String()
}

// GetDemandProfile implements Cache
func (c *RedisCache) GetDemandProfile(ctx context.Context, companyID uuid.UUID) (*DemandProfile, bool, error) {
	raw, err := c.client.Get(ctx, profileKey(companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached demand profile: %w", err)
	}

	var profile DemandProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached demand profile: %w", err)
	}
	return &profile, true, nil
}

// SetDemandProfile implements Cache
func (c *RedisCache) SetDemandProfile(ctx context.Context, profile *DemandProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode demand profile: %w", err)
	}
	if err := c.client.Set(ctx, profileKey(profile.CompanyID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache demand profile: %w", err)
	}
	return nil
}

// MemoryCache is a process-local Cache for tests and single-node runs
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]memoryEntry
}

type memoryEntry struct {
	profile   DemandProfile
	expiresAt time.Time
}

// NewMemoryCache returns an empty in-process cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &MemoryCache{ttl: ttl, entries: make(map[uuid.UUID]memoryEntry)}
}

// GetDemandProfile implements Cache
func (c *MemoryCache) GetDemandProfile(_ context.Context, companyID uuid.UUID) (*DemandProfile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[companyID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.entries, companyID)
		return nil, false, nil
	}
	profile := entry.profile
	return &profile, true, nil
}

// SetDemandProfile implements Cache
func (c *MemoryCache) SetDemandProfile(_ context.Context, profile *DemandProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[profile.CompanyID] = memoryEntry{
		profile:   *profile,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}
