package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisScopeStateStore implements ScopeStateRepository using Redis.
// Suitable for deployments where session scope does not need to survive
// a cache flush; the relational store remains the durable default.
type RedisScopeStateStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisScopeStateStore creates a new Redis-backed scope state store.
// A zero TTL means entries never expire.
func NewRedisScopeStateStore(cfg RedisConfig, ttl time.Duration) (*RedisScopeStateStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisScopeStateStore{
		client:    client,
		keyPrefix: "scope:state:",
		ttl:       ttl,
	}, nil
}

// NewRedisScopeStateStoreWithClient creates a store with an existing
// Redis client. Useful for testing or when sharing a client.
func NewRedisScopeStateStoreWithClient(client *redis.Client, ttl time.Duration) *RedisScopeStateStore {
	return &RedisScopeStateStore{
		client:    client,
		keyPrefix: "scope:state:",
		ttl:       ttl,
	}
}

type scopeStateRecord struct {
	TenantID  *uuid.UUID `json:"tenant_id"`
	PeriodID  *uuid.UUID `json:"period_id"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Load reads the persisted scope for a principal
func (s *RedisScopeStateStore) Load(ctx context.Context, principalID uuid.UUID) (*tenancy.ScopeState, error) {
	raw, err := s.client.Get(ctx, s.key(principalID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load scope state: %w", err)
	}

	var record scopeStateRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("failed to decode scope state: %w", err)
	}

	return &tenancy.ScopeState{
		PrincipalID: principalID,
		TenantID:    record.TenantID,
		PeriodID:    record.PeriodID,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// Save overwrites the persisted scope for a principal
func (s *RedisScopeStateStore) Save(ctx context.Context, state *tenancy.ScopeState) error {
	raw, err := json.Marshal(scopeStateRecord{
		TenantID:  state.TenantID,
		PeriodID:  state.PeriodID,
		UpdatedAt: state.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode scope state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(state.PrincipalID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save scope state: %w", err)
	}
	return nil
}

// Clear removes the persisted scope for a principal
func (s *RedisScopeStateStore) Clear(ctx context.Context, principalID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(principalID)).Err(); err != nil {
		return fmt.Errorf("failed to clear scope state: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisScopeStateStore) Close() error {
	return s.client.Close()
}

func (s *RedisScopeStateStore) key(principalID uuid.UUID) string {
	return s.keyPrefix + principalID.String()
}

// Ensure RedisScopeStateStore implements ScopeStateRepository
var _ tenancy.ScopeStateRepository = (*RedisScopeStateStore)(nil)
