package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

const (
	claimPrefix   = "checkout:claim:"
	sessionPrefix = "checkout:session:"
	claimValue    = "pending"
)

// SessionStore implements domain.SessionStore on Redis.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// hashKey keeps client-supplied keys out of the Redis keyspace verbatim.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Claim marks key as in progress using SET NX.
func (s *SessionStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, claimPrefix+hashKey(key), claimValue, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}

	return ok, nil
}

// Recall returns the session remembered under key.
func (s *SessionStore) Recall(ctx context.Context, key string) (*domain.CheckoutSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+hashKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.CheckoutSession
	if unmarshalErr := json.Unmarshal(data, &session); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", unmarshalErr)
	}

	return &session, nil
}

// Remember stores session under key and clears the claim in one round trip.
func (s *SessionStore) Remember(
	ctx context.Context,
	key string,
	session *domain.CheckoutSession,
	ttl time.Duration,
) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	hashed := hashKey(key)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionPrefix+hashed, data, ttl)
	pipe.Del(ctx, claimPrefix+hashed)

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		observability.FromContext(ctx).Error("failed to store checkout session",
			observability.Error(execErr))
		return fmt.Errorf("failed to store session: %w", execErr)
	}

	return nil
}

// Release drops the claim on key.
func (s *SessionStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, claimPrefix+hashKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to release claim: %w", err)
	}

	return nil
}
